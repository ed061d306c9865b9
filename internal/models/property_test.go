package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageListUnmarshal(t *testing.T) {
	t.Run("PlainArray", func(t *testing.T) {
		var l ImageList
		require.NoError(t, json.Unmarshal([]byte(`["a.jpg","b.jpg"]`), &l))
		assert.Equal(t, ImageList{"a.jpg", "b.jpg"}, l)
	})

	t.Run("StringEncodedArray", func(t *testing.T) {
		var l ImageList
		require.NoError(t, json.Unmarshal([]byte(`"[\"a.jpg\",\"b.jpg\"]"`), &l))
		assert.Equal(t, ImageList{"a.jpg", "b.jpg"}, l)
	})

	t.Run("MalformedStringYieldsEmpty", func(t *testing.T) {
		var l ImageList
		require.NoError(t, json.Unmarshal([]byte(`"not json"`), &l))
		assert.Empty(t, l)
	})

	t.Run("OtherTypeYieldsEmpty", func(t *testing.T) {
		var l ImageList
		require.NoError(t, json.Unmarshal([]byte(`42`), &l))
		assert.Empty(t, l)
	})

	t.Run("InsideProperty", func(t *testing.T) {
		var p Property
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"Flat","images":"[\"x.png\"]"}`), &p))
		assert.Equal(t, ImageList{"x.png"}, p.Images)
	})
}

func TestValidStatus(t *testing.T) {
	for _, s := range BookingStatuses {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}

func TestValidRole(t *testing.T) {
	for _, r := range UserRoles {
		assert.True(t, ValidRole(r), r)
	}
	assert.False(t, ValidRole("guest"))
}
