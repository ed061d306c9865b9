package bot

import (
	"testing"

	"rentadmin/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		wantStart  int
		wantEnd    int
	}{
		{"NoPages", 0, 0, 0, 0},
		{"SinglePage", 0, 1, 0, 1},
		{"FewerPagesThanWindow", 1, 3, 0, 3},
		{"StartClamped", 0, 10, 0, 5},
		{"SecondPageStillClamped", 1, 10, 0, 5},
		{"Centered", 5, 10, 3, 8},
		{"EndClamped", 9, 10, 5, 10},
		{"NearEnd", 8, 10, 5, 10},
		{"ExactWindow", 2, 5, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := pageWindow(tt.page, tt.totalPages)
			assert.Equal(t, tt.wantStart, start, "start")
			assert.Equal(t, tt.wantEnd, end, "end")
			if tt.totalPages > 0 {
				assert.LessOrEqual(t, end-start, 5)
				assert.GreaterOrEqual(t, tt.page, start)
				assert.Less(t, tt.page, end)
			}
		})
	}
}

func TestSortUsersNewest(t *testing.T) {
	users := []models.User{
		{ID: 1, CreatedAt: "2026-01-01T10:00:00Z"},
		{ID: 2, CreatedAt: "2026-03-01T10:00:00Z"},
		{ID: 3, CreatedAt: "2026-02-01T10:00:00Z"},
	}
	sortUsersNewest(users)
	assert.EqualValues(t, 2, users[0].ID)
	assert.EqualValues(t, 3, users[1].ID)
	assert.EqualValues(t, 1, users[2].ID)
}

func TestSortUsersNewestFallsBackToID(t *testing.T) {
	users := []models.User{
		{ID: 1, CreatedAt: "garbage"},
		{ID: 3, CreatedAt: ""},
		{ID: 2, CreatedAt: "also garbage"},
	}
	sortUsersNewest(users)
	assert.EqualValues(t, 3, users[0].ID)
	assert.EqualValues(t, 2, users[1].ID)
	assert.EqualValues(t, 1, users[2].ID)
}

func TestParseCreatedAt(t *testing.T) {
	assert.False(t, parseCreatedAt("2026-08-30T10:00:00Z").IsZero())
	assert.False(t, parseCreatedAt("2026-08-30 10:00:00").IsZero())
	assert.False(t, parseCreatedAt("2026-08-30").IsZero())
	assert.True(t, parseCreatedAt("yesterday").IsZero())
}
