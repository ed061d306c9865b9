package bot

import (
	"testing"

	"rentadmin/internal/form"
	"rentadmin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRequestSubstitutesPlaceholderRefs(t *testing.T) {
	// The booking form never prompts for user_id or property_id, so a
	// create must fall back to client-local references instead of
	// posting zeros.
	d := form.NewDraft(form.AddBooking, nil)
	require.NoError(t, d.SetValue("name", "Carol"))
	require.NoError(t, d.SetValue("email", "carol@example.com"))
	require.NoError(t, d.SetValue("property_name", "Villa"))
	require.NoError(t, d.SetValue("start_date", "2026-09-01"))
	require.NoError(t, d.SetValue("end_date", "2026-09-05"))
	require.NoError(t, d.SetValue("status", models.StatusPending))

	req := bookingRequestFrom(d.Values())

	assert.NotZero(t, req.UserID)
	assert.NotZero(t, req.PropertyID)
	assert.Less(t, req.UserID, int64(1000))
	assert.Less(t, req.PropertyID, int64(1000))

	assert.Equal(t, "Carol", req.Name)
	assert.Equal(t, "Villa", req.PropertyName)
	assert.Equal(t, "2026-09-01", req.StartDate)
	assert.Equal(t, "2026-09-05", req.EndDate)
	assert.Equal(t, models.StatusPending, req.Status)
}

func TestBookingRequestKeepsExplicitRefs(t *testing.T) {
	req := bookingRequestFrom(map[string]string{
		"name":        "Carol",
		"user_id":     "4321",
		"property_id": "8765",
	})
	assert.EqualValues(t, 4321, req.UserID)
	assert.EqualValues(t, 8765, req.PropertyID)
}
