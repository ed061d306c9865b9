package media

import (
	"testing"

	"rentadmin/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResolverURL(t *testing.T) {
	r := NewResolver("https://cdn.example.com/")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Relative", "uploads/a.jpg", "https://cdn.example.com/uploads/a.jpg"},
		{"AbsoluteHTTP", "http://other.example.com/a.jpg", "http://other.example.com/a.jpg"},
		{"AbsoluteHTTPS", "https://other.example.com/a.jpg", "https://other.example.com/a.jpg"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.URL(tt.in))
		})
	}
}

func TestResolverAddsMissingSlash(t *testing.T) {
	r := NewResolver("https://cdn.example.com")
	assert.Equal(t, "https://cdn.example.com/a.jpg", r.URL("a.jpg"))
}

func TestResolverUser(t *testing.T) {
	r := NewResolver("https://cdn.example.com/")
	u := r.User(models.User{
		ProfileImage: "avatars/me.png",
		IntroVideo:   "https://videos.example.com/v.mp4",
	})
	assert.Equal(t, "https://cdn.example.com/avatars/me.png", u.ProfileImage)
	assert.Equal(t, "https://videos.example.com/v.mp4", u.IntroVideo)
}

func TestResolverProperty(t *testing.T) {
	r := NewResolver("https://cdn.example.com/")
	p := r.Property(models.Property{Images: models.ImageList{"a.jpg", "http://x/b.jpg"}})
	assert.Equal(t, models.ImageList{"https://cdn.example.com/a.jpg", "http://x/b.jpg"}, p.Images)
}

func TestResolverBooking(t *testing.T) {
	r := NewResolver("https://cdn.example.com/")
	b := r.Booking(models.Booking{
		Property: models.BookingProperty{Images: models.ImageList{"p.jpg"}},
		User:     models.BookingUser{ProfileImage: "u.jpg"},
	})
	assert.Equal(t, models.ImageList{"https://cdn.example.com/p.jpg"}, b.Property.Images)
	assert.Equal(t, "https://cdn.example.com/u.jpg", b.User.ProfileImage)
}
