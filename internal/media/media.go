// Package media resolves backend-relative asset paths into absolute URLs.
// Resolution happens exactly once, at the store boundary, so everything
// downstream renders ready-to-use links.
package media

import (
	"strings"

	"rentadmin/internal/models"
)

// Resolver rewrites relative media paths against a public-asset base URL.
// The base is expected to end with a slash.
type Resolver struct {
	base string
}

func NewResolver(assetBaseURL string) *Resolver {
	if assetBaseURL != "" && !strings.HasSuffix(assetBaseURL, "/") {
		assetBaseURL += "/"
	}
	return &Resolver{base: assetBaseURL}
}

// URL returns path resolved against the asset base. Absolute http(s) URLs
// and empty paths pass through unchanged.
func (r *Resolver) URL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return r.base + path
}

// Images resolves every entry of an image list.
func (r *Resolver) Images(images models.ImageList) models.ImageList {
	if len(images) == 0 {
		return models.ImageList{}
	}
	resolved := make(models.ImageList, len(images))
	for i, img := range images {
		resolved[i] = r.URL(img)
	}
	return resolved
}

// User returns u with its media fields resolved.
func (r *Resolver) User(u models.User) models.User {
	u.ProfileImage = r.URL(u.ProfileImage)
	u.IntroVideo = r.URL(u.IntroVideo)
	return u
}

// Property returns p with its image list resolved.
func (r *Resolver) Property(p models.Property) models.Property {
	p.Images = r.Images(p.Images)
	return p
}

// Booking resolves the media of both embedded snapshots.
func (r *Resolver) Booking(b models.Booking) models.Booking {
	b.Property.Images = r.Images(b.Property.Images)
	b.User.ProfileImage = r.URL(b.User.ProfileImage)
	return b
}
