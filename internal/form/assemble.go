package form

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"rentadmin/internal/api"
)

// BuildForm serializes a draft into a multipart payload:
//   - scalar fields are appended as strings in schema order;
//   - file-typed fields never contribute their scalar value, so a
//     persisted media URL seeded on edit is skipped;
//   - the images field appends each new upload under an indexed key;
//   - other file fields append their single upload under the field name;
//   - hidden fields contribute without ever having been prompted.
func BuildForm(d *Draft) *api.Form {
	f := api.NewForm()
	values := d.Values()
	files := d.Files()

	for _, field := range d.Schema().Fields() {
		switch field.Type {
		case FieldFile:
			uploads := files[field.Name]
			if field.Name == "images" {
				for i, up := range uploads {
					f.AddIndexedFile("images", i, up.FileName, up.ContentType, up.Data)
				}
			} else if len(uploads) > 0 {
				up := uploads[len(uploads)-1]
				f.AddFile(field.Name, up.FileName, up.ContentType, up.Data)
			}
		default:
			f.AddField(field.Name, values[field.Name])
		}
	}

	return f
}

// AssignUploadSlot routes a generic upload to its target field by media
// type: images land in profile_image, MP4 in intro_video. An empty result
// means the file fits neither slot.
func AssignUploadSlot(u Upload) string {
	switch {
	case strings.HasPrefix(u.ContentType, "image/"):
		return "profile_image"
	case u.ContentType == "video/mp4":
		return "intro_video"
	default:
		return ""
	}
}

// PlaceLooseUpload stores an upload that arrived outside a file prompt
// into the draft's matching slot, chosen by media type. It returns the
// slot name, or an error when the type fits no slot the schema declares.
func PlaceLooseUpload(d *Draft, u Upload, validate FileValidator) (string, error) {
	slot := AssignUploadSlot(u)
	if slot == "" {
		return "", fmt.Errorf("unsupported file type %q", u.ContentType)
	}
	if _, ok := d.Schema().Field(slot); !ok {
		return "", fmt.Errorf("this form has no %s slot", slot)
	}
	if err := d.SetFile(slot, u, validate); err != nil {
		return "", err
	}
	return slot, nil
}

// PlaceholderID produces a client-local stand-in numeric reference for
// creates that never set one. Always non-zero, so a placeholder is
// distinguishable from an unset reference; it lives only inside the
// outgoing payload and must never be compared against server-assigned
// ids.
func PlaceholderID() int64 {
	return rand.Int64N(999) + 1
}

// EnsureOwnerField appends a user_id part when the draft carries none.
// Only create flows call this; edits leave ownership untouched.
func EnsureOwnerField(f *api.Form, values map[string]string) {
	if strings.TrimSpace(values["user_id"]) != "" {
		return
	}
	f.AddField("user_id", strconv.FormatInt(PlaceholderID(), 10))
}

// BookingRefs returns the user and property references for a booking
// create, substituting a placeholder for either reference the draft
// never set.
func BookingRefs(values map[string]string) (userID, propertyID int64) {
	return refOrPlaceholder(values["user_id"]), refOrPlaceholder(values["property_id"])
}

func refOrPlaceholder(value string) int64 {
	if id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil && id > 0 {
		return id
	}
	return PlaceholderID()
}
