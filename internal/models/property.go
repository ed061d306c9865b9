package models

import "encoding/json"

// ImageList tolerates the backend's two encodings for property images:
// a plain JSON array, or a JSON string containing an encoded array.
// Anything else decodes to an empty list.
type ImageList []string

func (l *ImageList) UnmarshalJSON(data []byte) error {
	*l = nil

	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*l = direct
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		var nested []string
		if err := json.Unmarshal([]byte(encoded), &nested); err == nil {
			*l = nested
		}
		return nil
	}

	return nil
}

type Property struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	Images      ImageList `json:"images"`
	CreatedAt   string    `json:"created_at,omitempty"`
	UpdatedAt   string    `json:"updated_at,omitempty"`
}
