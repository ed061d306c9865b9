package models

// User is one platform account as returned by the REST backend.
// Media fields hold relative paths until the store boundary resolves
// them against the public-asset base.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Role         string `json:"role"`
	ProfileImage string `json:"profile_image,omitempty"`
	IntroVideo   string `json:"intro_video,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}
