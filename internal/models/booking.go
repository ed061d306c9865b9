package models

// BookingProperty is the property snapshot embedded in a booking.
// The backend serializes its scalar fields as strings.
type BookingProperty struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Location    string    `json:"location"`
	Images      ImageList `json:"images"`
}

// BookingUser is the client snapshot embedded in a booking.
type BookingUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
}

type Booking struct {
	ID         int64           `json:"id"`
	Property   BookingProperty `json:"property"`
	User       BookingUser     `json:"user"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Status     string          `json:"status"`
	TotalPrice float64         `json:"totalPrice"`
	CreatedAt  string          `json:"createdAt"`
}

// BookingRequest is the JSON body for creating a booking. Unlike user and
// property mutations it never carries files, so it posts as plain JSON.
type BookingRequest struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Role         string `json:"role,omitempty"`
	UserID       int64  `json:"user_id"`
	PropertyID   int64  `json:"property_id"`
	PropertyName string `json:"property_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Status       string `json:"status"`
}
