package models

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
	RoleOwner  = "owner"
)

// BookingStatuses lists the states a booking can be moved through.
var BookingStatuses = []string{StatusPending, StatusConfirmed, StatusCancelled}

// UserRoles lists the roles the platform recognizes.
var UserRoles = []string{RoleAdmin, RoleClient, RoleOwner}

const (
	// DefaultPaginationSize items per list page
	DefaultPaginationSize = 10

	// PageWindowSize width of the visible page-number window
	PageWindowSize = 5

	// MaxUploadBytes cap for a single uploaded file
	MaxUploadBytes = 10 * 1024 * 1024

	// RateLimitMessages messages allowed per window per chat
	RateLimitMessages = 20

	// RateLimitWindow rate limit window in seconds
	RateLimitWindow = 60
)

// ValidStatus reports whether s is a recognized booking status.
func ValidStatus(s string) bool {
	for _, known := range BookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ValidRole reports whether r is a recognized user role.
func ValidRole(r string) bool {
	for _, known := range UserRoles {
		if r == known {
			return true
		}
	}
	return false
}
