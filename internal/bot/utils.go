package bot

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"rentadmin/internal/models"
)

var createdAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseCreatedAt(value string) time.Time {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Lists render newest first, ties broken by id so order is stable across
// refreshes.

func sortUsersNewest(users []models.User) {
	sort.SliceStable(users, func(i, j int) bool {
		ti, tj := parseCreatedAt(users[i].CreatedAt), parseCreatedAt(users[j].CreatedAt)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return users[i].ID > users[j].ID
	})
}

func sortPropertiesNewest(properties []models.Property) {
	sort.SliceStable(properties, func(i, j int) bool {
		ti, tj := parseCreatedAt(properties[i].CreatedAt), parseCreatedAt(properties[j].CreatedAt)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return properties[i].ID > properties[j].ID
	})
}

func sortBookingsNewest(bookings []models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		ti, tj := parseCreatedAt(bookings[i].CreatedAt), parseCreatedAt(bookings[j].CreatedAt)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return bookings[i].ID > bookings[j].ID
	})
}

func statusEmoji(status string) string {
	switch status {
	case models.StatusConfirmed:
		return "✅"
	case models.StatusCancelled:
		return "❌"
	default:
		return "⏳"
	}
}

func roleEmoji(role string) string {
	switch role {
	case models.RoleAdmin:
		return "🛡"
	case models.RoleOwner:
		return "🏠"
	default:
		return "👤"
	}
}

func formatPrice(price float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", price), "0"), ".")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
