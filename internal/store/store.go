package store

import (
	"rentadmin/internal/api"
	"rentadmin/internal/events"
	"rentadmin/internal/media"

	"github.com/rs/zerolog"
)

// Stores bundles the three entity stores. One instance lives for the
// whole process; views receive it by injection, never as a package
// global.
type Stores struct {
	Users      *UserStore
	Properties *PropertyStore
	Bookings   *BookingStore
}

func New(client *api.Client, resolver *media.Resolver, bus *events.EventBus, logger *zerolog.Logger) *Stores {
	return &Stores{
		Users:      NewUserStore(client.Users, resolver, bus, logger),
		Properties: NewPropertyStore(client.Properties, resolver, bus, logger),
		Bookings:   NewBookingStore(client.Bookings, resolver, bus, logger),
	}
}
