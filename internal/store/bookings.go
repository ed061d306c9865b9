package store

import (
	"context"

	"rentadmin/internal/api"
	"rentadmin/internal/events"
	"rentadmin/internal/media"
	"rentadmin/internal/models"

	"github.com/rs/zerolog"
)

// BookingRepository is the transport contract the booking store depends on.
type BookingRepository interface {
	List(ctx context.Context) ([]models.Booking, error)
	Create(ctx context.Context, req models.BookingRequest) (models.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status string) (models.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// BookingStore owns the canonical booking collection. Bookings have no
// detail screen, so there is no singular slot.
type BookingStore struct {
	*collection[models.Booking]

	repo     BookingRepository
	resolver *media.Resolver
	bus      *events.EventBus
	logger   *zerolog.Logger
}

func NewBookingStore(repo BookingRepository, resolver *media.Resolver, bus *events.EventBus, logger *zerolog.Logger) *BookingStore {
	return &BookingStore{
		collection: newCollection(func(b models.Booking) int64 { return b.ID }),
		repo:       repo,
		resolver:   resolver,
		bus:        bus,
		logger:     logger,
	}
}

func (s *BookingStore) FetchAll(ctx context.Context) error {
	seq := s.begin()
	bookings, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("fetch bookings failed")
		s.settleErr(seq, "Failed to fetch bookings")
		return err
	}

	resolved := make([]models.Booking, len(bookings))
	for i, b := range bookings {
		resolved[i] = s.resolver.Booking(b)
	}
	s.settleList(seq, resolved)
	return nil
}

func (s *BookingStore) Create(ctx context.Context, req models.BookingRequest) (models.Booking, error) {
	seq := s.claimSeq()
	s.clearFieldErrors()

	booking, err := s.repo.Create(ctx, req)
	if err != nil {
		if ve, ok := api.AsValidation(err); ok {
			s.setFieldErrors(ve.Messages)
		}
		s.logger.Error().Err(err).Msg("create booking failed")
		return models.Booking{}, err
	}

	booking = s.resolver.Booking(booking)
	s.settleAppend(seq, booking)
	_ = s.bus.PublishJSON(events.EventBookingCreated, events.EntityEventPayload{
		EntityID: booking.ID,
		Name:     booking.Property.Name,
		Status:   booking.Status,
	})
	return booking, nil
}

// UpdateStatus moves a booking through its lifecycle and replaces the
// matching item in place.
func (s *BookingStore) UpdateStatus(ctx context.Context, id int64, status string) (models.Booking, error) {
	seq := s.claimSeq()

	booking, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		s.logger.Error().Err(err).Int64("booking_id", id).Str("status", status).Msg("update booking status failed")
		return models.Booking{}, err
	}

	booking = s.resolver.Booking(booking)
	s.settleReplace(seq, booking)
	_ = s.bus.PublishJSON(events.EventBookingStatusChanged, events.EntityEventPayload{
		EntityID: booking.ID,
		Name:     booking.Property.Name,
		Status:   booking.Status,
	})
	return booking, nil
}

func (s *BookingStore) Remove(ctx context.Context, id int64) error {
	seq := s.claimSeq()
	if err := s.repo.Delete(ctx, id); err != nil && !api.IsNotFound(err) {
		s.logger.Error().Err(err).Int64("booking_id", id).Msg("delete booking failed")
		return err
	}
	s.settleRemove(seq, id)
	_ = s.bus.PublishJSON(events.EventBookingDeleted, events.EntityEventPayload{EntityID: id})
	return nil
}
