package api

import (
	"context"
	"fmt"

	"rentadmin/internal/models"
)

// BookingsService is the booking repository over the REST backend.
// Bookings carry no file fields, so mutations post plain JSON; status
// changes go through the dedicated sub-resource action.
type BookingsService struct {
	client *Client
}

func (s *BookingsService) List(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.client.get(ctx, "/bookings", &bookings)
	track("bookings", "list", err)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *BookingsService) Create(ctx context.Context, req models.BookingRequest) (models.Booking, error) {
	var booking models.Booking
	err := s.client.postJSON(ctx, "/bookings", req, &booking)
	track("bookings", "create", err)
	if err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

func (s *BookingsService) UpdateStatus(ctx context.Context, id int64, status string) (models.Booking, error) {
	body := map[string]string{"status": status}
	var booking models.Booking
	err := s.client.postJSON(ctx, fmt.Sprintf("/bookings/%d/status", id), body, &booking)
	err = asNotFound(err, "booking", id)
	track("bookings", "update_status", err)
	if err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

func (s *BookingsService) Delete(ctx context.Context, id int64) error {
	err := s.client.delete(ctx, fmt.Sprintf("/bookings/%d", id))
	err = asNotFound(err, "booking", id)
	track("bookings", "delete", err)
	return err
}
