package backend

import (
	"context"
	"net/url"

	"salonbook-client/models"
)

type bookingEnvelope struct {
	Booking models.Booking `json:"booking"`
}

type bookingsEnvelope struct {
	Bookings []models.Booking `json:"bookings"`
}

func (c *Client) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	var env bookingEnvelope
	if err := c.Post(ctx, "/bookings", req, &env); err != nil {
		return nil, err
	}
	return &env.Booking, nil
}

func (c *Client) CancelBooking(ctx context.Context, bookingID string) error {
	return c.Post(ctx, "/bookings/"+url.PathEscape(bookingID)+"/cancel", struct{}{}, nil)
}

func (c *Client) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var env bookingsEnvelope
	if err := c.Get(ctx, "/bookings", nil, &env); err != nil {
		return nil, err
	}
	return env.Bookings, nil
}

func (c *Client) CreateReview(ctx context.Context, req models.ReviewRequest) error {
	return c.Post(ctx, "/reviews", req, nil)
}
