package services

import (
	"context"
	"sync"
	"time"

	"salonbook-client/backend"
	"salonbook-client/models"
	"salonbook-client/utils"

	"go.uber.org/zap"
)

// CheckoutService holds the one checkout the renderer can have open and
// turns it into a booking.
type CheckoutService struct {
	api     *backend.Client
	session *SessionContext
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	current *Checkout
}

// NewCheckoutService returns a service whose open checkout is discarded
// whenever the signed-in user changes.
func NewCheckoutService(api *backend.Client, session *SessionContext, logger *zap.Logger) *CheckoutService {
	s := &CheckoutService{
		api:     api,
		session: session,
		logger:  logger,
		now:     time.Now,
	}
	session.OnChange(s.Discard)
	return s
}

// Start opens a checkout from the salon and cart carried by navigation,
// replacing any previous one.
func (s *CheckoutService) Start(salon models.Salon, services []models.SelectedService) (CheckoutView, error) {
	checkout, err := NewCheckout(salon, services)
	if err != nil {
		return CheckoutView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = checkout
	return checkout.View(), nil
}

func (s *CheckoutService) Current() (CheckoutView, error) {
	return s.update(func(c *Checkout) error { return nil })
}

func (s *CheckoutService) Discard() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

func (s *CheckoutService) Dates() []models.DateOption {
	return GenerateDates(s.now())
}

func (s *CheckoutService) SetQuantity(serviceID string, quantity int) (CheckoutView, error) {
	return s.update(func(c *Checkout) error { return c.SetQuantity(serviceID, quantity) })
}

func (s *CheckoutService) ApplyPromo(code string) (CheckoutView, error) {
	return s.update(func(c *Checkout) error { return c.ApplyPromo(code) })
}

func (s *CheckoutService) SelectTime(t string) (CheckoutView, error) {
	return s.update(func(c *Checkout) error { return c.SelectTime(t) })
}

func (s *CheckoutService) SelectSeat(number int) (CheckoutView, error) {
	return s.update(func(c *Checkout) error { return c.SelectSeat(number) })
}

// SelectDate fetches the salon schedule for date. The date must be on the
// date strip.
func (s *CheckoutService) SelectDate(ctx context.Context, date string) (CheckoutView, error) {
	now := s.now()
	day, err := utils.ParseDate(date, now.Location())
	if err != nil {
		return CheckoutView{}, ErrInvalidDate
	}
	if offset := utils.DaysBetween(now, day); offset < 0 || offset >= BookingWindowDays {
		return CheckoutView{}, ErrInvalidDate
	}

	s.mu.Lock()
	checkout := s.current
	s.mu.Unlock()
	if checkout == nil {
		return CheckoutView{}, ErrNoCheckout
	}

	slots, err := s.api.SalonSchedule(ctx, checkout.Salon.ID, date)
	if err != nil {
		s.logger.Warn("schedule fetch failed",
			zap.String("salonId", checkout.Salon.ID),
			zap.String("date", date),
			zap.Error(err),
		)
		return CheckoutView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != checkout {
		return CheckoutView{}, ErrNoCheckout
	}
	checkout.SetSchedule(date, slots)
	return checkout.View(), nil
}

// Confirm books the current selection. Nothing is sent unless date, time and
// seat are chosen and the wallet covers the total. The checkout is dropped
// only after the backend accepted the booking.
func (s *CheckoutService) Confirm(ctx context.Context) (*models.Booking, error) {
	s.mu.Lock()
	checkout := s.current
	if checkout == nil {
		s.mu.Unlock()
		return nil, ErrNoCheckout
	}
	if err := checkout.Ready(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	req := checkout.BookingRequest()
	s.mu.Unlock()

	profile := s.session.Profile()
	if profile == nil {
		return nil, ErrNotLoggedIn
	}
	if profile.WalletBalance < req.Total {
		return nil, ErrInsufficientBalance
	}

	booking, err := s.api.CreateBooking(ctx, req)
	if err != nil {
		s.logger.Warn("booking failed", zap.String("salonId", req.SalonID), zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	if s.current == checkout {
		s.current = nil
	}
	s.mu.Unlock()

	s.logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("salonId", req.SalonID),
		zap.Float64("total", req.Total),
	)
	if _, err := s.session.RefreshProfile(ctx); err != nil {
		s.logger.Warn("profile refresh after booking failed", zap.Error(err))
	}
	return booking, nil
}

func (s *CheckoutService) update(fn func(c *Checkout) error) (CheckoutView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return CheckoutView{}, ErrNoCheckout
	}
	err := fn(s.current)
	return s.current.View(), err
}
