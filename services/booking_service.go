package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"salonbook-client/backend"
	"salonbook-client/models"

	"go.uber.org/zap"
)

// BookingService backs the booking list: fetched once, filtered locally.
type BookingService struct {
	api     *backend.Client
	session *SessionContext
	logger  *zap.Logger

	mu       sync.Mutex
	bookings []models.Booking
	loaded   bool
	owner    string // profile id the cached list belongs to
}

// NewBookingService returns a service whose cache is dropped whenever the
// signed-in user changes.
func NewBookingService(api *backend.Client, session *SessionContext, logger *zap.Logger) *BookingService {
	s := &BookingService{api: api, session: session, logger: logger}
	session.OnChange(s.reset)
	return s
}

func (s *BookingService) reset() {
	s.mu.Lock()
	s.bookings = nil
	s.loaded = false
	s.owner = ""
	s.mu.Unlock()
}

// FilterByStatus keeps bookings whose status equals the tab label, in their
// original order.
func FilterByStatus(bookings []models.Booking, status string) []models.Booking {
	filtered := []models.Booking{}
	for _, b := range bookings {
		if b.Status == status {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// NormalizeStatus maps a tab label in any case onto its canonical form.
func NormalizeStatus(status string) (string, bool) {
	for _, s := range models.BookingStatuses {
		if strings.EqualFold(s, strings.TrimSpace(status)) {
			return s, true
		}
	}
	return "", false
}

// Load returns the cached list, fetching it on first use.
func (s *BookingService) Load(ctx context.Context) ([]models.Booking, error) {
	profile := s.session.Profile()
	if profile == nil {
		return nil, ErrNotLoggedIn
	}

	s.mu.Lock()
	if s.loaded && s.owner == profile.ID {
		list := append([]models.Booking(nil), s.bookings...)
		s.mu.Unlock()
		return list, nil
	}
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// Refresh re-fetches the list (pull to refresh).
func (s *BookingService) Refresh(ctx context.Context) ([]models.Booking, error) {
	profile := s.session.Profile()
	if profile == nil {
		return nil, ErrNotLoggedIn
	}
	bookings, err := s.api.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	s.mu.Lock()
	s.bookings = bookings
	s.loaded = true
	s.owner = profile.ID
	s.mu.Unlock()
	return append([]models.Booking(nil), bookings...), nil
}

// List returns the bookings for one tab; an empty status returns all.
func (s *BookingService) List(ctx context.Context, status string) ([]models.Booking, error) {
	var canonical string
	if status != "" {
		var ok bool
		if canonical, ok = NormalizeStatus(status); !ok {
			return nil, ErrInvalidStatus
		}
	}

	bookings, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if canonical == "" {
		return bookings, nil
	}
	return FilterByStatus(bookings, canonical), nil
}

// Cancel asks the backend to cancel, then reloads the list and the profile
// so the refunded balance shows.
func (s *BookingService) Cancel(ctx context.Context, bookingID string) ([]models.Booking, error) {
	if s.session.Profile() == nil {
		return nil, ErrNotLoggedIn
	}
	if err := s.api.CancelBooking(ctx, bookingID); err != nil {
		return nil, err
	}
	s.logger.Info("booking cancelled", zap.String("bookingId", bookingID))

	if _, err := s.session.RefreshProfile(ctx); err != nil {
		s.logger.Warn("profile refresh after cancel failed", zap.Error(err))
	}
	return s.Refresh(ctx)
}

// SubmitReview posts a rating for the salon of a completed booking.
func (s *BookingService) SubmitReview(ctx context.Context, bookingID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	bookings, err := s.Load(ctx)
	if err != nil {
		return err
	}

	var booking *models.Booking
	for i := range bookings {
		if bookings[i].ID == bookingID {
			booking = &bookings[i]
			break
		}
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if booking.Status != models.BookingCompleted {
		return ErrNotReviewable
	}

	return s.api.CreateReview(ctx, models.ReviewRequest{
		SalonID:   booking.SalonID,
		BookingID: booking.ID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	})
}

// Upcoming re-fetches and returns confirmed bookings starting in (now, now+lead].
func (s *BookingService) Upcoming(ctx context.Context, now time.Time, lead time.Duration) ([]models.Booking, error) {
	bookings, err := s.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	upcoming := []models.Booking{}
	for _, b := range FilterByStatus(bookings, models.BookingConfirmed) {
		start, err := b.StartsAt(now.Location())
		if err != nil {
			s.logger.Debug("skipping booking with unparseable start", zap.String("bookingId", b.ID))
			continue
		}
		if start.After(now) && !start.After(now.Add(lead)) {
			upcoming = append(upcoming, b)
		}
	}
	return upcoming, nil
}
