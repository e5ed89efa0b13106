// services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"salonbook-client/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// UpcomingBookings lists confirmed bookings that start within lead of now.
type UpcomingBookings interface {
	Upcoming(ctx context.Context, now time.Time, lead time.Duration) ([]models.Booking, error)
}

// ReminderStore records reminders and tells whether one already exists.
type ReminderStore interface {
	Record(ctx context.Context, title, body string, data models.JSONB, bookingID string) (*models.Notification, error)
	HasBookingReminder(ctx context.Context, bookingID string) (bool, error)
}

// ReminderService turns upcoming confirmed bookings into local
// notifications, one per booking.
type ReminderService struct {
	bookings UpcomingBookings
	store    ReminderStore
	loggedIn func() bool
	lead     time.Duration
	logger   *zap.Logger
	now      func() time.Time
	cron     *cron.Cron
}

func NewReminderService(bookings UpcomingBookings, store ReminderStore, loggedIn func() bool, lead time.Duration, logger *zap.Logger) *ReminderService {
	if lead <= 0 {
		lead = 24 * time.Hour
	}
	return &ReminderService{
		bookings: bookings,
		store:    store,
		loggedIn: loggedIn,
		lead:     lead,
		logger:   logger,
		now:      time.Now,
	}
}

// StartScheduler runs SendUpcomingReminders on the cron spec.
func (s *ReminderService) StartScheduler(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.SendUpcomingReminders(ctx); err != nil {
			s.logger.Warn("reminder run failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}

	c.Start()
	s.cron = c
	s.logger.Info("Reminder scheduler started", zap.String("schedule", spec))
	return nil
}

func (s *ReminderService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// SendUpcomingReminders stores reminders for bookings not yet reminded and
// returns how many were stored.
func (s *ReminderService) SendUpcomingReminders(ctx context.Context) (int, error) {
	if !s.loggedIn() {
		s.logger.Debug("skipping reminders: logged out")
		return 0, nil
	}

	upcoming, err := s.bookings.Upcoming(ctx, s.now(), s.lead)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, b := range upcoming {
		exists, err := s.store.HasBookingReminder(ctx, b.ID)
		if err != nil {
			s.logger.Warn("failed to check reminder", zap.String("bookingId", b.ID), zap.Error(err))
			continue
		}
		if exists {
			continue
		}

		body := fmt.Sprintf("%s on %s at %s, seat %d.", b.SalonName, b.Date, b.Time, b.Seat)
		data := models.JSONB{"type": "booking_reminder", "bookingId": b.ID, "salonId": b.SalonID}
		if _, err := s.store.Record(ctx, "Upcoming appointment", body, data, b.ID); err != nil {
			s.logger.Warn("failed to store reminder", zap.String("bookingId", b.ID), zap.Error(err))
			continue
		}
		sent++
	}

	s.logger.Info("reminder run completed", zap.Int("upcoming", len(upcoming)), zap.Int("stored", sent))
	return sent, nil
}
