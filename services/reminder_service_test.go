package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"salonbook-client/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticUpcoming struct {
	bookings []models.Booking
	err      error
}

func (s staticUpcoming) Upcoming(ctx context.Context, now time.Time, lead time.Duration) ([]models.Booking, error) {
	return s.bookings, s.err
}

type memReminders struct {
	stored []models.Notification
}

func (m *memReminders) Record(ctx context.Context, title, body string, data models.JSONB, bookingID string) (*models.Notification, error) {
	n := models.Notification{Title: title, Body: body, Data: data, BookingID: bookingID}
	m.stored = append(m.stored, n)
	return &n, nil
}

func (m *memReminders) HasBookingReminder(ctx context.Context, bookingID string) (bool, error) {
	for _, n := range m.stored {
		if n.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func TestSendUpcomingReminders_OncePerBooking(t *testing.T) {
	source := staticUpcoming{bookings: []models.Booking{
		{ID: "b1", SalonID: "s1", SalonName: "Glow Studio", Date: "2026-10-17", Time: "10:00", Seat: 2},
		{ID: "b2", SalonID: "s2", SalonName: "Trim Bar", Date: "2026-10-17", Time: "12:30", Seat: 1},
	}}
	store := &memReminders{}
	svc := NewReminderService(source, store, func() bool { return true }, 24*time.Hour, zap.NewNop())

	sent, err := svc.SendUpcomingReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	require.Len(t, store.stored, 2)
	assert.Equal(t, "Glow Studio on 2026-10-17 at 10:00, seat 2.", store.stored[0].Body)
	assert.Equal(t, "booking_reminder", store.stored[0].Data["type"])

	sent, err = svc.SendUpcomingReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Len(t, store.stored, 2)
}

func TestSendUpcomingReminders_LoggedOutSkips(t *testing.T) {
	source := staticUpcoming{err: errors.New("should not be called")}
	svc := NewReminderService(source, &memReminders{}, func() bool { return false }, 0, zap.NewNop())

	sent, err := svc.SendUpcomingReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Equal(t, 24*time.Hour, svc.lead)
}

func TestStartScheduler_RejectsBadSpec(t *testing.T) {
	svc := NewReminderService(staticUpcoming{}, &memReminders{}, func() bool { return true }, time.Hour, zap.NewNop())

	assert.Error(t, svc.StartScheduler("every morning"))
	require.NoError(t, svc.StartScheduler("0 9 * * *"))
	svc.Stop()
}
