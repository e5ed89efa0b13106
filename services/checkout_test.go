package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"salonbook-client/backend"
	"salonbook-client/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSalon = models.Salon{ID: "s1", Name: "Glow Studio"}

func testCart() []models.SelectedService {
	return []models.SelectedService{
		{ServiceID: "haircut", Name: "Haircut", Price: 300, Quantity: 1},
		{ServiceID: "spa", Name: "Head Spa", Price: 250, Quantity: 2},
	}
}

func TestGenerateDates(t *testing.T) {
	// Friday afternoon.
	now := time.Date(2026, 10, 16, 15, 30, 0, 0, time.UTC)
	dates := GenerateDates(now)

	require.Len(t, dates, BookingWindowDays)
	assert.Equal(t, "2026-10-16", dates[0].Date)
	assert.True(t, dates[0].IsToday)
	assert.False(t, dates[0].IsWeekend)
	assert.Equal(t, "Fri", dates[0].Weekday)
	assert.Equal(t, "Oct", dates[0].Month)

	assert.True(t, dates[1].IsWeekend)
	assert.True(t, dates[2].IsWeekend)
	assert.False(t, dates[3].IsWeekend)
	assert.False(t, dates[1].IsToday)

	assert.Equal(t, "2026-11-14", dates[29].Date)
	assert.Equal(t, "Nov", dates[29].Month)
}

func TestCheckout_Totals(t *testing.T) {
	c, err := NewCheckout(testSalon, testCart())
	require.NoError(t, err)

	assert.Equal(t, 800.0, c.Subtotal())
	assert.Equal(t, 800.0, c.Total())

	require.NoError(t, c.ApplyPromo(" salon10 "))
	assert.Equal(t, "SALON10", c.PromoCode)
	assert.InDelta(t, 720.0, c.Total(), 0.001)

	require.NoError(t, c.ApplyPromo("SALON20"))
	assert.InDelta(t, 640.0, c.Total(), 0.001)
}

func TestCheckout_InvalidPromoResetsDiscount(t *testing.T) {
	c, err := NewCheckout(testSalon, testCart())
	require.NoError(t, err)
	require.NoError(t, c.ApplyPromo("SALON20"))

	assert.ErrorIs(t, c.ApplyPromo("FREEBIE"), ErrInvalidPromo)
	assert.Equal(t, 0.0, c.Discount)
	assert.Empty(t, c.PromoCode)
	assert.Equal(t, c.Subtotal(), c.Total())
}

func TestCheckout_Quantities(t *testing.T) {
	cart := testCart()
	cart[0].Quantity = 0
	c, err := NewCheckout(testSalon, cart)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Services[0].Quantity)

	require.NoError(t, c.SetQuantity("haircut", 3))
	assert.Equal(t, 1400.0, c.Subtotal())

	require.NoError(t, c.SetQuantity("spa", 0))
	require.Len(t, c.Services, 1)
	assert.ErrorIs(t, c.SetQuantity("haircut", 0), ErrEmptySelection)
	assert.ErrorIs(t, c.SetQuantity("haircut", -1), ErrInvalidQuantity)
	assert.ErrorIs(t, c.SetQuantity("nails", 1), ErrUnknownService)

	_, err = NewCheckout(testSalon, nil)
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestCheckout_SeatSelection(t *testing.T) {
	c, err := NewCheckout(testSalon, testCart())
	require.NoError(t, err)
	c.SetSchedule("2026-10-17", []models.Slot{{
		Time: "10:00",
		Seats: []models.Seat{
			{Number: 1, Status: "booked"},
			{Number: 2, Status: "available", Available: true},
		},
		AvailableSeats: 1,
	}})

	assert.ErrorIs(t, c.SelectSeat(2), ErrIncompleteSelection)
	assert.ErrorIs(t, c.SelectTime("11:00"), ErrUnknownTime)
	require.NoError(t, c.SelectTime("10:00"))
	assert.ErrorIs(t, c.SelectSeat(1), ErrSeatUnavailable)
	assert.ErrorIs(t, c.SelectSeat(7), ErrSeatUnavailable)
	require.NoError(t, c.SelectSeat(2))
	assert.NoError(t, c.Ready())

	// A new date drops the time and seat.
	c.SetSchedule("2026-10-18", nil)
	assert.ErrorIs(t, c.Ready(), ErrIncompleteSelection)
}

func newTestCheckoutService(t *testing.T, balance float64) (*fakeBackend, *CheckoutService) {
	t.Helper()
	fb, api := newFakeBackend(t)
	session := newTestSession(api, newMemStore())
	loggedIn(session, api, balance)

	svc := NewCheckoutService(api, session, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) }
	fb.on(http.MethodGet, "/salons/s1/schedule", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"schedule":{"10:00":[{"seatNumber":1,"status":"available"}]}}`))
	})
	return fb, svc
}

func TestConfirm_IncompleteSelectionMakesNoCalls(t *testing.T) {
	fb, svc := newTestCheckoutService(t, 5000)
	_, err := svc.Start(testSalon, testCart())
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrIncompleteSelection)
	assert.Equal(t, 0, fb.total())
}

func TestConfirm_InsufficientBalance(t *testing.T) {
	fb, svc := newTestCheckoutService(t, 100)
	_, err := svc.Start(testSalon, testCart())
	require.NoError(t, err)

	_, err = svc.SelectDate(context.Background(), "2026-10-17")
	require.NoError(t, err)
	_, err = svc.SelectTime("10:00")
	require.NoError(t, err)
	_, err = svc.SelectSeat(1)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, 0, fb.count(http.MethodPost, "/bookings"))

	view, err := svc.Current()
	require.NoError(t, err)
	assert.True(t, view.Ready)
}

func TestConfirm_CreatesBookingAndClearsCheckout(t *testing.T) {
	fb, svc := newTestCheckoutService(t, 5000)
	fb.onJSON(http.MethodPost, "/bookings", http.StatusCreated, map[string]interface{}{
		"booking": map[string]interface{}{"id": "b1", "salonId": "s1", "status": "Confirmed", "total": 720},
	})
	fb.onJSON(http.MethodGet, "/user/info", http.StatusOK, map[string]interface{}{
		"user": map[string]interface{}{"id": "u1", "walletBalance": 4280},
	})

	_, err := svc.Start(testSalon, testCart())
	require.NoError(t, err)
	_, err = svc.ApplyPromo("SALON10")
	require.NoError(t, err)
	_, err = svc.SelectDate(context.Background(), "2026-10-17")
	require.NoError(t, err)
	_, err = svc.SelectTime("10:00")
	require.NoError(t, err)
	_, err = svc.SelectSeat(1)
	require.NoError(t, err)

	booking, err := svc.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b1", booking.ID)
	assert.Equal(t, 1, fb.count(http.MethodGet, "/user/info"))
	assert.Equal(t, 4280.0, svc.session.Profile().WalletBalance)

	_, err = svc.Current()
	assert.ErrorIs(t, err, ErrNoCheckout)
}

func TestSelectDate_OutsideWindow(t *testing.T) {
	fb, svc := newTestCheckoutService(t, 0)
	_, err := svc.Start(testSalon, testCart())
	require.NoError(t, err)

	for _, date := range []string{"2026-10-15", "2026-11-15", "17/10/2026"} {
		_, err = svc.SelectDate(context.Background(), date)
		assert.ErrorIs(t, err, ErrInvalidDate, date)
	}
	assert.Equal(t, 0, fb.total())
}

func readyCheckout(t *testing.T, svc *CheckoutService) {
	t.Helper()
	_, err := svc.Start(testSalon, testCart())
	require.NoError(t, err)
	_, err = svc.SelectDate(context.Background(), "2026-10-17")
	require.NoError(t, err)
	_, err = svc.SelectTime("10:00")
	require.NoError(t, err)
	_, err = svc.SelectSeat(1)
	require.NoError(t, err)
}

func TestConfirm_BackendRejectionKeepsSelection(t *testing.T) {
	fb, svc := newTestCheckoutService(t, 5000)
	fb.onJSON(http.MethodPost, "/bookings", http.StatusConflict, map[string]string{"message": "Seat already booked"})
	readyCheckout(t, svc)

	_, err := svc.Confirm(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Seat already booked", backend.AlertMessage(err))
	assert.Equal(t, 1, fb.count(http.MethodPost, "/bookings"))
	assert.Equal(t, 0, fb.count(http.MethodGet, "/user/info"))

	view, err := svc.Current()
	require.NoError(t, err)
	assert.True(t, view.Ready)
	assert.Equal(t, 1, view.Seat)
}

func TestCheckout_DiscardedOnLogout(t *testing.T) {
	_, svc := newTestCheckoutService(t, 5000)
	readyCheckout(t, svc)

	svc.session.Logout(context.Background())
	_, err := svc.Current()
	assert.ErrorIs(t, err, ErrNoCheckout)
}
