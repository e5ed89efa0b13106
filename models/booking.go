package models

import (
	"time"
)

const (
	BookingPending   = "Pending"
	BookingConfirmed = "Confirmed"
	BookingCompleted = "Completed"
	BookingCancelled = "Cancelled"
)

// BookingStatuses are the list screen tabs, in display order.
var BookingStatuses = []string{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled}

type Booking struct {
	ID            string          `json:"id"`
	SalonID       string          `json:"salonId"`
	SalonName     string          `json:"salonName"`
	Services      []BookedService `json:"services"`
	Date          string          `json:"date"` // YYYY-MM-DD
	Time          string          `json:"time"` // HH:MM
	Seat          int             `json:"seatNumber"`
	Total         float64         `json:"total"`
	Discount      float64         `json:"discount"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	CreatedAt     string          `json:"createdAt,omitempty"`
}

type BookedService struct {
	ServiceID string  `json:"serviceId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// StartsAt combines Date and Time in loc.
func (b Booking) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", b.Date+" "+b.Time, loc)
}

type CreateBookingRequest struct {
	SalonID   string          `json:"salonId"`
	Services  []BookedService `json:"services"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	Seat      int             `json:"seatNumber"`
	Subtotal  float64         `json:"subtotal"`
	Discount  float64         `json:"discount"`
	Total     float64         `json:"total"`
	PromoCode string          `json:"promoCode,omitempty"`
}
