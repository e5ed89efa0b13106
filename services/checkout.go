package services

import (
	"strings"
	"time"

	"salonbook-client/models"
	"salonbook-client/utils"
)

// BookingWindowDays is how far ahead the date strip reaches.
const BookingWindowDays = 30

// promoCodes is a fixed table; there is no promotion engine behind it.
var promoCodes = map[string]float64{
	"SALON10": 0.10,
	"SALON20": 0.20,
}

// GenerateDates returns the date strip: BookingWindowDays consecutive days
// starting with today.
func GenerateDates(now time.Time) []models.DateOption {
	today := utils.BeginningOfDay(now)
	dates := make([]models.DateOption, 0, BookingWindowDays)
	for i := 0; i < BookingWindowDays; i++ {
		d := today.AddDate(0, 0, i)
		dates = append(dates, models.DateOption{
			Date:      d.Format(utils.DateLayout),
			Weekday:   d.Weekday().String()[:3],
			Day:       d.Day(),
			Month:     d.Month().String()[:3],
			IsWeekend: utils.IsWeekend(d),
			IsToday:   i == 0,
		})
	}
	return dates
}

// Checkout is the state of one checkout screen. It does no I/O.
type Checkout struct {
	Salon     models.Salon
	Services  []models.SelectedService
	Date      string
	Time      string
	Seat      int
	PromoCode string
	Discount  float64
	Slots     []models.Slot
}

// CheckoutView is the checkout as the renderer sees it.
type CheckoutView struct {
	SalonID   string                   `json:"salonId"`
	SalonName string                   `json:"salonName"`
	Services  []models.SelectedService `json:"services"`
	Date      string                   `json:"date,omitempty"`
	Time      string                   `json:"time,omitempty"`
	Seat      int                      `json:"seatNumber,omitempty"`
	PromoCode string                   `json:"promoCode,omitempty"`
	Discount  float64                  `json:"discount"`
	Slots     []models.Slot            `json:"slots"`
	Subtotal  float64                  `json:"subtotal"`
	Total     float64                  `json:"total"`
	Ready     bool                     `json:"ready"`
}

func NewCheckout(salon models.Salon, services []models.SelectedService) (*Checkout, error) {
	lines := make([]models.SelectedService, 0, len(services))
	for _, s := range services {
		if s.Quantity < 0 {
			return nil, ErrInvalidQuantity
		}
		if s.Quantity == 0 {
			s.Quantity = 1
		}
		lines = append(lines, s)
	}
	if len(lines) == 0 {
		return nil, ErrEmptySelection
	}
	return &Checkout{Salon: salon, Services: lines, Slots: []models.Slot{}}, nil
}

func (c *Checkout) Subtotal() float64 {
	subtotal := 0.0
	for _, s := range c.Services {
		subtotal += s.LineTotal()
	}
	return subtotal
}

func (c *Checkout) Total() float64 {
	return c.Subtotal() * (1 - c.Discount)
}

// ApplyPromo looks the code up in the fixed table. An unknown code resets the
// discount to zero.
func (c *Checkout) ApplyPromo(code string) error {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	discount, ok := promoCodes[normalized]
	if !ok {
		c.PromoCode = ""
		c.Discount = 0
		return ErrInvalidPromo
	}
	c.PromoCode = normalized
	c.Discount = discount
	return nil
}

// SetQuantity changes a cart line; zero removes it. The last line cannot be
// removed.
func (c *Checkout) SetQuantity(serviceID string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	for i, s := range c.Services {
		if s.ServiceID != serviceID {
			continue
		}
		if quantity == 0 {
			if len(c.Services) == 1 {
				return ErrEmptySelection
			}
			c.Services = append(c.Services[:i], c.Services[i+1:]...)
			return nil
		}
		c.Services[i].Quantity = quantity
		return nil
	}
	return ErrUnknownService
}

// SetSchedule installs the slots fetched for date and clears time and seat.
func (c *Checkout) SetSchedule(date string, slots []models.Slot) {
	c.Date = date
	c.Slots = slots
	c.Time = ""
	c.Seat = 0
}

func (c *Checkout) slot(t string) (models.Slot, bool) {
	for _, s := range c.Slots {
		if s.Time == t {
			return s, true
		}
	}
	return models.Slot{}, false
}

func (c *Checkout) SelectTime(t string) error {
	if _, ok := c.slot(t); !ok {
		return ErrUnknownTime
	}
	c.Time = t
	c.Seat = 0
	return nil
}

// SelectSeat accepts only seats of the selected time whose status is
// available.
func (c *Checkout) SelectSeat(number int) error {
	slot, ok := c.slot(c.Time)
	if !ok {
		return ErrIncompleteSelection
	}
	seat, ok := slot.Seat(number)
	if !ok || !seat.Available {
		return ErrSeatUnavailable
	}
	c.Seat = number
	return nil
}

// Ready reports whether date, time and seat are all chosen.
func (c *Checkout) Ready() error {
	if c.Date == "" || c.Time == "" || c.Seat == 0 {
		return ErrIncompleteSelection
	}
	return nil
}

func (c *Checkout) BookingRequest() models.CreateBookingRequest {
	services := make([]models.BookedService, 0, len(c.Services))
	for _, s := range c.Services {
		services = append(services, models.BookedService{
			ServiceID: s.ServiceID,
			Name:      s.Name,
			Price:     s.Price,
			Quantity:  s.Quantity,
		})
	}
	return models.CreateBookingRequest{
		SalonID:   c.Salon.ID,
		Services:  services,
		Date:      c.Date,
		Time:      c.Time,
		Seat:      c.Seat,
		Subtotal:  c.Subtotal(),
		Discount:  c.Discount,
		Total:     c.Total(),
		PromoCode: c.PromoCode,
	}
}

func (c *Checkout) View() CheckoutView {
	services := make([]models.SelectedService, len(c.Services))
	copy(services, c.Services)
	slots := make([]models.Slot, len(c.Slots))
	copy(slots, c.Slots)

	return CheckoutView{
		SalonID:   c.Salon.ID,
		SalonName: c.Salon.Name,
		Services:  services,
		Date:      c.Date,
		Time:      c.Time,
		Seat:      c.Seat,
		PromoCode: c.PromoCode,
		Discount:  c.Discount,
		Slots:     slots,
		Subtotal:  c.Subtotal(),
		Total:     c.Total(),
		Ready:     c.Ready() == nil,
	}
}
