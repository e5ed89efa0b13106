package models

const SeatAvailable = "available"

// Seat is rendered even when not selectable.
type Seat struct {
	Number    int    `json:"seatNumber"`
	Status    string `json:"status"`
	Available bool   `json:"available"`
}

// Slot is one time on a salon's schedule for a date.
type Slot struct {
	Time           string `json:"time"`
	Seats          []Seat `json:"seats"`
	AvailableSeats int    `json:"availableSeats"`
}

func (s Slot) Seat(number int) (Seat, bool) {
	for _, seat := range s.Seats {
		if seat.Number == number {
			return seat, true
		}
	}
	return Seat{}, false
}

// DateOption is one entry of the checkout date strip.
type DateOption struct {
	Date      string `json:"date"`
	Weekday   string `json:"weekday"`
	Day       int    `json:"day"`
	Month     string `json:"month"`
	IsWeekend bool   `json:"isWeekend"`
	IsToday   bool   `json:"isToday"`
}
