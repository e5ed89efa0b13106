package backend

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"salonbook-client/models"

	"github.com/tidwall/gjson"
)

var ErrMalformedSchedule = errors.New("schedule payload is malformed")

type salonsEnvelope struct {
	Salons []models.Salon `json:"salons"`
}

type salonEnvelope struct {
	Salon models.Salon `json:"salon"`
}

func coordinates(lat, lng float64) url.Values {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', 6, 64))
	return q
}

func (c *Client) NearbySalons(ctx context.Context, lat, lng float64) ([]models.Salon, error) {
	var env salonsEnvelope
	if err := c.Get(ctx, "/salons/nearby", coordinates(lat, lng), &env); err != nil {
		return nil, err
	}
	return env.Salons, nil
}

func (c *Client) MostReviewedSalons(ctx context.Context, lat, lng float64) ([]models.Salon, error) {
	var env salonsEnvelope
	if err := c.Get(ctx, "/salons/most-reviewed", coordinates(lat, lng), &env); err != nil {
		return nil, err
	}
	return env.Salons, nil
}

func (c *Client) SalonDetail(ctx context.Context, salonID string) (*models.Salon, error) {
	var env salonEnvelope
	if err := c.Get(ctx, "/salons/"+url.PathEscape(salonID), nil, &env); err != nil {
		return nil, err
	}
	return &env.Salon, nil
}

// SalonSchedule fetches the seats per time for one date (YYYY-MM-DD).
func (c *Client) SalonSchedule(ctx context.Context, salonID, date string) ([]models.Slot, error) {
	q := url.Values{}
	q.Set("date", date)
	body, err := c.getRaw(ctx, "/salons/"+url.PathEscape(salonID)+"/schedule", q)
	if err != nil {
		return nil, err
	}
	return ParseSchedule(body)
}

// ParseSchedule turns {"schedule": {"10:00": [{"seatNumber": 1, "status":
// "available"}]}} into slots. Slots keep the payload's key order, which is
// the order the salon publishes its times in.
func ParseSchedule(body []byte) ([]models.Slot, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrMalformedSchedule
	}
	schedule := gjson.GetBytes(body, "schedule")
	if !schedule.Exists() || schedule.Type == gjson.Null {
		return []models.Slot{}, nil
	}
	if !schedule.IsObject() {
		return nil, ErrMalformedSchedule
	}

	slots := []models.Slot{}
	schedule.ForEach(func(key, value gjson.Result) bool {
		slot := models.Slot{Time: key.String(), Seats: []models.Seat{}}
		value.ForEach(func(_, raw gjson.Result) bool {
			seat := models.Seat{
				Number: int(raw.Get("seatNumber").Int()),
				Status: raw.Get("status").String(),
			}
			seat.Available = strings.EqualFold(seat.Status, models.SeatAvailable)
			if seat.Available {
				slot.AvailableSeats++
			}
			slot.Seats = append(slot.Seats, seat)
			return true
		})
		slots = append(slots, slot)
		return true
	})
	return slots, nil
}
