package models

// Salon is a read-only snapshot fetched per screen.
type Salon struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Address      string            `json:"address"`
	City         string            `json:"city,omitempty"`
	Latitude     float64           `json:"latitude"`
	Longitude    float64           `json:"longitude"`
	Distance     float64           `json:"distance,omitempty"` // km, nearby lookups only
	Photos       []string          `json:"photos,omitempty"`
	Services     []Service         `json:"services,omitempty"`
	Rating       float64           `json:"rating"`
	ReviewCount  int               `json:"reviewCount"`
	Reviews      []Review          `json:"reviews,omitempty"`
	OpeningHours map[string]string `json:"openingHours,omitempty"`
	Facilities   []string          `json:"facilities,omitempty"`
}

type Review struct {
	ID        string `json:"id"`
	UserName  string `json:"userName"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt"`
}

type ReviewRequest struct {
	SalonID   string `json:"salonId"`
	BookingID string `json:"bookingId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// PlacePrediction is one address suggestion from places autocomplete.
type PlacePrediction struct {
	PlaceID     string `json:"placeId"`
	Description string `json:"description"`
}
