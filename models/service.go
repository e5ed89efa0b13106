package models

// Service is a bookable salon service.
type Service struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Rate     float64 `json:"rate"`
	Discount float64 `json:"discount"`
	Duration int     `json:"duration"` // in minutes
}

// SelectedService is one cart line. Price is the unit price actually charged.
type SelectedService struct {
	ServiceID string  `json:"serviceId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Discount  float64 `json:"discount"`
	Quantity  int     `json:"quantity"`
}

func (s SelectedService) LineTotal() float64 {
	return s.Price * float64(s.Quantity)
}
