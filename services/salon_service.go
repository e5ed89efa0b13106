package services

import (
	"context"
	"strings"

	"salonbook-client/backend"
	"salonbook-client/models"

	"go.uber.org/zap"
)

// PlaceSearcher suggests addresses while the user types.
type PlaceSearcher interface {
	Autocomplete(ctx context.Context, input string, near models.Location) ([]models.PlacePrediction, error)
}

// SalonService backs the home, search and salon detail screens. Nothing is
// cached: every screen fetches its own copy.
type SalonService struct {
	api     *backend.Client
	session *SessionContext
	places  PlaceSearcher
	logger  *zap.Logger
}

func NewSalonService(api *backend.Client, session *SessionContext, places PlaceSearcher, logger *zap.Logger) *SalonService {
	return &SalonService{api: api, session: session, places: places, logger: logger}
}

// Nearby lists salons around the session location, which is the default
// coordinate when the device has no fix.
func (s *SalonService) Nearby(ctx context.Context) ([]models.Salon, error) {
	loc := s.session.Location()
	salons, err := s.api.NearbySalons(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return nil, err
	}
	if salons == nil {
		salons = []models.Salon{}
	}
	return salons, nil
}

func (s *SalonService) MostReviewed(ctx context.Context) ([]models.Salon, error) {
	loc := s.session.Location()
	salons, err := s.api.MostReviewedSalons(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return nil, err
	}
	if salons == nil {
		salons = []models.Salon{}
	}
	return salons, nil
}

func (s *SalonService) Detail(ctx context.Context, salonID string) (*models.Salon, error) {
	return s.api.SalonDetail(ctx, salonID)
}

// Autocomplete returns address suggestions biased towards the session
// location. Blank input returns nothing without calling out.
func (s *SalonService) Autocomplete(ctx context.Context, input string) ([]models.PlacePrediction, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return []models.PlacePrediction{}, nil
	}
	if s.places == nil {
		return nil, ErrMapsUnavailable
	}
	predictions, err := s.places.Autocomplete(ctx, input, s.session.Location())
	if err != nil {
		s.logger.Debug("autocomplete failed", zap.String("input", input), zap.Error(err))
		return nil, err
	}
	return predictions, nil
}
