package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"salonbook-client/models"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const googleMapsBaseURL = "https://maps.googleapis.com/maps/api"

// Geocoder resolves coordinates to a display city.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}

// GoogleMaps talks to the Geocoding and Places Autocomplete HTTP APIs.
// Autocomplete runs on every keystroke, so it goes through a limiter.
type GoogleMaps struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

func NewGoogleMaps(apiKey string, ratePerSec float64, logger *zap.Logger) *GoogleMaps {
	if ratePerSec <= 0 {
		ratePerSec = 5
	}
	return &GoogleMaps{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    googleMapsBaseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(ratePerSec), 1),
		logger:     logger,
	}
}

func (g *GoogleMaps) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	if g.apiKey == "" {
		return nil, ErrMapsUnavailable
	}
	q.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("maps request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("maps returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if status := gjson.GetBytes(body, "status").String(); status != "OK" && status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("maps returned %s: %s", status, gjson.GetBytes(body, "error_message").String())
	}
	return body, nil
}

// ReverseGeocode returns the locality of the first result, falling back to
// the first administrative area.
func (g *GoogleMaps) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{}
	q.Set("latlng", strconv.FormatFloat(lat, 'f', 6, 64)+","+strconv.FormatFloat(lng, 'f', 6, 64))
	body, err := g.get(ctx, "/geocode/json", q)
	if err != nil {
		return "", err
	}

	var locality, area string
	gjson.GetBytes(body, "results.0.address_components").ForEach(func(_, comp gjson.Result) bool {
		for _, t := range comp.Get("types").Array() {
			switch t.String() {
			case "locality":
				if locality == "" {
					locality = comp.Get("long_name").String()
				}
			case "administrative_area_level_2", "administrative_area_level_1":
				if area == "" {
					area = comp.Get("long_name").String()
				}
			}
		}
		return true
	})
	if locality != "" {
		return locality, nil
	}
	return area, nil
}

// Autocomplete suggests addresses for input, biased towards near.
func (g *GoogleMaps) Autocomplete(ctx context.Context, input string, near models.Location) ([]models.PlacePrediction, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("input", input)
	if near.Latitude != 0 || near.Longitude != 0 {
		q.Set("location", strconv.FormatFloat(near.Latitude, 'f', 6, 64)+","+strconv.FormatFloat(near.Longitude, 'f', 6, 64))
		q.Set("radius", "20000")
	}
	body, err := g.get(ctx, "/place/autocomplete/json", q)
	if err != nil {
		return nil, err
	}

	predictions := []models.PlacePrediction{}
	gjson.GetBytes(body, "predictions").ForEach(func(_, p gjson.Result) bool {
		predictions = append(predictions, models.PlacePrediction{
			PlaceID:     p.Get("place_id").String(),
			Description: p.Get("description").String(),
		})
		return true
	})
	g.logger.Debug("places autocomplete", zap.String("input", input), zap.Int("results", len(predictions)))
	return predictions, nil
}
