package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"salonbook-client/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWalletOverview(t *testing.T) {
	fb, api := newFakeBackend(t)
	session := newTestSession(api, newMemStore())
	loggedIn(session, api, 640)
	fb.onJSON(http.MethodGet, "/wallet/pay-in", http.StatusOK, map[string]interface{}{
		"transactions": []map[string]interface{}{{"id": "t1", "amount": 500}},
	})
	fb.onJSON(http.MethodGet, "/wallet/pay-out", http.StatusOK, map[string]interface{}{})

	svc := NewWalletService(api, session, zap.NewNop())
	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 640.0, overview.Balance)
	require.Len(t, overview.Credits, 1)
	assert.Equal(t, "t1", overview.Credits[0].ID)
	assert.NotNil(t, overview.Debits)
	assert.Empty(t, overview.Debits)
}

func TestWalletOverview_OneListFails(t *testing.T) {
	fb, api := newFakeBackend(t)
	session := newTestSession(api, newMemStore())
	loggedIn(session, api, 0)
	fb.onJSON(http.MethodGet, "/wallet/pay-in", http.StatusOK, map[string]interface{}{"transactions": []interface{}{}})
	fb.onJSON(http.MethodGet, "/wallet/pay-out", http.StatusInternalServerError, map[string]string{"message": "ledger offline"})

	_, err := NewWalletService(api, session, zap.NewNop()).Overview(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger offline")
}

func TestWalletTopUp(t *testing.T) {
	fb, api := newFakeBackend(t)
	session := newTestSession(api, newMemStore())
	svc := NewWalletService(api, session, zap.NewNop())

	_, err := svc.TopUp(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = svc.TopUp(context.Background(), 100)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	loggedIn(session, api, 0)
	fb.onJSON(http.MethodPost, "/wallet/top-up", http.StatusOK, map[string]string{
		"paymentId":  "pay-9",
		"paymentUrl": "https://pay.example.com/pay-9",
	})
	topUp, err := svc.TopUp(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "pay-9", topUp.PaymentID)
	assert.Equal(t, 100.0, topUp.Amount)
}

func TestGoogleMaps_ReverseGeocodeAndAutocomplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		switch r.URL.Path {
		case "/geocode/json":
			w.Write([]byte(`{"status":"OK","results":[{"address_components":[
				{"long_name":"Connaught Place","types":["sublocality"]},
				{"long_name":"New Delhi","types":["locality","political"]},
				{"long_name":"Delhi","types":["administrative_area_level_1"]}
			]}]}`))
		case "/place/autocomplete/json":
			assert.Equal(t, "Conn", r.URL.Query().Get("input"))
			w.Write([]byte(`{"status":"OK","predictions":[{"place_id":"p1","description":"Connaught Place, New Delhi"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	maps := NewGoogleMaps("test-key", 100, zap.NewNop())
	maps.baseURL = server.URL

	city, err := maps.ReverseGeocode(context.Background(), 28.63, 77.21)
	require.NoError(t, err)
	assert.Equal(t, "New Delhi", city)

	predictions, err := maps.Autocomplete(context.Background(), "Conn", models.Location{Latitude: 28.63, Longitude: 77.21})
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	assert.Equal(t, "p1", predictions[0].PlaceID)
}

func TestGoogleMaps_NoKey(t *testing.T) {
	maps := NewGoogleMaps("", 0, zap.NewNop())
	_, err := maps.ReverseGeocode(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrMapsUnavailable)
}
