package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"salonbook-client/models"
	"salonbook-client/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("backend-key"))
	require.NoError(t, err)
	return token
}

func storeToken(t *testing.T, store *memStore, token string) {
	t.Helper()
	sealed, err := utils.SealToken(token, testSecret)
	require.NoError(t, err)
	store.data[keyAuthToken] = sealed
}

func TestBootstrap_NoToken(t *testing.T) {
	fb, api := newFakeBackend(t)
	store := newMemStore()
	session := newTestSession(api, store)

	state := session.Bootstrap(context.Background())

	assert.False(t, state.LoggedIn)
	assert.Equal(t, RouteWelcome, state.Route)
	assert.True(t, state.Location.IsDefault)
	assert.Equal(t, testDefaultLocation.Latitude, state.Location.Latitude)
	assert.Equal(t, 0, fb.total())
}

func TestBootstrap_ValidTokenLoadsProfileAndSyncsLocation(t *testing.T) {
	fb, api := newFakeBackend(t)
	store := newMemStore()
	token := signedToken(t, time.Now().Add(time.Hour))
	storeToken(t, store, token)
	store.data[keyPushToken] = "push-1"

	fb.on(http.MethodGet, "/user/info", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		w.Write([]byte(`{"user":{"id":"u1","name":"Asha","walletBalance":120}}`))
	})
	var update map[string]interface{}
	fb.on(http.MethodPatch, "/user/location", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&update)
		w.WriteHeader(http.StatusOK)
	})

	session := newTestSession(api, store)
	state := session.Bootstrap(context.Background())

	assert.True(t, state.LoggedIn)
	assert.Equal(t, RouteHome, state.Route)
	assert.True(t, state.PushRegistered)
	require.NotNil(t, state.Profile)
	assert.Equal(t, 120.0, state.Profile.WalletBalance)

	assert.Equal(t, 1, fb.count(http.MethodPatch, "/user/location"))
	assert.Equal(t, "push-1", update["pushToken"])
	assert.Equal(t, testDefaultLocation.Latitude, update["latitude"])
}

func TestBootstrap_UnauthorizedClearsToken(t *testing.T) {
	fb, api := newFakeBackend(t)
	store := newMemStore()
	storeToken(t, store, "opaque-token")
	fb.onJSON(http.MethodGet, "/user/info", http.StatusUnauthorized, map[string]string{"message": "jwt expired"})

	session := newTestSession(api, store)
	state := session.Bootstrap(context.Background())

	assert.False(t, state.LoggedIn)
	assert.Equal(t, RouteWelcome, state.Route)
	assert.Contains(t, state.Alerts, msgSessionExpired)
	_, ok, _ := store.Get(context.Background(), keyAuthToken)
	assert.False(t, ok)
	assert.Empty(t, api.Token())
	assert.Equal(t, 0, fb.count(http.MethodPatch, "/user/location"))
}

func TestBootstrap_ServerErrorForcesLogout(t *testing.T) {
	fb, api := newFakeBackend(t)
	store := newMemStore()
	storeToken(t, store, "opaque-token")
	fb.onJSON(http.MethodGet, "/user/info", http.StatusInternalServerError, map[string]string{"error": "database down"})

	session := newTestSession(api, store)
	state := session.Bootstrap(context.Background())

	assert.False(t, state.LoggedIn)
	assert.Contains(t, state.Alerts, "database down")
}

func TestBootstrap_ExpiredTokenSkipsNetwork(t *testing.T) {
	fb, api := newFakeBackend(t)
	store := newMemStore()
	storeToken(t, store, signedToken(t, time.Now().Add(-time.Hour)))

	session := newTestSession(api, store)
	state := session.Bootstrap(context.Background())

	assert.False(t, state.LoggedIn)
	assert.Contains(t, state.Alerts, msgSessionExpired)
	assert.Equal(t, 0, fb.total())
	_, ok, _ := store.Get(context.Background(), keyAuthToken)
	assert.False(t, ok)
}

func TestSnapshot_AlertsDeliveredOnce(t *testing.T) {
	_, api := newFakeBackend(t)
	store := newMemStore()
	storeToken(t, store, signedToken(t, time.Now().Add(-time.Hour)))

	session := newTestSession(api, store)
	first := session.Bootstrap(context.Background())
	second := session.Snapshot()

	assert.NotEmpty(t, first.Alerts)
	assert.Empty(t, second.Alerts)
}

func TestSetLocation_PermissionDeniedFallsBackToDefault(t *testing.T) {
	_, api := newFakeBackend(t)
	store := newMemStore()
	session := newTestSession(api, store)

	state, err := session.SetLocation(context.Background(), models.Location{PermissionDenied: true})
	require.NoError(t, err)

	assert.True(t, state.Location.IsDefault)
	assert.Equal(t, testDefaultLocation.Longitude, state.Location.Longitude)
	assert.Contains(t, state.Alerts, msgLocationDenied)

	// The denial survives a restart.
	restarted := newTestSession(api, store).Bootstrap(context.Background())
	assert.True(t, restarted.Location.IsDefault)
	assert.Contains(t, restarted.Alerts, msgLocationDenied)
}

func TestSetLocation_FixIsUsed(t *testing.T) {
	_, api := newFakeBackend(t)
	session := newTestSession(api, newMemStore())

	state, err := session.SetLocation(context.Background(), models.Location{Latitude: 19.07, Longitude: 72.87})
	require.NoError(t, err)
	assert.False(t, state.Location.IsDefault)
	assert.Equal(t, 19.07, session.Location().Latitude)

	_, err = session.SetLocation(context.Background(), models.Location{Latitude: 120, Longitude: 0})
	assert.ErrorIs(t, err, ErrInvalidLocation)
}

func TestSetPushToken_SimulatorSkipped(t *testing.T) {
	fb, api := newFakeBackend(t)
	store := newMemStore()
	session := newTestSession(api, store)
	loggedIn(session, api, 0)

	state := session.SetPushToken(context.Background(), PushRegistration{Token: "sim-token", IsDevice: false})

	assert.False(t, state.PushRegistered)
	_, ok, _ := store.Get(context.Background(), keyPushToken)
	assert.False(t, ok)
	assert.Equal(t, 0, fb.total())
}

func TestVerifyOTP_StoresSealedToken(t *testing.T) {
	fb, api := newFakeBackend(t)
	store := newMemStore()
	fb.onJSON(http.MethodPost, "/auth/verify-otp", http.StatusOK, map[string]interface{}{
		"token": "tok-abc",
		"user":  map[string]interface{}{"id": "u1", "name": "Asha"},
	})
	fb.onJSON(http.MethodPatch, "/user/location", http.StatusOK, map[string]string{})

	session := newTestSession(api, store)
	session.Bootstrap(context.Background())

	profile, err := session.VerifyOTP(context.Background(), "+91 98000 00000", "1234")
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.ID)
	assert.Equal(t, "tok-abc", api.Token())

	sealed, ok, _ := store.Get(context.Background(), keyAuthToken)
	require.True(t, ok)
	assert.NotEqual(t, "tok-abc", sealed)
	opened, err := utils.OpenToken(sealed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", opened)

	assert.Equal(t, 1, fb.count(http.MethodPatch, "/user/location"))
	assert.Equal(t, RouteHome, session.Snapshot().Route)
}

func TestVerifyOTP_RejectsBadInputWithoutNetwork(t *testing.T) {
	fb, api := newFakeBackend(t)
	session := newTestSession(api, newMemStore())

	_, err := session.VerifyOTP(context.Background(), "12", "1234")
	assert.ErrorIs(t, err, ErrInvalidPhone)
	_, err = session.VerifyOTP(context.Background(), "+919800000000", "12a4")
	assert.ErrorIs(t, err, ErrInvalidOTP)
	assert.Equal(t, 0, fb.total())
}

func TestRefreshProfile_NotLoggedIn(t *testing.T) {
	_, api := newFakeBackend(t)
	session := newTestSession(api, newMemStore())

	_, err := session.RefreshProfile(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestRefreshProfile_ServerErrorKeepsSession(t *testing.T) {
	fb, api := newFakeBackend(t)
	session := newTestSession(api, newMemStore())
	loggedIn(session, api, 50)
	fb.onJSON(http.MethodGet, "/user/info", http.StatusBadGateway, map[string]string{"message": "upstream"})

	_, err := session.RefreshProfile(context.Background())
	require.Error(t, err)
	assert.True(t, session.Snapshot().LoggedIn)
}
