package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"salonbook-client/backend"
	"salonbook-client/models"
	"salonbook-client/utils"

	"go.uber.org/zap"
)

// Routes the renderer is sent to.
const (
	RouteHome    = "home"
	RouteWelcome = "welcome"
)

const (
	msgSessionExpired = "Your session has expired. Please log in again."
	msgLocationDenied = "Location permission denied. Showing salons near the default location."
)

type SessionConfig struct {
	API             *backend.Client
	Store           DeviceStore
	Geocoder        Geocoder
	DeviceSecret    string
	DefaultLocation models.Location
	Logger          *zap.Logger
	Now             func() time.Time
}

// PushRegistration is what the device reports after asking the OS for a push
// token.
type PushRegistration struct {
	Token    string `json:"token"`
	IsDevice bool   `json:"isDevice"`
}

// SessionState is the snapshot handed to every screen.
type SessionState struct {
	LoggedIn       bool                `json:"loggedIn"`
	Profile        *models.UserProfile `json:"profile,omitempty"`
	Location       models.Location     `json:"location"`
	PushRegistered bool                `json:"pushRegistered"`
	Route          string              `json:"route"`
	Alerts         []string            `json:"alerts,omitempty"`
}

// SessionContext owns the auth token, the user profile, the device location
// and the push token. Everything else reads them from here.
type SessionContext struct {
	api             *backend.Client
	store           DeviceStore
	geocoder        Geocoder
	secret          string
	defaultLocation models.Location
	logger          *zap.Logger
	now             func() time.Time

	mu            sync.RWMutex
	profile       *models.UserProfile
	location      models.Location
	locationKnown bool
	pushToken     string
	route         string
	alerts        []string
	onChange      []func()
}

type storedLocation struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	PermissionDenied bool    `json:"permissionDenied"`
}

func NewSessionContext(cfg SessionConfig) *SessionContext {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	def := cfg.DefaultLocation
	def.IsDefault = true

	return &SessionContext{
		api:             cfg.API,
		store:           cfg.Store,
		geocoder:        cfg.Geocoder,
		secret:          cfg.DeviceSecret,
		defaultLocation: def,
		logger:          logger,
		now:             now,
		route:           RouteWelcome,
	}
}

// Bootstrap runs the start-up sequence: location, stored token, profile,
// push token, then the location sync once profile and location are known.
func (s *SessionContext) Bootstrap(ctx context.Context) SessionState {
	s.resolveLocation(ctx)
	s.restorePushToken(ctx)
	if s.restoreToken(ctx) {
		if _, err := s.loadProfile(ctx, true); err != nil {
			s.logger.Warn("profile fetch failed during bootstrap", zap.Error(err))
		}
	}
	s.syncLocation(ctx)
	return s.Snapshot()
}

func (s *SessionContext) SendOTP(ctx context.Context, mobile string) error {
	if !utils.ValidatePhone(mobile) {
		return ErrInvalidPhone
	}
	return s.api.SendOTP(ctx, utils.NormalizePhone(mobile))
}

// VerifyOTP completes login: the token is persisted, the profile loaded and
// the location pushed.
func (s *SessionContext) VerifyOTP(ctx context.Context, mobile, otp string) (*models.UserProfile, error) {
	if !utils.ValidatePhone(mobile) {
		return nil, ErrInvalidPhone
	}
	if !utils.ValidateOTP(otp) {
		return nil, ErrInvalidOTP
	}

	resp, err := s.api.VerifyOTP(ctx, utils.NormalizePhone(mobile), otp)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("login response carried no token")
	}

	sealed, err := utils.SealToken(resp.Token, s.secret)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, keyAuthToken, sealed); err != nil {
		return nil, err
	}
	s.api.SetToken(resp.Token)

	profile := resp.User
	if profile.ID == "" {
		loaded, err := s.loadProfile(ctx, true)
		if err != nil {
			return nil, err
		}
		profile = *loaded
	} else {
		s.mu.Lock()
		s.profile = &profile
		s.route = RouteHome
		s.mu.Unlock()
	}

	s.logger.Info("user logged in", zap.String("userId", profile.ID))
	s.notifyChange()
	s.syncLocation(ctx)
	return &profile, nil
}

// RefreshProfile re-fetches the profile, e.g. after the wallet balance
// changed. A 401/404 ends the session.
func (s *SessionContext) RefreshProfile(ctx context.Context) (*models.UserProfile, error) {
	if s.api.Token() == "" {
		return nil, ErrNotLoggedIn
	}
	return s.loadProfile(ctx, false)
}

func (s *SessionContext) Logout(ctx context.Context) {
	s.logout(ctx, "")
}

// OnChange registers fn to run whenever the signed-in user changes (login or
// logout). Per-user screen state is dropped from here.
func (s *SessionContext) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

func (s *SessionContext) notifyChange() {
	s.mu.RLock()
	hooks := append([]func(){}, s.onChange...)
	s.mu.RUnlock()
	for _, fn := range hooks {
		fn()
	}
}

// SetLocation records a fix (or a permission denial) reported by the device.
func (s *SessionContext) SetLocation(ctx context.Context, loc models.Location) (SessionState, error) {
	if !loc.PermissionDenied && (loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180) {
		return SessionState{}, ErrInvalidLocation
	}

	raw, err := json.Marshal(storedLocation{
		Latitude:         loc.Latitude,
		Longitude:        loc.Longitude,
		PermissionDenied: loc.PermissionDenied,
	})
	if err == nil {
		err = s.store.Set(ctx, keyLocation, string(raw))
	}
	if err != nil {
		s.logger.Warn("failed to persist location", zap.Error(err))
	}

	s.applyLocation(ctx, loc, true)
	s.syncLocation(ctx)
	return s.Snapshot(), nil
}

// SetPushToken stores the device push token. Simulators have none and are
// skipped; storage failures are ignored.
func (s *SessionContext) SetPushToken(ctx context.Context, reg PushRegistration) SessionState {
	if !reg.IsDevice {
		s.logger.Info("push registration skipped: not a physical device")
		return s.Snapshot()
	}
	if reg.Token == "" {
		return s.Snapshot()
	}

	if err := s.store.Set(ctx, keyPushToken, reg.Token); err != nil {
		s.logger.Debug("failed to persist push token", zap.Error(err))
	}
	s.mu.Lock()
	s.pushToken = reg.Token
	s.mu.Unlock()

	s.syncLocation(ctx)
	return s.Snapshot()
}

// Profile returns a copy of the current profile, nil when logged out.
func (s *SessionContext) Profile() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

func (s *SessionContext) Location() models.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.locationKnown {
		return s.defaultLocation
	}
	return s.location
}

// Snapshot returns the session state and hands over pending alerts; each
// alert is delivered once.
func (s *SessionContext) Snapshot() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := SessionState{
		LoggedIn:       s.profile != nil,
		Location:       s.location,
		PushRegistered: s.pushToken != "",
		Route:          s.route,
		Alerts:         s.alerts,
	}
	if !s.locationKnown {
		state.Location = s.defaultLocation
	}
	if s.profile != nil {
		p := *s.profile
		state.Profile = &p
	}
	s.alerts = nil
	return state
}

func (s *SessionContext) addAlert(msg string) {
	s.mu.Lock()
	s.alerts = append(s.alerts, msg)
	s.mu.Unlock()
}

func (s *SessionContext) resolveLocation(ctx context.Context) {
	raw, ok, err := s.store.Get(ctx, keyLocation)
	if err != nil {
		s.logger.Warn("failed to read stored location", zap.Error(err))
	}

	var loc models.Location
	if ok {
		var stored storedLocation
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			s.logger.Warn("stored location is corrupt", zap.Error(err))
			ok = false
		} else {
			loc = models.Location{
				Latitude:         stored.Latitude,
				Longitude:        stored.Longitude,
				PermissionDenied: stored.PermissionDenied,
			}
		}
	}
	s.applyLocation(ctx, loc, ok)
}

func (s *SessionContext) applyLocation(ctx context.Context, loc models.Location, found bool) {
	if !found || loc.PermissionDenied {
		if loc.PermissionDenied {
			s.addAlert(msgLocationDenied)
		}
		loc = s.defaultLocation
	} else {
		loc.IsDefault = false
	}

	loc.City = ""
	if s.geocoder != nil {
		city, err := s.geocoder.ReverseGeocode(ctx, loc.Latitude, loc.Longitude)
		if err != nil {
			s.logger.Debug("reverse geocoding failed", zap.Error(err))
		}
		loc.City = city
	}

	s.mu.Lock()
	s.location = loc
	s.locationKnown = true
	s.mu.Unlock()
}

func (s *SessionContext) restorePushToken(ctx context.Context) {
	token, ok, err := s.store.Get(ctx, keyPushToken)
	if err != nil || !ok {
		return
	}
	s.mu.Lock()
	s.pushToken = token
	s.mu.Unlock()
}

func (s *SessionContext) restoreToken(ctx context.Context) bool {
	sealed, ok, err := s.store.Get(ctx, keyAuthToken)
	if err != nil {
		s.logger.Warn("failed to read stored token", zap.Error(err))
		return false
	}
	if !ok {
		return false
	}

	token, err := utils.OpenToken(sealed, s.secret)
	if err != nil {
		s.logger.Warn("discarding unreadable stored token", zap.Error(err))
		s.logout(ctx, "")
		return false
	}
	if utils.TokenExpired(token, s.now()) {
		s.logger.Info("stored token expired")
		s.logout(ctx, msgSessionExpired)
		return false
	}

	s.api.SetToken(token)
	return true
}

// loadProfile fetches the profile. 401/404 always log the user out; other
// failures only do so when forceLogout is set (start-up and login).
func (s *SessionContext) loadProfile(ctx context.Context, forceLogout bool) (*models.UserProfile, error) {
	profile, err := s.api.GetUserInfo(ctx)
	if err != nil {
		switch {
		case backend.IsSessionInvalid(err):
			s.logout(ctx, msgSessionExpired)
		case forceLogout:
			s.logout(ctx, backend.AlertMessage(err))
		}
		return nil, err
	}

	s.mu.Lock()
	s.profile = profile
	s.route = RouteHome
	s.mu.Unlock()

	p := *profile
	return &p, nil
}

func (s *SessionContext) logout(ctx context.Context, alert string) {
	if err := s.store.Delete(ctx, keyAuthToken); err != nil {
		s.logger.Warn("failed to clear stored token", zap.Error(err))
	}
	s.api.SetToken("")

	s.mu.Lock()
	s.profile = nil
	s.route = RouteWelcome
	if alert != "" {
		s.alerts = append(s.alerts, alert)
	}
	s.mu.Unlock()

	s.notifyChange()
}

// syncLocation pushes location and push token once both profile and
// location are known. Failures are only logged.
func (s *SessionContext) syncLocation(ctx context.Context) {
	s.mu.RLock()
	profile := s.profile
	loc := s.location
	known := s.locationKnown
	push := s.pushToken
	s.mu.RUnlock()

	if profile == nil || !known {
		return
	}

	err := s.api.UpdateLocation(ctx, backend.LocationUpdate{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		City:      loc.City,
		PushToken: push,
	})
	if err != nil {
		s.logger.Warn("location sync failed", zap.Error(err))
	}
}
