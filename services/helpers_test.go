package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"salonbook-client/backend"
	"salonbook-client/models"

	"go.uber.org/zap"
)

const testSecret = "device-secret"

type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (m *memStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// fakeBackend routes "METHOD /path" to handlers and counts every hit.
type fakeBackend struct {
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	hits     map[string]int
}

func newFakeBackend(t *testing.T) (*fakeBackend, *backend.Client) {
	t.Helper()
	fb := &fakeBackend{handlers: map[string]http.HandlerFunc{}, hits: map[string]int{}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		fb.mu.Lock()
		fb.hits[key]++
		h, ok := fb.handlers[key]
		fb.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"no route"}`))
			return
		}
		h(w, r)
	}))
	t.Cleanup(server.Close)

	client := backend.New(backend.Config{BaseURL: server.URL, Timeout: 2 * time.Second})
	return fb, client
}

func (fb *fakeBackend) on(method, path string, h http.HandlerFunc) {
	fb.mu.Lock()
	fb.handlers[method+" "+path] = h
	fb.mu.Unlock()
}

func (fb *fakeBackend) onJSON(method, path string, status int, body interface{}) {
	fb.on(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	})
}

func (fb *fakeBackend) count(method, path string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.hits[method+" "+path]
}

func (fb *fakeBackend) total() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	n := 0
	for _, v := range fb.hits {
		n += v
	}
	return n
}

var testDefaultLocation = models.Location{Latitude: 28.6139, Longitude: 77.2090}

func newTestSession(api *backend.Client, store DeviceStore) *SessionContext {
	return NewSessionContext(SessionConfig{
		API:             api,
		Store:           store,
		DeviceSecret:    testSecret,
		DefaultLocation: testDefaultLocation,
		Logger:          zap.NewNop(),
	})
}

// loggedIn puts a profile on the session without going through the backend.
func loggedIn(s *SessionContext, api *backend.Client, balance float64) {
	api.SetToken("tok-1")
	s.mu.Lock()
	s.profile = &models.UserProfile{ID: "u1", Name: "Asha", WalletBalance: balance, ReferralCode: "ASHA50"}
	s.route = RouteHome
	s.mu.Unlock()
}
