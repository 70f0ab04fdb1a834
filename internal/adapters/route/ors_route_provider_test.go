package route

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

var testWaypoints = []domain.GeoPoint{
	{Lat: 41.8781, Lon: -87.6298, Name: "Chicago, IL"},
	{Lat: 39.7684, Lon: -86.1581, Name: "Indianapolis, IN"},
}

const directionsFixture = `{
	"features": [
		{
			"geometry": {"type": "LineString", "coordinates": [[-87.6298, 41.8781], [-86.1581, 39.7684]]},
			"properties": {
				"summary": {"distance": 295313.9, "duration": 10800},
				"segments": [
					{"distance": 295313.9, "duration": 10800}
				]
			}
		}
	]
}`

// memRouteCache is an in-memory RouteCache for wiring tests.
type memRouteCache struct {
	mu   sync.Mutex
	m    map[string]*ports.RouteResult
	puts int
}

func newMemRouteCache() *memRouteCache {
	return &memRouteCache{m: make(map[string]*ports.RouteResult)}
}

func (c *memRouteCache) Get(_ context.Context, key string) (*ports.RouteResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.m[key]
	return r, ok, nil
}

func (c *memRouteCache) Put(_ context.Context, key string, result *ports.RouteResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = result
	c.puts++
	return nil
}

func newTestProvider(t *testing.T, srvURL string, cache ports.RouteCache) *ORSRouteProvider {
	t.Helper()
	provider, err := NewORSRouteProvider("test-key", cache)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	provider.baseURL = srvURL
	return provider
}

func TestORSRouteProviderParsesDirections(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(directionsFixture))
	}))
	defer srv.Close()

	provider := newTestProvider(t, srv.URL, nil)

	result, err := provider.GetRoute(context.Background(), testWaypoints)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/v2/directions/driving-hgv/geojson" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotAuth != "test-key" {
		t.Errorf("Authorization = %q, want the api key", gotAuth)
	}

	if len(result.Legs) != 1 {
		t.Fatalf("got %d legs, want 1", len(result.Legs))
	}
	leg := result.Legs[0]
	if leg.Origin.Name != "Chicago, IL" || leg.Destination.Name != "Indianapolis, IN" {
		t.Errorf("leg endpoints = %q -> %q", leg.Origin.Name, leg.Destination.Name)
	}
	wantMiles := 295313.9 / domain.MetersPerMile
	if diff := leg.DistanceMiles - wantMiles; diff > 0.001 || diff < -0.001 {
		t.Errorf("leg distance = %f miles, want %f", leg.DistanceMiles, wantMiles)
	}
	if leg.Duration != 3*time.Hour {
		t.Errorf("leg duration = %s, want 3h", leg.Duration)
	}
	if result.TotalDistanceMeters != 295313.9 {
		t.Errorf("total distance = %f", result.TotalDistanceMeters)
	}
	if len(result.Geometry) == 0 {
		t.Error("geometry missing from result")
	}
}

func TestORSRouteProviderNotRoutable(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"http 404", http.StatusNotFound, `{"error":{"code":2009,"message":"Route could not be found"}}`},
		{"code 2010", http.StatusBadRequest, `{"error":{"code":2010,"message":"Could not find routable point"}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			provider := newTestProvider(t, srv.URL, nil)

			_, err := provider.GetRoute(context.Background(), testWaypoints)
			if !errors.Is(err, ports.ErrRouteUnavailable) {
				t.Fatalf("err = %v, want ErrRouteUnavailable", err)
			}
		})
	}
}

func TestORSRouteProviderRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(directionsFixture))
	}))
	defer srv.Close()

	provider := newTestProvider(t, srv.URL, nil)

	result, err := provider.GetRoute(context.Background(), testWaypoints)
	if err != nil {
		t.Fatalf("unexpected error after retries: %v", err)
	}
	if calls != 3 {
		t.Errorf("server called %d times, want 3", calls)
	}
	if len(result.Legs) != 1 {
		t.Errorf("got %d legs, want 1", len(result.Legs))
	}
}

func TestORSRouteProviderUsesCache(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(directionsFixture))
	}))
	defer srv.Close()

	cache := newMemRouteCache()
	provider := newTestProvider(t, srv.URL, cache)

	if _, err := provider.GetRoute(context.Background(), testWaypoints); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := provider.GetRoute(context.Background(), testWaypoints); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Errorf("upstream called %d times, want 1 (second call cached)", calls)
	}
	if cache.puts != 1 {
		t.Errorf("cache writes = %d, want 1", cache.puts)
	}
}

func TestORSRouteProviderTooFewWaypoints(t *testing.T) {
	provider := newTestProvider(t, "http://unused.invalid", nil)

	if _, err := provider.GetRoute(context.Background(), testWaypoints[:1]); err == nil {
		t.Fatal("expected an error for a single waypoint")
	}
}

func TestCacheKeyStableUnderFloatNoise(t *testing.T) {
	a := []domain.GeoPoint{{Lat: 41.87810000001, Lon: -87.62980000001}, {Lat: 39.7684, Lon: -86.1581}}
	b := []domain.GeoPoint{{Lat: 41.8781, Lon: -87.6298}, {Lat: 39.7684, Lon: -86.1581}}

	if CacheKey(a) != CacheKey(b) {
		t.Errorf("keys differ: %q vs %q", CacheKey(a), CacheKey(b))
	}
}
