package route

import (
	"context"
	"fmt"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// MockRouteProvider serves canned routes keyed by waypoint sequence.
type MockRouteProvider struct {
	m map[string]*ports.RouteResult
}

func NewMockRouteProvider() *MockRouteProvider {
	return &MockRouteProvider{m: make(map[string]*ports.RouteResult)}
}

// Add registers a canned result for the waypoint sequence.
func (p *MockRouteProvider) Add(waypoints []domain.GeoPoint, result *ports.RouteResult) {
	p.m[CacheKey(waypoints)] = result
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, waypoints []domain.GeoPoint) (*ports.RouteResult, error) {
	r, ok := p.m[CacheKey(waypoints)]
	if !ok {
		return nil, fmt.Errorf("missing route for %q: %w", CacheKey(waypoints), ports.ErrRouteUnavailable)
	}
	return r, nil
}
