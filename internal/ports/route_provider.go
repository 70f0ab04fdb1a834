package ports

import (
	"context"
	"encoding/json"
	"errors"

	"trip-planner-service/internal/domain"
)

// ErrRouteUnavailable marks waypoints the external routing service
// could not connect with truck-legal roads. Callers must receive this
// explicitly rather than a zero or garbage leg.
var ErrRouteUnavailable = errors.New("route unavailable")

// RouteResult is a resolved route between ordered waypoints: one leg
// per consecutive waypoint pair, plus totals and the drawable geometry
// returned by the routing service.
type RouteResult struct {
	Legs                 []domain.RouteLeg
	TotalDistanceMeters  float64
	TotalDurationSeconds float64
	Geometry             json.RawMessage
}

// Contract for resolving an ordered list of stop points into travel
// legs with distance and duration.
type RouteProvider interface {
	// GetRoute returns the legs connecting the waypoints in order.
	// Returns ErrRouteUnavailable when any pair cannot be routed.
	GetRoute(ctx context.Context, waypoints []domain.GeoPoint) (*RouteResult, error)
}
