package route

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// ORSRouteProvider implements RouteProvider using the OpenRouteService
// directions API with the truck (driving-hgv) profile.
//
// It coordinates:
//   - Waypoint cache keys and a persistent route cache
//   - External API calls with retry/backoff
//   - Translation of "not routable" responses into ErrRouteUnavailable
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	cache   ports.RouteCache
}

func NewORSRouteProvider(apiKey string, cache ports.RouteCache) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSRouteProvider{
		session: &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-hgv",
		cache:   cache,
	}

	return provider, nil
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Features []struct {
		Geometry json.RawMessage `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
			Segments []struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"segments"`
		} `json:"properties"`
	} `json:"features"`
}

// GetRoute resolves the waypoints into one leg per consecutive pair.
// Results are served from the route cache when available.
func (o *ORSRouteProvider) GetRoute(
	ctx context.Context,
	waypoints []domain.GeoPoint,
) (_ *ports.RouteResult, err error) {
	defer obs.Time(ctx, "ors.GetRoute")(&err)

	if len(waypoints) < 2 {
		return nil, fmt.Errorf("get ORS route: need at least 2 waypoints, got %d", len(waypoints))
	}

	key := CacheKey(waypoints)

	if o.cache != nil {
		cached, ok, err := o.cache.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get ORS route: cache read: %w", err)
		}
		if ok {
			return cached, nil
		}
	}

	result, err := o.fetchDirections(ctx, waypoints)
	if err != nil {
		return nil, err
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, key, result); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return result, nil
}

func (o *ORSRouteProvider) fetchDirections(
	ctx context.Context,
	waypoints []domain.GeoPoint,
) (*ports.RouteResult, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, o.profile)

	coords := make([][]float64, 0, len(waypoints))
	for _, p := range waypoints {
		coords = append(coords, p.CoordsToList())
	}

	payload, err := json.Marshal(directionsRequest{Coordinates: coords})
	if err != nil {
		return nil, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		body := bytes.NewReader(payload)
		return o.newRequest(ctx, http.MethodPost, endpoint, body)
	})
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) && isNotRoutable(he) {
			return nil, fmt.Errorf("ORS directions: %s: %w", he.Body, ports.ErrRouteUnavailable)
		}
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Features) == 0 {
		return nil, errors.New("directions response contains no features")
	}

	feature := dr.Features[0]
	segments := feature.Properties.Segments
	if len(segments) != len(waypoints)-1 {
		return nil, fmt.Errorf(
			"directions returned %d segments for %d waypoints",
			len(segments), len(waypoints),
		)
	}

	legs := make([]domain.RouteLeg, 0, len(segments))
	for i, seg := range segments {
		legs = append(legs, domain.RouteLeg{
			Origin:        waypoints[i],
			Destination:   waypoints[i+1],
			DistanceMiles: seg.Distance / domain.MetersPerMile,
			Duration:      time.Duration(seg.Duration * float64(time.Second)),
		})
	}

	return &ports.RouteResult{
		Legs:                 legs,
		TotalDistanceMeters:  feature.Properties.Summary.Distance,
		TotalDurationSeconds: feature.Properties.Summary.Duration,
		Geometry:             feature.Geometry,
	}, nil
}

// isNotRoutable recognizes the ORS responses for waypoints with no
// truck-legal road nearby (HTTP 404, internal error code 2010).
func isNotRoutable(he *httpStatusError) bool {
	if he.Code == http.StatusNotFound {
		return true
	}
	return strings.Contains(he.Body, "\"code\":2010") ||
		strings.Contains(he.Body, "routable point")
}

// CacheKey builds a stable cache key from the waypoint sequence.
// Coordinates are rounded to ~1m precision so float noise does not
// fragment the cache.
func CacheKey(waypoints []domain.GeoPoint) string {
	var b strings.Builder
	for i, p := range waypoints {
		if i > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "%.5f,%.5f", p.Lat, p.Lon)
	}
	return b.String()
}
