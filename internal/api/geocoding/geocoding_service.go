package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	appmetrics "github.com/Abhishek-Jose7/hangout-sub000/app/observability/metrics"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/types"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service resolves free-text addresses to coordinates and coordinates back
// to human-readable labels. Not-found is a normal outcome, never an error:
// Resolve returns nil and ResolveLabel returns "" when the provider has no
// answer or the call fails in transport. Raw transport errors never leave
// this package.
type Service interface {
	Resolve(ctx context.Context, address string) *types.Coordinates
	ResolveLabel(ctx context.Context, lat, lng float64) string
}

// ServiceImpl is a Nominatim-compatible geocoding client. Responses are
// cached so the same address is never resolved twice within a process.
type ServiceImpl struct {
	logger    *slog.Logger
	client    *http.Client
	baseURL   string
	userAgent string
	cache     *cache.Cache
	metrics   *appmetrics.AppMetrics
}

func NewServiceImpl(baseURL, userAgent string, timeout time.Duration, m *appmetrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		client:    &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		userAgent: userAgent,
		cache:     cache.New(1*time.Hour, 10*time.Minute),
		metrics:   m,
	}
}

// forwardResult mirrors the provider's search response. Lat/lon arrive as
// strings.
type forwardResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// reverseResult mirrors the provider's reverse response.
type reverseResult struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Suburb        string `json:"suburb"`
		Neighbourhood string `json:"neighbourhood"`
		City          string `json:"city"`
		Town          string `json:"town"`
		Village       string `json:"village"`
	} `json:"address"`
}

// Resolve forward-geocodes a free-text address. Returns nil when the
// address cannot be resolved for any reason.
func (s *ServiceImpl) Resolve(ctx context.Context, address string) *types.Coordinates {
	ctx, span := otel.Tracer("GeocodingService").Start(ctx, "Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("geocode.address", address))

	if address == "" {
		return nil
	}

	cacheKey := "geo:" + address
	if cached, found := s.cache.Get(cacheKey); found {
		if coords, ok := cached.(*types.Coordinates); ok {
			return coords
		}
	}

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	var results []forwardResult
	err := s.get(ctx, s.baseURL+"/search?"+query.Encode(), &results)
	s.countLookup(ctx, "forward", err)
	if err != nil {
		s.logger.WarnContext(ctx, "Forward geocoding failed, treating as not-found",
			slog.String("address", address), slog.Any("error", err))
		return nil
	}
	if len(results) == 0 {
		s.logger.DebugContext(ctx, "No geocoding result for address", slog.String("address", address))
		s.cache.Set(cacheKey, (*types.Coordinates)(nil), cache.DefaultExpiration)
		return nil
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lng, errLng := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLng != nil {
		s.logger.WarnContext(ctx, "Geocoding result has unparseable coordinates",
			slog.String("address", address))
		return nil
	}

	coords := &types.Coordinates{
		Latitude:         lat,
		Longitude:        lng,
		FormattedAddress: results[0].DisplayName,
	}
	s.cache.Set(cacheKey, coords, cache.DefaultExpiration)
	return coords
}

// ResolveLabel reverse-geocodes a point to a short human label, preferring
// a suburb/neighbourhood name over the city, falling back to the full
// display string. Returns "" when the lookup fails.
func (s *ServiceImpl) ResolveLabel(ctx context.Context, lat, lng float64) string {
	ctx, span := otel.Tracer("GeocodingService").Start(ctx, "ResolveLabel")
	defer span.End()

	cacheKey := fmt.Sprintf("rev:%.5f:%.5f", lat, lng)
	if cached, found := s.cache.Get(cacheKey); found {
		if label, ok := cached.(string); ok {
			return label
		}
	}

	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	query.Set("format", "json")

	var result reverseResult
	err := s.get(ctx, s.baseURL+"/reverse?"+query.Encode(), &result)
	s.countLookup(ctx, "reverse", err)
	if err != nil {
		s.logger.WarnContext(ctx, "Reverse geocoding failed, treating as not-found",
			slog.Float64("lat", lat), slog.Float64("lng", lng), slog.Any("error", err))
		return ""
	}

	label := pickLabel(result)
	if label != "" {
		s.cache.Set(cacheKey, label, cache.DefaultExpiration)
	}
	return label
}

// countLookup records one provider round trip. Cache hits are not counted;
// the instrument tracks external-call volume.
func (s *ServiceImpl) countLookup(ctx context.Context, op string, lookupErr error) {
	if s.metrics == nil {
		return
	}
	outcome := "ok"
	if lookupErr != nil {
		outcome = "error"
	}
	s.metrics.GeocodeLookupsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", outcome),
	))
}

// pickLabel prefers the most local component available.
func pickLabel(r reverseResult) string {
	switch {
	case r.Address.Suburb != "":
		return r.Address.Suburb
	case r.Address.Neighbourhood != "":
		return r.Address.Neighbourhood
	case r.Address.City != "":
		return r.Address.City
	case r.Address.Town != "":
		return r.Address.Town
	case r.Address.Village != "":
		return r.Address.Village
	default:
		return r.DisplayName
	}
}

// get performs one provider call and decodes the JSON body into dst. The
// User-Agent identifies this client per the provider's usage policy.
func (s *ServiceImpl) get(ctx context.Context, rawURL string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build geocoding request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoding provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read geocoding response: %w", err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to parse geocoding response: %w", err)
	}
	return nil
}
