package meetpoint

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Abhishek-Jose7/hangout-sub000/internal/api/geocoding"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/types"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service computes a fair meeting point from member home locations.
type Service interface {
	Resolve(ctx context.Context, locations []types.Location) types.MeetingPoint
}

// ServiceImpl averages the resolved member coordinates. The arithmetic mean
// ignores Earth curvature and does not minimise total travel time; it is a
// deliberate approximation of a fair midpoint.
type ServiceImpl struct {
	logger   *slog.Logger
	geocoder geocoding.Service
}

func NewServiceImpl(geocoder geocoding.Service, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		geocoder: geocoder,
	}
}

// Resolve geocodes every location concurrently, averages the subset that
// resolved, and reverse-resolves the mean point to a label. A member whose
// address fails to resolve is simply excluded from the average. When no
// member resolves at all, the first location's raw text becomes the label
// and the point carries no coordinates.
func (s *ServiceImpl) Resolve(ctx context.Context, locations []types.Location) types.MeetingPoint {
	ctx, span := otel.Tracer("MeetpointService").Start(ctx, "Resolve")
	defer span.End()
	span.SetAttributes(attribute.Int("meetpoint.member_count", len(locations)))

	resolved := make([]*types.Coordinates, len(locations))
	var wg sync.WaitGroup
	wg.Add(len(locations))
	for i, loc := range locations {
		go func(i int, address string) {
			defer wg.Done()
			resolved[i] = s.geocoder.Resolve(ctx, address)
		}(i, loc.Address)
	}
	wg.Wait()

	var sumLat, sumLng float64
	count := 0
	for _, coords := range resolved {
		if coords == nil {
			continue
		}
		sumLat += coords.Latitude
		sumLng += coords.Longitude
		count++
	}

	if count == 0 {
		s.logger.WarnContext(ctx, "No member location resolved, falling back to first raw address",
			slog.String("address", locations[0].Address))
		return types.MeetingPoint{Label: locations[0].Address}
	}

	center := types.Coordinates{
		Latitude:  sumLat / float64(count),
		Longitude: sumLng / float64(count),
	}

	label := s.geocoder.ResolveLabel(ctx, center.Latitude, center.Longitude)
	if label == "" {
		// A label is still useful for prompts even when reverse lookup fails.
		label = locations[0].Address
	}

	s.logger.InfoContext(ctx, "Resolved meeting point",
		slog.Int("resolved_members", count),
		slog.Int("total_members", len(locations)),
		slog.String("label", label))

	return types.MeetingPoint{Coordinates: &center, Label: label}
}
