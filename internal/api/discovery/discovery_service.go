package discovery

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/Abhishek-Jose7/hangout-sub000/internal/api"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/types"
)

const (
	// External-call volume is bounded by discovering for at most two tags.
	maxTagsPerRequest = 2
	maxSearchLinks    = 3

	// Extraction calls to the generative collaborator are rate-sensitive;
	// per-tag pipelines never run more than this many at once.
	maxConcurrentTagPipelines = 2
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service finds real-world candidate venues near a meeting point. Discover
// returns an empty list, never an error, when every tag pipeline comes back
// empty; reacting to emptiness is the caller's policy decision.
type Service interface {
	Discover(ctx context.Context, point types.MeetingPoint, moodTags []string) []types.Venue
}

type ServiceImpl struct {
	logger    *slog.Logger
	search    SearchClient
	fetcher   PageFetcher
	extractor Extractor
}

func NewServiceImpl(search SearchClient, fetcher PageFetcher, extractor Extractor, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		search:    search,
		fetcher:   fetcher,
		extractor: extractor,
	}
}

// Discover runs a search-and-extract pipeline for up to two of the request's
// mood tags, concurrently, and merges the results de-duplicated by exact
// venue name.
func (s *ServiceImpl) Discover(ctx context.Context, point types.MeetingPoint, moodTags []string) []types.Venue {
	ctx, span := otel.Tracer("DiscoveryService").Start(ctx, "Discover")
	defer span.End()

	tags := moodTags
	if len(tags) > maxTagsPerRequest {
		tags = tags[:maxTagsPerRequest]
	}
	span.SetAttributes(attribute.Int("discovery.tag_count", len(tags)))
	if len(tags) == 0 {
		return []types.Venue{}
	}

	perTag := make([][]types.Venue, len(tags))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentTagPipelines)
	for i, tag := range tags {
		g.Go(func() error {
			perTag[i] = s.discoverForTag(gctx, point, tag)
			return nil
		})
	}
	// Goroutines never return errors; failures degrade to empty slices.
	_ = g.Wait()

	var merged []types.Venue
	for _, venues := range perTag {
		merged = append(merged, venues...)
	}
	merged = api.DedupeByName(merged)

	s.logger.InfoContext(ctx, "Venue discovery complete",
		slog.Int("tags", len(tags)), slog.Int("venues", len(merged)))
	if merged == nil {
		merged = []types.Venue{}
	}
	return merged
}

// discoverForTag runs one tag's search+extract sequence. Only the first of
// the top result links is ever fetched; a tag whose first page yields
// nothing contributes nothing.
func (s *ServiceImpl) discoverForTag(ctx context.Context, point types.MeetingPoint, tag string) []types.Venue {
	query := fmt.Sprintf("%s near %s", tag, point.Label)

	links, err := s.search.Search(ctx, query)
	if err != nil {
		s.logger.WarnContext(ctx, "Search failed for tag, skipping",
			slog.String("tag", tag), slog.Any("error", err))
		return nil
	}
	if len(links) == 0 {
		s.logger.DebugContext(ctx, "No search results for tag", slog.String("tag", tag))
		return nil
	}
	if len(links) > maxSearchLinks {
		links = links[:maxSearchLinks]
	}

	pageText, err := s.fetcher.FetchText(ctx, links[0])
	if err != nil {
		s.logger.WarnContext(ctx, "Page fetch failed for tag, skipping",
			slog.String("tag", tag), slog.String("url", links[0]), slog.Any("error", err))
		return nil
	}

	venues := s.extractor.Extract(ctx, pageText, tag, point)
	for i := range venues {
		if venues[i].SourceURL == "" {
			venues[i].SourceURL = links[0]
		}
	}
	return venues
}
