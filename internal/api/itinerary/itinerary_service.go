package itinerary

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Abhishek-Jose7/hangout-sub000/internal/api"
	generativeAI "github.com/Abhishek-Jose7/hangout-sub000/internal/api/generative_ai"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/types"
)

const maxAcceptedItineraries = 3

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// SynthesisRequest carries everything one synthesis run needs.
type SynthesisRequest struct {
	Buckets    types.CategoryBucket
	MoodTags   []string
	Budget     float64
	Point      types.MeetingPoint
	GroupSize  int
	IsRomantic bool
}

// Service combines categorized venues into themed, costed itineraries with
// narrative descriptions. Synthesize can legitimately return zero
// itineraries; the fallback controller owns what happens then.
type Service interface {
	Synthesize(ctx context.Context, req SynthesisRequest) []types.Itinerary
}

type ServiceImpl struct {
	logger      *slog.Logger
	aiClient    generativeAI.Client
	callTimeout time.Duration
}

func NewServiceImpl(aiClient generativeAI.Client, callTimeout time.Duration, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger,
		aiClient:    aiClient,
		callTimeout: callTimeout,
	}
}

// rawItinerary is the provisional record parsed from the collaborator
// response before validation.
type rawItinerary struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Steps       []struct {
		VenueName    *string `json:"venue_name"`
		ActivityHint *string `json:"activity_hint"`
	} `json:"steps"`
	EstimatedCost *float64 `json:"estimated_cost"`
}

// Synthesize attempts each eligible theme concurrently, one generative call
// per theme under its own timeout. A failed or invalid theme is dropped
// silently; the rest still count. At most three itineraries are returned,
// in theme order.
func (s *ServiceImpl) Synthesize(ctx context.Context, req SynthesisRequest) []types.Itinerary {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Synthesize")
	defer span.End()

	type attempt struct {
		theme  theme
		venues []types.Venue
	}
	var attempts []attempt
	for _, t := range themes {
		if !t.matchesMood(req.MoodTags) && !(req.IsRomantic && t.Name == "Relaxation") {
			continue
		}
		venues := t.selectVenues(req.Buckets)
		if venues == nil {
			s.logger.DebugContext(ctx, "Theme skipped, not enough venues", slog.String("theme", t.Name))
			continue
		}
		attempts = append(attempts, attempt{theme: t, venues: venues})
	}
	span.SetAttributes(attribute.Int("synthesize.themes_attempted", len(attempts)))
	if len(attempts) == 0 {
		return []types.Itinerary{}
	}

	results := make([]*types.Itinerary, len(attempts))
	var wg sync.WaitGroup
	wg.Add(len(attempts))
	for i, a := range attempts {
		go func(i int, a attempt) {
			defer wg.Done()
			results[i] = s.synthesizeTheme(ctx, a.theme, a.venues, req)
		}(i, a)
	}
	wg.Wait()

	accepted := make([]types.Itinerary, 0, maxAcceptedItineraries)
	for _, it := range results {
		if it == nil {
			continue
		}
		accepted = append(accepted, *it)
		if len(accepted) == maxAcceptedItineraries {
			break
		}
	}

	s.logger.InfoContext(ctx, "Itinerary synthesis complete",
		slog.Int("attempted", len(attempts)), slog.Int("accepted", len(accepted)))
	return accepted
}

// synthesizeTheme runs one theme's generation call and validation. Returns
// nil when the theme should be dropped.
func (s *ServiceImpl) synthesizeTheme(ctx context.Context, t theme, venues []types.Venue, req SynthesisRequest) *types.Itinerary {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	prompt := getItinerarySynthesisPrompt(t.Name, venues, req.MoodTags, req.Budget, req.Point.Label, req.GroupSize, req.IsRomantic)
	response, err := s.aiClient.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.WarnContext(ctx, "Theme generation failed, dropping theme",
			slog.String("theme", t.Name), slog.Any("error", err))
		return nil
	}

	jsonStr := api.CleanJSONResponse(response)
	var raw rawItinerary
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		s.logger.WarnContext(ctx, "Failed to parse theme itinerary JSON, dropping theme",
			slog.String("theme", t.Name), slog.Any("error", err))
		return nil
	}

	it, ok := buildItinerary(raw, venues)
	if !ok {
		s.logger.WarnContext(ctx, "Theme itinerary missing required fields, dropping theme",
			slog.String("theme", t.Name))
		return nil
	}
	if !ValidateItinerary(it, req.Budget, req.Point.Label) {
		s.logger.WarnContext(ctx, "Theme itinerary failed validation, dropping theme",
			slog.String("theme", t.Name), slog.String("name", it.Name))
		return nil
	}
	return &it
}

// buildItinerary converts the provisional record into a typed Itinerary,
// rejecting on missing fields. ValidateItinerary still has the final say.
func buildItinerary(raw rawItinerary, venues []types.Venue) (types.Itinerary, bool) {
	if raw.Name == nil || raw.EstimatedCost == nil || len(raw.Steps) == 0 {
		return types.Itinerary{}, false
	}
	it := types.Itinerary{
		Name:          *raw.Name,
		EstimatedCost: *raw.EstimatedCost,
		SourceVenues:  venues,
	}
	if raw.Description != nil {
		it.Description = *raw.Description
	}
	for _, step := range raw.Steps {
		if step.VenueName == nil {
			return types.Itinerary{}, false
		}
		s := types.ItineraryStep{VenueName: *step.VenueName}
		if step.ActivityHint != nil {
			s.ActivityHint = *step.ActivityHint
		}
		it.Steps = append(it.Steps, s)
	}
	return it, true
}
