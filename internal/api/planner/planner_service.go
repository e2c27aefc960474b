package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	appmetrics "github.com/Abhishek-Jose7/hangout-sub000/app/observability/metrics"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/api"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/api/categorizer"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/api/discovery"
	generativeAI "github.com/Abhishek-Jose7/hangout-sub000/internal/api/generative_ai"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/api/itinerary"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/api/meetpoint"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/types"
)

// planTier is the fallback ladder state. The ladder only moves one way:
// real venues, then text-only suggestions, then the static floor.
type planTier int

const (
	tierTryRealVenues planTier = iota
	tierTryAIOnly
	tierStaticFallback
)

func (t planTier) next() planTier {
	switch t {
	case tierTryRealVenues:
		return tierTryAIOnly
	default:
		return tierStaticFallback
	}
}

func (t planTier) label() types.PlanTier {
	switch t {
	case tierTryRealVenues:
		return types.TierRealVenues
	case tierTryAIOnly:
		return types.TierAIOnly
	default:
		return types.TierStatic
	}
}

const maxAIOnlyItineraries = 3

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service is the single operation this core exposes to its callers.
// PlanLocations always returns at least one itinerary; only precondition
// violations (empty member list, negative budget) produce an error.
type Service interface {
	PlanLocations(ctx context.Context, members []types.MemberPreferences, isRomantic bool) (*types.PlanResult, error)
}

type ServiceImpl struct {
	logger       *slog.Logger
	meetpointSvc meetpoint.Service
	discoverySvc discovery.Service
	synthesizer  itinerary.Service
	aiClient     generativeAI.Client
	planLogRepo  Repository
	metrics      *appmetrics.AppMetrics
}

func NewServiceImpl(
	meetpointSvc meetpoint.Service,
	discoverySvc discovery.Service,
	synthesizer itinerary.Service,
	aiClient generativeAI.Client,
	planLogRepo Repository,
	m *appmetrics.AppMetrics,
	logger *slog.Logger,
) *ServiceImpl {
	return &ServiceImpl{
		logger:       logger,
		meetpointSvc: meetpointSvc,
		discoverySvc: discoverySvc,
		synthesizer:  synthesizer,
		aiClient:     aiClient,
		planLogRepo:  planLogRepo,
		metrics:      m,
	}
}

// PlanLocations runs the full pipeline behind the tiered fallback ladder.
func (s *ServiceImpl) PlanLocations(ctx context.Context, members []types.MemberPreferences, isRomantic bool) (*types.PlanResult, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "PlanLocations")
	defer span.End()
	start := time.Now()

	if len(members) == 0 {
		return nil, fmt.Errorf("planLocations requires at least one member")
	}
	budget := members[0].Budget
	for _, m := range members {
		if m.Budget < 0 {
			return nil, fmt.Errorf("member budget must not be negative")
		}
		if m.Budget < budget {
			budget = m.Budget
		}
	}
	moodTags := mergeMoodTags(members)
	groupSize := len(members)

	locations := make([]types.Location, 0, len(members))
	for _, m := range members {
		locations = append(locations, m.Location)
	}
	point := s.meetpointSvc.Resolve(ctx, locations)
	span.SetAttributes(
		attribute.Int("plan.members", groupSize),
		attribute.String("plan.point_label", point.Label),
	)

	var result *types.PlanResult
	for tier := tierTryRealVenues; result == nil; tier = tier.next() {
		switch tier {
		case tierTryRealVenues:
			if its := s.tryRealVenues(ctx, point, moodTags, budget, groupSize, isRomantic); len(its) > 0 {
				result = &types.PlanResult{MeetingPoint: point, Tier: types.TierRealVenues, Itineraries: its}
			}
		case tierTryAIOnly:
			if its := s.tryAIOnly(ctx, point, moodTags, budget, groupSize, isRomantic); len(its) > 0 {
				result = &types.PlanResult{MeetingPoint: point, Tier: types.TierAIOnly, Itineraries: its}
			}
		case tierStaticFallback:
			// The unconditional floor: cannot fail.
			its := []types.Itinerary{staticFallbackItinerary(members[0].Location.Address, budget)}
			result = &types.PlanResult{MeetingPoint: point, Tier: types.TierStatic, Itineraries: its}
		}
	}

	latency := time.Since(start)
	span.SetAttributes(attribute.String("plan.tier", string(result.Tier)))
	span.SetStatus(codes.Ok, "Plan generated")
	s.logger.InfoContext(ctx, "Planning request complete",
		slog.String("tier", string(result.Tier)),
		slog.Int("itineraries", len(result.Itineraries)),
		slog.Duration("latency", latency))

	if s.metrics != nil {
		tierAttr := metric.WithAttributes(attribute.String("tier", string(result.Tier)))
		s.metrics.PlanRequestsTotal.Add(ctx, 1, tierAttr)
		s.metrics.PlanDurationSeconds.Record(ctx, latency.Seconds(), tierAttr)
	}
	s.savePlanLog(ctx, members, moodTags, result, latency)

	return result, nil
}

// tryRealVenues is the first tier: discover, categorize, synthesize.
func (s *ServiceImpl) tryRealVenues(ctx context.Context, point types.MeetingPoint, moodTags []string, budget float64, groupSize int, isRomantic bool) []types.Itinerary {
	venues := s.discoverySvc.Discover(ctx, point, moodTags)
	if len(venues) == 0 {
		s.logger.InfoContext(ctx, "No venues discovered, advancing fallback tier")
		return nil
	}

	buckets := categorizer.Categorize(venues)
	its := s.synthesizer.Synthesize(ctx, itinerary.SynthesisRequest{
		Buckets:    buckets,
		MoodTags:   moodTags,
		Budget:     budget,
		Point:      point,
		GroupSize:  groupSize,
		IsRomantic: isRomantic,
	})
	if len(its) == 0 {
		s.logger.InfoContext(ctx, "Synthesis accepted no itineraries, advancing fallback tier",
			slog.Int("venues", len(venues)))
	}
	return its
}

// rawSuggestion mirrors one AI-only itinerary suggestion before validation.
type rawSuggestion struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Steps       []struct {
		VenueName    *string `json:"venue_name"`
		ActivityHint *string `json:"activity_hint"`
	} `json:"steps"`
	EstimatedCost *float64 `json:"estimated_cost"`
}

// tryAIOnly is the second tier: ask the generative collaborator directly,
// no venue discovery. The same validation rules apply as for synthesized
// itineraries. Any hard failure returns nil and the ladder drops to the
// static floor.
func (s *ServiceImpl) tryAIOnly(ctx context.Context, point types.MeetingPoint, moodTags []string, budget float64, groupSize int, isRomantic bool) []types.Itinerary {
	prompt := getAIOnlySuggestionsPrompt(point.Label, moodTags, budget, groupSize, isRomantic)
	response, err := s.aiClient.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.WarnContext(ctx, "AI-only suggestion call failed, advancing fallback tier", slog.Any("error", err))
		return nil
	}

	jsonStr := api.CleanJSONResponse(response)
	var raw []rawSuggestion
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		s.logger.WarnContext(ctx, "Failed to parse AI-only suggestions, advancing fallback tier", slog.Any("error", err))
		return nil
	}

	var accepted []types.Itinerary
	for _, r := range raw {
		it, ok := buildSuggestion(r)
		if !ok {
			continue
		}
		if !itinerary.ValidateItinerary(it, budget, point.Label) {
			continue
		}
		accepted = append(accepted, it)
		if len(accepted) == maxAIOnlyItineraries {
			break
		}
	}
	if len(accepted) == 0 {
		s.logger.WarnContext(ctx, "AI-only tier produced no valid itineraries, advancing fallback tier")
	}
	return accepted
}

func buildSuggestion(r rawSuggestion) (types.Itinerary, bool) {
	if r.Name == nil || r.EstimatedCost == nil || len(r.Steps) == 0 {
		return types.Itinerary{}, false
	}
	it := types.Itinerary{
		Name:          *r.Name,
		EstimatedCost: *r.EstimatedCost,
	}
	if r.Description != nil {
		it.Description = *r.Description
	}
	for _, step := range r.Steps {
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

// staticFallbackItinerary is the deterministic floor, anchored on the first
// member's raw location text.
func staticFallbackItinerary(rawLocation string, budget float64) types.Itinerary {
	cost := budget
	if cost > 500 {
		cost = 500
	}
	if cost < 50 {
		cost = 50
	}
	return types.Itinerary{
		Name:        fmt.Sprintf("Easy Day Around %s", rawLocation),
		Description: fmt.Sprintf("A simple, low-effort plan for meeting up around %s when nothing specific could be found.", rawLocation),
		Steps: []types.ItineraryStep{
			{VenueName: fmt.Sprintf("Central meetup spot in %s", rawLocation), ActivityHint: "Gather and grab a coffee"},
			{VenueName: fmt.Sprintf("Popular local attraction near %s", rawLocation), ActivityHint: "Walk around together"},
			{VenueName: fmt.Sprintf("Well-rated eatery in %s", rawLocation), ActivityHint: "Share a meal before heading home"},
		},
		EstimatedCost: cost,
	}
}

// mergeMoodTags unions member tags preserving first-seen order.
func mergeMoodTags(members []types.MemberPreferences) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, m := range members {
		for _, tag := range m.MoodTags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

// savePlanLog records the request outcome best-effort.
func (s *ServiceImpl) savePlanLog(ctx context.Context, members []types.MemberPreferences, moodTags []string, result *types.PlanResult, latency time.Duration) {
	if s.planLogRepo == nil {
		return
	}
	payload, err := json.Marshal(result.Itineraries)
	if err != nil {
		payload = nil
	}
	logEntry := types.PlanLog{
		ID:             uuid.New(),
		MemberCount:    len(members),
		MoodTags:       moodTags,
		Tier:           result.Tier,
		ItineraryCount: len(result.Itineraries),
		LatencyMs:      int(latency.Milliseconds()),
		ResponseText:   string(payload),
	}
	if err := s.planLogRepo.SavePlanLog(ctx, logEntry); err != nil {
		s.logger.WarnContext(ctx, "Failed to save plan log", slog.Any("error", err))
	}
}
