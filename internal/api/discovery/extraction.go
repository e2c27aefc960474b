package discovery

import (
	"context"
	"encoding/json"
	"log/slog"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	appmetrics "github.com/Abhishek-Jose7/hangout-sub000/app/observability/metrics"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/api"
	generativeAI "github.com/Abhishek-Jose7/hangout-sub000/internal/api/generative_ai"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/types"
)

const (
	// Bounded to avoid unbounded payloads to the generative-text collaborator.
	maxPageTextChars = 15000
	maxVenuesPerPage = 5

	// Documented defaults for unrated venues so downstream sorting never
	// compares against absent data. Not measured values.
	defaultRating      = 4.2
	defaultReviewCount = 50
)

// Extractor turns unstructured page text into typed venue records using the
// generative-text collaborator as a best-effort parser. A parse failure
// yields an empty list, never an error that escapes this component.
type Extractor interface {
	Extract(ctx context.Context, pageText, tag string, point types.MeetingPoint) []types.Venue
}

var _ Extractor = (*ExtractorImpl)(nil)

type ExtractorImpl struct {
	logger   *slog.Logger
	aiClient generativeAI.Client
	metrics  *appmetrics.AppMetrics
}

func NewExtractorImpl(aiClient generativeAI.Client, m *appmetrics.AppMetrics, logger *slog.Logger) *ExtractorImpl {
	return &ExtractorImpl{
		logger:   logger,
		aiClient: aiClient,
		metrics:  m,
	}
}

// rawVenue is the provisional record parsed from the collaborator response
// before schema validation. Pointer fields distinguish absent from zero.
type rawVenue struct {
	Name        *string  `json:"name"`
	Address     *string  `json:"address"`
	Rating      *float64 `json:"rating"`
	Reviews     *int     `json:"reviews"`
	Description *string  `json:"description"`
	Type        *string  `json:"type"`
}

func (e *ExtractorImpl) Extract(ctx context.Context, pageText, tag string, point types.MeetingPoint) []types.Venue {
	ctx, span := otel.Tracer("ExtractionService").Start(ctx, "Extract")
	defer span.End()
	span.SetAttributes(attribute.String("extract.tag", tag))

	if pageText == "" {
		return nil
	}
	pageText = truncateAtRuneBoundary(pageText, maxPageTextChars)

	prompt := getVenueExtractionPrompt(pageText, tag, point.Label)
	response, err := e.aiClient.GenerateText(ctx, prompt)
	if err != nil {
		e.countExtraction(ctx, "error")
		e.logger.WarnContext(ctx, "Venue extraction call failed, returning no venues",
			slog.String("tag", tag), slog.Any("error", err))
		return nil
	}

	jsonStr := api.CleanJSONResponse(response)
	var raw []rawVenue
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		e.countExtraction(ctx, "error")
		e.logger.WarnContext(ctx, "Failed to parse venue extraction JSON, returning no venues",
			slog.String("tag", tag), slog.Any("error", err))
		return nil
	}
	e.countExtraction(ctx, "ok")

	venues := make([]types.Venue, 0, len(raw))
	for _, r := range raw {
		venue, ok := validateRawVenue(r)
		if !ok {
			continue
		}
		venues = append(venues, venue)
		if len(venues) == maxVenuesPerPage {
			break
		}
	}

	e.logger.DebugContext(ctx, "Extracted venues from page text",
		slog.String("tag", tag), slog.Int("count", len(venues)))
	return venues
}

// countExtraction records one collaborator extraction call.
func (e *ExtractorImpl) countExtraction(ctx context.Context, outcome string) {
	if e.metrics == nil {
		return
	}
	e.metrics.VenueExtractionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

// truncateAtRuneBoundary caps s at max bytes without splitting a multi-byte
// rune; the collaborator must always receive valid UTF-8.
func truncateAtRuneBoundary(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// validateRawVenue is the schema authority on acceptance: the parser only
// produces provisional records, this decides what becomes a Venue.
func validateRawVenue(r rawVenue) (types.Venue, bool) {
	if r.Name == nil || *r.Name == "" || api.IsGenericName(*r.Name) {
		return types.Venue{}, false
	}

	venue := types.Venue{
		Name:        *r.Name,
		Rating:      defaultRating,
		ReviewCount: defaultReviewCount,
		SourceID:    *r.Name,
	}
	if r.Address != nil {
		venue.Address = *r.Address
	}
	if r.Rating != nil && *r.Rating >= 0 && *r.Rating <= 5 {
		venue.Rating = *r.Rating
	}
	if r.Reviews != nil && *r.Reviews >= 0 {
		venue.ReviewCount = *r.Reviews
	}
	if r.Description != nil {
		venue.Description = *r.Description
	}
	if r.Type != nil && *r.Type != "" {
		venue.CategoryTypes = []string{*r.Type}
	}
	return venue, true
}
