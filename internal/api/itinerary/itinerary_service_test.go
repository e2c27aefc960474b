package itinerary

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Abhishek-Jose7/hangout-sub000/internal/types"
)

// MockAIClient is a mock implementation of generativeAI.Client.
type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func fullBuckets() types.CategoryBucket {
	return types.CategoryBucket{
		types.CategoryDining: {
			{Name: "Blue Tokai Coffee"}, {Name: "Leopold Cafe"}, {Name: "Bastian Worli"},
		},
		types.CategoryAttractions: {
			{Name: "Gateway of India"}, {Name: "Jehangir Art Gallery"},
		},
		types.CategoryEntertainment: {
			{Name: "Smaaash"}, {Name: "Regal Cinema"},
		},
		types.CategoryShopping:  {{Name: "Colaba Causeway Market"}},
		types.CategoryNightlife: {},
		types.CategoryWellness:  {},
	}
}

const validResponse = `{
	"name": "Colaba Classics Day",
	"description": "Old Bombay food and art in one loop.",
	"steps": [
		{"venue_name": "Leopold Cafe", "activity_hint": "Long breakfast"},
		{"venue_name": "Jehangir Art Gallery", "activity_hint": "Browse the exhibits"}
	],
	"estimated_cost": 1200
}`

func baseRequest() SynthesisRequest {
	return SynthesisRequest{
		Buckets:   fullBuckets(),
		MoodTags:  []string{"foodie"},
		Budget:    1000,
		Point:     types.MeetingPoint{Label: "Colaba"},
		GroupSize: 3,
	}
}

func TestSynthesize(t *testing.T) {
	ctx := context.Background()

	t.Run("produces itineraries for matching themes", func(t *testing.T) {
		aiClient := new(MockAIClient)
		aiClient.On("GenerateText", mock.Anything, mock.Anything).Return(validResponse, nil)

		svc := NewServiceImpl(aiClient, 5*time.Second, setupTestLogger())
		its := svc.Synthesize(ctx, baseRequest())

		// "foodie" trips Food & Culture; Balanced always runs.
		require.Len(t, its, 2)
		assert.Equal(t, "Colaba Classics Day", its[0].Name)
		assert.NotEmpty(t, its[0].SourceVenues)
	})

	t.Run("romantic flag forces the relaxation theme", func(t *testing.T) {
		aiClient := new(MockAIClient)
		aiClient.On("GenerateText", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "Relaxation")
		})).Return(validResponse, nil)
		aiClient.On("GenerateText", mock.Anything, mock.Anything).Return(validResponse, nil)

		req := baseRequest()
		req.MoodTags = nil
		req.IsRomantic = true

		svc := NewServiceImpl(aiClient, 5*time.Second, setupTestLogger())
		svc.Synthesize(ctx, req)

		found := false
		for _, call := range aiClient.Calls {
			if strings.Contains(call.Arguments.String(1), "Relaxation") {
				found = true
			}
		}
		assert.True(t, found, "relaxation theme should be attempted for romantic outings")
	})

	t.Run("failed generation drops only that theme", func(t *testing.T) {
		aiClient := new(MockAIClient)
		aiClient.On("GenerateText", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "Food & Culture")
		})).Return("", errors.New("deadline exceeded"))
		aiClient.On("GenerateText", mock.Anything, mock.Anything).Return(validResponse, nil)

		svc := NewServiceImpl(aiClient, 5*time.Second, setupTestLogger())
		its := svc.Synthesize(ctx, baseRequest())

		assert.Len(t, its, 1)
	})

	t.Run("invalid itineraries are discarded not repaired", func(t *testing.T) {
		aiClient := new(MockAIClient)
		aiClient.On("GenerateText", mock.Anything, mock.Anything).Return(`{
			"name": "Plan",
			"steps": [{"venue_name": "restaurant"}],
			"estimated_cost": 10
		}`, nil)

		svc := NewServiceImpl(aiClient, 5*time.Second, setupTestLogger())
		its := svc.Synthesize(ctx, baseRequest())

		assert.Empty(t, its)
	})

	t.Run("unparseable responses are dropped", func(t *testing.T) {
		aiClient := new(MockAIClient)
		aiClient.On("GenerateText", mock.Anything, mock.Anything).Return("no json here", nil)

		svc := NewServiceImpl(aiClient, 5*time.Second, setupTestLogger())
		its := svc.Synthesize(ctx, baseRequest())

		assert.Empty(t, its)
	})

	t.Run("no eligible themes yields empty without calls", func(t *testing.T) {
		aiClient := new(MockAIClient)

		req := baseRequest()
		req.Buckets = types.CategoryBucket{}
		req.MoodTags = nil

		svc := NewServiceImpl(aiClient, 5*time.Second, setupTestLogger())
		its := svc.Synthesize(ctx, req)

		assert.NotNil(t, its)
		assert.Empty(t, its)
		aiClient.AssertNotCalled(t, "GenerateText")
	})
}
