package discovery

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Abhishek-Jose7/hangout-sub000/internal/types"
)

// MockSearchClient is a mock implementation of SearchClient.
type MockSearchClient struct {
	mock.Mock
}

func (m *MockSearchClient) Search(ctx context.Context, query string) ([]string, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockPageFetcher is a mock implementation of PageFetcher.
type MockPageFetcher struct {
	mock.Mock
}

func (m *MockPageFetcher) FetchText(ctx context.Context, pageURL string) (string, error) {
	args := m.Called(ctx, pageURL)
	return args.String(0), args.Error(1)
}

// MockExtractor is a mock implementation of Extractor.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, pageText, tag string, point types.MeetingPoint) []types.Venue {
	args := m.Called(ctx, pageText, tag, point)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]types.Venue)
}

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestDiscover(t *testing.T) {
	ctx := context.Background()
	point := types.MeetingPoint{Label: "Bandra West"}

	t.Run("discovers venues for each tag and merges by name", func(t *testing.T) {
		search := new(MockSearchClient)
		fetcher := new(MockPageFetcher)
		extractor := new(MockExtractor)

		search.On("Search", mock.Anything, "cafe near Bandra West").Return([]string{"https://a.example/cafes"}, nil)
		search.On("Search", mock.Anything, "games near Bandra West").Return([]string{"https://b.example/games"}, nil)
		fetcher.On("FetchText", mock.Anything, "https://a.example/cafes").Return("cafe page text", nil)
		fetcher.On("FetchText", mock.Anything, "https://b.example/games").Return("games page text", nil)
		extractor.On("Extract", mock.Anything, "cafe page text", "cafe", point).
			Return([]types.Venue{{Name: "Blue Tokai"}, {Name: "Subko Coffee"}})
		extractor.On("Extract", mock.Anything, "games page text", "games", point).
			Return([]types.Venue{{Name: "Smaaash"}, {Name: "Blue Tokai"}})

		svc := NewServiceImpl(search, fetcher, extractor, setupTestLogger())
		venues := svc.Discover(ctx, point, []string{"cafe", "games"})

		assert.Len(t, venues, 3, "shared venue name should be deduplicated")
		names := make([]string, 0, len(venues))
		for _, v := range venues {
			names = append(names, v.Name)
		}
		assert.Contains(t, names, "Blue Tokai")
		assert.Contains(t, names, "Subko Coffee")
		assert.Contains(t, names, "Smaaash")
		search.AssertExpectations(t)
	})

	t.Run("uses at most two tags", func(t *testing.T) {
		search := new(MockSearchClient)
		fetcher := new(MockPageFetcher)
		extractor := new(MockExtractor)

		search.On("Search", mock.Anything, mock.Anything).Return([]string{}, nil).Twice()

		svc := NewServiceImpl(search, fetcher, extractor, setupTestLogger())
		svc.Discover(ctx, point, []string{"cafe", "games", "spa", "museum"})

		search.AssertNumberOfCalls(t, "Search", 2)
	})

	t.Run("fetches only the first result link", func(t *testing.T) {
		search := new(MockSearchClient)
		fetcher := new(MockPageFetcher)
		extractor := new(MockExtractor)

		search.On("Search", mock.Anything, mock.Anything).
			Return([]string{"https://first.example", "https://second.example", "https://third.example"}, nil)
		fetcher.On("FetchText", mock.Anything, "https://first.example").Return("page text", nil)
		extractor.On("Extract", mock.Anything, "page text", "cafe", point).
			Return([]types.Venue{{Name: "Blue Tokai"}})

		svc := NewServiceImpl(search, fetcher, extractor, setupTestLogger())
		venues := svc.Discover(ctx, point, []string{"cafe"})

		assert.Len(t, venues, 1)
		fetcher.AssertNumberOfCalls(t, "FetchText", 1)
		fetcher.AssertNotCalled(t, "FetchText", mock.Anything, "https://second.example")
	})

	t.Run("stamps source URL on extracted venues", func(t *testing.T) {
		search := new(MockSearchClient)
		fetcher := new(MockPageFetcher)
		extractor := new(MockExtractor)

		search.On("Search", mock.Anything, mock.Anything).Return([]string{"https://a.example/cafes"}, nil)
		fetcher.On("FetchText", mock.Anything, mock.Anything).Return("text", nil)
		extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]types.Venue{{Name: "Blue Tokai"}})

		svc := NewServiceImpl(search, fetcher, extractor, setupTestLogger())
		venues := svc.Discover(ctx, point, []string{"cafe"})

		assert.Equal(t, "https://a.example/cafes", venues[0].SourceURL)
	})

	t.Run("search failure degrades to empty, never an error", func(t *testing.T) {
		search := new(MockSearchClient)
		fetcher := new(MockPageFetcher)
		extractor := new(MockExtractor)

		search.On("Search", mock.Anything, mock.Anything).Return(nil, errors.New("search unreachable"))

		svc := NewServiceImpl(search, fetcher, extractor, setupTestLogger())
		venues := svc.Discover(ctx, point, []string{"cafe"})

		assert.NotNil(t, venues)
		assert.Empty(t, venues)
		fetcher.AssertNotCalled(t, "FetchText")
	})

	t.Run("fetch failure for one tag does not sink the other", func(t *testing.T) {
		search := new(MockSearchClient)
		fetcher := new(MockPageFetcher)
		extractor := new(MockExtractor)

		search.On("Search", mock.Anything, "cafe near Bandra West").Return([]string{"https://a.example"}, nil)
		search.On("Search", mock.Anything, "games near Bandra West").Return([]string{"https://b.example"}, nil)
		fetcher.On("FetchText", mock.Anything, "https://a.example").Return("", errors.New("timeout"))
		fetcher.On("FetchText", mock.Anything, "https://b.example").Return("games text", nil)
		extractor.On("Extract", mock.Anything, "games text", "games", point).
			Return([]types.Venue{{Name: "Smaaash"}})

		svc := NewServiceImpl(search, fetcher, extractor, setupTestLogger())
		venues := svc.Discover(ctx, point, []string{"cafe", "games"})

		assert.Len(t, venues, 1)
		assert.Equal(t, "Smaaash", venues[0].Name)
	})

	t.Run("no mood tags yields empty result without any calls", func(t *testing.T) {
		search := new(MockSearchClient)
		fetcher := new(MockPageFetcher)
		extractor := new(MockExtractor)

		svc := NewServiceImpl(search, fetcher, extractor, setupTestLogger())
		venues := svc.Discover(ctx, point, nil)

		assert.NotNil(t, venues)
		assert.Empty(t, venues)
		search.AssertNotCalled(t, "Search")
	})
}
