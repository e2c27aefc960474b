package meetpoint

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Abhishek-Jose7/hangout-sub000/internal/types"
)

// MockGeocoder is a mock implementation of geocoding.Service.
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Resolve(ctx context.Context, address string) *types.Coordinates {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*types.Coordinates)
}

func (m *MockGeocoder) ResolveLabel(ctx context.Context, lat, lng float64) string {
	args := m.Called(ctx, lat, lng)
	return args.String(0)
}

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("averages all resolved member coordinates", func(t *testing.T) {
		geocoder := new(MockGeocoder)
		geocoder.On("Resolve", mock.Anything, "Bandra").Return(&types.Coordinates{Latitude: 19.0, Longitude: 72.8})
		geocoder.On("Resolve", mock.Anything, "Andheri").Return(&types.Coordinates{Latitude: 19.2, Longitude: 72.9})
		geocoder.On("ResolveLabel", mock.Anything, mock.Anything, mock.Anything).Return("Santacruz")

		svc := NewServiceImpl(geocoder, setupTestLogger())
		point := svc.Resolve(ctx, []types.Location{{Address: "Bandra"}, {Address: "Andheri"}})

		require.NotNil(t, point.Coordinates)
		assert.InDelta(t, 19.1, point.Coordinates.Latitude, 0.0001)
		assert.InDelta(t, 72.85, point.Coordinates.Longitude, 0.0001)
		assert.Equal(t, "Santacruz", point.Label)
		geocoder.AssertExpectations(t)
	})

	t.Run("excludes unresolved members from the average", func(t *testing.T) {
		geocoder := new(MockGeocoder)
		geocoder.On("Resolve", mock.Anything, "Bandra").Return(&types.Coordinates{Latitude: 19.0, Longitude: 72.8})
		geocoder.On("Resolve", mock.Anything, "Nowhere At All").Return(nil)
		geocoder.On("ResolveLabel", mock.Anything, mock.Anything, mock.Anything).Return("Bandra West")

		svc := NewServiceImpl(geocoder, setupTestLogger())
		point := svc.Resolve(ctx, []types.Location{{Address: "Bandra"}, {Address: "Nowhere At All"}})

		require.NotNil(t, point.Coordinates)
		assert.InDelta(t, 19.0, point.Coordinates.Latitude, 0.0001)
		assert.InDelta(t, 72.8, point.Coordinates.Longitude, 0.0001)
	})

	t.Run("no member resolves, falls back to first raw address", func(t *testing.T) {
		geocoder := new(MockGeocoder)
		geocoder.On("Resolve", mock.Anything, mock.Anything).Return(nil)

		svc := NewServiceImpl(geocoder, setupTestLogger())
		point := svc.Resolve(ctx, []types.Location{{Address: "Nowhere One"}, {Address: "Nowhere Two"}})

		assert.Nil(t, point.Coordinates)
		assert.False(t, point.HasCoordinates())
		assert.Equal(t, "Nowhere One", point.Label)
		geocoder.AssertNotCalled(t, "ResolveLabel")
	})

	t.Run("reverse lookup failure falls back to first address for the label", func(t *testing.T) {
		geocoder := new(MockGeocoder)
		geocoder.On("Resolve", mock.Anything, "Bandra").Return(&types.Coordinates{Latitude: 19.0, Longitude: 72.8})
		geocoder.On("ResolveLabel", mock.Anything, mock.Anything, mock.Anything).Return("")

		svc := NewServiceImpl(geocoder, setupTestLogger())
		point := svc.Resolve(ctx, []types.Location{{Address: "Bandra"}})

		require.NotNil(t, point.Coordinates)
		assert.Equal(t, "Bandra", point.Label)
	})

	t.Run("single member resolves to their own location", func(t *testing.T) {
		geocoder := new(MockGeocoder)
		geocoder.On("Resolve", mock.Anything, "Bandra").Return(&types.Coordinates{Latitude: 19.0596, Longitude: 72.8295})
		geocoder.On("ResolveLabel", mock.Anything, 19.0596, 72.8295).Return("Bandra West")

		svc := NewServiceImpl(geocoder, setupTestLogger())
		point := svc.Resolve(ctx, []types.Location{{Address: "Bandra"}})

		require.NotNil(t, point.Coordinates)
		assert.InDelta(t, 19.0596, point.Coordinates.Latitude, 0.0001)
		assert.Equal(t, "Bandra West", point.Label)
	})
}
