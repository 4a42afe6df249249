package response

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	skillerrors "timeskill/internal/common/errors"
	"timeskill/internal/common/logger"
	"timeskill/internal/skill/clock"
	"timeskill/internal/skill/dialog"
	"timeskill/internal/skill/geolocation"
)

// mapResolver resolves from a fixed table; anything else is not found.
type mapResolver struct {
	places map[string]*geolocation.Geolocation
}

func (r *mapResolver) Resolve(_ context.Context, name string) (*geolocation.Geolocation, error) {
	if geo, ok := r.places[name]; ok {
		return geo, nil
	}
	return nil, fmt.Errorf("%w: %q", skillerrors.ErrLocationNotFound, name)
}

func newTestBuilder(t *testing.T, now time.Time, format24 bool) *Builder {
	t.Helper()
	resolver := &mapResolver{places: map[string]*geolocation.Geolocation{
		"Tokyo": {
			City:     "Tokyo",
			Region:   "Tokyo",
			Country:  "Japan",
			Timezone: "Asia/Tokyo",
		},
		"Paris": {
			City:     "Paris",
			Region:   "Ile-de-France",
			Country:  "France",
			Timezone: "Europe/Paris",
		},
	}}
	cfg := &Config{Lang: "en-us", Format24Hour: format24}
	return NewBuilder(cfg, resolver, clock.NewFixed(now), logger.NewTestLogger(t))
}

func TestBuildCurrentTime_NoLocation(t *testing.T) {
	now := time.Date(2026, time.August, 26, 9, 30, 0, 0, time.UTC)
	b := newTestBuilder(t, now, false)

	resp, err := b.BuildCurrentTime(context.Background(), "what time is it")
	require.NoError(t, err)

	require.NotNil(t, resp.DateTime)
	assert.True(t, resp.DateTime.Equal(now))
	assert.Nil(t, resp.Geolocation)
	assert.Empty(t, resp.RequestedLocation)
	assert.Equal(t, dialog.KeyCurrentTime, resp.DialogKey)
	assert.Equal(t, "9:30 AM", resp.DialogData["time"])
	assert.NotContains(t, resp.DialogData, "location")
}

func TestBuildCurrentTime_WithLocation(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 30, 0, 0, time.UTC)
	b := newTestBuilder(t, now, true)

	resp, err := b.BuildCurrentTime(context.Background(), "what time is it in Tokyo")
	require.NoError(t, err)

	require.NotNil(t, resp.DateTime)
	assert.Equal(t, "Asia/Tokyo", resp.DateTime.Location().String())
	assert.Equal(t, 21, resp.DateTime.Hour())
	assert.Equal(t, "Tokyo", resp.RequestedLocation)
	assert.Equal(t, dialog.KeyCurrentTimeLocation, resp.DialogKey)
	assert.Equal(t, "21:30", resp.DialogData["time"])
	assert.Equal(t, "Tokyo, Japan", resp.DialogData["location"])
}

func TestBuildCurrentTime_LocationNotFound(t *testing.T) {
	now := time.Date(2026, time.August, 26, 9, 30, 0, 0, time.UTC)
	b := newTestBuilder(t, now, false)

	resp, err := b.BuildCurrentTime(context.Background(), "what time is it in Wakanda")
	require.Error(t, err)

	assert.True(t, errors.Is(err, skillerrors.ErrLocationNotFound))
	require.NotNil(t, resp)
	assert.Equal(t, "Wakanda", resp.RequestedLocation)
	assert.Nil(t, resp.DateTime)
}

func TestBuildCurrentTime_EmptyUtterance(t *testing.T) {
	now := time.Date(2026, time.August, 26, 9, 30, 0, 0, time.UTC)
	b := newTestBuilder(t, now, false)

	resp, err := b.BuildCurrentTime(context.Background(), "")
	require.NoError(t, err)

	require.NotNil(t, resp.DateTime)
	assert.Nil(t, resp.Geolocation)
	assert.Equal(t, dialog.KeyCurrentTime, resp.DialogKey)
}

func TestBuildFutureTime_WithOffset(t *testing.T) {
	now := time.Date(2026, time.August, 26, 9, 30, 0, 0, time.UTC)
	b := newTestBuilder(t, now, false)

	resp, err := b.BuildFutureTime(context.Background(), "what time will it be in 3 hours")
	require.NoError(t, err)

	require.NotNil(t, resp.DateTime)
	assert.True(t, resp.DateTime.Equal(now.Add(3*time.Hour)))
	assert.Nil(t, resp.Geolocation)
	assert.Equal(t, dialog.KeyFutureTime, resp.DialogKey)
	assert.Equal(t, "12:30 PM", resp.DialogData["time"])
}

func TestBuildFutureTime_OffsetAndLocation(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	b := newTestBuilder(t, now, true)

	resp, err := b.BuildFutureTime(context.Background(), "what time will it be in 2 hours in Paris")
	require.NoError(t, err)

	require.NotNil(t, resp.DateTime)
	// 12:00 UTC is 14:00 CEST; plus the two hour offset.
	assert.Equal(t, 16, resp.DateTime.Hour())
	assert.Equal(t, dialog.KeyFutureTimeLocation, resp.DialogKey)
	assert.Equal(t, "Paris, Ile-de-France, France", resp.DialogData["location"])
}

func TestBuildFutureTime_NoParseableOffset(t *testing.T) {
	now := time.Date(2026, time.August, 26, 9, 30, 0, 0, time.UTC)
	b := newTestBuilder(t, now, false)

	resp, err := b.BuildFutureTime(context.Background(), "what time will it be")
	require.NoError(t, err)

	assert.Nil(t, resp.DateTime)
	assert.Empty(t, resp.DialogKey)
}

func TestBuildFutureTime_LocationNotFound(t *testing.T) {
	now := time.Date(2026, time.August, 26, 9, 30, 0, 0, time.UTC)
	b := newTestBuilder(t, now, false)

	resp, err := b.BuildFutureTime(context.Background(), "what time will it be in 3 hours in Wakanda")
	require.Error(t, err)

	assert.True(t, errors.Is(err, skillerrors.ErrLocationNotFound))
	assert.Equal(t, "Wakanda", resp.RequestedLocation)
}
