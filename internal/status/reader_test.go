package status_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onamfest/house-registration/internal/model"
	"github.com/onamfest/house-registration/internal/status"
)

type fakeFetcher struct {
	statuses map[string]model.HouseStatus
	err      error
}

func (f *fakeFetcher) FetchAll(context.Context) (map[string]model.HouseStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.statuses, nil
}

func TestReader_EmptyDefaults(t *testing.T) {
	r := status.NewReader(&fakeFetcher{statuses: map[string]model.HouseStatus{}})

	assert.False(t, r.IsComplete(model.HouseSpartans))
	assert.Equal(t, 0, r.Count(model.HouseSpartans))
	assert.False(t, r.IsComplete("ATLANTIS"), "unknown house is never complete")
}

func TestReader_RefreshReplacesSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{statuses: map[string]model.HouseStatus{
		model.HouseMughals: {House: model.HouseMughals, ParticipantsCount: 30, IsCompleted: true},
		model.HouseAryans:  {House: model.HouseAryans, ParticipantsCount: 12},
	}}
	r := status.NewReader(fetcher)
	require.NoError(t, r.Refresh(context.Background()))

	assert.True(t, r.IsComplete(model.HouseMughals))
	assert.Equal(t, 30, r.Count(model.HouseMughals))
	assert.Equal(t, 12, r.Count(model.HouseAryans))

	// A later fetch that no longer includes ARYANS wipes it: the snapshot
	// is replaced wholesale, never merged.
	fetcher.statuses = map[string]model.HouseStatus{
		model.HouseMughals: {House: model.HouseMughals, ParticipantsCount: 30, IsCompleted: true},
	}
	require.NoError(t, r.Refresh(context.Background()))
	assert.Equal(t, 0, r.Count(model.HouseAryans))
}

func TestReader_FetchErrorKeepsPreviousSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{statuses: map[string]model.HouseStatus{
		model.HouseVikings: {House: model.HouseVikings, ParticipantsCount: 7},
	}}
	r := status.NewReader(fetcher)
	require.NoError(t, r.Refresh(context.Background()))

	fetcher.err = errors.New("store unreachable")
	assert.Error(t, r.Refresh(context.Background()))
	assert.Equal(t, 7, r.Count(model.HouseVikings), "stale snapshot beats no snapshot")
}

func TestReader_SnapshotCoversAllHouses(t *testing.T) {
	r := status.NewReader(&fakeFetcher{statuses: map[string]model.HouseStatus{
		model.HouseRajputs: {House: model.HouseRajputs, ParticipantsCount: 30, IsCompleted: true},
	}})
	require.NoError(t, r.Refresh(context.Background()))

	snap := r.Snapshot()
	require.Len(t, snap, len(model.Houses))
	for i, st := range snap {
		assert.Equal(t, model.Houses[i], st.House, "snapshot keeps display order")
	}
	assert.True(t, snap[3].IsCompleted) // RAJPUTS
	assert.False(t, snap[0].IsCompleted)
}
