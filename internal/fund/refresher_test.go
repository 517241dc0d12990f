package fund

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresher_StartFetchesHeightAndSnapshot(t *testing.T) {
	fake := &fakeChain{
		stats:     map[string]string{"get-campaign-count": "1"},
		campaigns: map[uint64]string{0: campaignJSON("One", "1")},
		tipHeight: 777,
	}
	store := NewStore()

	var updates atomic.Int32
	refresher := NewRefresher(NewReader(fake, testContract, nil), store, time.Hour, nil)
	refresher.OnUpdate = func(*Snapshot) { updates.Add(1) }

	require.NoError(t, refresher.Start(context.Background()))
	defer refresher.Stop()

	assert.Equal(t, int64(777), store.TipHeight())
	require.NotNil(t, store.Snapshot())
	assert.Len(t, store.Snapshot().Campaigns, 1)
	assert.Equal(t, int32(1), updates.Load())
}

func TestRefresher_PeriodicRefresh(t *testing.T) {
	fake := &fakeChain{
		stats: map[string]string{"get-campaign-count": "0"},
	}
	store := NewStore()

	var updates atomic.Int32
	refresher := NewRefresher(NewReader(fake, testContract, nil), store, 10*time.Millisecond, nil)
	refresher.OnUpdate = func(*Snapshot) { updates.Add(1) }

	require.NoError(t, refresher.Start(context.Background()))

	assert.Eventually(t, func() bool {
		return updates.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	refresher.Stop()
}

func TestRefresher_StopPreventsFurtherCallbacks(t *testing.T) {
	fake := &fakeChain{
		stats: map[string]string{"get-campaign-count": "0"},
	}
	store := NewStore()

	var updates atomic.Int32
	refresher := NewRefresher(NewReader(fake, testContract, nil), store, 5*time.Millisecond, nil)
	refresher.OnUpdate = func(*Snapshot) { updates.Add(1) }

	require.NoError(t, refresher.Start(context.Background()))
	refresher.Stop()

	seen := updates.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, seen, updates.Load())
}

func TestRefresher_FailedRefreshKeepsPriorSnapshot(t *testing.T) {
	fake := &fakeChain{
		stats:     map[string]string{"get-campaign-count": "1"},
		campaigns: map[uint64]string{0: campaignJSON("Stays", "1")},
	}
	store := NewStore()

	refresher := NewRefresher(NewReader(fake, testContract, nil), store, time.Hour, nil)
	require.NoError(t, refresher.Start(context.Background()))
	defer refresher.Stop()

	prior := store.Snapshot()
	require.NotNil(t, prior)

	// Break the stats call and refresh again: the snapshot must not change.
	fake.statsErr = map[string]error{"get-campaign-count": assert.AnError}
	err := refresher.RefreshOnce(context.Background())

	assert.Error(t, err)
	assert.Same(t, prior, store.Snapshot())
}
