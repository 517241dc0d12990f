package fund

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cosmossdk.io/math"

	"github.com/altuslabsxyz/fundctl/internal/chain"
	"github.com/altuslabsxyz/fundctl/internal/clarity"
	"github.com/altuslabsxyz/fundctl/internal/output"
)

// Contract read-only function names.
const (
	fnGetTotalSTX          = "get-total-stx"
	fnGetTotalContributors = "get-total-contributors"
	fnGetActiveCampaigns   = "get-active-campaigns"
	fnGetCampaignCount     = "get-campaign-count"
	fnGetCampaign          = "get-campaign"
)

// Snapshot is one consistent view of contract state. Each refresh builds its
// own Snapshot and atomically replaces the previous one.
type Snapshot struct {
	Stats     GlobalStats
	Campaigns []Campaign
	// Failed records campaigns that could not be fetched or decoded this
	// round, keyed by campaign id. They are absent from Campaigns.
	Failed    map[uint64]error
	FetchedAt time.Time
}

// ChainReader is the subset of the chain client the Reader depends on.
type ChainReader interface {
	CallReadOnly(ctx context.Context, contract chain.ContractID, function string, args ...*clarity.Value) (*clarity.Value, error)
	TipHeight(ctx context.Context) (int64, error)
}

// Reader fetches campaign state from the contract.
type Reader struct {
	client   ChainReader
	contract chain.ContractID
	logger   *output.Logger
}

// NewReader creates a Reader against a fixed contract identity.
func NewReader(client ChainReader, contract chain.ContractID, logger *output.Logger) *Reader {
	if logger == nil {
		logger = output.DefaultLogger
	}
	return &Reader{
		client:   client,
		contract: contract,
		logger:   logger,
	}
}

// FetchAll reads the global statistics and every campaign record in parallel
// and joins the results into a Snapshot. Per-campaign failures are isolated:
// the campaign is logged, recorded in Snapshot.Failed, and dropped. A failed
// statistics call fails the whole fetch and leaves prior state untouched.
func (r *Reader) FetchAll(ctx context.Context) (*Snapshot, error) {
	stats, err := r.fetchStats(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Stats:     stats,
		Failed:    map[uint64]error{},
		FetchedAt: time.Now(),
	}

	type fetched struct {
		id       uint64
		campaign Campaign
		err      error
	}

	results := make(chan fetched, stats.TotalCampaigns)
	var wg sync.WaitGroup
	for id := uint64(0); id < stats.TotalCampaigns; id++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			c, err := r.fetchCampaign(ctx, id)
			results <- fetched{id: id, campaign: c, err: err}
		}(id)
	}
	wg.Wait()
	close(results)

	for res := range results {
		if res.err != nil {
			r.logger.Debug("Skipping campaign %d: %v", res.id, res.err)
			snap.Failed[res.id] = res.err
			continue
		}
		snap.Campaigns = append(snap.Campaigns, res.campaign)
	}

	sort.Slice(snap.Campaigns, func(i, j int) bool {
		return snap.Campaigns[i].ID < snap.Campaigns[j].ID
	})

	return snap, nil
}

// fetchStats issues the four statistic calls concurrently.
func (r *Reader) fetchStats(ctx context.Context) (GlobalStats, error) {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		stats  GlobalStats
		failed error
	)
	stats.TotalRaised = math.ZeroInt()

	call := func(function string, assign func(*clarity.Value)) {
		defer wg.Done()
		v, err := r.client.CallReadOnly(ctx, r.contract, function)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			if failed == nil {
				failed = fmt.Errorf("fetch %s: %w", function, err)
			}
			return
		}
		assign(v)
	}

	wg.Add(4)
	go call(fnGetTotalSTX, func(v *clarity.Value) { stats.TotalRaised = v.Int() })
	go call(fnGetTotalContributors, func(v *clarity.Value) { stats.Contributors = v.Uint() })
	go call(fnGetActiveCampaigns, func(v *clarity.Value) { stats.ActiveCampaigns = v.Uint() })
	go call(fnGetCampaignCount, func(v *clarity.Value) { stats.TotalCampaigns = v.Uint() })
	wg.Wait()

	if failed != nil {
		return GlobalStats{}, failed
	}
	return stats, nil
}

func (r *Reader) fetchCampaign(ctx context.Context, id uint64) (Campaign, error) {
	v, err := r.client.CallReadOnly(ctx, r.contract, fnGetCampaign, clarity.UintValue(id))
	if err != nil {
		return Campaign{}, err
	}
	return DecodeCampaign(id, v)
}
