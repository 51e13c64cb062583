package review

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/izus-fokus/easyReview/internal/cache"
	"github.com/izus-fokus/easyReview/internal/model"
)

const statsCacheTTL = 5 * time.Minute

// ProgressService recomputes the reviewed/total ratio of a dataset. It is
// the sole writer of the store's progress slot and runs on initial page
// mount and after every successful field mutation.
type ProgressService struct {
	gateway Gateway
	cache   cache.Store
	store   *Store
}

func NewProgressService(gw Gateway, pageCache cache.Store, store *Store) *ProgressService {
	return &ProgressService{gateway: gw, cache: pageCache, store: store}
}

// FetchProgress loads the field counts for the dataset, updates the store's
// progress slot and returns the percentage. A review with zero fields has
// no defined progress; the slot is left untouched and the current value
// returned. On failure the slot is untouched as well.
func (s *ProgressService) FetchProgress(ctx context.Context, datasetID string) (int, error) {
	stats, err := s.fetchStats(ctx, datasetID)
	if err != nil {
		return s.store.Progress(), &StatsUnavailable{DatasetID: datasetID, StatusText: statusText(err)}
	}

	percent, ok := stats.Percent()
	if !ok {
		log.Printf("review: progress undefined for %s (no fields)", datasetID)
		return s.store.Progress(), nil
	}

	s.store.SetProgress(percent)
	return percent, nil
}

func (s *ProgressService) fetchStats(ctx context.Context, datasetID string) (model.Statistic, error) {
	key := "stats:" + datasetID

	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var stats model.Statistic
		if err := json.Unmarshal(cached, &stats); err == nil {
			return stats, nil
		}
		// Unreadable cache entry, fall through to a fresh fetch.
	}

	stats, err := s.gateway.GetStats(ctx, datasetID)
	if err != nil {
		return model.Statistic{}, err
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, key, payload, statsCacheTTL, cache.DomainStats); err != nil {
			log.Printf("review: cache stats for %s: %v", datasetID, err)
		}
	}
	return stats, nil
}
