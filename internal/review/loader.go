package review

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/izus-fokus/easyReview/internal/cache"
	"github.com/izus-fokus/easyReview/internal/model"
)

const reviewCacheTTL = 5 * time.Minute

// Page is everything the review page needs on mount.
type Page struct {
	Dataset  model.Dataset
	Open     []model.OpenBlock
	Progress int
}

// PageLoader assembles the initial page state. The dataset, the open-fields
// listing and the progress number are independent backend reads, so they are
// fetched concurrently; the page either gets all of them or fails as a
// whole.
type PageLoader struct {
	gateway  Gateway
	cache    cache.Store
	progress *ProgressService
}

func NewPageLoader(gw Gateway, pageCache cache.Store, progress *ProgressService) *PageLoader {
	return &PageLoader{gateway: gw, cache: pageCache, progress: progress}
}

// LoadPage fetches the review, its open fields and its progress, seeding
// the store's progress slot on the way.
func (l *PageLoader) LoadPage(ctx context.Context, reviewID string) (Page, error) {
	var page Page

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dataset, err := l.fetchDataset(ctx, reviewID)
		if err != nil {
			return &DatasetFetchFailed{Identifier: reviewID, StatusText: statusText(err)}
		}
		page.Dataset = dataset
		return nil
	})
	g.Go(func() error {
		open, err := l.gateway.GetOpenFields(ctx, reviewID)
		if err != nil {
			return &DatasetFetchFailed{Identifier: reviewID, StatusText: statusText(err)}
		}
		page.Open = open
		return nil
	})
	g.Go(func() error {
		percent, err := l.progress.FetchProgress(ctx, reviewID)
		if err != nil {
			return err
		}
		page.Progress = percent
		return nil
	})

	if err := g.Wait(); err != nil {
		return Page{}, err
	}
	return page, nil
}

func (l *PageLoader) fetchDataset(ctx context.Context, reviewID string) (model.Dataset, error) {
	key := "review:" + reviewID

	if cached, ok, err := l.cache.Get(ctx, key); err == nil && ok {
		var dataset model.Dataset
		if err := json.Unmarshal(cached, &dataset); err == nil {
			return dataset, nil
		}
	}

	dataset, err := l.gateway.GetReview(ctx, reviewID)
	if err != nil {
		return model.Dataset{}, err
	}

	// The dataset view embeds field state and field chat, so it dies with
	// the next field mutation or chat post.
	if payload, err := json.Marshal(dataset); err == nil {
		if err := l.cache.Set(ctx, key, payload, reviewCacheTTL, cache.DomainField, cache.DomainChat); err != nil {
			log.Printf("review: cache dataset %s: %v", reviewID, err)
		}
	}
	return dataset, nil
}
