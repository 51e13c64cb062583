package review

import (
	"context"
	"errors"
	"testing"

	"github.com/izus-fokus/easyReview/internal/model"
)

func TestLoadPageAssemblesAllViews(t *testing.T) {
	gw := &fakeGateway{
		getReviewFn: func(_ context.Context, id string) (model.Dataset, error) {
			return model.Dataset{ID: id, DOI: "doi:10.18419/darus-1", Metadatablocks: []model.Metadatablock{
				{Name: "citation", Primitives: []model.Field{{ID: "f1", Name: "title"}}},
			}}, nil
		},
		getOpenFieldsFn: func(context.Context, string) ([]model.OpenBlock, error) {
			return []model.OpenBlock{{Name: "citation", Primitives: []string{"subtitle"}}}, nil
		},
		getStatsFn: func(context.Context, string) (model.Statistic, error) {
			return model.Statistic{FieldCount: 4, AcceptedCount: 1}, nil
		},
	}
	store, pageCache, progress, _, _ := newTestStack(gw)
	loader := NewPageLoader(gw, pageCache, progress)

	page, err := loader.LoadPage(context.Background(), "r1")
	if err != nil {
		t.Fatalf("LoadPage: %v", err)
	}
	if page.Dataset.DOI != "doi:10.18419/darus-1" {
		t.Fatalf("unexpected dataset %+v", page.Dataset)
	}
	if len(page.Open) != 1 || page.Open[0].Name != "citation" {
		t.Fatalf("unexpected open fields %+v", page.Open)
	}
	if page.Progress != 25 {
		t.Fatalf("expected 25%% progress, got %d", page.Progress)
	}
	if store.Progress() != 25 {
		t.Fatalf("expected progress slot seeded on mount, got %d", store.Progress())
	}
}

func TestLoadPageFailureNamesRequestedReview(t *testing.T) {
	gw := &fakeGateway{
		getReviewFn: func(context.Context, string) (model.Dataset, error) {
			return model.Dataset{}, notFound()
		},
	}
	_, pageCache, progress, _, _ := newTestStack(gw)
	loader := NewPageLoader(gw, pageCache, progress)

	_, err := loader.LoadPage(context.Background(), "gone")
	var failed *DatasetFetchFailed
	if !errors.As(err, &failed) {
		t.Fatalf("expected DatasetFetchFailed, got %v", err)
	}
	if failed.Identifier != "gone" {
		t.Fatalf("expected requested id in error, got %q", failed.Identifier)
	}
}

func TestDatasetViewDiesWithFieldMutation(t *testing.T) {
	calls := 0
	gw := &fakeGateway{
		getReviewFn: func(_ context.Context, id string) (model.Dataset, error) {
			calls++
			return model.Dataset{ID: id}, nil
		},
	}
	_, pageCache, progress, fields, _ := newTestStack(gw)
	loader := NewPageLoader(gw, pageCache, progress)
	ctx := context.Background()

	if _, err := loader.LoadPage(ctx, "r1"); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if _, err := loader.LoadPage(ctx, "r1"); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected second load to reuse cached dataset, transport called %d times", calls)
	}

	if _, err := fields.AcceptField(ctx, "f1", true); err != nil {
		t.Fatalf("AcceptField: %v", err)
	}
	if _, err := loader.LoadPage(ctx, "r1"); err != nil {
		t.Fatalf("third load: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected field mutation to force dataset re-fetch, transport called %d times", calls)
	}
}
