package review

import (
	"context"
	"net/http"

	"github.com/izus-fokus/easyReview/internal/cache"
	"github.com/izus-fokus/easyReview/internal/gateway"
	"github.com/izus-fokus/easyReview/internal/model"
)

type fakeGateway struct {
	getReviewFn     func(context.Context, string) (model.Dataset, error)
	getStatsFn      func(context.Context, string) (model.Statistic, error)
	getOpenFieldsFn func(context.Context, string) ([]model.OpenBlock, error)
	getFieldFn      func(context.Context, string) (model.Field, error)
	patchFieldFn    func(context.Context, string, gateway.FieldPatch) (model.Field, error)
	postMessageFn   func(context.Context, gateway.NewMessage) (model.Message, error)
	fetchReviewFn   func(context.Context, string, string, string) (model.Dataset, error)
}

func (f *fakeGateway) GetReview(ctx context.Context, id string) (model.Dataset, error) {
	if f.getReviewFn != nil {
		return f.getReviewFn(ctx, id)
	}
	return model.Dataset{ID: id}, nil
}

func (f *fakeGateway) GetStats(ctx context.Context, id string) (model.Statistic, error) {
	if f.getStatsFn != nil {
		return f.getStatsFn(ctx, id)
	}
	return model.Statistic{}, nil
}

func (f *fakeGateway) GetOpenFields(ctx context.Context, id string) ([]model.OpenBlock, error) {
	if f.getOpenFieldsFn != nil {
		return f.getOpenFieldsFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeGateway) GetField(ctx context.Context, id string) (model.Field, error) {
	if f.getFieldFn != nil {
		return f.getFieldFn(ctx, id)
	}
	return model.Field{ID: id}, nil
}

func (f *fakeGateway) PatchField(ctx context.Context, id string, patch gateway.FieldPatch) (model.Field, error) {
	if f.patchFieldFn != nil {
		return f.patchFieldFn(ctx, id, patch)
	}
	return model.Field{ID: id, Accepted: patch.Accepted}, nil
}

func (f *fakeGateway) PostMessage(ctx context.Context, msg gateway.NewMessage) (model.Message, error) {
	if f.postMessageFn != nil {
		return f.postMessageFn(ctx, msg)
	}
	return model.Message{ID: "m1"}, nil
}

func (f *fakeGateway) FetchReview(ctx context.Context, siteURL, doi, apiToken string) (model.Dataset, error) {
	if f.fetchReviewFn != nil {
		return f.fetchReviewFn(ctx, siteURL, doi, apiToken)
	}
	return model.Dataset{DOI: doi, SiteURL: siteURL}, nil
}

func notFound() *gateway.StatusError {
	return &gateway.StatusError{StatusCode: http.StatusNotFound, Status: "404 Not Found"}
}

func newTestStack(gw Gateway) (*Store, cache.Store, *ProgressService, *FieldMutationService, *ChatService) {
	store := NewStore("test-pass")
	pageCache := cache.NewMemoryStore()
	progress := NewProgressService(gw, pageCache, store)
	fields := NewFieldMutationService(gw, pageCache, progress)
	chat := NewChatService(gw, pageCache)
	return store, pageCache, progress, fields, chat
}
