package review

import (
	"context"

	"github.com/izus-fokus/easyReview/internal/gateway"
	"github.com/izus-fokus/easyReview/internal/model"
)

// Gateway is the slice of the backend transport the review services use.
// *gateway.Client implements it; tests substitute a fake.
type Gateway interface {
	GetReview(ctx context.Context, id string) (model.Dataset, error)
	GetStats(ctx context.Context, id string) (model.Statistic, error)
	GetOpenFields(ctx context.Context, id string) ([]model.OpenBlock, error)
	GetField(ctx context.Context, id string) (model.Field, error)
	PatchField(ctx context.Context, id string, patch gateway.FieldPatch) (model.Field, error)
	PostMessage(ctx context.Context, msg gateway.NewMessage) (model.Message, error)
	FetchReview(ctx context.Context, siteURL, doi, apiToken string) (model.Dataset, error)
}
