package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/izus-fokus/easyReview/internal/cache"
	"github.com/izus-fokus/easyReview/internal/gateway"
	"github.com/izus-fokus/easyReview/internal/model"
)

const fieldCacheTTL = 5 * time.Minute

// FieldMutationService applies accept/decline decisions to fields and keeps
// the dependent cached views consistent.
type FieldMutationService struct {
	gateway  Gateway
	cache    cache.Store
	progress *ProgressService
}

func NewFieldMutationService(gw Gateway, pageCache cache.Store, progress *ProgressService) *FieldMutationService {
	return &FieldMutationService{gateway: gw, cache: pageCache, progress: progress}
}

// AcceptField records an accept/decline decision for the field. On success
// the field and stats cache domains are invalidated so the next reads
// re-fetch. On failure nothing was applied and nothing is invalidated.
func (s *FieldMutationService) AcceptField(ctx context.Context, fieldID string, decision bool) (model.Field, error) {
	field, err := s.gateway.PatchField(ctx, fieldID, gateway.FieldPatch{Accepted: &decision})
	if err != nil {
		return model.Field{}, &MutationRejected{FieldID: fieldID, StatusText: statusText(err)}
	}

	if err := s.cache.Invalidate(ctx, cache.DomainField, cache.DomainStats); err != nil {
		log.Printf("review: invalidate after mutation of %s: %v", fieldID, err)
	}
	return field, nil
}

// AcceptFieldAndRefresh is the two-step mutate-then-refresh protocol: the
// mutation is awaited first, then the progress recomputation, so the store's
// progress slot deterministically reflects the decision when this returns.
func (s *FieldMutationService) AcceptFieldAndRefresh(ctx context.Context, fieldID, datasetID string, decision bool) (model.Field, int, error) {
	field, err := s.AcceptField(ctx, fieldID, decision)
	if err != nil {
		return model.Field{}, 0, err
	}
	percent, err := s.progress.FetchProgress(ctx, datasetID)
	if err != nil {
		return field, percent, err
	}
	return field, percent, nil
}

// ApplyOptimistic sets the decision on the caller's local copy before the
// round trip resolves and returns the compensating revert. Call sites must
// run the revert when the mutation fails; there is no rollback log anywhere
// else.
func ApplyOptimistic(field *model.Field, decision bool) (revert func()) {
	previous := field.Accepted
	value := decision
	field.Accepted = &value
	return func() { field.Accepted = previous }
}

// Field fetches a single field through the field cache domain. After a
// mutation the domain is invalidated, so this returns authoritative backend
// state.
func (s *FieldMutationService) Field(ctx context.Context, fieldID string) (model.Field, error) {
	key := "field:" + fieldID

	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var field model.Field
		if err := json.Unmarshal(cached, &field); err == nil {
			return field, nil
		}
	}

	field, err := s.gateway.GetField(ctx, fieldID)
	if err != nil {
		return model.Field{}, fmt.Errorf("fetch field %s: %w", fieldID, err)
	}

	// The field view embeds its chat, so it belongs to both domains: a
	// field mutation or a chat post each kill it.
	if payload, err := json.Marshal(field); err == nil {
		if err := s.cache.Set(ctx, key, payload, fieldCacheTTL, cache.DomainField, cache.DomainChat); err != nil {
			log.Printf("review: cache field %s: %v", fieldID, err)
		}
	}
	return field, nil
}
