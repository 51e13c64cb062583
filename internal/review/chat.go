package review

import (
	"context"
	"log"

	"github.com/izus-fokus/easyReview/internal/cache"
	"github.com/izus-fokus/easyReview/internal/gateway"
	"github.com/izus-fokus/easyReview/internal/model"
)

// ChatService appends and retrieves the chat messages scoped to a field.
// Chat is never served from cache: every list is a fresh fetch, and every
// post invalidates the chat domain for any view that embeds messages.
type ChatService struct {
	gateway Gateway
	cache   cache.Store
}

func NewChatService(gw Gateway, pageCache cache.Store) *ChatService {
	return &ChatService{gateway: gw, cache: pageCache}
}

// PostMessage creates a chat message on the field. An empty text silently
// declines to send: no transport call, no message, no error. The created
// message is returned on success.
func (s *ChatService) PostMessage(ctx context.Context, fieldID, user, text string) (*model.Message, error) {
	return s.post(ctx, fieldID, user, model.KindMessage, text)
}

// PostSuggestion posts a value suggestion for the field. On the wire it is
// a chat message carrying the legacy suggestion marker.
func (s *ChatService) PostSuggestion(ctx context.Context, fieldID, user, text string) (*model.Message, error) {
	return s.post(ctx, fieldID, user, model.KindSuggestion, text)
}

func (s *ChatService) post(ctx context.Context, fieldID, user string, kind model.MessageKind, text string) (*model.Message, error) {
	if text == "" {
		return nil, nil
	}

	created, err := s.gateway.PostMessage(ctx, gateway.NewMessage{
		Message: model.EncodeMessageText(kind, text),
		User:    user,
		Field:   fieldID,
	})
	if err != nil {
		return nil, &ChatUnavailable{FieldID: fieldID, StatusText: statusText(err)}
	}

	if err := s.cache.Invalidate(ctx, cache.DomainChat); err != nil {
		log.Printf("review: invalidate chat after post to %s: %v", fieldID, err)
	}
	return &created, nil
}

// ListMessages returns every message attached to the field, freshly fetched
// from the backend. A field without messages yields an empty slice. No
// display order is guaranteed; callers sort with
// model.SortMessagesNewestFirst before rendering.
func (s *ChatService) ListMessages(ctx context.Context, fieldID string) ([]model.Message, error) {
	field, err := s.gateway.GetField(ctx, fieldID)
	if err != nil {
		return nil, &ChatUnavailable{FieldID: fieldID, StatusText: statusText(err)}
	}
	if field.Chat == nil {
		return []model.Message{}, nil
	}
	return field.Chat, nil
}
