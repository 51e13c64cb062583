package review

import (
	"errors"
	"fmt"

	"github.com/izus-fokus/easyReview/internal/gateway"
)

// MutationRejected is a non-success response to a field PATCH. The patch is
// atomic, so nothing was applied.
type MutationRejected struct {
	FieldID    string
	StatusText string
}

func (e *MutationRejected) Error() string {
	return fmt.Sprintf("field %s mutation rejected: %s", e.FieldID, e.StatusText)
}

// ChatUnavailable is a non-success response to a chat read or post.
type ChatUnavailable struct {
	FieldID    string
	StatusText string
}

func (e *ChatUnavailable) Error() string {
	return fmt.Sprintf("chat for field %s unavailable: %s", e.FieldID, e.StatusText)
}

// StatsUnavailable is a non-success response to a stats read.
type StatsUnavailable struct {
	DatasetID  string
	StatusText string
}

func (e *StatsUnavailable) Error() string {
	return fmt.Sprintf("stats for review %s unavailable: %s", e.DatasetID, e.StatusText)
}

// DatasetFetchFailed is a failed review resolution. Identifier names what
// the caller asked for, a review id or a DOI, so the error view can show it.
type DatasetFetchFailed struct {
	Identifier string
	StatusText string
}

func (e *DatasetFetchFailed) Error() string {
	return fmt.Sprintf("could not fetch dataset %q: %s", e.Identifier, e.StatusText)
}

// statusText extracts the backend status line when err is a transport-level
// StatusError, otherwise the plain error text.
func statusText(err error) string {
	var statusErr *gateway.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}
	return err.Error()
}
