// Package model holds the wire-level review data model consumed from the
// easyReview backend. All types decode directly from the backend's JSON.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Reviewer mirrors the backend reviewer record.
type Reviewer struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Affiliation string `json:"affiliation,omitempty"`
}

// Dataset is one review of a dataset. Owned by the page-load scope that
// fetched it and replaced wholesale on the next fetch, never merged.
type Dataset struct {
	ID             string          `json:"id"`
	DOI            string          `json:"doi"`
	SiteURL        string          `json:"site_url"`
	Revision       int             `json:"revision"`
	Accepted       bool            `json:"accepted"`
	Date           time.Time       `json:"date"`
	Reviewer       *Reviewer       `json:"reviewer,omitempty"`
	Metadatablocks []Metadatablock `json:"metadatablocks"`
	Files          []File          `json:"files,omitempty"`
}

// Metadatablock is a named section of the dataset's metadata schema.
type Metadatablock struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Primitives  []Field    `json:"primitives"`
	Compounds   []Compound `json:"compounds"`
}

// Compound groups related fields. Its acceptance is derived from the
// contained primitives and never stored independently.
type Compound struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	FieldType   string    `json:"field_type"`
	Primitives  []Field   `json:"primitives"`
	Chat        []Message `json:"chat,omitempty"`
}

// Accepted reports whether every contained primitive has been accepted.
// An unset or declined primitive makes the whole compound unaccepted.
func (c Compound) Accepted() bool {
	for _, f := range c.Primitives {
		if f.Accepted == nil || !*f.Accepted {
			return false
		}
	}
	return true
}

// Field is a single reviewable metadata value. Accepted is tri-state:
// nil means no decision has been recorded yet.
type Field struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Accepted    *bool     `json:"accepted"`
	FieldType   string    `json:"field_type"`
	Value       string    `json:"value"`
	History     History   `json:"history,omitempty"`
	Chat        []Message `json:"chat,omitempty"`
}

// File is a file attached to the review.
type File struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Accepted    bool   `json:"accepted"`
	FieldType   string `json:"field_type"`
}

// Revision is one prior value of a field, keyed by the timestamp the edit
// was recorded under.
type Revision struct {
	Timestamp string
	Value     string
}

// History is the ordered edit history of a field. The backend serializes it
// as a JSON object whose key order is chronological, so decoding through a
// map would lose the ordering; History walks the object token by token
// instead.
type History []Revision

// Latest returns the most recent revision and false if there is none.
func (h History) Latest() (Revision, bool) {
	if len(h) == 0 {
		return Revision{}, false
	}
	return h[len(h)-1], true
}

func (h *History) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode history: %w", err)
	}
	if tok == nil {
		*h = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode history: expected object, got %v", tok)
	}
	var out History
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode history key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decode history key: %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decode history value for %q: %w", key, err)
		}
		out = append(out, Revision{Timestamp: key, Value: value})
	}
	*h = out
	return nil
}

func (h History) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rev := range h {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(rev.Timestamp)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(rev.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MessageKind classifies a chat message for display.
type MessageKind string

const (
	KindMessage    MessageKind = "message"
	KindSuggestion MessageKind = "suggestion"
)

// suggestMarker is the legacy in-band prefix the backend stores for
// suggestions. It is decoded exactly once, when a message is unmarshalled,
// and re-applied on marshal so the wire format stays unchanged.
const suggestMarker = "@suggest"

// Message is one chat entry on a field. Kind and Text are the decoded form;
// the raw marker never leaves this package.
type Message struct {
	ID        string
	User      string
	Timestamp time.Time
	Kind      MessageKind
	Text      string
}

type wireMessage struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

func (m *Message) UnmarshalJSON(data []byte) error {
	var w wireMessage
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	kind, text := DecodeMessageText(w.Message)
	*m = Message{
		ID:        w.ID,
		User:      w.User,
		Timestamp: w.Timestamp,
		Kind:      kind,
		Text:      text,
	}
	return nil
}

func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireMessage{
		ID:        m.ID,
		User:      m.User,
		Timestamp: m.Timestamp,
		Message:   EncodeMessageText(m.Kind, m.Text),
	})
}

// DecodeMessageText splits the stored message text into its kind and body.
func DecodeMessageText(raw string) (MessageKind, string) {
	if strings.HasPrefix(raw, suggestMarker) {
		return KindSuggestion, strings.TrimSpace(strings.TrimPrefix(raw, suggestMarker))
	}
	return KindMessage, raw
}

// EncodeMessageText renders the wire form of a message body.
func EncodeMessageText(kind MessageKind, text string) string {
	if kind == KindSuggestion {
		return suggestMarker + " " + text
	}
	return text
}

// SortMessagesNewestFirst orders messages for display. The backend gives no
// ordering guarantee, so consumers sort by timestamp descending themselves.
func SortMessagesNewestFirst(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.After(messages[j].Timestamp)
	})
}
