// Package gateway is the HTTP client for the easyReview backend. Every call
// carries the deployment's Basic credentials; there is one base URL per
// deployment and no retry logic anywhere, failures surface to the caller.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/izus-fokus/easyReview/internal/model"
)

// StatusError is a non-success backend response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend responded %s", e.Status)
}

// Client talks to one easyReview backend deployment.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
}

func New(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// SetTimeout overrides the default per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.http.Timeout = d
}

// GetReview fetches a full review including nested metadatablocks.
func (c *Client) GetReview(ctx context.Context, id string) (model.Dataset, error) {
	var dataset model.Dataset
	err := c.do(ctx, http.MethodGet, "/api/reviews/"+id, nil, nil, &dataset)
	return dataset, err
}

// GetStats fetches the accepted/total field count for a review.
func (c *Client) GetStats(ctx context.Context, id string) (model.Statistic, error) {
	var stats model.Statistic
	err := c.do(ctx, http.MethodGet, "/api/reviews/"+id+"/stats/", nil, nil, &stats)
	return stats, err
}

// GetOpenFields fetches the per-block open fields for a review.
func (c *Client) GetOpenFields(ctx context.Context, id string) ([]model.OpenBlock, error) {
	var blocks []model.OpenBlock
	err := c.do(ctx, http.MethodGet, "/api/reviews/"+id+"/open/", nil, nil, &blocks)
	return blocks, err
}

// GetField fetches a single field, chat included.
func (c *Client) GetField(ctx context.Context, id string) (model.Field, error) {
	var field model.Field
	err := c.do(ctx, http.MethodGet, "/api/fields/"+id, nil, nil, &field)
	return field, err
}

// FieldPatch is a partial field update. Only non-nil members are sent.
type FieldPatch struct {
	Accepted *bool   `json:"accepted,omitempty"`
	Value    *string `json:"value,omitempty"`
}

// PatchField applies a partial update to a field. Atomic from the caller's
// perspective: either the backend applies the whole patch or nothing.
func (c *Client) PatchField(ctx context.Context, id string, patch FieldPatch) (model.Field, error) {
	var field model.Field
	err := c.do(ctx, http.MethodPatch, "/api/fields/"+id, nil, patch, &field)
	return field, err
}

// NewMessage is the create-message request body.
type NewMessage struct {
	Message string `json:"message"`
	User    string `json:"user"`
	Field   string `json:"field"`
}

// PostMessage creates a chat message on a field.
func (c *Client) PostMessage(ctx context.Context, msg NewMessage) (model.Message, error) {
	var created model.Message
	err := c.do(ctx, http.MethodPost, "/api/messages/", nil, msg, &created)
	return created, err
}

// FetchReview resolves a dataset by DOI, creating the review on the backend
// if it does not exist yet.
func (c *Client) FetchReview(ctx context.Context, siteURL, doi, apiToken string) (model.Dataset, error) {
	query := url.Values{}
	query.Set("site_url", siteURL)
	query.Set("doi", doi)
	if apiToken != "" {
		query.Set("api_token", apiToken)
	}
	var dataset model.Dataset
	err := c.do(ctx, http.MethodPost, "/api/reviews/fetch/", query, nil, &dataset)
	return dataset, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
