// Package remotesearch fetches wizard candidates from an external search
// service.
//
// The service receives the visitor's selection plus the directory category
// names it maps to and answers with resource records, either as a bare JSON
// array or wrapped as {"resources": [...]}. Anything else is unusable and
// reported as ErrUnusable so the caller can fall back to local candidates.
package remotesearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dalemusser/vethub/internal/domain/models"
	"go.uber.org/zap"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 4 << 20

// ErrUnusable means the service answered, but not with resource records.
var ErrUnusable = errors.New("remote search: unusable response")

// Client calls the remote candidate search endpoint.
type Client struct {
	url string
	hc  *http.Client
	log *zap.Logger
}

// NewClient creates a client for url. If httpClient is nil, a default
// with the given timeout is used.
func NewClient(url string, timeout time.Duration, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{url: url, hc: httpClient, log: logger}
}

type request struct {
	CategoryID    string   `json:"categoryId"`
	Categories    []string `json:"categories"`
	SymptomIDs    []string `json:"symptomIds"`
	SeverityID    string   `json:"severityId"`
	SelectionHash string   `json:"selectionHash,omitempty"`
}

// Candidates posts the selection and returns the records the service
// considers relevant. Records are returned as received; the ranker
// normalizes them.
func (c *Client) Candidates(ctx context.Context, sel models.Selection) ([]models.Resource, error) {
	body := request{
		CategoryID:    sel.CategoryID,
		SymptomIDs:    sel.SymptomIDs,
		SeverityID:    sel.SeverityID,
		SelectionHash: sel.SelectionHash,
	}
	if cat, ok := models.LookupWizardCategory(sel.CategoryID); ok {
		body.Categories = cat.DisplayNames
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("remote search marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("remote search new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	c.log.Debug("remote search",
		zap.String("url", c.url),
		zap.Duration("latency", time.Since(start)),
		zap.Error(err))
	if err != nil {
		return nil, fmt.Errorf("remote search request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("remote search read: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("remote search: status %d", resp.StatusCode)
	}
	return parse(raw)
}

// parse accepts [...] or {"resources": [...]}. Records are decoded one at a
// time; a record that does not decode or has no id is dropped. A response
// with no usable record at all is ErrUnusable.
func parse(raw []byte) ([]models.Resource, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, ErrUnusable
	}

	var items []json.RawMessage
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnusable, err)
		}
	case '{':
		var wrapped struct {
			Resources *[]json.RawMessage `json:"resources"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnusable, err)
		}
		if wrapped.Resources == nil {
			return nil, ErrUnusable
		}
		items = *wrapped.Resources
	default:
		return nil, ErrUnusable
	}

	out := make([]models.Resource, 0, len(items))
	for _, item := range items {
		var r models.Resource
		if err := json.Unmarshal(item, &r); err != nil || r.ID == "" {
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 && len(items) > 0 {
		return nil, ErrUnusable
	}
	return out, nil
}
