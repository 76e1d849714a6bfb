package records

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// SheetWebhook posts records to a spreadsheet web-hook (a Google Apps Script
// deployment in production). The body is JSON sent as text/plain so the
// endpoint accepts it without a CORS preflight; the response body is never
// read.
type SheetWebhook struct {
	url    string
	client *http.Client
}

// NewSheetWebhook creates the sink. A nil client uses http.DefaultClient.
func NewSheetWebhook(url string, client *http.Client) (*SheetWebhook, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("records: sheet webhook url required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &SheetWebhook{url: url, client: client}, nil
}

func (s *SheetWebhook) Name() string { return "sheet" }

func (s *SheetWebhook) Write(ctx context.Context, _ string, rec Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("records: marshal sheet row: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("records: build sheet request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("records: post sheet row: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("records: sheet webhook returned %d", resp.StatusCode)
	}
	return nil
}
