// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package notion

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// ErrCircuitOpen is returned while the circuit breaker rejects calls.
var ErrCircuitOpen = errors.New("notion: circuit breaker open")

const maxErrorBodySize = 64 * 1024 // 64KB

// APIError is a non-2xx response from the Notion API.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	// Body holds the raw response when it was not a Notion error object.
	Body string `json:"-"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("notion: HTTP %d %s: %s", e.Status, e.Code, e.Message)
	}
	if e.Body != "" {
		return fmt.Sprintf("notion: HTTP %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("notion: HTTP %d", e.Status)
}

// MetricLabel classifies the error for sync_errors_total.
func (e *APIError) MetricLabel() string {
	switch {
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return "notion_auth"
	case e.Status == http.StatusTooManyRequests:
		return "notion_rate_limited"
	case e.Status >= 500:
		return "notion_unavailable"
	}
	return "notion_api"
}

// Temporary reports whether retrying the call may succeed.
func (e *APIError) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// readBodyForError reads at most maxErrorBodySize bytes of an error body.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// decodeAPIError builds an APIError from a non-2xx response.
func decodeAPIError(resp *http.Response) *APIError {
	body := readBodyForError(resp.Body)

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.Status = resp.StatusCode
		return &apiErr
	}
	return &APIError{Status: resp.StatusCode, Body: string(body)}
}
