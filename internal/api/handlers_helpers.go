// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/toolverse/internal/directory"
	"github.com/tomtom215/toolverse/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// getIntParam extracts an integer query parameter with a default value.
// The second result is false when the value is present but not a number.
func getIntParam(r *http.Request, key string, defaultValue int) (int, bool) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, true
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, false
	}
	return intValue, true
}

// getBoolParam parses an optional boolean query parameter.
func getBoolParam(r *http.Request, key string) (*bool, bool) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, false
	}
	return &b, true
}

// parseCommaSeparated parses a comma-separated string into a slice
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseToolQuery reads the tool list parameters and validates them.
func parseToolQuery(r *http.Request) (directory.ToolQuery, *validation.RequestValidationError, string) {
	q := r.URL.Query()
	page, ok := getIntParam(r, "page", 1)
	if !ok {
		return directory.ToolQuery{}, nil, "page must be an integer"
	}
	pageSize, ok := getIntParam(r, "page_size", 0)
	if !ok {
		return directory.ToolQuery{}, nil, "page_size must be an integer"
	}
	featured, ok := getBoolParam(r, "featured")
	if !ok {
		return directory.ToolQuery{}, nil, "featured must be true or false"
	}

	tq := directory.ToolQuery{
		Category: strings.ToLower(strings.TrimSpace(q.Get("category"))),
		Tag:      q.Get("tag"),
		Pricing:  q.Get("pricing"),
		Search:   q.Get("q"),
		Featured: featured,
		Sort:     q.Get("sort"),
		Page:     page,
		PageSize: pageSize,
	}
	if verr := validation.ValidateStruct(&tq); verr != nil {
		return tq, verr, ""
	}
	return tq.Normalize(), nil, ""
}
