// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package notion

import "time"

// QueryRequest is the body of POST /v1/databases/{id}/query.
type QueryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
	Sorts       []Sort `json:"sorts,omitempty"`
}

// Sort orders query results by a property or a page timestamp.
type Sort struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Direction string `json:"direction"`
}

// QueryResponse is one page of database query results.
type QueryResponse struct {
	Object     string  `json:"object"`
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// Cursor returns the next cursor, or "" when there is none.
func (r *QueryResponse) Cursor() string {
	if r.NextCursor == nil {
		return ""
	}
	return *r.NextCursor
}

// Page is a database row.
type Page struct {
	ID             string              `json:"id"`
	CreatedTime    time.Time           `json:"created_time"`
	LastEditedTime time.Time           `json:"last_edited_time"`
	Archived       bool                `json:"archived"`
	InTrash        bool                `json:"in_trash"`
	URL            string              `json:"url"`
	Properties     map[string]Property `json:"properties"`
}

// Property is a page property value. Only the field matching Type is set.
type Property struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	Status      *SelectOption  `json:"status,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	URL         *string        `json:"url,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	Checkbox    *bool          `json:"checkbox,omitempty"`
	Date        *DateRange     `json:"date,omitempty"`
	Files       []File         `json:"files,omitempty"`
}

// RichText is one rich text span.
type RichText struct {
	Type      string `json:"type"`
	PlainText string `json:"plain_text"`
	Href      string `json:"href,omitempty"`
}

// SelectOption is a select, status or multi-select option.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// DateRange is a date property value. Start is either a date
// ("2024-05-01") or a date-time with offset.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// File is an uploaded or external file reference.
type File struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	File     *FileLink `json:"file,omitempty"`
	External *FileLink `json:"external,omitempty"`
}

// FileLink holds a file URL.
type FileLink struct {
	URL string `json:"url"`
}
