// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package notion

import (
	"strconv"
	"strings"
	"time"
)

// Prop returns the named property of p. A missing property yields the zero
// Property, which every helper below treats as empty.
func (p *Page) Prop(name string) Property {
	if p.Properties == nil {
		return Property{}
	}
	return p.Properties[name]
}

// PlainText flattens title, rich_text, select, status, url and number
// properties into a trimmed string.
func PlainText(prop Property) string {
	switch {
	case len(prop.Title) > 0:
		return joinRichText(prop.Title)
	case len(prop.RichText) > 0:
		return joinRichText(prop.RichText)
	case prop.Select != nil:
		return strings.TrimSpace(prop.Select.Name)
	case prop.Status != nil:
		return strings.TrimSpace(prop.Status.Name)
	case prop.URL != nil:
		return strings.TrimSpace(*prop.URL)
	case prop.Number != nil:
		return strconv.FormatFloat(*prop.Number, 'f', -1, 64)
	}
	return ""
}

func joinRichText(spans []RichText) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.PlainText)
	}
	return strings.TrimSpace(b.String())
}

// SelectName returns the option name of a select or status property. A
// rich_text value is accepted too, since CMS editors often switch types.
func SelectName(prop Property) string {
	switch {
	case prop.Select != nil:
		return strings.TrimSpace(prop.Select.Name)
	case prop.Status != nil:
		return strings.TrimSpace(prop.Status.Name)
	}
	return PlainText(prop)
}

// MultiSelectNames returns the option names of a multi_select property.
// Text properties are split on commas, including the full-width "，" and
// the enumeration comma "、".
func MultiSelectNames(prop Property) []string {
	if len(prop.MultiSelect) > 0 {
		out := make([]string, 0, len(prop.MultiSelect))
		for _, o := range prop.MultiSelect {
			if name := strings.TrimSpace(o.Name); name != "" {
				out = append(out, name)
			}
		}
		return out
	}

	text := PlainText(prop)
	if text == "" {
		return nil
	}
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '，' || r == '、' || r == ';' || r == '；'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Number returns a number property, or a text property that parses as a
// number.
func Number(prop Property) (float64, bool) {
	if prop.Number != nil {
		return *prop.Number, true
	}
	text := PlainText(prop)
	if text == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Checkbox returns a checkbox property. Select and text values of
// "yes"/"true"/"是" count as checked.
func Checkbox(prop Property) bool {
	if prop.Checkbox != nil {
		return *prop.Checkbox
	}
	switch strings.ToLower(SelectName(prop)) {
	case "true", "yes", "y", "1", "是", "已发布", "published":
		return true
	}
	return false
}

// URL returns a url property, or the first link in a text property.
func URL(prop Property) string {
	if prop.URL != nil {
		return strings.TrimSpace(*prop.URL)
	}
	for _, spans := range [][]RichText{prop.RichText, prop.Title} {
		for _, s := range spans {
			if s.Href != "" {
				return s.Href
			}
		}
	}
	text := PlainText(prop)
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		return text
	}
	return ""
}

// FileURL returns the URL of the first file in a files property, falling
// back to URL.
func FileURL(prop Property) string {
	for _, f := range prop.Files {
		if f.External != nil && f.External.URL != "" {
			return f.External.URL
		}
		if f.File != nil && f.File.URL != "" {
			return f.File.URL
		}
	}
	return URL(prop)
}

// DateValue returns the start of a date property.
func DateValue(prop Property) (time.Time, bool) {
	if prop.Date == nil || prop.Date.Start == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.000", "2006-01-02"} {
		if t, err := time.Parse(layout, prop.Date.Start); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
