// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package directory

import (
	"sort"
	"strings"

	"github.com/tomtom215/toolverse/internal/models"
	"github.com/tomtom215/toolverse/internal/translate"
)

// Sort orders accepted by ToolQuery.Sort.
const (
	SortFeatured = "featured"
	SortRating   = "rating"
	SortName     = "name"
	SortNewest   = "newest"
)

// Paging defaults.
const (
	DefaultPageSize = 24
	MaxPageSize     = 100
)

// ToolQuery filters and pages the tool list. Zero values mean "no filter".
type ToolQuery struct {
	Category string `query:"category" validate:"omitempty,slug,max=64"`
	Tag      string `query:"tag" validate:"omitempty,max=64"`
	// Pricing matches a tier by slug ("free-trial") or label ("Free Trial").
	Pricing  string `query:"pricing" validate:"omitempty,max=32"`
	Search   string `query:"q" validate:"omitempty,max=100"`
	Featured *bool  `query:"featured"`
	Sort     string `query:"sort" validate:"omitempty,oneof=featured rating name newest"`
	Page     int    `query:"page" validate:"gte=0,lte=10000"`
	PageSize int    `query:"page_size" validate:"gte=0,lte=100"`
}

// Normalize fills defaults and canonicalizes free-form fields. The result
// is also used as the response cache key.
func (q ToolQuery) Normalize() ToolQuery {
	q.Category = strings.TrimSpace(strings.ToLower(q.Category))
	q.Tag = strings.TrimSpace(q.Tag)
	q.Pricing = strings.TrimSpace(q.Pricing)
	q.Search = strings.TrimSpace(q.Search)
	if q.Sort == "" {
		q.Sort = SortFeatured
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// ToolPage is one page of a tool listing.
type ToolPage struct {
	Tools      []models.Tool `json:"tools"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// Query filters, sorts and pages the tools. A page past the end returns
// an empty Tools slice with the correct totals.
func (idx *Index) Query(q ToolQuery) ToolPage {
	q = q.Normalize()
	match := idx.matcher(q)

	filtered := make([]models.Tool, 0, len(idx.tools))
	for i := range idx.tools {
		if match(&idx.tools[i]) {
			filtered = append(filtered, idx.tools[i])
		}
	}
	sortBy(filtered, q.Sort)

	page := ToolPage{
		Total:    len(filtered),
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	page.TotalPages = (page.Total + q.PageSize - 1) / q.PageSize

	start := (q.Page - 1) * q.PageSize
	if start >= len(filtered) {
		page.Tools = []models.Tool{}
		return page
	}
	end := start + q.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	page.Tools = filtered[start:end]
	return page
}

func (idx *Index) matcher(q ToolQuery) func(*models.Tool) bool {
	tag := strings.ToLower(q.Tag)
	if translate.ContainsCJK(tag) {
		tag = strings.ToLower(idx.tr.Tag(q.Tag))
	}
	pricing := translate.Slugify(q.Pricing)
	if translate.ContainsCJK(q.Pricing) {
		pricing = translate.Slugify(idx.tr.Pricing(q.Pricing))
	}

	// A Chinese search term also matches its English translation.
	terms := []string{strings.ToLower(translate.Normalize(q.Search))}
	if translate.ContainsCJK(q.Search) {
		if en := strings.ToLower(idx.tr.Tag(q.Search)); en != "" && !translate.ContainsCJK(en) {
			terms = append(terms, en)
		}
	}

	return func(t *models.Tool) bool {
		if q.Category != "" && t.Category != q.Category {
			return false
		}
		if q.Featured != nil && t.Featured != *q.Featured {
			return false
		}
		if pricing != "" && translate.Slugify(t.Pricing) != pricing {
			return false
		}
		if tag != "" && !hasTag(t, tag) {
			return false
		}
		if terms[0] != "" && !matchesAny(t, terms) {
			return false
		}
		return true
	}
}

func hasTag(t *models.Tool, lowerTag string) bool {
	for _, tag := range t.Tags {
		if strings.ToLower(tag) == lowerTag {
			return true
		}
	}
	return false
}

func matchesAny(t *models.Tool, terms []string) bool {
	name := strings.ToLower(t.Name)
	desc := strings.ToLower(t.Description)
	for _, term := range terms {
		if strings.Contains(name, term) || strings.Contains(desc, term) {
			return true
		}
		for _, tag := range t.Tags {
			if strings.Contains(strings.ToLower(tag), term) {
				return true
			}
		}
	}
	return false
}

func sortBy(tools []models.Tool, order string) {
	var less func(a, b *models.Tool) bool
	switch order {
	case SortRating:
		less = func(a, b *models.Tool) bool {
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
			return a.ReviewCount > b.ReviewCount
		}
	case SortName:
		less = func(a, b *models.Tool) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortNewest:
		less = func(a, b *models.Tool) bool {
			if !a.LaunchDate.Equal(b.LaunchDate) {
				return a.LaunchDate.After(b.LaunchDate)
			}
			return a.UpdatedAt.After(b.UpdatedAt)
		}
	default:
		// Index order is already featured order.
		return
	}
	sort.SliceStable(tools, func(i, j int) bool { return less(&tools[i], &tools[j]) })
}
