// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package directory

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/toolverse/internal/models"
)

// Comparison limits.
const (
	MinCompare = 2
	MaxCompare = 4
)

// ErrInvalidComparison is returned for fewer than two, more than four or
// repeated slugs.
var ErrInvalidComparison = errors.New("invalid comparison")

// ComparisonResult is an ad-hoc side-by-side view of several tools.
type ComparisonResult struct {
	Tools []models.Tool `json:"tools"`
	// SharedTags are the tags every tool has, in the first tool's spelling.
	SharedTags []string `json:"shared_tags"`
	// UniqueTags maps a tool slug to the tags no other compared tool has.
	UniqueTags map[string][]string `json:"unique_tags"`
	TopRated   string              `json:"top_rated,omitempty"`
	Cheapest   string              `json:"cheapest,omitempty"`
	// CheapestPricing is the pricing tier of Cheapest.
	CheapestPricing string `json:"cheapest_pricing,omitempty"`
}

// Compare resolves slugs and summarizes their differences. Unknown slugs
// fail with an error wrapping ErrNotFound.
func (idx *Index) Compare(slugs []string) (*ComparisonResult, error) {
	if len(slugs) < MinCompare || len(slugs) > MaxCompare {
		return nil, fmt.Errorf("%w: compare between %d and %d tools, got %d", ErrInvalidComparison, MinCompare, MaxCompare, len(slugs))
	}

	res := &ComparisonResult{
		Tools:      make([]models.Tool, 0, len(slugs)),
		SharedTags: []string{},
		UniqueTags: make(map[string][]string, len(slugs)),
	}
	seen := make(map[string]struct{}, len(slugs))
	for _, slug := range slugs {
		if _, dup := seen[slug]; dup {
			return nil, fmt.Errorf("%w: %q listed twice", ErrInvalidComparison, slug)
		}
		seen[slug] = struct{}{}
		t, ok := idx.Tool(slug)
		if !ok {
			return nil, fmt.Errorf("tool %q: %w", slug, ErrNotFound)
		}
		res.Tools = append(res.Tools, t)
	}

	// tag -> number of compared tools carrying it
	owners := make(map[string]int)
	for _, t := range res.Tools {
		for _, tag := range uniqueLower(t.Tags) {
			owners[tag]++
		}
	}
	for _, tag := range res.Tools[0].Tags {
		if owners[strings.ToLower(tag)] == len(res.Tools) && !containsFold(res.SharedTags, tag) {
			res.SharedTags = append(res.SharedTags, tag)
		}
	}
	for _, t := range res.Tools {
		unique := []string{}
		for _, tag := range t.Tags {
			if owners[strings.ToLower(tag)] == 1 && !containsFold(unique, tag) {
				unique = append(unique, tag)
			}
		}
		res.UniqueTags[t.Slug] = unique
	}

	byRating := append([]models.Tool(nil), res.Tools...)
	sort.SliceStable(byRating, func(i, j int) bool {
		if byRating[i].Rating != byRating[j].Rating {
			return byRating[i].Rating > byRating[j].Rating
		}
		return byRating[i].ReviewCount > byRating[j].ReviewCount
	})
	if byRating[0].Rating > 0 {
		res.TopRated = byRating[0].Slug
	}

	cheapest := -1
	for i, t := range res.Tools {
		if cheapest < 0 || pricingRank(t.Pricing) < pricingRank(res.Tools[cheapest].Pricing) {
			cheapest = i
		}
	}
	if pricingRank(res.Tools[cheapest].Pricing) < pricingRank(models.PricingUnknown) {
		res.Cheapest = res.Tools[cheapest].Slug
		res.CheapestPricing = res.Tools[cheapest].Pricing
	}
	return res, nil
}

func pricingRank(p string) int {
	if r, ok := models.PricingRank[p]; ok {
		return r
	}
	return models.PricingRank[models.PricingUnknown]
}

func uniqueLower(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		l := strings.ToLower(tag)
		if _, dup := seen[l]; !dup {
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
