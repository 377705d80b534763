// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package directory

import (
	"github.com/tomtom215/toolverse/internal/cache"
	"github.com/tomtom215/toolverse/internal/models"
)

// Suggestion kinds.
const (
	KindTool     = "tool"
	KindTag      = "tag"
	KindCategory = "category"
)

// MaxSuggestions caps Suggest's limit.
const MaxSuggestions = 20

// Suggestion is one search-box completion.
type Suggestion struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
	// Slug is set for tools and categories.
	Slug  string `json:"slug,omitempty"`
	Count int    `json:"count"`
}

type suggestData struct {
	kind string
	slug string
}

// buildSuggestions indexes tool names, category names and tags. Every tool
// carrying a tag or sitting in a category counts as one more insert, so
// broad terms rank above rare ones.
func buildSuggestions(tools []models.Tool, categories []models.Category) *cache.Trie {
	trie := cache.NewTrieWithOptions(false, MaxSuggestions)

	catName := make(map[string]string, len(categories))
	for _, c := range categories {
		catName[c.Slug] = c.Name
	}
	for i := range tools {
		t := &tools[i]
		trie.InsertWithData(t.Name, suggestData{kind: KindTool, slug: t.Slug})
		if name := catName[t.Category]; name != "" {
			trie.InsertWithData(name, suggestData{kind: KindCategory, slug: t.Category})
		}
		for _, tag := range t.Tags {
			trie.InsertWithData(tag, suggestData{kind: KindTag})
		}
	}
	return trie
}

// Suggest completes prefix, most popular first and then alphabetically.
// Matching ignores case and works on any script.
func (idx *Index) Suggest(prefix string, limit int) []Suggestion {
	if limit <= 0 || limit > MaxSuggestions {
		limit = MaxSuggestions
	}
	results := idx.suggest.AutocompleteWithLimit(prefix, limit)
	out := make([]Suggestion, 0, len(results))
	for _, r := range results {
		s := Suggestion{Text: r.Value, Count: r.Count}
		if d, ok := r.Data.(suggestData); ok {
			s.Kind, s.Slug = d.kind, d.slug
		}
		out = append(out, s)
	}
	return out
}
