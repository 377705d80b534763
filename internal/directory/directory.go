// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

/*
Package directory answers the read queries behind the public site: tool
listings with filters, tool detail with related tools, categories, ad-hoc
and editorial comparisons, blog previews and search suggestions.

An Index is built once per synced snapshot and never modified afterwards,
so it is safe for concurrent use without locking. The API keeps the current
Index behind an atomic pointer and swaps it after every sync.

Values returned by an Index share backing arrays with it and must be
treated as read-only.
*/
package directory

import (
	"errors"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tomtom215/toolverse/internal/cache"
	"github.com/tomtom215/toolverse/internal/models"
	"github.com/tomtom215/toolverse/internal/translate"
)

// ErrNotFound is returned when a slug matches nothing.
var ErrNotFound = errors.New("not found")

// Data is the input of New.
type Data struct {
	Tools       []models.Tool
	Categories  []models.Category
	Comparisons []models.Comparison
	Posts       []models.BlogPost
	Source      models.Source
	UpdatedAt   time.Time
}

// ResolvedComparison is an editorial comparison with its tools looked up.
type ResolvedComparison struct {
	models.Comparison
	Tools []models.Tool `json:"tools"`
}

// Index is an immutable view of one snapshot.
type Index struct {
	tools       []models.Tool
	bySlug      map[string]int
	categories  []models.Category
	catBySlug   map[string]int
	comparisons []ResolvedComparison
	compBySlug  map[string]int
	posts       []models.BlogPost
	postBySlug  map[string]int
	suggest     *cache.Trie
	source      models.Source
	updatedAt   time.Time
	tr          *translate.Translator
}

// New builds an Index. Tools keep their input order as the default
// "featured" ordering.
func New(d Data) *Index {
	idx := &Index{
		tools:     d.Tools,
		bySlug:    make(map[string]int, len(d.Tools)),
		source:    d.Source,
		updatedAt: d.UpdatedAt,
		tr:        translate.Default(),
	}
	for i := range d.Tools {
		if _, dup := idx.bySlug[d.Tools[i].Slug]; !dup {
			idx.bySlug[d.Tools[i].Slug] = i
		}
	}

	idx.buildCategories(d.Categories)
	idx.buildComparisons(d.Comparisons)

	idx.posts = append([]models.BlogPost(nil), d.Posts...)
	sort.SliceStable(idx.posts, func(i, j int) bool {
		return idx.posts[i].PublishedAt.After(idx.posts[j].PublishedAt)
	})
	idx.postBySlug = make(map[string]int, len(idx.posts))
	for i, p := range idx.posts {
		if _, dup := idx.postBySlug[p.Slug]; !dup {
			idx.postBySlug[p.Slug] = i
		}
	}

	idx.suggest = buildSuggestions(idx.tools, idx.categories)
	return idx
}

// buildCategories counts tools per category and synthesizes entries for
// slugs the catalog does not define.
func (idx *Index) buildCategories(defined []models.Category) {
	counts := make(map[string]int)
	for i := range idx.tools {
		counts[idx.tools[i].Category]++
	}

	idx.categories = make([]models.Category, 0, len(defined)+len(counts))
	idx.catBySlug = make(map[string]int, len(defined)+len(counts))
	for _, c := range defined {
		if _, dup := idx.catBySlug[c.Slug]; dup {
			continue
		}
		c.ToolCount = counts[c.Slug]
		idx.catBySlug[c.Slug] = len(idx.categories)
		idx.categories = append(idx.categories, c)
	}

	var extra []string
	for slug := range counts {
		if _, ok := idx.catBySlug[slug]; !ok && slug != "" {
			extra = append(extra, slug)
		}
	}
	sort.Strings(extra)
	caser := cases.Title(language.English)
	for _, slug := range extra {
		idx.catBySlug[slug] = len(idx.categories)
		idx.categories = append(idx.categories, models.Category{
			Slug:      slug,
			Name:      caser.String(strings.ReplaceAll(slug, "-", " ")),
			ToolCount: counts[slug],
		})
	}
}

func (idx *Index) buildComparisons(in []models.Comparison) {
	idx.comparisons = make([]ResolvedComparison, 0, len(in))
	idx.compBySlug = make(map[string]int, len(in))
	for _, c := range in {
		if _, dup := idx.compBySlug[c.Slug]; dup {
			continue
		}
		rc := ResolvedComparison{Comparison: c, Tools: make([]models.Tool, 0, len(c.ToolSlugs))}
		for _, slug := range c.ToolSlugs {
			if t, ok := idx.Tool(slug); ok {
				rc.Tools = append(rc.Tools, t)
			}
		}
		idx.compBySlug[c.Slug] = len(idx.comparisons)
		idx.comparisons = append(idx.comparisons, rc)
	}
	sort.SliceStable(idx.comparisons, func(i, j int) bool {
		return idx.comparisons[i].PublishedAt.After(idx.comparisons[j].PublishedAt)
	})
	for i, c := range idx.comparisons {
		idx.compBySlug[c.Slug] = i
	}
}

// Source reports where the indexed tools came from.
func (idx *Index) Source() models.Source { return idx.source }

// UpdatedAt is the fetch time of the indexed snapshot.
func (idx *Index) UpdatedAt() time.Time { return idx.updatedAt }

// Len returns the number of tools.
func (idx *Index) Len() int { return len(idx.tools) }

// Tools returns every tool in default order.
func (idx *Index) Tools() []models.Tool { return idx.tools }

// Tool looks a tool up by slug.
func (idx *Index) Tool(slug string) (models.Tool, bool) {
	i, ok := idx.bySlug[slug]
	if !ok {
		return models.Tool{}, false
	}
	return idx.tools[i], true
}

// Related returns up to n other tools, same category first, then by shared
// tags, then by rating.
func (idx *Index) Related(slug string, n int) []models.Tool {
	target, ok := idx.Tool(slug)
	if !ok || n <= 0 {
		return nil
	}
	tags := make(map[string]struct{}, len(target.Tags))
	for _, tag := range target.Tags {
		tags[strings.ToLower(tag)] = struct{}{}
	}

	type scored struct {
		tool    models.Tool
		sameCat bool
		overlap int
	}
	candidates := make([]scored, 0, len(idx.tools))
	for _, t := range idx.tools {
		if t.Slug == target.Slug {
			continue
		}
		s := scored{tool: t, sameCat: t.Category == target.Category}
		for _, tag := range t.Tags {
			if _, ok := tags[strings.ToLower(tag)]; ok {
				s.overlap++
			}
		}
		if !s.sameCat && s.overlap == 0 {
			continue
		}
		candidates = append(candidates, s)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.sameCat != b.sameCat {
			return a.sameCat
		}
		if a.overlap != b.overlap {
			return a.overlap > b.overlap
		}
		return a.tool.Rating > b.tool.Rating
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]models.Tool, len(candidates))
	for i := range candidates {
		out[i] = candidates[i].tool
	}
	return out
}

// Categories returns every category with its tool count.
func (idx *Index) Categories() []models.Category { return idx.categories }

// Category looks a category up by slug.
func (idx *Index) Category(slug string) (models.Category, bool) {
	i, ok := idx.catBySlug[slug]
	if !ok {
		return models.Category{}, false
	}
	return idx.categories[i], true
}

// Comparisons returns editorial comparisons, newest first.
func (idx *Index) Comparisons() []ResolvedComparison { return idx.comparisons }

// Comparison looks an editorial comparison up by slug.
func (idx *Index) Comparison(slug string) (ResolvedComparison, bool) {
	i, ok := idx.compBySlug[slug]
	if !ok {
		return ResolvedComparison{}, false
	}
	return idx.comparisons[i], true
}

// Posts returns up to limit posts, newest first. limit <= 0 returns all.
func (idx *Index) Posts(limit int) []models.BlogPost {
	if limit <= 0 || limit > len(idx.posts) {
		return idx.posts
	}
	return idx.posts[:limit]
}

// Post looks a post up by slug.
func (idx *Index) Post(slug string) (models.BlogPost, bool) {
	i, ok := idx.postBySlug[slug]
	if !ok {
		return models.BlogPost{}, false
	}
	return idx.posts[i], true
}
