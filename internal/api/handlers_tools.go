// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/toolverse/internal/ads"
	"github.com/tomtom215/toolverse/internal/cache"
	"github.com/tomtom215/toolverse/internal/directory"
	"github.com/tomtom215/toolverse/internal/models"
	"github.com/tomtom215/toolverse/internal/seo"
)

const (
	relatedTools       = 6
	defaultSuggestions = 8
	maxBlogLimit       = 100
)

// ToolList is the data of GET /tools. AdPositions lists the indexes before
// which an in-feed ad should be shown.
type ToolList struct {
	Tools       []models.Tool `json:"tools"`
	AdPositions []int         `json:"ad_positions,omitempty"`
}

// ToolDetail is the data of GET /tools/{slug}.
type ToolDetail struct {
	Tool    models.Tool   `json:"tool"`
	Related []models.Tool `json:"related"`
	JSONLD  []seo.JSONLD  `json:"json_ld"`
	Meta    seo.PageMeta  `json:"meta"`
}

// CategoryDetail is the data of GET /categories/{slug}.
type CategoryDetail struct {
	Category models.Category `json:"category"`
	Tools    []models.Tool   `json:"tools"`
	JSONLD   []seo.JSONLD    `json:"json_ld"`
	Meta     seo.PageMeta    `json:"meta"`
}

// ComparisonDetail is the data of GET /comparisons/{slug}.
type ComparisonDetail struct {
	Comparison directory.ResolvedComparison `json:"comparison"`
	JSONLD     []seo.JSONLD                 `json:"json_ld"`
	Meta       seo.PageMeta                 `json:"meta"`
}

// PostDetail is the data of GET /blog/{slug}.
type PostDetail struct {
	Post   models.BlogPost `json:"post"`
	JSONLD []seo.JSONLD    `json:"json_ld"`
	Meta   seo.PageMeta    `json:"meta"`
}

// ListTools handles GET /api/v1/tools
func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	idx := h.currentIndex(w, r)
	if idx == nil {
		return
	}
	tq, verr, msg := parseToolQuery(r)
	switch {
	case msg != "":
		NewResponseWriter(w, r).BadRequest(msg)
		return
	case verr != nil:
		NewResponseWriter(w, r).ValidationError(verr)
		return
	}

	h.respondCached(w, r, idx, cache.GenerateKey("tools", tq), func() (interface{}, *PaginationMeta, error) {
		page := idx.Query(tq)
		list := ToolList{Tools: page.Tools}
		if h.ads != nil {
			list.AdPositions = ads.InFeed(len(page.Tools), h.config.Ads.InFeedEvery)
		}
		return list, newPagination(page.Page, page.PageSize, page.Total, page.TotalPages), nil
	})
}

// GetTool handles GET /api/v1/tools/{slug}
func (h *Handler) GetTool(w http.ResponseWriter, r *http.Request) {
	idx := h.currentIndex(w, r)
	if idx == nil {
		return
	}
	slug := chi.URLParam(r, "slug")
	tool, ok := idx.Tool(slug)
	if !ok {
		WriteNotFound(w, r, fmt.Sprintf("tool %q not found", slug))
		return
	}

	site := h.config.Site
	crumbs := []seo.Crumb{{Name: tool.Name, Path: seo.ToolPath(tool.Slug)}}
	if cat, ok := idx.Category(tool.Category); ok {
		crumbs = []seo.Crumb{
			{Name: cat.Name, Path: seo.CategoryPath(cat.Slug)},
			crumbs[0],
		}
	}

	related := idx.Related(slug, relatedTools)
	if related == nil {
		related = []models.Tool{}
	}
	h.respondFresh(w, r, ToolDetail{
		Tool:    tool,
		Related: related,
		JSONLD:  []seo.JSONLD{seo.SoftwareApplication(site, tool), seo.BreadcrumbList(site, crumbs)},
		Meta:    seo.Meta(site, tool.Name, tool.Description, seo.ToolPath(tool.Slug)),
	})
}

// ListCategories handles GET /api/v1/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	idx := h.currentIndex(w, r)
	if idx == nil {
		return
	}
	h.respondCached(w, r, idx, "categories", func() (interface{}, *PaginationMeta, error) {
		return idx.Categories(), nil, nil
	})
}

// GetCategory handles GET /api/v1/categories/{slug}. It accepts the same
// paging and sort parameters as ListTools.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	idx := h.currentIndex(w, r)
	if idx == nil {
		return
	}
	slug := chi.URLParam(r, "slug")
	cat, ok := idx.Category(slug)
	if !ok {
		WriteNotFound(w, r, fmt.Sprintf("category %q not found", slug))
		return
	}
	tq, verr, msg := parseToolQuery(r)
	switch {
	case msg != "":
		NewResponseWriter(w, r).BadRequest(msg)
		return
	case verr != nil:
		NewResponseWriter(w, r).ValidationError(verr)
		return
	}
	tq.Category = cat.Slug

	h.respondCached(w, r, idx, cache.GenerateKey("category", tq), func() (interface{}, *PaginationMeta, error) {
		site := h.config.Site
		page := idx.Query(tq)
		path := seo.CategoryPath(cat.Slug)
		detail := CategoryDetail{
			Category: cat,
			Tools:    page.Tools,
			JSONLD: []seo.JSONLD{
				seo.ItemList(site, cat.Name, page.Tools),
				seo.BreadcrumbList(site, []seo.Crumb{{Name: cat.Name, Path: path}}),
			},
			Meta: seo.Meta(site, cat.Name+" AI Tools", cat.Description, path),
		}
		return detail, newPagination(page.Page, page.PageSize, page.Total, page.TotalPages), nil
	})
}

// Compare handles GET /api/v1/compare?tools=a,b[,c,d]
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	idx := h.currentIndex(w, r)
	if idx == nil {
		return
	}
	slugs := parseCommaSeparated(r.URL.Query().Get("tools"))
	result, err := idx.Compare(slugs)
	switch {
	case errors.Is(err, directory.ErrInvalidComparison):
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusBadRequest, ErrCodeValidation, err.Error(),
			map[string]interface{}{"field": "tools", "min": directory.MinCompare, "max": directory.MaxCompare})
		return
	case errors.Is(err, directory.ErrNotFound):
		WriteNotFound(w, r, err.Error())
		return
	case err != nil:
		NewResponseWriter(w, r).InternalError("Comparison failed", err)
		return
	}
	h.respondFresh(w, r, result)
}

// ListComparisons handles GET /api/v1/comparisons
func (h *Handler) ListComparisons(w http.ResponseWriter, r *http.Request) {
	idx := h.currentIndex(w, r)
	if idx == nil {
		return
	}
	h.respondCached(w, r, idx, "comparisons", func() (interface{}, *PaginationMeta, error) {
		return idx.Comparisons(), nil, nil
	})
}

// GetComparison handles GET /api/v1/comparisons/{slug}
func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	idx := h.currentIndex(w, r)
	if idx == nil {
		return
	}
	slug := chi.URLParam(r, "slug")
	c, ok := idx.Comparison(slug)
	if !ok {
		WriteNotFound(w, r, fmt.Sprintf("comparison %q not found", slug))
		return
	}
	site := h.config.Site
	path := seo.ComparisonPath(c.Slug)
	h.respondFresh(w, r, ComparisonDetail{
		Comparison: c,
		JSONLD: []seo.JSONLD{
			seo.ComparisonArticle(site, c),
			seo.BreadcrumbList(site, []seo.Crumb{{Name: c.Title, Path: path}}),
		},
		Meta: seo.Meta(site, c.Title, c.Summary, path),
	})
}

// ListPosts handles GET /api/v1/blog?limit=
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	idx := h.currentIndex(w, r)
	if idx == nil {
		return
	}
	limit, ok := getIntParam(r, "limit", 0)
	if !ok || limit < 0 || limit > maxBlogLimit {
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusBadRequest, ErrCodeValidation,
			fmt.Sprintf("limit must be between 0 and %d", maxBlogLimit),
			map[string]interface{}{"field": "limit"})
		return
	}
	h.respondCached(w, r, idx, fmt.Sprintf("blog:%d", limit), func() (interface{}, *PaginationMeta, error) {
		return idx.Posts(limit), nil, nil
	})
}

// GetPost handles GET /api/v1/blog/{slug}
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	idx := h.currentIndex(w, r)
	if idx == nil {
		return
	}
	slug := chi.URLParam(r, "slug")
	p, ok := idx.Post(slug)
	if !ok {
		WriteNotFound(w, r, fmt.Sprintf("post %q not found", slug))
		return
	}
	site := h.config.Site
	path := seo.PostPath(p.Slug)
	meta := seo.Meta(site, p.Title, p.Excerpt, path)
	meta.OGType = "article"
	if p.CoverURL != "" {
		meta.OGImage = p.CoverURL
	}
	h.respondFresh(w, r, PostDetail{
		Post: p,
		JSONLD: []seo.JSONLD{
			seo.Article(site, p),
			seo.BreadcrumbList(site, []seo.Crumb{{Name: "Blog", Path: "/blog"}, {Name: p.Title, Path: path}}),
		},
		Meta: meta,
	})
}

// Suggest handles GET /api/v1/search/suggest?q=&limit=
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	idx := h.currentIndex(w, r)
	if idx == nil {
		return
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	limit, ok := getIntParam(r, "limit", defaultSuggestions)
	if !ok || limit < 1 || limit > directory.MaxSuggestions {
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusBadRequest, ErrCodeValidation,
			fmt.Sprintf("limit must be between 1 and %d", directory.MaxSuggestions),
			map[string]interface{}{"field": "limit"})
		return
	}
	if q == "" || len(q) > 100 {
		h.respondFresh(w, r, []directory.Suggestion{})
		return
	}
	h.respondCached(w, r, idx, cache.GenerateKey("suggest", []interface{}{strings.ToLower(q), limit}), func() (interface{}, *PaginationMeta, error) {
		return idx.Suggest(q, limit), nil, nil
	})
}
