// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package api

import (
	"net/http"

	"github.com/tomtom215/toolverse/internal/seo"
)

// WebsiteDetail is the data of GET /seo/website.
type WebsiteDetail struct {
	JSONLD []seo.JSONLD `json:"json_ld"`
	Meta   seo.PageMeta `json:"meta"`
}

// Website handles GET /api/v1/seo/website with the JSON-LD and meta of the
// home page.
func (h *Handler) Website(w http.ResponseWriter, r *http.Request) {
	site := h.config.Site
	h.respondFresh(w, r, WebsiteDetail{
		JSONLD: []seo.JSONLD{seo.WebSite(site), seo.Organization(site)},
		Meta:   seo.Meta(site, "", site.Description, "/"),
	})
}

// Sitemap handles GET /sitemap.xml
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	idx := h.currentIndex(w, r)
	if idx == nil {
		return
	}
	const key = "sitemap.xml"
	body, ok := h.cache.Get(key)
	if !ok {
		data, err := seo.Sitemap(h.config.Site, idx)
		if err != nil {
			NewResponseWriter(w, r).InternalError("Failed to render sitemap", err)
			return
		}
		h.cache.Set(key, data)
		body = data
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(body.([]byte))
}

// Robots handles GET /robots.txt
func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(seo.Robots(h.config.Site)))
}
