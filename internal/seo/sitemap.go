// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package seo

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/toolverse/internal/config"
	"github.com/tomtom215/toolverse/internal/directory"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

func lastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}

// Sitemap renders the sitemap.org urlset for the home page, tool listing,
// every category, tool, comparison and blog post.
func Sitemap(site config.SiteConfig, idx *directory.Index) ([]byte, error) {
	updated := lastMod(idx.UpdatedAt())
	set := urlSet{NS: sitemapNS}
	add := func(path, mod, freq, prio string) {
		set.URLs = append(set.URLs, sitemapURL{Loc: AbsoluteURL(site, path), LastMod: mod, ChangeFreq: freq, Priority: prio})
	}

	add("/", updated, "daily", "1.0")
	add("/tools", updated, "daily", "0.9")
	add("/blog", updated, "weekly", "0.6")
	for _, c := range idx.Categories() {
		if c.ToolCount == 0 {
			add(CategoryPath(c.Slug), updated, "weekly", "0.4")
			continue
		}
		add(CategoryPath(c.Slug), updated, "daily", "0.8")
	}
	for _, t := range idx.Tools() {
		mod := lastMod(t.UpdatedAt)
		if mod == "" {
			mod = updated
		}
		add(ToolPath(t.Slug), mod, "weekly", "0.7")
	}
	for _, c := range idx.Comparisons() {
		add(ComparisonPath(c.Slug), lastMod(c.PublishedAt), "monthly", "0.6")
	}
	for _, p := range idx.Posts(0) {
		add(PostPath(p.Slug), lastMod(p.PublishedAt), "monthly", "0.5")
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// Robots renders robots.txt. The JSON API is not for crawlers.
func Robots(site config.SiteConfig) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("Disallow: /metrics\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "Sitemap: %s\n", AbsoluteURL(site, "/sitemap.xml"))
	return b.String()
}
