// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

// Package seo builds schema.org JSON-LD documents, page meta, the XML
// sitemap and robots.txt for the public site.
package seo

import (
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/toolverse/internal/config"
	"github.com/tomtom215/toolverse/internal/directory"
	"github.com/tomtom215/toolverse/internal/models"
)

const schemaContext = "https://schema.org"

// JSONLD is one schema.org document. It marshals to the object embedded in
// a <script type="application/ld+json"> tag.
type JSONLD map[string]any

// Crumb is one breadcrumb step. Path is relative to the site root.
type Crumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Page paths shared by the sitemap, canonical URLs and JSON-LD.
func ToolPath(slug string) string       { return "/tools/" + slug }
func CategoryPath(slug string) string   { return "/categories/" + slug }
func ComparisonPath(slug string) string { return "/compare/" + slug }
func PostPath(slug string) string       { return "/blog/" + slug }

// AbsoluteURL joins the site base URL and path.
func AbsoluteURL(site config.SiteConfig, path string) string {
	base := strings.TrimRight(site.BaseURL, "/")
	if path == "" || path == "/" {
		return base + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// WebSite describes the site with a sitelinks search box.
func WebSite(site config.SiteConfig) JSONLD {
	return JSONLD{
		"@context":    schemaContext,
		"@type":       "WebSite",
		"name":        site.Name,
		"url":         AbsoluteURL(site, "/"),
		"description": site.Description,
		"inLanguage":  strings.ReplaceAll(site.Locale, "_", "-"),
		"potentialAction": JSONLD{
			"@type":       "SearchAction",
			"target":      AbsoluteURL(site, "/tools") + "?q={search_term_string}",
			"query-input": "required name=search_term_string",
		},
	}
}

// Organization describes the publisher.
func Organization(site config.SiteConfig) JSONLD {
	org := JSONLD{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     site.Name,
		"url":      AbsoluteURL(site, "/"),
	}
	if site.LogoURL != "" {
		org["logo"] = site.LogoURL
	}
	if site.Twitter != "" {
		org["sameAs"] = []string{"https://twitter.com/" + strings.TrimPrefix(site.Twitter, "@")}
	}
	return org
}

// SoftwareApplication describes one tool.
func SoftwareApplication(site config.SiteConfig, t models.Tool) JSONLD {
	doc := JSONLD{
		"@context":            schemaContext,
		"@type":               "SoftwareApplication",
		"name":                t.Name,
		"description":         t.Description,
		"applicationCategory": applicationCategory(t.Category),
		"operatingSystem":     "Web",
		"url":                 AbsoluteURL(site, ToolPath(t.Slug)),
	}
	if t.URL != "" {
		doc["sameAs"] = t.URL
	}
	if t.LogoURL != "" {
		doc["image"] = t.LogoURL
	}
	if len(t.Tags) > 0 {
		doc["keywords"] = strings.Join(t.Tags, ", ")
	}
	if !t.LaunchDate.IsZero() {
		doc["datePublished"] = t.LaunchDate.Format(time.DateOnly)
	}
	if offer := offer(t); offer != nil {
		doc["offers"] = offer
	}
	if t.ReviewCount > 0 && t.Rating > 0 {
		doc["aggregateRating"] = JSONLD{
			"@type":       "AggregateRating",
			"ratingValue": strconv.FormatFloat(t.Rating, 'f', 1, 64),
			"reviewCount": t.ReviewCount,
			"bestRating":  "5",
			"worstRating": "1",
		}
	}
	return doc
}

func applicationCategory(category string) string {
	switch category {
	case "coding":
		return "DeveloperApplication"
	case "design", "image-generation", "video", "audio":
		return "MultimediaApplication"
	case "productivity", "automation", "research":
		return "BusinessApplication"
	default:
		return "UtilitiesApplication"
	}
}

// offer maps a pricing tier to an Offer. Tiers without a known entry price
// carry the tier as the offer category only.
func offer(t models.Tool) JSONLD {
	o := JSONLD{"@type": "Offer", "category": t.Pricing}
	switch t.Pricing {
	case models.PricingFree, models.PricingOpenSource, models.PricingFreemium, models.PricingFreeTrial:
		o["price"] = "0"
		o["priceCurrency"] = "USD"
	case models.PricingUnknown, "":
		return nil
	}
	if t.PriceDetail != "" {
		o["description"] = t.PriceDetail
	}
	if t.URL != "" {
		o["url"] = t.URL
	}
	return o
}

// ItemList lists tools in order, for category and listing pages.
func ItemList(site config.SiteConfig, name string, tools []models.Tool) JSONLD {
	items := make([]JSONLD, len(tools))
	for i, t := range tools {
		items[i] = JSONLD{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     t.Name,
			"url":      AbsoluteURL(site, ToolPath(t.Slug)),
		}
	}
	return JSONLD{
		"@context":        schemaContext,
		"@type":           "ItemList",
		"name":            name,
		"numberOfItems":   len(tools),
		"itemListElement": items,
	}
}

// BreadcrumbList builds a trail starting at the home page.
func BreadcrumbList(site config.SiteConfig, crumbs []Crumb) JSONLD {
	items := make([]JSONLD, 0, len(crumbs)+1)
	items = append(items, JSONLD{
		"@type":    "ListItem",
		"position": 1,
		"name":     "Home",
		"item":     AbsoluteURL(site, "/"),
	})
	for i, c := range crumbs {
		items = append(items, JSONLD{
			"@type":    "ListItem",
			"position": i + 2,
			"name":     c.Name,
			"item":     AbsoluteURL(site, c.Path),
		})
	}
	return JSONLD{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}

// Article describes a blog post.
func Article(site config.SiteConfig, p models.BlogPost) JSONLD {
	author := p.Author
	if author == "" {
		author = site.Name
	}
	doc := article(site, p.Title, p.Excerpt, PostPath(p.Slug), author, p.PublishedAt)
	if p.CoverURL != "" {
		doc["image"] = p.CoverURL
	}
	if len(p.Tags) > 0 {
		doc["keywords"] = strings.Join(p.Tags, ", ")
	}
	return doc
}

// ComparisonArticle describes an editorial comparison and names the tools
// it covers.
func ComparisonArticle(site config.SiteConfig, c directory.ResolvedComparison) JSONLD {
	doc := article(site, c.Title, c.Summary, ComparisonPath(c.Slug), site.Name, c.PublishedAt)
	about := make([]JSONLD, len(c.Tools))
	for i, t := range c.Tools {
		about[i] = JSONLD{
			"@type": "SoftwareApplication",
			"name":  t.Name,
			"url":   AbsoluteURL(site, ToolPath(t.Slug)),
		}
	}
	doc["about"] = about
	return doc
}

func article(site config.SiteConfig, headline, description, path, author string, published time.Time) JSONLD {
	publisher := Organization(site)
	delete(publisher, "@context")
	doc := JSONLD{
		"@context":         schemaContext,
		"@type":            "Article",
		"headline":         headline,
		"description":      description,
		"url":              AbsoluteURL(site, path),
		"mainEntityOfPage": AbsoluteURL(site, path),
		"author":           JSONLD{"@type": "Person", "name": author},
		"publisher":        publisher,
	}
	if !published.IsZero() {
		doc["datePublished"] = published.Format(time.RFC3339)
	}
	return doc
}

// PageMeta is the <head> metadata of one page.
type PageMeta struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Canonical     string `json:"canonical"`
	OGTitle       string `json:"og_title"`
	OGDescription string `json:"og_description"`
	OGType        string `json:"og_type"`
	OGURL         string `json:"og_url"`
	OGSiteName    string `json:"og_site_name"`
	OGLocale      string `json:"og_locale"`
	OGImage       string `json:"og_image,omitempty"`
	TwitterCard   string `json:"twitter_card"`
	TwitterSite   string `json:"twitter_site,omitempty"`
}

// maxDescription is the length search engines show before truncating.
const maxDescription = 160

// Meta builds page metadata. The title gets a " | Site" suffix unless it
// already names the site, and the description is cut at a word boundary.
func Meta(site config.SiteConfig, title, description, path string) PageMeta {
	fullTitle := title
	switch {
	case title == "":
		fullTitle = site.Name
	case !strings.Contains(title, site.Name):
		fullTitle = title + " | " + site.Name
	}
	if description == "" {
		description = site.Description
	}
	description = truncate(description, maxDescription)
	canonical := AbsoluteURL(site, path)

	ogType := "website"
	if strings.HasPrefix(path, "/blog/") || strings.HasPrefix(path, "/compare/") {
		ogType = "article"
	}

	twitter := ""
	if site.Twitter != "" {
		twitter = "@" + strings.TrimPrefix(site.Twitter, "@")
	}

	return PageMeta{
		Title:         fullTitle,
		Description:   description,
		Canonical:     canonical,
		OGTitle:       fullTitle,
		OGDescription: description,
		OGType:        ogType,
		OGURL:         canonical,
		OGSiteName:    site.Name,
		OGLocale:      site.Locale,
		OGImage:       site.LogoURL,
		TwitterCard:   "summary_large_image",
		TwitterSite:   twitter,
	}
}

// truncate cuts s to at most n runes, backing up to a space and adding an
// ellipsis.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	cut := string(runes[:n-1])
	if i := strings.LastIndexByte(cut, ' '); i > n/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
