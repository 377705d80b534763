// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package seo

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"github.com/tomtom215/toolverse/internal/config"
	"github.com/tomtom215/toolverse/internal/directory"
	"github.com/tomtom215/toolverse/internal/models"
)

func testSite() config.SiteConfig {
	return config.SiteConfig{
		Name:        "ToolVerse",
		BaseURL:     "https://toolverse.test/",
		Description: "Discover AI tools.",
		LogoURL:     "https://toolverse.test/logo.png",
		Twitter:     "@toolverse",
		Locale:      "en_US",
	}
}

var launch = time.Date(2023, 3, 14, 0, 0, 0, 0, time.UTC)

func testTool() models.Tool {
	return models.Tool{
		ID: "1", Slug: "claude", Name: "Claude", Description: "Assistant by Anthropic.",
		Category: "chatbots", Tags: []string{"Chatbot", "Writing"}, Pricing: models.PricingFreemium,
		PriceDetail: "Pro from $20/month", URL: "https://claude.ai", Rating: 4.8, ReviewCount: 120,
		LaunchDate: launch,
	}
}

// roundTrip marshals a document the way the API does and decodes it into a
// generic map for assertions.
func roundTrip(t *testing.T, doc JSONLD) map[string]any {
	t.Helper()
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func TestAbsoluteURL(t *testing.T) {
	site := testSite()
	tests := []struct{ path, want string }{
		{"", "https://toolverse.test/"},
		{"/", "https://toolverse.test/"},
		{"/tools/claude", "https://toolverse.test/tools/claude"},
		{"blog/x", "https://toolverse.test/blog/x"},
	}
	for _, tt := range tests {
		if got := AbsoluteURL(site, tt.path); got != tt.want {
			t.Errorf("AbsoluteURL(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestWebSite(t *testing.T) {
	doc := roundTrip(t, WebSite(testSite()))

	if doc["@type"] != "WebSite" || doc["@context"] != "https://schema.org" {
		t.Errorf("type/context = %v/%v", doc["@type"], doc["@context"])
	}
	if doc["inLanguage"] != "en-US" {
		t.Errorf("inLanguage = %v, want en-US", doc["inLanguage"])
	}
	action, _ := doc["potentialAction"].(map[string]any)
	if action["target"] != "https://toolverse.test/tools?q={search_term_string}" {
		t.Errorf("SearchAction target = %v", action["target"])
	}
}

func TestOrganization(t *testing.T) {
	doc := roundTrip(t, Organization(testSite()))
	sameAs, _ := doc["sameAs"].([]any)
	if len(sameAs) != 1 || sameAs[0] != "https://twitter.com/toolverse" {
		t.Errorf("sameAs = %v", doc["sameAs"])
	}
	if doc["logo"] != "https://toolverse.test/logo.png" {
		t.Errorf("logo = %v", doc["logo"])
	}
}

func TestSoftwareApplication(t *testing.T) {
	doc := roundTrip(t, SoftwareApplication(testSite(), testTool()))

	checks := map[string]any{
		"@type":               "SoftwareApplication",
		"name":                "Claude",
		"applicationCategory": "UtilitiesApplication",
		"url":                 "https://toolverse.test/tools/claude",
		"sameAs":              "https://claude.ai",
		"keywords":            "Chatbot, Writing",
		"datePublished":       "2023-03-14",
	}
	for k, want := range checks {
		if doc[k] != want {
			t.Errorf("%s = %v, want %v", k, doc[k], want)
		}
	}

	offer, _ := doc["offers"].(map[string]any)
	if offer["price"] != "0" || offer["priceCurrency"] != "USD" || offer["description"] != "Pro from $20/month" {
		t.Errorf("offers = %v", offer)
	}
	rating, _ := doc["aggregateRating"].(map[string]any)
	if rating["ratingValue"] != "4.8" || rating["reviewCount"] != float64(120) {
		t.Errorf("aggregateRating = %v", rating)
	}
}

func TestSoftwareApplication_OptionalParts(t *testing.T) {
	tool := testTool()
	tool.ReviewCount = 0
	tool.Pricing = models.PricingUnknown
	tool.Category = "coding"

	doc := roundTrip(t, SoftwareApplication(testSite(), tool))
	if _, ok := doc["aggregateRating"]; ok {
		t.Error("aggregateRating present without reviews")
	}
	if _, ok := doc["offers"]; ok {
		t.Error("offers present for unknown pricing")
	}
	if doc["applicationCategory"] != "DeveloperApplication" {
		t.Errorf("applicationCategory = %v", doc["applicationCategory"])
	}

	tool.Pricing = models.PricingSubscription
	doc = roundTrip(t, SoftwareApplication(testSite(), tool))
	offer, _ := doc["offers"].(map[string]any)
	if _, ok := offer["price"]; ok || offer["category"] != models.PricingSubscription {
		t.Errorf("subscription offer = %v, want category only", offer)
	}
}

func TestItemListAndBreadcrumbs(t *testing.T) {
	site := testSite()
	tools := []models.Tool{{Slug: "a", Name: "A"}, {Slug: "b", Name: "B"}}

	list := roundTrip(t, ItemList(site, "Chatbots", tools))
	items, _ := list["itemListElement"].([]any)
	if len(items) != 2 || list["numberOfItems"] != float64(2) {
		t.Fatalf("ItemList = %v", list)
	}
	second, _ := items[1].(map[string]any)
	if second["position"] != float64(2) || second["url"] != "https://toolverse.test/tools/b" {
		t.Errorf("second item = %v", second)
	}

	crumbs := roundTrip(t, BreadcrumbList(site, []Crumb{{Name: "Chatbots", Path: CategoryPath("chatbots")}}))
	items, _ = crumbs["itemListElement"].([]any)
	if len(items) != 2 {
		t.Fatalf("breadcrumbs = %v", crumbs)
	}
	home, _ := items[0].(map[string]any)
	last, _ := items[1].(map[string]any)
	if home["name"] != "Home" || last["item"] != "https://toolverse.test/categories/chatbots" {
		t.Errorf("breadcrumbs = %v", items)
	}
}

func TestArticle(t *testing.T) {
	site := testSite()
	post := models.BlogPost{Slug: "guide", Title: "Guide", Excerpt: "How to.", PublishedAt: launch, Tags: []string{"Guides"}}

	doc := roundTrip(t, Article(site, post))
	if doc["url"] != "https://toolverse.test/blog/guide" || doc["datePublished"] != "2023-03-14T00:00:00Z" {
		t.Errorf("article = %v", doc)
	}
	author, _ := doc["author"].(map[string]any)
	if author["name"] != "ToolVerse" {
		t.Errorf("author = %v, want site name fallback", author)
	}
	publisher, _ := doc["publisher"].(map[string]any)
	if _, nested := publisher["@context"]; nested {
		t.Error("publisher carries its own @context")
	}

	comp := directory.ResolvedComparison{
		Comparison: models.Comparison{Slug: "a-vs-b", Title: "A vs B"},
		Tools:      []models.Tool{{Slug: "a", Name: "A"}, {Slug: "b", Name: "B"}},
	}
	doc = roundTrip(t, ComparisonArticle(site, comp))
	about, _ := doc["about"].([]any)
	if len(about) != 2 || doc["url"] != "https://toolverse.test/compare/a-vs-b" {
		t.Errorf("comparison article = %v", doc)
	}
}

func TestMeta(t *testing.T) {
	site := testSite()

	m := Meta(site, "Claude", "", "/tools/claude")
	if m.Title != "Claude | ToolVerse" || m.Description != site.Description {
		t.Errorf("title/description = %q/%q", m.Title, m.Description)
	}
	if m.Canonical != "https://toolverse.test/tools/claude" || m.OGURL != m.Canonical {
		t.Errorf("canonical = %q, og:url = %q", m.Canonical, m.OGURL)
	}
	if m.OGType != "website" || m.TwitterSite != "@toolverse" {
		t.Errorf("og:type = %q, twitter:site = %q", m.OGType, m.TwitterSite)
	}

	if got := Meta(site, "", "", "/").Title; got != "ToolVerse" {
		t.Errorf("home title = %q", got)
	}
	if got := Meta(site, "ToolVerse Blog", "", "/blog/x"); got.Title != "ToolVerse Blog" || got.OGType != "article" {
		t.Errorf("blog meta = %+v", got)
	}

	long := strings.Repeat("word ", 60)
	desc := Meta(site, "X", long, "/").Description
	if n := utf8.RuneCountInString(desc); n > maxDescription {
		t.Errorf("description length = %d, want <= %d", n, maxDescription)
	}
	if !strings.HasSuffix(desc, "word…") {
		t.Errorf("description = %q, want cut at a word boundary", desc)
	}
}

func TestSitemap(t *testing.T) {
	idx := directory.New(directory.Data{
		Tools: []models.Tool{
			{Slug: "claude", Name: "Claude", Category: "chatbots", UpdatedAt: launch},
			{Slug: "cursor", Name: "Cursor", Category: "coding"},
		},
		Categories:  []models.Category{{Slug: "chatbots", Name: "Chatbots"}, {Slug: "design", Name: "Design"}},
		Comparisons: []models.Comparison{{Slug: "a-vs-b", Title: "A vs B", ToolSlugs: []string{"claude", "cursor"}}},
		Posts:       []models.BlogPost{{ID: "p", Slug: "guide", Title: "Guide", PublishedAt: launch}},
		UpdatedAt:   time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	})

	out, err := Sitemap(testSite(), idx)
	if err != nil {
		t.Fatalf("Sitemap() error = %v", err)
	}
	if !strings.HasPrefix(string(out), xml.Header) {
		t.Error("sitemap missing XML header")
	}

	var set urlSet
	if err := xml.Unmarshal(out, &set); err != nil {
		t.Fatalf("unmarshal sitemap: %v", err)
	}
	locs := map[string]string{}
	for _, u := range set.URLs {
		locs[u.Loc] = u.LastMod
	}

	want := map[string]string{
		"https://toolverse.test/":                    "2026-05-01",
		"https://toolverse.test/tools":               "2026-05-01",
		"https://toolverse.test/blog":                "2026-05-01",
		"https://toolverse.test/categories/chatbots": "2026-05-01",
		"https://toolverse.test/categories/coding":   "2026-05-01",
		"https://toolverse.test/categories/design":   "2026-05-01",
		"https://toolverse.test/tools/claude":        "2023-03-14",
		"https://toolverse.test/tools/cursor":        "2026-05-01",
		"https://toolverse.test/compare/a-vs-b":      "",
		"https://toolverse.test/blog/guide":          "2023-03-14",
	}
	if len(locs) != len(want) {
		t.Errorf("sitemap has %d urls, want %d: %v", len(locs), len(want), locs)
	}
	for loc, mod := range want {
		got, ok := locs[loc]
		if !ok {
			t.Errorf("sitemap missing %s", loc)
			continue
		}
		if got != mod {
			t.Errorf("lastmod(%s) = %q, want %q", loc, got, mod)
		}
	}
	for _, u := range set.URLs {
		if u.Loc == "https://toolverse.test/categories/design" && u.Priority != "0.4" {
			t.Errorf("empty category priority = %q, want 0.4", u.Priority)
		}
	}
}

func TestRobots(t *testing.T) {
	got := Robots(testSite())
	for _, line := range []string{"User-agent: *", "Disallow: /api/", "Sitemap: https://toolverse.test/sitemap.xml"} {
		if !strings.Contains(got, line+"\n") {
			t.Errorf("robots.txt missing %q:\n%s", line, got)
		}
	}
}
