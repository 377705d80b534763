// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package datasync

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/toolverse/internal/config"
	"github.com/tomtom215/toolverse/internal/models"
	"github.com/tomtom215/toolverse/internal/notion"
	"github.com/tomtom215/toolverse/internal/translate"
	"github.com/tomtom215/toolverse/internal/validation"
)

// maxReviewCount caps CMS review counts so huge numbers cannot overflow int.
const maxReviewCount = math.MaxInt32

// converter turns CMS pages into directory records.
type converter struct {
	tools config.ToolPropertyNames
	blog  config.BlogPropertyNames
	tr    *translate.Translator
	log   zerolog.Logger
}

// published reports whether a page should be listed. Archived pages never
// are; a missing publish property means published.
func published(p *notion.Page, prop string) bool {
	if p.Archived || p.InTrash {
		return false
	}
	if prop == "" {
		return true
	}
	v, ok := p.Properties[prop]
	if !ok {
		return true
	}
	return notion.Checkbox(v)
}

// cleanURL returns an absolute http(s) URL or "". Editors often paste bare
// hosts, so a missing scheme becomes https.
func cleanURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	return u.String()
}

// shortID is the first 8 hex digits of a Notion page ID.
func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToLower(id)
}

func (c *converter) tool(p *notion.Page) (models.Tool, bool) {
	if !published(p, c.tools.Published) {
		return models.Tool{}, false
	}
	name := notion.PlainText(p.Prop(c.tools.Name))
	if name == "" {
		return models.Tool{}, false
	}

	tags := c.tr.Tags(notion.MultiSelectNames(p.Prop(c.tools.Tags)))
	t := models.Tool{
		ID:          p.ID,
		Name:        name,
		Category:    c.tr.Category(notion.SelectName(p.Prop(c.tools.Category))),
		Tags:        tags,
		Pricing:     c.tr.Pricing(notion.SelectName(p.Prop(c.tools.Pricing))),
		Description: c.tr.Description(name, notion.PlainText(p.Prop(c.tools.Description)), tags),
		URL:         cleanURL(notion.URL(p.Prop(c.tools.Website))),
		LogoURL:     cleanURL(notion.FileURL(p.Prop(c.tools.Logo))),
		Featured:    notion.Checkbox(p.Prop(c.tools.Featured)),
		Verified:    notion.Checkbox(p.Prop(c.tools.Verified)),
		UpdatedAt:   p.LastEditedTime,
		Source:      models.SourceNotion,
	}

	if detail := notion.PlainText(p.Prop(c.tools.PriceDetail)); !translate.ContainsCJK(detail) {
		t.PriceDetail = detail
	}
	if r, ok := notion.Number(p.Prop(c.tools.Rating)); ok {
		t.Rating = math.Max(0, math.Min(5, r))
	}
	if n, ok := notion.Number(p.Prop(c.tools.Reviews)); ok && n > 0 {
		t.ReviewCount = int(math.Min(n, maxReviewCount))
	}
	if d, ok := notion.DateValue(p.Prop(c.tools.LaunchDate)); ok {
		t.LaunchDate = d
	}

	t.Slug = translate.Slugify(notion.PlainText(p.Prop(c.tools.Slug)))
	if t.Slug == "" {
		t.Slug = translate.Slugify(name)
	}
	if t.Slug == "" {
		t.Slug = "tool-" + shortID(p.ID)
	}
	return t, true
}

func (c *converter) post(p *notion.Page) (models.BlogPost, bool) {
	if !published(p, c.blog.Published) {
		return models.BlogPost{}, false
	}
	title := notion.PlainText(p.Prop(c.blog.Title))
	if title == "" {
		return models.BlogPost{}, false
	}

	post := models.BlogPost{
		ID:          p.ID,
		Title:       title,
		Excerpt:     notion.PlainText(p.Prop(c.blog.Excerpt)),
		Author:      notion.PlainText(p.Prop(c.blog.Author)),
		Tags:        c.tr.Tags(notion.MultiSelectNames(p.Prop(c.blog.Tags))),
		CoverURL:    cleanURL(notion.FileURL(p.Prop(c.blog.Cover))),
		PublishedAt: p.CreatedTime,
		Source:      models.SourceNotion,
	}
	if d, ok := notion.DateValue(p.Prop(c.blog.Date)); ok {
		post.PublishedAt = d
	}
	if n, ok := notion.Number(p.Prop(c.blog.ReadingMinutes)); ok && n > 0 {
		post.ReadingMinutes = int(n)
	}

	post.Slug = translate.Slugify(notion.PlainText(p.Prop(c.blog.Slug)))
	if post.Slug == "" {
		post.Slug = translate.Slugify(title)
	}
	if post.Slug == "" {
		post.Slug = "post-" + shortID(p.ID)
	}
	return post, true
}

// convertTools converts, validates and orders CMS tools newest edit first.
// The second return value counts skipped pages.
func (c *converter) convertTools(pages []notion.Page) ([]models.Tool, int) {
	out := make([]models.Tool, 0, len(pages))
	skipped := 0
	for i := range pages {
		t, ok := c.tool(&pages[i])
		if !ok {
			skipped++
			continue
		}
		if verr := validation.ValidateStruct(&t); verr != nil {
			skipped++
			c.log.Warn().Str("page_id", t.ID).Str("name", t.Name).Err(verr).Msg("Skipping invalid CMS tool")
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, skipped
}

func (c *converter) convertPosts(pages []notion.Page) []models.BlogPost {
	out := make([]models.BlogPost, 0, len(pages))
	for i := range pages {
		if post, ok := c.post(&pages[i]); ok {
			out = append(out, post)
		}
	}
	return out
}

// dedupeTools keeps the first of any tools sharing an ID or a folded name.
func dedupeTools(tools []models.Tool) []models.Tool {
	seenID := make(map[string]struct{}, len(tools))
	seenName := make(map[string]struct{}, len(tools))
	out := make([]models.Tool, 0, len(tools))
	for _, t := range tools {
		key := translate.Fold(t.Name)
		if _, dup := seenID[t.ID]; dup {
			continue
		}
		if _, dup := seenName[key]; dup && key != "" {
			continue
		}
		seenID[t.ID] = struct{}{}
		if key != "" {
			seenName[key] = struct{}{}
		}
		out = append(out, t)
	}
	return out
}

// dedupePosts keeps the first of any posts sharing an ID or slug.
func dedupePosts(posts []models.BlogPost) []models.BlogPost {
	seen := make(map[string]struct{}, len(posts)*2)
	out := make([]models.BlogPost, 0, len(posts))
	for _, p := range posts {
		_, dupID := seen["id:"+p.ID]
		_, dupSlug := seen["slug:"+p.Slug]
		if dupID || dupSlug {
			continue
		}
		seen["id:"+p.ID] = struct{}{}
		seen["slug:"+p.Slug] = struct{}{}
		out = append(out, p)
	}
	return out
}

// uniqueSlugs suffixes repeated slugs with -2, -3, ... in list order.
func uniqueSlugs(tools []models.Tool) {
	used := make(map[string]struct{}, len(tools))
	for i := range tools {
		base := tools[i].Slug
		slug := base
		for n := 2; ; n++ {
			if _, taken := used[slug]; !taken {
				break
			}
			slug = base + "-" + strconv.Itoa(n)
		}
		tools[i].Slug = slug
		used[slug] = struct{}{}
	}
}

// sortTools orders featured tools first, then by rating, then by name.
func sortTools(tools []models.Tool) {
	sort.SliceStable(tools, func(i, j int) bool {
		a, b := &tools[i], &tools[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

func sortPosts(posts []models.BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
}
