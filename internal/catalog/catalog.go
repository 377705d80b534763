// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

// Package catalog loads the bundled static dataset: tools, categories,
// editorial comparisons, blog posts and ad placements.
//
// The dataset is embedded at build time and validated on load. It is the
// last fallback of the sync layer, so a malformed record fails the load
// rather than being served.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/toolverse/internal/models"
	"github.com/tomtom215/toolverse/internal/translate"
	"github.com/tomtom215/toolverse/internal/validation"
)

//go:embed data.yaml
var embedded []byte

// document is the on-disk shape of data.yaml.
type document struct {
	Categories  []models.Category    `yaml:"categories"`
	Tools       []models.Tool        `yaml:"tools"`
	Comparisons []models.Comparison  `yaml:"comparisons"`
	Posts       []models.BlogPost    `yaml:"posts"`
	Ads         []models.AdPlacement `yaml:"ads"`
}

// Catalog is the immutable bundled dataset. Accessors return copies.
type Catalog struct {
	categories  []models.Category
	tools       []models.Tool
	comparisons []models.Comparison
	posts       []models.BlogPost
	ads         []models.AdPlacement
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Load parses the embedded dataset once and returns the shared catalog.
func Load() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(embedded)
	})
	return defaultCatalog, defaultErr
}

// Parse builds a catalog from a YAML document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	var errs []error
	c := &Catalog{}

	seenCategory := make(map[string]struct{}, len(doc.Categories))
	for i := range doc.Categories {
		cat := doc.Categories[i]
		if verr := validation.ValidateStruct(&cat); verr != nil {
			errs = append(errs, fmt.Errorf("category %d: %w", i, verr))
			continue
		}
		if _, dup := seenCategory[cat.Slug]; dup {
			errs = append(errs, fmt.Errorf("category %q: duplicate slug", cat.Slug))
			continue
		}
		seenCategory[cat.Slug] = struct{}{}
		c.categories = append(c.categories, cat)
	}

	seenTool := make(map[string]struct{}, len(doc.Tools))
	seenSlug := make(map[string]struct{}, len(doc.Tools))
	for i := range doc.Tools {
		tool := doc.Tools[i]
		if err := normalizeTool(&tool); err != nil {
			errs = append(errs, fmt.Errorf("tool %d (%s): %w", i, tool.ID, err))
			continue
		}
		if _, dup := seenTool[tool.ID]; dup {
			errs = append(errs, fmt.Errorf("tool %q: duplicate id", tool.ID))
			continue
		}
		if _, dup := seenSlug[tool.Slug]; dup {
			errs = append(errs, fmt.Errorf("tool %q: duplicate slug %q", tool.ID, tool.Slug))
			continue
		}
		seenTool[tool.ID] = struct{}{}
		seenSlug[tool.Slug] = struct{}{}
		c.tools = append(c.tools, tool)
	}

	for i := range doc.Comparisons {
		cmp := doc.Comparisons[i]
		if verr := validation.ValidateStruct(&cmp); verr != nil {
			errs = append(errs, fmt.Errorf("comparison %d: %w", i, verr))
			continue
		}
		c.comparisons = append(c.comparisons, cmp)
	}

	for i := range doc.Posts {
		post := doc.Posts[i]
		if verr := validation.ValidateStruct(&post); verr != nil {
			errs = append(errs, fmt.Errorf("post %d: %w", i, verr))
			continue
		}
		if post.Slug == "" {
			post.Slug = translate.Slugify(post.Title)
		}
		post.Source = models.SourceStatic
		c.posts = append(c.posts, post)
	}
	sort.SliceStable(c.posts, func(i, j int) bool {
		return c.posts[i].PublishedAt.After(c.posts[j].PublishedAt)
	})

	for i := range doc.Ads {
		ad := doc.Ads[i]
		if verr := validation.ValidateStruct(&ad); verr != nil {
			errs = append(errs, fmt.Errorf("ad %d: %w", i, verr))
			continue
		}
		c.ads = append(c.ads, ad)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

func normalizeTool(t *models.Tool) error {
	if verr := validation.ValidateStruct(t); verr != nil {
		return verr
	}
	if t.Slug == "" {
		t.Slug = translate.Slugify(t.Name)
	}
	if t.Slug == "" {
		t.Slug = translate.Slugify(t.ID)
	}
	if t.Pricing == "" {
		t.Pricing = models.PricingUnknown
	}
	if _, ok := models.PricingRank[t.Pricing]; !ok {
		return fmt.Errorf("unknown pricing tier %q", t.Pricing)
	}
	t.Category = strings.ToLower(strings.TrimSpace(t.Category))
	t.Source = models.SourceStatic
	return nil
}

// Tools returns a copy of the bundled tools in file order.
func (c *Catalog) Tools() []models.Tool {
	out := make([]models.Tool, len(c.tools))
	for i := range c.tools {
		out[i] = CloneTool(c.tools[i])
	}
	return out
}

// Categories returns a copy of the bundled categories.
func (c *Catalog) Categories() []models.Category {
	return append([]models.Category(nil), c.categories...)
}

// Comparisons returns a copy of the editorial comparisons.
func (c *Catalog) Comparisons() []models.Comparison {
	out := make([]models.Comparison, len(c.comparisons))
	for i, cmp := range c.comparisons {
		cmp.ToolSlugs = append([]string(nil), cmp.ToolSlugs...)
		cmp.Criteria = append([]string(nil), cmp.Criteria...)
		out[i] = cmp
	}
	return out
}

// Posts returns a copy of the bundled blog posts, newest first.
func (c *Catalog) Posts() []models.BlogPost {
	out := make([]models.BlogPost, len(c.posts))
	for i, p := range c.posts {
		p.Tags = append([]string(nil), p.Tags...)
		out[i] = p
	}
	return out
}

// Ads returns a copy of the ad placements.
func (c *Catalog) Ads() []models.AdPlacement {
	return append([]models.AdPlacement(nil), c.ads...)
}

// CloneTool returns a copy of t that shares no slices with it.
func CloneTool(t models.Tool) models.Tool {
	t.Tags = append([]string(nil), t.Tags...)
	return t
}
