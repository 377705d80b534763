// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

// Package models defines the directory records shared by the sync layer,
// the query layer and the HTTP API.
package models

import (
	"strings"
	"time"
)

// Source identifies where a record or a whole dataset came from.
type Source string

const (
	// SourceNotion marks data fetched from the CMS.
	SourceNotion Source = "notion"
	// SourceStatic marks data from the bundled dataset.
	SourceStatic Source = "static"
	// SourceMerged marks a dataset combining CMS and bundled records.
	SourceMerged Source = "merged"
)

// Canonical pricing tiers. Every tool carries exactly one of these.
const (
	PricingFree              = "Free"
	PricingFreemium          = "Freemium"
	PricingFreeTrial         = "Free Trial"
	PricingPaid              = "Paid"
	PricingSubscription      = "Subscription"
	PricingOpenSource        = "Open Source"
	PricingContactForPricing = "Contact for Pricing"
	PricingUnknown           = "Unknown"
)

// PricingRank orders tiers from cheapest to most expensive for comparisons.
// Unknown tiers sort last.
var PricingRank = map[string]int{
	PricingFree:              0,
	PricingOpenSource:        0,
	PricingFreemium:          1,
	PricingFreeTrial:         2,
	PricingSubscription:      3,
	PricingPaid:              3,
	PricingContactForPricing: 4,
	PricingUnknown:           5,
}

// Tool is one AI tool listing.
type Tool struct {
	ID          string    `json:"id" yaml:"id" validate:"required"`
	Name        string    `json:"name" yaml:"name" validate:"required,max=120"`
	Slug        string    `json:"slug" yaml:"slug" validate:"omitempty,max=140"`
	Description string    `json:"description" yaml:"description" validate:"max=2000"`
	Category    string    `json:"category" yaml:"category" validate:"required"`
	Tags        []string  `json:"tags" yaml:"tags"`
	Pricing     string    `json:"pricing" yaml:"pricing"`
	PriceDetail string    `json:"price_detail,omitempty" yaml:"price_detail"`
	URL         string    `json:"url" yaml:"url" validate:"omitempty,url"`
	LogoURL     string    `json:"logo_url,omitempty" yaml:"logo_url" validate:"omitempty,url"`
	Rating      float64   `json:"rating" yaml:"rating" validate:"gte=0,lte=5"`
	ReviewCount int       `json:"review_count" yaml:"review_count" validate:"gte=0"`
	Featured    bool      `json:"featured" yaml:"featured"`
	Verified    bool      `json:"verified" yaml:"verified"`
	LaunchDate  time.Time `json:"launch_date" yaml:"launch_date"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
	Source      Source    `json:"source" yaml:"-"`
}

// HasTag reports whether the tool carries tag, ignoring case.
func (t *Tool) HasTag(tag string) bool {
	for _, tt := range t.Tags {
		if strings.EqualFold(tt, tag) {
			return true
		}
	}
	return false
}

// Category is a browsable group of tools.
type Category struct {
	Slug        string `json:"slug" yaml:"slug" validate:"required"`
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description"`
	Icon        string `json:"icon,omitempty" yaml:"icon"`
	ToolCount   int    `json:"tool_count" yaml:"-"`
}

// Comparison is an editorial comparison article between several tools.
type Comparison struct {
	Slug        string    `json:"slug" yaml:"slug" validate:"required"`
	Title       string    `json:"title" yaml:"title" validate:"required"`
	Summary     string    `json:"summary" yaml:"summary"`
	ToolSlugs   []string  `json:"tool_slugs" yaml:"tools" validate:"min=2,max=4"`
	Criteria    []string  `json:"criteria,omitempty" yaml:"criteria"`
	Verdict     string    `json:"verdict,omitempty" yaml:"verdict"`
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`
}

// BlogPost is a blog article preview.
type BlogPost struct {
	ID             string    `json:"id" yaml:"id" validate:"required"`
	Slug           string    `json:"slug" yaml:"slug"`
	Title          string    `json:"title" yaml:"title" validate:"required"`
	Excerpt        string    `json:"excerpt" yaml:"excerpt"`
	Author         string    `json:"author,omitempty" yaml:"author"`
	Tags           []string  `json:"tags,omitempty" yaml:"tags"`
	CoverURL       string    `json:"cover_url,omitempty" yaml:"cover_url" validate:"omitempty,url"`
	ReadingMinutes int       `json:"reading_minutes" yaml:"reading_minutes" validate:"gte=0"`
	PublishedAt    time.Time `json:"published_at" yaml:"published_at"`
	Source         Source    `json:"source" yaml:"-"`
}

// Ad slots.
const (
	SlotHeader  = "header"
	SlotSidebar = "sidebar"
	SlotInFeed  = "in-feed"
	SlotFooter  = "footer"
)

// AdPlacement is one sponsored banner.
type AdPlacement struct {
	ID          string    `json:"id" yaml:"id" validate:"required"`
	Slot        string    `json:"slot" yaml:"slot" validate:"required,oneof=header sidebar in-feed footer"`
	Title       string    `json:"title" yaml:"title" validate:"required"`
	Description string    `json:"description,omitempty" yaml:"description"`
	ImageURL    string    `json:"image_url,omitempty" yaml:"image_url" validate:"omitempty,url"`
	TargetURL   string    `json:"-" yaml:"target_url" validate:"required,url"`
	Sponsor     string    `json:"sponsor" yaml:"sponsor"`
	Weight      int       `json:"-" yaml:"weight" validate:"gte=0"`
	Active      bool      `json:"-" yaml:"active"`
	StartsAt    time.Time `json:"-" yaml:"starts_at"`
	EndsAt      time.Time `json:"-" yaml:"ends_at"`
}

// LiveAt reports whether the placement is active and inside its schedule.
// A zero StartsAt or EndsAt leaves that side of the window open.
func (a *AdPlacement) LiveAt(now time.Time) bool {
	if !a.Active || a.Weight <= 0 {
		return false
	}
	if !a.StartsAt.IsZero() && now.Before(a.StartsAt) {
		return false
	}
	if !a.EndsAt.IsZero() && !now.Before(a.EndsAt) {
		return false
	}
	return true
}
