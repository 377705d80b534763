// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

// Package translate maps Chinese CMS content (tags, pricing labels,
// categories and descriptions) to the English values the directory serves.
//
// Lookups are dictionary based. Every input is NFKC-normalized first, which
// folds full-width Latin letters and digits ("ＡＩ写作" becomes "AI写作") so a
// single table entry covers both widths. English input passes through with
// canonical casing.
package translate

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/toolverse/internal/models"
)

//go:embed tables.yaml
var defaultTables []byte

// Tables is the on-disk shape of a translation table document.
type Tables struct {
	Tags         map[string]string `yaml:"tags"`
	Pricing      map[string]string `yaml:"pricing"`
	Categories   map[string]string `yaml:"categories"`
	Descriptions map[string]string `yaml:"descriptions"`
	Phrases      map[string]string `yaml:"phrases"`
}

// Translator holds normalized lookup tables. It is immutable and safe for
// concurrent use.
type Translator struct {
	tags         map[string]string
	pricing      map[string]string
	categories   map[string]string
	descriptions map[string]string
	phrases      *strings.Replacer
	phraseCount  int
}

var canonicalPricing = []string{
	models.PricingFree,
	models.PricingFreemium,
	models.PricingFreeTrial,
	models.PricingPaid,
	models.PricingSubscription,
	models.PricingOpenSource,
	models.PricingContactForPricing,
}

var (
	defaultOnce       sync.Once
	defaultTranslator *Translator
)

// Default returns a Translator built from the embedded tables.
func Default() *Translator {
	defaultOnce.Do(func() {
		t, err := New(nil)
		if err != nil {
			panic(fmt.Sprintf("translate: embedded tables are invalid: %v", err))
		}
		defaultTranslator = t
	})
	return defaultTranslator
}

// New builds a Translator from the embedded tables with overrides merged on
// top. Override entries replace embedded entries with the same key.
func New(overrides *Tables) (*Translator, error) {
	var base Tables
	if err := yaml.Unmarshal(defaultTables, &base); err != nil {
		return nil, fmt.Errorf("parse embedded tables: %w", err)
	}
	if overrides != nil {
		base.merge(overrides)
	}
	return build(&base), nil
}

// NewFromFile builds a Translator with overrides read from a YAML file.
// An empty path yields the embedded tables only.
func NewFromFile(path string) (*Translator, error) {
	if path == "" {
		return New(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read translation overrides: %w", err)
	}
	var overrides Tables
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse translation overrides %s: %w", path, err)
	}
	return New(&overrides)
}

func (t *Tables) merge(o *Tables) {
	t.Tags = mergeMap(t.Tags, o.Tags)
	t.Pricing = mergeMap(t.Pricing, o.Pricing)
	t.Categories = mergeMap(t.Categories, o.Categories)
	t.Descriptions = mergeMap(t.Descriptions, o.Descriptions)
	t.Phrases = mergeMap(t.Phrases, o.Phrases)
}

func mergeMap(dst, src map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func build(t *Tables) *Translator {
	tr := &Translator{
		tags:         normalizeKeys(t.Tags, true),
		pricing:      normalizeKeys(t.Pricing, true),
		categories:   normalizeKeys(t.Categories, true),
		descriptions: normalizeKeys(t.Descriptions, false),
	}

	// Longest phrase first so "图像生成" wins over "图像".
	keys := make([]string, 0, len(t.Phrases))
	phrases := normalizeKeys(t.Phrases, false)
	for k := range phrases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if li, lj := len([]rune(keys[i])), len([]rune(keys[j])); li != lj {
			return li > lj
		}
		return keys[i] < keys[j]
	})
	// Chinese has no word spacing; pad every replacement and let tidy
	// collapse the excess.
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, " "+strings.TrimSpace(phrases[k])+" ")
	}
	tr.phrases = strings.NewReplacer(pairs...)
	tr.phraseCount = len(keys)
	return tr
}

// normalizeKeys normalizes table keys the same way inputs are normalized.
// With fold set, ASCII keys are also stored lowercased for case-insensitive
// English lookups.
func normalizeKeys(m map[string]string, fold bool) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		nk := Normalize(k)
		if nk == "" {
			continue
		}
		if fold && isASCII(nk) {
			nk = strings.ToLower(nk)
		}
		out[nk] = v
	}
	return out
}

// Normalize applies NFKC, trims, and collapses internal whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

func (t *Translator) lookup(table map[string]string, n string) (string, bool) {
	if v, ok := table[n]; ok {
		return v, true
	}
	if isASCII(n) {
		v, ok := table[strings.ToLower(n)]
		return v, ok
	}
	return "", false
}

// Tag translates one tag.
func (t *Translator) Tag(s string) string {
	n := Normalize(s)
	if n == "" {
		return ""
	}
	if v, ok := t.lookup(t.tags, n); ok {
		return v
	}
	if isASCII(n) {
		return titleCase(n)
	}
	if replaced := tidy(t.replacePhrases(n)); !ContainsCJK(replaced) {
		return titleCase(replaced)
	}
	return n
}

// Tags translates a tag list, dropping empties and case-insensitive
// duplicates while keeping first-seen order.
func (t *Translator) Tags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		tag := t.Tag(s)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// Pricing maps a pricing label onto one of the canonical tiers, or
// models.PricingUnknown.
func (t *Translator) Pricing(s string) string {
	n := Normalize(s)
	if n == "" {
		return models.PricingUnknown
	}
	if v, ok := t.lookup(t.pricing, n); ok {
		return v
	}
	for _, tier := range canonicalPricing {
		if strings.EqualFold(n, tier) {
			return tier
		}
	}
	return pricingHeuristic(n)
}

// pricingHeuristic handles free-form labels such as "基础版免费，高级版付费".
func pricingHeuristic(n string) string {
	lower := strings.ToLower(n)
	has := func(subs ...string) bool {
		for _, sub := range subs {
			if strings.Contains(lower, sub) {
				return true
			}
		}
		return false
	}

	switch {
	case has("开源", "open source", "open-source"):
		return models.PricingOpenSource
	case has("试用", "trial"):
		return models.PricingFreeTrial
	case has("免费", "free") && has("付费", "收费", "高级", "pro", "paid", "premium", "$", "¥"):
		return models.PricingFreemium
	case has("订阅", "/月", "/mo", "per month", "subscription"):
		return models.PricingSubscription
	case has("免费", "free"):
		return models.PricingFree
	case has("付费", "收费", "paid", "$", "¥", "€"):
		return models.PricingPaid
	case has("联系", "contact", "enterprise", "定制"):
		return models.PricingContactForPricing
	}
	return models.PricingUnknown
}

// Category maps a category label to a category slug.
func (t *Translator) Category(s string) string {
	n := Normalize(s)
	if v, ok := t.lookup(t.categories, n); ok {
		return v
	}
	if ContainsCJK(n) {
		n = t.Tag(n)
	}
	if slug := Slugify(n); slug != "" {
		return slug
	}
	return "other"
}

// Description translates a tool description. Whole-string entries win,
// then phrase replacement. When Chinese text survives replacement the
// description is regenerated from the tool's name and English tags.
func (t *Translator) Description(name, s string, tags []string) string {
	n := Normalize(s)
	if n == "" {
		return fallbackDescription(name, tags)
	}
	if v, ok := t.descriptions[n]; ok {
		return v
	}
	if !ContainsCJK(n) {
		return n
	}
	replaced := tidy(t.replacePhrases(n))
	if ContainsCJK(replaced) || replaced == "" {
		return fallbackDescription(name, tags)
	}
	return capitalizeFirst(replaced)
}

func (t *Translator) replacePhrases(s string) string {
	if t.phraseCount == 0 {
		return s
	}
	return t.phrases.Replace(s)
}

func fallbackDescription(name string, tags []string) string {
	if len(tags) == 0 {
		return name + " is an AI tool."
	}
	return name + " is an AI tool for " + strings.Join(tags, ", ") + "."
}

// tidy collapses whitespace left behind by phrase substitution and puts a
// space after commas that now sit between words.
func tidy(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	var b strings.Builder
	rs := []rune(s)
	for i, r := range rs {
		if (r == ' ') && i+1 < len(rs) && (rs[i+1] == ',' || rs[i+1] == '.') {
			continue
		}
		b.WriteRune(r)
		if r == ',' && i+1 < len(rs) && unicode.IsLetter(rs[i+1]) {
			b.WriteRune(' ')
		}
	}
	return strings.TrimSpace(b.String())
}

func capitalizeFirst(s string) string {
	rs := []rune(s)
	if len(rs) == 0 {
		return s
	}
	rs[0] = unicode.ToUpper(rs[0])
	return string(rs)
}

// titleCase upper-cases the first letter of each word and leaves the rest
// alone, so acronyms like "LLM" survive.
func titleCase(s string) string {
	return cases.Title(language.English, cases.NoLower).String(s)
}

// ContainsCJK reports whether s contains Han, Kana or Hangul characters or
// CJK punctuation.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
			return true
		}
		if r >= 0x3000 && r <= 0x303F {
			return true
		}
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Slugify lowercases s and joins its ASCII letter and digit runs with
// hyphens. Non-ASCII text yields "".
func Slugify(s string) string {
	s = strings.ToLower(norm.NFKC.String(s))
	var b strings.Builder
	pendingDash := false
	for _, r := range s {
		isWord := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isWord {
			pendingDash = b.Len() > 0
			continue
		}
		if pendingDash {
			b.WriteByte('-')
			pendingDash = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Fold reduces a name to its comparison key: NFKC, lowercase, and only
// letters and digits. "Chat GPT", "chatgpt" and "ＣｈａｔＧＰＴ" fold to the
// same key.
func Fold(s string) string {
	s = strings.ToLower(norm.NFKC.String(s))
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
