// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

// Package export renders the directory as a Markdown document or JSON.
package export

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/tomtom215/toolverse/internal/models"
)

// Formats accepted by Write.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

const maxDescriptionLen = 120

// Document is everything an export contains.
type Document struct {
	Title       string            `json:"title"`
	BaseURL     string            `json:"base_url,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
	Source      models.Source     `json:"source"`
	Categories  []models.Category `json:"categories"`
	Tools       []models.Tool     `json:"tools"`
	Posts       []models.BlogPost `json:"posts,omitempty"`
}

// Write renders doc in the named format.
func Write(w io.Writer, format string, doc Document) error {
	switch strings.ToLower(format) {
	case FormatMarkdown, "md":
		return Markdown(w, doc)
	case FormatJSON:
		return JSON(w, doc)
	default:
		return fmt.Errorf("unknown export format %q (want markdown or json)", format)
	}
}

// JSON writes doc as indented JSON.
func JSON(w io.Writer, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Markdown writes doc with a summary, a pricing chart, a table per category
// and the latest posts.
func Markdown(w io.Writer, doc Document) error {
	md := markdown.NewMarkdown(w)

	title := doc.Title
	if title == "" {
		title = "AI Tools Directory"
	}
	md.H1(title)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Tools", strconv.Itoa(len(doc.Tools))},
			{"Categories", strconv.Itoa(len(doc.Categories))},
			{"Data source", string(doc.Source)},
			{"Generated", doc.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")},
		},
	})
	md.PlainText("")

	if doc.Source == models.SourceStatic {
		md.Note("This export was built from the bundled dataset, not the CMS.")
		md.PlainText("")
	}

	writePricingChart(md, doc.Tools)
	writeCategories(md, doc)
	writePosts(md, doc.Posts)

	return md.Build()
}

func writePricingChart(md *markdown.Markdown, tools []models.Tool) {
	if len(tools) == 0 {
		return
	}
	counts := make(map[string]int)
	for i := range tools {
		counts[tools[i].Pricing]++
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Pricing Models"),
		piechart.WithShowData(true),
	)
	for _, label := range labels {
		chart.LabelAndIntValue(label, uint64(counts[label]))
	}

	md.H2("Pricing")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeCategories emits one section per category in catalog order. Tools
// whose category is not in the catalog are listed last under "Other".
func writeCategories(md *markdown.Markdown, doc Document) {
	byCategory := make(map[string][]models.Tool)
	for _, t := range doc.Tools {
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}

	for _, c := range doc.Categories {
		tools := byCategory[c.Slug]
		delete(byCategory, c.Slug)
		if len(tools) == 0 {
			continue
		}
		md.H2(c.Name)
		md.PlainText("")
		if c.Description != "" {
			md.PlainText(c.Description)
			md.PlainText("")
		}
		writeToolTable(md, tools, doc.BaseURL)
	}

	if len(byCategory) == 0 {
		return
	}
	rest := make([]models.Tool, 0)
	slugs := make([]string, 0, len(byCategory))
	for slug := range byCategory {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	for _, slug := range slugs {
		rest = append(rest, byCategory[slug]...)
	}
	md.H2("Other")
	md.PlainText("")
	writeToolTable(md, rest, doc.BaseURL)
}

func writeToolTable(md *markdown.Markdown, tools []models.Tool, baseURL string) {
	rows := make([][]string, len(tools))
	for i, t := range tools {
		rating := "-"
		if t.Rating > 0 {
			rating = strconv.FormatFloat(t.Rating, 'f', 1, 64)
		}
		rows[i] = []string{
			toolLink(t, baseURL),
			cell(t.Pricing),
			rating,
			cell(strings.Join(t.Tags, ", ")),
			cell(truncate(t.Description, maxDescriptionLen)),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Tool", "Pricing", "Rating", "Tags", "Description"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writePosts(md *markdown.Markdown, posts []models.BlogPost) {
	if len(posts) == 0 {
		return
	}
	md.H2("Latest Posts")
	md.PlainText("")
	items := make([]string, len(posts))
	for i, p := range posts {
		item := p.Title
		if !p.PublishedAt.IsZero() {
			item += " (" + p.PublishedAt.Format("2006-01-02") + ")"
		}
		items[i] = item
	}
	md.BulletList(items...)
	md.PlainText("")
}

// toolLink links to the directory page when a base URL is known and to the
// vendor site otherwise.
func toolLink(t models.Tool, baseURL string) string {
	name := cell(t.Name)
	switch {
	case baseURL != "":
		return "[" + name + "](" + strings.TrimRight(baseURL, "/") + "/tools/" + t.Slug + ")"
	case t.URL != "":
		return "[" + name + "](" + t.URL + ")"
	default:
		return name
	}
}

// cell makes s safe inside a table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-3])) + "..."
}
