// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package translate

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tomtom215/toolverse/internal/models"
)

func TestTag(t *testing.T) {
	tr := Default()

	tests := []struct {
		in   string
		want string
	}{
		{"写作", "Writing"},
		{"  图像生成 ", "Image Generation"},
		{"聊天机器人", "Chatbot"},
		{"image generation", "Image Generation"},
		{"LLM", "LLM"},
		{"api", "API"},
		{"ＡＰＩ", "API"},
		{"AI写作", "AI Writing"},
		{"", ""},
		{"   ", ""},
		{"未知标签", "未知标签"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := tr.Tag(tt.in); got != tt.want {
				t.Errorf("Tag(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTags_DedupesAfterTranslation(t *testing.T) {
	tr := Default()

	got := tr.Tags([]string{"写作", "Writing", "", "代码", "编程", "chatbot", "聊天机器人"})
	want := []string{"Writing", "Coding", "Chatbot"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tags() = %v, want %v", got, want)
	}
}

func TestPricing(t *testing.T) {
	tr := Default()

	tests := []struct {
		in   string
		want string
	}{
		{"免费", models.PricingFree},
		{"免费增值", models.PricingFreemium},
		{"免费试用", models.PricingFreeTrial},
		{"付费", models.PricingPaid},
		{"订阅", models.PricingSubscription},
		{"开源", models.PricingOpenSource},
		{"联系销售", models.PricingContactForPricing},
		{"FREE", models.PricingFree},
		{"Freemium", models.PricingFreemium},
		{"Contact for Pricing", models.PricingContactForPricing},
		{"基础版免费，高级版付费", models.PricingFreemium},
		{"$20/mo", models.PricingSubscription},
		{"一次买断 ¥99", models.PricingPaid},
		{"Freeware", models.PricingFree},
		{"$$$", models.PricingPaid},
		{"Enterprise only", models.PricingContactForPricing},
		{"", models.PricingUnknown},
		{"看情况", models.PricingUnknown},
		{"Depends", models.PricingUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := tr.Pricing(tt.in); got != tt.want {
				t.Errorf("Pricing(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCategory(t *testing.T) {
	tr := Default()

	tests := []struct {
		in   string
		want string
	}{
		{"文本生成", "text-generation"},
		{"图像生成", "image-generation"},
		{"聊天机器人", "chatbots"},
		{"Image Generation", "image-generation"},
		{"  Data & Analytics ", "data-analytics"},
		{"视频", "video"},
		{"", "other"},
		{"未知分类", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := tr.Category(tt.in); got != tt.want {
				t.Errorf("Category(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	tr := Default()

	tests := []struct {
		name string
		tool string
		in   string
		tags []string
		want string
	}{
		{"exact entry", "X", "人工智能编程助手", nil, "An AI pair programmer."},
		{"english passthrough", "X", "  Writes   emails for you. ", nil, "Writes emails for you."},
		{"phrase replacement", "X", "强大的人工智能写作助手", nil, "Powerful AI writing assistant"},
		{"phrase punctuation", "X", "快速翻译、总结", nil, "Fast translation, summarization"},
		{"untranslatable falls back", "Kimi", "长文本阅读神器", []string{"Chatbot", "Research"}, "Kimi is an AI tool for Chatbot, Research."},
		{"empty falls back", "Kimi", "", nil, "Kimi is an AI tool."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.Description(tt.tool, tt.in, tt.tags); got != tt.want {
				t.Errorf("Description(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestContainsCJK(t *testing.T) {
	tests := map[string]bool{
		"hello":      false,
		"café naïve": false,
		"":           false,
		"写作":         true,
		"カタカナ":       true,
		"한국어":        true,
		"end。":       true,
		"Ｆｕｌｌ":       false,
	}
	for in, want := range tests {
		if got := ContainsCJK(in); got != want {
			t.Errorf("ContainsCJK(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSlugifyAndFold(t *testing.T) {
	if got := Slugify("  Chat GPT-4o (Plus)! "); got != "chat-gpt-4o-plus" {
		t.Errorf("Slugify() = %q", got)
	}
	if got := Slugify("文心一言"); got != "" {
		t.Errorf("Slugify(CJK) = %q, want empty", got)
	}
	if Fold("Chat GPT") != Fold("ＣｈａｔＧＰＴ") || Fold("chat-gpt") != "chatgpt" {
		t.Errorf("Fold should ignore width, case and punctuation")
	}
	if Fold("文心 一言") != "文心一言" {
		t.Errorf("Fold should keep CJK letters, got %q", Fold("文心 一言"))
	}
}

func TestNewFromFile_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	content := "tags:\n  写作: Content Writing\n  提示词: Prompts\npricing:\n  买断: Paid\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write overrides: %v", err)
	}

	tr, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile() error = %v", err)
	}
	if got := tr.Tag("写作"); got != "Content Writing" {
		t.Errorf("override should replace embedded entry, got %q", got)
	}
	if got := tr.Tag("提示词"); got != "Prompts" {
		t.Errorf("override should add entry, got %q", got)
	}
	if got := tr.Tag("编程"); got != "Coding" {
		t.Errorf("embedded entries should survive, got %q", got)
	}
	if got := tr.Pricing("买断"); got != models.PricingPaid {
		t.Errorf("Pricing override = %q", got)
	}

	if _, err := NewFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing overrides file")
	}
}
