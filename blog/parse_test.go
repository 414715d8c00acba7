package blog

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

const sampleDoc = `---
layout: article
title: "Pattern Matching on Steroids"
date: 2024-03-15
author: Ada Byron
excerpt: Why KMP is only the beginning.
tags:
  - algorithms
  - strings
reading_time: 12
---

# Pattern Matching

Suffix automata answer substring queries in linear time.
`

func TestParseCompleteDocument(t *testing.T) {
	got := Parse(sampleDoc, "pattern-matching-steroids")
	want := BlogPost{
		Slug:        "pattern-matching-steroids",
		Layout:      "article",
		Title:       "Pattern Matching on Steroids",
		Date:        "2024-03-15",
		Author:      "Ada Byron",
		Excerpt:     "Why KMP is only the beginning.",
		Tags:        []string{"algorithms", "strings"},
		ReadingTime: 12,
		Content:     "# Pattern Matching\n\nSuffix automata answer substring queries in linear time.",
	}
	if !got.Equal(want) {
		t.Errorf("Parse() = %+v, want %+v", got, want)
	}
}

func TestParseAppliesDefaults(t *testing.T) {
	got := Parse("---\ntitle: Only a title\n---\nBody", "only-title")
	if got.Layout != DefaultLayout {
		t.Errorf("Layout = %q, want %q", got.Layout, DefaultLayout)
	}
	if got.Title != "Only a title" {
		t.Errorf("Title = %q, want %q", got.Title, "Only a title")
	}
	if got.Date != "" || got.Author != "" || got.Excerpt != "" {
		t.Errorf("Date/Author/Excerpt = %q/%q/%q, want empty", got.Date, got.Author, got.Excerpt)
	}
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Errorf("Tags = %#v, want empty non-nil slice", got.Tags)
	}
	if got.ReadingTime != DefaultReadingTime {
		t.Errorf("ReadingTime = %d, want %d", got.ReadingTime, DefaultReadingTime)
	}
	if got.Content != "Body" {
		t.Errorf("Content = %q, want %q", got.Content, "Body")
	}
}

func TestParseFalsyValuesUseDefaults(t *testing.T) {
	doc := "---\nlayout: \"\"\nauthor:\nreading_time: 0\n---\ntext"
	got := Parse(doc, "falsy")
	if got.Layout != DefaultLayout {
		t.Errorf("Layout = %q, want %q", got.Layout, DefaultLayout)
	}
	if got.Author != "" {
		t.Errorf("Author = %q, want empty", got.Author)
	}
	if got.ReadingTime != DefaultReadingTime {
		t.Errorf("ReadingTime = %d, want %d", got.ReadingTime, DefaultReadingTime)
	}
}

func TestParseIgnoresUnknownKeys(t *testing.T) {
	doc := "---\ntitle: Known\ndraft: true\nseries:\n  name: graphs\n---\ntext"
	got := Parse(doc, "unknown-keys")
	want := BlogPost{
		Slug:        "unknown-keys",
		Layout:      DefaultLayout,
		Title:       "Known",
		Tags:        []string{},
		ReadingTime: DefaultReadingTime,
		Content:     "text",
	}
	if !got.Equal(want) {
		t.Errorf("Parse() = %+v, want %+v", got, want)
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		tags string
		want []string
	}{
		{"block list", "tags:\n  - go\n  - web", []string{"go", "web"}},
		{"flow list", "tags: [go, web]", []string{"go", "web"}},
		{"scalar is not a list", "tags: go", []string{}},
		{"map is not a list", "tags:\n  lang: go", []string{}},
		{"null", "tags:", []string{}},
		{"mixed elements", "tags: [go, 42, true, null, {a: b}, [x]]", []string{"go", "42", "true"}},
		{"empty list", "tags: []", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse("---\n"+tt.tags+"\n---\nbody", "tags")
			if got.Tags == nil {
				t.Fatalf("Tags is nil")
			}
			if !slices.Equal(got.Tags, tt.want) {
				t.Errorf("Tags = %#v, want %#v", got.Tags, tt.want)
			}
		})
	}
}

func TestParseReadingTime(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"12", 12},
		{"\"7\"", 7},
		{"90", 90},
		{"-3", -3},
		{"2.0", 2},
		{"2.5", DefaultReadingTime},
		{"soon", DefaultReadingTime},
		{"[1, 2]", DefaultReadingTime},
	}
	for _, tt := range tests {
		got := Parse("---\nreading_time: "+tt.value+"\n---\nbody", "rt")
		if got.ReadingTime != tt.want {
			t.Errorf("reading_time: %s => %d, want %d", tt.value, got.ReadingTime, tt.want)
		}
	}
}

func TestParseScalarsForStringFields(t *testing.T) {
	got := Parse("---\ntitle: 1984\nauthor: true\ndate: 2024-03-15T10:30:00Z\n---\nbody", "scalars")
	if got.Title != "1984" {
		t.Errorf("Title = %q, want %q", got.Title, "1984")
	}
	if got.Author != "true" {
		t.Errorf("Author = %q, want %q", got.Author, "true")
	}
	if !strings.HasPrefix(got.Date, "2024-03-15") {
		t.Errorf("Date = %q, want prefix 2024-03-15", got.Date)
	}
	if FormatDate(got.Date) != "March 15, 2024" {
		t.Errorf("FormatDate(%q) = %q", got.Date, FormatDate(got.Date))
	}
}

func TestParseTOMLFrontmatter(t *testing.T) {
	doc := `+++
title = "Graph Minors"
date = 2023-11-02
author = "Alan"
tags = ["graphs", "theory"]
reading_time = 75
+++

Robertson and Seymour.
`
	got := Parse(doc, "graph-minors")
	want := BlogPost{
		Slug:        "graph-minors",
		Layout:      DefaultLayout,
		Title:       "Graph Minors",
		Date:        "2023-11-02",
		Author:      "Alan",
		Tags:        []string{"graphs", "theory"},
		ReadingTime: 75,
		Content:     "Robertson and Seymour.",
	}
	if !got.Equal(want) {
		t.Errorf("Parse() = %+v, want %+v", got, want)
	}
}

func TestParseWithoutFrontmatter(t *testing.T) {
	doc := "\n# Just markdown\n\nNo metadata here.\n"
	got, err := ParseDocument(doc, "plain")
	if err != nil {
		t.Fatalf("ParseDocument() error = %v, want nil", err)
	}
	if got.Content != "# Just markdown\n\nNo metadata here." {
		t.Errorf("Content = %q", got.Content)
	}
	if got.Title != "" || got.Layout != DefaultLayout || got.ReadingTime != DefaultReadingTime {
		t.Errorf("expected defaults, got %+v", got)
	}
}

func TestParseMalformedFrontmatterFallsBack(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unterminated", "---\ntitle: Never closed\n\n# Body"},
		{"invalid yaml", "---\ntitle: [unclosed\n---\n# Body"},
		{"not a mapping", "---\n- one\n- two\n---\n# Body"},
		{"unterminated toml", "+++\ntitle = \"x\"\n# Body"},
		{"invalid toml", "+++\ntitle = = \"x\"\n+++\n# Body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDocument(tt.doc, "broken")
			if !errors.Is(err, ErrMalformedFrontmatter) {
				t.Fatalf("ParseDocument() error = %v, want ErrMalformedFrontmatter", err)
			}
			if got.Content != strings.TrimSpace(tt.doc) {
				t.Errorf("Content = %q, want whole document", got.Content)
			}
			if got.Title != "" || got.Layout != DefaultLayout || len(got.Tags) != 0 || got.ReadingTime != DefaultReadingTime {
				t.Errorf("expected defaults, got %+v", got)
			}
			if p := Parse(tt.doc, "broken"); !p.Equal(got) {
				t.Errorf("Parse() = %+v, want %+v", p, got)
			}
		})
	}
}

func TestParseDelimiterWhitespace(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"trailing space on closing", "---\ntitle: a\n--- \nbody"},
		{"indented closing", "---\ntitle: a\n  ---\nbody"},
		{"toml trailing tab", "+++\ntitle = \"a\"\n+++\t\nbody"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDocument(tt.doc, "ws")
			if err != nil {
				t.Fatalf("ParseDocument() error = %v", err)
			}
			if got.Title != "a" || got.Content != "body" {
				t.Errorf("got title %q content %q, want %q %q", got.Title, got.Content, "a", "body")
			}
		})
	}
}

func TestParseKeepsHorizontalRulesInBody(t *testing.T) {
	doc := "---\ntitle: Rules\n---\nabove\n\n---\n\nbelow"
	got := Parse(doc, "rules")
	if got.Content != "above\n\n---\n\nbelow" {
		t.Errorf("Content = %q", got.Content)
	}
}

func TestParseCRLF(t *testing.T) {
	doc := strings.ReplaceAll(sampleDoc, "\n", "\r\n")
	got := Parse(doc, "crlf")
	if got.Title != "Pattern Matching on Steroids" {
		t.Errorf("Title = %q", got.Title)
	}
	if strings.Contains(got.Content, "\r") {
		t.Errorf("Content still contains carriage returns: %q", got.Content)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	a := Parse(sampleDoc, "same")
	b := Parse(sampleDoc, "same")
	if !a.Equal(b) {
		t.Fatalf("two parses differ: %+v vs %+v", a, b)
	}
	a.Tags[0] = "mutated"
	if b.Tags[0] == "mutated" {
		t.Errorf("parses share tag storage")
	}
}

func TestSlugIsNotReadFromDocument(t *testing.T) {
	got := Parse("---\nslug: from-doc\ntitle: T\n---\nbody", "from-caller")
	if got.Slug != "from-caller" {
		t.Errorf("Slug = %q, want %q", got.Slug, "from-caller")
	}
}

func TestExtractStages(t *testing.T) {
	fm, body, err := Extract(sampleDoc)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if fm.StringValue(KeyTitle, "") != "Pattern Matching on Steroids" {
		t.Errorf("title = %q", fm.StringValue(KeyTitle, ""))
	}
	if !strings.HasPrefix(body, "# Pattern Matching") {
		t.Errorf("body = %q", body)
	}

	post := ApplyDefaults(Frontmatter{KeyTags: []string{"a"}}, "content", "s")
	if !slices.Equal(post.Tags, []string{"a"}) || post.Content != "content" || post.Slug != "s" {
		t.Errorf("ApplyDefaults() = %+v", post)
	}
	if empty := ApplyDefaults(nil, "", "s"); empty.Layout != DefaultLayout || empty.Tags == nil {
		t.Errorf("ApplyDefaults(nil) = %+v", empty)
	}
}

func TestBlogPostCloneAndMetadata(t *testing.T) {
	p := Parse(sampleDoc, "clone")
	c := p.Clone()
	c.Tags[0] = "changed"
	if p.Tags[0] != "algorithms" {
		t.Errorf("Clone shares tags with original")
	}
	m := p.Metadata()
	m.Tags[1] = "changed"
	if p.Tags[1] != "strings" {
		t.Errorf("Metadata shares tags with post")
	}
	if m.ReadingTime != 12 || m.Title != p.Title {
		t.Errorf("Metadata() = %+v", m)
	}
	if p.Link() != "/blogs/clone/" {
		t.Errorf("Link() = %q", p.Link())
	}
}
