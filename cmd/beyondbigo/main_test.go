package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eringen/beyondbigo/blog"
)

const sampleDoc = `---
title: Aho-Corasick
date: "2024-03-15"
author: Ada
excerpt: Many patterns, one pass.
tags: [strings, automata]
reading_time: 12
---

## Intro

Build a trie first.
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aho-corasick.md")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunVersionAndUnknown(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("version exit code = %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "beyondbigo ") {
		t.Errorf("version output = %q", stdout.String())
	}

	stdout.Reset()
	if code := run([]string{"frobnicate"}, &stdout, &stderr); code != 1 {
		t.Errorf("unknown command exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Unknown command: frobnicate") {
		t.Errorf("stderr = %q", stderr.String())
	}

	if code := run(nil, &stdout, &stderr); code != 1 {
		t.Errorf("no args exit code = %d, want 1", code)
	}
}

func TestRunParseJSON(t *testing.T) {
	path := writeSample(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"parse", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}

	var post blog.BlogPost
	if err := json.Unmarshal(stdout.Bytes(), &post); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
	}
	if post.Slug != "aho-corasick" {
		t.Errorf("Slug = %q, want file name", post.Slug)
	}
	if post.Title != "Aho-Corasick" || post.ReadingTime != 12 {
		t.Errorf("unexpected post: %+v", post)
	}
}

func TestRunParseYAMLWithSlug(t *testing.T) {
	path := writeSample(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"parse", path, "--slug", "custom", "--format", "yaml"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"slug: custom", "title: Aho-Corasick", "reading_time: 12"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunParseBadFormat(t *testing.T) {
	path := writeSample(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"parse", path, "--format", "xml"}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRunShow(t *testing.T) {
	path := writeSample(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"show", path, "--width", "60", "--style", "notty"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"Aho-Corasick", "By Ada • 12 min read • March 15, 2024", "Build a trie first."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunShowUnknownStyle(t *testing.T) {
	path := writeSample(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"show", path, "--style", "no-such-style"}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRunParseWarnsOnMalformedFrontmatter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.md")
	if err := os.WriteFile(path, []byte("---\ntitle: never closed\nbody"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"parse", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "warning: "+path) {
		t.Errorf("stderr = %q, want a warning naming the file", stderr.String())
	}

	var post blog.BlogPost
	if err := json.Unmarshal(stdout.Bytes(), &post); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if post.Title != "" || post.Content != "---\ntitle: never closed\nbody" {
		t.Errorf("unexpected fallback post: %+v", post)
	}
}

func TestMetaLine(t *testing.T) {
	got := metaLine(blog.BlogPost{ReadingTime: 90, Date: "nope"})
	if want := "1h 30m read • Invalid Date"; got != want {
		t.Errorf("metaLine = %q, want %q", got, want)
	}
}

func TestNewPost(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	post := newPost("Persistent Segment Trees", "Ada", "", " trees, ,persistence ", now)

	if post.Slug != "persistent-segment-trees" {
		t.Errorf("Slug = %q", post.Slug)
	}
	if post.Date != "2024-05-01" {
		t.Errorf("Date = %q", post.Date)
	}
	if len(post.Tags) != 2 || post.Tags[0] != "trees" || post.Tags[1] != "persistence" {
		t.Errorf("Tags = %v", post.Tags)
	}
	if post.ReadingTime != 1 {
		t.Errorf("ReadingTime = %d, want 1", post.ReadingTime)
	}

	empty := newPost("Untagged", "", "", "", now)
	if empty.Tags == nil || len(empty.Tags) != 0 {
		t.Errorf("Tags = %#v, want empty non-nil", empty.Tags)
	}
}

func TestCreatePostRoundTrip(t *testing.T) {
	for _, useTOML := range []bool{false, true} {
		dir := t.TempDir()
		post := newPost("Suffix Automata", "Ada", "Linear time.", "strings", time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC))

		path, err := createPost(dir, post, useTOML)
		if err != nil {
			t.Fatalf("createPost(toml=%v) failed: %v", useTOML, err)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if useTOML && !strings.HasPrefix(string(raw), "+++\n") {
			t.Errorf("TOML post should start with +++:\n%s", raw)
		}

		parsed, err := blog.ParseDocument(string(raw), post.Slug)
		if err != nil {
			t.Fatalf("ParseDocument failed: %v", err)
		}
		if !parsed.Equal(post) {
			t.Errorf("round trip (toml=%v):\n got %+v\nwant %+v", useTOML, parsed, post)
		}

		if _, err := createPost(dir, post, useTOML); err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Errorf("second createPost error = %v, want already exists", err)
		}
	}
}

func TestRunNewRequiresTitle(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"new", "--dir", t.TempDir()}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if code := run([]string{"new", "!!!", "--dir", t.TempDir()}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code for unsluggable title = %d, want 1", code)
	}
}
