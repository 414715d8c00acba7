// Package blog parses markdown documents with front matter into blog posts
// and formats post metadata for display.
//
// Parsing happens in two stages: Extract splits a raw document into a
// front matter mapping and a body, and ApplyDefaults turns that mapping
// into a fully populated BlogPost. Parse runs both.
package blog

import "slices"

// Default values used when a front matter key is absent.
const (
	DefaultLayout      = "post"
	DefaultReadingTime = 5
)

// Recognised front matter keys.
const (
	KeyLayout      = "layout"
	KeyTitle       = "title"
	KeyDate        = "date"
	KeyAuthor      = "author"
	KeyExcerpt     = "excerpt"
	KeyTags        = "tags"
	KeyReadingTime = "reading_time"
)

// BlogPost is a parsed document. Every field is always populated; a post is
// a value and is never mutated after Parse returns it.
type BlogPost struct {
	Slug        string   `json:"slug"`
	Layout      string   `json:"layout"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Author      string   `json:"author"`
	Excerpt     string   `json:"excerpt"`
	Tags        []string `json:"tags"`
	ReadingTime int      `json:"reading_time"`
	Content     string   `json:"content"`
}

// Metadata is the typed front matter of a post: every BlogPost field except
// the slug and the content.
type Metadata struct {
	Layout      string   `json:"layout" yaml:"layout" toml:"layout"`
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Date        string   `json:"date" yaml:"date" toml:"date"`
	Author      string   `json:"author" yaml:"author" toml:"author"`
	Excerpt     string   `json:"excerpt" yaml:"excerpt" toml:"excerpt"`
	Tags        []string `json:"tags" yaml:"tags" toml:"tags"`
	ReadingTime int      `json:"reading_time" yaml:"reading_time" toml:"reading_time"`
}

// Frontmatter is the decoded, not yet defaulted metadata block of a document.
type Frontmatter map[string]any

// Metadata returns the post's front matter fields.
func (p BlogPost) Metadata() Metadata {
	return Metadata{
		Layout:      p.Layout,
		Title:       p.Title,
		Date:        p.Date,
		Author:      p.Author,
		Excerpt:     p.Excerpt,
		Tags:        slices.Clone(p.Tags),
		ReadingTime: p.ReadingTime,
	}
}

// Clone returns a copy of p that shares no memory with it.
func (p BlogPost) Clone() BlogPost {
	p.Tags = slices.Clone(p.Tags)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

// Equal reports whether p and other hold the same values. A nil and an empty
// tag list are equal.
func (p BlogPost) Equal(other BlogPost) bool {
	return p.Slug == other.Slug &&
		p.Layout == other.Layout &&
		p.Title == other.Title &&
		p.Date == other.Date &&
		p.Author == other.Author &&
		p.Excerpt == other.Excerpt &&
		slices.Equal(p.Tags, other.Tags) &&
		p.ReadingTime == other.ReadingTime &&
		p.Content == other.Content
}

// Link returns the site-relative URL of the post's detail view.
func (p BlogPost) Link() string {
	return "/blogs/" + p.Slug + "/"
}
