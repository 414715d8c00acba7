package beyondbigo

import (
	"html/template"

	"github.com/goodsign/monday"

	"github.com/eringen/beyondbigo/blog"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// PostView is a post with its display fields formatted for templates.
type PostView struct {
	Slug        string
	Layout      string
	Title       string
	Date        string // as written in the document
	DisplayDate string // e.g. "March 15, 2024"
	Author      string
	Excerpt     string
	Tags        []string
	ReadingTime string // e.g. "12 min read"
	Content     string
	URL         string
}

// NewPostView formats p for display with dates in locale.
func NewPostView(p blog.BlogPost, locale monday.Locale) PostView {
	return PostView{
		Slug:        p.Slug,
		Layout:      p.Layout,
		Title:       p.Title,
		Date:        p.Date,
		DisplayDate: blog.FormatDateLocale(p.Date, locale),
		Author:      p.Author,
		Excerpt:     p.Excerpt,
		Tags:        p.Tags,
		ReadingTime: blog.FormatReadingTime(p.ReadingTime),
		Content:     p.Content,
		URL:         p.Link(),
	}
}

// PageData is the value every template is executed with.
type PageData struct {
	Site    SiteConfig
	Meta    PageMeta
	JSONLD  template.JS
	Posts   []PostView
	Post    PostView
	Related []PostView
}
