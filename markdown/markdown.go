// Package markdown renders post bodies to HTML with goldmark and exposes
// them as templ components.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// Options configures a Renderer.
type Options struct {
	// Unsafe passes raw HTML in the markdown through to the output.
	Unsafe bool
	// HighlightStyle is the chroma style for fenced code blocks. Empty means
	// CSS classes are emitted instead of inline styles.
	HighlightStyle string
	// Sanitize filters the rendered HTML through a user-generated-content
	// policy. Use it for documents that are not bundled with the binary.
	Sanitize bool
}

// New returns a Renderer with GFM, footnotes, heading IDs and syntax
// highlighting enabled.
func New(opts Options) *Renderer {
	hl := []highlighting.Option{
		highlighting.WithFormatOptions(chromahtml.WithClasses(opts.HighlightStyle == "")),
	}
	if opts.HighlightStyle != "" {
		hl = append(hl, highlighting.WithStyle(opts.HighlightStyle))
	}
	rendererOpts := []renderer.Option{gmhtml.WithXHTML()}
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, gmhtml.WithUnsafe())
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(hl...),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	r := &Renderer{md: md}
	if opts.Sanitize {
		r.policy = bluemonday.UGCPolicy()
		r.policy.AllowAttrs("class").Globally()
	}
	return r
}

// Default renders the way the blog does: raw HTML allowed, classes for
// code highlighting.
var Default = New(Options{Unsafe: true})

// Render writes the HTML representation of src to w.
func (r *Renderer) Render(w io.Writer, src string) error {
	if r.policy == nil {
		return r.md.Convert([]byte(src), w)
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return err
	}
	_, err := w.Write(r.policy.SanitizeBytes(buf.Bytes()))
	return err
}

// HTML returns the HTML representation of src.
func (r *Renderer) HTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, src); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Component returns a templ.Component that renders src as HTML.
func (r *Renderer) Component(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := r.Render(&buf, src); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Markdown returns a templ.Component that renders content with Default.
func Markdown(content string) templ.Component {
	return Default.Component(content)
}

// SafeURL validates and sanitizes a URL for use in HTML attributes.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
