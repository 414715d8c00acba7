package blog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrMalformedFrontmatter reports that a document's metadata block could
	// not be read. Parse recovers from it by treating the whole document as
	// content.
	ErrMalformedFrontmatter = errors.New("blog: malformed front matter")

	// ErrNoFrontmatter reports that a document does not start with a
	// recognised delimiter.
	ErrNoFrontmatter = errors.New("blog: no front matter")
)

// Delimiters of the supported front matter formats.
const (
	yamlDelimiter = "---"
	tomlDelimiter = "+++"
)

var formats = []*frontmatter.Format{
	{Start: yamlDelimiter, End: yamlDelimiter, Unmarshal: unmarshalYAML},
	{Start: tomlDelimiter, End: tomlDelimiter, Unmarshal: toml.Unmarshal},
}

func unmarshalYAML(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// Extract splits raw into its front matter and its body. The body has
// surrounding whitespace trimmed and is otherwise returned verbatim.
//
// When raw has no front matter, Extract returns an empty Frontmatter, the
// whole trimmed document and ErrNoFrontmatter. When the block is
// unterminated or cannot be decoded it does the same with an error wrapping
// ErrMalformedFrontmatter. The returned values are usable in every case.
func Extract(raw string) (Frontmatter, string, error) {
	doc := normalizeNewlines(raw)
	fallback := strings.TrimSpace(doc)

	delim, ok := openingDelimiter(doc)
	if !ok {
		return Frontmatter{}, fallback, ErrNoFrontmatter
	}
	if !hasClosingDelimiter(doc, delim) {
		return Frontmatter{}, fallback, fmt.Errorf("%w: missing closing %q", ErrMalformedFrontmatter, delim)
	}

	var fm map[string]any
	body, err := frontmatter.MustParse(strings.NewReader(doc), &fm, formats...)
	if err != nil {
		return Frontmatter{}, fallback, fmt.Errorf("%w: %v", ErrMalformedFrontmatter, err)
	}
	if fm == nil {
		fm = map[string]any{}
	}
	return Frontmatter(fm), strings.TrimSpace(string(body)), nil
}

func normalizeNewlines(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// openingDelimiter returns the delimiter on the first line of doc.
func openingDelimiter(doc string) (string, bool) {
	first, _, _ := strings.Cut(doc, "\n")
	first = strings.TrimSpace(first)
	for _, f := range formats {
		if first == f.Start {
			return f.Start, true
		}
	}
	return "", false
}

// hasClosingDelimiter reports whether a line after the first is delim.
// Surrounding whitespace is ignored, as it is when the block is decoded.
func hasClosingDelimiter(doc, delim string) bool {
	lines := strings.Split(doc, "\n")
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == delim {
			return true
		}
	}
	return false
}
