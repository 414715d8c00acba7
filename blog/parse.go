package blog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Parse turns a raw document into a BlogPost. The slug is supplied by the
// caller and is never read from the document. Parse never fails: a document
// whose front matter cannot be read is treated as having no front matter,
// and the whole document becomes the post content.
func Parse(raw, slug string) BlogPost {
	post, _ := ParseDocument(raw, slug)
	return post
}

// ParseDocument is Parse that also reports why the front matter was
// discarded. The returned post is fully populated even when err is non-nil;
// err wraps ErrMalformedFrontmatter. A document without any front matter is
// not an error.
func ParseDocument(raw, slug string) (BlogPost, error) {
	fm, body, err := Extract(raw)
	if errors.Is(err, ErrNoFrontmatter) {
		err = nil
	}
	return ApplyDefaults(fm, body, slug), err
}

// ApplyDefaults builds a BlogPost from decoded front matter, filling every
// absent field from the default table. A key is absent when it is missing,
// null, an empty string, or a reading time of zero. Unknown keys are
// ignored.
func ApplyDefaults(fm Frontmatter, body, slug string) BlogPost {
	return BlogPost{
		Slug:        slug,
		Layout:      fm.StringValue(KeyLayout, DefaultLayout),
		Title:       fm.StringValue(KeyTitle, ""),
		Date:        fm.StringValue(KeyDate, ""),
		Author:      fm.StringValue(KeyAuthor, ""),
		Excerpt:     fm.StringValue(KeyExcerpt, ""),
		Tags:        fm.StringList(KeyTags),
		ReadingTime: fm.IntValue(KeyReadingTime, DefaultReadingTime),
		Content:     body,
	}
}

// StringValue returns the value of key as a string, or def when the key is
// absent or not a scalar.
func (fm Frontmatter) StringValue(key, def string) string {
	s, ok := scalarString(fm[key])
	if !ok || s == "" {
		return def
	}
	return s
}

// IntValue returns the value of key as an integer, or def when the key is absent,
// zero, or not an integral number.
func (fm Frontmatter) IntValue(key string, def int) int {
	n, ok := scalarInt(fm[key])
	if !ok || n == 0 {
		return def
	}
	return n
}

// StringList returns the value of key as a list of strings. Non-list values
// yield an empty list. String elements are kept verbatim, numbers and
// booleans are formatted, anything else is dropped.
func (fm Frontmatter) StringList(key string) []string {
	out := []string{}
	switch list := fm[key].(type) {
	case []string:
		out = append(out, list...)
	case []any:
		for _, v := range list {
			if s, ok := scalarString(v); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case time.Time:
		return formatTimestamp(s), true
	case bool:
		return strconv.FormatBool(s), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(s), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case fmt.Stringer:
		// TOML local dates and times.
		return s.String(), true
	}
	return "", false
}

// formatTimestamp renders a decoded timestamp the way it was most likely
// written: a bare date when there is no time of day, RFC 3339 otherwise.
func formatTimestamp(t time.Time) string {
	h, m, s := t.Clock()
	if h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339Nano)
}

func scalarInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return intFromInt64(n)
	case uint:
		return intFromUint64(uint64(n))
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return intFromUint64(uint64(n))
	case uint64:
		return intFromUint64(n)
	case float32:
		return intFromFloat(float64(n))
	case float64:
		return intFromFloat(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}

func intFromInt64(n int64) (int, bool) {
	if n < math.MinInt || n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

func intFromUint64(n uint64) (int, bool) {
	if n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

func intFromFloat(f float64) (int, bool) {
	if f != math.Trunc(f) || f < math.MinInt || f >= -math.MinInt {
		return 0, false
	}
	return int(f), true
}
