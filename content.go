package beyondbigo

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/eringen/beyondbigo/blog"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("beyondbigo: post not found")

// Source supplies raw post documents by slug.
type Source interface {
	// Slugs returns the slug of every available document.
	Slugs() ([]string, error)
	// Raw returns the document for slug, or an error wrapping ErrNotFound.
	Raw(slug string) (string, error)
}

const postExt = ".md"

// FSSource reads "<slug>.md" files from the root of a file system.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource returns a Source over the markdown files at the root of fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// DirSource returns a Source over the markdown files in dir.
func DirSource(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir))
}

// Slugs returns the slugs of all markdown files, sorted.
func (s *FSSource) Slugs() ([]string, error) {
	matches, err := fs.Glob(s.fsys, "*"+postExt)
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(matches))
	for _, m := range matches {
		slugs = append(slugs, strings.TrimSuffix(m, postExt))
	}
	slices.Sort(slugs)
	return slugs, nil
}

// Raw returns the contents of "<slug>.md".
func (s *FSSource) Raw(slug string) (string, error) {
	if !validSlug(slug) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, slug)
	}
	b, err := fs.ReadFile(s.fsys, slug+postExt)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", ErrNotFound, slug)
		}
		return "", err
	}
	return string(b), nil
}

func validSlug(slug string) bool {
	return slug != "" && slug != "." && slug != ".." &&
		!strings.ContainsAny(slug, `/\`) && fs.ValidPath(slug)
}

// MapSource is an in-memory Source keyed by slug.
type MapSource map[string]string

// Slugs returns the keys of m, sorted.
func (m MapSource) Slugs() ([]string, error) {
	slugs := make([]string, 0, len(m))
	for slug := range m {
		slugs = append(slugs, slug)
	}
	slices.Sort(slugs)
	return slugs, nil
}

// Raw returns the document stored under slug.
func (m MapSource) Raw(slug string) (string, error) {
	raw, ok := m[slug]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, slug)
	}
	return raw, nil
}

// Problem records a document whose front matter was discarded while loading.
type Problem struct {
	Slug string
	Err  error
}

// LoadPost reads and parses one post. A malformed front matter block is not
// fatal: the post is returned and the problem is reported as the second
// result.
func LoadPost(src Source, slug string) (blog.BlogPost, *Problem, error) {
	raw, err := src.Raw(slug)
	if err != nil {
		return blog.BlogPost{}, nil, err
	}
	post, perr := blog.ParseDocument(raw, slug)
	if perr != nil {
		return post, &Problem{Slug: slug, Err: perr}, nil
	}
	return post, nil, nil
}

// LoadPosts reads and parses every post in src, newest first. Posts with
// the same or an unparseable date are ordered by slug, after dated posts.
func LoadPosts(src Source) ([]blog.BlogPost, []Problem, error) {
	slugs, err := src.Slugs()
	if err != nil {
		return nil, nil, err
	}
	posts := make([]blog.BlogPost, 0, len(slugs))
	var problems []Problem
	for _, slug := range slugs {
		post, problem, err := LoadPost(src, slug)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", slug, err)
		}
		if problem != nil {
			problems = append(problems, *problem)
		}
		posts = append(posts, post)
	}
	SortPosts(posts)
	return posts, problems, nil
}

// SortPosts orders posts newest first, undated posts last, ties by slug.
func SortPosts(posts []blog.BlogPost) {
	slices.SortStableFunc(posts, func(a, b blog.BlogPost) int {
		ta, errA := blog.ParseDate(a.Date)
		tb, errB := blog.ParseDate(b.Date)
		switch {
		case errA == nil && errB == nil:
			if c := tb.Compare(ta); c != 0 {
				return c
			}
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		}
		return cmp.Compare(a.Slug, b.Slug)
	})
}

// SlugFromPath returns the slug a post file at p is served under.
func SlugFromPath(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
