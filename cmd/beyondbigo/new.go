package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/eringen/beyondbigo"
	"github.com/eringen/beyondbigo/blog"
)

const newPostBody = "## Introduction\n\nWrite the article here."

func runNew(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	dir := fs.StringP("dir", "d", "content", "directory to write the post to")
	author := fs.StringP("author", "a", "", "post author")
	tags := fs.StringP("tags", "t", "", "comma-separated tags")
	excerpt := fs.StringP("excerpt", "x", "", "short summary shown in the list")
	useTOML := fs.Bool("toml", false, "write TOML (+++) front matter instead of YAML")
	if err := fs.Parse(args); err != nil {
		return err
	}
	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		return fmt.Errorf("usage: beyondbigo new <title> [--dir d] [--author a] [--tags t] [--toml]")
	}

	path, err := createPost(*dir, newPost(title, *author, *excerpt, *tags, time.Now()), *useTOML)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Created %s\n", path)
	return nil
}

// newPost builds the post written by the new command.
func newPost(title, author, excerpt, tags string, now time.Time) blog.BlogPost {
	post := blog.BlogPost{
		Slug:    beyondbigo.Slugify(title),
		Layout:  blog.DefaultLayout,
		Title:   title,
		Date:    now.Format(time.DateOnly),
		Author:  author,
		Excerpt: excerpt,
		Tags:    beyondbigo.FilterEmpty(strings.Split(tags, ",")),
		Content: newPostBody,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	post.ReadingTime = blog.EstimateReadingTime(post.Content)
	return post
}

// createPost writes post to dir as "<slug>.md" and returns the path.
// Existing files are never overwritten.
func createPost(dir string, post blog.BlogPost, useTOML bool) (string, error) {
	if post.Slug == "" {
		return "", errors.New("title must contain at least one letter or digit")
	}

	marshal := blog.Marshal
	if useTOML {
		marshal = blog.MarshalTOML
	}
	data, err := marshal(post)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, post.Slug+".md")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%s already exists", path)
		}
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
