package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	flag "github.com/spf13/pflag"

	"github.com/eringen/beyondbigo"
	"github.com/eringen/beyondbigo/blog"
)

// readPost parses the document at path. The slug defaults to the file name.
// A discarded front matter block is reported on warn and is not fatal.
func readPost(path, slug string, warn io.Writer) (blog.BlogPost, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return blog.BlogPost{}, err
	}
	if slug == "" {
		slug = beyondbigo.SlugFromPath(path)
	}
	post, err := blog.ParseDocument(string(raw), slug)
	if err != nil && warn != nil {
		fmt.Fprintf(warn, "warning: %s: %v\n", path, err)
	}
	return post, nil
}

func runParse(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	slug := fs.StringP("slug", "s", "", "slug to assign (default: file name)")
	format := fs.StringP("format", "f", "json", "output format: json, yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: beyondbigo parse <file> [--slug s] [--format json|yaml]")
	}

	post, err := readPost(fs.Arg(0), *slug, stderr)
	if err != nil {
		return err
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(post)
	case "yaml":
		out, err := yaml.Marshal(post)
		if err != nil {
			return err
		}
		_, err = stdout.Write(out)
		return err
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", *format)
	}
}
