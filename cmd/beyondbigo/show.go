package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	flag "github.com/spf13/pflag"

	"github.com/eringen/beyondbigo"
	"github.com/eringen/beyondbigo/blog"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	leadStyle  = lipgloss.NewStyle().Italic(true)
)

func runShow(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(stderr)
	width := fs.IntP("width", "w", 80, "word wrap width")
	style := fs.StringP("style", "s", "auto", "glamour style: auto, dark, light, notty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: beyondbigo show <file> [--width n] [--style s]")
	}

	post, err := readPost(fs.Arg(0), "", stderr)
	if err != nil {
		return err
	}

	r, err := glamour.NewTermRenderer(
		styleOption(*style),
		glamour.WithWordWrap(*width),
	)
	if err != nil {
		return err
	}
	body, err := r.Render(post.Content)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, header(post, *width))
	fmt.Fprint(stdout, body)
	return nil
}

// styleOption picks the glamour style. "auto" follows the terminal; notty
// renders without escape sequences.
func styleOption(name string) glamour.TermRendererOption {
	if name == "" || name == "auto" {
		return glamour.WithAutoStyle()
	}
	return glamour.WithStandardStyle(name)
}

// header renders the title block shown above a post: tags, title,
// "By author • reading time • date" and the excerpt.
func header(post blog.BlogPost, width int) string {
	var lines []string
	if len(post.Tags) > 0 {
		lines = append(lines, tagStyle.Render(beyondbigo.JoinTags(post.Tags)))
	}
	if post.Title != "" {
		lines = append(lines, titleStyle.Render(post.Title))
	}
	lines = append(lines, metaStyle.Render(metaLine(post)))
	if post.Excerpt != "" {
		lines = append(lines, leadStyle.Width(width).Render(post.Excerpt))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

func metaLine(post blog.BlogPost) string {
	parts := make([]string, 0, 3)
	if post.Author != "" {
		parts = append(parts, "By "+post.Author)
	}
	parts = append(parts, blog.FormatReadingTime(post.ReadingTime), blog.FormatDate(post.Date))
	return strings.Join(parts, " • ")
}
