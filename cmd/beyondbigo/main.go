package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	var err error
	switch args[0] {
	case "serve":
		err = runServe(args[1:], stderr)
	case "parse":
		err = runParse(args[1:], stdout, stderr)
	case "show":
		err = runShow(args[1:], stdout, stderr)
	case "new":
		err = runNew(args[1:], stdout)
	case "version":
		fmt.Fprintf(stdout, "beyondbigo %s\n", version)
	case "help", "-h", "--help":
		printUsage(stdout)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return 1
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `beyondbigo - Algorithm articles, served from markdown

Usage:
  beyondbigo <command> [arguments]

Commands:
  serve                 Start the web server (configured from the environment)
  parse <file>          Print the parsed post as JSON or YAML
  show <file>           Render a post in the terminal
  new <title>           Create a new post with front matter
  version               Print the beyondbigo version
  help                  Show this help message

Examples:
  beyondbigo serve
  beyondbigo parse content/pattern-matching-steroids.md --format yaml
  beyondbigo show content/suffix-automata.md --width 100
  beyondbigo new "Persistent Segment Trees" --tags trees,persistence`)
}
