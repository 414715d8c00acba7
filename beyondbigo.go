// Package beyondbigo serves a blog of bundled markdown articles with Echo.
// Posts are parsed by package blog, rendered by package markdown, and
// presented as a list view, a detail view, an RSS feed and a sitemap.
//
// Content is read from a Source on every request: there is no database and
// no cache.
package beyondbigo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

// App is the central beyondbigo application. It wires together the content
// source, views, middleware and handlers.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Source Source
	Views  *Views
	Logger *log.Logger

	pages        Source
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config:    cfg,
		Echo:      e,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup resolves the content source, parses the views and registers
// middleware and routes. Start calls it; tests call it directly before
// serving requests through a.Echo.
func (a *App) Setup() error {
	if a.Logger == nil {
		a.Logger = NewLogger(os.Stderr, a.Config.LogLevel)
	}

	if a.Source == nil {
		src, err := a.defaultSource()
		if err != nil {
			return err
		}
		a.Source = src
	}

	pages, err := fs.Sub(EmbeddedAssets, "pages")
	if err != nil {
		return fmt.Errorf("beyondbigo: pages: %w", err)
	}
	a.pages = NewFSSource(pages)

	views, err := NewViews(EmbeddedAssets, a.Config)
	if err != nil {
		return err
	}
	a.Views = views

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) defaultSource() (Source, error) {
	if a.Config.ContentDir != "" {
		info, err := os.Stat(a.Config.ContentDir)
		if err != nil {
			return nil, fmt.Errorf("beyondbigo: content dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("beyondbigo: content dir %s is not a directory", a.Config.ContentDir)
		}
		return DirSource(a.Config.ContentDir), nil
	}
	sub, err := fs.Sub(EmbeddedAssets, "content")
	if err != nil {
		return nil, fmt.Errorf("beyondbigo: embedded content: %w", err)
	}
	return NewFSSource(sub), nil
}

// Start sets the app up and serves HTTP until Shutdown is called.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}

	a.Logger.Info("listening", "addr", a.Config.Addr, "url", a.Config.URL)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests
// until ctx is done.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded stylesheet, falling through to the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.Static("/public", a.staticDir)

	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/healthz", handleHealth)

	e.GET("/", handleListRedirect)
	e.GET("/blog/", handleListRedirect)
	e.GET("/blogs/", a.handleList)
	e.GET("/blogs/:slug/", a.handlePost)
	e.GET("/about/", a.handleAbout)
}

// Close releases the server's listeners.
func (a *App) Close() error {
	return a.Echo.Close()
}
