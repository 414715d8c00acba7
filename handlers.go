package beyondbigo

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/beyondbigo/blog"
)

// loadPosts parses every post, logging documents whose front matter was
// discarded.
func (a *App) loadPosts() ([]blog.BlogPost, error) {
	posts, problems, err := LoadPosts(a.Source)
	if err != nil {
		return nil, err
	}
	for _, p := range problems {
		a.Logger.Warn("front matter discarded", "slug", p.Slug, "err", p.Err)
	}
	return posts, nil
}

func (a *App) handleList(c echo.Context) error {
	posts, err := a.loadPosts()
	if err != nil {
		return err
	}
	return Render(c, a.Views.List(posts))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, problem, err := LoadPost(a.Source, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	if problem != nil {
		a.Logger.Warn("front matter discarded", "slug", problem.Slug, "err", problem.Err)
	}
	posts, err := a.loadPosts()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(post, FilterRelatedPosts(post, posts)))
}

func (a *App) handleAbout(c echo.Context) error {
	raw, err := a.pages.Raw("about")
	if err != nil {
		return err
	}
	return Render(c, a.Views.Page(blog.Parse(raw, "about")))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.loadPosts()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.loadPosts()
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

// handleRobots generates robots.txt pointing at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func handleListRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/blogs/")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error", "method", c.Request().Method, "uri", c.Request().RequestURI, "err", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
