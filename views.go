package beyondbigo

import (
	"fmt"
	"html/template"
	"io/fs"

	"github.com/a-h/templ"
	"github.com/goodsign/monday"

	"github.com/eringen/beyondbigo/blog"
	"github.com/eringen/beyondbigo/markdown"
)

// Views renders the site's pages. Each page template is parsed together with
// templates/layout.html and wrapped as a templ.Component.
type Views struct {
	pages  map[string]*template.Template
	cfg    SiteConfig
	locale monday.Locale
}

// Each page is templates/<name>.html executed inside templates/layout.html
// and exposed as a templ.Component, so handlers render views the same way
// they would render generated templ components.
// TODO: port these pages to .templ files once templ generate runs in the
// build; only the Views methods below need to change.
var pageNames = []string{"list", "post", "page", "notfound", "error"}

// NewViews parses the page templates found under templates/ in fsys.
func NewViews(fsys fs.FS, cfg SiteConfig) (*Views, error) {
	v := &Views{
		pages:  make(map[string]*template.Template, len(pageNames)),
		cfg:    cfg,
		locale: cfg.Locale(),
	}
	md := markdown.New(markdown.Options{Unsafe: true, Sanitize: cfg.SanitizeHTML})
	funcs := template.FuncMap{"markdown": markdownHTML(md)}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(fsys, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("beyondbigo: parse %s template: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// markdownHTML returns the template func rendering post bodies. The
// renderer's output is trusted and not escaped again.
func markdownHTML(md *markdown.Renderer) func(string) (template.HTML, error) {
	return func(src string) (template.HTML, error) {
		out, err := md.HTML(src)
		if err != nil {
			return "", err
		}
		return template.HTML(out), nil
	}
}

func (v *Views) page(name string, data PageData) templ.Component {
	data.Site = v.cfg
	return templ.FromGoHTML(v.pages[name].Lookup("layout"), data)
}

func (v *Views) views(posts []blog.BlogPost) []PostView {
	out := make([]PostView, len(posts))
	for i, p := range posts {
		out[i] = NewPostView(p, v.locale)
	}
	return out
}

// List renders the article list.
func (v *Views) List(posts []blog.BlogPost) templ.Component {
	return v.page("list", PageData{
		Meta: PageMeta{
			Title:       "All Articles | " + v.cfg.Name,
			Description: v.cfg.Description,
			URL:         BuildURL(v.cfg.URL, "blogs"),
			OGType:      "website",
		},
		JSONLD: template.JS(WebsiteJsonLD(v.cfg)),
		Posts:  v.views(posts),
	})
}

// Post renders a single article with the posts related to it.
func (v *Views) Post(post blog.BlogPost, related []blog.BlogPost) templ.Component {
	return v.page("post", PageData{
		Meta: PageMeta{
			Title:       post.Title + " | " + v.cfg.Name,
			Description: post.Excerpt,
			URL:         BuildURL(v.cfg.URL, "blogs", post.Slug),
			OGType:      "article",
		},
		JSONLD:  template.JS(BlogPostingJsonLD(post, v.cfg)),
		Post:    NewPostView(post, v.locale),
		Related: v.views(related),
	})
}

// Page renders a standalone page such as the about page.
func (v *Views) Page(page blog.BlogPost) templ.Component {
	return v.page("page", PageData{
		Meta: PageMeta{
			Title:       page.Title + " | " + v.cfg.Name,
			Description: page.Excerpt,
			URL:         BuildURL(v.cfg.URL, page.Slug),
			OGType:      "website",
		},
		Post: NewPostView(page, v.locale),
	})
}

// NotFound renders the missing article page.
func (v *Views) NotFound() templ.Component {
	return v.page("notfound", PageData{
		Meta: PageMeta{Title: "Article Not Found | " + v.cfg.Name, OGType: "website"},
	})
}

// ServerError renders the generic error page.
func (v *Views) ServerError() templ.Component {
	return v.page("error", PageData{
		Meta: PageMeta{Title: "Something went wrong | " + v.cfg.Name, OGType: "website"},
	})
}
