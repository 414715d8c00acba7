package beyondbigo

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goodsign/monday"
	"github.com/joho/godotenv"
)

// SiteConfig holds all configuration for a beyondbigo site.
type SiteConfig struct {
	Name        string // SITE_NAME (default "Beyond Big-O")
	URL         string // SITE_URL (default "http://localhost:3000")
	Description string // SITE_DESCRIPTION
	Author      string // SITE_AUTHOR, used when a post names no author

	Addr       string // ADDR (default ":3000")
	ContentDir string // CONTENT_DIR, directory of *.md posts; empty serves the embedded posts
	DateLocale string // DATE_LOCALE (default "en_US")
	LogLevel   string // LOG_LEVEL (default "info")

	// SanitizeHTML filters rendered post HTML (SANITIZE_HTML). Enable it
	// when ContentDir holds documents from untrusted authors.
	SanitizeHTML bool
}

// SupportedLocales lists the locales accepted for DateLocale.
var SupportedLocales = []monday.Locale{
	monday.LocaleEnUS,
	monday.LocaleEnGB,
	monday.LocaleDeDE,
	monday.LocaleFrFR,
	monday.LocaleEsES,
	monday.LocaleItIT,
	monday.LocaleNlNL,
	monday.LocalePtBR,
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Beyond Big-O"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DateLocale == "" {
		c.DateLocale = string(monday.LocaleEnUS)
	}
	if c.LogLevel == "" {
		c.LogLevel = log.InfoLevel.String()
	}
}

// Validate reports every invalid field of c.
func (c SiteConfig) Validate() error {
	locales := make([]any, len(SupportedLocales))
	for i, l := range SupportedLocales {
		locales[i] = string(l)
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.URL, validation.Required, validation.By(absoluteURL)),
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.DateLocale, validation.In(locales...)),
		validation.Field(&c.LogLevel, validation.By(logLevel)),
	)
}

// Locale returns the configured date locale.
func (c SiteConfig) Locale() monday.Locale {
	return monday.Locale(c.DateLocale)
}

func absoluteURL(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must use http or https")
	}
	if u.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}

func logLevel(value any) error {
	s, _ := value.(string)
	if _, err := log.ParseLevel(s); err != nil {
		return errors.New("must be one of debug, info, warn, error, fatal")
	}
	return nil
}

// LoadConfig reads the site configuration from the environment after
// loading the given .env files (".env" when none are named). Missing files
// are skipped. The result has defaults applied and is validated.
func LoadConfig(envFiles ...string) (SiteConfig, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return SiteConfig{}, fmt.Errorf("beyondbigo: load %s: %w", f, err)
		}
	}
	cfg := SiteConfig{
		Name:        os.Getenv("SITE_NAME"),
		URL:         os.Getenv("SITE_URL"),
		Description: os.Getenv("SITE_DESCRIPTION"),
		Author:      os.Getenv("SITE_AUTHOR"),
		Addr:        os.Getenv("ADDR"),
		ContentDir:  os.Getenv("CONTENT_DIR"),
		DateLocale:  os.Getenv("DATE_LOCALE"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}
	if v := os.Getenv("SANITIZE_HTML"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("beyondbigo: SANITIZE_HTML: %w", err)
		}
		cfg.SanitizeHTML = b
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return SiteConfig{}, fmt.Errorf("beyondbigo: invalid config: %w", err)
	}
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithSource serves posts from src instead of the configured content.
func WithSource(src Source) Option {
	return func(a *App) {
		a.Source = src
	}
}

// WithLogger replaces the logger built from SiteConfig.LogLevel.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
