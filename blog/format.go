package blog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodsign/monday"
)

// Placeholders returned by the formatters for input they cannot render.
const (
	InvalidDate        = "Invalid Date"
	InvalidReadingTime = "Invalid reading time"
)

var (
	ErrInvalidDate        = errors.New("blog: invalid date")
	ErrInvalidReadingTime = errors.New("blog: invalid reading time")
)

// DisplayDateLayout is the long form used for post dates, e.g. "March 15, 2024".
const DisplayDateLayout = "January 2, 2006"

// WordsPerMinute is the reading speed assumed by EstimateReadingTime.
const WordsPerMinute = 200

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
	"2006/01/02",
	DisplayDateLayout,
	"Jan 2, 2006",
}

// ParseDate parses a post date. Timestamps keep their own offset so the
// calendar day is the one written in the document.
func ParseDate(dateText string) (time.Time, error) {
	s := strings.TrimSpace(dateText)
	if s != "" {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, dateText)
}

// FormatDate renders dateText as "Month D, YYYY" in US English. It returns
// InvalidDate when dateText is not a recognised date.
func FormatDate(dateText string) string {
	return FormatDateLocale(dateText, monday.LocaleEnUS)
}

// FormatDateLocale is FormatDate with month names taken from locale.
func FormatDateLocale(dateText string, locale monday.Locale) string {
	t, err := ParseDate(dateText)
	if err != nil {
		return InvalidDate
	}
	return monday.Format(t, DisplayDateLayout, locale)
}

// ReadingTime renders a duration in minutes as "N min read" below an hour
// and "Hh Mm read" from an hour on. Negative durations are rejected.
func ReadingTime(minutes int) (string, error) {
	if minutes < 0 {
		return "", fmt.Errorf("%w: %d minutes", ErrInvalidReadingTime, minutes)
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min read", minutes), nil
	}
	return fmt.Sprintf("%dh %dm read", minutes/60, minutes%60), nil
}

// FormatReadingTime is ReadingTime for templates: a negative duration
// renders as InvalidReadingTime.
func FormatReadingTime(minutes int) string {
	s, err := ReadingTime(minutes)
	if err != nil {
		return InvalidReadingTime
	}
	return s
}

// EstimateReadingTime returns the whole minutes needed to read content at
// WordsPerMinute, never less than one.
func EstimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	return max(minutes, 1)
}
