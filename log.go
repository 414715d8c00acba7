package beyondbigo

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger returns a structured logger writing to w at the named level.
// An unknown level falls back to info.
func NewLogger(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "beyondbigo",
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}
