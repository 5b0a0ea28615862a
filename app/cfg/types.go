package cfg

import (
	"log/slog"
	"time"
)

type Cfg struct {
	ConfigPath string
	DataFile   string

	UserAgent   string
	HTTPTimeout time.Duration

	Quiet   bool
	Debug   bool
	Version string
}

// LogLevel maps --quiet and --debug to a slog level; --debug wins.
func (c *Cfg) LogLevel() slog.Level {
	switch {
	case c.Debug:
		return slog.LevelDebug
	case c.Quiet:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
