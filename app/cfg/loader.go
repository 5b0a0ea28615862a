package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	ConfigPath string `short:"c" long:"config" env:"EXITWP_CONFIG" default:"config.yaml" description:"Path to the conversion config file"`
	DataFile   string `short:"d" long:"data-file" env:"EXITWP_DATA_FILE" description:"Path to a single WordPress export file (default: all *.xml in wp_exports)"`

	UserAgent   string `long:"user-agent" env:"USER_AGENT" default:"exitwp/1.0" description:"User agent string for image downloads"`
	HTTPTimeout int    `long:"http-timeout" env:"HTTP_TIMEOUT" default:"30" description:"Image download timeout in seconds"`

	Quiet bool `short:"q" long:"quiet" description:"Reduce messages"`
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses command-line arguments and environment variables. It returns
// nil, nil when help was requested.
func Load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)
	parser.Name = "exitwp"

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("http timeout must be positive, got %d", raw.HTTPTimeout)
	}

	return &Cfg{
		ConfigPath:  raw.ConfigPath,
		DataFile:    raw.DataFile,
		UserAgent:   raw.UserAgent,
		HTTPTimeout: time.Duration(raw.HTTPTimeout) * time.Second,
		Quiet:       raw.Quiet,
		Debug:       raw.Debug,
		Version:     GetVersion(),
	}, nil
}
