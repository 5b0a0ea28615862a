package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/ncruces/go-strftime"
	"gopkg.in/yaml.v3"
)

const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatMD       = "md"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Loader handles loading and validation of the conversion configuration
type Loader struct {
	path string
}

// NewLoader creates a new configuration loader
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads, normalizes and validates the configuration file
func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", l.path, err)
	}

	slog.Debug("Configuration loaded",
		"file", l.path,
		"target_format", config.TargetFormat,
		"download_images", config.DownloadImages,
		"body_replace", len(config.BodyReplace))

	return config, nil
}

// Parse builds a Config from YAML data
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	setDefaults(&config)

	if err := normalize(&config); err != nil {
		return nil, err
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults applies default values to configuration
func setDefaults(config *Config) {
	if config.WPExports == "" {
		config.WPExports = "wordpress-xml"
	}
	if config.BuildDir == "" {
		config.BuildDir = "build"
	}
	if config.OutputSubdir == "" {
		config.OutputSubdir = "hugo"
	}
	if config.TargetFormat == "" {
		config.TargetFormat = FormatMarkdown
	}
	if config.DateFormat == "" {
		config.DateFormat = "%Y-%m-%d %H:%M:%S"
	}
	if config.BlogPrefix == "" {
		config.BlogPrefix = "/"
	}
}

// normalize compiles patterns and derives the Go date layout
func normalize(config *Config) error {
	layout, err := strftime.Layout(config.DateFormat)
	if err != nil {
		return fmt.Errorf("%w: date_format %q: %v", ErrInvalid, config.DateFormat, err)
	}
	config.dateLayout = layout

	for i := range config.BodyReplace {
		rule := &config.BodyReplace[i]
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fmt.Errorf("%w: body_replace[%d] %q: %v", ErrInvalid, i, rule.Pattern, err)
		}
		rule.re = re
		rule.Replacement = expandGroupRefs(rule.Replacement)
	}

	return nil
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.TargetFormat {
	case FormatHTML, FormatMarkdown, FormatMD:
	default:
		return fmt.Errorf("%w: unsupported target_format %q", ErrInvalid, config.TargetFormat)
	}

	validFields := map[string]bool{
		"title":    true,
		"link":     true,
		"author":   true,
		"date":     true,
		"slug":     true,
		"status":   true,
		"type":     true,
		"wp_id":    true,
		"parent":   true,
		"comments": true,
		"excerpt":  true,
	}

	for field := range config.ItemFieldFilter {
		if !validFields[field] {
			return fmt.Errorf("%w: invalid item_field_filter field: %s", ErrInvalid, field)
		}
	}

	for i, override := range config.ItemFieldMap {
		if !validFields[override.Field] {
			return fmt.Errorf("%w: invalid item_field_map field at index %d: %s", ErrInvalid, i, override.Field)
		}
	}

	return nil
}
