package config

import "regexp"

// Config holds the conversion settings loaded from config.yaml.
// It is treated as read-only once Load has returned.
type Config struct {
	WPExports          string            `yaml:"wp_exports"`
	BuildDir           string            `yaml:"build_dir"`
	OutputSubdir       string            `yaml:"output_subdir"`
	DownloadImages     bool              `yaml:"download_images"`
	TargetFormat       string            `yaml:"target_format"`
	DateFormat         string            `yaml:"date_format"` // strftime pattern
	BodyReplace        ReplaceRules      `yaml:"body_replace"`
	ItemTypeFilter     []string          `yaml:"item_type_filter"`
	ItemFieldFilter    map[string]Values `yaml:"item_field_filter"`
	Taxonomies         TaxonomyConfig    `yaml:"taxonomies"`
	ItemFieldMap       FieldMap          `yaml:"item_field_map"`
	ItemTypeParentPath map[string]string `yaml:"item_type_parent_path"`
	BlogPrefix         string            `yaml:"blog_prefix"`
	ExcerptKey         string            `yaml:"excerpt_key"`
	SlugTransliterate  bool              `yaml:"slug_transliterate"`

	dateLayout string
}

// TaxonomyConfig controls which category domains and entries survive parsing
// and how domains are named in the front-matter.
type TaxonomyConfig struct {
	Filter      []string          `yaml:"filter"`
	EntryFilter map[string]Values `yaml:"entry_filter"`
	NameMapping map[string]string `yaml:"name_mapping"`
}

// Values is a list of strings that may be written in YAML either as a single
// scalar or as a sequence.
type Values []string

// ReplaceRule is a single regex substitution applied to item bodies.
type ReplaceRule struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`

	re *regexp.Regexp
}

// ReplaceRules keeps body substitutions in declaration order.
type ReplaceRules []ReplaceRule

// FieldOverride merges Overrides into the front-matter of items whose Field
// equals Value.
type FieldOverride struct {
	Field     string
	Value     string
	Overrides map[string]any
}

// FieldMap keeps item_field_map entries in declaration order so that later
// overrides win deterministically.
type FieldMap []FieldOverride
