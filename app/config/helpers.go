package config

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"time"
)

var backslashGroupRef = regexp.MustCompile(`\\(\d+)|\\g<(\w+)>`)

// ParseDate parses an item date with the configured date_format.
// Dates without zone information are interpreted as UTC.
func (c *Config) ParseDate(value string) (time.Time, error) {
	return time.Parse(c.dateLayout, value)
}

// Apply runs every body_replace rule over body, in order.
func (r ReplaceRules) Apply(body string) string {
	for _, rule := range r {
		if rule.re == nil {
			continue
		}
		body = rule.re.ReplaceAllString(body, rule.Replacement)
	}
	return body
}

func (c *Config) ExcludesType(itemType string) bool {
	return slices.Contains(c.ItemTypeFilter, itemType)
}

func (c *Config) ExcludesDomain(domain string) bool {
	return slices.Contains(c.Taxonomies.Filter, domain)
}

func (c *Config) ExcludesEntry(domain, entry string) bool {
	return slices.Contains(c.Taxonomies.EntryFilter[domain], entry)
}

// TaxonomyName returns the front-matter key for a category domain.
func (c *Config) TaxonomyName(domain string) string {
	return cmp.Or(c.Taxonomies.NameMapping[domain], domain)
}

// ParentPath returns the output subdirectory configured for an item type.
func (c *Config) ParentPath(itemType, fallback string) string {
	if p, ok := c.ItemTypeParentPath[itemType]; ok {
		return p
	}
	return fallback
}

// RendersHTML reports whether bodies are written verbatim.
func (c *Config) RendersHTML() bool {
	return c.TargetFormat == FormatHTML
}

// expandGroupRefs rewrites \1 and \g<name> group references to ${1} and
// ${name} so existing exitwp configs keep working. A literal $ stays literal.
func expandGroupRefs(repl string) string {
	repl = strings.ReplaceAll(repl, "$", "$$")
	return backslashGroupRef.ReplaceAllStringFunc(repl, func(ref string) string {
		m := backslashGroupRef.FindStringSubmatch(ref)
		return "${" + cmp.Or(m[1], m[2]) + "}"
	})
}
