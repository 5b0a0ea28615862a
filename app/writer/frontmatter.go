package writer

import (
	"bytes"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lysyi3m/exitwp/app/export"
)

const frontMatterDelimiter = "---\n"

// frontMatter builds the header mapping of one item, including the
// item_field_map overrides.
func (w *Writer) frontMatter(item *export.Item, date time.Time) (map[string]any, error) {
	wpID, err := strconv.Atoi(item.WPID)
	if err != nil {
		return nil, fmt.Errorf("invalid wordpress id %q: %w", item.WPID, err)
	}

	header := map[string]any{
		"title":        item.Title,
		"url":          linkPath(item.Link),
		"author":       item.Author,
		"date":         date.UTC(),
		"draft":        item.Status == "draft",
		"wordpress_id": wpID,
		"comments":     item.CommentsEnabled,
	}
	if item.Slug != "" {
		header["slug"] = item.Slug
	}
	if w.config.ExcerptKey != "" && item.Excerpt != "" {
		header[w.config.ExcerptKey] = item.Excerpt
	}

	for _, override := range w.config.ItemFieldMap {
		if value, ok := item.Field(override.Field); ok && value == override.Value {
			maps.Copy(header, override.Overrides)
		}
	}

	header["type"] = item.Type

	return header, nil
}

// taxonomyNode groups taxonomy entries by display name. A mapping node is
// used so that names keep their first-seen order in the output.
func (w *Writer) taxonomyNode(item *export.Item) (*yaml.Node, error) {
	var names []string
	values := make(map[string][]string)

	for _, taxonomy := range item.Taxonomies {
		name := w.config.TaxonomyName(taxonomy.Domain)
		for _, entry := range taxonomy.Entries {
			if _, ok := values[name]; !ok {
				names = append(names, name)
			}
			if !slices.Contains(values[name], entry) {
				values[name] = append(values[name], entry)
			}
		}
	}

	if len(names) == 0 {
		return nil, nil
	}

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range names {
		var entries yaml.Node
		if err := entries.Encode(values[name]); err != nil {
			return nil, fmt.Errorf("failed to encode taxonomy %s: %w", name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&entries)
	}

	return node, nil
}

// renderDocument writes the front-matter block followed by the body. The
// taxonomy block comes last so taxonomy keys always close the header.
func renderDocument(header map[string]any, taxonomies *yaml.Node, body string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(frontMatterDelimiter)
	if len(header) > 0 {
		if err := writeYAML(&buf, header); err != nil {
			return nil, fmt.Errorf("failed to encode front-matter: %w", err)
		}
	}
	if taxonomies != nil {
		if err := writeYAML(&buf, taxonomies); err != nil {
			return nil, fmt.Errorf("failed to encode taxonomies: %w", err)
		}
	}
	buf.WriteString(frontMatterDelimiter)
	buf.WriteString("\n")
	buf.WriteString(body)

	return buf.Bytes(), nil
}

func writeYAML(buf *bytes.Buffer, v any) error {
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// linkPath keeps only the path of an item link so that URLs stay relative to
// the new site.
func linkPath(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Path
}
