package export

import (
	"fmt"
	"slices"

	"github.com/mmcdole/gofeed/rss"

	"github.com/lysyi3m/exitwp/app/config"
)

type Filterer struct {
	config *config.Config
}

func NewFilterer(cfg *config.Config) *Filterer {
	return &Filterer{config: cfg}
}

// Taxonomies groups category entries by domain in first-seen order, dropping
// excluded domains and entries as well as duplicates.
func (f *Filterer) Taxonomies(categories []*rss.Category) []Taxonomy {
	var taxonomies []Taxonomy
	index := make(map[string]int)

	for _, category := range categories {
		if category == nil || category.Domain == "" {
			continue
		}
		if f.config.ExcludesDomain(category.Domain) {
			continue
		}
		if f.config.ExcludesEntry(category.Domain, category.Value) {
			continue
		}

		i, ok := index[category.Domain]
		if !ok {
			i = len(taxonomies)
			index[category.Domain] = i
			taxonomies = append(taxonomies, Taxonomy{Domain: category.Domain})
		}
		if !slices.Contains(taxonomies[i].Entries, category.Value) {
			taxonomies[i].Entries = append(taxonomies[i].Entries, category.Value)
		}
	}

	return taxonomies
}

// Excluded reports whether an item must be dropped, and why.
func (f *Filterer) Excluded(item *Item) (bool, string) {
	if f.config.ExcludesType(item.Type) {
		return true, fmt.Sprintf("Excluded by item_type_filter: type=%s", item.Type)
	}
	if !IsRecognizedType(item.Type) {
		return true, fmt.Sprintf("Unrecognized item type: %s", item.Type)
	}

	for field, values := range f.config.ItemFieldFilter {
		value, ok := item.Field(field)
		if !ok {
			continue
		}
		if slices.Contains(values, value) {
			return true, fmt.Sprintf("Excluded by item_field_filter: %s=%s", field, value)
		}
	}

	return false, ""
}
