package export

import "strconv"

const (
	TypePost = "post"
	TypePage = "page"

	// NoParent is the wp:post_parent value of top-level items.
	NoParent = "0"
)

// Header contains the site-level metadata of an export
type Header struct {
	Title       string
	Link        string
	Description string
}

// Taxonomy is one category domain with its distinct entries in first-seen order
type Taxonomy struct {
	Domain  string
	Entries []string
}

// Item represents a post or page of the export
type Item struct {
	WPID            string
	Title           string
	Link            string
	Author          string
	Date            string // raw, GMT when available
	Slug            string
	Status          string
	Type            string
	Parent          string
	CommentsEnabled bool
	Taxonomies      []Taxonomy
	Body            string
	Excerpt         string
	ImageSources    []string

	// UID is assigned by the writer.
	UID string
}

// Model is the parsed content of one export file
type Model struct {
	Header Header
	Items  []*Item
}

// Field returns a scalar field by its configuration name.
func (i *Item) Field(name string) (string, bool) {
	switch name {
	case "title":
		return i.Title, true
	case "link":
		return i.Link, true
	case "author":
		return i.Author, true
	case "date":
		return i.Date, true
	case "slug":
		return i.Slug, true
	case "status":
		return i.Status, true
	case "type":
		return i.Type, true
	case "wp_id":
		return i.WPID, true
	case "parent":
		return i.Parent, true
	case "comments":
		return strconv.FormatBool(i.CommentsEnabled), true
	case "excerpt":
		return i.Excerpt, true
	default:
		return "", false
	}
}

// IsRecognizedType reports whether items of this type can be written.
func IsRecognizedType(itemType string) bool {
	return itemType == TypePost || itemType == TypePage
}
