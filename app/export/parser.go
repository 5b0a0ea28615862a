package export

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mmcdole/gofeed/rss"

	"github.com/lysyi3m/exitwp/app/config"
)

const (
	// MissingField is the value of a required field that is absent from an item.
	MissingField = "No Content Found"

	zeroDate = "0000-00-00 00:00:00"
	noneSlug = "None"
)

var errNoChannel = errors.New("no channel element with title or link found")

// ImageScanner finds image references in an HTML body.
type ImageScanner interface {
	ImageSources(body string) ([]string, error)
}

// Parser reads WordPress export (WXR) files
type Parser struct {
	rssParser *rss.Parser
	config    *config.Config
	filterer  *Filterer
	images    ImageScanner
}

// NewParser creates a new export parser
func NewParser(cfg *config.Config, images ImageScanner) *Parser {
	return &Parser{
		rssParser: &rss.Parser{},
		config:    cfg,
		filterer:  NewFilterer(cfg),
		images:    images,
	}
}

// Parse reads the export file at path.
func (p *Parser) Parse(path string) (*Model, error) {
	slog.Info("Parsing export", "file", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, &MalformedExportError{Path: path, Err: err}
	}
	defer f.Close()

	model, err := p.ParseReader(f)
	if err != nil {
		var malformed *MalformedExportError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		return nil, err
	}

	return model, nil
}

// ParseReader parses an export document. The returned items are in document
// order and already filtered.
func (p *Parser) ParseReader(r io.Reader) (*Model, error) {
	feed, err := p.rssParser.Parse(r)
	if err != nil {
		return nil, &MalformedExportError{Err: err}
	}

	// The RSS parser tolerates a missing channel; an export never does.
	if feed.Title == "" && feed.Link == "" {
		return nil, &MalformedExportError{Err: errNoChannel}
	}

	model := &Model{
		Header: Header{
			Title:       feed.Title,
			Link:        feed.Link,
			Description: feed.Description,
		},
		Items: make([]*Item, 0, len(feed.Items)),
	}

	skipped := 0
	for _, raw := range feed.Items {
		if raw == nil {
			continue
		}

		item := p.normalizeItem(raw)
		slog.Debug("Extracted item",
			"type", item.Type,
			"wp_id", item.WPID,
			"slug", item.Slug,
			"status", item.Status)

		if excluded, reason := p.filterer.Excluded(item); excluded {
			slog.Info("Skipping item", "wp_id", item.WPID, "title", item.Title, "reason", reason)
			skipped++
			continue
		}

		if item.Slug == noneSlug {
			return nil, fmt.Errorf("item %s/%s %q: %w", item.Type, item.WPID, item.Title, ErrForbiddenSlug)
		}

		model.Items = append(model.Items, item)
	}

	slog.Info("Parsed export",
		"title", model.Header.Title,
		"items", len(model.Items),
		"skipped", skipped)

	return model, nil
}

func (p *Parser) normalizeItem(raw *rss.Item) *Item {
	f := fields{item: raw}

	body := p.config.BodyReplace.Apply(f.optional("content:encoded"))

	date := f.text("wp:post_date_gmt")
	if date == zeroDate || date == MissingField {
		date = f.text("wp:post_date")
	}

	return &Item{
		WPID:            f.text("wp:post_id"),
		Title:           raw.Title,
		Link:            raw.Link,
		Author:          f.text("dc:creator"),
		Date:            date,
		Slug:            f.optional("wp:post_name"),
		Status:          f.text("wp:status"),
		Type:            f.text("wp:post_type"),
		Parent:          f.text("wp:post_parent"),
		CommentsEnabled: f.text("wp:comment_status") == "open",
		Taxonomies:      p.filterer.Taxonomies(raw.Categories),
		Body:            body,
		Excerpt:         f.optional("excerpt:encoded"),
		ImageSources:    p.imageSources(raw, body),
	}
}

func (p *Parser) imageSources(raw *rss.Item, body string) []string {
	if p.images == nil {
		return nil
	}

	srcs, err := p.images.ImageSources(body)
	if err != nil {
		slog.Warn("Could not parse item body for images",
			"title", raw.Title,
			"error", err)
		return nil
	}

	return srcs
}

// fields resolves qualified names like "wp:post_id" on one item. The prefix
// is the one bound to the element's namespace URI in the document; bindings
// are collected by the pull parser as declarations stream past, at any depth.
type fields struct {
	item *rss.Item
}

func (f fields) lookup(qname string) (string, bool) {
	prefix, local, ok := strings.Cut(qname, ":")
	if !ok {
		return "", false
	}

	// content:encoded is decoded by the RSS parser itself.
	if prefix == "content" && local == "encoded" && f.item.Content != "" {
		return f.item.Content, true
	}

	elements := f.item.Extensions[prefix][local]
	if len(elements) == 0 {
		return "", false
	}

	return elements[0].Value, true
}

// text returns the field value, or MissingField when the element is absent.
func (f fields) text(qname string) string {
	if value, ok := f.lookup(qname); ok {
		return strings.TrimSpace(value)
	}
	return MissingField
}

// optional returns the field value, or "" when the element is absent.
func (f fields) optional(qname string) string {
	value, _ := f.lookup(qname)
	return value
}
