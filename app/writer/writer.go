package writer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/lysyi3m/exitwp/app/config"
	"github.com/lysyi3m/exitwp/app/export"
)

const (
	defaultPostDir = "_posts"
	imagesDir      = "images"

	// maxPageDepth bounds the walk up the page hierarchy.
	maxPageDepth = 64
)

var ErrUnknownType = errors.New("unknown item type")

var (
	schemePrefix = regexp.MustCompile(`^https?`)
	nonDirChars  = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
)

// Renderer renders an HTML body in the target format.
type Renderer interface {
	Render(body string) (string, error)
}

// Stats summarizes one Write call.
type Stats struct {
	Written     int
	Skipped     int
	Failed      int
	Images      int
	ImageErrors int
}

// Writer writes the items of one export model as content files. UID and
// attachment names are unique for the lifetime of the Writer.
type Writer struct {
	config      *config.Config
	renderer    Renderer
	downloader  Downloader
	uids        *uidRegistry
	attachments *attachmentRegistry
	pages       map[string]*export.Item
	blogDir     string
	stats       Stats
}

func New(cfg *config.Config, renderer Renderer, downloader Downloader) *Writer {
	return &Writer{
		config:      cfg,
		renderer:    renderer,
		downloader:  downloader,
		uids:        newUIDRegistry(),
		attachments: newAttachmentRegistry(),
		pages:       make(map[string]*export.Item),
	}
}

// BlogDirName derives the site directory from the blog link,
// e.g. http://blog.example.com -> blog.example.com
func BlogDirName(link string) string {
	name := schemePrefix.ReplaceAllString(link, "")
	return nonDirChars.ReplaceAllString(name, "")
}

// BlogDir returns the root directory the items of a site are written to.
func (w *Writer) BlogDir(header export.Header) string {
	return filepath.Join(w.config.BuildDir, w.config.OutputSubdir, BlogDirName(header.Link))
}

// Write writes every item of model. Item failures are logged and counted;
// an error is only returned when nothing can be written at all or ctx is done.
func (w *Writer) Write(ctx context.Context, model *export.Model) (Stats, error) {
	w.blogDir = w.BlogDir(model.Header)
	if err := os.MkdirAll(w.blogDir, 0755); err != nil {
		return w.stats, fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, item := range model.Items {
		if item.Type == export.TypePage {
			if _, ok := w.pages[item.WPID]; !ok {
				w.pages[item.WPID] = item
			}
		}
	}

	base, err := url.Parse(model.Header.Link)
	if err != nil {
		slog.Warn("Invalid blog link, relative image URLs will not resolve",
			"link", model.Header.Link,
			"error", err)
	}

	for _, item := range model.Items {
		if err := ctx.Err(); err != nil {
			return w.stats, err
		}

		target, err := w.writeItem(ctx, base, item)
		switch {
		case errors.Is(err, ErrUnknownType):
			slog.Warn("Skipping unknown item type",
				"type", item.Type,
				"wp_id", item.WPID,
				"title", item.Title)
			w.stats.Skipped++
		case err != nil:
			slog.Error("Failed to write item",
				"type", item.Type,
				"wp_id", item.WPID,
				"title", item.Title,
				"slug", item.Slug,
				"error", err)
			w.stats.Failed++
		default:
			slog.Info("Item written",
				"type", item.Type,
				"wp_id", item.WPID,
				"status", item.Status,
				"file", target)
			w.stats.Written++
		}
	}

	return w.stats, nil
}

func (w *Writer) writeItem(ctx context.Context, base *url.URL, item *export.Item) (string, error) {
	if !export.IsRecognizedType(item.Type) {
		return "", fmt.Errorf("%w: %s", ErrUnknownType, item.Type)
	}

	date, err := w.config.ParseDate(item.Date)
	if err != nil {
		return "", fmt.Errorf("could not parse date %q: %w", item.Date, err)
	}

	header, err := w.frontMatter(item, date)
	if err != nil {
		return "", err
	}

	target := w.itemPath(item, date)

	if w.config.DownloadImages && len(item.ImageSources) > 0 {
		w.downloadImages(ctx, base, item)
	}

	taxonomies, err := w.taxonomyNode(item)
	if err != nil {
		return "", err
	}

	body, err := w.renderer.Render(item.Body)
	if err != nil {
		return "", err
	}

	content, err := renderDocument(header, taxonomies, body)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(target, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return target, nil
}

// itemPath assigns the item UID and returns its target file.
//
//	post: <blog>/<post dir>/<YYYY-MM-DD-uid>.<ext>
//	page: <blog>/<page dir>/<ancestor uids...>/<uid>/index.<ext>
func (w *Writer) itemPath(item *export.Item, date time.Time) string {
	ext := "." + w.config.TargetFormat

	if item.Type == export.TypePost {
		stem := date.Format(time.DateOnly) + "-" + itemStem(item.Slug, item.Title, w.config.SlugTransliterate)
		item.UID = w.uids.post(item.WPID, stem)
		return filepath.Join(w.blogDir, w.config.ParentPath(export.TypePost, defaultPostDir), item.UID+ext)
	}

	item.UID = w.pageUID(item)
	parts := []string{w.blogDir, w.config.ParentPath(export.TypePage, "")}
	parts = append(parts, w.ancestorUIDs(item)...)
	parts = append(parts, item.UID, "index"+ext)
	return filepath.Join(parts...)
}

func (w *Writer) pageUID(page *export.Item) string {
	parent := page.Parent
	if _, ok := w.pages[parent]; !ok || parent == page.WPID {
		parent = export.NoParent
	}
	return w.uids.page(parent, page.WPID, itemStem(page.Slug, page.Title, w.config.SlugTransliterate))
}

// ancestorUIDs returns the UIDs of the page's ancestors, root first. The walk
// stops at a top-level page, a parent that is not part of the export, a loop,
// or maxPageDepth.
func (w *Writer) ancestorUIDs(page *export.Item) []string {
	var uids []string
	visited := map[string]bool{page.WPID: true}

	for current := page; current.Parent != export.NoParent; {
		parent, ok := w.pages[current.Parent]
		if !ok {
			break
		}
		if visited[parent.WPID] || len(uids) >= maxPageDepth {
			slog.Warn("Page hierarchy loop, truncating path",
				"wp_id", page.WPID,
				"title", page.Title,
				"parent", current.Parent)
			break
		}
		visited[parent.WPID] = true
		uids = append(uids, w.pageUID(parent))
		current = parent
	}

	slices.Reverse(uids)
	return uids
}

func (w *Writer) downloadImages(ctx context.Context, base *url.URL, item *export.Item) {
	slog.Info("Downloading images", "type", item.Type, "uid", item.UID, "count", len(item.ImageSources))

	done := make(map[string]bool)
	for _, src := range item.ImageSources {
		if done[src] {
			continue
		}
		done[src] = true

		if err := w.downloadImage(ctx, base, item, src); err != nil {
			slog.Error("Unable to download image",
				"uid", item.UID,
				"src", src,
				"error", err)
			w.stats.ImageErrors++
			continue
		}
		w.stats.Images++
	}
}

// downloadImage fetches one image into images/<uid>/ and points every
// occurrence of its absolute URL in the body to the local copy.
func (w *Writer) downloadImage(ctx context.Context, base *url.URL, item *export.Item, src string) error {
	ref, err := url.Parse(src)
	if err != nil {
		return fmt.Errorf("invalid image URL: %w", err)
	}

	abs := ref
	if base != nil {
		abs = base.ResolveReference(ref)
	}
	if !abs.IsAbs() {
		return fmt.Errorf("cannot resolve relative image URL %q", src)
	}

	name := w.attachments.filename(item.UID, abs)
	dir := filepath.Join(w.blogDir, imagesDir, item.UID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}

	dest := filepath.Join(dir, name)
	srcURL := abs.String()
	if err := w.downloader.Download(ctx, srcURL, dest); err != nil {
		return err
	}

	uri := w.imageURI(item.UID, name)
	for _, key := range rewriteKeys(ref, abs, src) {
		item.Body = strings.ReplaceAll(item.Body, key, uri)
	}

	slog.Debug("Image downloaded", "src", srcURL, "file", dest, "uri", uri)
	return nil
}

// rewriteKeys returns the spellings of an absolute image URL that may appear
// in the body: the source text as written and the escaped form net/url
// produces. Relative sources only match their escaped absolute form, which
// leaves the relative reference itself untouched.
func rewriteKeys(ref, abs *url.URL, src string) []string {
	escaped := abs.String()
	if !ref.IsAbs() || src == escaped {
		return []string{escaped}
	}
	return []string{src, escaped}
}

// imageURI joins blog_prefix with the image location. A prefix with a scheme
// is treated as a URL so that only its path is cleaned.
func (w *Writer) imageURI(uid, name string) string {
	if prefix, err := url.Parse(w.config.BlogPrefix); err == nil && prefix.Scheme != "" {
		prefix.Path = path.Join("/", prefix.Path, imagesDir, uid, name)
		return prefix.String()
	}
	return path.Clean(strings.Join([]string{w.config.BlogPrefix, imagesDir, uid, name}, "/"))
}
