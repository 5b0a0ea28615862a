package writer

import (
	"net/url"
	"path"
	"strconv"
	"strings"
)

const defaultAttachmentRoot = "1"

// uniqueName returns root+ext, or root_N+ext with the smallest N >= 2 that is
// not taken yet, and marks the result as taken.
func uniqueName(taken map[string]bool, root, ext string) string {
	name := root + ext
	for n := 2; taken[name]; n++ {
		name = root + "_" + strconv.Itoa(n) + ext
	}
	taken[name] = true
	return name
}

type namespace struct {
	byKey map[string]string
	taken map[string]bool
}

// registry maps keys to unique names, independently per namespace. Asking
// again for a known key returns the name it already got.
type registry struct {
	namespaces map[string]*namespace
}

func newRegistry() *registry {
	return &registry{namespaces: make(map[string]*namespace)}
}

func (r *registry) assign(ns, key, root, ext string) string {
	n, ok := r.namespaces[ns]
	if !ok {
		n = &namespace{byKey: make(map[string]string), taken: make(map[string]bool)}
		r.namespaces[ns] = n
	}

	if name, ok := n.byKey[key]; ok {
		return name
	}

	name := uniqueName(n.taken, root, ext)
	n.byKey[key] = name
	return name
}

// uidRegistry hands out item UIDs. Posts share one namespace; pages get one
// per parent so that siblings never collide.
type uidRegistry struct {
	*registry
}

func newUIDRegistry() *uidRegistry {
	return &uidRegistry{newRegistry()}
}

func (r *uidRegistry) post(wpID, stem string) string {
	return r.assign("post", wpID, stem, "")
}

func (r *uidRegistry) page(parentID, wpID, stem string) string {
	return r.assign("page/"+parentID, wpID, stem, "")
}

// attachmentRegistry hands out local file names per images subdirectory.
type attachmentRegistry struct {
	*registry
}

func newAttachmentRegistry() *attachmentRegistry {
	return &attachmentRegistry{newRegistry()}
}

// filename returns the local name for an image URL inside subdir,
// e.g. http://example.com/a/b/d.jpg -> d.jpg, d_2.jpg, ...
func (r *attachmentRegistry) filename(subdir string, u *url.URL) string {
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		base = ""
	}
	ext := path.Ext(base)
	root := strings.TrimSuffix(base, ext)
	if root == "" {
		root = defaultAttachmentRoot
	}
	return r.assign(subdir, u.String(), root, ext)
}
