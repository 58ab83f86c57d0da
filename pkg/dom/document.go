// Package dom is a small in-memory document model: an element tree with
// attributes, classes, file lists, bubbling events, dialogs and object URLs.
//
// It carries just enough page semantics for the widgets to be driven headless.
// A Document and its elements are not safe for concurrent use; mutate them from
// the goroutine running the frame scheduler.
package dom

import (
	"github.com/google/uuid"
)

// File is a user-selected or generated file: opaque bytes plus a declared type.
type File struct {
	Name string
	Type string
	Data []byte
}

// Size returns the number of bytes in the file.
func (f *File) Size() int {
	return len(f.Data)
}

// Document owns an element tree rooted at Body.
type Document struct {
	Body *Element

	// NativeModal reports whether dialogs support modal display. When false,
	// ShowModal fails with ErrModalUnsupported and callers toggle the open
	// attribute instead.
	NativeModal bool

	listeners listenerSet
	urls      map[string]*File
}

// NewDocument creates an empty document with native modal support.
func NewDocument() *Document {
	d := &Document{
		NativeModal: true,
		urls:        make(map[string]*File),
	}
	d.Body = d.CreateElement("body")
	return d
}

// CreateElement creates a detached element owned by the document.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{
		Tag:   tag,
		doc:   d,
		attrs: make(map[string]string),
	}
}

// GetElementByID returns the first attached element with the given id.
func (d *Document) GetElementByID(id string) *Element {
	if d.Body.ID() == id {
		return d.Body
	}
	return d.Body.QuerySelector(ByID(id))
}

// QuerySelectorAll returns every attached element matching m, in document order.
func (d *Document) QuerySelectorAll(m Matcher) []*Element {
	var out []*Element
	if m(d.Body) {
		out = append(out, d.Body)
	}
	return append(out, d.Body.QuerySelectorAll(m)...)
}

// AddEventListener registers fn for events of type typ that bubble up to the
// document. The returned function removes the listener.
func (d *Document) AddEventListener(typ string, fn Listener) func() {
	return d.listeners.add(typ, fn)
}

// CreateObjectURL registers f under a fresh blob URL.
func (d *Document) CreateObjectURL(f *File) string {
	url := "blob:" + uuid.NewString()
	d.urls[url] = f
	return url
}

// RevokeObjectURL releases url. Unknown URLs are ignored.
func (d *Document) RevokeObjectURL(url string) {
	delete(d.urls, url)
}

// ResolveObjectURL returns the file registered under url.
func (d *Document) ResolveObjectURL(url string) (*File, bool) {
	f, ok := d.urls[url]
	return f, ok
}

// LiveObjectURLs returns the number of object URLs not yet revoked.
func (d *Document) LiveObjectURLs() int {
	return len(d.urls)
}
