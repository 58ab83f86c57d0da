package dom

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrModalUnsupported is returned by ShowModal when the document has no native
// modal dialogs.
var ErrModalUnsupported = errors.New("modal dialogs not supported")

// Element is a node of the document tree.
type Element struct {
	Tag string

	doc      *Document
	parent   *Element
	children []*Element
	attrs    map[string]string
	classes  []string

	files    []*File
	hidden   bool
	modal    bool
	rotation float64

	listeners listenerSet
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// ID returns the element's id attribute.
func (e *Element) ID() string {
	return e.attrs["id"]
}

// Attr returns the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// SetAttr sets an attribute. "class" replaces the class list.
func (e *Element) SetAttr(name, value string) *Element {
	if name == "class" {
		e.classes = strings.Fields(value)
	}
	e.attrs[name] = value
	return e
}

// RemoveAttr removes an attribute.
func (e *Element) RemoveAttr(name string) {
	if name == "class" {
		e.classes = nil
	}
	delete(e.attrs, name)
}

// AddClass adds class names not already present.
func (e *Element) AddClass(names ...string) *Element {
	for _, n := range names {
		if !slices.Contains(e.classes, n) {
			e.classes = append(e.classes, n)
		}
	}
	e.attrs["class"] = strings.Join(e.classes, " ")
	return e
}

// HasClass reports whether the element carries the class.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes, name)
}

// Parent returns the parent element, nil for detached elements and Body.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns the child elements.
func (e *Element) Children() []*Element {
	return e.children
}

// AppendChild attaches child as the last child, detaching it from any previous
// parent. It returns the child.
func (e *Element) AppendChild(child *Element) *Element {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	return child
}

// RemoveChild detaches child if it belongs to e.
func (e *Element) RemoveChild(child *Element) {
	if i := slices.Index(e.children, child); i >= 0 {
		e.children = slices.Delete(e.children, i, i+1)
		child.parent = nil
	}
}

// Attached reports whether the element is reachable from its document's Body.
func (e *Element) Attached() bool {
	n := e
	for n.parent != nil {
		n = n.parent
	}
	return n == e.doc.Body
}

// Closest returns the nearest inclusive ancestor matching m.
func (e *Element) Closest(m Matcher) *Element {
	for n := e; n != nil; n = n.parent {
		if m(n) {
			return n
		}
	}
	return nil
}

// QuerySelector returns the first descendant matching m in document order.
func (e *Element) QuerySelector(m Matcher) *Element {
	for _, c := range e.children {
		if m(c) {
			return c
		}
		if found := c.QuerySelector(m); found != nil {
			return found
		}
	}
	return nil
}

// QuerySelectorAll returns every descendant matching m in document order.
func (e *Element) QuerySelectorAll(m Matcher) []*Element {
	var out []*Element
	for _, c := range e.children {
		if m(c) {
			out = append(out, c)
		}
		out = append(out, c.QuerySelectorAll(m)...)
	}
	return out
}

// Files returns the selected files of a file input.
func (e *Element) Files() []*File {
	return e.files
}

// SetFiles replaces the file list.
func (e *Element) SetFiles(files ...*File) {
	e.files = append([]*File(nil), files...)
}

// Hidden reports whether the element is hidden from display.
func (e *Element) Hidden() bool {
	return e.hidden
}

// SetHidden shows or hides the element.
func (e *Element) SetHidden(hidden bool) {
	e.hidden = hidden
}

// Rotation returns the applied rotation in degrees.
func (e *Element) Rotation() float64 {
	return e.rotation
}

// SetRotation applies a rotation transform in degrees.
func (e *Element) SetRotation(deg float64) {
	e.rotation = deg
	e.attrs["style"] = fmt.Sprintf("transform: rotate(%gdeg)", deg)
}

// Open reports whether a dialog element is open.
func (e *Element) Open() bool {
	return e.HasAttr("open")
}

// Modal reports whether a dialog element was opened with ShowModal.
func (e *Element) Modal() bool {
	return e.modal && e.Open()
}

// ShowModal opens a dialog modally. Calling it on an open modal dialog is a no-op.
func (e *Element) ShowModal() error {
	if !e.doc.NativeModal {
		return ErrModalUnsupported
	}
	if e.Modal() {
		return nil
	}
	e.modal = true
	e.attrs["open"] = ""
	return nil
}

// Close closes a dialog however it was opened.
func (e *Element) Close() {
	e.modal = false
	delete(e.attrs, "open")
}

// AddEventListener registers fn for events of type typ reaching this element.
// The returned function removes the listener.
func (e *Element) AddEventListener(typ string, fn Listener) func() {
	return e.listeners.add(typ, fn)
}

// Dispatch fires ev at e and bubbles it through ancestors, then to the document
// when e is attached.
func (e *Element) Dispatch(ev *Event) {
	ev.Target = e
	for n := e; n != nil && !ev.stopped; n = n.parent {
		ev.CurrentTarget = n
		n.listeners.fire(ev)
	}
	if !ev.stopped && e.Attached() {
		ev.CurrentTarget = nil
		e.doc.listeners.fire(ev)
	}
}

// Click dispatches a click event at the element.
func (e *Element) Click() {
	e.Dispatch(&Event{Type: EventClick})
}

// Change dispatches a change event at the element.
func (e *Element) Change() {
	e.Dispatch(&Event{Type: EventChange})
}
