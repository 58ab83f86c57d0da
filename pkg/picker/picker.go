// Package picker routes file choices made inside crop scopes to a crop
// pipeline. Uploads outside a scope are left alone.
package picker

import (
	"github.com/ouaf/widgets/pkg/crop"
	"github.com/ouaf/widgets/pkg/dom"
	"github.com/ouaf/widgets/util/log"
)

// DefaultAccept is set on scoped inputs that declare no accept filter.
const DefaultAccept = "image/*"

// Opener starts a crop session for a file input.
type Opener interface {
	OpenFor(input *dom.Element) <-chan struct{}
}

// Interceptor listens for file input changes on a document.
type Interceptor struct {
	opener Opener
	remove func()
	last   <-chan struct{}
}

// NewInterceptor creates an interceptor handing scoped inputs to opener.
func NewInterceptor(opener Opener) *Interceptor {
	return &Interceptor{opener: opener}
}

// Install registers the document level change listener. Installing again
// moves the listener to doc.
func (i *Interceptor) Install(doc *dom.Document) {
	i.Uninstall()
	i.remove = doc.AddEventListener(dom.EventChange, i.handle)
}

// Uninstall removes the listener. Safe to call when not installed.
func (i *Interceptor) Uninstall() {
	if i.remove != nil {
		i.remove()
		i.remove = nil
	}
}

// Last returns the completion channel of the most recent OpenFor call, or nil.
func (i *Interceptor) Last() <-chan struct{} {
	return i.last
}

func (i *Interceptor) handle(ev *dom.Event) {
	input := ev.Target.Closest(dom.FileInput())
	if input == nil || input.Closest(dom.ByClass(crop.ScopeClass)) == nil {
		return
	}
	if accept, _ := input.Attr("accept"); accept == "" {
		input.SetAttr("accept", DefaultAccept)
	}
	if len(input.Files()) == 0 {
		return
	}
	log.Debugf("picker: %d file(s) chosen, opening crop session", len(input.Files()))
	i.last = i.opener.OpenFor(input)
}
