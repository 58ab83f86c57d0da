// Package crop intercepts picked images, lets the user frame them at a fixed
// aspect ratio and swaps the picked file for a re-encoded crop.
//
// A Pipeline owns at most one Session at a time. All methods must run on the
// goroutine of the frame.Scheduler the pipeline was built with; decoding and
// encoding happen on helper goroutines that post their results back.
package crop

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/ouaf/widgets/pkg/dom"
	"github.com/ouaf/widgets/pkg/frame"
	"github.com/ouaf/widgets/util"
	"github.com/ouaf/widgets/util/log"
)

// Options configures a Pipeline. Zero fields take defaults.
type Options struct {
	Surfaces SurfaceFactory
	Encoder  Encoder
	Tuning   Tuning
	// OnStall is called when an encode yields nothing. The session stays open.
	OnStall func(s *Session, err error)
}

// Session is the single in-flight crop interaction.
type Session struct {
	ID     string
	Input  *dom.Element
	Scope  *dom.Element
	Config SessionConfig

	source   *dom.File
	url      string
	surface  Surface
	encoding bool
	ctx      context.Context
	cancel   context.CancelFunc
}

// Surface returns the session's editing surface, nil until the image decoded.
func (s *Session) Surface() Surface {
	return s.surface
}

// Source returns the picked file being cropped.
func (s *Session) Source() *dom.File {
	return s.source
}

// Encoding reports whether an encode is in flight.
func (s *Session) Encoding() bool {
	return s.encoding
}

// Pipeline runs crop sessions for a document.
type Pipeline struct {
	doc     *dom.Document
	sched   frame.Scheduler
	opts    Options
	modal   *dom.Element
	session *Session
	live    *util.SafeCounter
}

// NewPipeline creates a pipeline for doc.
func NewPipeline(doc *dom.Document, sched frame.Scheduler, opts Options) *Pipeline {
	if opts.Tuning == (Tuning{}) {
		opts.Tuning = DefaultTuning()
	}
	if opts.Surfaces == nil {
		opts.Surfaces = NewSurfaceFactory(CenterFramer{}, ResampleFilter(opts.Tuning.Resample))
	}
	if opts.Encoder == nil {
		opts.Encoder = ImageEncoder{}
	}
	return &Pipeline{
		doc:   doc,
		sched: sched,
		opts:  opts,
		live:  util.NewSafeInt(),
	}
}

// Session returns the active session or nil.
func (p *Pipeline) Session() *Session {
	return p.session
}

// Active reports whether a session is open.
func (p *Pipeline) Active() bool {
	return p.session != nil
}

// LiveSurfaces returns the number of editing surfaces not yet destroyed.
func (p *Pipeline) LiveSurfaces() int {
	return p.live.Value()
}

// OpenFor starts a session for the first file of input. Inputs without an
// image file are ignored. Any current session is torn down first. The returned
// channel closes once the decode step has been handled.
func (p *Pipeline) OpenFor(input *dom.Element) <-chan struct{} {
	done := make(chan struct{})
	files := input.Files()
	if len(files) == 0 || !strings.HasPrefix(files[0].Type, "image/") {
		close(done)
		return done
	}

	p.teardown()

	file := files[0]
	scope := ScopeOf(input)
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:     uuid.NewString(),
		Input:  input,
		Scope:  scope,
		Config: Resolve(input, scope),
		source: file,
		ctx:    ctx,
		cancel: cancel,
	}

	dlg := p.ensureModal()
	s.url = p.doc.CreateObjectURL(file)
	p.modalTarget(dlg).SetAttr("src", s.url)
	p.session = s
	showModal(dlg)
	log.Debugf("crop: session %s opened for %q (%+v)", s.ID, file.Name, s.Config)

	go func() {
		img, err := Decode(ctx, file.Data, file.Type)
		p.sched.Post(func() {
			defer close(done)
			if p.session != s {
				return
			}
			if err != nil {
				log.Printf("crop: session %s: %v", s.ID, err)
				return
			}
			p.destroySurface(s)
			surface, err := p.opts.Surfaces(img, SurfaceOptions{
				AspectRatio:  s.Config.AspectRatio,
				ViewMode:     1,
				AutoCropArea: 1,
				Background:   false,
				Movable:      true,
				Zoomable:     true,
			})
			if err != nil {
				log.Printf("crop: session %s: %v", s.ID, err)
				return
			}
			s.surface = surface
			p.live.Increment()
		})
	}()
	return done
}

// Confirm bakes the selection at the configured output size, encodes it and,
// on success, installs the result as the input's only file and closes the
// session. It is a no-op without a ready session or while an encode is in
// flight. The returned channel closes once the encode result has been handled.
func (p *Pipeline) Confirm() <-chan struct{} {
	done := make(chan struct{})
	s := p.session
	if s == nil || s.surface == nil || s.encoding {
		close(done)
		return done
	}

	format := FormatFor(s.source.Type, p.opts.Tuning)
	baked, err := s.surface.Bake(s.Config.OutputWidth, s.Config.OutputHeight)
	if err != nil {
		log.Printf("crop: session %s: %v", s.ID, err)
		close(done)
		return done
	}

	s.encoding = true
	go func() {
		data, err := p.opts.Encoder.Encode(s.ctx, baked, format.MIME, format.Quality)
		p.sched.Post(func() {
			defer close(done)
			s.encoding = false
			if p.session != s {
				return
			}
			if err != nil || len(data) == 0 {
				log.Printf("crop: session %s: encode produced no result: %v", s.ID, err)
				if p.opts.OnStall != nil {
					p.opts.OnStall(s, err)
				}
				return
			}
			p.install(s, format, data)
			p.Close()
		})
	}()
	return done
}

// install replaces the input's files with the cropped artifact and refreshes
// the scope's preview.
func (p *Pipeline) install(s *Session, format Format, data []byte) {
	cropped := &dom.File{
		Name: DerivedName(s.source.Name, format.Ext),
		Type: format.MIME,
		Data: data,
	}
	s.Input.SetFiles(cropped)
	log.Debugf("crop: session %s produced %s (%d bytes)", s.ID, cropped.Name, cropped.Size())

	if s.Scope == nil {
		return
	}
	preview := s.Scope.QuerySelector(dom.ByClass(PreviewClass))
	if preview == nil {
		return
	}
	if old, ok := preview.Attr("src"); ok {
		p.doc.RevokeObjectURL(old)
	}
	preview.SetAttr("src", p.doc.CreateObjectURL(cropped))
	preview.SetHidden(false)
}

// Close cancels the session: the surface is destroyed and the dialog hidden.
// Safe to call at any time.
func (p *Pipeline) Close() {
	if p.modal != nil {
		p.modal.Close()
	}
	p.teardown()
}

// teardown releases everything the session holds.
func (p *Pipeline) teardown() {
	s := p.session
	if s == nil {
		return
	}
	s.cancel()
	p.destroySurface(s)
	if s.url != "" {
		p.doc.RevokeObjectURL(s.url)
		s.url = ""
	}
	if p.modal != nil {
		if img := p.modal.QuerySelector(dom.ByID(TargetID)); img != nil {
			img.RemoveAttr("src")
		}
	}
	s.source = nil
	p.session = nil
	log.Debugf("crop: session %s closed", s.ID)
}

func (p *Pipeline) destroySurface(s *Session) {
	if s.surface == nil {
		return
	}
	s.surface.Destroy()
	s.surface = nil
	p.live.Decrement()
}
