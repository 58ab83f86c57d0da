package crop

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// ErrSurfaceDestroyed is returned by a surface used after Destroy.
var ErrSurfaceDestroyed = errors.New("editing surface destroyed")

// SurfaceOptions configures an editing surface.
type SurfaceOptions struct {
	AspectRatio  float64
	ViewMode     int     // 0 lets the selection leave the image, 1 keeps it inside
	AutoCropArea float64 // Share of the largest fitting selection used initially, (0, 1]
	Background   bool    // Fill baked areas outside the image with white instead of transparency
	Movable      bool
	Zoomable     bool
}

// Surface is the interactive selection over a decoded image.
type Surface interface {
	// Selection returns the selected region in image coordinates.
	Selection() image.Rectangle
	// Move pans the selection.
	Move(dx, dy int)
	// Zoom scales the image under a fixed selection; factors above one select less.
	Zoom(factor float64)
	// Bake renders the selection into a new image of exactly width x height.
	Bake(width, height int) (image.Image, error)
	// Destroy releases the surface.
	Destroy()
}

// SurfaceFactory builds a surface for a decoded image.
type SurfaceFactory func(img image.Image, opts SurfaceOptions) (Surface, error)

// NewSurfaceFactory returns a factory placing the initial selection with framer
// and resizing with filter.
func NewSurfaceFactory(framer Framer, filter imaging.ResampleFilter) SurfaceFactory {
	return func(img image.Image, opts SurfaceOptions) (Surface, error) {
		return NewSurface(img, opts, framer, filter)
	}
}

type imagingSurface struct {
	img       image.Image
	opts      SurfaceOptions
	filter    imaging.ResampleFilter
	sel       image.Rectangle
	destroyed bool
}

// NewSurface creates an imaging-backed surface. A nil framer centres the
// initial selection.
func NewSurface(img image.Image, opts SurfaceOptions, framer Framer, filter imaging.ResampleFilter) (Surface, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("creating surface: empty image")
	}
	if opts.AspectRatio <= 0 || math.IsInf(opts.AspectRatio, 0) || math.IsNaN(opts.AspectRatio) {
		return nil, fmt.Errorf("creating surface: invalid aspect ratio %v", opts.AspectRatio)
	}
	if opts.AutoCropArea <= 0 || opts.AutoCropArea > 1 {
		opts.AutoCropArea = 1
	}
	if framer == nil {
		framer = CenterFramer{}
	}

	s := &imagingSurface{img: img, opts: opts, filter: filter}
	size := fitAspect(img.Bounds().Size(), opts.AspectRatio)
	if opts.AutoCropArea < 1 {
		size = scaleSize(size, math.Sqrt(opts.AutoCropArea), opts.AspectRatio)
	}

	focus, ok := framer.Focus(img, size)
	if !ok {
		focus, _ = CenterFramer{}.Focus(img, size)
	}
	s.sel = s.clamp(centerOn(focus, size))
	return s, nil
}

func (s *imagingSurface) Selection() image.Rectangle {
	return s.sel
}

func (s *imagingSurface) Move(dx, dy int) {
	if s.destroyed || !s.opts.Movable {
		return
	}
	s.sel = s.clamp(s.sel.Add(image.Pt(dx, dy)))
}

func (s *imagingSurface) Zoom(factor float64) {
	if s.destroyed || !s.opts.Zoomable || factor <= 0 || math.IsInf(factor, 0) || math.IsNaN(factor) {
		return
	}
	size := scaleSize(s.sel.Size(), 1/factor, s.opts.AspectRatio)
	if s.opts.ViewMode >= 1 {
		limit := fitAspect(s.img.Bounds().Size(), s.opts.AspectRatio)
		if size.X > limit.X || size.Y > limit.Y {
			size = limit
		}
	}
	c := image.Pt(s.sel.Min.X+s.sel.Dx()/2, s.sel.Min.Y+s.sel.Dy()/2)
	s.sel = s.clamp(centerOn(c, size))
}

func (s *imagingSurface) Bake(width, height int) (image.Image, error) {
	if s.destroyed {
		return nil, ErrSurfaceDestroyed
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("baking selection: invalid size %dx%d", width, height)
	}

	bounds := s.img.Bounds()
	inside := s.sel.Intersect(bounds)
	var region image.Image
	if inside == s.sel {
		region = imaging.Crop(s.img, s.sel)
	} else {
		fill := color.Color(color.Transparent)
		if s.opts.Background {
			fill = color.White
		}
		canvas := imaging.New(s.sel.Dx(), s.sel.Dy(), fill)
		if !inside.Empty() {
			canvas = imaging.Paste(canvas, imaging.Crop(s.img, inside), inside.Min.Sub(s.sel.Min))
		}
		region = canvas
	}
	return imaging.Resize(region, width, height, s.filter), nil
}

func (s *imagingSurface) Destroy() {
	s.destroyed = true
	s.img = nil
}

// clamp keeps r inside the image when the view mode requires it.
func (s *imagingSurface) clamp(r image.Rectangle) image.Rectangle {
	if s.opts.ViewMode < 1 {
		return r
	}
	b := s.img.Bounds()
	if r.Max.X > b.Max.X {
		r = r.Sub(image.Pt(r.Max.X-b.Max.X, 0))
	}
	if r.Max.Y > b.Max.Y {
		r = r.Sub(image.Pt(0, r.Max.Y-b.Max.Y))
	}
	if r.Min.X < b.Min.X {
		r = r.Add(image.Pt(b.Min.X-r.Min.X, 0))
	}
	if r.Min.Y < b.Min.Y {
		r = r.Add(image.Pt(0, b.Min.Y-r.Min.Y))
	}
	return r
}

// fitAspect returns the largest size of the given ratio fitting in bounds.
func fitAspect(bounds image.Point, ratio float64) image.Point {
	if float64(bounds.X)/float64(bounds.Y) > ratio {
		return image.Pt(max(1, int(math.Round(float64(bounds.Y)*ratio))), bounds.Y)
	}
	return image.Pt(bounds.X, max(1, int(math.Round(float64(bounds.X)/ratio))))
}

// scaleSize scales size by k, recomputing the height from the ratio.
func scaleSize(size image.Point, k, ratio float64) image.Point {
	w := max(1, int(math.Round(float64(size.X)*k)))
	h := max(1, int(math.Round(float64(w)/ratio)))
	return image.Pt(w, h)
}

func centerOn(c, size image.Point) image.Rectangle {
	origin := c.Sub(image.Pt(size.X/2, size.Y/2))
	return image.Rectangle{Min: origin, Max: origin.Add(size)}
}
