package crop

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
	"github.com/muesli/smartcrop"
)

// Framer picks the point the initial selection of a given size centres on.
type Framer interface {
	Focus(img image.Image, size image.Point) (image.Point, bool)
}

// CenterFramer centres on the middle of the image.
type CenterFramer struct{}

// Focus implements Framer.
func (CenterFramer) Focus(img image.Image, _ image.Point) (image.Point, bool) {
	b := img.Bounds()
	return image.Pt(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2), true
}

// ChainFramer asks each framer in turn and uses the first answer.
type ChainFramer []Framer

// Focus implements Framer.
func (c ChainFramer) Focus(img image.Image, size image.Point) (image.Point, bool) {
	for _, f := range c {
		if f == nil {
			continue
		}
		if p, ok := f.Focus(img, size); ok {
			return p, true
		}
	}
	return image.Point{}, false
}

// SmartFramer centres on the most interesting region found by smartcrop.
type SmartFramer struct {
	analyzer smartcrop.Analyzer
}

// NewSmartFramer creates a SmartFramer resizing with filter.
func NewSmartFramer(filter imaging.ResampleFilter) *SmartFramer {
	return &SmartFramer{analyzer: smartcrop.NewAnalyzer(&resizer{resampler: filter})}
}

// Focus implements Framer.
func (f *SmartFramer) Focus(img image.Image, size image.Point) (image.Point, bool) {
	if size.X <= 0 || size.Y <= 0 {
		return image.Point{}, false
	}
	best, err := f.analyzer.FindBestCrop(img, size.X, size.Y)
	if err != nil || best.Empty() {
		return image.Point{}, false
	}
	return image.Pt(best.Min.X+best.Dx()/2, best.Min.Y+best.Dy()/2), true
}

// resizer implements the smartcrop resizer with imaging.
type resizer struct {
	resampler imaging.ResampleFilter
}

func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}

// FaceFramer centres on faces found by a pigo cascade.
type FaceFramer struct {
	classifier *pigo.Pigo
	tuning     FaceTuning
}

// NewFaceFramer unpacks a pigo facefinder cascade.
func NewFaceFramer(cascade []byte, t FaceTuning) (*FaceFramer, error) {
	if len(cascade) < 16 {
		return nil, fmt.Errorf("unpacking face cascade: %d bytes is too short", len(cascade))
	}
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("unpacking face cascade: %w", err)
	}
	return &FaceFramer{classifier: classifier, tuning: t}, nil
}

// LoadFaceFramer reads a cascade file and unpacks it.
func LoadFaceFramer(path string, t FaceTuning) (*FaceFramer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading face cascade: %w", err)
	}
	return NewFaceFramer(data, t)
}

// Focus implements Framer. Faces are weighted by their size.
func (f *FaceFramer) Focus(img image.Image, _ image.Point) (image.Point, bool) {
	b := img.Bounds()
	if b.Empty() {
		return image.Point{}, false
	}

	thumb := imaging.Clone(img)
	scale := 1.0
	if f.tuning.MaxEdge > 0 && (b.Dx() > f.tuning.MaxEdge || b.Dy() > f.tuning.MaxEdge) {
		thumb = imaging.Fit(img, f.tuning.MaxEdge, f.tuning.MaxEdge, imaging.Linear)
		scale = float64(b.Dx()) / float64(thumb.Bounds().Dx())
	}
	cols, rows := thumb.Bounds().Dx(), thumb.Bounds().Dy()

	minSize := min(cols, rows) * f.tuning.MinSizePct / 100
	if minSize < 20 {
		minSize = 20
	}
	params := pigo.CascadeParams{
		MinSize:     minSize,
		MaxSize:     max(cols, rows),
		ShiftFactor: f.tuning.ShiftFactor,
		ScaleFactor: f.tuning.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(thumb),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}
	dets := f.classifier.RunCascade(params, 0.0)
	dets = f.classifier.ClusterDetections(dets, f.tuning.IoUThreshold)

	var sx, sy, weight float64
	for _, d := range dets {
		if d.Q < f.tuning.MinQuality {
			continue
		}
		w := float64(d.Scale)
		sx += float64(d.Col) * w
		sy += float64(d.Row) * w
		weight += w
	}
	if weight == 0 {
		return image.Point{}, false
	}
	return image.Pt(
		b.Min.X+int(sx/weight*scale),
		b.Min.Y+int(sy/weight*scale),
	), true
}
