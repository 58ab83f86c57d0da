package crop

import (
	"strings"

	"github.com/disintegration/imaging"
)

// Tuning holds the encoding and framing constants. Values load from YAML so
// they can be adjusted without a rebuild.
type Tuning struct {
	JPEGQuality float64    `yaml:"jpeg_quality"` // Default: 0.92
	PNGQuality  float64    `yaml:"png_quality"`  // Default: 0.96 (carried, unused by PNG)
	Resample    string     `yaml:"resample"`     // Default: lanczos
	Face        FaceTuning `yaml:"face"`
}

// FaceTuning configures pigo face detection.
type FaceTuning struct {
	MinSizePct   int     `yaml:"min_size_pct"`  // Default: 1 (1% of min dim)
	ShiftFactor  float64 `yaml:"shift_factor"`  // Default: 0.1 (Stride)
	ScaleFactor  float64 `yaml:"scale_factor"`  // Default: 1.1
	IoUThreshold float64 `yaml:"iou_threshold"` // Default: 0.2 (Clustering)
	MinQuality   float32 `yaml:"min_quality"`   // Default: 10.0 (Base filter)
	MaxEdge      int     `yaml:"max_edge"`      // Default: 640 (Detection runs on a thumbnail)
}

// DefaultTuning returns the standard values.
func DefaultTuning() Tuning {
	return Tuning{
		JPEGQuality: DefaultJPEGQuality,
		PNGQuality:  DefaultPNGQuality,
		Resample:    "lanczos",
		Face: FaceTuning{
			MinSizePct:   1,
			ShiftFactor:  0.1,
			ScaleFactor:  1.1,
			IoUThreshold: 0.2,
			MinQuality:   10.0,
			MaxEdge:      640,
		},
	}
}

// ResampleFilter maps a filter name to an imaging filter, Lanczos when unknown.
func ResampleFilter(name string) imaging.ResampleFilter {
	switch strings.ToLower(name) {
	case "nearest":
		return imaging.NearestNeighbor
	case "box":
		return imaging.Box
	case "linear":
		return imaging.Linear
	case "catmullrom":
		return imaging.CatmullRom
	default:
		return imaging.Lanczos
	}
}
