package crop

import (
	"regexp"
	"strings"
)

// Format is the encoding chosen for a cropped artifact.
type Format struct {
	MIME    string
	Ext     string
	Quality float64
}

var extPattern = regexp.MustCompile(`\.[^.]+$`)

// FormatFor picks PNG when the source type mentions png, JPEG otherwise. The
// quality factor is carried for both even though PNG ignores it.
func FormatFor(srcType string, t Tuning) Format {
	if strings.Contains(strings.ToLower(srcType), "png") {
		return Format{MIME: MimePNG, Ext: "png", Quality: t.PNGQuality}
	}
	return Format{MIME: MimeJPEG, Ext: "jpg", Quality: t.JPEGQuality}
}

// DerivedName builds "<base>-cropped.<ext>" where base is name without its
// last extension, or "image" when nothing is left.
func DerivedName(name, ext string) string {
	base := extPattern.ReplaceAllString(name, "")
	if base == "" {
		base = "image"
	}
	return base + "-cropped." + ext
}
