package crop

import (
	"math"
	"strconv"
	"strings"

	"github.com/ouaf/widgets/pkg/dom"
)

// SessionConfig is the resolved framing for one crop session.
type SessionConfig struct {
	AspectRatio  float64
	OutputWidth  int
	OutputHeight int
}

// ScopeOf returns the crop scope governing el: its nearest ancestor marked with
// ScopeClass, or its parent when there is none.
func ScopeOf(el *dom.Element) *dom.Element {
	if scope := el.Closest(dom.ByClass(ScopeClass)); scope != nil {
		return scope
	}
	return el.Parent()
}

// Resolve reads the aspect and size attributes from scope, then el, then the
// defaults. Malformed or non-positive parts fall back field by field; it never
// fails.
func Resolve(el, scope *dom.Element) SessionConfig {
	aspect := strings.TrimSpace(firstAttr(AspectAttr, DefaultAspect, scope, el))
	size := strings.TrimSpace(firstAttr(SizeAttr, DefaultSize, scope, el))

	cfg := SessionConfig{
		AspectRatio:  DefaultAspectRatio,
		OutputWidth:  DefaultOutputWidth,
		OutputHeight: DefaultOutputHeight,
	}

	parts := strings.Split(aspect, "/")
	if len(parts) >= 2 {
		w, okW := parsePositiveFloat(parts[0])
		h, okH := parsePositiveFloat(parts[1])
		if ratio := w / h; okW && okH && ratio > 0 && !math.IsInf(ratio, 0) {
			cfg.AspectRatio = ratio
		}
	}

	parts = strings.Split(size, "x")
	if w, ok := parsePositiveInt(parts[0]); ok {
		cfg.OutputWidth = w
	}
	if len(parts) >= 2 {
		if h, ok := parsePositiveInt(parts[1]); ok {
			cfg.OutputHeight = h
		}
	}
	return cfg
}

// firstAttr returns the first non-empty value of name among els.
func firstAttr(name, fallback string, els ...*dom.Element) string {
	for _, el := range els {
		if el == nil {
			continue
		}
		if v, ok := el.Attr(name); ok && v != "" {
			return v
		}
	}
	return fallback
}

func parsePositiveFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

// parsePositiveInt accepts any numeric notation of a whole positive number,
// so "400", "400.0" and "4e2" are all 400.
func parsePositiveInt(s string) (int, bool) {
	v, ok := parsePositiveFloat(s)
	if !ok || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}
