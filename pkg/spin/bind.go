package spin

import (
	"github.com/ouaf/widgets/pkg/dom"
)

// Class names wiring the animation into a page.
const (
	TriggerClass = "spin_target"    // Clickable wrapper
	TargetClass  = "team__badgeDog" // Rotated element inside the wrapper
)

// Bind attaches a click listener to every trigger in doc. Clicking a trigger
// spins its target. Triggers without a target are skipped. It returns the
// number of bound triggers and a function removing the listeners.
func Bind(doc *dom.Document, c *Controller) (int, func()) {
	var removers []func()
	for _, wrapper := range doc.QuerySelectorAll(dom.ByClass(TriggerClass)) {
		target := wrapper.QuerySelector(dom.ByClass(TargetClass))
		if target == nil {
			continue
		}
		c.state(target)
		removers = append(removers, wrapper.AddEventListener(dom.EventClick, func(*dom.Event) {
			c.Activate(target)
		}))
	}
	return len(removers), func() {
		for _, remove := range removers {
			remove()
		}
	}
}
