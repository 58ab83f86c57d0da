package spin

import (
	"math"
	"testing"
	"time"

	"github.com/ouaf/widgets/pkg/dom"
	"github.com/ouaf/widgets/pkg/frame"
	"github.com/ouaf/widgets/pkg/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

const frameStep = 16 * time.Millisecond

// recorder captures every applied angle.
type recorder struct {
	angles []float64
}

func (r *recorder) SetRotation(deg float64) {
	r.angles = append(r.angles, deg)
}

func (r *recorder) last() float64 {
	return r.angles[len(r.angles)-1]
}

func newController(turns int) (*Controller, *frame.Manual) {
	sched := frame.NewManual(epoch)
	opts := DefaultOptions()
	opts.Turns = func() int { return turns }
	return NewController(sched, opts), sched
}

func TestController_FullRun(t *testing.T) {
	c, sched := newController(4)
	target := &recorder{}

	assert.Equal(t, State{Direction: 1}, c.State(target))
	require.True(t, c.Activate(target))

	st := c.State(target)
	assert.True(t, st.Spinning)
	assert.Equal(t, Spinning, st.Phase)
	assert.Equal(t, 4, st.Turns)

	frames := sched.Advance(frameStep, 1000)
	assert.Greater(t, frames, 2)

	st = c.State(target)
	assert.False(t, st.Spinning)
	assert.Equal(t, Idle, st.Phase)
	assert.Equal(t, -1, st.Direction)
	assert.Equal(t, -5.0, target.last(), "final angle is exactly the base offset")
	assert.Equal(t, 0, sched.PendingFrames())
}

func TestController_SpinPhaseAngles(t *testing.T) {
	c, sched := newController(3)
	target := &recorder{}
	c.Activate(target)

	sched.Step(750 * time.Millisecond)
	require.Len(t, target.angles, 1)
	assert.InDelta(t, -5+0.5*360*3, target.angles[0], 1e-9)

	sched.Step(750 * time.Millisecond)
	assert.InDelta(t, -5+360*3, target.last(), 1e-9)
	assert.Equal(t, Settling, c.State(target).Phase)

	// Settling starts from the moment the spin completed.
	sched.Step(225 * time.Millisecond)
	assert.InDelta(t, -5+timing.Damp(0.25)*20, target.last(), 1e-9)

	sched.Step(675 * time.Millisecond)
	assert.Equal(t, -5.0, target.last())
	assert.False(t, c.State(target).Spinning)
}

func TestController_SpinAnglesIncreaseMonotonically(t *testing.T) {
	c, sched := newController(5)
	target := &recorder{}
	c.Activate(target)

	for c.State(target).Phase == Spinning {
		sched.Step(frameStep)
	}
	spin := target.angles[:len(target.angles)-1]
	for i := 1; i < len(spin); i++ {
		assert.GreaterOrEqual(t, spin[i], spin[i-1])
	}
}

func TestController_SettleStaysWithinEnvelope(t *testing.T) {
	c, sched := newController(3)
	target := &recorder{}
	c.Activate(target)
	for c.State(target).Phase == Spinning {
		sched.Step(frameStep)
	}
	before := len(target.angles)
	sched.Advance(frameStep, 1000)

	for _, a := range target.angles[before:] {
		assert.LessOrEqual(t, math.Abs(a-(-5)), 20.0)
	}
}

func TestController_DirectionAlternates(t *testing.T) {
	c, sched := newController(3)
	target := &recorder{}

	c.Activate(target)
	sched.Step(750 * time.Millisecond)
	assert.Greater(t, target.last(), -5.0, "first run spins forward")
	sched.Advance(frameStep, 1000)
	assert.Equal(t, -1, c.State(target).Direction)

	c.Activate(target)
	sched.Step(750 * time.Millisecond)
	assert.Less(t, target.last(), -5.0, "second run spins backward")
	sched.Advance(frameStep, 1000)
	assert.Equal(t, 1, c.State(target).Direction)
}

func TestController_ClickWhileSpinningIsIgnored(t *testing.T) {
	c, sched := newController(3)
	target := &recorder{}

	require.True(t, c.Activate(target))
	sched.Step(frameStep)
	before := c.State(target)
	pending := sched.PendingFrames()

	assert.False(t, c.Activate(target))
	assert.Equal(t, before, c.State(target))
	assert.Equal(t, pending, sched.PendingFrames(), "no second frame chain")
}

func TestController_ElementsAreIndependent(t *testing.T) {
	c, sched := newController(3)
	a, b := &recorder{}, &recorder{}

	c.Activate(a)
	sched.Step(500 * time.Millisecond)
	c.Activate(b)
	sched.Advance(frameStep, 1000)

	assert.Equal(t, -1, c.State(a).Direction)
	assert.Equal(t, -1, c.State(b).Direction)
	assert.Equal(t, -5.0, a.last())
	assert.Equal(t, -5.0, b.last())
}

func TestController_DefaultTurnsInRange(t *testing.T) {
	c := NewController(frame.NewManual(epoch), DefaultOptions())
	for i := 0; i < 200; i++ {
		n := c.opts.Turns()
		assert.GreaterOrEqual(t, n, 3)
		assert.LessOrEqual(t, n, 5)
	}
}

func TestController_OnIdle(t *testing.T) {
	sched := frame.NewManual(epoch)
	opts := DefaultOptions()
	opts.Turns = func() int { return 3 }
	var settled []State
	opts.OnIdle = func(_ Rotator, st State) { settled = append(settled, st) }
	c := NewController(sched, opts)

	c.Activate(&recorder{})
	sched.Advance(frameStep, 1000)

	require.Len(t, settled, 1)
	assert.Equal(t, -1, settled[0].Direction)
	assert.False(t, settled[0].Spinning)
}

func TestBind(t *testing.T) {
	doc := dom.NewDocument()
	team := doc.Body.AppendChild(doc.CreateElement("section"))
	wrapper := team.AppendChild(doc.CreateElement("div")).AddClass(TriggerClass)
	img := wrapper.AppendChild(doc.CreateElement("img")).AddClass(TargetClass)
	team.AppendChild(doc.CreateElement("div")).AddClass(TriggerClass) // no target

	c, sched := newController(3)
	n, unbind := Bind(doc, c)
	assert.Equal(t, 1, n)

	wrapper.Click()
	assert.True(t, c.State(img).Spinning)
	img.Click() // bubbles to the wrapper, ignored while spinning
	sched.Advance(frameStep, 1000)

	assert.Equal(t, -5.0, img.Rotation())
	assert.Equal(t, -1, c.State(img).Direction)

	unbind()
	wrapper.Click()
	assert.False(t, c.State(img).Spinning)
}
