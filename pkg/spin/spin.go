// Package spin animates a click-triggered rotation: an eased multi-turn spin
// followed by a damped wobble that settles back on the resting angle. Each run
// spins the opposite way to the previous one.
package spin

import (
	"math/rand/v2"
	"time"

	"github.com/ouaf/widgets/pkg/frame"
	"github.com/ouaf/widgets/pkg/timing"
	"github.com/ouaf/widgets/util/log"
)

// Rotator is anything that can display a rotation in degrees.
type Rotator interface {
	SetRotation(deg float64)
}

// Phase is the position of an element in the animation cycle.
type Phase int

// Animation phases.
const (
	Idle Phase = iota
	Spinning
	Settling
)

func (p Phase) String() string {
	switch p {
	case Spinning:
		return "spinning"
	case Settling:
		return "settling"
	default:
		return "idle"
	}
}

// State is the per-element animation state.
type State struct {
	Direction int // +1 or -1
	Spinning  bool
	Phase     Phase
	Turns     int // turns of the current or last run
}

// Options tunes the animation.
type Options struct {
	SpinDuration    time.Duration `yaml:"spin_duration"`
	SettleDuration  time.Duration `yaml:"settle_duration"`
	BaseAngle       float64       `yaml:"base_angle"`       // Resting angle in degrees
	SettleAmplitude float64       `yaml:"settle_amplitude"` // Wobble amplitude in degrees
	MinTurns        int           `yaml:"min_turns"`
	MaxTurns        int           `yaml:"max_turns"`

	// Turns picks the number of full turns for a run. Defaults to a uniform
	// draw in [MinTurns, MaxTurns].
	Turns func() int `yaml:"-"`
	// OnIdle is called when a run has settled.
	OnIdle func(target Rotator, st State) `yaml:"-"`
}

// DefaultOptions returns the standard animation parameters.
func DefaultOptions() Options {
	return Options{
		SpinDuration:    1500 * time.Millisecond,
		SettleDuration:  900 * time.Millisecond,
		BaseAngle:       -5,
		SettleAmplitude: 20,
		MinTurns:        3,
		MaxTurns:        5,
	}
}

// Controller owns the spin state of every element it has animated. It must be
// used from the scheduler's goroutine.
type Controller struct {
	sched  frame.Scheduler
	opts   Options
	states map[Rotator]*State
}

// NewController creates a controller driving frames through sched.
func NewController(sched frame.Scheduler, opts Options) *Controller {
	if opts.MaxTurns < opts.MinTurns {
		opts.MaxTurns = opts.MinTurns
	}
	if opts.Turns == nil {
		lo, hi := opts.MinTurns, opts.MaxTurns
		opts.Turns = func() int { return lo + rand.IntN(hi-lo+1) }
	}
	return &Controller{
		sched:  sched,
		opts:   opts,
		states: make(map[Rotator]*State),
	}
}

// State returns a copy of the target's state, initialising it on first use.
func (c *Controller) State(target Rotator) State {
	return *c.state(target)
}

func (c *Controller) state(target Rotator) *State {
	st, ok := c.states[target]
	if !ok {
		st = &State{Direction: 1}
		c.states[target] = st
	}
	return st
}

// Activate starts a run on target. It returns false, changing nothing, while a
// run is already in progress. Runs cannot be cancelled.
func (c *Controller) Activate(target Rotator) bool {
	st := c.state(target)
	if st.Spinning {
		return false
	}
	st.Spinning = true
	st.Phase = Spinning
	st.Turns = c.opts.Turns()

	r := &run{
		c:      c,
		target: target,
		state:  st,
		dir:    float64(st.Direction),
		turns:  float64(st.Turns),
		start:  c.sched.Now(),
	}
	log.Debugf("spin: %d turns, direction %d", st.Turns, st.Direction)
	c.sched.RequestFrame(r.spinFrame)
	return true
}

// run is one activation; its frame methods form the phase chain.
type run struct {
	c      *Controller
	target Rotator
	state  *State
	dir    float64
	turns  float64
	start  time.Time
}

func (r *run) spinFrame(now time.Time) {
	o := r.c.opts
	progress := timing.Progress(float64(now.Sub(r.start)), float64(o.SpinDuration))
	r.target.SetRotation(o.BaseAngle + r.dir*timing.Ease(progress)*360*r.turns)

	if progress < 1 {
		r.c.sched.RequestFrame(r.spinFrame)
		return
	}
	r.state.Phase = Settling
	r.start = r.c.sched.Now()
	r.c.sched.RequestFrame(r.settleFrame)
}

func (r *run) settleFrame(now time.Time) {
	o := r.c.opts
	t := timing.Progress(float64(now.Sub(r.start)), float64(o.SettleDuration))

	if t < 1 {
		r.target.SetRotation(o.BaseAngle + timing.Damp(t)*o.SettleAmplitude*r.dir)
		r.c.sched.RequestFrame(r.settleFrame)
		return
	}
	r.target.SetRotation(o.BaseAngle)
	r.state.Spinning = false
	r.state.Phase = Idle
	r.state.Direction = -r.state.Direction
	if o.OnIdle != nil {
		o.OnIdle(r.target, *r.state)
	}
}
