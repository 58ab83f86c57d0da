package frame

import (
	"context"
	"sync"
	"time"
)

// Manual is a Scheduler with a virtual clock. Nothing runs until the owner calls
// Flush or Step, which makes frame sequences reproducible.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	tasks  []func()
	frames []FrameFunc
	posted chan struct{}
}

// NewManual creates a Manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start, posted: make(chan struct{}, 1)}
}

// Now implements Scheduler.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// RequestFrame implements Scheduler.
func (m *Manual) RequestFrame(fn FrameFunc) {
	m.mu.Lock()
	m.frames = append(m.frames, fn)
	m.mu.Unlock()
}

// Post implements Scheduler.
func (m *Manual) Post(fn func()) {
	m.mu.Lock()
	m.tasks = append(m.tasks, fn)
	m.mu.Unlock()
	select {
	case m.posted <- struct{}{}:
	default:
	}
}

// PendingFrames returns the number of frame callbacks waiting for the next Step.
func (m *Manual) PendingFrames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.frames)
}

// Flush runs queued tasks, including tasks queued by those tasks.
func (m *Manual) Flush() {
	for {
		m.mu.Lock()
		tasks := m.tasks
		m.tasks = nil
		m.mu.Unlock()
		if len(tasks) == 0 {
			return
		}
		for _, task := range tasks {
			task()
		}
	}
}

// Step advances the clock by d and runs one frame: every callback requested
// before the call, all with the same timestamp.
func (m *Manual) Step(d time.Duration) {
	m.Flush()
	m.mu.Lock()
	m.now = m.now.Add(d)
	now := m.now
	frames := m.frames
	m.frames = nil
	m.mu.Unlock()

	for _, fn := range frames {
		fn(now)
	}
	m.Flush()
}

// Advance steps frames of length d until no frame is pending or limit frames ran.
// It returns the number of frames run.
func (m *Manual) Advance(d time.Duration, limit int) int {
	n := 0
	for n < limit && m.PendingFrames() > 0 {
		m.Step(d)
		n++
	}
	return n
}

// Await flushes posted tasks until done is closed or timeout elapses. Work
// completing on other goroutines is picked up as it is posted. It reports
// whether done closed in time.
func (m *Manual) Await(done <-chan struct{}, timeout time.Duration) bool {
	return m.AwaitContext(context.Background(), done, timeout)
}

// AwaitContext is Await that also gives up as soon as ctx is done.
func (m *Manual) AwaitContext(ctx context.Context, done <-chan struct{}, timeout time.Duration) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		m.Flush()
		select {
		case <-done:
			return true
		default:
		}
		select {
		case <-done:
			return true
		case <-m.posted:
		case <-deadline.C:
			return false
		case <-ctx.Done():
			return false
		}
	}
}
