package frame

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

// Loop is a real-time Scheduler. Tasks run as soon as they are posted; frame
// callbacks run in batches paced by a rate limiter.
type Loop struct {
	limiter *rate.Limiter
	clock   func() time.Time

	mu     sync.Mutex
	tasks  []func()
	frames []FrameFunc
	wake   chan struct{}
}

// NewLoop creates a loop that renders at most fps frames per second.
func NewLoop(fps int) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{
		limiter: rate.NewLimiter(rate.Every(time.Second/time.Duration(fps)), 1),
		clock:   time.Now,
		wake:    make(chan struct{}, 1),
	}
}

// Now implements Scheduler.
func (l *Loop) Now() time.Time {
	return l.clock()
}

// RequestFrame implements Scheduler.
func (l *Loop) RequestFrame(fn FrameFunc) {
	l.mu.Lock()
	l.frames = append(l.frames, fn)
	l.mu.Unlock()
	l.signal()
}

// Post implements Scheduler.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	l.signal()
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Idle reports whether no task or frame is pending.
func (l *Loop) Idle() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks) == 0 && len(l.frames) == 0
}

// Run processes tasks and frames until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.mu.Lock()
		tasks := l.tasks
		l.tasks = nil
		pendingFrames := len(l.frames) > 0
		l.mu.Unlock()

		for _, task := range tasks {
			task()
		}

		if pendingFrames {
			if err := l.limiter.Wait(ctx); err != nil {
				return err
			}
			l.mu.Lock()
			frames := l.frames
			l.frames = nil
			l.mu.Unlock()

			now := l.Now()
			for _, fn := range frames {
				fn(now)
			}
			continue
		}

		if len(tasks) > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}
