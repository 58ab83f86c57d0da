// Package frame provides the single-threaded event loop the widgets run on.
//
// Every widget mutation happens on the scheduler's goroutine. Work finished on
// other goroutines comes back through Post; animations chain through RequestFrame
// the same way a page chains animation frames.
package frame

import "time"

// FrameFunc is invoked once with the timestamp of the frame it runs in.
type FrameFunc func(now time.Time)

// Scheduler drives tasks and animation frames on one logical thread.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time
	// RequestFrame schedules fn for the next frame. Callbacks requested from
	// inside a frame run in the following one.
	RequestFrame(fn FrameFunc)
	// Post queues fn to run on the scheduler's goroutine. Safe from any goroutine.
	Post(fn func())
}
