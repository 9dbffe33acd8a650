// ABOUTME: Playback handle for one in-flight playback
// ABOUTME: Tracks the idle -> playing -> ended lifecycle and completion error
package playback

import (
	"sync"
	"time"
)

// State is the lifecycle position of a playback
type State int

const (
	StateIdle State = iota
	StatePlaying
	StateEnded
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Handle represents one in-flight playback
type Handle struct {
	duration time.Duration
	done     chan struct{}

	mu        sync.Mutex
	state     State
	err       error
	startedAt time.Time
	endedAt   time.Time
}

func newHandle(duration time.Duration) *Handle {
	return &Handle{
		duration: duration,
		done:     make(chan struct{}),
		state:    StateIdle,
	}
}

// Done is closed when playback has ended
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until playback ends and returns why it ended early, if it did
func (h *Handle) Wait() error {
	<-h.done
	return h.Err()
}

// Err returns the completion error; nil while playing or after a natural end
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// State returns the current lifecycle state
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Duration returns the length of the scheduled audio
func (h *Handle) Duration() time.Duration {
	return h.duration
}

// Elapsed returns how long the playback has been running
func (h *Handle) Elapsed() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.state {
	case StatePlaying:
		return time.Since(h.startedAt)
	case StateEnded:
		return h.endedAt.Sub(h.startedAt)
	default:
		return 0
	}
}

func (h *Handle) start() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = StatePlaying
	h.startedAt = time.Now()
}

func (h *Handle) finish(err error) {
	h.mu.Lock()
	if h.state == StateEnded {
		h.mu.Unlock()
		return
	}
	if h.startedAt.IsZero() {
		h.startedAt = time.Now()
	}
	h.state = StateEnded
	h.err = err
	h.endedAt = time.Now()
	h.mu.Unlock()

	close(h.done)
}
