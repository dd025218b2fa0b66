package ui

import (
	"sync"
	"time"
)

const defaultNoticeTTL = 5 * time.Second

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

type Notice struct {
	Severity Severity
	Message  string
}

// Notifier is a single-slot transient notification. A new notice replaces
// the current one immediately; there is no queue. Notices expire after the
// TTL or on explicit dismissal.
type Notifier struct {
	mu      sync.Mutex
	current *Notice
	timer   *time.Timer
	seq     uint64
	ttl     time.Duration
}

func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = defaultNoticeTTL
	}
	return &Notifier{ttl: ttl}
}

func (n *Notifier) Show(sev Severity, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	seq := n.seq
	n.current = &Notice{Severity: sev, Message: message}
	n.timer = time.AfterFunc(n.ttl, func() {
		n.expire(seq)
	})
}

// expire clears the slot only if the notice it was armed for is still the
// one on display.
func (n *Notifier) expire(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.seq != seq {
		return
	}
	n.current = nil
}

func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	n.current = nil
}

// Current returns a copy of the visible notice, or nil.
func (n *Notifier) Current() *Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil
	}
	copied := *n.current
	return &copied
}
