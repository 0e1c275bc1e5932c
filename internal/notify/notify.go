// Package notify implements transient on-screen messages ("toasts").
//
// Every message lives on a fixed timeline measured from the moment it is
// shown: it slides in, stays for the visible duration, then slides out for
// the exit duration and is removed. The service keeps the timeline of every
// live message in a list and evaluates it against an injected clock, so the
// host only needs to call Prune (or Active) when its scheduler fires.
package notify

import (
	"time"
)

// Severity tags a message for styling. It has no behavioral effect.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Phase is the lifecycle stage of a message at a given instant.
type Phase int

const (
	PhaseEntering Phase = iota
	PhaseVisible
	PhaseLeaving
	PhaseRemoved
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseEntering:
		return "entering"
	case PhaseVisible:
		return "visible"
	case PhaseLeaving:
		return "leaving"
	case PhaseRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

const (
	DefaultVisible = 3000 * time.Millisecond
	DefaultExit    = 300 * time.Millisecond
	// EntranceDuration matches the slide-in transition.
	EntranceDuration = 300 * time.Millisecond
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Notification is one scheduled message.
type Notification struct {
	ID        int
	Text      string
	Severity  Severity
	CreatedAt time.Time
	ExpiresAt time.Time // exit transition starts
	RemoveAt  time.Time // message is gone
}

// Phase returns the lifecycle stage of n at now.
func (n Notification) Phase(now time.Time) Phase {
	switch {
	case !now.Before(n.RemoveAt):
		return PhaseRemoved
	case !now.Before(n.ExpiresAt):
		return PhaseLeaving
	case now.Before(n.CreatedAt.Add(EntranceDuration)):
		return PhaseEntering
	default:
		return PhaseVisible
	}
}

// Config holds the timeline durations and the optional cap.
// MaxVisible of zero leaves the number of concurrent messages unbounded.
type Config struct {
	Visible    time.Duration
	Exit       time.Duration
	MaxVisible int
}

// DefaultConfig returns the standard 3000 ms + 300 ms timeline, uncapped.
func DefaultConfig() Config {
	return Config{Visible: DefaultVisible, Exit: DefaultExit}
}

// Service owns the list of live messages. It is not safe for concurrent use;
// all calls are expected from the UI event loop.
type Service struct {
	cfg    Config
	clock  Clock
	items  []Notification
	nextID int
}

// NewService creates a service. Zero durations take the defaults and a nil
// clock means the wall clock.
func NewService(cfg Config, clock Clock) *Service {
	if cfg.Visible <= 0 {
		cfg.Visible = DefaultVisible
	}
	if cfg.Exit <= 0 {
		cfg.Exit = DefaultExit
	}
	if cfg.MaxVisible < 0 {
		cfg.MaxVisible = 0
	}
	if clock == nil {
		clock = SystemClock
	}
	return &Service{cfg: cfg, clock: clock}
}

// ShowMessage schedules a message and returns it. Each call is independent;
// messages are never merged. When a cap is configured the oldest live
// messages are evicted to make room.
func (s *Service) ShowMessage(text string, severity Severity) Notification {
	if severity == "" {
		severity = SeverityInfo
	}

	s.Prune()
	if s.cfg.MaxVisible > 0 {
		for len(s.items) >= s.cfg.MaxVisible {
			s.items = s.items[1:]
		}
	}

	now := s.clock.Now()
	s.nextID++
	n := Notification{
		ID:        s.nextID,
		Text:      text,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.Visible),
		RemoveAt:  now.Add(s.cfg.Visible + s.cfg.Exit),
	}
	s.items = append(s.items, n)
	return n
}

// Notify is ShowMessage without a return value.
func (s *Service) Notify(text string, severity Severity) {
	s.ShowMessage(text, severity)
}

// Cancel removes a message immediately. It reports whether it was live.
func (s *Service) Cancel(id int) bool {
	for i, n := range s.items {
		if n.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Prune drops every message whose timeline has ended and returns how many
// were removed.
func (s *Service) Prune() int {
	now := s.clock.Now()
	kept := s.items[:0]
	for _, n := range s.items {
		if n.Phase(now) != PhaseRemoved {
			kept = append(kept, n)
		}
	}
	removed := len(s.items) - len(kept)
	s.items = kept
	return removed
}

// Active prunes and returns a copy of the live messages, oldest first.
func (s *Service) Active() []Notification {
	s.Prune()
	out := make([]Notification, len(s.items))
	copy(out, s.items)
	return out
}

// Visible returns a copy of the messages still on screen at the current
// time, oldest first. Unlike Active it leaves the list untouched.
func (s *Service) Visible() []Notification {
	now := s.clock.Now()
	out := make([]Notification, 0, len(s.items))
	for _, n := range s.items {
		if n.Phase(now) != PhaseRemoved {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the number of messages not yet pruned.
func (s *Service) Len() int {
	return len(s.items)
}

// NextDeadline returns the earliest upcoming phase change among live
// messages, or false when there are none.
func (s *Service) NextDeadline() (time.Time, bool) {
	now := s.clock.Now()
	var next time.Time
	found := false
	for _, n := range s.items {
		var at time.Time
		switch n.Phase(now) {
		case PhaseEntering:
			at = n.CreatedAt.Add(EntranceDuration)
		case PhaseVisible:
			at = n.ExpiresAt
		case PhaseLeaving:
			at = n.RemoveAt
		default:
			continue
		}
		if !found || at.Before(next) {
			next = at
			found = true
		}
	}
	return next, found
}
