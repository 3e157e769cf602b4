// Package event defines the typed inbound/outbound vocabulary the
// handler operates on: kernel-sourced Events in, synthetic Actions out.
package event

import "time"

// Kind tags the variant carried by an Event.
type Kind int

const (
	KindKey Kind = iota
	KindRelative
	KindOther
)

// Value is the EV_KEY value space: release, press, or autorepeat.
type Value int

const (
	Release Value = 0
	Press   Value = 1
	Repeat  Value = 2
)

// Device identifies the kernel input device an Event originated from.
type Device struct {
	Name string
	Path string
}

// Event is a tagged inbound value: a key event, a relative-motion
// event, or an Other event the core ignores and the caller forwards
// untouched.
type Event struct {
	Kind   Kind
	Device Device

	// Key fields, valid when Kind == KindKey.
	Code  uint16
	Value Value

	// Relative fields, valid when Kind == KindRelative.
	Axis  uint16
	Delta int32
}

// Key builds a KindKey event.
func Key(dev Device, code uint16, value Value) Event {
	return Event{Kind: KindKey, Device: dev, Code: code, Value: value}
}

// Relative builds a KindRelative event.
func Relative(dev Device, axis uint16, delta int32) Event {
	return Event{Kind: KindRelative, Device: dev, Axis: axis, Delta: delta}
}

// ActionKind tags the variant carried by an Action.
type ActionKind int

const (
	ActionKey ActionKind = iota
	ActionDelay
	ActionMotionBatch
	ActionSetTimeout
	ActionOverrideTimeout
	ActionLaunch
)

// Rel is one relative-motion sample inside a MotionBatch.
type Rel struct {
	Axis  uint16
	Delta int32
}

// Action is a tagged outbound value produced by the handler.
type Action struct {
	Kind ActionKind

	// ActionKey fields.
	Code  uint16
	Value Value

	// ActionDelay / ActionSetTimeout / ActionOverrideTimeout.
	Duration time.Duration

	// ActionMotionBatch.
	Motion []Rel

	// ActionLaunch.
	Command []string
}

// KeyAction builds a single key press or release action.
func KeyAction(code uint16, value Value) Action {
	return Action{Kind: ActionKey, Code: code, Value: value}
}

// Delay builds a syn-boundary hint, zero duration unless stated otherwise.
func Delay(d time.Duration) Action {
	return Action{Kind: ActionDelay, Duration: d}
}

// MotionBatch builds an atomic group of relative-motion samples.
func MotionBatch(rel []Rel) Action {
	return Action{Kind: ActionMotionBatch, Motion: rel}
}

// SetTimeout builds a scheduling hint for a deferred modifier restoration.
func SetTimeout(d time.Duration) Action {
	return Action{Kind: ActionSetTimeout, Duration: d}
}

// OverrideTimeout replaces a previously scheduled timeout.
func OverrideTimeout(d time.Duration) Action {
	return Action{Kind: ActionOverrideTimeout, Duration: d}
}

// Launch builds an opaque command-launch action; the core never
// interprets cmd, only carries it to whatever sink chooses to exec it.
func Launch(cmd []string) Action {
	return Action{Kind: ActionLaunch, Command: cmd}
}
