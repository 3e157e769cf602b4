// Package motion coalesces consecutive unmatched relative-motion
// events into a single atomic action, so the sink never has to emit
// an EV_SYN boundary in the middle of one continuous cursor or scroll
// gesture (spec §5.3).
package motion

import "github.com/Danondso/xremap-core/internal/event"

// Batcher accumulates relative samples between key events.
type Batcher struct {
	pending []event.Rel
}

// NewBatcher returns an empty Batcher.
func NewBatcher() *Batcher {
	return &Batcher{}
}

// Add appends one relative sample to the pending batch.
func (b *Batcher) Add(axis uint16, delta int32) {
	b.pending = append(b.pending, event.Rel{Axis: axis, Delta: delta})
}

// Pending reports whether any samples are waiting to be flushed.
func (b *Batcher) Pending() bool {
	return len(b.pending) > 0
}

// Flush emits the pending batch as a single MotionBatch action and
// resets. Returns nil if nothing was pending.
func (b *Batcher) Flush() []event.Action {
	if len(b.pending) == 0 {
		return nil
	}
	out := []event.Action{event.MotionBatch(b.pending)}
	b.pending = nil
	return out
}
