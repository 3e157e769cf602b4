package motion

import (
	"testing"

	"github.com/Danondso/xremap-core/internal/event"
)

func TestNewBatcherStartsEmpty(t *testing.T) {
	b := NewBatcher()
	if b.Pending() {
		t.Error("expected a fresh batcher to have nothing pending")
	}
	if b.Flush() != nil {
		t.Error("expected Flush on an empty batcher to return nil")
	}
}

func TestAddAccumulatesPending(t *testing.T) {
	b := NewBatcher()
	b.Add(event.RelX, 1)
	b.Add(event.RelX, 1)
	if !b.Pending() {
		t.Error("expected Pending to be true after Add")
	}
}

func TestFlushReturnsOneMotionBatchAction(t *testing.T) {
	b := NewBatcher()
	b.Add(event.RelX, 2)
	b.Add(event.RelY, -1)

	actions := b.Flush()
	if len(actions) != 1 {
		t.Fatalf("expected exactly 1 action (one MotionBatch), got %d", len(actions))
	}
	if actions[0].Kind != event.ActionMotionBatch {
		t.Fatalf("expected ActionMotionBatch, got %v", actions[0].Kind)
	}
	if len(actions[0].Motion) != 2 {
		t.Fatalf("expected 2 coalesced samples, got %d", len(actions[0].Motion))
	}
}

func TestFlushResetsPendingState(t *testing.T) {
	b := NewBatcher()
	b.Add(event.RelX, 1)
	b.Flush()
	if b.Pending() {
		t.Error("expected Pending to be false after Flush")
	}
	if b.Flush() != nil {
		t.Error("expected a second Flush to return nil")
	}
}
