package submap

import (
	"testing"

	"github.com/Danondso/xremap-core/internal/keymap"
)

func TestNewContextStartsInactive(t *testing.T) {
	c := New()
	if c.IsActive() {
		t.Error("expected a fresh context to be inactive")
	}
	if c.Active() != nil {
		t.Error("expected Active() to be nil")
	}
}

func TestInstallActivates(t *testing.T) {
	c := New()
	sm := &keymap.SubmapTable{}
	c.Install(sm)
	if !c.IsActive() {
		t.Error("expected the context to be active after Install")
	}
	if c.Active() != sm {
		t.Error("expected Active() to return the installed sub-map")
	}
}

func TestClearDeactivates(t *testing.T) {
	c := New()
	c.Install(&keymap.SubmapTable{})
	c.Clear()
	if c.IsActive() {
		t.Error("expected Clear to deactivate the context")
	}
	if c.Active() != nil {
		t.Error("expected Active() to be nil after Clear")
	}
}

func TestInstallReplacesPreviousSubmap(t *testing.T) {
	c := New()
	first := &keymap.SubmapTable{}
	second := &keymap.SubmapTable{}
	c.Install(first)
	c.Install(second)
	if c.Active() != second {
		t.Error("expected the most recent Install to win")
	}
}
