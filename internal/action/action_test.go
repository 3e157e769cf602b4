package action

import (
	"testing"

	"github.com/Danondso/xremap-core/internal/event"
	"github.com/Danondso/xremap-core/internal/keymap"
	"github.com/Danondso/xremap-core/internal/modifier"
)

func chord(t *testing.T, s string) keymap.Chord {
	t.Helper()
	c, err := keymap.ParseChord(s)
	if err != nil {
		t.Fatalf("ParseChord(%q): %v", s, err)
	}
	return c
}

// TestChordNoModifiersIsJustATap covers the plain "a" -> "b" case: no
// modifiers involved, just a press/release of the mapped key followed
// by the two Delay(0) boundaries every chord carries.
func TestChordNoModifiersIsJustATap(t *testing.T) {
	held := modifier.NewState()
	gen := NewGenerator()
	out := gen.Generate([]keymap.Step{{Kind: keymap.StepChord, Chord: chord(t, "b")}}, held)

	want := []event.Action{
		event.KeyAction(chord(t, "b").Key, event.Press),
		event.KeyAction(chord(t, "b").Key, event.Release),
		event.Delay(0),
		event.Delay(0),
	}
	assertActionsEqual(t, out, want)
}

// TestChordPressesRequiredModifierAlreadyHeld covers C-j -> C-t: the output needs
// Control and Control is already held (from the trigger itself), so
// nothing extra is pressed or released.
func TestChordPressesRequiredModifierAlreadyHeld(t *testing.T) {
	held := modifier.NewState()
	held.Press(modifier.CodeLeftCtrl)

	gen := NewGenerator()
	out := gen.Generate([]keymap.Step{{Kind: keymap.StepChord, Chord: chord(t, "C-t")}}, held)

	tKey := chord(t, "t").Key
	want := []event.Action{
		event.KeyAction(tKey, event.Press),
		event.KeyAction(tKey, event.Release),
		event.Delay(0),
		event.Delay(0),
	}
	assertActionsEqual(t, out, want)
}

// TestChordReleasesUnwantedHeldModifier reproduces the spec §8 dance:
// Shift is held (unrelated to the output chord), gets released before
// the tap and re-pressed after, bracketed by Delay(0).
func TestChordReleasesUnwantedHeldModifier(t *testing.T) {
	held := modifier.NewState()
	held.Press(modifier.CodeLeftShift)

	gen := NewGenerator()
	out := gen.Generate([]keymap.Step{{Kind: keymap.StepChord, Chord: chord(t, "a")}}, held)

	aKey := chord(t, "a").Key
	want := []event.Action{
		event.KeyAction(modifier.CodeLeftShift, event.Release),
		event.KeyAction(aKey, event.Press),
		event.KeyAction(aKey, event.Release),
		event.Delay(0),
		event.KeyAction(modifier.CodeLeftShift, event.Press),
		event.Delay(0),
	}
	assertActionsEqual(t, out, want)
}

// TestChordPressesAndReleasesNewModifier covers win_l-shift_r -> C-v:
// Control isn't held, so it's pressed before the tap and released
// after; no unwanted modifier was held so there's nothing to restore.
func TestChordPressesAndReleasesNewModifier(t *testing.T) {
	held := modifier.NewState()

	gen := NewGenerator()
	out := gen.Generate([]keymap.Step{{Kind: keymap.StepChord, Chord: chord(t, "C-v")}}, held)

	vKey := chord(t, "v").Key
	want := []event.Action{
		event.KeyAction(modifier.CodeLeftCtrl, event.Press),
		event.KeyAction(vKey, event.Press),
		event.KeyAction(vKey, event.Release),
		event.Delay(0),
		event.Delay(0),
		event.KeyAction(modifier.CodeLeftCtrl, event.Release),
	}
	assertActionsEqual(t, out, want)
}

// TestChordMixesPressAndReleaseOfDifferentModifiers: Shift held but
// unwanted, Control needed but not held.
func TestChordMixesPressAndReleaseOfDifferentModifiers(t *testing.T) {
	held := modifier.NewState()
	held.Press(modifier.CodeLeftShift)

	gen := NewGenerator()
	out := gen.Generate([]keymap.Step{{Kind: keymap.StepChord, Chord: chord(t, "C-v")}}, held)

	vKey := chord(t, "v").Key
	want := []event.Action{
		event.KeyAction(modifier.CodeLeftCtrl, event.Press),
		event.KeyAction(modifier.CodeLeftShift, event.Release),
		event.KeyAction(vKey, event.Press),
		event.KeyAction(vKey, event.Release),
		event.Delay(0),
		event.KeyAction(modifier.CodeLeftShift, event.Press),
		event.Delay(0),
		event.KeyAction(modifier.CodeLeftCtrl, event.Release),
	}
	assertActionsEqual(t, out, want)
}

// TestChordToReleaseIsDeterministicallySorted ensures the to_release
// set (order unspecified from modifier.State.HeldCodes) is emitted in
// ascending scancode order, not map-iteration order.
func TestChordToReleaseIsDeterministicallySorted(t *testing.T) {
	held := modifier.NewState()
	held.Press(modifier.CodeRightShift) // 54
	held.Press(modifier.CodeLeftAlt)    // 56

	gen := NewGenerator()
	var out []event.Action
	for i := 0; i < 10; i++ {
		out = gen.Generate([]keymap.Step{{Kind: keymap.StepChord, Chord: chord(t, "a")}}, held)
		releases := []uint16{out[0].Code, out[1].Code}
		if releases[0] != modifier.CodeRightShift || releases[1] != modifier.CodeLeftAlt {
			t.Fatalf("iteration %d: expected sorted release order [54 56], got %v", i, releases)
		}
	}
}

func TestGenerateLaunchStep(t *testing.T) {
	held := modifier.NewState()
	gen := NewGenerator()
	out := gen.Generate([]keymap.Step{{Kind: keymap.StepLaunch, Launch: []string{"rofi", "-show", "drun"}}}, held)
	if len(out) != 1 || out[0].Kind != event.ActionLaunch {
		t.Fatalf("expected a single ActionLaunch, got %+v", out)
	}
	if len(out[0].Command) != 3 || out[0].Command[0] != "rofi" {
		t.Errorf("unexpected launch command %v", out[0].Command)
	}
}

func TestGenerateMultipleStepsConcatenates(t *testing.T) {
	held := modifier.NewState()
	gen := NewGenerator()
	out := gen.Generate([]keymap.Step{
		{Kind: keymap.StepChord, Chord: chord(t, "a")},
		{Kind: keymap.StepChord, Chord: chord(t, "b")},
	}, held)
	// Each chord step emits its own press/release/Delay(0) x2; two
	// steps concatenate to double that length.
	if len(out) != 8 {
		t.Fatalf("expected 8 actions across two chord steps, got %d", len(out))
	}
}

func assertActionsEqual(t *testing.T, got, want []event.Action) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d actions, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i].Kind != want[i].Kind || got[i].Code != want[i].Code || got[i].Value != want[i].Value {
			t.Errorf("action %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}
