package event

import "testing"

func TestKeyBuildsKindKey(t *testing.T) {
	dev := Device{Name: "kbd", Path: "/dev/input/event3"}
	e := Key(dev, 30, Press)
	if e.Kind != KindKey || e.Code != 30 || e.Value != Press || e.Device != dev {
		t.Errorf("unexpected event %+v", e)
	}
}

func TestRelativeBuildsKindRelative(t *testing.T) {
	dev := Device{Name: "mouse", Path: "/dev/input/event4"}
	e := Relative(dev, RelX, -3)
	if e.Kind != KindRelative || e.Axis != RelX || e.Delta != -3 {
		t.Errorf("unexpected event %+v", e)
	}
}

func TestKeyActionAndLaunch(t *testing.T) {
	a := KeyAction(30, Release)
	if a.Kind != ActionKey || a.Code != 30 || a.Value != Release {
		t.Errorf("unexpected action %+v", a)
	}

	l := Launch([]string{"rofi", "-show", "drun"})
	if l.Kind != ActionLaunch || len(l.Command) != 3 || l.Command[0] != "rofi" {
		t.Errorf("unexpected launch action %+v", l)
	}
}

func TestMotionBatchCarriesSamples(t *testing.T) {
	rel := []Rel{{Axis: RelX, Delta: 1}, {Axis: RelX, Delta: 1}}
	a := MotionBatch(rel)
	if a.Kind != ActionMotionBatch || len(a.Motion) != 2 {
		t.Errorf("unexpected action %+v", a)
	}
}
