package event

import "testing"

func TestDisguiseCodeRoundTrip(t *testing.T) {
	axes := []uint16{RelX, RelY, RelWheel, RelHWheel, RelWheelHiRes, RelHWheelHiRes}
	for _, axis := range axes {
		for _, delta := range []int32{1, -1} {
			code, ok := DisguiseCode(axis, delta)
			if !ok {
				t.Fatalf("DisguiseCode(%d, %d): expected ok", axis, delta)
			}
			gotAxis, sign, ok := UndisguiseCode(code)
			if !ok {
				t.Fatalf("UndisguiseCode(%d): expected ok", code)
			}
			if gotAxis != axis {
				t.Errorf("expected axis %d, got %d", axis, gotAxis)
			}
			wantSign := int32(1)
			if delta < 0 {
				wantSign = -1
			}
			if sign != wantSign {
				t.Errorf("expected sign %d, got %d", wantSign, sign)
			}
		}
	}
}

func TestDisguiseCodeUnknownAxis(t *testing.T) {
	if _, ok := DisguiseCode(0xff, 1); ok {
		t.Error("expected an unrecognized axis to not disguise")
	}
}

func TestDisguiseCodeDistinctPerAxisAndSign(t *testing.T) {
	seen := map[uint16]bool{}
	for _, axis := range []uint16{RelX, RelY, RelZ, RelRX, RelRY, RelRZ, RelHWheel, RelDial, RelWheel, RelMisc, RelReserved, RelWheelHiRes, RelHWheelHiRes} {
		for _, delta := range []int32{1, -1} {
			code, ok := DisguiseCode(axis, delta)
			if !ok {
				t.Fatalf("expected axis %d to disguise", axis)
			}
			if seen[code] {
				t.Fatalf("disguise code %d collides across axes/signs", code)
			}
			seen[code] = true
		}
	}
}

func TestIsDisguisedBounds(t *testing.T) {
	code, _ := DisguiseCode(RelX, 1)
	if !IsDisguised(code) {
		t.Error("expected a disguise code to report IsDisguised")
	}
	if IsDisguised(DisguiseOffset - 1) {
		t.Error("expected the code just below the offset to not be disguised")
	}
	if IsDisguised(DisguiseOffset + 26) {
		t.Error("expected the code just past the 26-slot range to not be disguised")
	}
}

func TestUndisguiseCodeRejectsOrdinaryKey(t *testing.T) {
	if _, _, ok := UndisguiseCode(30); ok {
		t.Error("expected an ordinary scancode to not undisguise")
	}
}
