package event

// DisguiseOffset is added to a 0..25 axis-and-sign slot to synthesize a
// key code for a relative-motion event, so the match engine can treat
// cursor and scroll motion uniformly with ordinary keys. It must stay
// above the highest real scancode in use and leave room for all 26
// slots below u16 max.
const DisguiseOffset uint16 = 0x2e8

// relAxisSlot assigns each recognized relative axis a slot in [0,12],
// matching the evdev REL_* numbering (X, Y, Z, RX, RY, RZ, HWHEEL,
// DIAL, WHEEL, MISC, RESERVED, WHEEL_HI_RES, HWHEEL_HI_RES).
var relAxisSlot = map[uint16]uint16{
	RelX:            0,
	RelY:            1,
	RelZ:            2,
	RelRX:           3,
	RelRY:           4,
	RelRZ:           5,
	RelHWheel:       6,
	RelDial:         7,
	RelWheel:        8,
	RelMisc:         9,
	RelReserved:     10,
	RelWheelHiRes:   11,
	RelHWheelHiRes:  12,
}

// Recognized evdev EV_REL axis codes.
const (
	RelX           uint16 = 0x00
	RelY           uint16 = 0x01
	RelZ           uint16 = 0x02
	RelRX          uint16 = 0x03
	RelRY          uint16 = 0x04
	RelRZ          uint16 = 0x05
	RelHWheel      uint16 = 0x06
	RelDial        uint16 = 0x07
	RelWheel       uint16 = 0x08
	RelMisc        uint16 = 0x09
	RelReserved    uint16 = 0x0a
	RelWheelHiRes  uint16 = 0x0b
	RelHWheelHiRes uint16 = 0x0c
)

// DisguiseCode returns the synthetic key code standing in for a
// relative event on the given axis with the given sign, and whether
// the axis is recognized at all.
func DisguiseCode(axis uint16, delta int32) (code uint16, ok bool) {
	slot, ok := relAxisSlot[axis]
	if !ok {
		return 0, false
	}
	idx := slot * 2
	if delta < 0 {
		idx++
	}
	return DisguiseOffset + idx, true
}

// IsDisguised reports whether code falls in the disguised-relative range.
func IsDisguised(code uint16) bool {
	return code >= DisguiseOffset && code < DisguiseOffset+26
}

// UndisguiseCode recovers the axis and a representative sign (+1/-1)
// for a disguised code. ok is false if code isn't a disguise code.
func UndisguiseCode(code uint16) (axis uint16, sign int32, ok bool) {
	if !IsDisguised(code) {
		return 0, 0, false
	}
	idx := code - DisguiseOffset
	slot := idx / 2
	sign = 1
	if idx%2 == 1 {
		sign = -1
	}
	for axis, s := range relAxisSlot {
		if s == slot {
			return axis, sign, true
		}
	}
	return 0, 0, false
}
