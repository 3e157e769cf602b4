// Package uinputsink writes the core's outbound Actions to a synthetic
// /dev/uinput device, the mirror image of what internal/evdevsrc
// reads. Device creation uses golang.org/x/sys/unix's raw ioctl
// bindings directly: uinput's setup protocol (UI_SET_EVBIT,
// UI_DEV_SETUP, UI_DEV_CREATE, ...) has no higher-level wrapper in
// this module's dependency stack, the same way the upstream
// community's uinput bindings hand-roll it on top of x/sys rather
// than pull in a dedicated library.
package uinputsink

import (
	"fmt"
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/Danondso/xremap-core/internal/event"
)

const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiDevSetup   = 0x405c5503
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetRelBit  = 0x40045566

	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	synReport = 0

	uinputMaxNameSize = 80
)

type uinputSetup struct {
	id struct {
		busType uint16
		vendor  uint16
		product uint16
		version uint16
	}
	name    [uinputMaxNameSize]byte
	ffEffectsMax uint32
}

type inputEvent struct {
	sec   int64
	usec  int64
	typ   uint16
	code  uint16
	value int32
}

// Sink owns an open /dev/uinput virtual device that mirrors a real
// keyboard+mouse combo device: every key code below 0x300 (which
// covers the modifier and keycode tables) and the relative axes
// REL_X through REL_HWHEEL_HI_RES are registered so any rule's output
// can be synthesized.
type Sink struct {
	f *os.File
}

// Open creates and registers a new virtual input device named name.
func Open(name string) (*Sink, error) {
	f, err := os.OpenFile("/dev/uinput", os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open /dev/uinput: %w", err)
	}
	s := &Sink{f: f}
	if err := s.setup(name); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

func (s *Sink) ioctl(req uintptr, arg uintptr) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, s.f.Fd(), req, arg); errno != 0 {
		return errno
	}
	return nil
}

func (s *Sink) setup(name string) error {
	if err := s.ioctl(uiSetEvBit, uintptr(evKey)); err != nil {
		return fmt.Errorf("UI_SET_EVBIT EV_KEY: %w", err)
	}
	for code := 0; code < 0x300; code++ {
		_ = s.ioctl(uiSetKeyBit, uintptr(code))
	}
	if err := s.ioctl(uiSetEvBit, uintptr(evRel)); err != nil {
		return fmt.Errorf("UI_SET_EVBIT EV_REL: %w", err)
	}
	for code := 0; code <= 0x0c; code++ {
		_ = s.ioctl(uiSetRelBit, uintptr(code))
	}

	var setup uinputSetup
	copy(setup.name[:], name)
	setup.id.busType = 0x03 // BUS_USB
	setup.id.vendor = 0x1
	setup.id.product = 0x1
	setup.id.version = 1
	if err := s.ioctl(uiDevSetup, uintptr(unsafe.Pointer(&setup))); err != nil {
		return fmt.Errorf("UI_DEV_SETUP: %w", err)
	}
	if err := s.ioctl(uiDevCreate, 0); err != nil {
		return fmt.Errorf("UI_DEV_CREATE: %w", err)
	}
	// Give the kernel a moment to register the device with udev before
	// any client tries to open it by capability.
	time.Sleep(100 * time.Millisecond)
	return nil
}

func (s *Sink) write(typ, code uint16, value int32) error {
	ev := inputEvent{typ: typ, code: code, value: value}
	buf := (*[unsafe.Sizeof(inputEvent{})]byte)(unsafe.Pointer(&ev))[:]
	_, err := s.f.Write(buf)
	return err
}

func (s *Sink) syn() error {
	return s.write(evSyn, synReport, 0)
}

// Write emits one Action. ActionDelay/SetTimeout/OverrideTimeout emit
// a sync boundary (real delays are the caller's responsibility — the
// sink only needs to mark where one EV_SYN packet ends and the next
// begins). ActionLaunch is not a kernel event; callers that want
// command execution handle it before reaching the sink.
func (s *Sink) Write(a event.Action) error {
	switch a.Kind {
	case event.ActionKey:
		if err := s.write(evKey, a.Code, int32(a.Value)); err != nil {
			return err
		}
		return s.syn()
	case event.ActionDelay, event.ActionSetTimeout, event.ActionOverrideTimeout:
		return s.syn()
	case event.ActionMotionBatch:
		for _, rel := range a.Motion {
			if err := s.write(evRel, rel.Axis, rel.Delta); err != nil {
				return err
			}
		}
		return s.syn()
	case event.ActionLaunch:
		return nil
	}
	return nil
}

// Close destroys the virtual device and releases its file handle.
func (s *Sink) Close() error {
	_ = s.ioctl(uiDevDestroy, 0)
	return s.f.Close()
}
