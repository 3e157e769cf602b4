// Package evdevsrc reads raw kernel input events from an evdev device
// and translates them into the core's event.Event vocabulary. The
// device-discovery logic is adapted from the old global-hotkey
// listener's keyboard auto-detection.
package evdevsrc

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	evdev "github.com/holoplot/go-evdev"

	"github.com/Danondso/xremap-core/internal/event"
)

// Source reads one evdev device and emits translated Events.
type Source struct {
	dev  *evdev.InputDevice
	name string
	path string
}

// Open opens devicePath, or auto-detects a keyboard-capable device
// under /dev/input/event* when devicePath is empty.
func Open(devicePath string) (*Source, error) {
	dev, path, err := findKeyboard(devicePath)
	if err != nil {
		return nil, err
	}
	name, _ := dev.Name()
	return &Source{dev: dev, name: name, path: path}, nil
}

// findKeyboard opens a specific device path, or auto-detects a
// keyboard by scanning /dev/input/event* for devices that support
// letter keys (KEY_A through KEY_Z), distinguishing real keyboards
// from power buttons and pointer devices.
func findKeyboard(devicePath string) (*evdev.InputDevice, string, error) {
	if devicePath != "" {
		dev, err := evdev.Open(devicePath)
		if err != nil {
			return nil, "", fmt.Errorf("open device %s: %w", devicePath, err)
		}
		return dev, devicePath, nil
	}

	matches, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, "", fmt.Errorf("glob /dev/input/event*: %w", err)
	}

	sort.Slice(matches, func(i, j int) bool {
		ni, _ := strconv.Atoi(strings.TrimPrefix(matches[i], "/dev/input/event"))
		nj, _ := strconv.Atoi(strings.TrimPrefix(matches[j], "/dev/input/event"))
		return ni < nj
	})

	for _, path := range matches {
		dev, err := evdev.Open(path)
		if err != nil {
			continue
		}
		if isKeyboard(dev) {
			return dev, path, nil
		}
		_ = dev.Close()
	}

	return nil, "", fmt.Errorf("no keyboard device found in /dev/input/event*")
}

func isKeyboard(dev *evdev.InputDevice) bool {
	for _, evType := range dev.CapableTypes() {
		if evType == evdev.EV_REL {
			return false
		}
	}
	keys := dev.CapableEvents(evdev.EV_KEY)
	hasA, hasZ := false, false
	for _, code := range keys {
		if code == 30 {
			hasA = true
		}
		if code == 44 {
			hasZ = true
		}
	}
	return hasA && hasZ
}

// Device reports this source's event.Device identity.
func (s *Source) Device() event.Device {
	return event.Device{Name: s.name, Path: s.path}
}

// Run reads events until ctx is cancelled or the device closes,
// calling onEvent for each translated key or relative-motion event.
// Each EV_SYN report is surfaced as an event.KindOther, which lets the
// handler flush the motion batch of that report; other kernel event
// types are dropped.
func (s *Source) Run(ctx context.Context, onEvent func(event.Event)) error {
	errCh := make(chan error, 1)

	go func() {
		for {
			ev, err := s.dev.ReadOne()
			if err != nil {
				errCh <- err
				return
			}
			switch ev.Type {
			case evdev.EV_KEY:
				onEvent(event.Key(s.Device(), uint16(ev.Code), event.Value(ev.Value)))
			case evdev.EV_REL:
				onEvent(event.Relative(s.Device(), uint16(ev.Code), int32(ev.Value)))
			case evdev.EV_SYN:
				onEvent(event.Event{Kind: event.KindOther, Device: s.Device()})
			}
		}
	}()

	select {
	case <-ctx.Done():
		_ = s.dev.Close()
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Close releases the underlying device.
func (s *Source) Close() error {
	return s.dev.Close()
}
