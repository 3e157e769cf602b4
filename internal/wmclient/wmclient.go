// Package wmclient queries the desktop's window manager for the
// active application and window title, feeding the match engine's
// application/window predicates (spec §4.3a). Supported
// implementations are opt-in and degrade to ClientUnavailable (ok ==
// false) rather than erroring, mirroring the Rust client trait this
// is adapted from.
package wmclient

// Client is the capability surface match.Capability expects. It's
// defined here (rather than imported from internal/match) so adapters
// in this package don't need to import the match package at all —
// the interfaces are structurally identical by convention.
type Client interface {
	Supported() bool
	CurrentApplication() (name string, ok bool)
	CurrentWindow() (name string, ok bool)
}

// Static is a fixed Client useful for tests and for headless sessions
// where no window manager integration is available. With Available
// false (the zero value) Supported reports false and every query
// returns ok=false; with Available true it reports the fixed
// Application and Window values.
type Static struct {
	Application string
	Window      string
	Available   bool
}

func (s Static) Supported() bool { return s.Available }

func (s Static) CurrentApplication() (string, bool) {
	if !s.Available {
		return "", false
	}
	return s.Application, true
}

func (s Static) CurrentWindow() (string, bool) {
	if !s.Available {
		return "", false
	}
	return s.Window, true
}
