// Package submap tracks the runtime sub-map context a matched rule's
// nested remap: block installs. Unlike keymap.SubmapTable (the static,
// built rule data), Context is the live "what's active right now"
// cursor the handler consults first on every key press. Only a
// non-modifier key with no rule in the sub-map clears it.
package submap

import "github.com/Danondso/xremap-core/internal/keymap"

// Context holds at most one active sub-map. It is owned exclusively
// by the handler; not safe for concurrent use.
type Context struct {
	active *keymap.SubmapTable
}

// New returns an empty (top-level) Context.
func New() *Context {
	return &Context{}
}

// Active returns the installed sub-map, or nil if none is active.
func (c *Context) Active() *keymap.SubmapTable {
	return c.active
}

// IsActive reports whether a sub-map is currently installed.
func (c *Context) IsActive() bool {
	return c.active != nil
}

// Install silently installs sm as the active sub-map, replacing any
// previously active one. Re-entry only happens through its parent
// trigger matching again (spec §4.5) — Install is never called except
// as the side effect of a successful top-level or submap match.
func (c *Context) Install(sm *keymap.SubmapTable) {
	c.active = sm
}

// Clear falls back to top-level: called when the active sub-map has
// no rule matching the next key, or its timeout expires.
func (c *Context) Clear() {
	c.active = nil
}
