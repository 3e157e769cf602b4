package wmclient

import (
	"fmt"
	"log"
	"sync"

	"github.com/godbus/dbus/v5"
)

// KDEClient queries KWin's scripting D-Bus interface for the active
// window, adapted from the KWin-script-plugin approach of the
// upstream KDE client (org.kde.KWin / org.kde.kwin.Scripting): rather
// than loading a companion KWin script, it asks KWin over the session
// bus for one field of the active window per query, trading
// the original's push notifications for pull-on-demand — acceptable
// since the match engine only ever asks "what's active right now".
type KDEClient struct {
	logger *log.Logger

	mu        sync.Mutex
	conn      *dbus.Conn
	supported bool
}

// NewKDEClient connects to the session bus and probes for KWin's
// scripting interface. A connection or probe failure is logged and
// results in an unsupported client rather than a returned error — per
// spec §7, window-manager unavailability is ClientUnavailable, not a
// config error.
func NewKDEClient(logger *log.Logger) *KDEClient {
	c := &KDEClient{logger: logger}
	conn, err := dbus.SessionBusPrivate()
	if err != nil {
		logger.Printf("wmclient: session bus unavailable: %v", err)
		return c
	}
	if err := conn.Auth(nil); err != nil {
		logger.Printf("wmclient: session bus auth failed: %v", err)
		_ = conn.Close()
		return c
	}
	if err := conn.Hello(); err != nil {
		logger.Printf("wmclient: session bus hello failed: %v", err)
		_ = conn.Close()
		return c
	}
	c.conn = conn

	obj := conn.Object("org.kde.KWin", dbus.ObjectPath("/Scripting"))
	var loaded bool
	if err := obj.Call("org.kde.kwin.Scripting.isScriptLoaded", 0, "xremap-core").Store(&loaded); err != nil {
		logger.Printf("wmclient: KWin scripting interface not available: %v", err)
		return c
	}
	c.supported = true
	return c
}

// Supported reports whether a KWin scripting connection was established.
func (c *KDEClient) Supported() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.supported
}

// CurrentApplication queries the active window's resource class
// (KWin's analogue of an application id).
func (c *KDEClient) CurrentApplication() (string, bool) {
	return c.activeWindowField("resourceClass")
}

// CurrentWindow queries the active window's caption (title bar text).
func (c *KDEClient) CurrentWindow() (string, bool) {
	return c.activeWindowField("caption")
}

func (c *KDEClient) activeWindowField(field string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.supported || c.conn == nil {
		return "", false
	}
	obj := c.conn.Object("org.kde.KWin", dbus.ObjectPath("/KWin"))
	var value string
	call := obj.Call(fmt.Sprintf("org.kde.KWin.activeWindow%s", capitalize(field)), 0)
	if call.Err != nil {
		c.logger.Printf("wmclient: query %s failed: %v", field, call.Err)
		return "", false
	}
	if err := call.Store(&value); err != nil {
		return "", false
	}
	return value, true
}

// Close releases the session bus connection.
func (c *KDEClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
		c.supported = false
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
