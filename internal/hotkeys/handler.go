// Package hotkeys binds global X11 key sequences to focus navigation.
package hotkeys

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/1broseidon/spatialnav/internal/input"
	"github.com/1broseidon/spatialnav/internal/platform"
	"github.com/1broseidon/spatialnav/internal/spatial"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Navigator receives the actions triggered by hotkeys.
type Navigator interface {
	Navigate(dir spatial.Direction) bool
	Reset()
}

// Bindings maps key sequences such as "Mod4-Up" to actions.
type Bindings struct {
	Directions map[spatial.Direction]string
	// Reset is optional.
	Reset string
	// Throttle drops direction presses arriving closer together than this.
	Throttle time.Duration
}

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu   *xgbutil.XUtil
	root xproto.Window
	nav  Navigator
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler. The backend must expose X11
// internals.
func NewHandler(backend platform.Backend, nav Navigator) (*Handler, error) {
	accessor, ok := backend.(x11Accessor)
	if !ok {
		return nil, fmt.Errorf("backend %T does not support global hotkeys", backend)
	}
	xu := accessor.XUtil()

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Handler{
		xu:   xu,
		root: accessor.RootWindow(),
		nav:  nav,
	}, nil
}

// Register grabs every key sequence in b. On error, keys registered so far
// stay grabbed; call Unregister to release them.
func (h *Handler) Register(b Bindings) error {
	for _, a := range actions(h.nav, b) {
		if err := h.RegisterFunc(a.keys, a.fn); err != nil {
			return fmt.Errorf("failed to register %s hotkey %q: %w", a.name, a.keys, err)
		}
		log.Printf("Registered %s hotkey: %s", a.name, a.keys)
	}
	return nil
}

// Unregister releases every key grabbed on the root window.
func (h *Handler) Unregister() {
	keybind.Detach(h.xu, h.root)
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

type action struct {
	name string
	keys string
	fn   func()
}

// actions builds the callbacks for b in a stable order. All directions share
// one throttle so alternating keys are limited together.
func actions(nav Navigator, b Bindings) []action {
	navigate := input.Throttle(nav.Navigate, b.Throttle)

	var out []action
	for _, dir := range spatial.Directions() {
		keys, ok := b.Directions[dir]
		if !ok || keys == "" {
			continue
		}
		out = append(out, action{
			name: dir.String(),
			keys: keys,
			fn:   func() { navigate(dir) },
		})
	}
	if b.Reset != "" {
		out = append(out, action{name: "reset", keys: b.Reset, fn: nav.Reset})
	}
	return out
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	xevent.IgnoreMods = ignoreMasks(caps, numLock, scrollLock)
}

// ignoreMasks returns every combination of the given lock modifiers,
// including none.
func ignoreMasks(caps, numLock, scrollLock uint16) []uint16 {
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	ignore := make([]uint16, 0, 1<<len(base))
	for subset := 0; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		ignore = append(ignore, mask)
	}
	return ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
