package daemon

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/1broseidon/spatialnav/internal/focus"
	"github.com/1broseidon/spatialnav/internal/index"
	"github.com/1broseidon/spatialnav/internal/ipc"
	"github.com/1broseidon/spatialnav/internal/spatial"
)

var errReloadUnsupported = errors.New("reload is not supported by this daemon")

// Surface is a focus host whose document is re-read on demand.
type Surface interface {
	focus.Host
	Refresh() error
}

// markerHider is implemented by surfaces that can drop their marker without
// resolving the element that holds it.
type markerHider interface {
	HideMarker()
}

// NavigatorConfig holds Navigator options.
type NavigatorConfig struct {
	Rules   index.Rules
	Display string
	// Reload is invoked for the IPC RELOAD command. Nil makes reload fail.
	Reload func() error
	Logger *slog.Logger
}

// Navigator serializes requests from hotkeys, IPC and the reconciler onto a
// single focus controller.
type Navigator struct {
	mu      sync.Mutex
	surface Surface
	state   *focus.NavigationState
	ctrl    *focus.Controller
	display string
	reload  func() error
	logger  *slog.Logger

	navigations uint64
	deadEnds    uint64
	resets      uint64
}

var _ ipc.Service = (*Navigator)(nil)

// NewNavigator creates a navigator over surface with an idle state.
func NewNavigator(surface Surface, cfg NavigatorConfig) *Navigator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	n := &Navigator{
		surface: surface,
		state:   focus.NewState(),
		display: cfg.Display,
		reload:  cfg.Reload,
		logger:  logger,
	}
	n.ctrl = n.newController(cfg.Rules)
	return n
}

func (n *Navigator) newController(rules index.Rules) *focus.Controller {
	return focus.NewController(n.surface, n.state, focus.Config{Rules: &rules, Logger: n.logger})
}

// Navigate refreshes the surface and moves focus in dir.
func (n *Navigator) Navigate(dir spatial.Direction) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.surface.Refresh(); err != nil {
		n.logger.Error("failed to refresh windows", "error", err)
		recordNavigation(dir, resultError)
		return false
	}

	moved := n.ctrl.Navigate(dir)
	if moved {
		n.navigations++
		recordNavigation(dir, resultMoved)
	} else {
		n.deadEnds++
		recordNavigation(dir, resultDeadEnd)
	}
	setFocused(!n.state.Idle())
	n.logger.Debug("navigate", "direction", dir, "moved", moved, "focus", n.ctrl.State().CurrentID)
	return moved
}

// Reset clears focus.
func (n *Navigator) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resetLocked()
}

func (n *Navigator) resetLocked() {
	wasFocused := !n.state.Idle()
	n.ctrl.Reset()
	if h, ok := n.surface.(markerHider); ok {
		h.HideMarker()
	}
	if wasFocused {
		n.resets++
		resetsTotal.Inc()
	}
	setFocused(false)
}

// Snapshot returns the current navigation state.
func (n *Navigator) Snapshot() focus.Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.ctrl.State()
}

// Status reports counters and focus for GET_STATUS.
func (n *Navigator) Status() ipc.StatusData {
	n.mu.Lock()
	defer n.mu.Unlock()
	return ipc.StatusData{
		Display:     n.display,
		Focus:       n.ctrl.State(),
		Navigations: n.navigations,
		DeadEnds:    n.deadEnds,
		Resets:      n.resets,
	}
}

// Reload runs the configured reload hook.
func (n *Navigator) Reload() error {
	if n.reload == nil {
		return errReloadUnsupported
	}
	return n.reload()
}

// Reconfigure swaps the eligibility rules while keeping the navigation state.
// fn, if non-nil, runs under the navigator lock so it can adjust the surface.
func (n *Navigator) Reconfigure(rules index.Rules, fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if fn != nil {
		fn()
	}
	n.ctrl = n.newController(rules)
}

// Reconcile refreshes the surface and drops focus whose element has gone.
// A focused element that still exists gets its marker redrawn so it
// follows the element. It reports whether focus was dropped.
func (n *Navigator) Reconcile() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state.Idle() {
		return false
	}
	if err := n.surface.Refresh(); err != nil {
		n.logger.Warn("reconcile: failed to refresh windows", "error", err)
		return false
	}

	id := n.state.Current.ID()
	el, ok := n.surface.Lookup(id)
	if ok {
		if _, err := el.Bounds(); err == nil {
			if err := n.surface.SetMarked(el, true); err != nil {
				n.logger.Warn("reconcile: failed to redraw marker", "element", id, "error", err)
			}
			return false
		}
	}

	n.logger.Info("reconcile: focused element is gone", "element", id)
	staleTotal.Inc()
	n.resetLocked()
	return true
}
