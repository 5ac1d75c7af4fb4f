package focus

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/spatialnav/internal/document"
	"github.com/1broseidon/spatialnav/internal/index"
	"github.com/1broseidon/spatialnav/internal/spatial"
)

// Config holds controller options. The zero value uses the default
// eligibility rules, the whole document as scope and discards logs.
type Config struct {
	Rules  *index.Rules
	Scope  document.Element
	Logger *slog.Logger
}

// Controller moves focus through a Host. It is not safe for concurrent use.
type Controller struct {
	host   Host
	state  *NavigationState
	rules  index.Rules
	scope  document.Element
	logger *slog.Logger
}

// NewController creates a controller that owns state. A nil state starts idle.
func NewController(host Host, state *NavigationState, cfg Config) *Controller {
	if state == nil {
		state = NewState()
	}
	rules := index.DefaultRules()
	if cfg.Rules != nil {
		rules = *cfg.Rules
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		host:   host,
		state:  state,
		rules:  rules,
		scope:  cfg.Scope,
		logger: logger,
	}
}

// State returns a snapshot of the navigation state.
func (c *Controller) State() Snapshot {
	return snapshotOf(c.state)
}

// Current returns the focused target, if any.
func (c *Controller) Current() (index.Target, bool) {
	if c.state.Current == nil {
		return index.Target{}, false
	}
	return *c.state.Current, true
}

// Navigate moves focus to the nearest eligible element in dir. It returns
// false, leaving the state untouched, when dir is a dead end or the marker
// could not be applied.
func (c *Controller) Navigate(dir spatial.Direction) bool {
	origin, originID := c.origin(dir)

	targets := c.rules.Collect(c.host, c.scope)
	candidates := make([]index.Target, 0, len(targets))
	rects := make([]spatial.Rect, 0, len(targets))
	for _, t := range targets {
		if originID != "" && t.ID() == originID {
			continue
		}
		candidates = append(candidates, t)
		rects = append(rects, t.Rect)
	}

	idx := spatial.Select(origin, dir, rects)
	if idx < 0 {
		c.logger.Debug("no target in direction", "direction", dir, "origin", origin, "candidates", len(candidates))
		return false
	}
	return c.apply(candidates[idx])
}

// Focus moves focus to the element with the given id.
func (c *Controller) Focus(id string) error {
	el, ok := c.host.Lookup(id)
	if !ok {
		return fmt.Errorf("element %q not found", id)
	}
	if !c.rules.Eligible(el) {
		return fmt.Errorf("element %q cannot receive focus", id)
	}
	rect, err := el.Bounds()
	if err != nil {
		return fmt.Errorf("failed to measure %q: %w", id, err)
	}
	if !c.apply(index.Target{Element: el, Rect: rect}) {
		return fmt.Errorf("failed to mark %q", id)
	}
	return nil
}

// Reset clears focus and removes the marker from the current element if it
// is still present. Hosts that can blur drop input focus too, so the next
// navigation starts from the root. Resetting an idle controller does nothing.
func (c *Controller) Reset() {
	cur := c.state.Current
	if cur == nil {
		return
	}
	el, ok := c.host.Lookup(cur.ID())
	if ok {
		if err := c.host.SetMarked(el, false); err != nil {
			c.logger.Warn("failed to clear focus marker", "element", cur.ID(), "error", err)
		}
	} else {
		el = cur.Element
	}
	if b, ok := c.host.(blurrer); ok {
		b.Blur(el)
	}
	c.state.Previous = cur
	c.state.Current = nil
	c.logger.Debug("focus reset", "element", cur.ID())
}

// origin returns the rectangle navigation starts from and the id of the
// element it belongs to ("" for the entry origin).
func (c *Controller) origin(dir spatial.Direction) (spatial.Rect, string) {
	if cur := c.state.Current; cur != nil {
		if el, ok := c.host.Lookup(cur.ID()); ok {
			if rect, err := el.Bounds(); err == nil {
				return rect, el.ID()
			}
		}
		c.logger.Debug("focused element is stale", "element", cur.ID())
	}

	root := c.scope
	if root == nil {
		root = c.host.Root()
	}

	if ae, ok := c.host.(activeElementer); ok {
		if el, ok := ae.ActiveElement(); ok && el != nil && el.ID() != root.ID() {
			if _, ok := c.host.Lookup(el.ID()); ok {
				if rect, err := el.Bounds(); err == nil {
					return rect, el.ID()
				}
			}
		}
	}

	bounds, err := root.Bounds()
	if err != nil {
		bounds = c.host.Viewport()
	}
	return spatial.EntryOrigin(bounds, dir), ""
}

func (c *Controller) apply(target index.Target) bool {
	old := c.state.Current
	c.clearMarkers(target)

	if err := c.host.SetMarked(target.Element, true); err != nil {
		c.logger.Warn("failed to apply focus marker", "element", target.ID(), "error", err)
		c.restoreMarker(old)
		return false
	}

	if delta, ok := ScrollDelta(target.Rect, c.host.Viewport()); ok {
		c.host.ScrollIntoView(target.Element, delta)
	}
	if err := c.host.Focus(target.Element); err != nil {
		c.logger.Warn("failed to move input focus", "element", target.ID(), "error", err)
	}

	c.state.Previous = old
	c.state.Current = &target
	c.logger.Debug("focus moved", "element", target.ID(), "rect", target.Rect)
	return true
}

// clearMarkers removes the marker from every holder other than target.
func (c *Controller) clearMarkers(target index.Target) {
	var holders []document.Element
	if ml, ok := c.host.(markedLister); ok {
		holders = ml.MarkedElements()
	} else if cur := c.state.Current; cur != nil {
		if el, ok := c.host.Lookup(cur.ID()); ok {
			holders = append(holders, el)
		}
	}

	for _, el := range holders {
		if el.ID() == target.ID() {
			continue
		}
		if err := c.host.SetMarked(el, false); err != nil {
			c.logger.Warn("failed to clear focus marker", "element", el.ID(), "error", err)
		}
	}
}

func (c *Controller) restoreMarker(old *index.Target) {
	if old == nil {
		return
	}
	el, ok := c.host.Lookup(old.ID())
	if !ok {
		return
	}
	if err := c.host.SetMarked(el, true); err != nil {
		c.logger.Warn("failed to restore focus marker", "element", old.ID(), "error", err)
	}
}
