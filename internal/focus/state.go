// Package focus implements the spatial focus controller: it moves a single
// focus marker between the eligible elements of a document in response to
// directional requests.
package focus

import (
	"github.com/1broseidon/spatialnav/internal/document"
	"github.com/1broseidon/spatialnav/internal/index"
	"github.com/1broseidon/spatialnav/internal/spatial"
)

// NavigationState holds the focused target and the one before it. A nil
// Current means the state is idle. Only the owning Controller mutates it.
type NavigationState struct {
	Current  *index.Target
	Previous *index.Target
}

// NewState creates an idle state.
func NewState() *NavigationState {
	return &NavigationState{}
}

// Idle reports whether nothing is focused.
func (s *NavigationState) Idle() bool {
	return s.Current == nil
}

// Host is the environment a Controller drives. Marker, focus and scroll
// requests are best effort; ScrollIntoView must not block.
type Host interface {
	document.Document
	SetMarked(el document.Element, marked bool) error
	Focus(el document.Element) error
	ScrollIntoView(el document.Element, delta spatial.Offset)
}

// activeElementer is implemented by hosts that track which element holds
// input focus independently of the controller.
type activeElementer interface {
	ActiveElement() (document.Element, bool)
}

// blurrer is implemented by hosts that can drop input focus from el, so a
// reset controller does not resume from the element it cleared.
type blurrer interface {
	Blur(el document.Element)
}

// markedLister is implemented by hosts that can enumerate marked elements.
type markedLister interface {
	MarkedElements() []document.Element
}

// Snapshot is a copy of the navigation state suitable for reporting.
type Snapshot struct {
	Focused      bool         `json:"focused"`
	CurrentID    string       `json:"current_id,omitempty"`
	CurrentRect  spatial.Rect `json:"current_rect"`
	PreviousID   string       `json:"previous_id,omitempty"`
	PreviousRect spatial.Rect `json:"previous_rect"`
}

func snapshotOf(s *NavigationState) Snapshot {
	var snap Snapshot
	if s.Current != nil {
		snap.Focused = true
		snap.CurrentID = s.Current.ID()
		snap.CurrentRect = s.Current.Rect
	}
	if s.Previous != nil {
		snap.PreviousID = s.Previous.ID()
		snap.PreviousRect = s.Previous.Rect
	}
	return snap
}
