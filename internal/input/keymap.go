package input

import (
	"strings"

	"github.com/1broseidon/spatialnav/internal/spatial"
)

// Keymap maps host key names to directions. Lookups are case-insensitive.
type Keymap map[string]spatial.Direction

// ArrowKeys maps the arrow key names.
func ArrowKeys() Keymap {
	return Keymap{
		"up":    spatial.DirUp,
		"down":  spatial.DirDown,
		"left":  spatial.DirLeft,
		"right": spatial.DirRight,
	}
}

// ViKeys maps arrows plus h/j/k/l.
func ViKeys() Keymap {
	km := ArrowKeys()
	km["k"] = spatial.DirUp
	km["j"] = spatial.DirDown
	km["h"] = spatial.DirLeft
	km["l"] = spatial.DirRight
	return km
}

// Lookup returns the direction bound to key.
func (k Keymap) Lookup(key string) (spatial.Direction, bool) {
	dir, ok := k[strings.ToLower(key)]
	return dir, ok
}
