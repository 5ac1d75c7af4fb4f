// Package input adapts host input events to navigation requests.
package input

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/1broseidon/spatialnav/internal/spatial"
)

// Handler handles one navigation request.
type Handler func(dir spatial.Direction) bool

// Throttle wraps fn so that calls arriving within interval of the last
// accepted call are dropped. Dropped calls return false. A non-positive
// interval returns fn unchanged.
func Throttle(fn Handler, interval time.Duration) Handler {
	if interval <= 0 {
		return fn
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	return func(dir spatial.Direction) bool {
		if !limiter.Allow() {
			return false
		}
		return fn(dir)
	}
}
