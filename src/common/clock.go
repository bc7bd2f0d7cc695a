package common

import "github.com/jonboulle/clockwork"

// Clock is the time source for record ranges and cache keys. Tests swap it
// with SetClock.
var Clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		Clock = clockwork.NewRealClock()
		return
	}
	Clock = c
}
