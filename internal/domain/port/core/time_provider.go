package core

import "time"

// TimeProvider abstracts the clock. Slot resolution, lock leases and
// admission timestamps all read the current time through this port so
// tests can pin it.
type TimeProvider interface {
	Now() time.Time
}
