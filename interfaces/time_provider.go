package interfaces

import "time"

// TimeProvider supplies the current time for last_seen stamps, staleness checks and cycle reports.
// Satisfied by lnd's clock.Clock; tests use clock.NewTestClock.
type TimeProvider interface {
	Now() time.Time
}
