package fusion

import "time"

// Snapshot is an immutable, complete set of reconciled vehicles for one
// poll cycle. Each publication entirely replaces the previous snapshot;
// consumers never observe a partial mix of two ticks.
type Snapshot struct {
	Vehicles  []VehicleRecord `json:"vehicles"`
	Timestamp time.Time       `json:"timestamp"`
	Skipped   int             `json:"skipped,omitempty"`
}
