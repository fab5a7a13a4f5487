package fusion

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/helsinki-transit/navigator/gtfs"
	"github.com/helsinki-transit/navigator/gtfsrt"
)

// Fetcher retrieves one raw feed payload. Satisfied by *gtfsrt.Client.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Loop polls the vehicle-position feed on a fixed cadence, reconciles every
// vehicle against the static schedule index and publishes the result as an
// atomic snapshot swap. Readers never block and never see a half-built
// snapshot; on a failed tick the previous snapshot stays published so a
// transient upstream failure does not flicker to "no vehicles".
type Loop struct {
	fetcher  Fetcher
	interval time.Duration

	index    atomic.Pointer[gtfs.StaticIndex]
	snapshot atomic.Pointer[Snapshot]
}

// NewLoop creates a fusion loop publishing an initial empty snapshot.
func NewLoop(fetcher Fetcher, idx *gtfs.StaticIndex, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	l := &Loop{fetcher: fetcher, interval: interval}
	l.index.Store(idx)
	l.snapshot.Store(&Snapshot{Vehicles: []VehicleRecord{}, Timestamp: time.Now()})
	return l
}

// Latest returns the most recently published snapshot. Never blocks.
func (l *Loop) Latest() *Snapshot {
	return l.snapshot.Load()
}

// SwapIndex replaces the schedule index used by subsequent ticks. The
// in-flight tick keeps the index it started with.
func (l *Loop) SwapIndex(idx *gtfs.StaticIndex) {
	l.index.Store(idx)
}

// Tick runs one fetch-decode-reconcile cycle and publishes the result.
// Any error leaves the previous snapshot in place.
func (l *Loop) Tick(ctx context.Context) error {
	raw, err := l.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}
	vehicles, stats, err := gtfsrt.Decode(raw)
	if err != nil {
		return err
	}

	idx := l.index.Load()
	records := make([]VehicleRecord, 0, len(vehicles))
	for _, v := range vehicles {
		records = append(records, Reconcile(v, idx))
	}

	l.snapshot.Store(&Snapshot{
		Vehicles:  records,
		Timestamp: time.Now(),
		Skipped:   stats.Skipped,
	})
	return nil
}

// Run polls until ctx is cancelled. Cancellation takes effect after the
// in-flight tick completes; there are never two concurrent fetches.
func (l *Loop) Run(ctx context.Context) {
	if err := l.Tick(ctx); err != nil {
		log.Printf("fusion: tick failed, keeping previous snapshot: %v", err)
	}
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.Tick(ctx); err != nil {
				log.Printf("fusion: tick failed, keeping previous snapshot: %v", err)
			}
		}
	}
}
