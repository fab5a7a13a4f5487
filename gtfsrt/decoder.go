package gtfsrt

import (
	"errors"
	"fmt"
	"strconv"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// ErrFeedParse reports a malformed top-level feed payload. A tick that hits
// this error keeps the previous snapshot; individual bad entities never
// surface it.
var ErrFeedParse = errors.New("gtfsrt: malformed feed payload")

// Vehicle is one vehicle-position entity extracted from the feed, with raw
// (un-normalized) identifiers.
type Vehicle struct {
	Lat         float64
	Lon         float64
	RouteID     string
	TripID      string
	DirectionID string // "0" or "1", stringified from the wire value
}

// DecodeStats counts entity admission during one decode, for diagnostics.
type DecodeStats struct {
	Entities int
	Admitted int
	Skipped  int
}

// Decode parses a raw GTFS-RT FeedMessage into vehicle records.
//
// An entity is admitted iff it declares a vehicle that carries a position.
// A malformed individual entity is skipped, not fatal: one bad entity must
// never blank the whole snapshot. Only an unparseable envelope errors.
func Decode(raw []byte) ([]Vehicle, DecodeStats, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(raw, &fm); err != nil {
		return nil, DecodeStats{}, fmt.Errorf("%w: %v", ErrFeedParse, err)
	}

	stats := DecodeStats{Entities: len(fm.Entity)}
	vehicles := make([]Vehicle, 0, len(fm.Entity))
	for _, e := range fm.Entity {
		vp := e.GetVehicle()
		pos := vp.GetPosition()
		if vp == nil || pos == nil || pos.Latitude == nil || pos.Longitude == nil {
			stats.Skipped++
			continue
		}
		trip := vp.GetTrip()
		vehicles = append(vehicles, Vehicle{
			Lat:         float64(pos.GetLatitude()),
			Lon:         float64(pos.GetLongitude()),
			RouteID:     trip.GetRouteId(),
			TripID:      trip.GetTripId(),
			DirectionID: strconv.FormatUint(uint64(trip.GetDirectionId()), 10),
		})
		stats.Admitted++
	}
	return vehicles, stats, nil
}
