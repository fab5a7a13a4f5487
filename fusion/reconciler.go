package fusion

import (
	"fmt"

	"github.com/helsinki-transit/navigator/gtfs"
	"github.com/helsinki-transit/navigator/gtfsrt"
)

// UnknownHeadsign is the sentinel label used when neither resolution path
// yields a destination.
const UnknownHeadsign = "Unknown"

// Style is the presentation tag attached to each vehicle, derived purely
// from mode. The engine emits the tag; rendering belongs to consumers.
type Style struct {
	Color  [4]uint8 `json:"color"` // RGBA
	Radius int      `json:"radius"`
}

var styleByMode = map[gtfs.Mode]Style{
	gtfs.ModeTram:  {Color: [4]uint8{0, 200, 100, 200}, Radius: 40},
	gtfs.ModeMetro: {Color: [4]uint8{255, 140, 0, 200}, Radius: 50},
	gtfs.ModeTrain: {Color: [4]uint8{200, 0, 0, 200}, Radius: 50},
	gtfs.ModeFerry: {Color: [4]uint8{0, 100, 255, 200}, Radius: 60},
	gtfs.ModeBus:   {Color: [4]uint8{0, 150, 255, 180}, Radius: 30},
}

// StyleForMode returns the presentation tag for a mode.
func StyleForMode(m gtfs.Mode) Style {
	if s, ok := styleByMode[m]; ok {
		return s
	}
	return styleByMode[gtfs.ModeBus]
}

// VehicleRecord is one reconciled vehicle. Records are transient: each poll
// cycle re-creates the full set and no identity persists across polls.
type VehicleRecord struct {
	Lat         float64        `json:"lat"`
	Lon         float64        `json:"lon"`
	RouteID     string         `json:"route_id"`
	TripID      string         `json:"trip_id"`
	DirectionID string         `json:"direction_id"`
	Headsign    string         `json:"headsign"`
	Route       gtfs.RouteInfo `json:"route"`
	Mode        gtfs.Mode      `json:"mode"`
	Label       string         `json:"label"`
	Style       Style          `json:"style"`
}

// Reconcile joins one decoded vehicle against the static schedule index.
//
// Headsign resolution tries the exact trip_id match first, then falls back
// to the coarser (route_id, direction_id) key. Exact trip matches are
// correct but realtime trip_ids sometimes don't exist in the static
// snapshot (schedule drift, service changes), so the fallback recovers a
// usable label at the cost of possibly naming the wrong branch.
//
// Reconcile cannot fail: absent data degrades to sentinel values.
func Reconcile(v gtfsrt.Vehicle, idx *gtfs.StaticIndex) VehicleRecord {
	routeID := idx.NormalizeID(v.RouteID)
	tripID := idx.NormalizeID(v.TripID)

	route := idx.Lookup(routeID)

	headsign, ok := idx.HeadsignForTrip(tripID)
	if !ok {
		headsign, ok = idx.HeadsignForDirection(routeID, v.DirectionID)
	}
	if !ok {
		headsign = UnknownHeadsign
	}

	return VehicleRecord{
		Lat:         v.Lat,
		Lon:         v.Lon,
		RouteID:     routeID,
		TripID:      tripID,
		DirectionID: v.DirectionID,
		Headsign:    headsign,
		Route:       route,
		Mode:        route.Mode,
		Label:       fmt.Sprintf("%s %s: To %s", route.Mode, route.ShortName, headsign),
		Style:       StyleForMode(route.Mode),
	}
}
