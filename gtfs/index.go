package gtfs

import "strings"

// StaticIndex stores static GTFS schedule data in memory for fast lookups.
// It is read-only after load; Reload builds a fresh index and swaps it in.
type StaticIndex struct {
	agencyPrefix string

	routes             map[string]RouteInfo    // route_id -> route info
	tripHeadsigns      map[string]string       // trip_id -> headsign
	directionHeadsigns map[DirectionKey]string // (route_id, direction_id) -> headsign
}

// NewStaticIndex creates a new empty schedule index.
func NewStaticIndex(agencyPrefix string) *StaticIndex {
	return &StaticIndex{
		agencyPrefix:       agencyPrefix,
		routes:             map[string]RouteInfo{},
		tripHeadsigns:      map[string]string{},
		directionHeadsigns: map[DirectionKey]string{},
	}
}

// NormalizeID strips the agency namespace prefix (e.g. "HSL:") and
// surrounding whitespace from an identifier. The realtime feed and the
// static tables do not always agree on the prefix, so both sides are
// normalized with the same rule before any join.
func (s *StaticIndex) NormalizeID(id string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(id), s.agencyPrefix))
}

// Lookup returns the RouteInfo for a normalized route_id. Absent routes get
// a synthetic pass-through record so callers always have a renderable label.
func (s *StaticIndex) Lookup(routeID string) RouteInfo {
	if ri, ok := s.routes[routeID]; ok {
		return ri
	}
	return RouteInfo{ID: routeID, ShortName: routeID, Mode: ModeBus}
}

// HeadsignForTrip returns the headsign for a normalized trip_id.
// This is the exact, high-precision resolution path.
func (s *StaticIndex) HeadsignForTrip(tripID string) (string, bool) {
	h, ok := s.tripHeadsigns[tripID]
	if !ok || h == "" {
		return "", false
	}
	return h, true
}

// HeadsignForDirection returns the headsign for a (route_id, direction_id)
// pair. This is the coarse fallback path: for branching routes it may name
// the wrong branch, but it recovers a usable label when the realtime trip_id
// is missing from the static snapshot.
func (s *StaticIndex) HeadsignForDirection(routeID, directionID string) (string, bool) {
	h, ok := s.directionHeadsigns[DirectionKey{RouteID: routeID, DirectionID: directionID}]
	if !ok || h == "" {
		return "", false
	}
	return h, true
}

// RouteCount returns the number of indexed routes.
func (s *StaticIndex) RouteCount() int { return len(s.routes) }

// TripCount returns the number of indexed trip headsigns.
func (s *StaticIndex) TripCount() int { return len(s.tripHeadsigns) }
