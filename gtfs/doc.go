// Package gtfs provides static GTFS schedule loading and indexing.
//
// The StaticIndex holds three lookup tables built from routes.txt and
// trips.txt: route_id -> RouteInfo, trip_id -> headsign, and
// (route_id, direction_id) -> headsign. Identifiers are normalized by
// stripping the agency namespace prefix before indexing, so realtime
// feed identifiers join against the same key space.
//
// Parse the tables once at startup and keep the index in memory; it is
// read-only after load. Reload builds a new index aside and swaps it.
package gtfs
