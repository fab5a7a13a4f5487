// Package gtfsrt handles fetching and decoding the GTFS-Realtime
// vehicle-position feed.
//
// Decode is stateless per call: it parses a raw protobuf FeedMessage and
// filters to entities that declare a vehicle with a position. The Client is
// a thin HTTP fetcher with a hard timeout and the optional Digitransit
// subscription-key header.
package gtfsrt
