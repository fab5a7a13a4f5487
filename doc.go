// Package navigator fuses the Helsinki GTFS-RT vehicle feed with the static
// GTFS schedule into continuously refreshed, consumer-ready vehicle
// snapshots, and answers free-text "vibe" queries over city points of
// interest via embedding similarity. The App type is the composition root;
// cmd/navigator wires it to configuration and starts the HTTP API.
package navigator
