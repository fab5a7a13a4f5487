// Package poi provides point-of-interest sourcing and persistence.
//
// OverpassSource fetches named tourism/leisure/historic nodes from the
// Overpass API inside a configured bounding box; Store keeps them in
// Postgres and serves FetchAll for the search engine's index builds.
package poi
