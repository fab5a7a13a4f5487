// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Defaults match the HSL (Helsinki) deployment: 2s feed polling, "HSL:"
// agency prefix, Overpass POI source over central Helsinki.
package config
