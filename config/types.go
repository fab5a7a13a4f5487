package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// GTFSConfig contains static GTFS schedule configuration
type GTFSConfig struct {
	StaticDir    string `yaml:"staticDir"`
	AgencyPrefix string `yaml:"agencyPrefix"`
}

// FeedConfig contains GTFS-Realtime vehicle-position feed configuration
type FeedConfig struct {
	URL             string `yaml:"url" validate:"omitempty,url"`
	SubscriptionKey string `yaml:"subscriptionKey"`
	PollIntervalMS  int    `yaml:"pollIntervalMS" validate:"gte=0"`
	TimeoutMS       int    `yaml:"timeoutMS" validate:"gte=0"`
}

// SearchConfig contains semantic search configuration
type SearchConfig struct {
	OllamaHost  string `yaml:"ollamaHost" validate:"omitempty,url"`
	EmbedModel  string `yaml:"embedModel"`
	CachePath   string `yaml:"cachePath"`
	DefaultTopK int    `yaml:"defaultTopK" validate:"gte=0"`
}

// POIConfig contains point-of-interest source configuration
type POIConfig struct {
	PostgresURL string `yaml:"postgresURL"`
	OverpassURL string `yaml:"overpassURL" validate:"omitempty,url"`
	BBox        string `yaml:"bbox"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server ServerConfig `yaml:"server" validate:"required"`
	GTFS   GTFSConfig   `yaml:"gtfs"`
	Feed   FeedConfig   `yaml:"feed"`
	Search SearchConfig `yaml:"search"`
	POI    POIConfig    `yaml:"poi"`
}
