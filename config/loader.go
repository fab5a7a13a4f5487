package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration.
// An empty path falls back to config.yml in the working directory.
func LoadAppConfig(path string) error {
	paths := []string{"config.yml", "./deploy/config.yml"}
	if path != "" {
		paths = []string{path}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	applyDefaults(&cfg)
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	Config = cfg
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.GTFS.AgencyPrefix == "" {
		cfg.GTFS.AgencyPrefix = "HSL:"
	}
	if cfg.Feed.PollIntervalMS == 0 {
		cfg.Feed.PollIntervalMS = 2000
	}
	if cfg.Feed.TimeoutMS == 0 {
		cfg.Feed.TimeoutMS = 2000
	}
	if cfg.Search.EmbedModel == "" {
		cfg.Search.EmbedModel = "nomic-embed-text"
	}
	if cfg.Search.CachePath == "" {
		cfg.Search.CachePath = "poi-embeddings.json"
	}
	if cfg.Search.DefaultTopK == 0 {
		cfg.Search.DefaultTopK = 5
	}
	if cfg.POI.OverpassURL == "" {
		cfg.POI.OverpassURL = "https://overpass-api.de/api/interpreter"
	}
	if cfg.POI.BBox == "" {
		cfg.POI.BBox = "60.15,24.90,60.20,24.98"
	}
}
