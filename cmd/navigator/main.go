package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	lib "github.com/helsinki-transit/navigator"
	"github.com/helsinki-transit/navigator/config"
	"github.com/helsinki-transit/navigator/embedding"
	"github.com/helsinki-transit/navigator/poi"
	"github.com/helsinki-transit/navigator/search"
)

func main() {
	mode := flag.String("mode", "serve", "serve|oneshot|enrich")
	configPath := flag.String("config", "", "path to config.yml")
	feedURL := flag.String("feed", "", "GTFS-RT VehiclePositions URL (overrides config)")
	query := flag.String("query", "", "oneshot: also run this search query")
	flag.Parse()

	lib.InitLogging()
	_ = godotenv.Load()
	if err := config.LoadAppConfig(*configPath); err != nil {
		panic(err)
	}
	if *feedURL != "" {
		config.Config.Feed.URL = *feedURL
	}
	if config.Config.Feed.SubscriptionKey == "" {
		config.Config.Feed.SubscriptionKey = os.Getenv("DIGITRANSIT_API_KEY")
	}

	switch *mode {
	case "serve":
		runServe()
	case "oneshot":
		runOneshot(*query)
	case "enrich":
		runEnrich()
	default:
		panic("unknown mode")
	}
}

// buildPOISource prefers the Postgres store when configured, so search
// reflects enriched rows. Without a database it reads Overpass directly.
func buildPOISource(ctx context.Context) poi.Source {
	cfg := config.Config.POI
	if cfg.PostgresURL != "" {
		store, err := poi.NewStore(ctx, cfg.PostgresURL)
		if err != nil {
			log.Printf("poi: postgres unavailable, falling back to overpass: %v", err)
		} else {
			return store
		}
	}
	return poi.NewOverpassSource(cfg.OverpassURL, cfg.BBox)
}

func buildEmbedder() search.Embedder {
	emb, err := embedding.NewOllamaEmbedder(config.Config.Search.OllamaHost, config.Config.Search.EmbedModel)
	if err != nil {
		log.Printf("embedding: %v, search disabled", err)
		return nil
	}
	return emb
}

func runServe() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := lib.NewApp(config.Config, buildEmbedder(), buildPOISource(ctx))
	if err := app.InitSearch(ctx); err != nil {
		log.Printf("search init failed, continuing without index: %v", err)
	}
	go app.RunLoop(ctx)
	app.StartServer()
	lib.HandleGracefulShutdown(cancel)
}

func runOneshot(query string) {
	ctx := context.Background()
	app := lib.NewApp(config.Config, buildEmbedder(), buildPOISource(ctx))

	if err := app.TickOnce(ctx); err != nil {
		log.Printf("feed fetch failed: %v", err)
	}
	out, err := json.MarshalIndent(app.GetSnapshot(), "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out))

	if query == "" {
		return
	}
	if err := app.InitSearch(ctx); err != nil {
		panic(err)
	}
	results, err := app.Search(ctx, query, 0)
	if err != nil {
		panic(err)
	}
	out, err = json.MarshalIndent(results, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out))
}

func runEnrich() {
	ctx := context.Background()
	cfg := config.Config.POI
	if cfg.PostgresURL == "" {
		panic("enrich mode requires poi.postgres_url")
	}
	store, err := poi.NewStore(ctx, cfg.PostgresURL)
	if err != nil {
		panic(err)
	}
	defer store.Close()
	if err := store.Init(ctx); err != nil {
		panic(err)
	}
	src := poi.NewOverpassSource(cfg.OverpassURL, cfg.BBox)
	n, err := poi.Enrich(ctx, src, store)
	if err != nil {
		panic(err)
	}
	log.Printf("enriched %d pois", n)
}
