package poi

import (
	"context"
	"log"
)

// Enrich pulls the current landmark set from src and upserts it into the
// store. Run at startup when the store is empty and on explicit reload.
func Enrich(ctx context.Context, src Source, store *Store) (int, error) {
	pois, err := src.FetchAll(ctx)
	if err != nil {
		return 0, err
	}
	log.Printf("poi: fetched %d raw landmarks", len(pois))
	if err := store.Upsert(ctx, pois); err != nil {
		return 0, err
	}
	return len(pois), nil
}
