package poi

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists points of interest in Postgres. It is the FetchAll
// collaborator the search engine indexes from.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to Postgres and verifies the connection.
func NewStore(ctx context.Context, connStr string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Init creates the POI table if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS points_of_interest (
            id BIGINT PRIMARY KEY,
            name TEXT NOT NULL,
            lat DOUBLE PRECISION NOT NULL,
            lon DOUBLE PRECISION NOT NULL,
            kind TEXT,
            description TEXT,
            image_url TEXT
        )
    `)
	if err != nil {
		return fmt.Errorf("failed to create points_of_interest table: %w", err)
	}
	return nil
}

// Upsert writes a batch of POIs, updating rows that already exist.
func (s *Store) Upsert(ctx context.Context, pois []PointOfInterest) error {
	for _, p := range pois {
		_, err := s.pool.Exec(ctx, `
            INSERT INTO points_of_interest (id, name, lat, lon, kind, description, image_url)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
            ON CONFLICT (id) DO UPDATE SET
                name = EXCLUDED.name,
                lat = EXCLUDED.lat,
                lon = EXCLUDED.lon,
                kind = EXCLUDED.kind,
                description = EXCLUDED.description,
                image_url = EXCLUDED.image_url
        `, p.ID, p.Name, p.Lat, p.Lon, p.Kind, p.Description, p.ImageURL)
		if err != nil {
			return fmt.Errorf("failed to upsert poi %d: %w", p.ID, err)
		}
	}
	return nil
}

// FetchAll returns every stored POI in insertion-id order.
func (s *Store) FetchAll(ctx context.Context) ([]PointOfInterest, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT id, name, lat, lon, kind, description, image_url
        FROM points_of_interest
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query points of interest: %w", err)
	}
	defer rows.Close()

	var pois []PointOfInterest
	for rows.Next() {
		var p PointOfInterest
		if err := rows.Scan(&p.ID, &p.Name, &p.Lat, &p.Lon, &p.Kind, &p.Description, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return pois, nil
}

// Close closes the database connection.
func (s *Store) Close() {
	s.pool.Close()
}
