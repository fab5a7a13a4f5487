package gtfs

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/helsinki-transit/navigator/config"
)

// Load builds a StaticIndex from routes.txt and trips.txt under the
// configured directory. A missing or malformed table degrades to an empty
// table rather than a startup failure: vehicles on unknown routes render
// with pass-through labels instead of the process refusing to start.
func Load(cfg config.GTFSConfig) *StaticIndex {
	idx := NewStaticIndex(cfg.AgencyPrefix)

	if err := consumeFile(filepath.Join(cfg.StaticDir, "routes.txt"), idx.ConsumeRoutes); err != nil {
		log.Printf("gtfs: routes.txt unavailable, routes degrade to defaults: %v", err)
	}
	if err := consumeFile(filepath.Join(cfg.StaticDir, "trips.txt"), idx.ConsumeTrips); err != nil {
		log.Printf("gtfs: trips.txt unavailable, headsigns degrade to fallback: %v", err)
	}

	log.Printf("gtfs: loaded %d routes, %d trips", idx.RouteCount(), idx.TripCount())
	return idx
}

func consumeFile(path string, consume func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return consume(f)
}

// ConsumeRoutes ingests a routes table (route_id, route_type,
// route_short_name, route_long_name). Duplicate route_ids are
// last-write-wins.
func (s *StaticIndex) ConsumeRoutes(r io.Reader) error {
	rec, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return err
	}
	if len(rec) == 0 {
		return nil
	}
	idx := headerIndex(rec[0])
	rID := idx("route_id")
	rType := idx("route_type")
	rSN := idx("route_short_name")
	rLN := idx("route_long_name")
	if rID < 0 {
		return nil
	}
	for _, row := range rec[1:] {
		id := s.NormalizeID(field(row, rID))
		if id == "" {
			continue
		}
		s.routes[id] = RouteInfo{
			ID:        id,
			ShortName: field(row, rSN),
			LongName:  field(row, rLN),
			Mode:      ModeForRouteType(field(row, rType)),
		}
	}
	return nil
}

// ConsumeTrips ingests a trips table (trip_id, route_id, direction_id,
// trip_headsign), populating both the exact trip lookup and the coarser
// route+direction fallback. Duplicate keys overwrite (last-write-wins);
// the source never disambiguates conflicting direction entries for a
// route, so branching routes may keep whichever headsign came last.
func (s *StaticIndex) ConsumeTrips(r io.Reader) error {
	rec, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return err
	}
	if len(rec) == 0 {
		return nil
	}
	idx := headerIndex(rec[0])
	tID := idx("trip_id")
	rID := idx("route_id")
	dir := idx("direction_id")
	hs := idx("trip_headsign")
	if tID < 0 || hs < 0 {
		return nil
	}
	for _, row := range rec[1:] {
		tripID := s.NormalizeID(field(row, tID))
		routeID := s.NormalizeID(field(row, rID))
		headsign := field(row, hs)
		if tripID != "" {
			s.tripHeadsigns[tripID] = headsign
		}
		if routeID != "" {
			s.directionHeadsigns[DirectionKey{RouteID: routeID, DirectionID: field(row, dir)}] = headsign
		}
	}
	return nil
}

func headerIndex(head []string) func(col string) int {
	return func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
