package gtfs

// Mode is the rider-facing transport mode of a route.
type Mode string

const (
	ModeTram  Mode = "TRAM"
	ModeMetro Mode = "METRO"
	ModeBus   Mode = "BUS"
	ModeFerry Mode = "FERRY"
	ModeTrain Mode = "TRAIN"
)

// GTFS route_type codes, including the HSL extended codes.
// 0=Tram, 1=Subway, 3=Bus, 4=Ferry, 109=Train (HSL specific).
var routeTypeModes = map[string]Mode{
	"0":    ModeTram,
	"900":  ModeTram,
	"1":    ModeMetro,
	"401":  ModeMetro,
	"3":    ModeBus,
	"700":  ModeBus,
	"4":    ModeFerry,
	"1000": ModeFerry,
	"109":  ModeTrain,
	"100":  ModeTrain,
}

// ModeForRouteType maps a GTFS route_type code to a Mode.
// Unrecognized codes default to bus.
func ModeForRouteType(code string) Mode {
	if m, ok := routeTypeModes[code]; ok {
		return m
	}
	return ModeBus
}

// RouteInfo describes a route from routes.txt, keyed by normalized route_id.
type RouteInfo struct {
	ID        string `json:"id"`
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name"`
	Mode      Mode   `json:"mode"`
}

// DirectionKey addresses a headsign by route and direction of travel.
type DirectionKey struct {
	RouteID     string
	DirectionID string // "0" or "1"
}
