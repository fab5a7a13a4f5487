package gtfs

import "testing"

func TestNormalizeID(t *testing.T) {
	idx := NewStaticIndex("HSL:")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"prefixed", "HSL:1001", "1001"},
		{"bare", "1001", "1001"},
		{"whitespace around prefix", "  HSL:1001  ", "1001"},
		{"whitespace only", "   ", ""},
		{"empty", "", ""},
		{"prefix mid-string untouched", "XHSL:1001", "XHSL:1001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.NormalizeID(tt.in); got != tt.want {
				t.Errorf("NormalizeID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeID_NoPrefix(t *testing.T) {
	idx := NewStaticIndex("")
	if got := idx.NormalizeID(" 1001 "); got != "1001" {
		t.Errorf("NormalizeID with empty prefix = %q, want %q", got, "1001")
	}
}

func TestModeForRouteType(t *testing.T) {
	tests := []struct {
		code string
		want Mode
	}{
		{"0", ModeTram},
		{"900", ModeTram},
		{"1", ModeMetro},
		{"401", ModeMetro},
		{"3", ModeBus},
		{"700", ModeBus},
		{"4", ModeFerry},
		{"1000", ModeFerry},
		{"109", ModeTrain},
		{"100", ModeTrain},
		{"", ModeBus},
		{"999", ModeBus},
	}
	for _, tt := range tests {
		if got := ModeForRouteType(tt.code); got != tt.want {
			t.Errorf("ModeForRouteType(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestLookup_SyntheticForUnknownRoute(t *testing.T) {
	idx := NewStaticIndex("HSL:")
	ri := idx.Lookup("9999")
	if ri.ID != "9999" || ri.ShortName != "9999" {
		t.Errorf("synthetic route should pass through the id, got %+v", ri)
	}
	if ri.Mode != ModeBus {
		t.Errorf("synthetic route mode = %q, want %q", ri.Mode, ModeBus)
	}
}

func TestHeadsignLookups_EmptyMeansMissing(t *testing.T) {
	idx := NewStaticIndex("HSL:")
	idx.tripHeadsigns["T1"] = ""
	idx.directionHeadsigns[DirectionKey{RouteID: "R1", DirectionID: "0"}] = ""

	if _, ok := idx.HeadsignForTrip("T1"); ok {
		t.Error("empty trip headsign should report missing")
	}
	if _, ok := idx.HeadsignForDirection("R1", "0"); ok {
		t.Error("empty direction headsign should report missing")
	}

	idx.tripHeadsigns["T2"] = "Keilaniemi"
	if h, ok := idx.HeadsignForTrip("T2"); !ok || h != "Keilaniemi" {
		t.Errorf("HeadsignForTrip(T2) = %q,%v, want Keilaniemi,true", h, ok)
	}
}
