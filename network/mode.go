package network

import (
	"fmt"
	"strconv"
	"strings"
)

// routeTypeText maps the standard GTFS route_type codes to their
// human-readable descriptions.
var routeTypeText = map[int]string{
	0: "Tram, Streetcar, Light rail",
	1: "Subway, Metro",
	2: "Rail",
	3: "Bus",
	4: "Ferry",
	5: "Cable car",
	6: "Gondola, Suspended cable car",
	7: "Funicular",
}

// UnknownRouteCode is the mode assigned to trips whose route_id does not
// appear in the routes table. GTFS defines no route_type 100, so these
// trips stay usable without colliding with a real mode.
const UnknownRouteCode = 100

// Mode is a transport type: either an integer route_type code or, when the
// raw value is not numeric, the original string preserved verbatim. Modes
// compare by value, so two edges with the same raw string collapse.
type Mode struct {
	code    int
	raw     string
	numeric bool
}

// ParseMode interprets a raw route_type value. Integer values become code
// modes, everything else is kept as-is rather than coerced.
func ParseMode(raw string) Mode {
	if code, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		return Mode{code: code, numeric: true}
	}
	return Mode{raw: raw}
}

// ModeFromCode builds a mode from a known integer route_type code.
func ModeFromCode(code int) Mode {
	return Mode{code: code, numeric: true}
}

// Code returns the integer route_type code, if the mode is numeric.
func (m Mode) Code() (int, bool) {
	return m.code, m.numeric
}

func (m Mode) String() string {
	if m.numeric {
		return strconv.Itoa(m.code)
	}
	return m.raw
}

// Description returns the route_type text for standard codes and an
// "Other / Type not specified" marker for everything else.
func (m Mode) Description() string {
	if m.numeric {
		if text, ok := routeTypeText[m.code]; ok {
			return text
		}
	}
	return fmt.Sprintf("Other / Type not specified (%s)", m.String())
}
