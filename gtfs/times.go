package gtfs

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTime converts a GTFS H:MM:SS or HH:MM:SS time to seconds from
// service-day start. Hours may exceed 23 for service past midnight.
func ParseTime(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("gtfs: malformed time %q", value)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0, fmt.Errorf("gtfs: malformed hours in %q", value)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("gtfs: malformed minutes in %q", value)
	}
	s, err := strconv.Atoi(parts[2])
	if err != nil || s < 0 || s > 59 {
		return 0, fmt.Errorf("gtfs: malformed seconds in %q", value)
	}
	return h*3600 + m*60 + s, nil
}
