package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses a timeout like "30s" or "2m".
// A bare integer is taken as seconds; empty means no timeout.
func ParseDuration(d string) (time.Duration, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(d); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("invalid duration %q: must not be negative", d)
		}
		return time.Duration(n) * time.Second, nil
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", d, err)
	}
	if duration < 0 {
		return 0, fmt.Errorf("invalid duration %q: must not be negative", d)
	}
	return duration, nil
}
