package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var durationPartRegex = regexp.MustCompile(`(\d+)(ms|d|h|m|s)`)

// ParseDuration parses a Go duration, or a sequence of integer parts with
// the units d, h, m, s and ms ("1d2h", "90s").
func ParseDuration(s string) (time.Duration, error) {
	input := strings.TrimSpace(s)
	if input == "" {
		return 0, fmt.Errorf("duration is empty")
	}
	if d, err := time.ParseDuration(input); err == nil {
		return d, nil
	}

	matches := durationPartRegex.FindAllStringSubmatchIndex(input, -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid duration: %s", input)
	}

	consumed := 0
	var total time.Duration
	for _, m := range matches {
		if m[0] != consumed {
			return 0, fmt.Errorf("invalid duration: %s", input)
		}
		consumed = m[1]

		value, err := strconv.ParseInt(input[m[2]:m[3]], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", input)
		}
		total += time.Duration(value) * unitOf(input[m[4]:m[5]])
	}

	if consumed != len(input) {
		return 0, fmt.Errorf("invalid duration: %s", input)
	}
	return total, nil
}

func unitOf(u string) time.Duration {
	switch u {
	case "d":
		return 24 * time.Hour
	case "h":
		return time.Hour
	case "m":
		return time.Minute
	case "ms":
		return time.Millisecond
	default:
		return time.Second
	}
}
