package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseYearRange reads the year arguments of the command line: either
// "START [END]" as two arguments or a single "START-END". A missing end
// means a one-year range. The range is inclusive.
func ParseYearRange(args []string) (int, int, error) {
	switch len(args) {
	case 1:
		return parseRange(args[0])
	case 2:
		start, err := parseYear(args[0])
		if err != nil {
			return 0, 0, err
		}
		end, err := parseYear(args[1])
		if err != nil {
			return 0, 0, err
		}
		return checkOrder(start, end)
	default:
		return 0, 0, fmt.Errorf("no range specified")
	}
}

func parseRange(arg string) (int, int, error) {
	if arg == "" {
		return 0, 0, fmt.Errorf("no range specified")
	}
	parts := strings.Split(arg, "-")
	if len(parts) == 1 {
		y, err := parseYear(parts[0])
		return y, y, err
	}
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid year range %q", arg)
	}
	start, err := parseYear(parts[0])
	if err != nil {
		return 0, 0, err
	}
	if parts[1] == "" {
		return start, start, nil
	}
	end, err := parseYear(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return checkOrder(start, end)
}

func parseYear(s string) (int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return y, nil
}

func checkOrder(start, end int) (int, int, error) {
	if end < start {
		return 0, 0, fmt.Errorf("end year %d is before start year %d", end, start)
	}
	return start, end, nil
}
