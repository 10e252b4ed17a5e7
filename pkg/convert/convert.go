// Copyright (c) 2026 Aethercal. All rights reserved.

/*
Package convert provides quick type-conversion utilities.

It wraps [strconv] to provide fault-tolerant conversions in API handler
contexts parsing optional query parameters. Do not use this package if
distinguishing between malformed data and zero values matters; use the
standard library explicitly instead.
*/
package convert

import (
	"strconv"
)

// ToInt converts a string to an integer, silencing parsing errors.
// It returns 0 if the string is empty or cannot be parsed.
func ToInt(s string) int {
	if s == "" {
		return 0
	}
	v, _ := strconv.Atoi(s)
	return v
}

// ToIntPtr parses a string into *int, returning nil when the string is empty
// or malformed. Used for optional numeric filters (search year/month).
func ToIntPtr(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}
