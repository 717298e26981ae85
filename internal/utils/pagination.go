// Package utils holds tiny helpers shared across layers, free of any domain
// knowledge.
package utils

import (
	"strconv"
	"strings"
)

// AtoiDefault parses s as a base-10 integer, falling back to def when s is
// blank or malformed. Query parameters arrive as strings and a bad value
// should never fail the request, only fall back.
func AtoiDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
