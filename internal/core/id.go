package core

import (
	"errors"
	"math"
	"strconv"
)

// ParseID parses an item id taken from a URL path segment.
// Any base-10 integer is accepted, including negative values. Integers
// wider than int64 are clamped to the nearest bound; they can never match
// a row and IDInRange reports them as such.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return id, nil
	}
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

// IDInRange reports whether id fits the SERIAL (int4) column.
// Ids outside that range can never match a row.
func IDInRange(id int64) bool {
	return id >= math.MinInt32 && id <= math.MaxInt32
}
