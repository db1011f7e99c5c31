// Package pathutil parses ids out of request paths and normalizes paths for metric labels.
package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when the id segment is not a positive integer.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a positive decimal id.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
