package util

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidFileName is returned when a name has nothing usable left after sanitizing.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName flattens path separators, drops control characters and
// rejects names that would resolve to the current or parent directory.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, s)
	if s == "" || s == "." || s == ".." || strings.HasPrefix(s, "..") {
		return "", ErrInvalidFileName
	}
	return s, nil
}
