package util

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidFileName is returned for empty names and traversal attempts.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName flattens path separators and drops control characters so the
// result is safe as a single path segment.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
