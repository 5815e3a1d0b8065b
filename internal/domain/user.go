// Package domain contains entity without logic, just meta-data
package domain

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

const (
	// AdminName is the author of every system notice.
	AdminName = "admin"
	// MaxNameLen bounds display names and room names, in runes.
	MaxNameLen = 36
)

// ConnID is the opaque identifier the gateway assigns to a live connection.
type ConnID string

// DisplayName is a normalized user name, unique within a room.
type DisplayName string

// Normalize trims surrounding whitespace and case-folds s.
// A Caser is stateful, so one is built per call.
func Normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// NewDisplayName normalizes raw and checks it against maxLen (0 disables the check).
func NewDisplayName(raw string, maxLen int) (DisplayName, error) {
	name, err := normalizeKey(raw, maxLen)
	return DisplayName(name), err
}

func normalizeKey(raw string, maxLen int) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return "", ErrNameRequired
	}
	if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
		return "", &TooLongError{Max: maxLen}
	}
	return s, nil
}
