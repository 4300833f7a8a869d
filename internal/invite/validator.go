// Package invite gates account registration behind shared invite codes.
package invite

import (
	"crypto/subtle"
	"strings"
)

// Validator checks registration invite codes. With no codes configured
// registration is open.
type Validator struct {
	codes [][]byte
}

// New creates a Validator from raw codes. Codes are trimmed, upper-cased and
// deduplicated; blanks are ignored.
func New(codes []string) *Validator {
	seen := make(map[string]struct{}, len(codes))
	v := &Validator{}
	for _, c := range codes {
		norm := normalize(c)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		v.codes = append(v.codes, []byte(norm))
	}
	return v
}

// ParseList splits a comma-separated INVITE_CODES value.
func ParseList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// Required reports whether registration needs a code.
func (v *Validator) Required() bool {
	return len(v.codes) > 0
}

// Allow reports whether code admits a registration. Every configured code is
// compared so the time taken does not depend on which one matched.
func (v *Validator) Allow(code string) bool {
	if !v.Required() {
		return true
	}

	candidate := []byte(normalize(code))
	if len(candidate) == 0 {
		return false
	}

	found := 0
	for _, valid := range v.codes {
		if subtle.ConstantTimeEq(int32(len(candidate)), int32(len(valid))) == 1 {
			found |= subtle.ConstantTimeCompare(candidate, valid)
		}
	}
	return found == 1
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
