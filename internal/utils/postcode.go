package utils

import (
	"regexp"
	"strings"
)

// UK postcode, outward + inward part, case-insensitive, optional space.
var postcodeRegex = regexp.MustCompile(`^[A-Z]{1,2}\d[A-Z\d]?\s*\d[A-Z]{2}$`)

// ValidatePostcode reports whether the input looks like a UK postcode.
func ValidatePostcode(postcode string) bool {
	return postcodeRegex.MatchString(strings.ToUpper(strings.TrimSpace(postcode)))
}

// NormalizePostcode upper-cases and formats a postcode with the single
// standard space before the inward part. Input that does not validate is
// returned trimmed but otherwise unchanged.
func NormalizePostcode(postcode string) string {
	trimmed := strings.TrimSpace(postcode)
	if !ValidatePostcode(trimmed) {
		return trimmed
	}

	compact := strings.ReplaceAll(strings.ToUpper(trimmed), " ", "")
	return compact[:len(compact)-3] + " " + compact[len(compact)-3:]
}
