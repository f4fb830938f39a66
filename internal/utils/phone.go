package utils

import (
	"github.com/nyaruka/phonenumbers"
)

// defaultRegion is used when a phone number has no country prefix.
const defaultRegion = "GB"

// NormalizePhone formats a phone number to E.164 when it parses as a valid
// number; anything else is returned unchanged so the validator still sees a
// non-empty value the applicant typed.
func NormalizePhone(phone string) string {
	if phone == "" {
		return phone
	}

	parsed, err := phonenumbers.Parse(phone, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return phone
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

// ValidatePhone reports whether a phone number parses as valid for the
// default region or carries a valid international prefix.
func ValidatePhone(phone string) bool {
	parsed, err := phonenumbers.Parse(phone, defaultRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(parsed)
}
