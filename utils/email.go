package utils

import "regexp"

// Intentionally permissive local@domain.tld shape, not RFC 5322. Tightening
// it would reject recipient addresses the system has accepted before.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
