// Package emailaddr provides syntactic email address validation.
package emailaddr

import "regexp"

// addressRe accepts "local@domain.tld" where no part contains whitespace
// or an extra '@'. Intentionally loose: deliverability and domain
// existence are transport concerns.
var addressRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Valid reports whether s is syntactically an email address.
// Empty input returns false; Valid never fails.
func Valid(s string) bool {
	return addressRe.MatchString(s)
}
