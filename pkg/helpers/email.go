package helpers

import "strings"

// NormalizeEmail lowercases the domain part of an email address.
// The local part is left untouched; two addresses that differ only in
// domain casing collide on the unique email column.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
