package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"user@Example.COM", "user@example.com"},
		{"User@example.com", "User@example.com"}, // local part untouched
		{"  user@EXAMPLE.com  ", "user@example.com"},
		{"no-at-sign", "no-at-sign"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeEmail(tc.in), "input %q", tc.in)
	}
}
