package memedit

import (
	"regexp"
)

var (
	reCanonical = regexp.MustCompile(`^0[xX][0-9a-fA-F]+$`)
	reSuffixed  = regexp.MustCompile(`^([0-9a-fA-F]+)[hH]$`)
)

// ToHex normalizes a token to a 0x-prefixed literal.
//
// `0x12` and `0X12` are returned as is, `12H` and `12h` become `0x12`.
// Anything else is prefixed with `0x` without validation.
func ToHex(token string) string {
	if reCanonical.MatchString(token) {
		return token
	}

	if match := reSuffixed.FindStringSubmatch(token); match != nil {
		return "0x" + match[1]
	}

	return "0x" + token
}
