// Package codec implements the reversible text encoding used for every
// persisted scalar: a value becomes the space-separated decimal code points of
// its characters ("Ana" -> "65 110 97"). Encoded output is digits and spaces
// only, so it is always distinguishable from ordinary prose and can be
// positively detected during decode attempts.
package codec

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidToken reports a token that is not a space-separated sequence of
// valid code points.
var ErrInvalidToken = errors.New("not a valid encoded token")

// Encode converts text into its space-separated code-point form.
func Encode(text string) string {
	if text == "" {
		return ""
	}
	parts := make([]string, 0, len(text))
	for _, r := range text {
		parts = append(parts, strconv.Itoa(int(r)))
	}
	return strings.Join(parts, " ")
}

// Decode converts an encoded token back into text. It fails with
// ErrInvalidToken on non-numeric parts or out-of-range code points.
func Decode(token string) (string, error) {
	var b strings.Builder
	for _, part := range strings.Fields(token) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return "", ErrInvalidToken
		}
		if n < 0 || n > 0x10FFFF {
			return "", ErrInvalidToken
		}
		b.WriteRune(rune(n))
	}
	return b.String(), nil
}

// MaybeDecode tries Decode and returns the input unchanged when it cannot be
// parsed. It never fails: pre-existing unencoded data passes through verbatim.
func MaybeDecode(token string) string {
	decoded, err := Decode(token)
	if err != nil {
		return token
	}
	return decoded
}
