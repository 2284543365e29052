// Package codec renders registry codes as "0x"-prefixed hex strings.
//
// The byte count follows unsigned-varint length rules (one byte per 7 bits of
// payload, at least one byte) but the value is written verbatim as a
// big-endian hex integer, not as varint groups:
//
//	0x00     -> 1 byte  -> "0x00"
//	0x7f     -> 1 byte  -> "0x7f"
//	0x80     -> 2 bytes -> "0x0080"
//	0x2000   -> 2 bytes -> "0x2000"
//	0x200000 -> 4 bytes -> "0x00200000"
package codec

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/joshuapare/codectable/pkg/types"
)

const (
	// Prefix starts every rendered code.
	Prefix = "0x"

	groupBits = 7
)

var codePattern = regexp.MustCompile(`^0x([0-9a-f][0-9a-f])+$`)

// Len returns the number of bytes Encode renders for code.
func Len(code uint64) int {
	if code == 0 {
		return 1
	}
	n := 0
	for remaining := code; remaining > 0; remaining >>= groupBits {
		n++
	}
	return n
}

// Encode renders code as "0x" plus 2*Len(code) lowercase hex digits.
func Encode(code uint64) string {
	return fmt.Sprintf("%s%0*x", Prefix, Len(code)*2, code)
}

// Valid reports whether s is lexically a code: "0x" and whole hex byte pairs.
func Valid(s string) bool {
	return codePattern.MatchString(s)
}

// Decode parses a code produced by Encode (or any even-length lowercase hex
// run). Malformed text and values wider than 64 bits fail with
// *types.InvalidCodeFormatError.
func Decode(s string) (uint64, error) {
	if !Valid(s) {
		return 0, &types.InvalidCodeFormatError{Code: s}
	}
	v, err := strconv.ParseUint(s[len(Prefix):], 16, 64)
	if err != nil {
		return 0, &types.InvalidCodeFormatError{Code: s, Cause: err}
	}
	return v, nil
}

// Canonical reports whether s is exactly what Encode would render for its
// value.
func Canonical(s string) bool {
	v, err := Decode(s)
	return err == nil && Encode(v) == s
}
