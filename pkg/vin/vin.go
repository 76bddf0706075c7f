// Package vin validates Vehicle Identification Numbers per ISO 3779,
// including the North American check digit at position 9.
package vin

import (
	"regexp"
	"strings"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// Length is the number of characters in a modern VIN.
const Length = 17

// checkPos is the zero-based index of the check digit.
const checkPos = 8

// VIN format: 17 alphanumeric characters, excluding I, O, Q.
var vinRegex = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

var weights = [Length]int{8, 7, 6, 5, 4, 3, 2, 10, 0, 9, 8, 7, 6, 5, 4, 3, 2}

var transliteration = map[byte]int{
	'A': 1, 'B': 2, 'C': 3, 'D': 4, 'E': 5, 'F': 6, 'G': 7, 'H': 8,
	'J': 1, 'K': 2, 'L': 3, 'M': 4, 'N': 5, 'P': 7, 'R': 9,
	'S': 2, 'T': 3, 'U': 4, 'V': 5, 'W': 6, 'X': 7, 'Y': 8, 'Z': 9,
}

// Result is the outcome of validating a VIN.
type Result struct {
	OK      bool   `json:"ok"`
	VIN     string `json:"vin"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Normalize upper-cases and trims a VIN.
func Normalize(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

// Validate checks format and check digit, returning a structured result.
func Validate(v string) Result {
	n := Normalize(v)
	if !vinRegex.MatchString(n) {
		return Result{
			VIN:     n,
			Code:    domain.CodeInvalidVINFormat,
			Message: "VIN must be 17 characters of A-Z and 0-9, excluding I, O and Q",
		}
	}

	want := CheckDigit(n)
	if n[checkPos] != want {
		return Result{
			VIN:     n,
			Code:    domain.CodeCheckDigitFail,
			Message: "check digit is " + string(n[checkPos]) + ", expected " + string(want),
		}
	}

	return Result{OK: true, VIN: n}
}

// Check validates v and returns a *domain.ValidationError on failure.
func Check(v string) error {
	r := Validate(v)
	if r.OK {
		return nil
	}
	wrapped := domain.ErrInvalidVIN
	if r.Code == domain.CodeCheckDigitFail {
		wrapped = domain.ErrCheckDigit
	}
	return domain.NewValidationError("vin", r.VIN, r.Code, wrapped)
}

// CheckDigit computes the expected check digit for a well-formed VIN.
// The character at the check position is ignored. Returns 0 if v is
// not 17 characters long.
func CheckDigit(v string) byte {
	if len(v) != Length {
		return 0
	}

	sum := 0
	for i := range Length {
		sum += value(v[i]) * weights[i]
	}

	rem := sum % 11
	if rem == 10 {
		return 'X'
	}
	return byte('0' + rem)
}

func value(c byte) int {
	if c >= '0' && c <= '9' {
		return int(c - '0')
	}
	return transliteration[c]
}
