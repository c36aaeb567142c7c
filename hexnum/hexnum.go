//
// hexnum.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package hexnum implements fixed-width hexadecimal numbers as digit
// sequences: parsing, power-of-two normalization, high/low splitting,
// single-digit multiplication, and the shift-and-carry combination of
// partial products.
package hexnum

import (
	"errors"
	"fmt"

	"github.com/markkurossi/hexmul/pkg/math"
)

// ErrInput identifies invalid operand input: an empty line, an
// unreadable stream, or a non-hexadecimal character.
var ErrInput = errors.New("invalid input")

const digits = "0123456789abcdef"

// Number is a hexadecimal number as a sequence of digit values 0-15,
// most-significant digit first. Numbers are not modified after
// creation.
type Number []byte

func inputf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInput, fmt.Sprintf(format, a...))
}

// Parse parses a hexadecimal string into a Number. Both upper and
// lowercase digits are accepted.
func Parse(s string) (Number, error) {
	if len(s) == 0 {
		return nil, inputf("empty number")
	}
	n := make(Number, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			n[i] = c - '0'
		case c >= 'a' && c <= 'f':
			n[i] = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			n[i] = c - 'A' + 10
		default:
			return nil, inputf("invalid hexadecimal character %q", c)
		}
	}
	return n, nil
}

func (n Number) String() string {
	buf := make([]byte, len(n))
	for i, d := range n {
		buf[i] = digits[d]
	}
	return string(buf)
}

// Split divides the number into its high and low halves. The length
// of n must be even.
func (n Number) Split() (hi, lo Number) {
	mid := len(n) / 2
	return n[:mid], n[mid:]
}

// Normalize left-pads both numbers with zero digits so that they have
// the same length, the smallest power of two holding the longer one.
// Normalizing an already normalized pair returns the pair unchanged.
func Normalize(a, b Number) (Number, Number) {
	size := len(a)
	if len(b) > size {
		size = len(b)
	}
	size = math.NextPow2(size)
	return a.pad(size), b.pad(size)
}

func (n Number) pad(size int) Number {
	if len(n) == size {
		return n
	}
	padded := make(Number, size)
	copy(padded[size-len(n):], n)
	return padded
}

// MulDigit multiplies two single-digit numbers and returns the exact
// two-digit product: MulDigit("f", "f") is "e1".
func MulDigit(a, b Number) Number {
	p := int(a[0]) * int(b[0])
	return Number{byte(p / 16), byte(p % 16)}
}

// Combine sums the four partial products of one multiplication step
// into the final 2n-digit product. The parts are indexed high*high,
// high*low, low*high, low*low; they all have the same length n and
// are shifted left by n, n/2, n/2, and zero digit positions before
// the digit-wise carry-propagating addition.
//
// The product of two n-digit numbers fits in 2n digits, so a carry
// out of the most significant digit means a corrupted partial
// product, not a valid result.
func Combine(parts [4]Number) (Number, error) {
	n := len(parts[0])
	for _, part := range parts {
		if len(part) != n {
			return nil, fmt.Errorf("partial product length mismatch: %d vs %d",
				len(part), n)
		}
	}
	shifts := [4]int{n, n / 2, n / 2, 0}

	result := make(Number, 2*n)
	var carry int
	for col := 2*n - 1; col >= 0; col-- {
		sum := carry
		for i, part := range parts {
			idx := col - (n - shifts[i])
			if idx >= 0 && idx < n {
				sum += int(part[idx])
			}
		}
		result[col] = byte(sum % 16)
		carry = sum / 16
	}
	if carry != 0 {
		return nil, fmt.Errorf("carry out of the most significant digit: %d",
			carry)
	}
	return result, nil
}
