// -*- go -*-
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package math

// NextPow2 returns the smallest power of two that is greater than or
// equal to n. Values smaller than one map to one.
func NextPow2(n int) int {
	result := 1
	for result < n {
		result *= 2
	}
	return result
}

// Log2 returns the base-2 logarithm of n. The argument must be a
// positive power of two.
func Log2(n int) int {
	var result int
	for n > 1 {
		n /= 2
		result++
	}
	return result
}
