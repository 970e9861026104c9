package common

import "cmp"

// Coalesce returns the first non-zero value, or the zero value if every value is zero.
// Builder options use it so a zero argument keeps the current setting.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Clamp limits v to [lo, hi]. lo wins when the bounds are inverted.
//
// Parameters:
//   - v: the value to limit
//   - lo: the lower bound
//   - hi: the upper bound
//
// Returns:
//   - T: v limited to the bounds
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(hi, v))
}
