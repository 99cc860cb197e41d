// Package cadence: cycle arithmetic over press indices.
package cadence

import "math"

// gcd returns the greatest common divisor of a and b (Euclid).
func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// lcm returns the least common multiple of a and b, reporting false when
// the result would not fit in uint64.
func lcm(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	q := a / gcd(a, b)
	if q > math.MaxUint64/b {
		return 0, false
	}
	return q * b, true
}
