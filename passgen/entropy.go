package passgen

import "math"

// CalculateEntropy returns the entropy in bits of a password of length
// characters drawn uniformly from poolSize characters:
// length * log2(poolSize).
//
// A zero length always yields 0, including for poolSize 0 where the
// product would otherwise be 0 * -Inf.
func CalculateEntropy(length, poolSize int) float64 {
	if length == 0 {
		return 0
	}
	return float64(length) * math.Log2(float64(poolSize))
}

// CalculateLength returns the minimum length needed to reach entropy bits
// with poolSize characters: ceil(entropy / log2(poolSize)).
//
// Degenerate pool sizes are not errors. poolSize 1 yields +Inf for positive
// entropy and NaN for zero entropy. poolSize 0 yields a (negative) zero.
func CalculateLength(entropy, poolSize float64) float64 {
	return math.Ceil(entropy / math.Log2(poolSize))
}

// PoolEntropy is CalculateEntropy for a password of length drawn from p.
func PoolEntropy(p *Pool, length int) float64 {
	return CalculateEntropy(length, p.Len())
}
