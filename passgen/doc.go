// Package passgen generates random passwords from a user-defined pool of
// characters and relates password length, pool size and entropy.
//
// A Pool is an ordered set of unique runes. It keeps insertion order (until
// Sort is called), rejects duplicates silently and supports indexed lookup,
// which is what uniform sampling needs:
//
//	pool := passgen.Parse("0123456789abcdef")
//	pool.RemoveAll("01")
//
//	pw, err := passgen.GeneratePassword(pool, 16)
//	if errors.Is(err, passgen.ErrEmptyPool) {
//		// nothing to sample from
//	}
//
// Sampling is with replacement: every position of a password is drawn
// independently and uniformly from the pool, so characters may repeat.
// The random source is pluggable through the Source interface. Use
// NewSeededSource for reproducible output and CryptoSource for credentials.
//
// CalculateEntropy and CalculateLength follow IEEE-754 semantics for the
// degenerate pool sizes 0 and 1 and return infinities or NaN rather than
// errors.
//
// Pools are not safe for concurrent mutation. Callers sharing a pool between
// goroutines must synchronise access themselves.
package passgen
