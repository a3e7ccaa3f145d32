package passgen

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source yields uniformly distributed integers in [0, n). n is always
// positive when called by this package.
type Source interface {
	IntN(n int) int
}

// NewSeededSource returns a deterministic source. Two sources created with
// the same seed produce the same sequence.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// CryptoSource returns a source backed by crypto/rand.
func CryptoSource() Source {
	return rand.New(cryptoSource{})
}

type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	// Read never returns an error and always fills b.
	cryptorand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// globalSource draws from the math/rand/v2 top-level generator, which is
// safe for concurrent use.
type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}
