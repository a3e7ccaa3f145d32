package passgen

import (
	"fmt"
	"strings"
)

// Generator draws passwords from pools using a single random source.
type Generator struct {
	src Source
}

// NewGenerator returns a Generator using src. A nil src selects the
// process-wide math/rand/v2 generator.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = globalSource{}
	}
	return &Generator{src: src}
}

// Password returns a password of length characters, each drawn
// independently and uniformly from p. Characters may repeat.
//
// It returns ErrEmptyPool if p has no characters, whatever the length.
func (g *Generator) Password(p *Pool, length int) (string, error) {
	if err := checkSample(p, length, 0); err != nil {
		return "", err
	}
	return g.sample(p, length)
}

// Passwords returns count independently generated passwords in generation
// order.
func (g *Generator) Passwords(p *Pool, length, count int) ([]string, error) {
	if err := checkSample(p, length, count); err != nil {
		return nil, err
	}

	passwords := make([]string, 0, count)
	for range count {
		pw, err := g.sample(p, length)
		if err != nil {
			return nil, err
		}
		passwords = append(passwords, pw)
	}
	return passwords, nil
}

func checkSample(p *Pool, length, count int) error {
	if p == nil || p.IsEmpty() {
		return ErrEmptyPool
	}
	if length < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeLength, length)
	}
	if count < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeCount, count)
	}
	return nil
}

func (g *Generator) sample(p *Pool, length int) (string, error) {
	n := p.Len()

	var b strings.Builder
	b.Grow(length)
	for range length {
		idx := g.src.IntN(n)
		ch, ok := p.Get(idx)
		if !ok {
			return "", fmt.Errorf("passgen: source returned index %d outside [0, %d)", idx, n)
		}
		b.WriteRune(ch)
	}
	return b.String(), nil
}

var defaultGenerator = NewGenerator(nil)

// GeneratePassword is Password on a Generator backed by the default source.
func GeneratePassword(p *Pool, length int) (string, error) {
	return defaultGenerator.Password(p, length)
}

// GenerateNPasswords is Passwords on a Generator backed by the default source.
func GenerateNPasswords(p *Pool, length, count int) ([]string, error) {
	return defaultGenerator.Passwords(p, length, count)
}
