package passgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sethvargo/go-password/password"
)

// Character classes usable as pool building blocks.
const (
	Lower   = password.LowerLetters
	Upper   = password.UpperLetters
	Digits  = password.Digits
	Symbols = password.Symbols
)

var classes = map[string]string{
	"lower":   Lower,
	"upper":   Upper,
	"digits":  Digits,
	"symbols": Symbols,
	"alpha":   Lower + Upper,
	"alnum":   Lower + Upper + Digits,
	"all":     Lower + Upper + Digits + Symbols,
}

// Classes returns the names accepted by ClassPool, sorted.
func Classes() []string {
	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClassPool builds a pool from the named character classes in the given
// order. Names are case-insensitive and surrounding whitespace is ignored.
func ClassPool(names ...string) (*Pool, error) {
	p := New()
	for _, name := range names {
		chars, ok := classes[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownClass, name)
		}
		p.ExtendFromString(chars)
	}
	return p, nil
}
