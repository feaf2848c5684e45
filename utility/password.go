package utility

import (
	"math/rand/v2"
	"strings"
)

const (
	DefaultPasswordLength = 12
	MinPasswordLength     = 4
	MaxPasswordLength     = 50
)

// Password alphabets.
const (
	Letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits  = "0123456789"
	Symbols = "!@#$%&*()_+-=[]{}|;:,.<>?"
)

// Source supplies uniformly distributed integers in [0, n).
//
// *rand.Rand from math/rand/v2 satisfies Source. Implementations used by the
// server must be safe for concurrent use.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource draws from the math/rand/v2 global generator. It is not
// suitable for secrets.
var DefaultSource Source = globalSource{}

// PasswordResult is a generated password.
type PasswordResult struct {
	Password       string `json:"senha"`
	Length         int    `json:"tamanho"`
	IncludeSymbols bool   `json:"incluiEspeciais"`
}

// Alphabet returns the characters a password may be drawn from.
func Alphabet(symbols bool) string {
	if symbols {
		return Letters + Digits + Symbols
	}
	return Letters + Digits
}

// Password draws length characters, with replacement, from the alphabet
// selected by symbols. A nil src uses DefaultSource.
func Password(length int, symbols bool, src Source) (PasswordResult, error) {
	if length < MinPasswordLength || length > MaxPasswordLength {
		return PasswordResult{}, newError(KindOutOfDomain, "tamanho", "Tamanho deve estar entre 4 e 50 caracteres.")
	}
	if src == nil {
		src = DefaultSource
	}
	alphabet := Alphabet(symbols)

	var sb strings.Builder
	sb.Grow(length)
	for range length {
		sb.WriteByte(alphabet[src.IntN(len(alphabet))])
	}
	pw := sb.String()
	return PasswordResult{
		Password:       pw,
		Length:         len(pw),
		IncludeSymbols: symbols,
	}, nil
}
