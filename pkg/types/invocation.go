package types

import (
	"fmt"
	"strings"
)

// Invocation is the ordered command-line token list that fully determines a
// pipeline run. Switches stand alone; options are a flag followed by its
// value.
type Invocation []string

// Lookup returns the token that follows the first occurrence of flag.
// Returns ErrFlagNotFound if flag is absent or is the last token.
func (inv Invocation) Lookup(flag string) (string, error) {
	for i, tok := range inv {
		if tok != flag {
			continue
		}
		if i+1 >= len(inv) {
			return "", fmt.Errorf("%s has no value: %w", flag, ErrFlagNotFound)
		}
		return inv[i+1], nil
	}
	return "", fmt.Errorf("%s: %w", flag, ErrFlagNotFound)
}

// Has reports whether flag appears anywhere in the token list.
func (inv Invocation) Has(flag string) bool {
	for _, tok := range inv {
		if tok == flag {
			return true
		}
	}
	return false
}

// Contains reports whether flag is immediately followed by value.
func (inv Invocation) Contains(flag, value string) bool {
	for i := 0; i+1 < len(inv); i++ {
		if inv[i] == flag && inv[i+1] == value {
			return true
		}
	}
	return false
}

// String joins the tokens with spaces, quoting tokens that contain
// whitespace. Intended for logs and display only.
func (inv Invocation) String() string {
	parts := make([]string, len(inv))
	for i, tok := range inv {
		if strings.ContainsAny(tok, " \t") {
			parts[i] = fmt.Sprintf("%q", tok)
			continue
		}
		parts[i] = tok
	}
	return strings.Join(parts, " ")
}
