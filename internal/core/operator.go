package core

import (
	"strings"
	"unicode"
)

// Operator is the reserved identity of the single support agent.
type Operator struct {
	// Name is the reserved identifier as it appears on the wire ("admin").
	Name string
	// Label is the canonical capitalized display name ("Admin").
	Label string
}

// NewOperator builds an operator identity from the configured name.
func NewOperator(name string) Operator {
	return Operator{Name: name, Label: capitalize(name)}
}

// Is reports whether the given identifier refers to the operator.
// Comparison is case-insensitive.
func (o Operator) Is(name string) bool {
	return strings.EqualFold(name, o.Name)
}

// DisplayName returns the name shown to clients for the given sender:
// the canonical label for the operator, the identifier verbatim otherwise.
func (o Operator) DisplayName(sender string) string {
	if o.Is(sender) {
		return o.Label
	}
	return sender
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
