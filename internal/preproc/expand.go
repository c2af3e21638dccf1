package preproc

import (
	"strings"
	"unicode"
)

// CommaHelper is the reserved function-like macro used by the comma probes.
// It expands to a lone comma when invoked with parentheses and is left
// untouched otherwise. A payload that names this identifier itself can
// defeat the probes; that input is outside the supported contract.
const CommaHelper = "__facet_comma_if_called"

// Expander performs a single rescan-free pass of function-like macro
// substitution over a payload string. Only macros registered with Define
// are substituted, and only when the identifier is immediately followed
// (modulo whitespace) by a parenthesized group.
type Expander struct {
	macros map[string]string
}

// NewExpander returns an expander with the reserved comma helper defined.
func NewExpander() *Expander {
	e := &Expander{macros: make(map[string]string)}
	e.Define(CommaHelper, ",")
	return e
}

// Define registers a function-like macro with a fixed replacement.
// Arguments of the invocation are consumed and discarded.
func (e *Expander) Define(name, replacement string) {
	e.macros[name] = replacement
}

// Expand substitutes registered macro invocations in payload.
func (e *Expander) Expand(payload string) string {
	var out strings.Builder
	runes := []rune(payload)
	i := 0
	for i < len(runes) {
		r := runes[i]
		if !isIdentStart(r) {
			out.WriteRune(r)
			i++
			continue
		}

		start := i
		for i < len(runes) && isIdentPart(runes[i]) {
			i++
		}
		ident := string(runes[start:i])

		replacement, defined := e.macros[ident]
		if !defined {
			out.WriteString(ident)
			continue
		}

		// A function-like macro only expands when invoked.
		j := i
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j >= len(runes) || runes[j] != '(' {
			out.WriteString(ident)
			continue
		}

		// Consume the balanced invocation group.
		depth := 0
		for j < len(runes) {
			switch runes[j] {
			case '(':
				depth++
			case ')':
				depth--
			}
			j++
			if depth == 0 {
				break
			}
		}
		out.WriteString(replacement)
		i = j
	}
	return out.String()
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
