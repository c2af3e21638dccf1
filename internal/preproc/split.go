// Package preproc models text-substitution handling of variadic argument
// lists: splitting an invocation payload into arguments, detecting whether
// the list is genuinely empty, counting up to 64 arguments, and eliding the
// leading comma when forwarding an empty list.
//
// The detection problem is subtle: an invocation with nothing between the
// parens still carries one argument (an empty one), so argument counting
// alone cannot tell "called with nothing" from "called with one empty
// argument". The detector resolves this with four comma probes; see detect.go.
package preproc

import "strings"

// List is an ordered argument list. An invocation payload with nothing in it
// splits to a single empty argument, mirroring substitution semantics.
type List []string

// Split divides an invocation payload at top-level commas. Commas inside
// parenthesized groups or string literals do not separate arguments.
// Arguments keep their interior spacing but are trimmed at the edges.
func Split(payload string) List {
	args := List{}
	var buf strings.Builder
	depth := 0
	var quote rune

	for _, r := range payload {
		if quote != 0 {
			buf.WriteRune(r)
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'':
			quote = r
			buf.WriteRune(r)
		case '(', '[', '{':
			depth++
			buf.WriteRune(r)
		case ')', ']', '}':
			depth--
			buf.WriteRune(r)
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(buf.String()))
				buf.Reset()
			} else {
				buf.WriteRune(r)
			}
		default:
			buf.WriteRune(r)
		}
	}
	args = append(args, strings.TrimSpace(buf.String()))
	return args
}

// Join renders the list back into payload form.
func (l List) Join() string {
	return strings.Join(l, ", ")
}

// normalize maps a caller-constructed empty slice to the canonical form of
// an empty invocation: a single empty argument.
func normalize(l List) List {
	if len(l) == 0 {
		return List{""}
	}
	return l
}
