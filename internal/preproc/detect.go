package preproc

import "fmt"

// Classification is the detector verdict: a list is exactly one of empty or
// non-empty. The function is total; every input classifies.
type Classification int

const (
	// NonEmpty means the list carries at least one token.
	NonEmpty Classification = iota
	// Empty means the invocation supplied no arguments at all.
	Empty
)

func (c Classification) String() string {
	if c == Empty {
		return "empty"
	}
	return "non-empty"
}

// onesTable is the comma-probe selector: sixty-three ones and a final zero.
// After the argument shift, the selected slot reads 1 exactly when the list
// holds two or more arguments.
var onesTable = buildOnesTable()

func buildOnesTable() []string {
	t := make([]string, MaxArgs)
	for i := range t {
		t[i] = "1"
	}
	t[MaxArgs-1] = "0"
	return t
}

// selectSlot appends table after the arguments and picks the slot at the
// fixed position following the last possible argument. Each supplied
// argument shifts the table right by one, so the position selected encodes
// the argument count. Beyond MaxArgs arguments the selected slot falls among
// the arguments themselves and the result is meaningless.
func selectSlot(l List, table []string) string {
	slots := make([]string, 0, len(l)+len(table))
	slots = append(slots, l...)
	slots = append(slots, table...)
	return slots[MaxArgs]
}

// hasComma reports whether the list was split into two or more arguments,
// i.e. whether its payload carried a top-level comma.
func hasComma(l List) bool {
	return selectSlot(normalize(l), onesTable) == "1"
}

// caseTable maps a pasted probe code to its expansion. Only the code for
// "no comma in the first three probes, comma in the fourth" has an entry,
// and it expands to a sentinel comma. The other fifteen codes paste into an
// undefined case token with no comma in it.
var caseTable = map[string]string{
	"0001": ",",
}

// defaultExpander carries only the reserved comma helper.
var defaultExpander = NewExpander()

// probes runs the four independent comma probes over transformed variants
// of the payload:
//
//  1. the raw payload — a comma means two or more arguments;
//  2. prefixed with the comma helper — a comma means the payload is a single
//     parenthesized group, which invokes the helper;
//  3. suffixed with () — a comma means the payload itself names a
//     comma-producing function-like macro;
//  4. both — a comma means the payload does not interfere with invoking the
//     helper, which is true in particular of the empty payload.
//
// No single probe is conclusive: legitimate non-empty payloads can contain
// commas or look like invocations. Only the full four-bit combination is.
func probes(l List, e *Expander) [4]bool {
	raw := l.Join()
	return [4]bool{
		hasComma(Split(e.Expand(raw))),
		hasComma(Split(e.Expand(CommaHelper + " " + raw))),
		hasComma(Split(e.Expand(raw + "()"))),
		hasComma(Split(e.Expand(CommaHelper + " " + raw + "()"))),
	}
}

// Detect classifies the list as Empty or NonEmpty.
func Detect(l List) Classification {
	return DetectWith(defaultExpander, l)
}

// DetectWith classifies using a caller-supplied expander, which lets
// diagnostics and tests register additional comma-producing macros and
// observe how such payloads interact with the probes.
func DetectWith(e *Expander, l List) Classification {
	p := probes(normalize(l), e)
	code := fmt.Sprintf("%d%d%d%d", bit(p[0]), bit(p[1]), bit(p[2]), bit(p[3]))

	// Second stage: paste the code into the case table. A hit produces the
	// sentinel comma, which is itself comma-probed for the final verdict.
	expansion, ok := caseTable[code]
	if !ok {
		expansion = "case_" + code
	}
	if hasComma(Split(expansion)) {
		return Empty
	}
	return NonEmpty
}

// HasArgs reports whether the list carries one or more arguments.
func HasArgs(l List) bool {
	return Detect(l) == NonEmpty
}

// hasArgsBit is HasArgs as the 0/1 slot value used by Count and CommaArgs.
func hasArgsBit(l List) int {
	return bit(HasArgs(l))
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}
