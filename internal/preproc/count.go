package preproc

import "strconv"

// MaxArgs is the highest argument count the lookup table supports. The
// table length and this limit must match exactly; counting more arguments
// produces an undefined result rather than a diagnostic.
const MaxArgs = 64

// countdown is the descending lookup table, 64 through 2. The slot for the
// final position is supplied per call from the detector, which resolves the
// zero-versus-one-argument boundary the shift alone cannot see.
var countdown = buildCountdown()

func buildCountdown() []string {
	t := make([]string, 0, MaxArgs-1)
	for n := MaxArgs; n >= 2; n-- {
		t = append(t, strconv.Itoa(n))
	}
	return t
}

// Count returns the number of arguments in the list as an integer in
// [0, MaxArgs]. The list is appended ahead of the countdown table, shifting
// it right by the argument count, so the fixed selection position lands on
// the matching literal. Beyond MaxArgs arguments the selection lands inside
// the caller's own arguments; the result is incorrect and not diagnosed.
func Count(l List) int {
	l = normalize(l)
	table := make([]string, 0, MaxArgs)
	table = append(table, countdown...)
	table = append(table, strconv.Itoa(hasArgsBit(l)))

	n, _ := strconv.Atoi(selectSlot(l, table))
	return n
}
