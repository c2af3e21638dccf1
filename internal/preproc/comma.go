package preproc

// commaDispatch is the fixed forwarding pair: index 0 expands to nothing,
// index 1 to a separator followed by the arguments.
var commaDispatch = [2]func(List) string{
	func(List) string { return "" },
	func(l List) string { return ", " + l.Join() },
}

// CommaArgs renders the list for appending after a preceding parameter in a
// forwarding call. A non-empty list gains a leading comma separator; an
// empty list expands to nothing, so the caller never ends up with a
// dangling separator.
func CommaArgs(l List) string {
	l = normalize(l)
	return commaDispatch[hasArgsBit(l)](l)
}
