package preproc

import (
	"fmt"
	"strings"
	"testing"
)

// payloadOfN builds an invocation payload of n distinct tokens.
func payloadOfN(n int) string {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("arg%d", i)
	}
	return strings.Join(tokens, ", ")
}

func TestCountEveryLength(t *testing.T) {
	for n := 0; n <= MaxArgs; n++ {
		if got := Count(Split(payloadOfN(n))); got != n {
			t.Errorf("Count of %d tokens = %d, want %d", n, got, n)
		}
	}
}

func TestCountZeroNotOne(t *testing.T) {
	// The zero-argument invocation still arrives as one empty argument;
	// the detector slot must pull the count down to zero.
	if got := Count(Split("")); got != 0 {
		t.Errorf("Count of empty invocation = %d, want 0", got)
	}
	if got := Count(nil); got != 0 {
		t.Errorf("Count(nil) = %d, want 0", got)
	}
}

func TestCountSingleArgumentForms(t *testing.T) {
	tests := []struct {
		payload string
		want    int
	}{
		{"a", 1},
		{"(a, b)", 1},     // parenthesized group is one argument
		{"f(x, y, z)", 1}, // call-shaped token is one argument
		{`"a, b"`, 1},
		{"a, b", 2},
		{"a, (b, c), d", 3},
	}
	for _, tt := range tests {
		if got := Count(Split(tt.payload)); got != tt.want {
			t.Errorf("Count(Split(%q)) = %d, want %d", tt.payload, got, tt.want)
		}
	}
}

func TestCountBoundary(t *testing.T) {
	if got := Count(Split(payloadOfN(MaxArgs))); got != MaxArgs {
		t.Errorf("Count of %d tokens = %d, want %d", MaxArgs, got, MaxArgs)
	}
}

func TestCountBeyondMaxIsUndefined(t *testing.T) {
	// Above MaxArgs the contract only promises "no diagnosis": the call
	// must not panic, and the result is whatever the shifted selection
	// lands on. Do not assert a particular wrong value.
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Count beyond MaxArgs panicked: %v", r)
		}
	}()
	_ = Count(Split(payloadOfN(MaxArgs + 1)))
	_ = Count(Split(payloadOfN(MaxArgs + 10)))
}

func TestCountIsPure(t *testing.T) {
	l := Split(payloadOfN(7))
	first := Count(l)
	for i := 0; i < 5; i++ {
		if got := Count(l); got != first {
			t.Fatalf("Count changed result on repeat call: %d then %d", first, got)
		}
	}
}

func TestCountdownTableLength(t *testing.T) {
	// Table length and supported maximum must match exactly: sixty-three
	// descending literals plus the detector slot cover positions 64..0.
	if len(countdown) != MaxArgs-1 {
		t.Errorf("countdown table has %d entries, want %d", len(countdown), MaxArgs-1)
	}
	if countdown[0] != "64" || countdown[len(countdown)-1] != "2" {
		t.Errorf("countdown table endpoints = %s..%s, want 64..2",
			countdown[0], countdown[len(countdown)-1])
	}
	if len(onesTable) != MaxArgs {
		t.Errorf("ones table has %d entries, want %d", len(onesTable), MaxArgs)
	}
}
