package buildfile

import (
	"testing"
)

func TestInspect(t *testing.T) {
	content := []byte(`
target(name = "base", srcs = ["base.cc"])

facade(
    name = "log",
    public = ["log.h"],
)

target("positional")

helper = "not a declaration"
print(helper)
`)

	decls, err := Inspect("BUILD.star", content)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}

	want := []Decl{
		{Kind: "target", Name: "base", Line: 2},
		{Kind: "facade", Name: "log", Line: 4},
		{Kind: "target", Name: "positional", Line: 9},
	}
	if len(decls) != len(want) {
		t.Fatalf("got %d decls, want %d: %+v", len(decls), len(want), decls)
	}
	for i := range want {
		if decls[i] != want[i] {
			t.Errorf("decl %d = %+v, want %+v", i, decls[i], want[i])
		}
	}
}

func TestInspectNonLiteralName(t *testing.T) {
	decls, err := Inspect("BUILD.star", []byte(`target(name = "pre_" + suffix)`))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(decls) != 1 || decls[0].Name != "" {
		t.Errorf("computed names should inspect to empty, got %+v", decls)
	}
}

func TestInspectParseError(t *testing.T) {
	_, err := Inspect("broken/BUILD.star", []byte("target(name =\n"))
	parseErr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if parseErr.File != "broken/BUILD.star" {
		t.Errorf("ParseError.File = %q", parseErr.File)
	}
}

func TestInspectDoesNotExecute(t *testing.T) {
	// fail() would abort execution; static inspection never runs it.
	content := []byte(`
fail("must not run")
target(name = "after")
`)
	decls, err := Inspect("BUILD.star", content)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(decls) != 1 || decls[0].Name != "after" {
		t.Errorf("decls = %+v", decls)
	}
}
