// Static inspection of build files: declarations are extracted from the
// AST without executing anything, for linting and listings.

package buildfile

import (
	"fmt"
	"path/filepath"

	"go.starlark.net/syntax"
)

// Decl is a target or facade declaration found by static inspection.
type Decl struct {
	// Kind is the declaring builtin: "target" or "facade".
	Kind string
	// Name is the declared label, or "" when it is not a literal.
	Name string
	// Line is the declaration's line number.
	Line int
}

// Inspect statically parses a build file and extracts its top-level target
// and facade declarations. It does NOT execute the file.
func Inspect(filename string, content []byte) ([]Decl, error) {
	f, err := syntax.Parse(filename, content, 0) //nolint:staticcheck // SA1019: will migrate to ParseOptions later
	if err != nil {
		return nil, &ParseError{File: filename, Message: err.Error()}
	}

	var decls []Decl
	for _, stmt := range f.Stmts {
		exprStmt, ok := stmt.(*syntax.ExprStmt)
		if !ok {
			continue
		}
		call, ok := exprStmt.X.(*syntax.CallExpr)
		if !ok {
			continue
		}
		fn, ok := call.Fn.(*syntax.Ident)
		if !ok {
			continue
		}
		if fn.Name != "target" && fn.Name != "facade" {
			continue
		}

		decls = append(decls, Decl{
			Kind: fn.Name,
			Name: callName(call),
			Line: int(fn.NamePos.Line),
		})
	}
	return decls, nil
}

// callName pulls the name argument out of a declaration call: either the
// name= keyword or the first positional string literal.
func callName(call *syntax.CallExpr) string {
	for _, arg := range call.Args {
		if bin, ok := arg.(*syntax.BinaryExpr); ok && bin.Op == syntax.EQ {
			if ident, ok := bin.X.(*syntax.Ident); ok && ident.Name == "name" {
				return literalString(bin.Y)
			}
		}
	}
	if len(call.Args) > 0 {
		if _, isKwarg := call.Args[0].(*syntax.BinaryExpr); !isKwarg {
			return literalString(call.Args[0])
		}
	}
	return ""
}

func literalString(expr syntax.Expr) string {
	lit, ok := expr.(*syntax.Literal)
	if !ok || lit.Token != syntax.STRING {
		return ""
	}
	s, ok := lit.Value.(string)
	if !ok {
		return ""
	}
	return s
}

// ParseError represents an error during static parsing.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", filepath.Base(e.File), e.Message)
}
