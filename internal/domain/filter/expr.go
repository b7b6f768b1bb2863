package filter

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"lumbertrace/internal/core/apperror"
)

// Expression is a compiled CEL predicate over a record exposed as `m`,
// e.g. `m.tip == "Materie prima" && m.countryOfHarvest == "Romania"`.
type Expression struct {
	source  string
	program cel.Program
}

var exprEnv = mustEnv()

func mustEnv() *cel.Env {
	env, err := cel.NewEnv(
		cel.Variable("m", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		panic(fmt.Sprintf("filter: build cel env: %v", err))
	}
	return env
}

// Compile parses and type-checks a boolean expression.
func Compile(source string) (*Expression, error) {
	ast, iss := exprEnv.Compile(source)
	if iss != nil && iss.Err() != nil {
		return nil, apperror.NewValidation("invalid filter expression").
			WithDetail("expression", source).
			WithDetail("reason", iss.Err().Error())
	}
	if ast.OutputType() != cel.BoolType && ast.OutputType() != cel.DynType {
		return nil, apperror.NewValidation("filter expression must evaluate to a boolean").
			WithDetail("expression", source)
	}

	prg, err := exprEnv.Program(ast)
	if err != nil {
		return nil, apperror.NewValidation("invalid filter expression").
			WithDetail("expression", source).
			WithCause(err)
	}
	return &Expression{source: source, program: prg}, nil
}

// Matches evaluates the expression. A missing attribute evaluates to false
// instead of failing the whole listing.
func (e *Expression) Matches(fields map[string]any) bool {
	out, _, err := e.program.Eval(map[string]any{"m": fields})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}

// String returns the source text.
func (e *Expression) String() string {
	return e.source
}
