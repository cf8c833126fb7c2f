package finding

import (
	"fmt"
	"reflect"

	"github.com/google/cel-go/cel"
)

// Query is a compiled CEL expression over finding fields.
//
// Variables available to the expression:
//   - index, title, ref: section identity (string)
//   - major, minor: the parts of the section number (int)
//   - rating: the normalized rating, e.g. "high" (string)
//   - devices: affected device names (list of string)
//   - ratings: the rating record, entry name to value (map of string to string)
//   - impact, ease, recommendation: body text (string)
type Query struct {
	expr    string
	program cel.Program
}

var queryEnvOptions = []cel.EnvOption{
	cel.Variable("index", cel.StringType),
	cel.Variable("title", cel.StringType),
	cel.Variable("ref", cel.StringType),
	cel.Variable("major", cel.IntType),
	cel.Variable("minor", cel.IntType),
	cel.Variable("rating", cel.StringType),
	cel.Variable("devices", cel.ListType(cel.StringType)),
	cel.Variable("ratings", cel.MapType(cel.StringType, cel.StringType)),
	cel.Variable("impact", cel.StringType),
	cel.Variable("ease", cel.StringType),
	cel.Variable("recommendation", cel.StringType),
}

// NewQuery compiles expr. The expression must evaluate to a bool.
func NewQuery(expr string) (*Query, error) {
	env, err := cel.NewEnv(queryEnvOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss.Err() != nil {
		return nil, fmt.Errorf("failed to compile query %q: %w", expr, iss.Err())
	}
	if !reflect.DeepEqual(ast.OutputType(), cel.BoolType) {
		return nil, fmt.Errorf("query %q must evaluate to bool, got %s", expr, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to build program for query %q: %w", expr, err)
	}

	return &Query{expr: expr, program: prg}, nil
}

// String returns the source expression.
func (q *Query) String() string {
	return q.expr
}

// Match evaluates the query against one finding.
func (q *Query) Match(f *Finding) (bool, error) {
	out, _, err := q.program.Eval(activation(f))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate query on %s: %w", f.Index, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("query %q returned %T, want bool", q.expr, out.Value())
	}
	return b, nil
}

// Select returns the findings the query matches, preserving order.
func (q *Query) Select(findings []*Finding) ([]*Finding, error) {
	var out []*Finding
	for _, f := range findings {
		ok, err := q.Match(f)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func activation(f *Finding) map[string]any {
	return map[string]any{
		"index":          f.Index,
		"title":          f.Title,
		"ref":            f.Key,
		"major":          int64(f.Number.Major),
		"minor":          int64(f.Number.Minor),
		"rating":         f.Rating().String(),
		"devices":        f.DeviceNames(),
		"ratings":        f.Ratings.Map(),
		"impact":         f.Impact,
		"ease":           f.Ease,
		"recommendation": f.Recommendation,
	}
}
