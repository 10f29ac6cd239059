package query

import (
	"strings"

	"github.com/desertthunder/mwl/internal/models"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Predicate is a compiled boolean expression over a [models.MovieRecord].
type Predicate struct {
	expression string
	program    *vm.Program
}

// Compile type-checks expression against the record environment.
func Compile(expression string) (*Predicate, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	program, err := expr.Compile(expression,
		expr.Env(newEnv(models.MovieRecord{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Reason: "failed to compile expression", Err: err}
	}

	return &Predicate{expression: expression, program: program}, nil
}

// Expression returns the trimmed source expression.
func (p *Predicate) Expression() string {
	return p.expression
}

// Eval runs the predicate against m.
func (p *Predicate) Eval(m models.MovieRecord) (bool, error) {
	result, err := expr.Run(p.program, newEnv(m))
	if err != nil {
		return false, &EvaluationError{Expression: p.expression, MovieID: m.ID, Err: err}
	}
	return result.(bool), nil
}

// Match reports whether m satisfies the predicate. Records that fail to evaluate do not match.
func (p *Predicate) Match(m models.MovieRecord) bool {
	ok, err := p.Eval(m)
	return err == nil && ok
}

// Filter returns the records that match, in input order.
func (p *Predicate) Filter(movies []models.MovieRecord) []models.MovieRecord {
	out := make([]models.MovieRecord, 0, len(movies))
	for _, m := range movies {
		if p.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

// newEnv exposes m and the helper functions to an expression.
func newEnv(m models.MovieRecord) map[string]any {
	env := make(map[string]any, 16)
	addHelperFunctions(env)

	env["id"] = m.ID
	env["title"] = m.Title
	env["genre"] = m.Genre
	env["year"] = int(m.Year.ValueOrZero())
	env["rating"] = m.Rating.ValueOrZero()
	env["hasYear"] = m.Year.Valid
	env["hasRating"] = m.Rating.Valid
	env["watched"] = m.Watched
	env["notes"] = m.Notes
	env["status"] = m.Status()
	return env
}

func addHelperFunctions(env map[string]any) {
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
}
