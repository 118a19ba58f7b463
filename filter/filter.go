// Package filter compiles expression-language filters evaluated client-side
// against fetched titles. The API only filters by genre, year and type;
// anything finer grained happens here after the pages arrive.
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/movq/moviefetch/moviesdb"
)

// TitleEnv is the flattened view of a title exposed to filter expressions.
type TitleEnv struct {
	ID       string
	Title    string
	Type     string
	IsSeries bool
	Year     int
	HasImage bool
}

// Filter is a compiled title filter.
type Filter struct {
	program    *vm.Program
	expression string
}

// helperFunctions are the static helpers available inside expressions.
func helperFunctions() map[string]any {
	return map[string]any{
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// Compile compiles a filter expression.
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	env := helperFunctions()
	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	return &Filter{program: program, expression: expression}, nil
}

// String returns the source expression.
func (f *Filter) String() string { return f.expression }

// Match evaluates the filter against one title. Evaluation errors count as
// no match.
func (f *Filter) Match(title moviesdb.Title) bool {
	env := helperFunctions()

	te := TitleEnv{ID: title.ID}
	if title.TitleText != nil {
		te.Title = title.TitleText.Text
	}
	if title.TitleType != nil {
		te.Type = title.TitleType.Text
		te.IsSeries = title.TitleType.IsSeries
	}
	if title.ReleaseYear != nil && title.ReleaseYear.Year != nil {
		te.Year = *title.ReleaseYear.Year
	}
	te.HasImage = title.PrimaryImage != nil

	env["ID"] = te.ID
	env["Title"] = te.Title
	env["Type"] = te.Type
	env["IsSeries"] = te.IsSeries
	env["Year"] = te.Year
	env["HasImage"] = te.HasImage

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}

	matched, ok := result.(bool)
	return ok && matched
}

// Apply keeps the titles matching f, preserving order.
func (f *Filter) Apply(titles []moviesdb.Title) []moviesdb.Title {
	var matched []moviesdb.Title
	for _, title := range titles {
		if f.Match(title) {
			matched = append(matched, title)
		}
	}
	return matched
}
