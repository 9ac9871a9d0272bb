package ai

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Checkerboard prefers every other cell. Any ship of length two or more
// covers at least one of them.
const Checkerboard = "(Row + Col) % 2 == 0"

// PatternEnv is what a search pattern expression can see.
type PatternEnv struct {
	Row   int
	Col   int
	Shots int // shots fired so far
}

// SearchPattern is a compiled boolean expression selecting which untargeted
// cells the search phase prefers.
type SearchPattern struct {
	Source  string
	program *vm.Program
}

func CompileSearchPattern(src string) (*SearchPattern, error) {
	program, err := expr.Compile(src, expr.Env(PatternEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile search pattern %q: %w", src, err)
	}
	return &SearchPattern{Source: src, program: program}, nil
}

// Match evaluates the pattern. Evaluation errors count as no match.
func (p *SearchPattern) Match(env PatternEnv) bool {
	out, err := vm.Run(p.program, env)
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}
