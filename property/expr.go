package property

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/tsawler/folio/model"
)

// exprEnv is the environment visible to property expressions.
type exprEnv struct {
	Column    int            `expr:"column"`
	Row       int            `expr:"row"`
	Node      string         `expr:"node"`
	Record    map[string]any `expr:"record"`
	Variables map[string]any `expr:"variables"`
}

// ExprFunc is a compiled property expression.
type ExprFunc struct {
	Source  string
	program *vm.Program
}

// Expr compiles an expression into a property function. The expression
// sees column, row, node, record and variables, e.g.
//
//	row % 2 == 0 ? "#f0f0f0" : "none"
func Expr(src string) (*ExprFunc, error) {
	program, err := expr.Compile(src, expr.Env(exprEnv{}))
	if err != nil {
		return nil, fmt.Errorf("compiling property expression %q: %w", src, err)
	}
	return &ExprFunc{Source: src, program: program}, nil
}

// MustExpr is like Expr but panics on a compile error.
func MustExpr(src string) *ExprFunc {
	f, err := Expr(src)
	if err != nil {
		panic(err)
	}
	return f
}

// Eval runs the expression against ctx.
func (f *ExprFunc) Eval(ctx model.FuncContext) (any, error) {
	out, err := expr.Run(f.program, exprEnv{
		Column:    ctx.Column,
		Row:       ctx.Row,
		Node:      ctx.Node,
		Record:    ctx.Record,
		Variables: ctx.Variables,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", f.Source, err)
	}
	return out, nil
}

func (f *ExprFunc) String() string { return f.Source }
