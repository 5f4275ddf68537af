package filter

import (
	"context"

	"github.com/rushteam/featkit/core"
	"github.com/rushteam/featkit/pkg/dsl"
)

// ExprFilter 是基于 CEL 表达式的行过滤器。
//
// 表达式对每行的 `row` 作用域求值，返回 true 的行被保留：
//
//	f, err := filter.NewExprFilter(`row.sex == "female" && has(row.age)`)
//
// 缺失值不会出现在 row 作用域中，因此 `has(row.age)` 可用来
// 过滤掉 age 缺失的行。
type ExprFilter struct {
	program *dsl.Program
}

// NewExprFilter 编译表达式并创建过滤器；表达式非法时返回错误。
func NewExprFilter(expr string) (*ExprFilter, error) {
	program, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{program: program}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) Keep(_ context.Context, dctx *core.DatasetContext, row map[string]any) (bool, error) {
	var params map[string]any
	if dctx != nil {
		params = dctx.Params
	}
	return f.program.EvalBool(row, params)
}
