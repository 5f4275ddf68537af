package filter

import (
	"context"

	"github.com/rushteam/featkit/core"
)

// Filter 是行过滤器的抽象接口，用于判断表格中的一行是否应该被保留。
// 返回 true 表示保留该行，false 表示剔除。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// Keep 判断第 i 行（以列名 -> 值映射形态给出）是否保留
	Keep(ctx context.Context, dctx *core.DatasetContext, row map[string]any) (bool, error)
}

// FuncFilter 把一个普通函数包装为 Filter，方便内联定义简单过滤逻辑。
type FuncFilter struct {
	FilterName string
	Fn         func(row map[string]any) (bool, error)
}

func (f *FuncFilter) Name() string {
	if f.FilterName == "" {
		return "filter.func"
	}
	return f.FilterName
}

func (f *FuncFilter) Keep(_ context.Context, _ *core.DatasetContext, row map[string]any) (bool, error) {
	if f.Fn == nil {
		return true, nil
	}
	return f.Fn(row)
}
