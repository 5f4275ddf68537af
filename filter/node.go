package filter

import (
	"context"

	"github.com/rushteam/featkit/core"
	"github.com/rushteam/featkit/pipeline"
)

// Node 是过滤 Stage，可以组合多个过滤器对表格按行过滤。
// 只有所有过滤器都返回保留的行才会进入输出表格。
type Node struct {
	Filters []Filter
}

func (n *Node) Name() string {
	return "filter.node"
}

func (n *Node) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *Node) Process(
	ctx context.Context,
	dctx *core.DatasetContext,
	tbl *core.Table,
) (*core.Table, error) {
	if len(n.Filters) == 0 || tbl.NumRows() == 0 {
		return tbl, nil
	}

	mask := make([]bool, tbl.NumRows())
	for i := range mask {
		row := tbl.Row(i)
		keep := true

		// 依次检查每个过滤器
		for _, f := range n.Filters {
			ok, err := f.Keep(ctx, dctx, row)
			if err != nil {
				return nil, err
			}
			if !ok {
				keep = false
				break
			}
		}
		mask[i] = keep
	}

	return tbl.FilterRows(mask)
}
