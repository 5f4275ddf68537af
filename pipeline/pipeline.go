package pipeline

import (
	"context"

	"github.com/rushteam/featkit/core"
)

// Pipeline 是 featkit 的核心抽象：把特征工程流程拆成可组合的 Stage 链。
type Pipeline struct {
	Stages []Stage
}

func (p *Pipeline) Run(
	ctx context.Context,
	dctx *core.DatasetContext,
	tbl *core.Table,
) (*core.Table, error) {
	cur := tbl
	for _, stage := range p.Stages {
		next, err := stage.Process(ctx, dctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
