package pipeline

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/featkit/core"
)

// Parallel 是一个并发 Stage：对同一张输入表并发执行多个列级 Stage，并合并结果列。
// 支持超时、限流。
//
// 约束：各子 Stage 之间必须互相独立（作用于不同的列），否则合并结果
// 取决于完成顺序。有先后依赖的 Stage 应放在 Pipeline 中串行执行。
type Parallel struct {
	Stages        []Stage
	Timeout       time.Duration // 每个子 Stage 的超时时间
	MaxConcurrent int           // 最大并发数（0 表示无限制）
}

func (n *Parallel) Name() string { return "pipeline.parallel" }
func (n *Parallel) Kind() Kind   { return KindScale }

func (n *Parallel) Process(
	ctx context.Context,
	dctx *core.DatasetContext,
	tbl *core.Table,
) (*core.Table, error) {
	if len(n.Stages) == 0 {
		return tbl, nil
	}

	var (
		mu      sync.Mutex
		results []*core.Table
		eg, _   = errgroup.WithContext(ctx)
	)

	// 限流：使用 semaphore 控制并发数
	sem := make(chan struct{}, n.MaxConcurrent)
	if n.MaxConcurrent <= 0 {
		close(sem) // 无限制时直接关闭，避免阻塞
	}

	for _, stage := range n.Stages {
		s := stage

		eg.Go(func() error {
			// 限流
			if n.MaxConcurrent > 0 {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			// 超时控制
			stageCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				stageCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			// 每个子 Stage 拿到输入表的独立拷贝，保证互不干扰
			out, err := s.Process(stageCtx, dctx, tbl.Clone())
			if err != nil {
				return err
			}

			mu.Lock()
			results = append(results, out)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return n.merge(tbl, results)
}

// merge 把各子 Stage 的输出列合并回输入表：新列追加，同名列只在被该
// 子 Stage 改动时才覆盖。子 Stage 的输出是整张表的拷贝，未触碰的列与
// 输入一致，直接合并会把其他子 Stage 的原地修改冲掉，因此合并前先与
// 输入表比对，原样透传的列不参与合并。
func (n *Parallel) merge(base *core.Table, results []*core.Table) (*core.Table, error) {
	out := base.Clone()
	for _, res := range results {
		for _, name := range res.ColumnNames() {
			col, err := res.Column(name)
			if err != nil {
				return nil, err
			}
			if baseCol, err := base.Column(name); err == nil && columnsEqual(baseCol, col) {
				continue
			}
			if err := out.AddColumn(col); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// columnsEqual 判断两列逐位相等（NaN 与 NaN 视为相等）。
func columnsEqual(a, b *core.Column) bool {
	if a.Type != b.Type || a.Len() != b.Len() {
		return false
	}
	switch a.Type {
	case core.ColumnNumeric:
		for i := 0; i < a.Numeric.Len(); i++ {
			av, bv := a.Numeric.At(i), b.Numeric.At(i)
			if math.IsNaN(av) && math.IsNaN(bv) {
				continue
			}
			if av != bv {
				return false
			}
		}
	case core.ColumnString:
		for i := range a.Strings {
			if a.Strings[i] != b.Strings[i] {
				return false
			}
		}
	}
	return true
}
