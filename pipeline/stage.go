package pipeline

import (
	"context"

	"github.com/rushteam/featkit/core"
)

// Kind 用于标记 Stage 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindExtract Kind = "extract" // 抽取阶段：从既有列派生新列（如字符串切分）
	KindClean   Kind = "clean"   // 清洗阶段：缺失值填充、列重命名等
	KindScale   Kind = "scale"   // 缩放阶段：归一化/标准化
	KindBin     Kind = "bin"     // 分桶阶段：连续值离散化
	KindFilter  Kind = "filter"  // 过滤阶段：按行过滤
	KindDerive  Kind = "derive"  // 派生阶段：表达式计算新列
)

// Stage 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 table -> 输出 table"的形态，方便切分、缩放、过滤等操作自由组合。
type Stage interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		dctx *core.DatasetContext,
		tbl *core.Table,
	) (*core.Table, error)
}
