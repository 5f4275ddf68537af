package transform

import (
	"context"
	"fmt"

	"github.com/rushteam/featkit/core"
	"github.com/rushteam/featkit/pipeline"
	"github.com/rushteam/featkit/pkg/dsl"
)

// ScaleStage 是缩放 Stage：对一个数值列应用 Scaler。
//
// 两种工作模式：
//   - 拟合模式（默认）：在当前表格上 FitTransform；配置了 Params 时把拟合参数
//     以 (dctx.Name, 列名) 为 key 持久化，供推理侧复用
//   - 复用模式（Reuse=true）：从 Params 加载已拟合参数后 Transform，
//     保证训练/推理两侧的分布一致
type ScaleStage struct {
	// Column 要缩放的列名
	Column string

	// Output 输出列名；为空时原地覆盖 Column
	Output string

	// Scaler 缩放器（拟合模式必填；复用模式由 Params 重建）
	Scaler Scaler

	// Params 拟合参数存储（可选）
	Params *ParamsStore

	// Reuse 为 true 时从 Params 加载参数而不是重新拟合
	Reuse bool
}

func (n *ScaleStage) Name() string        { return "transform.scale" }
func (n *ScaleStage) Kind() pipeline.Kind { return pipeline.KindScale }

func (n *ScaleStage) Process(
	ctx context.Context,
	dctx *core.DatasetContext,
	tbl *core.Table,
) (*core.Table, error) {
	col, err := tbl.Column(n.Column)
	if err != nil {
		return nil, err
	}
	if col.Type != core.ColumnNumeric {
		return nil, core.NewDomainError(core.ModuleTransform, core.ErrorCodeInvalidInput,
			fmt.Sprintf("transform: column %q is not numeric", n.Column))
	}

	dataset := ""
	if dctx != nil {
		dataset = dctx.Name
	}

	var scaled *core.Series
	if n.Reuse {
		if n.Params == nil {
			return nil, core.NewDomainError(core.ModuleTransform, core.ErrorCodeInvalidInput,
				"transform: reuse mode requires a params store")
		}
		scaler, err := n.Params.LoadScaler(ctx, dataset, n.Column)
		if err != nil {
			return nil, err
		}
		scaled, err = scaler.Transform(col.Numeric)
		if err != nil {
			return nil, err
		}
	} else {
		if n.Scaler == nil {
			return nil, core.NewDomainError(core.ModuleTransform, core.ErrorCodeInvalidInput,
				"transform: scale stage requires a scaler")
		}
		scaled, err = n.Scaler.FitTransform(col.Numeric)
		if err != nil {
			return nil, err
		}
		if n.Params != nil {
			if exp, ok := n.Scaler.(interface{ Params() ScalerParams }); ok {
				if err := n.Params.Save(ctx, dataset, n.Column, exp.Params()); err != nil {
					return nil, err
				}
			}
		}
	}

	out := tbl.Clone()
	name := n.Output
	if name == "" {
		name = n.Column
	}
	if err := out.AddColumn(&core.Column{Name: name, Type: core.ColumnNumeric, Numeric: scaled}); err != nil {
		return nil, err
	}
	return out, nil
}

// SplitStage 是字符串切分 Stage：把 SplitExtractor 产出的新列追加到表格。
type SplitStage struct {
	Extractor *SplitExtractor
}

func (n *SplitStage) Name() string        { return "transform.split" }
func (n *SplitStage) Kind() pipeline.Kind { return pipeline.KindExtract }

func (n *SplitStage) Process(
	_ context.Context,
	_ *core.DatasetContext,
	tbl *core.Table,
) (*core.Table, error) {
	if n.Extractor == nil {
		return tbl, nil
	}
	col, err := tbl.Column(n.Extractor.Column)
	if err != nil {
		return nil, err
	}
	cols, err := n.Extractor.Extract(col)
	if err != nil {
		return nil, err
	}
	out := tbl.Clone()
	for _, c := range cols {
		if err := out.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// BinStage 是分桶 Stage：把一个数值列离散化为桶下标列。
type BinStage struct {
	// Column 要分桶的列名
	Column string

	// Output 输出列名；为空时原地覆盖 Column
	Output string

	// Binner 分桶器
	Binner Binner
}

func (n *BinStage) Name() string        { return "transform.bin" }
func (n *BinStage) Kind() pipeline.Kind { return pipeline.KindBin }

func (n *BinStage) Process(
	_ context.Context,
	_ *core.DatasetContext,
	tbl *core.Table,
) (*core.Table, error) {
	if n.Binner == nil {
		return nil, core.NewDomainError(core.ModuleTransform, core.ErrorCodeInvalidInput,
			"transform: bin stage requires a binner")
	}
	col, err := tbl.Column(n.Column)
	if err != nil {
		return nil, err
	}
	if col.Type != core.ColumnNumeric {
		return nil, core.NewDomainError(core.ModuleTransform, core.ErrorCodeInvalidInput,
			fmt.Sprintf("transform: column %q is not numeric", n.Column))
	}
	binned, err := n.Binner.Bin(col.Numeric)
	if err != nil {
		return nil, err
	}
	out := tbl.Clone()
	name := n.Output
	if name == "" {
		name = n.Column
	}
	if err := out.AddColumn(&core.Column{Name: name, Type: core.ColumnNumeric, Numeric: binned}); err != nil {
		return nil, err
	}
	return out, nil
}

// FillStage 是缺失值填充 Stage。
type FillStage struct {
	// Column 要填充的列名
	Column string

	// Output 输出列名；为空时原地覆盖 Column
	Output string

	// Filler 填充器
	Filler *Filler
}

func (n *FillStage) Name() string        { return "transform.fill" }
func (n *FillStage) Kind() pipeline.Kind { return pipeline.KindClean }

func (n *FillStage) Process(
	_ context.Context,
	_ *core.DatasetContext,
	tbl *core.Table,
) (*core.Table, error) {
	if n.Filler == nil {
		return nil, core.NewDomainError(core.ModuleTransform, core.ErrorCodeInvalidInput,
			"transform: fill stage requires a filler")
	}
	col, err := tbl.Column(n.Column)
	if err != nil {
		return nil, err
	}
	if col.Type != core.ColumnNumeric {
		return nil, core.NewDomainError(core.ModuleTransform, core.ErrorCodeInvalidInput,
			fmt.Sprintf("transform: column %q is not numeric", n.Column))
	}
	filled, err := n.Filler.Fill(col.Numeric)
	if err != nil {
		return nil, err
	}
	out := tbl.Clone()
	name := n.Output
	if name == "" {
		name = n.Column
	}
	if err := out.AddColumn(&core.Column{Name: name, Type: core.ColumnNumeric, Numeric: filled}); err != nil {
		return nil, err
	}
	return out, nil
}

// RenameStage 是列重命名 Stage。
type RenameStage struct {
	// Renames 旧列名 -> 新列名
	Renames map[string]string
}

func (n *RenameStage) Name() string        { return "transform.rename" }
func (n *RenameStage) Kind() pipeline.Kind { return pipeline.KindClean }

func (n *RenameStage) Process(
	_ context.Context,
	_ *core.DatasetContext,
	tbl *core.Table,
) (*core.Table, error) {
	out := tbl.Clone()
	for oldName, newName := range n.Renames {
		if err := out.RenameColumn(oldName, newName); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DeriveStage 是表达式派生 Stage：对每行求值一个 CEL 表达式，生成新的数值列。
//
// 行内任一被引用的值缺失时（CEL 对不存在的 key 求值会报错），
// 该行的派生值记为缺失，而不是让整个 Stage 失败。
type DeriveStage struct {
	// Output 派生出的列名
	Output string

	program *dsl.Program
}

// NewDeriveStage 编译表达式并创建派生 Stage；表达式非法时返回错误。
func NewDeriveStage(output, expr string) (*DeriveStage, error) {
	program, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &DeriveStage{
		Output:  output,
		program: program,
	}, nil
}

func (n *DeriveStage) Name() string        { return "transform.derive" }
func (n *DeriveStage) Kind() pipeline.Kind { return pipeline.KindDerive }

func (n *DeriveStage) Process(
	_ context.Context,
	dctx *core.DatasetContext,
	tbl *core.Table,
) (*core.Table, error) {
	var params map[string]any
	if dctx != nil {
		params = dctx.Params
	}

	values := make([]float64, tbl.NumRows())
	for i := range values {
		v, err := n.program.EvalFloat(tbl.Row(i), params)
		if err != nil {
			values[i] = core.Missing()
			continue
		}
		values[i] = v
	}

	out := tbl.Clone()
	if err := out.AddColumn(core.NumericColumn(n.Output, values)); err != nil {
		return nil, err
	}
	return out, nil
}
