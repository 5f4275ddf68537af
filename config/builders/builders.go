// Package builders 注册内置 Stage 的配置构建器。
//
// 以副作用导入方式启用配置驱动：
//
//	import _ "github.com/rushteam/featkit/config/builders"
//
// 之后即可通过 config.DefaultFactory() 与 YAML/JSON 配置构建 pipeline。
// 需要参数存储（ParamsStore）的场景请用代码方式组装 ScaleStage。
package builders

import (
	"fmt"

	"github.com/rushteam/featkit/config"
	"github.com/rushteam/featkit/filter"
	"github.com/rushteam/featkit/pipeline"
	"github.com/rushteam/featkit/pkg/conv"
	"github.com/rushteam/featkit/transform"
)

func init() {
	config.Register("scale.range", buildRangeScaleStage)
	config.Register("scale.zscore", buildZScoreScaleStage)
	config.Register("scale.robust", buildRobustScaleStage)
	config.Register("scale.log", buildLogScaleStage)
	config.Register("scale.sqrt", buildSqrtScaleStage)
	config.Register("extract.split", buildSplitStage)
	config.Register("bin.width", buildWidthBinStage)
	config.Register("bin.custom", buildCustomBinStage)
	config.Register("clean.fill", buildFillStage)
	config.Register("clean.rename", buildRenameStage)
	config.Register("filter.expr", buildExprFilterStage)
	config.Register("derive.expr", buildDeriveStage)
}

// buildRangeScaleStage 构建 Min-Max 归一化 Stage。
// 配置示例：
//
//	type: scale.range
//	config:
//	  column: age
//	  output: age_scaled   # 可选，默认原地覆盖
//	  low: 0.0             # 可选，默认 -1.0
//	  high: 1.0            # 可选，默认 1.0
func buildRangeScaleStage(cfg map[string]interface{}) (pipeline.Stage, error) {
	column := conv.ConfigGet(cfg, "column", "")
	if column == "" {
		return nil, fmt.Errorf("scale.range: column is required")
	}
	low := conv.ConfigGetFloat64(cfg, "low", transform.DefaultLow)
	high := conv.ConfigGetFloat64(cfg, "high", transform.DefaultHigh)
	return &transform.ScaleStage{
		Column: column,
		Output: conv.ConfigGet(cfg, "output", ""),
		Scaler: transform.NewRangeScaler(transform.WithRange(low, high)),
	}, nil
}

func buildZScoreScaleStage(cfg map[string]interface{}) (pipeline.Stage, error) {
	column := conv.ConfigGet(cfg, "column", "")
	if column == "" {
		return nil, fmt.Errorf("scale.zscore: column is required")
	}
	return &transform.ScaleStage{
		Column: column,
		Output: conv.ConfigGet(cfg, "output", ""),
		Scaler: transform.NewZScoreScaler(),
	}, nil
}

func buildRobustScaleStage(cfg map[string]interface{}) (pipeline.Stage, error) {
	column := conv.ConfigGet(cfg, "column", "")
	if column == "" {
		return nil, fmt.Errorf("scale.robust: column is required")
	}
	return &transform.ScaleStage{
		Column: column,
		Output: conv.ConfigGet(cfg, "output", ""),
		Scaler: transform.NewRobustScaler(),
	}, nil
}

func buildLogScaleStage(cfg map[string]interface{}) (pipeline.Stage, error) {
	column := conv.ConfigGet(cfg, "column", "")
	if column == "" {
		return nil, fmt.Errorf("scale.log: column is required")
	}
	return &transform.ScaleStage{
		Column: column,
		Output: conv.ConfigGet(cfg, "output", ""),
		Scaler: transform.NewLogTransform(),
	}, nil
}

func buildSqrtScaleStage(cfg map[string]interface{}) (pipeline.Stage, error) {
	column := conv.ConfigGet(cfg, "column", "")
	if column == "" {
		return nil, fmt.Errorf("scale.sqrt: column is required")
	}
	return &transform.ScaleStage{
		Column: column,
		Output: conv.ConfigGet(cfg, "output", ""),
		Scaler: transform.NewSqrtTransform(),
	}, nil
}

// buildSplitStage 构建字符串切分 Stage。
// 配置示例：
//
//	type: extract.split
//	config:
//	  column: name
//	  separator: ","       # 可选，默认 ","
//	  trim: true           # 可选，默认 true
//	  fields:
//	    - name: surname
//	      index: 0
//	    - name: title
//	      index: 1
func buildSplitStage(cfg map[string]interface{}) (pipeline.Stage, error) {
	column := conv.ConfigGet(cfg, "column", "")
	if column == "" {
		return nil, fmt.Errorf("extract.split: column is required")
	}

	rawFields, ok := cfg["fields"].([]interface{})
	if !ok || len(rawFields) == 0 {
		return nil, fmt.Errorf("extract.split: fields is required")
	}
	fields := make([]transform.Field, 0, len(rawFields))
	for _, rf := range rawFields {
		fm, ok := rf.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("extract.split: each field must be a map with name/index")
		}
		name := conv.ConfigGet(fm, "name", "")
		if name == "" {
			return nil, fmt.Errorf("extract.split: field name is required")
		}
		fields = append(fields, transform.Field{
			Name:  name,
			Index: int(conv.ConfigGetInt64(fm, "index", 0)),
		})
	}

	opts := []transform.SplitOption{
		transform.WithFields(fields...),
		transform.WithTrim(conv.ConfigGet(cfg, "trim", true)),
	}
	if sep := conv.ConfigGet(cfg, "separator", ""); sep != "" {
		opts = append(opts, transform.WithSeparator(sep))
	}
	return &transform.SplitStage{
		Extractor: transform.NewSplitExtractor(column, opts...),
	}, nil
}

// buildWidthBinStage 构建等宽分桶 Stage。
// min/max 均缺省时在运行期由列的有效值范围决定不可行（构建期无数据），
// 因此配置驱动形态要求显式给出 min/max。
func buildWidthBinStage(cfg map[string]interface{}) (pipeline.Stage, error) {
	column := conv.ConfigGet(cfg, "column", "")
	if column == "" {
		return nil, fmt.Errorf("bin.width: column is required")
	}
	if _, ok := cfg["min"]; !ok {
		return nil, fmt.Errorf("bin.width: min is required")
	}
	if _, ok := cfg["max"]; !ok {
		return nil, fmt.Errorf("bin.width: max is required")
	}
	numBins := int(conv.ConfigGetInt64(cfg, "bins", 10))
	return &transform.BinStage{
		Column: column,
		Output: conv.ConfigGet(cfg, "output", ""),
		Binner: transform.NewEqualWidthBinner(
			conv.ConfigGetFloat64(cfg, "min", 0),
			conv.ConfigGetFloat64(cfg, "max", 0),
			numBins,
		),
	}, nil
}

func buildCustomBinStage(cfg map[string]interface{}) (pipeline.Stage, error) {
	column := conv.ConfigGet(cfg, "column", "")
	if column == "" {
		return nil, fmt.Errorf("bin.custom: column is required")
	}
	boundaries := conv.SliceAnyToFloat64(cfg["boundaries"])
	if len(boundaries) == 0 {
		return nil, fmt.Errorf("bin.custom: boundaries is required")
	}
	return &transform.BinStage{
		Column: column,
		Output: conv.ConfigGet(cfg, "output", ""),
		Binner: transform.NewCustomBinner(boundaries),
	}, nil
}

// buildFillStage 构建缺失值填充 Stage。
// 配置示例：
//
//	type: clean.fill
//	config:
//	  column: age
//	  strategy: median     # constant / mean / median
//	  value: 0.0           # strategy 为 constant 时使用
func buildFillStage(cfg map[string]interface{}) (pipeline.Stage, error) {
	column := conv.ConfigGet(cfg, "column", "")
	if column == "" {
		return nil, fmt.Errorf("clean.fill: column is required")
	}
	strategy := transform.FillStrategy(conv.ConfigGet(cfg, "strategy", string(transform.FillConstant)))
	return &transform.FillStage{
		Column: column,
		Output: conv.ConfigGet(cfg, "output", ""),
		Filler: transform.NewFiller(strategy, conv.ConfigGetFloat64(cfg, "value", 0)),
	}, nil
}

func buildRenameStage(cfg map[string]interface{}) (pipeline.Stage, error) {
	rawRenames, ok := cfg["renames"].(map[string]interface{})
	if !ok || len(rawRenames) == 0 {
		return nil, fmt.Errorf("clean.rename: renames is required")
	}
	renames := conv.ConvertMap(rawRenames, func(v interface{}) (string, bool) {
		return conv.ToString(v)
	})
	if len(renames) != len(rawRenames) {
		return nil, fmt.Errorf("clean.rename: renames must be a string-to-string map")
	}
	return &transform.RenameStage{Renames: renames}, nil
}

// buildExprFilterStage 构建 CEL 表达式行过滤 Stage。
// 配置示例：
//
//	type: filter.expr
//	config:
//	  exprs:
//	    - has(row.age)
//	    - row.fare < params.fare_cap
func buildExprFilterStage(cfg map[string]interface{}) (pipeline.Stage, error) {
	exprs := conv.SliceAnyToString(cfg["exprs"])
	if expr := conv.ConfigGet(cfg, "expr", ""); expr != "" {
		exprs = append(exprs, expr)
	}
	if len(exprs) == 0 {
		return nil, fmt.Errorf("filter.expr: expr or exprs is required")
	}

	filters := make([]filter.Filter, 0, len(exprs))
	for _, expr := range exprs {
		f, err := filter.NewExprFilter(expr)
		if err != nil {
			return nil, fmt.Errorf("filter.expr: %w", err)
		}
		filters = append(filters, f)
	}
	return &filter.Node{Filters: filters}, nil
}

// buildDeriveStage 构建表达式派生 Stage。
// 配置示例：
//
//	type: derive.expr
//	config:
//	  output: family_size
//	  expr: row.sibsp + row.parch + 1.0
func buildDeriveStage(cfg map[string]interface{}) (pipeline.Stage, error) {
	output := conv.ConfigGet(cfg, "output", "")
	if output == "" {
		return nil, fmt.Errorf("derive.expr: output is required")
	}
	expr := conv.ConfigGet(cfg, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("derive.expr: expr is required")
	}
	stage, err := transform.NewDeriveStage(output, expr)
	if err != nil {
		return nil, fmt.Errorf("derive.expr: %w", err)
	}
	return stage, nil
}
