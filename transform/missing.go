package transform

import "github.com/rushteam/featkit/core"

// FillStrategy 是缺失值填充策略。
type FillStrategy string

const (
	FillConstant FillStrategy = "constant" // 用固定值填充
	FillMean     FillStrategy = "mean"     // 用有效值均值填充
	FillMedian   FillStrategy = "median"   // 用有效值中位数填充
)

// Filler 是缺失值填充器。
//
// 与归一化不同，填充是"破坏缺失位置"的操作，应显式发生在需要它的
// 环节（例如喂给不接受缺失值的模型前），而不是默认行为。
type Filler struct {
	// Strategy 填充策略：constant / mean / median
	Strategy FillStrategy

	// Value 固定填充值（Strategy == FillConstant 时使用）
	Value float64
}

// NewFiller 创建缺失值填充器。
func NewFiller(strategy FillStrategy, value float64) *Filler {
	return &Filler{
		Strategy: strategy,
		Value:    value,
	}
}

// Fill 返回填充后的新序列。
// mean/median 策略在序列没有任何有效值时返回 ErrEmptyInput
// （没有可计算的统计量，也没有合理的静默默认值）。
func (f *Filler) Fill(s *core.Series) (*core.Series, error) {
	fill := f.Value

	switch f.Strategy {
	case FillConstant:
		// 直接使用 Value
	case FillMean:
		stats, err := Describe(s)
		if err != nil {
			return nil, err
		}
		fill = stats.Mean
	case FillMedian:
		stats, err := Describe(s)
		if err != nil {
			return nil, err
		}
		fill = stats.Median
	default:
		return nil, core.NewDomainError(core.ModuleTransform, core.ErrorCodeInvalidInput,
			"transform: unknown fill strategy "+string(f.Strategy))
	}

	values := s.Values()
	for i, v := range values {
		if core.IsMissing(v) {
			values[i] = fill
		}
	}
	return core.NewSeries(values), nil
}
