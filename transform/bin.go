package transform

import (
	"sort"

	"github.com/rushteam/featkit/core"
)

// Binner 是分桶接口：把连续值序列离散化为桶下标序列。
// 输出仍是数值序列，桶下标为从 0 开始的整数值；缺失位置原位保留。
type Binner interface {
	// Name 返回分桶器名称
	Name() string

	// Bin 把序列离散化为桶下标序列
	Bin(s *core.Series) (*core.Series, error)
}

// EqualWidthBinner 等宽分桶
// 把 [Min, Max] 均分为 NumBins 个桶；小于 Min 的落入第 0 桶，大于 Max 的落入最后一桶。
type EqualWidthBinner struct {
	Min     float64 // 分桶下界
	Max     float64 // 分桶上界
	NumBins int     // 桶数
}

// NewEqualWidthBinner 创建等宽分桶器。
func NewEqualWidthBinner(min, max float64, numBins int) *EqualWidthBinner {
	return &EqualWidthBinner{
		Min:     min,
		Max:     max,
		NumBins: numBins,
	}
}

// NewEqualWidthBinnerFromSeries 用序列的有效值范围创建等宽分桶器。
func NewEqualWidthBinnerFromSeries(s *core.Series, numBins int) (*EqualWidthBinner, error) {
	min, max, err := s.MinMax()
	if err != nil {
		return nil, ErrEmptyInput
	}
	if max == min {
		return nil, ErrZeroRange
	}
	return NewEqualWidthBinner(min, max, numBins), nil
}

func (b *EqualWidthBinner) Name() string { return "bin.width" }

// Bin 把序列离散化为桶下标序列。
func (b *EqualWidthBinner) Bin(s *core.Series) (*core.Series, error) {
	if b.NumBins <= 0 {
		return nil, core.NewDomainError(core.ModuleTransform, core.ErrorCodeInvalidInput,
			"transform: number of bins must be positive")
	}
	if b.Max <= b.Min {
		return nil, ErrInvalidRange
	}

	binWidth := (b.Max - b.Min) / float64(b.NumBins)
	return s.Map(func(v float64) float64 {
		if v < b.Min {
			return 0
		}
		if v > b.Max {
			return float64(b.NumBins - 1)
		}
		bin := int((v - b.Min) / binWidth)
		if bin >= b.NumBins {
			bin = b.NumBins - 1
		}
		return float64(bin)
	}), nil
}

// CustomBinner 自定义分桶（指定分桶边界）
// 小于第一个边界的值落入第 0 桶，大于等于最后一个边界的值落入最后一桶；
// 需要区分下溢时，调用方应把下界作为第一个边界显式传入。
type CustomBinner struct {
	// Boundaries 分桶边界（升序）；第 i 桶为 [Boundaries[i], Boundaries[i+1])
	Boundaries []float64
}

// NewCustomBinner 创建自定义分桶器；边界会被排序。
func NewCustomBinner(boundaries []float64) *CustomBinner {
	sorted := make([]float64, len(boundaries))
	copy(sorted, boundaries)
	sort.Float64s(sorted)
	return &CustomBinner{Boundaries: sorted}
}

func (b *CustomBinner) Name() string { return "bin.custom" }

// Bin 把序列离散化为桶下标序列。
// 值小于第一个边界落入第 0 桶，大于等于最后一个边界落入最后一桶。
func (b *CustomBinner) Bin(s *core.Series) (*core.Series, error) {
	if len(b.Boundaries) == 0 {
		return nil, core.NewDomainError(core.ModuleTransform, core.ErrorCodeInvalidInput,
			"transform: custom binner requires at least one boundary")
	}

	return s.Map(func(v float64) float64 {
		for i := 0; i < len(b.Boundaries)-1; i++ {
			if v >= b.Boundaries[i] && v < b.Boundaries[i+1] {
				return float64(i)
			}
		}
		if v >= b.Boundaries[len(b.Boundaries)-1] {
			return float64(len(b.Boundaries) - 1)
		}
		return 0
	}), nil
}
