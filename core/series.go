package core

import "math"

// Series 是一列有序的数值序列，使用 NaN 作为缺失值标记。
//
// 设计要点：
//   - 位置（下标）有意义：变换后的序列与输入序列长度一致、缺失位置一致
//   - 缺失值不参与 min/max/mean 等统计量的计算，但在输出中原位保留
//   - Series 本身不可变约定：变换返回新的 Series，不修改输入
type Series struct {
	values []float64
}

// NewSeries 用给定的值创建 Series（NaN 表示缺失）。
// 输入 slice 会被拷贝，调用方后续修改不影响 Series。
func NewSeries(values []float64) *Series {
	vs := make([]float64, len(values))
	copy(vs, values)
	return &Series{values: vs}
}

// Missing 返回缺失值标记（NaN）。
func Missing() float64 {
	return math.NaN()
}

// IsMissing 判断单个值是否为缺失标记。
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Len 返回序列长度（含缺失位置）。
func (s *Series) Len() int {
	return len(s.values)
}

// At 返回位置 i 的值（可能为 NaN）。
func (s *Series) At(i int) float64 {
	return s.values[i]
}

// MissingAt 判断位置 i 是否缺失。
func (s *Series) MissingAt(i int) bool {
	return math.IsNaN(s.values[i])
}

// Values 返回底层值的拷贝（NaN 表示缺失）。
func (s *Series) Values() []float64 {
	vs := make([]float64, len(s.values))
	copy(vs, s.values)
	return vs
}

// Present 返回所有有效（非缺失）值，保持原有顺序。
func (s *Series) Present() []float64 {
	out := make([]float64, 0, len(s.values))
	for _, v := range s.values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// PresentCount 返回有效值个数。
func (s *Series) PresentCount() int {
	n := 0
	for _, v := range s.values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// MissingCount 返回缺失值个数。
func (s *Series) MissingCount() int {
	return len(s.values) - s.PresentCount()
}

// MinMax 返回有效值的最小值与最大值。
// 当序列中没有任何有效值时返回 EMPTY_INPUT 错误。
func (s *Series) MinMax() (float64, float64, error) {
	first := true
	var min, max float64
	for _, v := range s.values {
		if math.IsNaN(v) {
			continue
		}
		if first {
			min, max = v, v
			first = false
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if first {
		return 0, 0, ErrSeriesEmpty
	}
	return min, max, nil
}

// Clone 返回序列的深拷贝。
func (s *Series) Clone() *Series {
	return NewSeries(s.values)
}

// Map 对每个有效值应用 fn，缺失位置原样保留，返回新 Series。
func (s *Series) Map(fn func(float64) float64) *Series {
	out := make([]float64, len(s.values))
	for i, v := range s.values {
		if math.IsNaN(v) {
			out[i] = v
			continue
		}
		out[i] = fn(v)
	}
	return &Series{values: out}
}

// Series 错误定义（使用统一的 DomainError）
var (
	// ErrSeriesEmpty 表示序列中没有任何有效值，min/max 等统计量无定义
	ErrSeriesEmpty = NewDomainError(ModuleTable, ErrorCodeEmptyInput, "series: no present values")
)
