package transform

import (
	"math"
	"sort"

	"github.com/rushteam/featkit/core"
)

// Statistics 是单列的描述统计信息，缺失值不参与计算。
type Statistics struct {
	Count   int // 有效值个数
	Missing int // 缺失值个数

	Mean   float64
	Std    float64
	Min    float64
	Max    float64
	Median float64
	P25    float64
	P75    float64
	P95    float64
	P99    float64
}

// Describe 计算序列的描述统计信息。
// 序列中没有任何有效值时返回 ErrEmptyInput。
func Describe(s *core.Series) (*Statistics, error) {
	present := s.Present()
	if len(present) == 0 {
		return nil, ErrEmptyInput
	}

	// 复制并排序
	sorted := make([]float64, len(present))
	copy(sorted, present)
	sort.Float64s(sorted)

	stats := &Statistics{
		Count:   len(present),
		Missing: s.Len() - len(present),
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
	}

	// 计算均值
	sum := 0.0
	for _, v := range present {
		sum += v
	}
	stats.Mean = sum / float64(len(present))

	// 计算标准差
	variance := 0.0
	for _, v := range present {
		variance += (v - stats.Mean) * (v - stats.Mean)
	}
	stats.Std = math.Sqrt(variance / float64(len(present)))

	// 计算分位数
	stats.Median = computePercentile(sorted, 0.5)
	stats.P25 = computePercentile(sorted, 0.25)
	stats.P75 = computePercentile(sorted, 0.75)
	stats.P95 = computePercentile(sorted, 0.95)
	stats.P99 = computePercentile(sorted, 0.99)

	return stats, nil
}

// computePercentile 计算分位数（线性插值，输入必须已排序）
func computePercentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
