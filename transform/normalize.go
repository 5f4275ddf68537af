package transform

import (
	"math"

	"github.com/rushteam/featkit/core"
)

// Transform 错误定义（使用统一的 DomainError）
var (
	// ErrEmptyInput 表示输入中没有任何有效值，min/max 无定义
	ErrEmptyInput = core.NewDomainError(core.ModuleTransform, core.ErrorCodeEmptyInput,
		"transform: no present values in input")

	// ErrInvalidRange 表示输出区间非法（low >= high）
	ErrInvalidRange = core.NewDomainError(core.ModuleTransform, core.ErrorCodeInvalidRange,
		"transform: invalid output range, low must be less than high")

	// ErrZeroRange 表示有效值全部相同，缩放因子无定义（除零类错误）
	ErrZeroRange = core.NewDomainError(core.ModuleTransform, core.ErrorCodeZeroRange,
		"transform: all present values are identical, scale factor is undefined")
)

// 默认归一化输出区间
const (
	DefaultLow  = -1.0
	DefaultHigh = 1.0
)

// Rescale 是 Min-Max 归一化的核心：把序列线性缩放到 [low, high] 区间。
//
// 公式: x' = low + (x - min) * (high - low) / (max - min)
//
// 约定：
//   - NaN 表示缺失值：不参与 min/max 计算，输出中原位保留
//   - 有效值中的最小值精确映射到 low，最大值精确映射到 high
//   - 映射是保序的仿射变换（缩放因子恒定）
//
// 错误：
//   - ErrEmptyInput：输入中没有任何有效值
//   - ErrInvalidRange：low >= high
//   - ErrZeroRange：有效值全部相同（max == min）
func Rescale(values []float64, low, high float64) ([]float64, error) {
	if low >= high {
		return nil, ErrInvalidRange
	}

	dMin, dMax, ok := presentMinMax(values)
	if !ok {
		return nil, ErrEmptyInput
	}
	if dMax == dMin {
		return nil, ErrZeroRange
	}

	scale := (high - low) / (dMax - dMin)
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = v
			continue
		}
		out[i] = low + (v-dMin)*scale
	}
	return out, nil
}

// RescaleSeries 对 Series 做 Min-Max 归一化，语义与 Rescale 一致。
func RescaleSeries(s *core.Series, low, high float64) (*core.Series, error) {
	out, err := Rescale(s.Values(), low, high)
	if err != nil {
		return nil, err
	}
	return core.NewSeries(out), nil
}

// presentMinMax 返回有效值的最小值/最大值；没有有效值时 ok 为 false。
func presentMinMax(values []float64) (float64, float64, bool) {
	first := true
	var min, max float64
	for _, v := range values {
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
	return min, max, !first
}

// Scaler 是可拟合的数值变换接口（Fit/Transform 契约）。
//
// 训练侧 Fit 学习参数（min/max、mean/std 等），推理侧 Transform 复用同一组参数，
// 保证训练与推理的特征分布一致。
type Scaler interface {
	// Name 返回变换名称（用于日志/持久化 key）
	Name() string

	// Fit 在序列的有效值上学习变换参数
	Fit(s *core.Series) error

	// Transform 用已拟合的参数变换序列；缺失位置原位保留
	Transform(s *core.Series) (*core.Series, error)

	// FitTransform 先 Fit 再 Transform
	FitTransform(s *core.Series) (*core.Series, error)
}

// RangeScaler Min-Max 归一化（可拟合形态）
// 公式: x' = low + (x - dataMin) * (high - low) / (dataMax - dataMin)
// 特点: 有效值被仿射映射到 [Low, High]，默认 [-1, 1]
type RangeScaler struct {
	Low  float64 // 输出区间下界
	High float64 // 输出区间上界

	// DataMin/DataMax 是拟合出的参数（输入有效值的最小/最大值）
	DataMin float64
	DataMax float64

	fitted bool
}

// RangeScalerOption 定义 RangeScaler 的配置选项。
type RangeScalerOption func(*RangeScaler)

// WithRange 设置输出区间（默认 [-1, 1]）。
func WithRange(low, high float64) RangeScalerOption {
	return func(s *RangeScaler) {
		s.Low = low
		s.High = high
	}
}

// NewRangeScaler 创建 Min-Max 归一化器，默认输出区间 [-1, 1]。
func NewRangeScaler(opts ...RangeScalerOption) *RangeScaler {
	s := &RangeScaler{
		Low:  DefaultLow,
		High: DefaultHigh,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RangeScaler) Name() string { return "scale.range" }

// Fit 在序列的有效值上学习 DataMin/DataMax。
func (s *RangeScaler) Fit(series *core.Series) error {
	if s.Low >= s.High {
		return ErrInvalidRange
	}
	dMin, dMax, err := series.MinMax()
	if err != nil {
		return ErrEmptyInput
	}
	if dMax == dMin {
		return ErrZeroRange
	}
	s.DataMin = dMin
	s.DataMax = dMax
	s.fitted = true
	return nil
}

// Transform 用已拟合的参数做仿射映射；缺失位置原位保留。
// 超出拟合区间的值会被映射到 [Low, High] 之外（保持仿射，不截断）。
func (s *RangeScaler) Transform(series *core.Series) (*core.Series, error) {
	if !s.fitted {
		return nil, core.NewDomainError(core.ModuleTransform, core.ErrorCodeInvalidInput,
			"transform: scaler not fitted")
	}
	scale := (s.High - s.Low) / (s.DataMax - s.DataMin)
	return series.Map(func(v float64) float64 {
		return s.Low + (v-s.DataMin)*scale
	}), nil
}

// FitTransform 先 Fit 再 Transform。
func (s *RangeScaler) FitTransform(series *core.Series) (*core.Series, error) {
	if err := s.Fit(series); err != nil {
		return nil, err
	}
	return s.Transform(series)
}

// Params 导出拟合参数（用于持久化）。
func (s *RangeScaler) Params() ScalerParams {
	return ScalerParams{
		Kind:    s.Name(),
		Low:     s.Low,
		High:    s.High,
		DataMin: s.DataMin,
		DataMax: s.DataMax,
	}
}

// SetParams 回填拟合参数（用于从存储恢复）。
func (s *RangeScaler) SetParams(p ScalerParams) {
	s.Low = p.Low
	s.High = p.High
	s.DataMin = p.DataMin
	s.DataMax = p.DataMax
	s.fitted = true
}

// ZScoreScaler Z-score 标准化（Standardization）
// 公式: z = (x - mean) / std
// 特点: 有效值的均值变为 0，标准差变为 1
type ZScoreScaler struct {
	Mean float64 // 拟合出的均值
	Std  float64 // 拟合出的标准差

	fitted bool
}

// NewZScoreScaler 创建 Z-score 标准化器。
func NewZScoreScaler() *ZScoreScaler {
	return &ZScoreScaler{}
}

func (s *ZScoreScaler) Name() string { return "scale.zscore" }

// Fit 在序列的有效值上学习均值与标准差。
func (s *ZScoreScaler) Fit(series *core.Series) error {
	present := series.Present()
	if len(present) == 0 {
		return ErrEmptyInput
	}

	sum := 0.0
	for _, v := range present {
		sum += v
	}
	mean := sum / float64(len(present))

	variance := 0.0
	for _, v := range present {
		variance += (v - mean) * (v - mean)
	}
	std := math.Sqrt(variance / float64(len(present)))
	if std == 0 {
		return ErrZeroRange
	}

	s.Mean = mean
	s.Std = std
	s.fitted = true
	return nil
}

func (s *ZScoreScaler) Transform(series *core.Series) (*core.Series, error) {
	if !s.fitted {
		return nil, core.NewDomainError(core.ModuleTransform, core.ErrorCodeInvalidInput,
			"transform: scaler not fitted")
	}
	return series.Map(func(v float64) float64 {
		return (v - s.Mean) / s.Std
	}), nil
}

func (s *ZScoreScaler) FitTransform(series *core.Series) (*core.Series, error) {
	if err := s.Fit(series); err != nil {
		return nil, err
	}
	return s.Transform(series)
}

// Params 导出拟合参数（用于持久化）。
func (s *ZScoreScaler) Params() ScalerParams {
	return ScalerParams{
		Kind: s.Name(),
		Mean: s.Mean,
		Std:  s.Std,
	}
}

// SetParams 回填拟合参数（用于从存储恢复）。
func (s *ZScoreScaler) SetParams(p ScalerParams) {
	s.Mean = p.Mean
	s.Std = p.Std
	s.fitted = true
}

// RobustScaler Robust 标准化
// 公式: x' = (x - median) / IQR
// 特点: 对异常值鲁棒（IQR = Q75 - Q25）
type RobustScaler struct {
	Median float64 // 拟合出的中位数
	IQR    float64 // 拟合出的四分位距

	fitted bool
}

// NewRobustScaler 创建 Robust 标准化器。
func NewRobustScaler() *RobustScaler {
	return &RobustScaler{}
}

func (s *RobustScaler) Name() string { return "scale.robust" }

// Fit 在序列的有效值上学习中位数与四分位距。
func (s *RobustScaler) Fit(series *core.Series) error {
	stats, err := Describe(series)
	if err != nil {
		return err
	}
	iqr := stats.P75 - stats.P25
	if iqr == 0 {
		return ErrZeroRange
	}
	s.Median = stats.Median
	s.IQR = iqr
	s.fitted = true
	return nil
}

func (s *RobustScaler) Transform(series *core.Series) (*core.Series, error) {
	if !s.fitted {
		return nil, core.NewDomainError(core.ModuleTransform, core.ErrorCodeInvalidInput,
			"transform: scaler not fitted")
	}
	return series.Map(func(v float64) float64 {
		return (v - s.Median) / s.IQR
	}), nil
}

func (s *RobustScaler) FitTransform(series *core.Series) (*core.Series, error) {
	if err := s.Fit(series); err != nil {
		return nil, err
	}
	return s.Transform(series)
}

// LogTransform Log 变换
// 公式: x' = log(x + 1)
// 特点: 处理长尾分布，压缩大值；无需拟合
type LogTransform struct{}

// NewLogTransform 创建 Log 变换器。
func NewLogTransform() *LogTransform {
	return &LogTransform{}
}

func (t *LogTransform) Name() string { return "scale.log" }

// Fit 无需拟合，恒为成功。
func (t *LogTransform) Fit(_ *core.Series) error { return nil }

func (t *LogTransform) Transform(series *core.Series) (*core.Series, error) {
	return series.Map(func(v float64) float64 {
		if v < 0 {
			return 0 // Log 变换要求值 >= 0
		}
		return math.Log1p(v)
	}), nil
}

func (t *LogTransform) FitTransform(series *core.Series) (*core.Series, error) {
	return t.Transform(series)
}

// SqrtTransform 平方根变换
// 公式: x' = sqrt(x)
// 特点: 处理长尾分布，比 Log 变换更温和；无需拟合
type SqrtTransform struct{}

// NewSqrtTransform 创建平方根变换器。
func NewSqrtTransform() *SqrtTransform {
	return &SqrtTransform{}
}

func (t *SqrtTransform) Name() string { return "scale.sqrt" }

// Fit 无需拟合，恒为成功。
func (t *SqrtTransform) Fit(_ *core.Series) error { return nil }

func (t *SqrtTransform) Transform(series *core.Series) (*core.Series, error) {
	return series.Map(func(v float64) float64 {
		if v < 0 {
			return 0
		}
		return math.Sqrt(v)
	}), nil
}

func (t *SqrtTransform) FitTransform(series *core.Series) (*core.Series, error) {
	return t.Transform(series)
}
