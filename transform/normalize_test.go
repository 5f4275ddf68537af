package transform

import (
	"math"
	"testing"

	"github.com/rushteam/featkit/core"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestRescale(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name   string
		values []float64
		low    float64
		high   float64
		want   []float64
	}{
		{
			name:   "default range maps min to -1 and max to 1",
			values: []float64{1, 2, 3},
			low:    -1, high: 1,
			want: []float64{-1, 0, 1},
		},
		{
			name:   "custom range with missing preserved in place",
			values: []float64{10, nan, 20, 30},
			low:    0, high: 100,
			want: []float64{0, nan, 50, 100},
		},
		{
			name:   "two distinct values hit the bounds exactly",
			values: []float64{5, 10},
			low:    0, high: 1,
			want: []float64{0, 1},
		},
		{
			name:   "negative inputs",
			values: []float64{-10, 0, 10},
			low:    -1, high: 1,
			want: []float64{-1, 0, 1},
		},
		{
			name:   "leading and trailing missing",
			values: []float64{nan, 2, 4, nan},
			low:    0, high: 1,
			want: []float64{nan, 0, 1, nan},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rescale(tt.values, tt.low, tt.high)
			if err != nil {
				t.Fatalf("Rescale() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Rescale() length = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if math.IsNaN(tt.want[i]) {
					if !math.IsNaN(got[i]) {
						t.Errorf("position %d = %v, want missing", i, got[i])
					}
					continue
				}
				if !almostEqual(got[i], tt.want[i]) {
					t.Errorf("position %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRescale_Errors(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name   string
		values []float64
		low    float64
		high   float64
		check  func(error) bool
		code   string
	}{
		{
			name:   "empty slice",
			values: []float64{},
			low:    -1, high: 1,
			check: core.IsEmptyInput, code: "EMPTY_INPUT",
		},
		{
			name:   "all missing",
			values: []float64{nan, nan, nan},
			low:    -1, high: 1,
			check: core.IsEmptyInput, code: "EMPTY_INPUT",
		},
		{
			name:   "low equals high",
			values: []float64{1, 2, 3},
			low:    5, high: 5,
			check: core.IsInvalidRange, code: "INVALID_RANGE",
		},
		{
			name:   "low greater than high",
			values: []float64{1, 2, 3},
			low:    1, high: -1,
			check: core.IsInvalidRange, code: "INVALID_RANGE",
		},
		{
			name:   "all present values identical",
			values: []float64{5, 5, 5},
			low:    -1, high: 1,
			check: core.IsZeroRange, code: "ZERO_RANGE",
		},
		{
			name:   "identical values mixed with missing",
			values: []float64{nan, 7, 7, nan},
			low:    0, high: 1,
			check: core.IsZeroRange, code: "ZERO_RANGE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rescale(tt.values, tt.low, tt.high)
			if err == nil {
				t.Fatalf("Rescale() = %v, want %s error", got, tt.code)
			}
			if !tt.check(err) {
				t.Errorf("Rescale() error = %v, want %s", err, tt.code)
			}
		})
	}
}

// 区间校验先于有效值检查：非法区间对任何输入都报 INVALID_RANGE。
func TestRescale_InvalidRangeBeforeEmptyInput(t *testing.T) {
	_, err := Rescale([]float64{}, 1, 1)
	if !core.IsInvalidRange(err) {
		t.Errorf("Rescale() error = %v, want INVALID_RANGE", err)
	}
}

func TestRescale_Monotonic(t *testing.T) {
	values := []float64{3, 1, 4, 1.5, 9, 2.6}
	got, err := Rescale(values, 0, 1)
	if err != nil {
		t.Fatalf("Rescale() error = %v", err)
	}
	for i := range values {
		for j := range values {
			if values[i] < values[j] && got[i] >= got[j] {
				t.Errorf("order not preserved: in(%v < %v) out(%v >= %v)",
					values[i], values[j], got[i], got[j])
			}
		}
	}
}

// 已经落在 [low, high] 且命中两端的序列再归一化结果不变。
func TestRescale_Idempotent(t *testing.T) {
	values := []float64{-1, -0.5, 0, 1}
	got, err := Rescale(values, -1, 1)
	if err != nil {
		t.Fatalf("Rescale() error = %v", err)
	}
	for i := range values {
		if !almostEqual(got[i], values[i]) {
			t.Errorf("position %d = %v, want %v", i, got[i], values[i])
		}
	}
}

func TestRescaleSeries(t *testing.T) {
	s := core.NewSeries([]float64{10, math.NaN(), 20, 30})
	got, err := RescaleSeries(s, 0, 100)
	if err != nil {
		t.Fatalf("RescaleSeries() error = %v", err)
	}
	if got.Len() != 4 {
		t.Fatalf("length = %d, want 4", got.Len())
	}
	if !got.MissingAt(1) {
		t.Errorf("position 1 should stay missing")
	}
	if !almostEqual(got.At(0), 0) || !almostEqual(got.At(2), 50) || !almostEqual(got.At(3), 100) {
		t.Errorf("values = %v, want [0 NaN 50 100]", got.Values())
	}
	// 输入序列不被修改
	if s.At(0) != 10 {
		t.Errorf("input series was mutated: %v", s.Values())
	}
}

func TestRangeScaler_FitTransform(t *testing.T) {
	s := core.NewSeries([]float64{1, 2, 3})
	scaler := NewRangeScaler()

	got, err := scaler.FitTransform(s)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	want := []float64{-1, 0, 1}
	for i := range want {
		if !almostEqual(got.At(i), want[i]) {
			t.Errorf("position %d = %v, want %v", i, got.At(i), want[i])
		}
	}
	if scaler.DataMin != 1 || scaler.DataMax != 3 {
		t.Errorf("fitted params = (%v, %v), want (1, 3)", scaler.DataMin, scaler.DataMax)
	}
}

func TestRangeScaler_TransformBeyondFittedRange(t *testing.T) {
	scaler := NewRangeScaler(WithRange(0, 1))
	if err := scaler.Fit(core.NewSeries([]float64{10, 20})); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	// 超出拟合区间的值保持仿射映射，不截断
	got, err := scaler.Transform(core.NewSeries([]float64{5, 25}))
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if !almostEqual(got.At(0), -0.5) || !almostEqual(got.At(1), 1.5) {
		t.Errorf("values = %v, want [-0.5 1.5]", got.Values())
	}
}

func TestRangeScaler_NotFitted(t *testing.T) {
	scaler := NewRangeScaler()
	if _, err := scaler.Transform(core.NewSeries([]float64{1, 2})); err == nil {
		t.Fatal("Transform() on unfitted scaler should fail")
	}
}

func TestRangeScaler_FitErrors(t *testing.T) {
	tests := []struct {
		name   string
		scaler *RangeScaler
		values []float64
		check  func(error) bool
	}{
		{"invalid range", NewRangeScaler(WithRange(2, 2)), []float64{1, 2}, core.IsInvalidRange},
		{"all missing", NewRangeScaler(), []float64{math.NaN()}, core.IsEmptyInput},
		{"constant series", NewRangeScaler(), []float64{4, 4, 4}, core.IsZeroRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scaler.Fit(core.NewSeries(tt.values))
			if err == nil || !tt.check(err) {
				t.Errorf("Fit() error = %v", err)
			}
		})
	}
}

func TestZScoreScaler(t *testing.T) {
	s := core.NewSeries([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	scaler := NewZScoreScaler()

	got, err := scaler.FitTransform(s)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	if !almostEqual(scaler.Mean, 5) || !almostEqual(scaler.Std, 2) {
		t.Fatalf("fitted params = (%v, %v), want (5, 2)", scaler.Mean, scaler.Std)
	}
	if !almostEqual(got.At(0), -1.5) {
		t.Errorf("position 0 = %v, want -1.5", got.At(0))
	}

	// 标准化后的均值接近 0
	sum := 0.0
	for _, v := range got.Present() {
		sum += v
	}
	if !almostEqual(sum/float64(got.PresentCount()), 0) {
		t.Errorf("mean after zscore = %v, want 0", sum/float64(got.PresentCount()))
	}
}

func TestZScoreScaler_ConstantSeries(t *testing.T) {
	err := NewZScoreScaler().Fit(core.NewSeries([]float64{3, 3, 3}))
	if !core.IsZeroRange(err) {
		t.Errorf("Fit() error = %v, want ZERO_RANGE", err)
	}
}

func TestRobustScaler(t *testing.T) {
	s := core.NewSeries([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	scaler := NewRobustScaler()

	got, err := scaler.FitTransform(s)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	if !almostEqual(scaler.Median, 5) || !almostEqual(scaler.IQR, 4) {
		t.Fatalf("fitted params = (%v, %v), want (5, 4)", scaler.Median, scaler.IQR)
	}
	// 中位数映射到 0
	if !almostEqual(got.At(4), 0) {
		t.Errorf("median position = %v, want 0", got.At(4))
	}
}

func TestLogTransform(t *testing.T) {
	s := core.NewSeries([]float64{0, math.E - 1, math.NaN()})
	got, err := NewLogTransform().Transform(s)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if !almostEqual(got.At(0), 0) || !almostEqual(got.At(1), 1) {
		t.Errorf("values = %v, want [0 1 NaN]", got.Values())
	}
	if !got.MissingAt(2) {
		t.Errorf("missing position should stay missing")
	}
}

func TestSqrtTransform(t *testing.T) {
	s := core.NewSeries([]float64{4, 9, -1})
	got, err := NewSqrtTransform().Transform(s)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	want := []float64{2, 3, 0} // 负值按 0 处理
	for i := range want {
		if !almostEqual(got.At(i), want[i]) {
			t.Errorf("position %d = %v, want %v", i, got.At(i), want[i])
		}
	}
}
