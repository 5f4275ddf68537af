package dsl

import (
	"testing"
)

func TestCompile_Invalid(t *testing.T) {
	if _, err := Compile(`row.age >`); err == nil {
		t.Fatal("invalid expression should fail to compile")
	}
}

func TestProgram_EvalBool(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		row    map[string]any
		params map[string]any
		want   bool
	}{
		{
			name: "string equality",
			expr: `row.sex == "female"`,
			row:  map[string]any{"sex": "female"},
			want: true,
		},
		{
			name: "numeric comparison",
			expr: `row.age > 30.0`,
			row:  map[string]any{"age": 22.0},
			want: false,
		},
		{
			name: "logical and",
			expr: `row.sex == "female" && row.age > 18.0`,
			row:  map[string]any{"sex": "female", "age": 38.0},
			want: true,
		},
		{
			name: "missing cell checked with has",
			expr: `has(row.age)`,
			row:  map[string]any{"sex": "male"}, // age 缺失时不出现在 row 中
			want: false,
		},
		{
			name: "present cell checked with has",
			expr: `has(row.age)`,
			row:  map[string]any{"age": 22.0},
			want: true,
		},
		{
			name:   "params scope",
			expr:   `row.fare < params.fare_cap`,
			row:    map[string]any{"fare": 7.25},
			params: map[string]any{"fare_cap": 10.0},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			got, err := p.EvalBool(tt.row, tt.params)
			if err != nil {
				t.Fatalf("EvalBool() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EvalBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgram_EvalBool_NonBoolean(t *testing.T) {
	p, err := Compile(`row.age + 1.0`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if _, err := p.EvalBool(map[string]any{"age": 1.0}, nil); err == nil {
		t.Fatal("non-boolean result should fail")
	}
}

func TestProgram_EvalFloat(t *testing.T) {
	tests := []struct {
		name string
		expr string
		row  map[string]any
		want float64
	}{
		{"arithmetic", `row.fare / row.age`, map[string]any{"fare": 40.0, "age": 20.0}, 2},
		{"int result", `2 + 3`, nil, 5},
		{"params", `row.age / params.max_age`, map[string]any{"age": 20.0}, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			params := map[string]any{"max_age": 80.0}
			got, err := p.EvalFloat(tt.row, params)
			if err != nil {
				t.Fatalf("EvalFloat() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EvalFloat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgram_EvalFloat_MissingKey(t *testing.T) {
	p, err := Compile(`row.age + 1.0`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	// 直接访问不存在的 key 会报错（调用方用 has() 判断存在性）
	if _, err := p.EvalFloat(map[string]any{}, nil); err == nil {
		t.Fatal("missing key should produce an error")
	}
}

func TestProgram_Expr(t *testing.T) {
	p, err := Compile(`row.a == 1.0`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if p.Expr() != `row.a == 1.0` {
		t.Errorf("Expr() = %q", p.Expr())
	}
}
