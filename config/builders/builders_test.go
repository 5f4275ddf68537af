package builders

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/featkit/config"
	"github.com/rushteam/featkit/core"
	"github.com/rushteam/featkit/pipeline"
)

const pipelineYAML = `
pipeline:
  name: titanic-test
  stages:
    - type: extract.split
      config:
        column: name
        fields:
          - name: surname
            index: 0
    - type: clean.fill
      config:
        column: age
        strategy: median
    - type: scale.range
      config:
        column: age
        output: age_scaled
        low: 0.0
        high: 1.0
    - type: filter.expr
      config:
        expr: has(row.surname)
    - type: derive.expr
      config:
        output: age_x2
        expr: row.age * 2.0
`

func TestBuildPipelineFromYAML(t *testing.T) {
	cfg, err := pipeline.LoadFromYAMLBytes([]byte(pipelineYAML))
	if err != nil {
		t.Fatalf("LoadFromYAMLBytes() error = %v", err)
	}
	if err := config.ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig() error = %v", err)
	}

	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	if len(p.Stages) != 5 {
		t.Fatalf("got %d stages, want 5", len(p.Stages))
	}

	tbl, err := core.NewTable(
		core.StringColumn("name", []string{"Braund, Mr. Owen", "Cumings, Mrs. John", "Heikkinen, Miss. Laina"}),
		core.NumericColumn("age", []float64{20, math.NaN(), 40}),
	)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	out, err := p.Run(context.Background(), core.NewDatasetContext("titanic"), tbl)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, name := range []string{"surname", "age_scaled", "age_x2"} {
		if _, err := out.Column(name); err != nil {
			t.Errorf("column %q missing after pipeline run", name)
		}
	}
	if out.NumRows() != 3 {
		t.Errorf("NumRows() = %d, want 3", out.NumRows())
	}
}

func TestValidatePipelineConfig_UnsupportedType(t *testing.T) {
	cfg, err := pipeline.LoadFromYAMLBytes([]byte(`
pipeline:
  name: bad
  stages:
    - type: scale.bogus
      config: {}
`))
	if err != nil {
		t.Fatalf("LoadFromYAMLBytes() error = %v", err)
	}
	if err := config.ValidatePipelineConfig(cfg); err == nil {
		t.Fatal("unsupported stage type should fail validation")
	}
}

func TestSupportedTypes(t *testing.T) {
	types := config.SupportedTypes()
	want := map[string]bool{
		"scale.range":   false,
		"scale.zscore":  false,
		"extract.split": false,
		"bin.width":     false,
		"bin.custom":    false,
		"clean.fill":    false,
		"clean.rename":  false,
		"filter.expr":   false,
		"derive.expr":   false,
	}
	for _, typ := range types {
		if _, ok := want[typ]; ok {
			want[typ] = true
		}
	}
	for typ, seen := range want {
		if !seen {
			t.Errorf("stage type %q not registered", typ)
		}
	}
}

func TestBuilders_RequiredFields(t *testing.T) {
	tests := []struct {
		typ string
		cfg map[string]interface{}
	}{
		{"scale.range", map[string]interface{}{}},
		{"extract.split", map[string]interface{}{"column": "name"}},
		{"bin.width", map[string]interface{}{"column": "age"}},
		{"bin.custom", map[string]interface{}{"column": "age"}},
		{"clean.fill", map[string]interface{}{}},
		{"clean.rename", map[string]interface{}{}},
		{"filter.expr", map[string]interface{}{}},
		{"derive.expr", map[string]interface{}{"output": "x"}},
	}
	factory := config.DefaultFactory()
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			if _, err := factory.Build(tt.typ, tt.cfg); err == nil {
				t.Errorf("Build(%q) with incomplete config should fail", tt.typ)
			}
		})
	}
}

func TestBuildWidthBinStage(t *testing.T) {
	factory := config.DefaultFactory()
	stage, err := factory.Build("bin.width", map[string]interface{}{
		"column": "age",
		"min":    0,
		"max":    100,
		"bins":   4,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	tbl, _ := core.NewTable(core.NumericColumn("age", []float64{10, 90}))
	out, err := stage.Process(context.Background(), nil, tbl)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	col, _ := out.Column("age")
	if col.Numeric.At(0) != 0 || col.Numeric.At(1) != 3 {
		t.Errorf("bins = %v, want [0 3]", col.Numeric.Values())
	}
}

func TestBuildCustomBinStage(t *testing.T) {
	factory := config.DefaultFactory()
	stage, err := factory.Build("bin.custom", map[string]interface{}{
		"column":     "age",
		"boundaries": []interface{}{0, 18, 65},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	tbl, _ := core.NewTable(core.NumericColumn("age", []float64{10, 30, 70}))
	out, err := stage.Process(context.Background(), nil, tbl)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	col, _ := out.Column("age")
	want := []float64{0, 1, 2}
	for i := range want {
		if col.Numeric.At(i) != want[i] {
			t.Errorf("bin[%d] = %v, want %v", i, col.Numeric.At(i), want[i])
		}
	}
}

func TestBuildRenameStage(t *testing.T) {
	factory := config.DefaultFactory()
	stage, err := factory.Build("clean.rename", map[string]interface{}{
		"renames": map[string]interface{}{"age": "age_years"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	tbl, _ := core.NewTable(core.NumericColumn("age", []float64{1}))
	out, err := stage.Process(context.Background(), nil, tbl)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if _, err := out.Column("age_years"); err != nil {
		t.Errorf("renamed column not found")
	}
}
