package pipeline

import (
	"context"
	"testing"

	"github.com/rushteam/featkit/core"
)

const testYAML = `
pipeline:
  name: test-pipeline
  stages:
    - type: add.column
      config:
        name: derived
    - type: add.column
      config:
        name: another
`

func TestLoadFromYAMLBytes(t *testing.T) {
	cfg, err := LoadFromYAMLBytes([]byte(testYAML))
	if err != nil {
		t.Fatalf("LoadFromYAMLBytes() error = %v", err)
	}

	if cfg.Pipeline.Name != "test-pipeline" {
		t.Errorf("Name = %q, want %q", cfg.Pipeline.Name, "test-pipeline")
	}
	if len(cfg.Pipeline.Stages) != 2 {
		t.Fatalf("got %d stages, want 2", len(cfg.Pipeline.Stages))
	}
	if cfg.Pipeline.Stages[0].Type != "add.column" {
		t.Errorf("stage type = %q", cfg.Pipeline.Stages[0].Type)
	}
	if cfg.Pipeline.Stages[0].Config["name"] != "derived" {
		t.Errorf("stage config = %v", cfg.Pipeline.Stages[0].Config)
	}
}

func TestLoadFromYAMLBytes_Invalid(t *testing.T) {
	if _, err := LoadFromYAMLBytes([]byte("pipeline: [broken")); err == nil {
		t.Fatal("invalid yaml should fail")
	}
}

func TestConfig_BuildPipeline(t *testing.T) {
	cfg, err := LoadFromYAMLBytes([]byte(testYAML))
	if err != nil {
		t.Fatalf("LoadFromYAMLBytes() error = %v", err)
	}

	factory := NewStageFactory()
	factory.Register("add.column", func(config map[string]interface{}) (Stage, error) {
		name, _ := config["name"].(string)
		return &stubStage{
			name: "add." + name,
			fn: func(tbl *core.Table) (*core.Table, error) {
				out := tbl.Clone()
				if err := out.AddColumn(core.NumericColumn(name, []float64{1})); err != nil {
					return nil, err
				}
				return out, nil
			},
		}, nil
	})

	p, err := cfg.BuildPipeline(factory)
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	if len(p.Stages) != 2 {
		t.Fatalf("got %d stages, want 2", len(p.Stages))
	}

	tbl, _ := core.NewTable(core.NumericColumn("a", []float64{0}))
	out, err := p.Run(context.Background(), nil, tbl)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, err := out.Column("derived"); err != nil {
		t.Errorf("derived column missing")
	}
	if _, err := out.Column("another"); err != nil {
		t.Errorf("another column missing")
	}
}

func TestConfig_BuildPipeline_UnknownType(t *testing.T) {
	cfg, _ := LoadFromYAMLBytes([]byte(testYAML))
	if _, err := cfg.BuildPipeline(NewStageFactory()); err == nil {
		t.Fatal("unregistered stage type should fail")
	}
}
