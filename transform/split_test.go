package transform

import (
	"testing"

	"github.com/rushteam/featkit/core"
)

func TestSplitExtractor_Extract(t *testing.T) {
	col := core.StringColumn("name", []string{
		"Braund, Mr. Owen Harris",
		"Cumings, Mrs. John Bradley",
		"",           // 缺失行
		"Montvila",   // 无分隔符，第 1 段越界
	})

	extractor := NewSplitExtractor("name",
		WithSeparator(","),
		WithFields(
			Field{Name: "surname", Index: 0},
			Field{Name: "title", Index: 1},
		),
	)

	cols, err := extractor.Extract(col)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(cols) != 2 {
		t.Fatalf("got %d columns, want 2", len(cols))
	}

	surname, title := cols[0], cols[1]
	if surname.Name != "surname" || title.Name != "title" {
		t.Fatalf("column names = %q, %q", surname.Name, title.Name)
	}

	wantSurname := []string{"Braund", "Cumings", "", "Montvila"}
	wantTitle := []string{"Mr. Owen Harris", "Mrs. John Bradley", "", ""}
	for i := range wantSurname {
		if surname.Strings[i] != wantSurname[i] {
			t.Errorf("surname[%d] = %q, want %q", i, surname.Strings[i], wantSurname[i])
		}
		if title.Strings[i] != wantTitle[i] {
			t.Errorf("title[%d] = %q, want %q", i, title.Strings[i], wantTitle[i])
		}
	}
}

func TestSplitExtractor_NoTrim(t *testing.T) {
	col := core.StringColumn("name", []string{"a, b"})
	extractor := NewSplitExtractor("name",
		WithFields(Field{Name: "second", Index: 1}),
		WithTrim(false),
	)

	cols, err := extractor.Extract(col)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if cols[0].Strings[0] != " b" {
		t.Errorf("got %q, want %q", cols[0].Strings[0], " b")
	}
}

func TestSplitExtractor_CustomSeparator(t *testing.T) {
	col := core.StringColumn("path", []string{"a/b/c"})
	extractor := NewSplitExtractor("path",
		WithSeparator("/"),
		WithFields(Field{Name: "last", Index: 2}),
	)

	cols, err := extractor.Extract(col)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if cols[0].Strings[0] != "c" {
		t.Errorf("got %q, want %q", cols[0].Strings[0], "c")
	}
}

func TestSplitExtractor_RequiresStringColumn(t *testing.T) {
	col := core.NumericColumn("age", []float64{1, 2})
	extractor := NewSplitExtractor("age", WithFields(Field{Name: "x", Index: 0}))

	if _, err := extractor.Extract(col); err == nil {
		t.Fatal("Extract() on numeric column should fail")
	}
}

func TestSplitExtractor_NegativeIndex(t *testing.T) {
	col := core.StringColumn("name", []string{"a,b"})
	extractor := NewSplitExtractor("name", WithFields(Field{Name: "x", Index: -1}))

	cols, err := extractor.Extract(col)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if cols[0].Strings[0] != "" {
		t.Errorf("negative index should produce missing, got %q", cols[0].Strings[0])
	}
}
