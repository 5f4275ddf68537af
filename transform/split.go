package transform

import (
	"strings"

	"github.com/rushteam/featkit/core"
)

// Field 描述切分后要保留的一个字段：取第 Index 段，输出为名为 Name 的新列。
type Field struct {
	Name  string // 输出列名
	Index int    // 切分后的段下标（从 0 开始）
}

// SplitExtractor 是字符串切分抽取器：按分隔符切分一个字符串列，
// 把选定的段落提升为新列。
//
// 典型用法：把 "Braund, Mr. Owen Harris" 形态的姓名列切出姓氏与称谓：
//
//	extractor := transform.NewSplitExtractor("name",
//	    transform.WithSeparator(","),
//	    transform.WithFields(
//	        transform.Field{Name: "surname", Index: 0},
//	        transform.Field{Name: "title", Index: 1},
//	    ),
//	)
//	cols, err := extractor.Extract(nameColumn)
//
// 约定：
//   - 输入为空串（缺失）时，所有输出段均为空串（缺失）
//   - 段下标越界时，该行输出为空串（缺失）
//   - 每段默认做 TrimSpace，去掉分隔符附近的空白
type SplitExtractor struct {
	// Column 源列名（仅 Stage 形态使用；直接调用 Extract 时可为空）
	Column string

	// Separator 分隔符，默认 ","
	Separator string

	// Fields 要保留的段
	Fields []Field

	// Trim 是否对每段做 TrimSpace，默认 true
	Trim bool
}

// SplitOption 定义切分抽取器的配置选项。
type SplitOption func(*SplitExtractor)

// WithSeparator 设置分隔符（默认 ","）。
func WithSeparator(sep string) SplitOption {
	return func(e *SplitExtractor) {
		e.Separator = sep
	}
}

// WithFields 设置要保留的段。
func WithFields(fields ...Field) SplitOption {
	return func(e *SplitExtractor) {
		e.Fields = fields
	}
}

// WithTrim 设置是否对每段做 TrimSpace（默认 true）。
func WithTrim(trim bool) SplitOption {
	return func(e *SplitExtractor) {
		e.Trim = trim
	}
}

// NewSplitExtractor 创建字符串切分抽取器。
func NewSplitExtractor(column string, opts ...SplitOption) *SplitExtractor {
	e := &SplitExtractor{
		Column:    column,
		Separator: ",",
		Trim:      true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract 对一个字符串列做切分，返回各字段对应的新列。
// 输入必须是字符串列，否则返回 INVALID_INPUT 错误。
func (e *SplitExtractor) Extract(col *core.Column) ([]*core.Column, error) {
	if col == nil || col.Type != core.ColumnString {
		return nil, core.NewDomainError(core.ModuleTransform, core.ErrorCodeInvalidInput,
			"transform: split extractor requires a string column")
	}
	if len(e.Fields) == 0 {
		return nil, nil
	}

	out := make([][]string, len(e.Fields))
	for i := range out {
		out[i] = make([]string, len(col.Strings))
	}

	for row, raw := range col.Strings {
		if raw == "" {
			continue // 缺失：所有输出段保持空串
		}
		parts := strings.Split(raw, e.Separator)
		for fi, field := range e.Fields {
			if field.Index < 0 || field.Index >= len(parts) {
				continue // 越界：该行输出为空串
			}
			part := parts[field.Index]
			if e.Trim {
				part = strings.TrimSpace(part)
			}
			out[fi][row] = part
		}
	}

	cols := make([]*core.Column, len(e.Fields))
	for fi, field := range e.Fields {
		cols[fi] = core.StringColumn(field.Name, out[fi])
	}
	return cols, nil
}
