package core

import "fmt"

// ColumnType 标记列的值类型。
type ColumnType string

const (
	ColumnNumeric ColumnType = "numeric" // 数值列（Series，NaN 表示缺失）
	ColumnString  ColumnType = "string"  // 字符串列（空串表示缺失）
)

// Column 是表格中的一列：列名 + 数值序列或字符串序列之一。
type Column struct {
	Name    string
	Type    ColumnType
	Numeric *Series  // Type == ColumnNumeric 时有效
	Strings []string // Type == ColumnString 时有效
}

// Len 返回列长度。
func (c *Column) Len() int {
	if c.Type == ColumnNumeric {
		return c.Numeric.Len()
	}
	return len(c.Strings)
}

// NumericColumn 创建数值列。
func NumericColumn(name string, values []float64) *Column {
	return &Column{Name: name, Type: ColumnNumeric, Numeric: NewSeries(values)}
}

// StringColumn 创建字符串列。
func StringColumn(name string, values []string) *Column {
	vs := make([]string, len(values))
	copy(vs, values)
	return &Column{Name: name, Type: ColumnString, Strings: vs}
}

// Table 是有序命名列组成的内存表格，是数据在整个 Pipeline 中的统一承载结构。
//
// 约束：
//   - 所有列长度一致（行数）
//   - 列名唯一，列顺序有意义（与插入顺序一致）
//
// 表格只负责承载与结构操作（Select/Drop/Rename/FilterRows），
// 数值变换在 transform 包，按行过滤表达式在 filter 包。
type Table struct {
	columns []*Column
	index   map[string]int
}

// NewTable 用给定的列创建表格；列长度不一致时返回 LENGTH_MISMATCH 错误。
func NewTable(columns ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, col := range columns {
		if err := t.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// NumRows 返回行数（空表为 0）。
func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

// NumCols 返回列数。
func (t *Table) NumCols() int {
	return len(t.columns)
}

// ColumnNames 按列顺序返回所有列名。
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Column 按列名查找列；不存在时返回 COLUMN_NOT_FOUND 错误。
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, columnNotFound(name)
	}
	return t.columns[i], nil
}

// AddColumn 追加一列；同名列会被整体替换（长度仍需一致）。
func (t *Table) AddColumn(col *Column) error {
	if col == nil {
		return NewDomainError(ModuleTable, ErrorCodeInvalidInput, "table: nil column")
	}
	if len(t.columns) > 0 && col.Len() != t.NumRows() {
		return NewDomainError(ModuleTable, ErrorCodeLengthMismatch,
			fmt.Sprintf("table: column %q has %d rows, table has %d", col.Name, col.Len(), t.NumRows()))
	}
	if i, ok := t.index[col.Name]; ok {
		t.columns[i] = col
		return nil
	}
	t.index[col.Name] = len(t.columns)
	t.columns = append(t.columns, col)
	return nil
}

// RenameColumn 重命名一列。
func (t *Table) RenameColumn(oldName, newName string) error {
	i, ok := t.index[oldName]
	if !ok {
		return columnNotFound(oldName)
	}
	if _, exists := t.index[newName]; exists && newName != oldName {
		return NewDomainError(ModuleTable, ErrorCodeInvalidInput,
			fmt.Sprintf("table: column %q already exists", newName))
	}
	delete(t.index, oldName)
	t.columns[i].Name = newName
	t.index[newName] = i
	return nil
}

// Select 返回只包含指定列的新表格，列顺序按参数顺序。
func (t *Table) Select(names ...string) (*Table, error) {
	out := &Table{index: make(map[string]int, len(names))}
	for _, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		if err := out.AddColumn(cloneColumn(col)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Drop 返回去掉指定列的新表格。
func (t *Table) Drop(names ...string) (*Table, error) {
	dropped := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := t.index[name]; !ok {
			return nil, columnNotFound(name)
		}
		dropped[name] = true
	}
	out := &Table{index: make(map[string]int)}
	for _, col := range t.columns {
		if dropped[col.Name] {
			continue
		}
		if err := out.AddColumn(cloneColumn(col)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FilterRows 返回只保留 mask 为 true 的行的新表格。
// mask 长度必须等于行数。
func (t *Table) FilterRows(mask []bool) (*Table, error) {
	if len(mask) != t.NumRows() {
		return nil, NewDomainError(ModuleTable, ErrorCodeLengthMismatch,
			fmt.Sprintf("table: mask has %d entries, table has %d rows", len(mask), t.NumRows()))
	}
	out := &Table{index: make(map[string]int, len(t.columns))}
	for _, col := range t.columns {
		var kept *Column
		switch col.Type {
		case ColumnNumeric:
			vals := make([]float64, 0, t.NumRows())
			for i := 0; i < col.Numeric.Len(); i++ {
				if mask[i] {
					vals = append(vals, col.Numeric.At(i))
				}
			}
			kept = NumericColumn(col.Name, vals)
		case ColumnString:
			vals := make([]string, 0, t.NumRows())
			for i, v := range col.Strings {
				if mask[i] {
					vals = append(vals, v)
				}
			}
			kept = StringColumn(col.Name, vals)
		}
		if err := out.AddColumn(kept); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Row 返回第 i 行的列名 -> 值映射（数值列为 float64，字符串列为 string）。
// 缺失的数值在返回值中省略，方便表达式层用 `has()` 判断存在性。
func (t *Table) Row(i int) map[string]any {
	row := make(map[string]any, len(t.columns))
	for _, col := range t.columns {
		switch col.Type {
		case ColumnNumeric:
			if !col.Numeric.MissingAt(i) {
				row[col.Name] = col.Numeric.At(i)
			}
		case ColumnString:
			if col.Strings[i] != "" {
				row[col.Name] = col.Strings[i]
			}
		}
	}
	return row
}

// Clone 返回表格的深拷贝。
func (t *Table) Clone() *Table {
	out := &Table{index: make(map[string]int, len(t.columns))}
	for _, col := range t.columns {
		_ = out.AddColumn(cloneColumn(col))
	}
	return out
}

func cloneColumn(col *Column) *Column {
	switch col.Type {
	case ColumnNumeric:
		return &Column{Name: col.Name, Type: ColumnNumeric, Numeric: col.Numeric.Clone()}
	default:
		vs := make([]string, len(col.Strings))
		copy(vs, col.Strings)
		return &Column{Name: col.Name, Type: ColumnString, Strings: vs}
	}
}

func columnNotFound(name string) *DomainError {
	return NewDomainError(ModuleTable, ErrorCodeColumnNotFound,
		fmt.Sprintf("table: column %q not found", name))
}
