package transform

import (
	"github.com/rushteam/featkit/core"
)

// ColumnProfile 是单列的画像：类型、统计量、缺失率。
type ColumnProfile struct {
	Name        string          `json:"name"`
	Type        core.ColumnType `json:"type"`
	Rows        int             `json:"rows"`
	Missing     int             `json:"missing"`
	MissingRate float64         `json:"missing_rate"`

	// Stats 数值列的描述统计；字符串列或全缺失列为 nil
	Stats *Statistics `json:"stats,omitempty"`

	// Cardinality 字符串列的不同取值个数（不含缺失）；数值列为 0
	Cardinality int `json:"cardinality,omitempty"`
}

// TableProfile 是整张表的画像，按列顺序排列。
type TableProfile struct {
	Dataset string          `json:"dataset"`
	Rows    int             `json:"rows"`
	Columns []ColumnProfile `json:"columns"`
}

// Profile 为表格生成画像：每列的统计量与缺失情况。
// 这是探索性分析的入口：看一眼分布，再决定缩放/分桶/填充策略。
func Profile(dctx *core.DatasetContext, tbl *core.Table) *TableProfile {
	profile := &TableProfile{
		Rows:    tbl.NumRows(),
		Columns: make([]ColumnProfile, 0, tbl.NumCols()),
	}
	if dctx != nil {
		profile.Dataset = dctx.Name
	}

	for _, name := range tbl.ColumnNames() {
		col, err := tbl.Column(name)
		if err != nil {
			continue
		}
		profile.Columns = append(profile.Columns, profileColumn(col))
	}
	return profile
}

func profileColumn(col *core.Column) ColumnProfile {
	cp := ColumnProfile{
		Name: col.Name,
		Type: col.Type,
		Rows: col.Len(),
	}

	switch col.Type {
	case core.ColumnNumeric:
		cp.Missing = col.Numeric.MissingCount()
		// 全缺失列没有统计量可算，Stats 留空
		if stats, err := Describe(col.Numeric); err == nil {
			cp.Stats = stats
		}
	case core.ColumnString:
		seen := make(map[string]struct{})
		for _, v := range col.Strings {
			if v == "" {
				cp.Missing++
				continue
			}
			seen[v] = struct{}{}
		}
		cp.Cardinality = len(seen)
	}

	if cp.Rows > 0 {
		cp.MissingRate = float64(cp.Missing) / float64(cp.Rows)
	}
	return cp
}
