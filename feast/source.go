package feast

import (
	"context"
	"strings"

	"github.com/rushteam/featkit/core"
)

// ColumnSource 把 Feast 在线特征封装为 core.ColumnSource：
// 按实体 ID 列表取回命名特征列，拼装成内存表格后进入特征工程流水线。
//
// 列类型推断：
//   - 某特征在所有返回行中的首个有效值为 float64 时，该特征为数值列，
//     缺失单元格记为 NaN
//   - 否则为字符串列，缺失单元格记为空串
//
// 列名：特征名 "view:feature" 中的 view 前缀会被去掉，
// 输出列名为 "feature"（与本地表格的命名习惯一致）。
type ColumnSource struct {
	client Client

	// EntityKey 实体主键名，例如 "passenger_id"
	EntityKey string

	// Project 项目名称（可选，空则用客户端默认值）
	Project string
}

// NewColumnSource 创建基于 Feast 的列来源。
func NewColumnSource(client Client, entityKey string, project string) *ColumnSource {
	return &ColumnSource{
		client:    client,
		EntityKey: entityKey,
		Project:   project,
	}
}

func (s *ColumnSource) Name() string { return "source.feast" }

// FetchColumns 为一批实体取回指定特征列（实现 core.ColumnSource 接口）。
// 返回的表格第一列是实体 ID 列（列名为 EntityKey），其后按 features
// 顺序排列各特征列。
func (s *ColumnSource) FetchColumns(
	ctx context.Context,
	entityIDs []string,
	features []string,
) (*core.Table, error) {
	if s.client == nil {
		return nil, core.ErrSourceUnavailable
	}
	if len(entityIDs) == 0 || len(features) == 0 {
		return nil, core.NewDomainError(core.ModuleSource, core.ErrorCodeInvalidInput,
			"source: entity ids and features are required")
	}

	entityRows := make([]map[string]interface{}, len(entityIDs))
	for i, id := range entityIDs {
		entityRows[i] = map[string]interface{}{s.EntityKey: id}
	}

	resp, err := s.client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   features,
		EntityRows: entityRows,
		Project:    s.Project,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.FeatureVectors) != len(entityIDs) {
		return nil, core.NewDomainError(core.ModuleSource, core.ErrorCodeInvalidInput,
			"source: feature vector count does not match entity count")
	}

	columns := []*core.Column{core.StringColumn(s.EntityKey, entityIDs)}
	for _, feature := range features {
		columns = append(columns, assembleColumn(feature, resp.FeatureVectors))
	}
	return core.NewTable(columns...)
}

// Close 关闭底层客户端（实现 core.ColumnSource 接口）。
func (s *ColumnSource) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// assembleColumn 把一个特征在各行的取值拼装为一列。
func assembleColumn(feature string, vectors []FeatureVector) *core.Column {
	numeric := true
	for _, vec := range vectors {
		v, ok := vec.Values[feature]
		if !ok {
			continue
		}
		if _, isFloat := v.(float64); !isFloat {
			numeric = false
		}
		break
	}

	name := featureColumnName(feature)
	if numeric {
		values := make([]float64, len(vectors))
		for i, vec := range vectors {
			if v, ok := vec.Values[feature].(float64); ok {
				values[i] = v
			} else {
				values[i] = core.Missing()
			}
		}
		return core.NumericColumn(name, values)
	}

	values := make([]string, len(vectors))
	for i, vec := range vectors {
		if v, ok := vec.Values[feature].(string); ok {
			values[i] = v
		}
	}
	return core.StringColumn(name, values)
}

// featureColumnName 去掉 "view:feature" 中的 view 前缀。
func featureColumnName(feature string) string {
	if i := strings.LastIndex(feature, ":"); i >= 0 {
		return feature[i+1:]
	}
	return feature
}

var _ core.ColumnSource = (*ColumnSource)(nil)
