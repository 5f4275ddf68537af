package core

import "context"

// ColumnSource 是外部列来源的领域接口：
// 按实体 ID 列表取回命名特征列，拼装成内存表格。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（feast 等）实现
//   - 表格库本身不做文件 I/O：CSV 读取器、Feature Store 客户端等
//     都以 ColumnSource 的形态接入
//
// 实现：
//   - feast.ColumnSource 基于 Feast Feature Store 实现此接口
type ColumnSource interface {
	// Name 返回来源名称（用于日志/监控）
	Name() string

	// FetchColumns 为一批实体取回指定特征列，返回包含实体 ID 列与特征列的表格。
	// 取不到的单元格记为缺失（数值列为 NaN，字符串列为空串）。
	FetchColumns(ctx context.Context, entityIDs []string, features []string) (*Table, error)

	// Close 关闭来源，释放资源
	Close() error
}

// Source 错误定义（使用统一的 DomainError）
var (
	// ErrSourceUnavailable 表示外部来源不可用
	ErrSourceUnavailable = NewDomainError(ModuleSource, ErrorCodeUnavailable, "source: unavailable")
)
