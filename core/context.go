package core

// DatasetContext 承载数据集级别的元信息，贯穿整个 Pipeline 透传。
//
// 与表格本身不同，DatasetContext 描述"这批数据是什么"：
// 数据集名称、来源、以及各 Stage 可能用到的请求级参数。
type DatasetContext struct {
	// Name 数据集名称（如 "titanic", "mtcars"），用于日志/持久化 key
	Name string

	// Source 数据来源描述（如 "memory", "feast:driver_stats"）
	Source string

	// Params 请求级参数，各 Stage 按需读取
	// 例如：{"fit": true} 表示 ScaleStage 需要重新拟合参数
	Params map[string]any
}

// NewDatasetContext 创建一个数据集上下文。
func NewDatasetContext(name string) *DatasetContext {
	return &DatasetContext{
		Name:   name,
		Source: "memory",
		Params: make(map[string]any),
	}
}

// Param 读取请求级参数；不存在时返回 (nil, false)。
func (dctx *DatasetContext) Param(key string) (any, bool) {
	if dctx.Params == nil {
		return nil, false
	}
	v, ok := dctx.Params[key]
	return v, ok
}

// PutParam 写入请求级参数。
func (dctx *DatasetContext) PutParam(key string, value any) {
	if dctx.Params == nil {
		dctx.Params = make(map[string]any)
	}
	dctx.Params[key] = value
}
