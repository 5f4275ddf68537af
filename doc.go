// Package featkit 是一个特征工程工具包（Feature Engineering Kit）。
//
// 设计要点：
// - Pipeline-first: 特征处理逻辑通过 Stage 串联（Extract → Clean → Scale → Bin）
// - Table-first: 数据以内存表格（core.Table）在全链路流转，缺失值原位保留
// - Stage 可扩展: 自定义 Stage 即可插拔扩展（本地变换或远端特征来源均可）
package featkit

import "github.com/rushteam/featkit/pipeline"

// 轻量 facade：便于用户直接 import "featkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Stage = pipeline.Stage
type Kind = pipeline.Kind

const (
	KindExtract = pipeline.KindExtract
	KindClean   = pipeline.KindClean
	KindScale   = pipeline.KindScale
	KindBin     = pipeline.KindBin
	KindFilter  = pipeline.KindFilter
	KindDerive  = pipeline.KindDerive
)
