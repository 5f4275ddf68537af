package transform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/featkit/core"
)

// ScalerParams 是拟合参数的统一载体，按变换类型取用对应字段。
// 训练侧拟合后写入存储，推理侧读取后回填到同类 Scaler。
type ScalerParams struct {
	// Kind 变换类型（如 "scale.range", "scale.zscore"）
	Kind string `json:"kind"`

	// Low/High/DataMin/DataMax 用于 scale.range
	Low     float64 `json:"low,omitempty"`
	High    float64 `json:"high,omitempty"`
	DataMin float64 `json:"data_min,omitempty"`
	DataMax float64 `json:"data_max,omitempty"`

	// Mean/Std 用于 scale.zscore
	Mean float64 `json:"mean,omitempty"`
	Std  float64 `json:"std,omitempty"`
}

// NewScalerFromParams 根据参数重建已拟合的 Scaler。
func NewScalerFromParams(p ScalerParams) (Scaler, error) {
	switch p.Kind {
	case "scale.range":
		s := NewRangeScaler()
		s.SetParams(p)
		return s, nil
	case "scale.zscore":
		s := NewZScoreScaler()
		s.SetParams(p)
		return s, nil
	default:
		return nil, core.NewDomainError(core.ModuleTransform, core.ErrorCodeNotSupported,
			fmt.Sprintf("transform: unknown scaler kind %q", p.Kind))
	}
}

// ParamsStore 是拟合参数的存储层，采用适配器模式把 core.HashStore
// 适配为按 (数据集, 特征名) 读写 ScalerParams 的接口。
//
// 存储布局：
//   - Hash key:   "<prefix><dataset>"（如 "scaler:titanic"）
//   - Hash field: 特征/列名（如 "age"）
//   - Hash value: ScalerParams 的 JSON
type ParamsStore struct {
	store     core.HashStore
	keyPrefix string
}

// NewParamsStore 创建拟合参数存储；keyPrefix 为空时使用 "scaler:"。
func NewParamsStore(store core.HashStore, keyPrefix string) *ParamsStore {
	if keyPrefix == "" {
		keyPrefix = "scaler:"
	}
	return &ParamsStore{
		store:     store,
		keyPrefix: keyPrefix,
	}
}

func (p *ParamsStore) Name() string {
	return fmt.Sprintf("params.%s", p.store.Name())
}

// Save 保存一个特征的拟合参数。
func (p *ParamsStore) Save(ctx context.Context, dataset, feature string, params ScalerParams) error {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal scaler params: %w", err)
	}
	return p.store.HSet(ctx, p.keyPrefix+dataset, feature, data)
}

// Load 读取一个特征的拟合参数；不存在时返回 NOT_FOUND 错误。
func (p *ParamsStore) Load(ctx context.Context, dataset, feature string) (ScalerParams, error) {
	var params ScalerParams
	data, err := p.store.HGet(ctx, p.keyPrefix+dataset, feature)
	if err != nil {
		return params, err
	}
	if err := json.Unmarshal(data, &params); err != nil {
		return params, fmt.Errorf("unmarshal scaler params: %w", err)
	}
	return params, nil
}

// LoadAll 读取一个数据集下全部特征的拟合参数。
func (p *ParamsStore) LoadAll(ctx context.Context, dataset string) (map[string]ScalerParams, error) {
	raw, err := p.store.HGetAll(ctx, p.keyPrefix+dataset)
	if err != nil {
		return nil, err
	}
	out := make(map[string]ScalerParams, len(raw))
	for feature, data := range raw {
		var params ScalerParams
		if err := json.Unmarshal(data, &params); err != nil {
			return nil, fmt.Errorf("unmarshal scaler params for %q: %w", feature, err)
		}
		out[feature] = params
	}
	return out, nil
}

// LoadScaler 读取参数并直接重建已拟合的 Scaler。
func (p *ParamsStore) LoadScaler(ctx context.Context, dataset, feature string) (Scaler, error) {
	params, err := p.Load(ctx, dataset, feature)
	if err != nil {
		return nil, err
	}
	return NewScalerFromParams(params)
}
