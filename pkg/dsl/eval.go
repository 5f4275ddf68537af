package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		// 定义变量类型
		cel.Variable("row", cel.DynType),
		cel.Variable("params", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Program 是行表达式 DSL 的编译产物，使用 CEL (Common Expression Language) 实现。
// CEL 是 Google 开发的表达式语言，具有类型安全、高性能、线程安全等特性。
//
// 同一个表达式会对表格的每一行求值一次，因此编译只做一次、
// 求值按行复用（与按条编译相比，几百行的表格可省掉重复编译）。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：row.sex == "male" / row.embarked != "S"
//   - 数值：row.age > 30.0 / row.fare >= 10.0
//   - 逻辑：row.sex == "female" && row.age > 18.0
//   - 存在性：has(row.age)（缺失值在行作用域中不出现，可用 has 判断）
//   - 运算：row.mpg / row.wt（用于派生列）
//
// 示例：
//   - `row.survived == 1.0 && row.sex == "female"` → 按行过滤
//   - `row.fare / row.age` → 派生数值列
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译一个行表达式；编译失败返回错误。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}

	return &Program{expr: expr, prg: prg}, nil
}

// Expr 返回源表达式。
func (p *Program) Expr() string {
	return p.expr
}

// EvalBool 对一行求值，返回布尔结果（用于过滤）。
func (p *Program) EvalBool(row map[string]any, params map[string]any) (bool, error) {
	out, err := p.eval(row, params)
	if err != nil {
		return false, err
	}
	result, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out)
	}
	return result, nil
}

// EvalFloat 对一行求值，返回数值结果（用于派生列）。
func (p *Program) EvalFloat(row map[string]any, params map[string]any) (float64, error) {
	out, err := p.eval(row, params)
	if err != nil {
		return 0, err
	}
	switch v := out.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("expression must return number, got %T", out)
	}
}

func (p *Program) eval(row map[string]any, params map[string]any) (any, error) {
	if row == nil {
		row = map[string]any{}
	}
	if params == nil {
		params = map[string]any{}
	}

	out, _, err := p.prg.Eval(map[string]interface{}{
		"row":    row,
		"params": params,
	})
	if err != nil {
		// 对于不存在的 key，CEL 会返回错误
		// 调用方应该使用 has(row.key) 来检查存在性，而不是直接访问
		return nil, fmt.Errorf("eval error: %v", err)
	}
	return out.Value(), nil
}
