package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Transform 错误：EMPTY_INPUT, INVALID_RANGE, ZERO_RANGE
//   - Table 错误：COLUMN_NOT_FOUND, LENGTH_MISMATCH
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
//   - 其他领域错误
type DomainError struct {
	Code    string // 错误代码（如 "EMPTY_INPUT", "NOT_FOUND"）
	Message string // 错误消息
	Module  string // 模块名称（如 "transform", "table", "store"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*DomainError)
	return ok
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	// 通用错误代码
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeUnavailable   = "UNAVAILABLE"    // 服务不可用
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误

	// Transform 错误代码（归一化等数值变换）
	ErrorCodeEmptyInput   = "EMPTY_INPUT"   // 输入中没有任何有效（非缺失）值
	ErrorCodeInvalidRange = "INVALID_RANGE" // 输出区间非法（low >= high）
	ErrorCodeZeroRange    = "ZERO_RANGE"    // 有效值全部相同，缩放因子无定义（除零类错误）

	// Table 错误代码
	ErrorCodeColumnNotFound = "COLUMN_NOT_FOUND" // 列不存在
	ErrorCodeLengthMismatch = "LENGTH_MISMATCH"  // 列长度不一致
)

// 模块名称常量
const (
	ModuleStore     = "store"     // 存储模块
	ModuleTransform = "transform" // 数值变换模块
	ModuleTable     = "table"     // 表格模块
	ModuleSource    = "source"    // 外部列来源模块
)

// 通用错误检查函数

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotSupported
	}
	return false
}

// IsEmptyInput 检查错误是否为 EMPTY_INPUT
func IsEmptyInput(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeEmptyInput
	}
	return false
}

// IsInvalidRange 检查错误是否为 INVALID_RANGE
func IsInvalidRange(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidRange
	}
	return false
}

// IsZeroRange 检查错误是否为 ZERO_RANGE
func IsZeroRange(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeZeroRange
	}
	return false
}

// IsColumnNotFound 检查错误是否为 COLUMN_NOT_FOUND
func IsColumnNotFound(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeColumnNotFound
	}
	return false
}
