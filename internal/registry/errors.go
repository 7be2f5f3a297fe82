package registry

import "github.com/cockroachdb/errors"

// ErrValidation：输入校验失败的标记错误
// 背景：上传内容为空、请求缺少必填字段等情况统一打上此标记，HTTP 层据此映射为 400
var ErrValidation = errors.New("validation failed")

// Validationf：构造带校验标记的错误，消息面向调用方
func Validationf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrValidation)
}

// IsValidation 判断 err 链上是否带有校验标记
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
