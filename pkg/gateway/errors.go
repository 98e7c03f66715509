package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnreachable 网络层失败（连不上/超时），可退避重试
var ErrUnreachable = errors.New("域名网关不可达")

// ErrNotFound 网关侧无此记录
// Delete 的调用方应把它当幂等成功处理
var ErrNotFound = errors.New("网关无此域名记录")

// RejectedError 网关明确拒绝 (非 2xx 且有响应)
// Body 保留原始响应，管理端原样透传，让操作者能区分
// "域名已存在" 和一般性失败
type RejectedError struct {
	StatusCode int
	Code       string
	Message    string
	Body       []byte
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("网关拒绝: status=%d code=%s message=%s", e.StatusCode, e.Code, e.Message)
}

// newRejectedError 解析网关错误体；解析不了就归为 unknown
func newRejectedError(status int, body []byte) *RejectedError {
	e := &RejectedError{
		StatusCode: status,
		Code:       "unknown",
		Body:       body,
	}
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		e.Message = parsed.Error
		if parsed.Code != "" {
			e.Code = parsed.Code
		}
	}
	return e
}
