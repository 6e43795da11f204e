package context

import (
	"fmt"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// Response 是统一响应包裹：code==0 表示成功，失败时 error 携带错误说明。
// 业务失败默认仍返回 HTTP 200，只有少数场景（登录 401/403、未捕获异常 500）
// 通过 status 覆盖 HTTP 状态码。
type Response struct {
	Code    int    `json:"code"`
	Data    any    `json:"data"`
	Error   any    `json:"error"`
	Message string `json:"message"`

	status int
}

func (rsp *Response) Write(ctx *Context) {
	if rsp.status != 0 {
		ctx.JSON(rsp.status, rsp)
		return
	}
	ctx.JSON(consts.StatusOK, rsp)
}

// WithStatus 覆盖响应的 HTTP 状态码（默认 200）
func (rsp *Response) WithStatus(status int) *Response {
	rsp.status = status
	return rsp
}

// 成功响应函数
func Success(data any) *Response {
	return &Response{
		Code:    SUCCESS_OK,
		Data:    data,
		Error:   nil,
		Message: "ok",
	}
}

// PageSuccess 分页查询成功响应
func PageSuccess(items any, total int64, page, pageSize int) *Response {
	return Success(map[string]any{
		"items":    items,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// 客户端错误响应函数（支持string/error类型）
func BadRequest(message any) *Response {
	return failure(CLIENT_PARAM_ERROR, formatMessage(message, "Bad request"))
}

func NotFound(message any) *Response {
	return failure(CLIENT_NOT_FOUND, formatMessage(message, "Not found"))
}

func Unauthorized(message any) *Response {
	return failure(CLIENT_UNAUTHORIZED, formatMessage(message, "Unauthorized"))
}

func Forbidden(message any) *Response {
	return failure(CLIENT_FORBIDDEN, formatMessage(message, "Forbidden"))
}

// 服务端错误响应函数
func InternalError(message any) *Response {
	return failure(SERVER_INTERNAL_ERROR, formatMessage(message, "Internal server error"))
}

func failure(code int, message string) *Response {
	return &Response{
		Code:    code,
		Data:    nil,
		Error:   message,
		Message: message,
	}
}

// 格式化消息（支持string/error类型）
func formatMessage(message any, fallback string) string {
	switch v := message.(type) {
	case string:
		return v
	case error:
		return v.Error()
	case nil:
		return fallback
	default:
		return fmt.Sprintf("%v", v)
	}
}
