package context

// 业务码规则：0 表示成功，非 0 沿用 HTTP 状态码语义，
// 前端根据 code 而不是 HTTP 状态码判断业务结果。

const (
	SUCCESS_OK = 0 // 操作成功
)

// 客户端错误类
const (
	CLIENT_PARAM_ERROR  = 400 // 参数错误 / 非法请求
	CLIENT_UNAUTHORIZED = 401 // 未认证或令牌无效
	CLIENT_FORBIDDEN    = 403 // 禁止访问
	CLIENT_NOT_FOUND    = 404 // 资源不存在
)

// 服务端错误类
const (
	SERVER_INTERNAL_ERROR = 500 // 服务端内部错误
)
