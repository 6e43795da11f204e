package handler

import (
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/context"
)

// HealthStatus 健康检查响应
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthHandler 健康检查，供负载均衡与定时探活任务调用
func HealthHandler(c *context.Context) *context.Response {
	return context.Success(HealthStatus{
		Status:  "ok",
		Message: "Service is running",
	})
}
