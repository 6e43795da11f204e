package system_handler

import (
	"errors"
	"time"

	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/service"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/context"
)

// Version 系统版本号，随发布更新
const Version = "1.0.0"

type ISystemHandler interface {
	GetStatus(c *context.Context) *context.Response
}

type SystemHandler struct{}

// @route GET /system/status
// GetStatus 返回系统运行状态，供运维探测
func (h *SystemHandler) GetStatus(c *context.Context) *context.Response {
	return context.Success(map[string]any{
		"status":    "running",
		"version":   Version,
		"timestamp": time.Now().Format("2006-01-02 15:04:05"),
	})
}

// failure 将服务层错误映射到统一响应码
func failure(err error) *context.Response {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return context.NotFound(err.Error())
	case errors.Is(err, service.ErrEmptyIDList),
		errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, service.ErrRoleExists),
		errors.Is(err, service.ErrMenuExists),
		errors.Is(err, service.ErrDeptExists),
		errors.Is(err, service.ErrParentNotFound),
		errors.Is(err, service.ErrParentCycle):
		return context.BadRequest(err.Error())
	default:
		return context.InternalError(err.Error())
	}
}
