package system_handler

import (
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/params"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/service"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/context"
)

type IRoleHandler interface {
	GetRoleList(c *context.Context, req *params.GetRoleListRequest) *context.Response
	GetRoleAll(c *context.Context) *context.Response
	CreateRole(c *context.Context, req *params.CreateRoleRequest) *context.Response
	UpdateRole(c *context.Context, req *params.UpdateRoleRequest) *context.Response
	UpdateRoleStatus(c *context.Context, req *params.UpdateRoleStatusRequest) *context.Response
	DeleteRole(c *context.Context, req *params.DeleteRoleRequest) *context.Response
}

type RoleHandler struct{}

// @route GET /system/role/list
func (h *RoleHandler) GetRoleList(c *context.Context, req *params.GetRoleListRequest) *context.Response {
	roles, total, err := service.RoleServiceInstance.GetRoleList(c.Context(), req)
	if err != nil {
		return failure(err)
	}
	page, pageSize := req.Normalize()
	return context.PageSuccess(roles, total, page, pageSize)
}

// @route GET /system/role/all
// GetRoleAll 返回全部角色的平铺列表，供下拉选择使用
func (h *RoleHandler) GetRoleAll(c *context.Context) *context.Response {
	roles, err := service.RoleServiceInstance.GetAllRoles(c.Context())
	if err != nil {
		return failure(err)
	}
	return context.Success(roles)
}

// @route POST /system/role
func (h *RoleHandler) CreateRole(c *context.Context, req *params.CreateRoleRequest) *context.Response {
	role, err := service.RoleServiceInstance.CreateRole(c.Context(), req)
	if err != nil {
		return failure(err)
	}
	return context.Success(role)
}

// @route PUT /system/role
func (h *RoleHandler) UpdateRole(c *context.Context, req *params.UpdateRoleRequest) *context.Response {
	role, err := service.RoleServiceInstance.UpdateRole(c.Context(), req)
	if err != nil {
		return failure(err)
	}
	return context.Success(role)
}

// @route PUT /system/role/status
func (h *RoleHandler) UpdateRoleStatus(c *context.Context, req *params.UpdateRoleStatusRequest) *context.Response {
	if err := service.RoleServiceInstance.UpdateRoleStatus(c.Context(), req.IDs, req.Status); err != nil {
		return failure(err)
	}
	return context.Success(nil)
}

// @route DELETE /system/role
func (h *RoleHandler) DeleteRole(c *context.Context, req *params.DeleteRoleRequest) *context.Response {
	if err := service.RoleServiceInstance.DeleteRoles(c.Context(), req.IDs); err != nil {
		return failure(err)
	}
	return context.Success(nil)
}
