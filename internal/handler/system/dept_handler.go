package system_handler

import (
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/params"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/service"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/context"
)

type IDeptHandler interface {
	GetDeptList(c *context.Context, req *params.GetDeptListRequest) *context.Response
	GetDeptAll(c *context.Context) *context.Response
	CreateDept(c *context.Context, req *params.CreateDeptRequest) *context.Response
	UpdateDept(c *context.Context, req *params.UpdateDeptRequest) *context.Response
	DeleteDept(c *context.Context, req *params.DeleteDeptRequest) *context.Response
}

type DeptHandler struct{}

// @route GET /system/dept/list
func (h *DeptHandler) GetDeptList(c *context.Context, req *params.GetDeptListRequest) *context.Response {
	depts, total, err := service.DeptServiceInstance.GetDeptList(c.Context(), req)
	if err != nil {
		return failure(err)
	}
	page, pageSize := req.Normalize()
	return context.PageSuccess(depts, total, page, pageSize)
}

// @route GET /system/dept/all
// GetDeptAll 返回全部部门的平铺列表
func (h *DeptHandler) GetDeptAll(c *context.Context) *context.Response {
	depts, err := service.DeptServiceInstance.GetAllDepts(c.Context())
	if err != nil {
		return failure(err)
	}
	return context.Success(depts)
}

// @route POST /system/dept
func (h *DeptHandler) CreateDept(c *context.Context, req *params.CreateDeptRequest) *context.Response {
	dept, err := service.DeptServiceInstance.CreateDept(c.Context(), req)
	if err != nil {
		return failure(err)
	}
	return context.Success(dept)
}

// @route PUT /system/dept
func (h *DeptHandler) UpdateDept(c *context.Context, req *params.UpdateDeptRequest) *context.Response {
	dept, err := service.DeptServiceInstance.UpdateDept(c.Context(), req)
	if err != nil {
		return failure(err)
	}
	return context.Success(dept)
}

// @route DELETE /system/dept
func (h *DeptHandler) DeleteDept(c *context.Context, req *params.DeleteDeptRequest) *context.Response {
	if err := service.DeptServiceInstance.DeleteDepts(c.Context(), req.IDs); err != nil {
		return failure(err)
	}
	return context.Success(nil)
}
