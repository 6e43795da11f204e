package system_handler

import (
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/params"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/service"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/context"
)

type IMenuHandler interface {
	GetMenuList(c *context.Context, req *params.GetMenuListRequest) *context.Response
	CreateMenu(c *context.Context, req *params.CreateMenuRequest) *context.Response
	UpdateMenu(c *context.Context, req *params.UpdateMenuRequest) *context.Response
	DeleteMenu(c *context.Context, req *params.DeleteMenuRequest) *context.Response
}

type MenuHandler struct{}

// @route GET /system/menu/list
func (h *MenuHandler) GetMenuList(c *context.Context, req *params.GetMenuListRequest) *context.Response {
	menus, total, err := service.MenuServiceInstance.GetMenuList(c.Context(), req)
	if err != nil {
		return failure(err)
	}
	page, pageSize := req.Normalize()
	return context.PageSuccess(menus, total, page, pageSize)
}

// @route POST /system/menu
func (h *MenuHandler) CreateMenu(c *context.Context, req *params.CreateMenuRequest) *context.Response {
	menu, err := service.MenuServiceInstance.CreateMenu(c.Context(), req)
	if err != nil {
		return failure(err)
	}
	return context.Success(menu)
}

// @route PUT /system/menu
func (h *MenuHandler) UpdateMenu(c *context.Context, req *params.UpdateMenuRequest) *context.Response {
	menu, err := service.MenuServiceInstance.UpdateMenu(c.Context(), req)
	if err != nil {
		return failure(err)
	}
	return context.Success(menu)
}

// @route DELETE /system/menu
func (h *MenuHandler) DeleteMenu(c *context.Context, req *params.DeleteMenuRequest) *context.Response {
	if err := service.MenuServiceInstance.DeleteMenus(c.Context(), req.IDs); err != nil {
		return failure(err)
	}
	return context.Success(nil)
}
