package auth_handler

import (
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/models"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/service"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/context"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/jwtauth"
)

type IProfileHandler interface {
	GetUserInfo(c *context.Context) *context.Response
	GetMenuTree(c *context.Context) *context.Response
	GetMenuList(c *context.Context) *context.Response
}

type ProfileHandler struct{}

// @route GET /user/info
// GetUserInfo 返回当前登录用户的资料与角色编码
func (h *ProfileHandler) GetUserInfo(c *context.Context) *context.Response {
	user, rsp := CurrentUser(c)
	if rsp != nil {
		return rsp
	}

	info, err := service.AuthServiceInstance.GetUserInfo(c.Context(), user)
	if err != nil {
		return context.InternalError(err.Error())
	}
	return context.Success(info)
}

// @route GET /menu/all
// GetMenuTree 返回启用菜单组成的树，供前端构建路由
func (h *ProfileHandler) GetMenuTree(c *context.Context) *context.Response {
	tree, err := service.MenuServiceInstance.GetMenuTree(c.Context())
	if err != nil {
		return context.InternalError(err.Error())
	}
	return context.Success(tree)
}

// @route GET /menu/list
// GetMenuList 返回启用菜单的平铺列表
func (h *ProfileHandler) GetMenuList(c *context.Context) *context.Response {
	menus, err := service.MenuServiceInstance.GetActiveMenus(c.Context())
	if err != nil {
		return context.InternalError(err.Error())
	}
	return context.Success(menus)
}

// CurrentUser 从请求上下文取出认证中间件解析好的用户
func CurrentUser(c *context.Context) (*models.User, *context.Response) {
	value, exists := c.GetUserValue(jwtauth.UserKey)
	if !exists {
		return nil, context.Unauthorized("Not authenticated")
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil, context.Unauthorized("Not authenticated")
	}
	return user, nil
}
