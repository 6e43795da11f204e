package system_handler

import (
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/params"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/service"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/context"
)

type IUserHandler interface {
	GetUserList(c *context.Context, req *params.GetUserListRequest) *context.Response
	GetUser(c *context.Context, req *params.GetUserRequest) *context.Response
	CreateUser(c *context.Context, req *params.CreateUserRequest) *context.Response
	UpdateUser(c *context.Context, req *params.UpdateUserRequest) *context.Response
	UpdateUserStatus(c *context.Context, req *params.UpdateUserStatusRequest) *context.Response
	DeleteUser(c *context.Context, req *params.DeleteUserRequest) *context.Response
}

type UserHandler struct{}

// @route GET /system/user/list
func (h *UserHandler) GetUserList(c *context.Context, req *params.GetUserListRequest) *context.Response {
	users, total, err := service.UserServiceInstance.GetUserList(c.Context(), req)
	if err != nil {
		return failure(err)
	}
	page, pageSize := req.Normalize()
	return context.PageSuccess(users, total, page, pageSize)
}

// @route GET /system/user
func (h *UserHandler) GetUser(c *context.Context, req *params.GetUserRequest) *context.Response {
	user, err := service.UserServiceInstance.GetUser(c.Context(), req.ID)
	if err != nil {
		return failure(err)
	}
	return context.Success(user)
}

// @route POST /system/user
func (h *UserHandler) CreateUser(c *context.Context, req *params.CreateUserRequest) *context.Response {
	user, err := service.UserServiceInstance.CreateUser(c.Context(), req)
	if err != nil {
		return failure(err)
	}
	return context.Success(user)
}

// @route PUT /system/user
func (h *UserHandler) UpdateUser(c *context.Context, req *params.UpdateUserRequest) *context.Response {
	user, err := service.UserServiceInstance.UpdateUser(c.Context(), req)
	if err != nil {
		return failure(err)
	}
	return context.Success(user)
}

// @route PUT /system/user/status
func (h *UserHandler) UpdateUserStatus(c *context.Context, req *params.UpdateUserStatusRequest) *context.Response {
	if err := service.UserServiceInstance.UpdateUserStatus(c.Context(), req.IDs, req.Status); err != nil {
		return failure(err)
	}
	return context.Success(nil)
}

// @route DELETE /system/user
func (h *UserHandler) DeleteUser(c *context.Context, req *params.DeleteUserRequest) *context.Response {
	if err := service.UserServiceInstance.DeleteUsers(c.Context(), req.IDs); err != nil {
		return failure(err)
	}
	return context.Success(nil)
}
