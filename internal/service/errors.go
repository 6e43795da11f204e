package service

import (
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/repository"
	"github.com/pkg/errors"
)

// 业务错误，由 handler 层映射为响应码。
// 登录相关的报错文案保持统一，不泄露用户是否存在。
var (
	ErrInvalidCredentials   = errors.New("Username or password is incorrect")
	ErrUserDisabled         = errors.New("User is disabled")
	ErrRefreshTokenRequired = errors.New("Refresh token is required")
	ErrInvalidRefreshToken  = errors.New("Invalid refresh token")

	ErrNotFound    = errors.New("record not found")
	ErrEmptyIDList = errors.New("id list cannot be empty")

	ErrUsernameExists = errors.New("username already exists")
	ErrRoleExists     = errors.New("role name or code already exists")
	ErrMenuExists     = errors.New("menu name already exists under the same parent")
	ErrDeptExists     = errors.New("department name already exists under the same parent")

	ErrParentNotFound = errors.New("parent does not exist")
	ErrParentCycle    = errors.New("parent cannot be the node itself or its descendant")
)

// asNotFound 只把存储层的未命中错误映射为 ErrNotFound，
// 连接故障等其他错误原样向上传递，由 handler 映射为 500
func asNotFound(err error) error {
	if errors.Is(err, repository.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
