package service

import (
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/dao"
)

// Service 实例变量
var (
	AuthServiceInstance *AuthService
	UserServiceInstance *UserService
	RoleServiceInstance *RoleService
	MenuServiceInstance *MenuService
	DeptServiceInstance *DeptService
)

// dao层初始化完成后，调用Init函数
func Init() error {
	AuthServiceInstance = NewAuthService(dao.UserRepo, dao.RoleRepo, dao.UserRoleRepo, dao.MenuRepo)
	UserServiceInstance = NewUserService(dao.UserRepo, dao.UserRoleRepo)
	RoleServiceInstance = NewRoleService(dao.RoleRepo, dao.UserRoleRepo)
	MenuServiceInstance = NewMenuService(dao.MenuRepo)
	DeptServiceInstance = NewDeptService(dao.DeptRepo)

	return nil
}
