package dao

import (
	"context"

	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/models"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// SeedData 初始化基础数据，重复执行不会产生重复记录
func SeedData(ctx context.Context) error {
	var result *multierror.Error

	rootDeptID, err := seedDepts(ctx)
	if err != nil {
		result = multierror.Append(result, err)
	}
	if err := seedRoles(ctx); err != nil {
		result = multierror.Append(result, err)
	}
	if err := seedMenus(ctx); err != nil {
		result = multierror.Append(result, err)
	}
	if err := seedSuperuser(ctx, rootDeptID); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

func seedDepts(ctx context.Context) (uint64, error) {
	rootID, err := ensureDept(ctx, &models.Dept{
		Name: "总公司", ParentID: 0, Leader: "张三", Phone: "13800138000",
		Email: "zhangsan@example.com", Sort: 1, Status: true,
	})
	if err != nil {
		return 0, err
	}

	children := []models.Dept{
		{Name: "技术部", ParentID: rootID, Leader: "李四", Phone: "13800138001", Email: "lisi@example.com", Sort: 1, Status: true},
		{Name: "市场部", ParentID: rootID, Leader: "王五", Phone: "13800138002", Email: "wangwu@example.com", Sort: 2, Status: true},
		{Name: "财务部", ParentID: rootID, Leader: "赵六", Phone: "13800138003", Email: "zhaoliu@example.com", Sort: 3, Status: true},
	}
	for i := range children {
		if _, err := ensureDept(ctx, &children[i]); err != nil {
			return 0, err
		}
	}
	return rootID, nil
}

func ensureDept(ctx context.Context, dept *models.Dept) (uint64, error) {
	existing, err := DeptRepo.FindAll(ctx, &models.Dept{Name: dept.Name})
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return existing[0].ID, nil
	}
	if err := DeptRepo.Create(ctx, dept); err != nil {
		return 0, err
	}
	return dept.ID, nil
}

func seedRoles(ctx context.Context) error {
	roles := []models.Role{
		{Name: "超级管理员", Code: "super", Status: true, Remark: "系统超级管理员"},
		{Name: "管理员", Code: "admin", Status: true, Remark: "系统管理员"},
		{Name: "普通用户", Code: "user", Status: true, Remark: "普通用户"},
	}

	for i := range roles {
		existing, err := RoleRepo.FindAll(ctx, &models.Role{Code: roles[i].Code})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			continue
		}
		if err := RoleRepo.Create(ctx, &roles[i]); err != nil {
			return err
		}
	}
	return nil
}

func seedMenus(ctx context.Context) error {
	systemID, err := ensureMenu(ctx, &models.Menu{
		Name: "系统管理", Path: "/system", Component: "Layout", Redirect: "/system/user",
		ParentID: 0, Type: models.MenuTypeDirectory, Icon: "setting", Sort: 1,
		Status: true, IsVisible: true,
	})
	if err != nil {
		return err
	}

	children := []models.Menu{
		{
			Name: "用户管理", Path: "user", Component: "system/user/index",
			ParentID: systemID, Type: models.MenuTypeMenu, Permission: "sys:user:list", Icon: "user", Sort: 1,
			Status: true, IsVisible: true,
		},
		{
			Name: "角色管理", Path: "role", Component: "system/role/index",
			ParentID: systemID, Type: models.MenuTypeMenu, Permission: "sys:role:list", Icon: "team", Sort: 2,
			Status: true, IsVisible: true,
		},
		{
			Name: "菜单管理", Path: "menu", Component: "system/menu/index",
			ParentID: systemID, Type: models.MenuTypeMenu, Permission: "sys:menu:list", Icon: "menu", Sort: 3,
			Status: true, IsVisible: true,
		},
		{
			Name: "部门管理", Path: "dept", Component: "system/dept/index",
			ParentID: systemID, Type: models.MenuTypeMenu, Permission: "sys:dept:list", Icon: "company", Sort: 4,
			Status: true, IsVisible: true,
		},
	}
	for i := range children {
		if _, err := ensureMenu(ctx, &children[i]); err != nil {
			return err
		}
	}
	return nil
}

func ensureMenu(ctx context.Context, menu *models.Menu) (uint64, error) {
	existing, err := MenuRepo.FindAll(ctx, &models.Menu{Name: menu.Name})
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return existing[0].ID, nil
	}
	if err := MenuRepo.Create(ctx, menu); err != nil {
		return 0, err
	}
	return menu.ID, nil
}

func seedSuperuser(ctx context.Context, deptID uint64) error {
	existing, err := UserRepo.FindAll(ctx, &models.User{Username: "admin"})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	superuser := &models.User{
		Username:    "admin",
		Password:    "admin123",
		Nickname:    "超级管理员",
		Name:        "超级管理员",
		Email:       "admin@example.com",
		Phone:       "13800138000",
		DeptID:      deptID,
		Status:      true,
		IsSuperuser: true,
	}
	superuser.EncryptPassword()

	if err := UserRepo.Create(ctx, superuser); err != nil {
		return err
	}

	if roles, err := RoleRepo.FindAll(ctx, &models.Role{Code: "super"}); err == nil && len(roles) > 0 {
		link := &models.UserRole{UserID: superuser.ID, RoleID: roles[0].ID}
		if err := UserRoleRepo.Create(ctx, link); err != nil {
			return err
		}
	}

	logger.Info(ctx, "超级管理员创建成功", zap.String("username", superuser.Username))
	return nil
}
