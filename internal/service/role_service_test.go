package service

import (
	"context"
	"testing"

	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/models"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/params"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/repository"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roleFixture struct {
	svc          *RoleService
	roleRepo     repository.Repository[models.Role]
	userRoleRepo repository.Repository[models.UserRole]
}

func newRoleFixture(t *testing.T) *roleFixture {
	t.Helper()
	proc := newMemoryProcessor()
	f := &roleFixture{
		roleRepo:     repository.NewRepository[models.Role](proc),
		userRoleRepo: repository.NewRepository[models.UserRole](proc),
	}
	f.svc = NewRoleService(f.roleRepo, f.userRoleRepo)
	return f
}

func TestRoleService_CreateRole(t *testing.T) {
	f := newRoleFixture(t)
	ctx := context.Background()

	role, err := f.svc.CreateRole(ctx, &params.CreateRoleRequest{
		Name: "管理员", Code: "admin", Remark: "系统管理员",
	})
	require.NoError(t, err)
	assert.NotZero(t, role.ID)
	assert.True(t, role.Status)

	disabled := false
	frozen, err := f.svc.CreateRole(ctx, &params.CreateRoleRequest{
		Name: "停用角色", Code: "frozen", Status: &disabled,
	})
	require.NoError(t, err)
	assert.False(t, frozen.Status)
}

func TestRoleService_CreateRole_Duplicate(t *testing.T) {
	f := newRoleFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateRole(ctx, &params.CreateRoleRequest{Name: "管理员", Code: "admin"})
	require.NoError(t, err)

	_, err = f.svc.CreateRole(ctx, &params.CreateRoleRequest{Name: "管理员", Code: "admin2"})
	assert.ErrorIs(t, err, ErrRoleExists)

	_, err = f.svc.CreateRole(ctx, &params.CreateRoleRequest{Name: "管理员2", Code: "admin"})
	assert.ErrorIs(t, err, ErrRoleExists)
}

func TestRoleService_UpdateRole(t *testing.T) {
	f := newRoleFixture(t)
	ctx := context.Background()

	admin, err := f.svc.CreateRole(ctx, &params.CreateRoleRequest{Name: "管理员", Code: "admin"})
	require.NoError(t, err)
	_, err = f.svc.CreateRole(ctx, &params.CreateRoleRequest{Name: "运维", Code: "ops"})
	require.NoError(t, err)

	// 改回自己当前的名字不算冲突
	sameName := "管理员"
	newRemark := "超级管理员"
	updated, err := f.svc.UpdateRole(ctx, &params.UpdateRoleRequest{
		ID: admin.ID, Name: &sameName, Remark: &newRemark,
	})
	require.NoError(t, err)
	assert.Equal(t, "超级管理员", updated.Remark)

	// 改成其他角色占用的名字则冲突
	takenName := "运维"
	_, err = f.svc.UpdateRole(ctx, &params.UpdateRoleRequest{ID: admin.ID, Name: &takenName})
	assert.ErrorIs(t, err, ErrRoleExists)

	takenCode := "ops"
	_, err = f.svc.UpdateRole(ctx, &params.UpdateRoleRequest{ID: admin.ID, Code: &takenCode})
	assert.ErrorIs(t, err, ErrRoleExists)

	_, err = f.svc.UpdateRole(ctx, &params.UpdateRoleRequest{ID: 999})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoleService_DeleteRoles_CleansUserLinks(t *testing.T) {
	f := newRoleFixture(t)
	ctx := context.Background()

	admin, err := f.svc.CreateRole(ctx, &params.CreateRoleRequest{Name: "管理员", Code: "admin"})
	require.NoError(t, err)
	ops, err := f.svc.CreateRole(ctx, &params.CreateRoleRequest{Name: "运维", Code: "ops"})
	require.NoError(t, err)

	require.NoError(t, f.userRoleRepo.Create(ctx, &models.UserRole{UserID: 1, RoleID: admin.ID}))
	require.NoError(t, f.userRoleRepo.Create(ctx, &models.UserRole{UserID: 1, RoleID: ops.ID}))

	require.NoError(t, f.svc.DeleteRoles(ctx, []uint64{admin.ID, 999}))

	_, err = f.roleRepo.FindByID(ctx, admin.ID)
	assert.Error(t, err)
	_, err = f.roleRepo.FindByID(ctx, ops.ID)
	assert.NoError(t, err)

	links, err := f.userRoleRepo.FindAll(ctx, &models.UserRole{UserID: 1})
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, ops.ID, links[0].RoleID)

	assert.ErrorIs(t, f.svc.DeleteRoles(ctx, nil), ErrEmptyIDList)
}

func TestRoleService_UpdateRoleStatus(t *testing.T) {
	f := newRoleFixture(t)
	ctx := context.Background()

	role, err := f.svc.CreateRole(ctx, &params.CreateRoleRequest{Name: "管理员", Code: "admin"})
	require.NoError(t, err)
	require.True(t, role.Status)

	// 不存在的ID一并传入也不报错
	require.NoError(t, f.svc.UpdateRoleStatus(ctx, []uint64{role.ID, 999}, false))

	reloaded, err := f.roleRepo.FindByID(ctx, role.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Status)

	assert.ErrorIs(t, f.svc.UpdateRoleStatus(ctx, nil, false), ErrEmptyIDList)
}

func TestRoleService_GetRoleList(t *testing.T) {
	f := newRoleFixture(t)
	ctx := context.Background()

	seeds := []params.CreateRoleRequest{
		{Name: "系统管理员", Code: "admin"},
		{Name: "系统运维", Code: "ops"},
		{Name: "访客", Code: "guest"},
	}
	for i := range seeds {
		_, err := f.svc.CreateRole(ctx, &seeds[i])
		require.NoError(t, err)
	}

	roles, total, err := f.svc.GetRoleList(ctx, &params.GetRoleListRequest{Name: "系统"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	got := lo.Map(roles, func(r models.Role, _ int) string { return r.Code })
	assert.Equal(t, []string{"admin", "ops"}, got)

	roles, total, err = f.svc.GetRoleList(ctx, &params.GetRoleListRequest{Code: "guest"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "访客", roles[0].Name)
}

func TestRoleService_GetAllRoles(t *testing.T) {
	f := newRoleFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateRole(ctx, &params.CreateRoleRequest{Name: "管理员", Code: "admin"})
	require.NoError(t, err)
	_, err = f.svc.CreateRole(ctx, &params.CreateRoleRequest{Name: "运维", Code: "ops"})
	require.NoError(t, err)

	roles, err := f.svc.GetAllRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "admin", roles[0].Code)
	assert.Equal(t, "ops", roles[1].Code)
}
