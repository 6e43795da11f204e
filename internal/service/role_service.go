package service

import (
	"context"

	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/models"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/params"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RoleService 角色管理服务
type RoleService struct {
	roleRepo     repository.Repository[models.Role]
	userRoleRepo repository.Repository[models.UserRole]
}

// NewRoleService 创建角色服务实例
func NewRoleService(roleRepo repository.Repository[models.Role], userRoleRepo repository.Repository[models.UserRole]) *RoleService {
	return &RoleService{
		roleRepo:     roleRepo,
		userRoleRepo: userRoleRepo,
	}
}

// GetRoleList 分页查询角色列表
func (s *RoleService) GetRoleList(ctx context.Context, req *params.GetRoleListRequest) ([]models.Role, int64, error) {
	qb := s.roleRepo.QueryBuilder()
	if req.Name != "" {
		qb.Like("name", req.Name)
	}
	if req.Code != "" {
		qb.Like("code", req.Code)
	}
	if req.Status != nil {
		qb.Eq("status", *req.Status)
	}

	roles, total, err := qb.OrderBy("id").
		Limit(req.Limit()).
		Offset(req.Offset()).
		FindPage(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to retrieve roles")
	}
	return roles, total, nil
}

// GetAllRoles 查询全部角色的平铺列表，供前端下拉选择使用
func (s *RoleService) GetAllRoles(ctx context.Context) ([]models.Role, error) {
	roles, err := s.roleRepo.QueryBuilder().OrderBy("id").Find(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to retrieve roles")
	}
	return roles, nil
}

// CreateRole 创建角色，角色名与编码均不允许重复
func (s *RoleService) CreateRole(ctx context.Context, req *params.CreateRoleRequest) (*models.Role, error) {
	if err := s.checkUnique(ctx, 0, req.Name, req.Code); err != nil {
		return nil, err
	}

	role := &models.Role{
		Name:   req.Name,
		Code:   req.Code,
		Status: true,
		Remark: req.Remark,
	}
	if req.Status != nil {
		role.Status = *req.Status
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		logger.Error(ctx, "Failed to create role", zap.Error(err), zap.String("name", req.Name))
		return nil, errors.Wrap(err, "failed to create role")
	}
	return role, nil
}

// UpdateRole 更新角色，只覆盖请求中出现的字段
func (s *RoleService) UpdateRole(ctx context.Context, req *params.UpdateRoleRequest) (*models.Role, error) {
	role, err := s.roleRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, asNotFound(err)
	}

	name, code := role.Name, role.Code
	if req.Name != nil {
		name = *req.Name
	}
	if req.Code != nil {
		code = *req.Code
	}
	if name != role.Name || code != role.Code {
		if err := s.checkUnique(ctx, role.ID, name, code); err != nil {
			return nil, err
		}
	}

	role.Name = name
	role.Code = code
	if req.Status != nil {
		role.Status = *req.Status
	}
	if req.Remark != nil {
		role.Remark = *req.Remark
	}

	if err := s.roleRepo.Update(ctx, role); err != nil {
		logger.Error(ctx, "Failed to update role", zap.Error(err), zap.Uint64("role_id", req.ID))
		return nil, errors.Wrap(err, "failed to update role")
	}
	return role, nil
}

// DeleteRoles 批量删除角色并清理用户角色关联，不存在的ID直接跳过
func (s *RoleService) DeleteRoles(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return ErrEmptyIDList
	}

	_, err := s.roleRepo.Transaction(ctx, func(txCtx context.Context) (any, error) {
		if err := s.userRoleRepo.QueryBuilder().In("role_id", ids).Delete(txCtx); err != nil {
			return nil, errors.Wrap(err, "failed to delete user role links")
		}
		if err := s.roleRepo.QueryBuilder().In("id", ids).Delete(txCtx); err != nil {
			return nil, errors.Wrap(err, "failed to delete roles")
		}
		return nil, nil
	})
	if err != nil {
		logger.Error(ctx, "Failed to delete roles", zap.Error(err), zap.Uint64s("ids", ids))
		return err
	}
	return nil
}

// UpdateRoleStatus 批量启用/禁用角色，不存在的ID直接跳过
func (s *RoleService) UpdateRoleStatus(ctx context.Context, ids []uint64, status bool) error {
	if len(ids) == 0 {
		return ErrEmptyIDList
	}

	roles, err := s.roleRepo.QueryBuilder().In("id", ids).Find(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to query roles")
	}
	for i := range roles {
		roles[i].Status = status
	}
	if err := s.roleRepo.BatchUpdate(ctx, roles); err != nil {
		logger.Error(ctx, "Failed to update role status", zap.Error(err), zap.Uint64s("ids", ids))
		return errors.Wrap(err, "failed to update role status")
	}
	return nil
}

// checkUnique 校验角色名与编码唯一性，selfID 用于排除自身
func (s *RoleService) checkUnique(ctx context.Context, selfID uint64, name, code string) error {
	byName, err := s.roleRepo.FindAll(ctx, &models.Role{Name: name})
	if err != nil {
		return errors.Wrap(err, "failed to check role name")
	}
	for _, r := range byName {
		if r.ID != selfID {
			return ErrRoleExists
		}
	}

	byCode, err := s.roleRepo.FindAll(ctx, &models.Role{Code: code})
	if err != nil {
		return errors.Wrap(err, "failed to check role code")
	}
	for _, r := range byCode {
		if r.ID != selfID {
			return ErrRoleExists
		}
	}
	return nil
}
