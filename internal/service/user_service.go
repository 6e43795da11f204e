package service

import (
	"context"

	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/models"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/params"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/vo"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/repository"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// UserService 用户管理服务
type UserService struct {
	userRepo     repository.Repository[models.User]
	userRoleRepo repository.Repository[models.UserRole]
}

// NewUserService 创建用户服务实例
func NewUserService(
	userRepo repository.Repository[models.User],
	userRoleRepo repository.Repository[models.UserRole],
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		userRoleRepo: userRoleRepo,
	}
}

// GetUserList 分页查询用户列表
func (s *UserService) GetUserList(ctx context.Context, req *params.GetUserListRequest) ([]*vo.User, int64, error) {
	qb := s.userRepo.QueryBuilder()
	if req.Username != "" {
		qb.Like("username", req.Username)
	}
	if req.Nickname != "" {
		qb.Like("nickname", req.Nickname)
	}
	if req.Email != "" {
		qb.Like("email", req.Email)
	}
	if req.Phone != "" {
		qb.Like("phone", req.Phone)
	}
	if req.DeptID > 0 {
		qb.Eq("dept_id", req.DeptID)
	}
	if req.Status != nil {
		qb.Eq("status", *req.Status)
	}

	users, total, err := qb.OrderBy("id").
		Limit(req.Limit()).
		Offset(req.Offset()).
		FindPage(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to retrieve users")
	}

	result := make([]*vo.User, 0, len(users))
	for i := range users {
		userVO, err := s.buildUserVO(ctx, &users[i])
		if err != nil {
			return nil, 0, err
		}
		result = append(result, userVO)
	}
	return result, total, nil
}

// GetUser 根据ID查询单个用户
func (s *UserService) GetUser(ctx context.Context, id uint64) (*vo.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return s.buildUserVO(ctx, user)
}

// CreateUser 创建用户，用户名重复时拒绝创建。
// 并发创建同名用户依赖数据库唯一索引兜底。
func (s *UserService) CreateUser(ctx context.Context, req *params.CreateUserRequest) (*vo.User, error) {
	existing, err := s.userRepo.FindAll(ctx, &models.User{Username: req.Username})
	if err != nil {
		return nil, errors.Wrap(err, "failed to check username")
	}
	if len(existing) > 0 {
		return nil, ErrUsernameExists
	}

	user := &models.User{
		Username:    req.Username,
		Password:    req.Password,
		Nickname:    req.Nickname,
		Name:        req.Name,
		Avatar:      req.Avatar,
		Email:       req.Email,
		Phone:       req.Phone,
		DeptID:      req.DeptID,
		Status:      true,
		IsSuperuser: req.IsSuperuser,
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	user.EncryptPassword()

	_, err = s.userRepo.Transaction(ctx, func(txCtx context.Context) (any, error) {
		if err := s.userRepo.Create(txCtx, user); err != nil {
			return nil, errors.Wrap(err, "failed to create user")
		}
		if len(req.RoleIDs) > 0 {
			if err := s.assignUserRoles(txCtx, user.ID, req.RoleIDs); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		logger.Error(ctx, "Failed to create user", zap.Error(err), zap.String("username", req.Username))
		return nil, err
	}

	return s.buildUserVO(ctx, user)
}

// UpdateUser 更新用户，只覆盖请求中出现的字段；
// role_ids 出现时全量替换用户的角色集合。
func (s *UserService) UpdateUser(ctx context.Context, req *params.UpdateUserRequest) (*vo.User, error) {
	user, err := s.userRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, asNotFound(err)
	}

	if req.Password != nil && *req.Password != "" {
		user.Password = models.EncryptPassword(*req.Password)
	}
	if req.Nickname != nil {
		user.Nickname = *req.Nickname
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.DeptID != nil {
		user.DeptID = *req.DeptID
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.IsSuperuser != nil {
		user.IsSuperuser = *req.IsSuperuser
	}

	_, err = s.userRepo.Transaction(ctx, func(txCtx context.Context) (any, error) {
		if err := s.userRepo.Update(txCtx, user); err != nil {
			return nil, errors.Wrap(err, "failed to update user")
		}
		if req.RoleIDs != nil {
			if err := s.assignUserRoles(txCtx, user.ID, *req.RoleIDs); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		logger.Error(ctx, "Failed to update user", zap.Error(err), zap.Uint64("user_id", req.ID))
		return nil, err
	}

	return s.buildUserVO(ctx, user)
}

// DeleteUsers 批量删除用户及其角色关联，不存在的ID直接跳过
func (s *UserService) DeleteUsers(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return ErrEmptyIDList
	}

	_, err := s.userRepo.Transaction(ctx, func(txCtx context.Context) (any, error) {
		if err := s.userRoleRepo.QueryBuilder().In("user_id", ids).Delete(txCtx); err != nil {
			return nil, errors.Wrap(err, "failed to delete user roles")
		}
		if err := s.userRepo.QueryBuilder().In("id", ids).Delete(txCtx); err != nil {
			return nil, errors.Wrap(err, "failed to delete users")
		}
		return nil, nil
	})
	if err != nil {
		logger.Error(ctx, "Failed to delete users", zap.Error(err), zap.Uint64s("ids", ids))
	}
	return err
}

// UpdateUserStatus 批量启用/禁用用户，不存在的ID直接跳过
func (s *UserService) UpdateUserStatus(ctx context.Context, ids []uint64, status bool) error {
	if len(ids) == 0 {
		return ErrEmptyIDList
	}

	users, err := s.userRepo.QueryBuilder().In("id", ids).Find(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to query users")
	}
	for i := range users {
		users[i].Status = status
	}
	if err := s.userRepo.BatchUpdate(ctx, users); err != nil {
		logger.Error(ctx, "Failed to update user status", zap.Error(err), zap.Uint64s("ids", ids))
		return errors.Wrap(err, "failed to update user status")
	}
	return nil
}

// assignUserRoles 为用户分配角色，只增删差异部分
func (s *UserService) assignUserRoles(ctx context.Context, userID uint64, roleIDs []uint64) error {
	userRoleList, err := s.userRoleRepo.FindAll(ctx, &models.UserRole{UserID: userID})
	if err != nil {
		return errors.Wrap(err, "failed to retrieve user roles")
	}

	existingRoleIDs := lo.Map(userRoleList, func(ur models.UserRole, _ int) uint64 {
		return ur.RoleID
	})
	toRemoveIDs := lo.Filter(existingRoleIDs, func(id uint64, _ int) bool {
		return !lo.Contains(roleIDs, id)
	})
	toAddIDs := lo.Filter(roleIDs, func(id uint64, _ int) bool {
		return !lo.Contains(existingRoleIDs, id)
	})

	if len(toRemoveIDs) > 0 {
		err := s.userRoleRepo.QueryBuilder().
			Eq("user_id", userID).
			In("role_id", toRemoveIDs).
			Delete(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to delete user roles")
		}
	}

	if len(toAddIDs) > 0 {
		userRoles := make([]models.UserRole, len(toAddIDs))
		for i, roleID := range toAddIDs {
			userRoles[i] = models.UserRole{
				UserID: userID,
				RoleID: roleID,
			}
		}
		if err := s.userRoleRepo.BatchCreate(ctx, userRoles); err != nil {
			return errors.Wrap(err, "failed to create user roles")
		}
	}

	return nil
}

func (s *UserService) buildUserVO(ctx context.Context, user *models.User) (*vo.User, error) {
	var result vo.User
	if err := copier.Copy(&result, user); err != nil {
		return nil, errors.Wrap(err, "failed to copy user to vo")
	}

	userRoles, err := s.userRoleRepo.FindAll(ctx, &models.UserRole{UserID: user.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to retrieve user roles")
	}
	result.RoleIDs = lo.Map(userRoles, func(ur models.UserRole, _ int) uint64 { return ur.RoleID })

	return &result, nil
}
