package service

import (
	"context"

	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/models"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/vo"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/jwtauth"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/repository"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DefaultHomePath 登录后跳转的默认首页
const DefaultHomePath = "/analytics"

// AuthService 认证服务 - 负责用户认证和令牌管理
type AuthService struct {
	userRepo     repository.Repository[models.User]
	roleRepo     repository.Repository[models.Role]
	userRoleRepo repository.Repository[models.UserRole]
	menuRepo     repository.Repository[models.Menu]
}

// NewAuthService 创建认证服务实例
func NewAuthService(
	userRepo repository.Repository[models.User],
	roleRepo repository.Repository[models.Role],
	userRoleRepo repository.Repository[models.UserRole],
	menuRepo repository.Repository[models.Menu],
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		userRoleRepo: userRoleRepo,
		menuRepo:     menuRepo,
	}
}

// Login 用户登录。用户不存在和密码错误返回同一个错误，
// 成功时返回登录信息和单独下发的刷新令牌（仅进 cookie）。
func (s *AuthService) Login(ctx context.Context, username, password string) (*vo.LoginResult, string, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		// 存储故障不能伪装成凭证错误，否则对外是 401 而不是 500
		if !errors.Is(err, repository.ErrRecordNotFound) {
			return nil, "", errors.Wrap(err, "failed to query user")
		}
		logger.Warn(ctx, "Login failed: user not found", zap.String("username", username))
		return nil, "", ErrInvalidCredentials
	}

	if !user.Verify(password) {
		logger.Warn(ctx, "Login failed: invalid password", zap.String("username", username))
		return nil, "", ErrInvalidCredentials
	}

	if !user.Status {
		logger.Warn(ctx, "Login failed: user disabled", zap.String("username", username))
		return nil, "", ErrUserDisabled
	}

	tokenPair, err := jwtauth.Instance.GenerateTokenPair(user.Username)
	if err != nil {
		logger.Error(ctx, "Failed to generate tokens", zap.Error(err), zap.String("username", username))
		return nil, "", errors.Wrap(err, "failed to generate tokens")
	}

	logger.Info(ctx, "Login successful", zap.String("username", user.Username))
	return &vo.LoginResult{
		ID:          user.ID,
		Username:    user.Username,
		Nickname:    user.Nickname,
		Email:       user.Email,
		Phone:       user.Phone,
		Avatar:      user.Avatar,
		AccessToken: tokenPair.AccessToken,
		IsSuperuser: user.IsSuperuser,
		HomePath:    DefaultHomePath,
	}, tokenPair.RefreshToken, nil
}

// RefreshToken 用刷新令牌换取新的访问令牌，刷新令牌本身不轮换
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*vo.RefreshTokenResult, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	claims, err := jwtauth.Instance.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.findByUsername(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, repository.ErrRecordNotFound) {
			return nil, errors.Wrap(err, "failed to query user")
		}
		return nil, ErrInvalidRefreshToken
	}
	if !user.Status {
		return nil, ErrInvalidRefreshToken
	}

	accessToken, err := jwtauth.Instance.GenerateAccessToken(user.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &vo.RefreshTokenResult{AccessToken: accessToken}, nil
}

// GetUserInfo 组装当前登录用户的信息（含角色名）
func (s *AuthService) GetUserInfo(ctx context.Context, user *models.User) (*vo.UserInfo, error) {
	roles, err := s.retrieveRoleCodes(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &vo.UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		Nickname:    user.Nickname,
		Email:       user.Email,
		Phone:       user.Phone,
		Avatar:      user.Avatar,
		IsSuperuser: user.IsSuperuser,
		Roles:       roles,
		HomePath:    DefaultHomePath,
	}, nil
}

// GetAccessCodes 返回用户的权限码。
// 权限码来源于启用菜单的 permission 字段：超级管理员获得每个权限标识
// 的全部操作变体，普通用户只获得菜单本身携带的只读权限码。
func (s *AuthService) GetAccessCodes(ctx context.Context, user *models.User) ([]string, error) {
	menus, err := s.menuRepo.QueryBuilder().
		Eq("status", true).
		OrderBy("sort").
		Find(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to retrieve menus")
	}

	basePerms := lo.Uniq(lo.FilterMap(menus, func(m models.Menu, _ int) (string, bool) {
		return m.Permission, m.Permission != ""
	}))

	if !user.IsSuperuser {
		return basePerms, nil
	}

	codes := make([]string, 0, len(basePerms)*4)
	for _, perm := range basePerms {
		codes = append(codes, expandPermission(perm)...)
	}
	return codes, nil
}

// expandPermission 将 "sys:user:list" 样式的权限标识展开为四个操作变体
func expandPermission(perm string) []string {
	const suffix = ":list"
	if len(perm) <= len(suffix) || perm[len(perm)-len(suffix):] != suffix {
		return []string{perm}
	}
	base := perm[:len(perm)-len(suffix)]
	return []string{
		base + ":list",
		base + ":add",
		base + ":edit",
		base + ":delete",
	}
}

// FindActiveUser 按用户名查询启用状态的用户，供会话解析中间件使用
func (s *AuthService) FindActiveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, asNotFound(err)
	}
	if !user.Status {
		return nil, ErrUserDisabled
	}
	return user, nil
}

func (s *AuthService) findByUsername(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, repository.ErrRecordNotFound
	}
	return s.userRepo.Find(ctx, &models.User{Username: username})
}

func (s *AuthService) retrieveRoleCodes(ctx context.Context, userID uint64) ([]string, error) {
	userRoles, err := s.userRoleRepo.FindAll(ctx, &models.UserRole{UserID: userID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to retrieve user roles")
	}
	if len(userRoles) == 0 {
		return []string{}, nil
	}

	roleIDs := lo.Map(userRoles, func(ur models.UserRole, _ int) uint64 { return ur.RoleID })
	roles, err := s.roleRepo.QueryBuilder().In("id", roleIDs).Find(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to retrieve roles")
	}

	return lo.Map(roles, func(r models.Role, _ int) string { return r.Code }), nil
}
