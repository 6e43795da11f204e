package auth_handler

import (
	"errors"

	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/config"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/params"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/service"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/context"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// RefreshTokenCookie 刷新令牌的Cookie名称
const RefreshTokenCookie = "refresh_token"

type ILoginHandler interface {
	Login(c *context.Context) *context.Response
	RefreshToken(c *context.Context) *context.Response
	Logout(c *context.Context) *context.Response
	GetCodes(c *context.Context) *context.Response
}

type LoginHandler struct{}

// @route POST /auth/login
// Login 账号密码登录。访问令牌随响应体返回，
// 刷新令牌只通过 http-only Cookie 下发，不出现在响应体中。
func (h *LoginHandler) Login(c *context.Context) *context.Response {
	var req params.LoginRequest
	if err := c.BindAndValidate(&req); err != nil {
		return context.BadRequest(err.Error())
	}

	result, refreshToken, err := service.AuthServiceInstance.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserDisabled):
			return context.Forbidden(service.ErrUserDisabled.Error()).WithStatus(consts.StatusForbidden)
		case errors.Is(err, service.ErrInvalidCredentials):
			return context.Unauthorized(service.ErrInvalidCredentials.Error()).WithStatus(consts.StatusUnauthorized)
		default:
			return context.InternalError(err.Error())
		}
	}

	maxAge := config.Get().JWT.RefreshTokenExpireDay * 24 * 60 * 60
	c.SetLaxCookie(RefreshTokenCookie, refreshToken, maxAge)

	return context.Success(result)
}

// @route POST /auth/refresh
// RefreshToken 用Cookie中的刷新令牌换取新的访问令牌，刷新令牌本身不轮换
func (h *LoginHandler) RefreshToken(c *context.Context) *context.Response {
	refreshToken := c.Cookie(RefreshTokenCookie)

	result, err := service.AuthServiceInstance.RefreshToken(c.Context(), refreshToken)
	if err != nil {
		return context.Unauthorized(err.Error())
	}

	return context.Success(result)
}

// @route POST /auth/logout
// Logout 清除刷新令牌Cookie。已签发的访问令牌不作废，到期自然失效。
func (h *LoginHandler) Logout(c *context.Context) *context.Response {
	c.RemoveCookie(RefreshTokenCookie)
	return context.Success(nil)
}

// @route GET /auth/codes
func (h *LoginHandler) GetCodes(c *context.Context) *context.Response {
	user, rsp := CurrentUser(c)
	if rsp != nil {
		return rsp
	}

	codes, err := service.AuthServiceInstance.GetAccessCodes(c.Context(), user)
	if err != nil {
		return context.InternalError(err.Error())
	}
	return context.Success(codes)
}
