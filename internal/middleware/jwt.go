package middleware

import (
	"context"
	"strings"

	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/service"
	mycontext "github.com/LinYanZhi/lyz-vue-vben-admin/pkg/context"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/jwtauth"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.uber.org/zap"
)

// JWTMiddleware JWT认证中间件。
// 解析访问令牌后按用户名重新查库，令牌签发后用户被禁用或删除时立即失效。
func JWTMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		tokenString := string(c.Request.Header.Get("Authorization"))
		if tokenString == "" {
			abortUnauthorized(c, "Not authenticated")
			return
		}

		if len(tokenString) > 7 && strings.EqualFold(tokenString[:7], "Bearer ") {
			tokenString = tokenString[7:]
		}

		claims, err := jwtauth.Instance.ParseAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "Could not validate credentials")
			return
		}

		user, err := service.AuthServiceInstance.FindActiveUser(ctx, claims.Subject)
		if err != nil {
			logger.Warn(ctx, "Token subject rejected",
				zap.String("username", claims.Subject), zap.Error(err))
			abortUnauthorized(c, "Could not validate credentials")
			return
		}

		c.Set(jwtauth.ClaimsKey, claims)
		c.Set(jwtauth.UserKey, user)
		c.Next(ctx)
	}
}

func abortUnauthorized(c *app.RequestContext, message string) {
	rsp := mycontext.Unauthorized(message)
	c.JSON(consts.StatusUnauthorized, rsp)
	c.Abort()
}
