package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/samber/lo"
)

const DefaultAllowOrigin = "*"

// CorsMiddleware 跨域中间件，按配置的白名单回显请求来源
func CorsMiddleware(allowedOrigins ...string) app.HandlerFunc {
	allowAll := len(allowedOrigins) == 0 || lo.Contains(allowedOrigins, DefaultAllowOrigin)

	return func(ctx context.Context, c *app.RequestContext) {
		origin := string(c.Request.Header.Get("Origin"))
		switch {
		case allowAll:
			c.Response.Header.Set("Access-Control-Allow-Origin", DefaultAllowOrigin)
		case origin != "" && lo.Contains(allowedOrigins, origin):
			c.Response.Header.Set("Access-Control-Allow-Origin", origin)
			c.Response.Header.Set("Vary", "Origin")
		}

		// 允许的请求方法
		c.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		// 允许的请求头
		c.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Token, X-Requested-With, Sec-Ch-Ua")

		// 允许携带认证信息（如刷新令牌Cookie）
		c.Response.Header.Set("Access-Control-Allow-Credentials", "true")

		// 预检请求缓存时间（秒）
		c.Response.Header.Set("Access-Control-Max-Age", "86400")

		// 处理预检请求（OPTIONS）
		if string(c.Request.Method()) == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next(ctx)
	}
}
