package app

import (
	"github.com/cloudwego/hertz/pkg/app"
)

// MiddlewareFunc 与 hertz 的 HandlerFunc 同构
type MiddlewareFunc = app.HandlerFunc

// Use 注册全局中间件，按注册顺序执行
func (a *App) Use(middlewares ...MiddlewareFunc) {
	for _, m := range middlewares {
		a.server.Use(m)
	}
}
