package app

import (
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/app/router"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/handler"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/middleware"
)

func (a *App) SetupRoutes() {
	root := a.Group("/")
	root.GET("/health", handler.HealthHandler)

	// 认证相关路由，登录/刷新/登出不要求访问令牌
	auth := a.Group("/auth")
	auth.POST("/login", handler.LoginHandlerInstance.Login)
	auth.POST("/refresh", handler.LoginHandlerInstance.RefreshToken)
	auth.POST("/logout", handler.LoginHandlerInstance.Logout)

	authProtected := a.Group("/auth")
	authProtected.Use(middleware.JWTMiddleware())
	authProtected.GET("/codes", handler.LoginHandlerInstance.GetCodes)

	// 当前用户信息与前端路由菜单
	user := a.Group("/user")
	user.Use(middleware.JWTMiddleware())
	user.GET("/info", handler.ProfileHandlerInstance.GetUserInfo)

	menu := a.Group("/menu")
	menu.Use(middleware.JWTMiddleware())
	menu.GET("/all", handler.ProfileHandlerInstance.GetMenuTree)
	menu.GET("/list", handler.ProfileHandlerInstance.GetMenuList)

	// 系统管理CRUD路由，按方法名自动注册
	system := a.Group("/system")
	system.Use(middleware.JWTMiddleware())
	router.AutoRegister.RegisterStruct(system, handler.AllSystemHandlerInstance...)
}
