package router

// AutoRegister 全局路由注册器
var AutoRegister IRouterRegister = NewAutoRouterRegister()

// IRouterRegister 路由注册接口
type IRouterRegister interface {
	RegisterRouters(group *RouterGroup, routers ...*Router)
	RegisterRouterByFunc(group *RouterGroup, handlerFuncList ...any)
	RegisterStruct(group *RouterGroup, instanceList ...any)
}

// PathFormatStrategy 路径格式策略
type PathFormatStrategy int

const (
	// SnakeCase 驼峰转下划线：UserList -> /user_list
	SnakeCase PathFormatStrategy = iota
	// SlashCase 驼峰转斜杠：UserList -> /user/list
	SlashCase
)

// RouterMethod HTTP 方法
type RouterMethod string

const (
	GET    RouterMethod = "GET"
	POST   RouterMethod = "POST"
	PUT    RouterMethod = "PUT"
	DELETE RouterMethod = "DELETE"
)

func (r RouterMethod) Value() string {
	return string(r)
}

// Router 一条路由定义
type Router struct {
	path        string
	method      RouterMethod
	handlerFunc any
}

func NewRouter(method string, path string, handlerFunc any) *Router {
	return &Router{
		path:        path,
		method:      RouterMethod(method),
		handlerFunc: handlerFunc,
	}
}

func (r *Router) GetPath() string {
	return r.path
}

func (r *Router) GetMethod() RouterMethod {
	return r.method
}

func (r *Router) GetHandlerFunc() any {
	return r.handlerFunc
}

func (r *Router) IsValid() bool {
	return r.path != "" && r.method != "" && r.handlerFunc != nil
}
