package router

import (
	"context"
	"reflect"

	mycontext "github.com/LinYanZhi/lyz-vue-vben-admin/pkg/context"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/samber/lo"
)

// RouterGroup 对 hertz 路由组的包装，处理函数通过反射适配
type RouterGroup struct {
	group       *route.RouterGroup
	routers     []*Router
	middlewares []any
}

func NewRouterGroup(group *route.RouterGroup) *RouterGroup {
	return &RouterGroup{
		group:       group,
		routers:     make([]*Router, 0),
		middlewares: make([]any, 0),
	}
}

// Group 创建子路由组，继承当前组的中间件
func (rg *RouterGroup) Group(path string) *RouterGroup {
	return &RouterGroup{
		group:       rg.group.Group(path),
		middlewares: append([]any{}, rg.middlewares...),
	}
}

// Use 追加中间件
func (rg *RouterGroup) Use(middleware ...any) {
	rg.middlewares = append(rg.middlewares, middleware...)
}

// Handle 注册任意 HTTP 方法的路由
func (rg *RouterGroup) Handle(method, path string, handler any) {
	rg.routers = append(rg.routers, NewRouter(method, path, handler))
	if rg.group == nil {
		logger.Warn(context.Background(), "router group not bound to hertz, skip: "+method+" "+path)
		return
	}
	logger.Debugf(context.Background(), "register route: %s %s%s", method, rg.group.BasePath(), path)
	handlers := append(rg.middlewares, handler)
	rg.group.Handle(method, path, adapt(handlers...))
}

func (rg *RouterGroup) GetRouter() []*Router {
	return rg.routers
}

func (rg *RouterGroup) FindRouter(method, path string) (*Router, bool) {
	matched := lo.Filter(rg.routers, func(r *Router, _ int) bool {
		return r.GetMethod().Value() == method && r.GetPath() == path
	})
	if len(matched) != 1 {
		return nil, false
	}
	return matched[0], true
}

func (rg *RouterGroup) GET(path string, handler any) {
	rg.Handle("GET", path, handler)
}

func (rg *RouterGroup) POST(path string, handler any) {
	rg.Handle("POST", path, handler)
}

func (rg *RouterGroup) PUT(path string, handler any) {
	rg.Handle("PUT", path, handler)
}

func (rg *RouterGroup) DELETE(path string, handler any) {
	rg.Handle("DELETE", path, handler)
}

// adapt 把中间件链和业务处理函数适配为 hertz 处理函数。
// 业务处理函数支持一参（仅上下文）和两参（上下文+请求参数）两种签名，
// 两参时自动绑定并校验请求参数，返回的 *Response 直接写出。
func adapt(handlers ...any) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		myCtx := mycontext.NewContext(ctx, c)

		for _, handler := range handlers {
			if middlewareFunc, ok := handler.(app.HandlerFunc); ok {
				middlewareFunc(ctx, c)
				if myCtx.IsAborted() {
					return
				}
				continue
			}

			handlerType := reflect.TypeOf(handler)
			handlerValue := reflect.ValueOf(handler)

			switch handlerType.NumIn() {
			case 1:
				results := handlerValue.Call([]reflect.Value{reflect.ValueOf(myCtx)})
				if !writeResults(myCtx, results) {
					return
				}
			case 2:
				param := reflect.New(handlerType.In(1).Elem()).Interface()
				if err := c.BindAndValidate(param); err != nil {
					mycontext.BadRequest(err.Error()).Write(myCtx)
					return
				}
				results := handlerValue.Call([]reflect.Value{reflect.ValueOf(myCtx), reflect.ValueOf(param)})
				if !writeResults(myCtx, results) {
					return
				}
			default:
				myCtx.String(consts.StatusInternalServerError, "Invalid handler function")
				return
			}
		}
	}
}

// writeResults 写出处理函数的返回值，返回 false 表示链路终止
func writeResults(c *mycontext.Context, results []reflect.Value) bool {
	if len(results) == 0 || results[0].IsNil() {
		return true
	}
	if response, ok := results[0].Interface().(*mycontext.Response); ok {
		response.Write(c)
		return false
	}
	if err, ok := results[0].Interface().(error); ok {
		c.String(consts.StatusInternalServerError, err.Error())
		return false
	}
	return true
}
