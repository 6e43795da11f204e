package router

import (
	stdcontext "context"
	"reflect"
	"runtime"
	"strings"

	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/context"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
)

// AutoRouterRegister 按处理函数名推断 HTTP 方法和路径的注册器。
// GetUserList -> GET /user/list，CreateRole -> POST /role。
type AutoRouterRegister struct {
	PathFormatStrategy PathFormatStrategy
	routers            []*Router
}

func NewAutoRouterRegister() *AutoRouterRegister {
	return &AutoRouterRegister{PathFormatStrategy: SlashCase}
}

// RegisterRouters 注册显式定义的路由
func (r *AutoRouterRegister) RegisterRouters(group *RouterGroup, routers ...*Router) {
	for _, router := range routers {
		r.register(group, router)
	}
}

// RegisterRouterByFunc 按函数名推断并注册路由
func (r *AutoRouterRegister) RegisterRouterByFunc(group *RouterGroup, handlerFuncList ...any) {
	for _, h := range handlerFuncList {
		r.register(group, r.inferRouter(h))
	}
}

// RegisterStruct 扫描实例的处理方法并逐个注册。
// 处理方法的第一个参数必须是 *context.Context。
func (r *AutoRouterRegister) RegisterStruct(group *RouterGroup, instanceList ...any) {
	for _, instance := range instanceList {
		r.registerStruct(group, instance)
	}
}

func (r *AutoRouterRegister) registerStruct(group *RouterGroup, instance any) {
	v := reflect.ValueOf(instance)
	t := reflect.TypeOf(instance)
	if v.Kind() != reflect.Ptr {
		if !v.CanAddr() {
			logger.Warnf(stdcontext.Background(), "instance not addressable, cannot register handlers: %v", t)
			return
		}
		v = v.Addr()
		t = v.Type()
	}

	logger.Debugf(stdcontext.Background(), "registering handlers of %s: %d methods", t.Elem().Name(), v.NumMethod())
	for i := 0; i < v.NumMethod(); i++ {
		method := t.Method(i)
		if method.Type.NumIn() < 2 || method.Type.In(1) != reflect.TypeOf(&context.Context{}) {
			continue
		}
		methodValue := v.MethodByName(method.Name)
		if !methodValue.IsValid() {
			logger.Warnf(stdcontext.Background(), "cannot resolve method value: %s", method.Name)
			continue
		}
		router := r.inferRouter(methodValue.Interface(), method.Name)
		if router.IsValid() {
			r.register(group, router)
		}
	}
}

// GetRouters 返回已注册的路由
func (r *AutoRouterRegister) GetRouters() []*Router {
	return r.routers
}

func (r *AutoRouterRegister) register(group *RouterGroup, router *Router) {
	if !router.IsValid() {
		panic("invalid router: " + router.path)
	}
	if group == nil {
		panic("group is nil")
	}

	switch router.method {
	case GET:
		group.GET(router.path, router.handlerFunc)
	case POST:
		group.POST(router.path, router.handlerFunc)
	case PUT:
		group.PUT(router.path, router.handlerFunc)
	case DELETE:
		group.DELETE(router.path, router.handlerFunc)
	default:
		panic("unsupported router method")
	}
	r.routers = append(r.routers, router)
}

func (r *AutoRouterRegister) inferRouter(handlerFunc any, methodName ...string) *Router {
	var funcName string
	if len(methodName) > 0 {
		funcName = methodName[0]
	} else {
		funcName = extractFunctionName(runtime.FuncForPC(reflect.ValueOf(handlerFunc).Pointer()).Name())
	}

	method, pathBase := r.inferMethodAndPathBase(funcName)
	return &Router{
		path:        r.formatPath(pathBase),
		method:      method,
		handlerFunc: handlerFunc,
	}
}

// extractFunctionName 去掉包前缀和方法值的 -fm 后缀
func extractFunctionName(fullName string) string {
	funcName := fullName
	if lastDot := strings.LastIndex(fullName, "."); lastDot > 0 {
		funcName = fullName[lastDot+1:]
	}
	funcName = strings.TrimSuffix(funcName, "-fm")
	return strings.TrimSuffix(funcName, "-m")
}

// inferMethodAndPathBase 由函数名前缀决定 HTTP 方法，剩余部分是路径基底
func (r *AutoRouterRegister) inferMethodAndPathBase(funcName string) (RouterMethod, string) {
	prefixes := []struct {
		prefix string
		method RouterMethod
	}{
		{"Get", GET},
		{"Post", POST},
		{"Create", POST},
		{"Put", PUT},
		{"Update", PUT},
		{"Delete", DELETE},
	}
	for _, p := range prefixes {
		if strings.HasPrefix(funcName, p.prefix) {
			return p.method, strings.TrimPrefix(funcName, p.prefix)
		}
	}
	return POST, funcName
}

// formatPath List 后缀固定映射为 /xxx/list
func (r *AutoRouterRegister) formatPath(name string) string {
	if strings.HasSuffix(name, "List") {
		return r.applyFormatStrategy(strings.TrimSuffix(name, "List")) + "/list"
	}
	return r.applyFormatStrategy(name)
}

func (r *AutoRouterRegister) applyFormatStrategy(name string) string {
	if r.PathFormatStrategy == SlashCase {
		return "/" + toSlashCase(name)
	}
	return "/" + toSnakeCase(name)
}
