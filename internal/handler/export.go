package handler

import (
	"fmt"
	"reflect"

	auth_handler "github.com/LinYanZhi/lyz-vue-vben-admin/internal/handler/auth"
	system_handler "github.com/LinYanZhi/lyz-vue-vben-admin/internal/handler/system"
)

var (
	// AllSystemHandlerInstance /system 分组下按方法名自动注册路由的处理器
	AllSystemHandlerInstance []any

	LoginHandlerInstance   auth_handler.ILoginHandler
	ProfileHandlerInstance auth_handler.IProfileHandler
	UserHandlerInstance    system_handler.IUserHandler
	RoleHandlerInstance    system_handler.IRoleHandler
	MenuHandlerInstance    system_handler.IMenuHandler
	DeptHandlerInstance    system_handler.IDeptHandler
	SystemHandlerInstance  system_handler.ISystemHandler
)

func init() {
	LoginHandlerInstance = &auth_handler.LoginHandler{}
	ProfileHandlerInstance = &auth_handler.ProfileHandler{}

	// 下列实例通过方法名推断自动注册路由
	createAndRegister(&UserHandlerInstance, &system_handler.UserHandler{})
	createAndRegister(&RoleHandlerInstance, &system_handler.RoleHandler{})
	createAndRegister(&MenuHandlerInstance, &system_handler.MenuHandler{})
	createAndRegister(&DeptHandlerInstance, &system_handler.DeptHandler{})
	createAndRegister(&SystemHandlerInstance, &system_handler.SystemHandler{})
}

func createAndRegister(addressPtr any, handler any) {
	// 获取addressPtr的反射值
	addressValue := reflect.ValueOf(addressPtr)

	// 确保addressPtr是指针
	if addressValue.Kind() != reflect.Ptr {
		panic("addressPtr must be a pointer")
	}

	// 获取指针指向的值
	addressElem := addressValue.Elem()

	// 确保可以设置值
	if !addressElem.CanSet() {
		panic("addressPtr value cannot be set")
	}

	// 验证handler类型是否可以赋值给addressElem
	handlerType := reflect.TypeOf(handler)
	if !handlerType.Implements(addressElem.Type()) {
		panic(fmt.Sprintf("handler type %v does not implement interface %v", handlerType, addressElem.Type()))
	}

	// 设置值
	addressElem.Set(reflect.ValueOf(handler))

	// 添加到AllSystemHandlerInstance
	AllSystemHandlerInstance = append(AllSystemHandlerInstance, handler)
}
