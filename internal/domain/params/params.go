package params

// ---------------------- 用户管理模块 ----------------------

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Username    string   `json:"username" vd:"len($)>0&&len($)<50"`
	Password    string   `json:"password" vd:"len($)>=6&&len($)<=64"`
	Nickname    string   `json:"nickname" vd:"len($)<50"`
	Name        string   `json:"name" vd:"len($)<50"`
	Avatar      string   `json:"avatar" vd:"len($)<255"`
	Email       string   `json:"email" vd:"len($)<100"`
	Phone       string   `json:"phone" vd:"len($)<20"`
	DeptID      uint64   `json:"dept_id"`
	Status      *bool    `json:"status"`
	IsSuperuser bool     `json:"is_superuser"`
	RoleIDs     []uint64 `json:"role_ids"`
}

// UpdateUserRequest 更新用户请求，未出现的字段保持原值
type UpdateUserRequest struct {
	ID          uint64    `json:"id" vd:"$>0"`
	Password    *string   `json:"password"`
	Nickname    *string   `json:"nickname"`
	Name        *string   `json:"name"`
	Avatar      *string   `json:"avatar"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	DeptID      *uint64   `json:"dept_id"`
	Status      *bool     `json:"status"`
	IsSuperuser *bool     `json:"is_superuser"`
	RoleIDs     *[]uint64 `json:"role_ids"` // 指针区分未设置和空数组，设置时全量替换
}

// DeleteUserRequest 删除用户请求
type DeleteUserRequest struct {
	IDs []uint64 `json:"ids"`
}

// UpdateUserStatusRequest 批量启用/禁用用户请求
type UpdateUserStatusRequest struct {
	IDs    []uint64 `json:"ids"`
	Status bool     `json:"status"`
}

// GetUserRequest 获取用户请求
type GetUserRequest struct {
	ID uint64 `query:"id" vd:"$>0"`
}

// GetUserListRequest 获取用户列表请求
type GetUserListRequest struct {
	Page
	Username string `query:"username" vd:"len($)<50"`
	Nickname string `query:"nickname" vd:"len($)<50"`
	Email    string `query:"email" vd:"len($)<100"`
	Phone    string `query:"phone" vd:"len($)<20"`
	DeptID   uint64 `query:"dept_id"`
	Status   *bool  `query:"status"`
}

// ---------------------- 角色管理模块 ----------------------

// CreateRoleRequest 创建角色请求
type CreateRoleRequest struct {
	Name   string `json:"name" vd:"len($)>0&&len($)<50"`
	Code   string `json:"code" vd:"len($)>0&&len($)<50"`
	Status *bool  `json:"status"`
	Remark string `json:"remark" vd:"len($)<255"`
}

// UpdateRoleRequest 更新角色请求
type UpdateRoleRequest struct {
	ID     uint64  `json:"id" vd:"$>0"`
	Name   *string `json:"name"`
	Code   *string `json:"code"`
	Status *bool   `json:"status"`
	Remark *string `json:"remark"`
}

// DeleteRoleRequest 删除角色请求
type DeleteRoleRequest struct {
	IDs []uint64 `json:"ids"`
}

// UpdateRoleStatusRequest 批量启用/禁用角色请求
type UpdateRoleStatusRequest struct {
	IDs    []uint64 `json:"ids"`
	Status bool     `json:"status"`
}

// GetRoleListRequest 获取角色列表请求
type GetRoleListRequest struct {
	Page
	Name   string `query:"name" vd:"len($)<50"`
	Code   string `query:"code" vd:"len($)<50"`
	Status *bool  `query:"status"`
}

// ---------------------- 菜单管理模块 ----------------------

// CreateMenuRequest 创建菜单请求
type CreateMenuRequest struct {
	Name       string `json:"name" vd:"len($)>0&&len($)<50"`
	Path       string `json:"path" vd:"len($)<100"`
	Component  string `json:"component" vd:"len($)<255"`
	Redirect   string `json:"redirect" vd:"len($)<100"`
	ParentID   uint64 `json:"parent_id"`
	Type       int    `json:"type" vd:"$>=0&&$<=2"` // 0目录，1菜单，2按钮
	Permission string `json:"permission" vd:"len($)<100"`
	Icon       string `json:"icon" vd:"len($)<50"`
	Sort       int    `json:"sort"`
	Status     *bool  `json:"status"`
	IsVisible  *bool  `json:"isVisible"`
}

// UpdateMenuRequest 更新菜单请求
type UpdateMenuRequest struct {
	ID         uint64  `json:"id" vd:"$>0"`
	Name       *string `json:"name"`
	Path       *string `json:"path"`
	Component  *string `json:"component"`
	Redirect   *string `json:"redirect"`
	ParentID   *uint64 `json:"parent_id"`
	Type       *int    `json:"type"`
	Permission *string `json:"permission"`
	Icon       *string `json:"icon"`
	Sort       *int    `json:"sort"`
	Status     *bool   `json:"status"`
	IsVisible  *bool   `json:"isVisible"`
}

// DeleteMenuRequest 删除菜单请求
type DeleteMenuRequest struct {
	IDs []uint64 `json:"ids"`
}

// GetMenuListRequest 获取菜单列表请求
type GetMenuListRequest struct {
	Page
	Name     string `query:"name" vd:"len($)<50"`
	Path     string `query:"path" vd:"len($)<100"`
	Type     *int   `query:"type"`
	ParentID uint64 `query:"parent_id"`
	Status   *bool  `query:"status"`
}

// ---------------------- 部门管理模块 ----------------------

// CreateDeptRequest 创建部门请求
type CreateDeptRequest struct {
	Name     string `json:"name" vd:"len($)>0&&len($)<50"`
	ParentID uint64 `json:"parent_id"`
	Leader   string `json:"leader" vd:"len($)<20"`
	Phone    string `json:"phone" vd:"len($)<20"`
	Email    string `json:"email" vd:"len($)<100"`
	Sort     int    `json:"sort"`
	Status   *bool  `json:"status"`
}

// UpdateDeptRequest 更新部门请求
type UpdateDeptRequest struct {
	ID       uint64  `json:"id" vd:"$>0"`
	Name     *string `json:"name"`
	ParentID *uint64 `json:"parent_id"`
	Leader   *string `json:"leader"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Sort     *int    `json:"sort"`
	Status   *bool   `json:"status"`
}

// DeleteDeptRequest 删除部门请求
type DeleteDeptRequest struct {
	IDs []uint64 `json:"ids"`
}

// GetDeptListRequest 获取部门列表请求
type GetDeptListRequest struct {
	Page
	Name     string `query:"name" vd:"len($)<50"`
	Leader   string `query:"leader" vd:"len($)<20"`
	ParentID uint64 `query:"parent_id"`
	Status   *bool  `query:"status"`
}
