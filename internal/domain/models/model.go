package models

import (
	"time"
)

// 菜单类型常量
const (
	MenuTypeDirectory = 0 // 目录
	MenuTypeMenu      = 1 // 菜单
	MenuTypeButton    = 2 // 按钮
)

// Role 角色模型
type Role struct {
	ID        uint64    `xorm:"pk autoincr bigint unsigned 'id'" json:"id"`
	Name      string    `xorm:"varchar(50) notnull unique 'name'" json:"name"`
	Code      string    `xorm:"varchar(50) notnull unique 'code'" json:"code"`
	Status    bool      `xorm:"default true 'status'" json:"status"` // 状态：0禁用，1启用
	Remark    string    `xorm:"varchar(255) 'remark'" json:"remark"`
	CreatedAt time.Time `xorm:"created 'created_at'" json:"created_at"`
	UpdatedAt time.Time `xorm:"updated 'updated_at'" json:"updated_at"`
}

func (r *Role) TableName() string {
	return "sys_role"
}

// Menu 菜单模型
type Menu struct {
	ID         uint64    `xorm:"pk autoincr bigint unsigned 'id'" json:"id"`
	Name       string    `xorm:"varchar(50) notnull 'name'" json:"name"`
	Path       string    `xorm:"varchar(100) 'path'" json:"path"`
	Component  string    `xorm:"varchar(255) 'component'" json:"component"`
	Redirect   string    `xorm:"varchar(100) 'redirect'" json:"redirect"`
	ParentID   uint64    `xorm:"bigint unsigned default 0 'parent_id'" json:"parent_id"`
	Type       int       `xorm:"int notnull 'type'" json:"type"` // 菜单类型：0目录，1菜单，2按钮
	Permission string    `xorm:"varchar(100) 'permission'" json:"permission"`
	Icon       string    `xorm:"varchar(50) 'icon'" json:"icon"`
	Sort       int       `xorm:"default 0 'sort'" json:"sort"`
	Status     bool      `xorm:"default true 'status'" json:"status"` // 状态：0禁用，1启用
	IsVisible  bool      `xorm:"default true 'is_visible'" json:"isVisible"`
	CreatedAt  time.Time `xorm:"created 'created_at'" json:"created_at"`
	UpdatedAt  time.Time `xorm:"updated 'updated_at'" json:"updated_at"`
}

func (m *Menu) TableName() string {
	return "sys_menu"
}

// Dept 部门模型
type Dept struct {
	ID        uint64    `xorm:"pk autoincr bigint unsigned 'id'" json:"id"`
	Name      string    `xorm:"varchar(50) notnull 'name'" json:"name"`
	ParentID  uint64    `xorm:"bigint unsigned default 0 'parent_id'" json:"parent_id"`
	Leader    string    `xorm:"varchar(20) 'leader'" json:"leader"`
	Phone     string    `xorm:"varchar(20) 'phone'" json:"phone"`
	Email     string    `xorm:"varchar(100) 'email'" json:"email"`
	Sort      int       `xorm:"default 0 'sort'" json:"sort"`
	Status    bool      `xorm:"default true 'status'" json:"status"` // 状态：0禁用，1启用
	CreatedAt time.Time `xorm:"created 'created_at'" json:"created_at"`
	UpdatedAt time.Time `xorm:"updated 'updated_at'" json:"updated_at"`
}

func (d *Dept) TableName() string {
	return "sys_dept"
}

// UserRole 用户角色关联模型
type UserRole struct {
	ID     uint64 `xorm:"pk autoincr bigint unsigned 'id'" json:"id"`
	UserID uint64 `xorm:"bigint unsigned notnull index 'user_id'" json:"user_id"`
	RoleID uint64 `xorm:"bigint unsigned notnull index 'role_id'" json:"role_id"`
}

func (ur *UserRole) TableName() string {
	return "sys_user_role"
}
