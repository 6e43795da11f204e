package vo

import (
	"time"
)

// User 用户视图对象，不携带密码
type User struct {
	ID          uint64    `json:"id"`
	Username    string    `json:"username"`
	Nickname    string    `json:"nickname"`
	Name        string    `json:"name"`
	Avatar      string    `json:"avatar"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	DeptID      uint64    `json:"dept_id"`
	Status      bool      `json:"status"`
	IsSuperuser bool      `json:"is_superuser"`
	RoleIDs     []uint64  `json:"role_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MenuTree 菜单树节点，叶子节点的 children 序列化为 null 而不是空数组
type MenuTree struct {
	ID         uint64      `json:"id"`
	Name       string      `json:"name"`
	Path       string      `json:"path"`
	Component  string      `json:"component"`
	Redirect   string      `json:"redirect"`
	ParentID   uint64      `json:"parent_id"`
	Type       int         `json:"type"`
	Permission string      `json:"permission"`
	Icon       string      `json:"icon"`
	Sort       int         `json:"sort"`
	Status     bool        `json:"status"`
	IsVisible  bool        `json:"isVisible"`
	Children   []*MenuTree `json:"children"`
}
