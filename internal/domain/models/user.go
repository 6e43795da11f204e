package models

import (
	"time"

	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/crypter"
)

// User 用户模型
type User struct {
	ID          uint64    `xorm:"pk autoincr bigint unsigned 'id'" json:"id"`
	Username    string    `xorm:"varchar(50) notnull unique 'username'" json:"username"`
	Password    string    `xorm:"varchar(255) notnull 'password'" json:"-"`
	Nickname    string    `xorm:"varchar(50) 'nickname'" json:"nickname"`
	Name        string    `xorm:"varchar(50) 'name'" json:"name"`
	Avatar      string    `xorm:"varchar(255) 'avatar'" json:"avatar"`
	Email       string    `xorm:"varchar(100) 'email'" json:"email"`
	Phone       string    `xorm:"varchar(20) 'phone'" json:"phone"`
	DeptID      uint64    `xorm:"bigint unsigned 'dept_id'" json:"dept_id"`
	Status      bool      `xorm:"default true 'status'" json:"status"` // 状态：0禁用，1启用
	IsSuperuser bool      `xorm:"default false 'is_superuser'" json:"is_superuser"`
	CreatedAt   time.Time `xorm:"created 'created_at'" json:"created_at"`
	UpdatedAt   time.Time `xorm:"updated 'updated_at'" json:"updated_at"`
}

func (u *User) TableName() string {
	return "sys_user"
}

func (u *User) Verify(password string) bool {
	return crypter.Instance.Verify(password, u.Password)
}

func (u *User) EncryptPassword() {
	u.Password = EncryptPassword(u.Password)
}

func EncryptPassword(password string) string {
	return crypter.Instance.Encrypt(password)
}
