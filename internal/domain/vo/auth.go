package vo

// LoginResult 登录成功响应，刷新令牌只通过 cookie 下发，不出现在响应体
type LoginResult struct {
	ID          uint64 `json:"id"`
	Username    string `json:"username"`
	Nickname    string `json:"nickname"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Avatar      string `json:"avatar"`
	AccessToken string `json:"access_token"`
	IsSuperuser bool   `json:"is_superuser"`
	HomePath    string `json:"homePath"`
}

// RefreshTokenResult 刷新令牌响应
type RefreshTokenResult struct {
	AccessToken string `json:"access_token"`
}

// UserInfo 当前登录用户信息
type UserInfo struct {
	ID          uint64   `json:"id"`
	Username    string   `json:"username"`
	Nickname    string   `json:"nickname"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Avatar      string   `json:"avatar"`
	IsSuperuser bool     `json:"is_superuser"`
	Roles       []string `json:"roles"`
	HomePath    string   `json:"homePath"`
}
