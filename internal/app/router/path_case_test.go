package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"UserList":  "user_list",
		"User":      "user",
		"RoleAll":   "role_all",
		"user_list": "user_list",
		"":          "",
	}
	for input, want := range cases {
		assert.Equal(t, want, toSnakeCase(input), "input=%q", input)
	}
}

func TestToSlashCase(t *testing.T) {
	cases := map[string]string{
		"UserList": "user/list",
		"User":     "user",
		"RoleAll":  "role/all",
		"":         "",
	}
	for input, want := range cases {
		assert.Equal(t, want, toSlashCase(input), "input=%q", input)
	}
}

func TestInferMethodAndPath(t *testing.T) {
	r := NewAutoRouterRegister()

	cases := []struct {
		funcName string
		method   RouterMethod
		path     string
	}{
		{"GetUserList", GET, "/user/list"},
		{"GetUser", GET, "/user"},
		{"GetRoleAll", GET, "/role/all"},
		{"CreateUser", POST, "/user"},
		{"UpdateMenu", PUT, "/menu"},
		{"DeleteDept", DELETE, "/dept"},
	}
	for _, c := range cases {
		method, base := r.inferMethodAndPathBase(c.funcName)
		assert.Equal(t, c.method, method, c.funcName)
		assert.Equal(t, c.path, r.formatPath(base), c.funcName)
	}
}
