package context

import (
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/stretchr/testify/assert"
)

func newTestContext() *Context {
	h := app.NewContext(0)
	h.Request.Header.SetMethod("GET")
	h.Request.SetRequestURI("/test")
	return &Context{RequestContext: h}
}

func TestContext_Headers(t *testing.T) {
	c := newTestContext()

	c.SetHeader("X-Request-Id", "abc-123")
	assert.Equal(t, "abc-123", c.GetResponseHeader("X-Request-Id"))

	c.Request.Header.Set("Authorization", "Bearer token")
	assert.Equal(t, "Bearer token", c.GetHeader("Authorization"))
	assert.Empty(t, c.GetHeader("Missing-Header"))
}

func TestContext_SetCookie(t *testing.T) {
	c := newTestContext()
	c.SetCookie("session", "sess-value", 3600, "/", "example.com", true, true)

	cookie := c.Response.Header.Get("Set-Cookie")
	assert.Contains(t, cookie, "session=sess-value")
	assert.Contains(t, cookie, "max-age=3600")
	assert.Contains(t, cookie, "domain=example.com")
	assert.Contains(t, cookie, "path=/")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "secure")
}

func TestContext_SetLaxCookie(t *testing.T) {
	c := newTestContext()
	c.SetLaxCookie("refresh_token", "rt-value", 7*24*3600)

	cookie := c.Response.Header.Get("Set-Cookie")
	assert.Contains(t, cookie, "refresh_token=rt-value")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "SameSite=Lax")
}

func TestContext_RemoveCookie(t *testing.T) {
	c := newTestContext()
	c.RemoveCookie("refresh_token")

	cookie := c.Response.Header.Get("Set-Cookie")
	assert.Contains(t, cookie, "refresh_token=")
	assert.Contains(t, cookie, "max-age=")
}

func TestContext_Cookie(t *testing.T) {
	c := newTestContext()
	c.Request.Header.Set("Cookie", "refresh_token=rt-value")
	assert.Equal(t, "rt-value", c.Cookie("refresh_token"))
	assert.Empty(t, c.Cookie("missing"))
}

func TestContext_UserValues(t *testing.T) {
	c := newTestContext()

	_, exists := c.GetUserValue("claims")
	assert.False(t, exists)

	c.SetUserValue("claims", "claims-value")
	value, exists := c.GetUserValue("claims")
	assert.True(t, exists)
	assert.Equal(t, "claims-value", value)
}

func TestContext_IsWebsocket(t *testing.T) {
	c := newTestContext()
	c.Request.Header.Set("Connection", "Upgrade")
	c.Request.Header.Set("Upgrade", "websocket")
	assert.True(t, c.IsWebsocket())

	c.Request.Header.Del("Upgrade")
	assert.False(t, c.IsWebsocket())
}
