package handler

import (
	"net/http"
	"time"

	"github.com/ErlanBelekov/task-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

// CookieConfig controls the auth cookies. MaxAge values mirror the token
// lifetimes so a cookie never outlives the token it carries.
type CookieConfig struct {
	Secure        bool
	AccessMaxAge  time.Duration
	RefreshMaxAge time.Duration
}

func (cc CookieConfig) setTokens(c *gin.Context, access, refresh string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookie, access, int(cc.AccessMaxAge.Seconds()), "/", "", cc.Secure, true)
	c.SetCookie(middleware.RefreshCookie, refresh, int(cc.RefreshMaxAge.Seconds()), "/", "", cc.Secure, true)
}

func (cc CookieConfig) clearTokens(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookie, "", -1, "/", "", cc.Secure, true)
	c.SetCookie(middleware.RefreshCookie, "", -1, "/", "", cc.Secure, true)
}
