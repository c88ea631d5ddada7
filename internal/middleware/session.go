package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxSessionIDKey = "cart_session_id" // string

	sessionCookieName = "cart_session"
	sessionTTL        = 30 * 24 * time.Hour
)

// 匿名訪問者にもセッションIDを払い出してcontextへ入れる。
// Cookieが既にあればそれを使う。
func CartSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := ""
			if ck, err := c.Cookie(sessionCookieName); err == nil {
				sessionID = ck.Value
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     sessionCookieName,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Expires:  time.Now().Add(sessionTTL),
				})
			}

			c.Set(CtxSessionIDKey, sessionID)
			return next(c)
		}
	}
}
