package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"courseplatform/internal/authz"
	"courseplatform/internal/infrastructure/security"

	"github.com/gin-gonic/gin"
)

// TokenValidator — проверка access токена (реализует security.TokenManager)
type TokenValidator interface {
	ValidateAccessToken(token string) (*security.Claims, error)
}

// Mode — как отказывать. API-роуты отвечают JSON-кодами, страничные
// (watch и т.п.) редиректят: на логин с сохранением исходного URL либо
// на безопасную заглавную без деталей о ресурсе.
type Mode int

const (
	ModeAPI Mode = iota
	ModePage
)

// AuthMiddleware кладет userId и role в контекст. Без валидного токена —
// 401 либо редирект на логин, в зависимости от режима.
func AuthMiddleware(tv TokenValidator, mode Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, tv)
		if !ok {
			rejectUnauthenticated(c, mode)
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// AdminOnly — после AuthMiddleware. Не-админам ресурс не раскрываем:
// generic 403 либо редирект на заглавную.
func AdminOnly(mode Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")

		switch authz.Decide(role, authz.AdminOnly, false) {
		case authz.Allow:
			c.Next()
		case authz.RedirectLogin:
			rejectUnauthenticated(c, mode)
		default:
			RejectForbidden(c, mode)
		}
	}
}

// GuestOnly — логин/регистрация. Залогиненного уводим на его домашнюю
// по роли, аноним проходит.
func GuestOnly(tv TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, tv)
		if !ok {
			c.Next()
			return
		}

		c.Redirect(http.StatusSeeOther, authz.HomeFor(claims.Role))
		c.Abort()
	}
}

// RejectForbidden — общий отказ "нельзя" без раскрытия ресурса.
// Зовут и хендлеры (например, watch без действующего доступа).
func RejectForbidden(c *gin.Context, mode Mode) {
	if mode == ModePage {
		c.Redirect(http.StatusSeeOther, "/")
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
}

func rejectUnauthenticated(c *gin.Context, mode Mode) {
	if mode == ModePage {
		// Запоминаем, куда юзер шел, чтобы вернуть после логина
		target := "/login?callbackUrl=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusSeeOther, target)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
}

func bearerClaims(c *gin.Context, tv TokenValidator) (*security.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := tv.ValidateAccessToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}
