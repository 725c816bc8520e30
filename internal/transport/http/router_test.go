package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"courseplatform/internal/infrastructure/security"
	"courseplatform/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// Собираем настоящий роутер: любой конфликт в дереве маршрутов gin
// (например, статичный сегмент рядом с wildcard) роняет регистрацию
// паникой еще до первого запроса.
func newTestEngine(t *testing.T) (*gin.Engine, *security.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop().Sugar()
	tm := security.NewTokenManager("access-secret", "refresh-secret")

	r := NewRouter(
		NewAuthHandler(nil, log),
		NewCourseHandler(nil, nil, log),
		NewAdminCourseHandler(nil, log),
		NewAccessHandler(nil, nil, nil, log),
		tm,
		middleware.NewRateLimiter(nil),
		"http://localhost:3000",
	)
	return r, tm
}

func TestRouterRegistersWithoutConflicts(t *testing.T) {
	r, _ := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterAdminRoutesRequireToken(t *testing.T) {
	r, _ := newTestEngine(t)

	paths := []string{
		"/api/v1/admin/access",
		"/api/v1/admin/search/users",
		"/api/v1/admin/search/courses",
		"/api/v1/admin/courses/" + uuid.NewString(),
	}
	for _, path := range paths {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRouterAdminRoutesRejectClient(t *testing.T) {
	r, tm := newTestEngine(t)

	access, _, err := tm.Generate(uuid.NewString(), "CLIENT")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/search/courses", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, `{"error":"Access denied"}`, w.Body.String())
}

func TestRouterWatchRedirectsAnonymousToLogin(t *testing.T) {
	r, _ := newTestEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/courses/"+uuid.NewString()+"/watch", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login?callbackUrl=")
}
