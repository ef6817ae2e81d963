package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studymate/studymate-api/internal/middleware"
	"github.com/studymate/studymate-api/internal/models"
)

func newAuthRouter(svc *stubAuthService) *gin.Engine {
	h := NewAuthHandler(svc)
	router := gin.New()
	router.POST("/jwt", h.IssueToken)
	router.GET("/logout", h.Logout)
	return router
}

func TestAuthHandler_IssueToken_SetsCookie(t *testing.T) {
	svc := &stubAuthService{
		issueToken: func(req *models.IssueTokenRequest) (string, error) {
			assert.Equal(t, "student@example.com", req.Email)
			return "signed-token", nil
		},
		ttlSeconds: 3600,
		secure:     true,
	}
	router := newAuthRouter(svc)

	w := httptest.NewRecorder()
	body := `{"email":"student@example.com","name":"Test","role":"student"}`
	req := httptest.NewRequest("POST", "/jwt", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, middleware.SessionCookieName, cookie.Name)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
	assert.Equal(t, 3600, cookie.MaxAge)
}

func TestAuthHandler_IssueToken_RequiresEmail(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/jwt", strings.NewReader(`{"name":"No Email"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Validation failed")
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
