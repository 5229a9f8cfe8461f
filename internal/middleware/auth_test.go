package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoginRedirectURL(t *testing.T) {
	assert.Equal(t, "/auth/login/?next=/edit_comment/1/", LoginRedirectURL("/edit_comment/1/"))
	assert.Equal(t, "/auth/login/?next=/notes/%3Fpage%3D2", LoginRedirectURL("/notes/?page=2"))
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/notes/", SafeNext("/notes/", "/"))
	assert.Equal(t, "/", SafeNext("", "/"))
	assert.Equal(t, "/", SafeNext("https://evil.example", "/"))
	assert.Equal(t, "/", SafeNext("//evil.example", "/"))
}

func TestAuthRequiredRedirectsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/done/", AuthRequired(), func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/done/", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login/?next=/done/", rec.Header().Get("Location"))
}
