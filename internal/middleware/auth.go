package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"yaportal/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	CurrentUserKey = "user"
	SessionUserKey = "user_id"
	LoginPath      = "/auth/login/"
)

// AuthRequired sends anonymous users to the login page with a next parameter
// pointing back at the requested URL.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, LoginRedirectURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoadUser retrieves the user from the session and stores it in the context.
// A session pointing at a deleted user is treated as anonymous.
func LoadUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(SessionUserKey)

		if userID != nil {
			var user models.User
			if err := db.WithContext(c.Request.Context()).First(&user, userID).Error; err == nil {
				c.Set(CurrentUserKey, &user)
			}
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// LoginRedirectURL keeps '/' readable in the next value.
func LoginRedirectURL(next string) string {
	return LoginPath + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// SafeNext returns next if it is a local path, otherwise fallback.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}
