package users_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"testing"

	"yaportal/internal/models"
	"yaportal/internal/router"
	"yaportal/internal/testutil"
	"yaportal/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newEngine(t *testing.T) (*gorm.DB, http.Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conn := testutil.NewDB(t)
	return conn, router.NotesEngine(router.Options{DB: conn, SessionSecret: "test-secret", Logger: discard})
}

func TestSignup(t *testing.T) {
	conn, engine := newEngine(t)
	client := testutil.NewClient(t, engine)

	rec := client.PostForm("/auth/signup/", url.Values{
		"username":  {"новичок"},
		"password1": {"long-password"},
		"password2": {"long-password"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login/", rec.Header().Get("Location"))

	var user models.User
	require.NoError(t, conn.Where("username = ?", "новичок").First(&user).Error)
	assert.NotEqual(t, "long-password", user.Password)
	assert.True(t, users.CheckPasswordHash("long-password", user.Password))
}

func TestSignupValidation(t *testing.T) {
	conn, engine := newEngine(t)
	testutil.CreateUser(t, conn, "занят")

	tests := []struct {
		name  string
		form  url.Values
		field string
	}{
		{"mismatch", url.Values{"username": {"u1"}, "password1": {"long-password"}, "password2": {"other-password"}}, "password2"},
		{"short password", url.Values{"username": {"u2"}, "password1": {"short"}, "password2": {"short"}}, "password1"},
		{"taken username", url.Values{"username": {"занят"}, "password1": {"long-password"}, "password2": {"long-password"}}, "username"},
		{"missing username", url.Values{"password1": {"long-password"}, "password2": {"long-password"}}, "username"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewClient(t, engine).PostForm("/auth/signup/", tt.form)
			require.Equal(t, http.StatusOK, rec.Code)
			doc := testutil.Document(t, rec)
			assert.Equal(t, 1, doc.Find(`ul.errorlist[data-field="`+tt.field+`"]`).Length())
		})
	}

	var count int64
	require.NoError(t, conn.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLoginRedirectsToNext(t *testing.T) {
	conn, engine := newEngine(t)
	testutil.CreateUser(t, conn, "author")

	tests := []struct {
		name     string
		next     string
		location string
	}{
		{"local next", "/notes/", "/notes/"},
		{"no next", "", "/"},
		{"absolute url", "https://evil.example/", "/"},
		{"protocol relative", "//evil.example/", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewClient(t, engine).PostForm("/auth/login/", url.Values{
				"username": {"author"},
				"password": {testutil.Password},
				"next":     {tt.next},
			})
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
		})
	}
}

func TestLoginPageKeepsNext(t *testing.T) {
	_, engine := newEngine(t)

	rec := testutil.NewClient(t, engine).Get("/auth/login/?next=/add/")

	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.Document(t, rec)
	assert.Equal(t, "/add/", doc.Find(`#login-form input[name=next]`).AttrOr("value", ""))
}

func TestLoginWithBadCredentials(t *testing.T) {
	conn, engine := newEngine(t)
	testutil.CreateUser(t, conn, "author")
	client := testutil.NewClient(t, engine)

	rec := client.PostForm("/auth/login/", url.Values{"username": {"author"}, "password": {"wrong"}})

	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.Document(t, rec)
	assert.Equal(t, 1, doc.Find(`ul.errorlist[data-field="__all__"]`).Length())

	// Still anonymous.
	assert.Equal(t, http.StatusFound, client.Get("/notes/").Code)
}

func TestLogout(t *testing.T) {
	conn, engine := newEngine(t)
	testutil.CreateUser(t, conn, "author")
	client := testutil.NewClient(t, engine)
	client.Login("author")
	require.Equal(t, http.StatusOK, client.Get("/notes/").Code)

	rec := client.PostForm("/auth/logout/", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusFound, client.Get("/notes/").Code)
}

func TestAuthenticate(t *testing.T) {
	conn, _ := newEngine(t)
	svc := users.NewService(conn, discard)
	ctx := context.Background()

	created, err := svc.Register(ctx, "author", "long-password")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "author", "long-password")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Authenticate(ctx, "author", "nope")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "long-password")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)

	_, err = svc.Register(ctx, "author", "another-password")
	assert.ErrorIs(t, err, users.ErrUsernameTaken)
}
