// Package testutil provides an in-memory database and an HTTP client with a
// cookie jar for handler tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"yaportal/internal/db"
	"yaportal/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plain-text password of every user made by CreateUser.
const Password = "password123"

// NewDB opens a migrated sqlite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	// :memory: databases are per connection.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return conn
}

func CreateUser(t *testing.T, conn *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Username: username, Password: string(hash)}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func CreateNews(t *testing.T, conn *gorm.DB, title string) *models.News {
	t.Helper()
	news := &models.News{Title: title, Text: "Текст новости"}
	require.NoError(t, conn.Create(news).Error)
	return news
}

// Client sends requests straight to a handler and keeps session cookies
// between them.
type Client struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func NewClient(t *testing.T, handler http.Handler) *Client {
	return &Client{t: t, handler: handler, cookies: map[string]*http.Cookie{}}
}

func (c *Client) Get(path string) *httptest.ResponseRecorder {
	return c.Do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *Client) Delete(path string) *httptest.ResponseRecorder {
	return c.Do(httptest.NewRequest(http.MethodDelete, path, nil))
}

func (c *Client) PostForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.Do(req)
}

func (c *Client) Do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 || ck.Value == "" {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

// Login signs in through the login form and fails the test if it doesn't redirect.
func (c *Client) Login(username string) {
	c.t.Helper()
	rec := c.PostForm("/auth/login/", url.Values{
		"username": {username},
		"password": {Password},
	})
	require.Equal(c.t, http.StatusFound, rec.Code, "login as %s failed: %s", username, rec.Body.String())
}

// Document parses a recorded HTML response.
func Document(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}
