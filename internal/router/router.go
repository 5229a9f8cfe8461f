package router

import (
	"log/slog"

	"yaportal/internal/access"
	"yaportal/internal/forms"
	"yaportal/internal/middleware"
	"yaportal/internal/news"
	"yaportal/internal/notes"
	"yaportal/internal/users"
	"yaportal/internal/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const homeCacheSize = 16

type Options struct {
	DB            *gorm.DB
	SessionSecret string
	Logger        *slog.Logger
	// Policy defaults to access.DefaultPolicy when nil.
	Policy *access.Policy
}

func (o Options) policy() access.Policy {
	if o.Policy == nil {
		return access.DefaultPolicy
	}
	return *o.Policy
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

func newEngine(app string, opts Options) *gin.Engine {
	forms.RegisterValidations()

	r := gin.Default()

	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 14 * 24 * 3600, HttpOnly: true})
	r.Use(sessions.Sessions("yaportal_session", store))

	r.HTMLRender = web.LoadTemplates()

	r.Use(web.App(app))
	r.Use(middleware.LoadUser(opts.DB))

	registerUsers(r, opts)
	r.NoRoute(web.NotFound)
	return r
}

func registerUsers(r *gin.Engine, opts Options) {
	h := users.NewHandler(users.NewService(opts.DB, opts.Logger), opts.Logger)

	r.GET("/auth/login/", h.ShowLogin)
	r.POST("/auth/login/", h.Login)
	r.GET("/auth/logout/", h.Logout)
	r.POST("/auth/logout/", h.Logout)
	r.GET("/auth/signup/", h.ShowSignup)
	r.POST("/auth/signup/", h.Signup)
}

// NewsEngine builds the news site.
func NewsEngine(opts Options) (*gin.Engine, error) {
	cache, err := news.NewHomeCache(homeCacheSize)
	if err != nil {
		return nil, err
	}

	opts = opts.withDefaults()
	r := newEngine("news", opts)
	h := news.NewHandler(news.NewService(opts.DB, opts.policy(), cache, opts.Logger), opts.Logger)

	r.GET("/", h.Home)
	r.GET("/news/:id/", h.Detail)

	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/news/:id/", h.CreateComment)
		authorized.GET("/edit_comment/:id/", h.ShowEditComment)
		authorized.POST("/edit_comment/:id/", h.EditComment)
		authorized.GET("/delete_comment/:id/", h.ShowDeleteComment)
		authorized.POST("/delete_comment/:id/", h.DeleteComment)
		authorized.DELETE("/delete_comment/:id/", h.DeleteComment)
	}
	return r, nil
}

// NotesEngine builds the notes manager.
func NotesEngine(opts Options) *gin.Engine {
	opts = opts.withDefaults()
	r := newEngine("notes", opts)
	h := notes.NewHandler(notes.NewService(opts.DB, opts.policy(), opts.Logger), opts.Logger)

	r.GET("/", h.Home)

	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/notes/", h.List)
		authorized.GET("/done/", h.Success)
		authorized.GET("/add/", h.ShowAdd)
		authorized.POST("/add/", h.Add)
		authorized.GET("/note/:slug/", h.Detail)
		authorized.GET("/edit/:slug/", h.ShowEdit)
		authorized.POST("/edit/:slug/", h.Edit)
		authorized.GET("/delete/:slug/", h.ShowDelete)
		authorized.POST("/delete/:slug/", h.Delete)
		authorized.DELETE("/delete/:slug/", h.Delete)
	}
	return r
}
