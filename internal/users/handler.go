package users

import (
	"errors"
	"log/slog"
	"net/http"

	"yaportal/internal/forms"
	"yaportal/internal/middleware"
	"yaportal/internal/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type SignupForm struct {
	Username  string `form:"username" binding:"required,max=150"`
	Password1 string `form:"password1" binding:"required,min=8"`
	Password2 string `form:"password2" binding:"required,eqfield=Password1"`
}

type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) ShowLogin(c *gin.Context) {
	web.Render(c, http.StatusOK, "auth/login.html", gin.H{
		"Form": LoginForm{},
		"Next": c.Query("next"),
	})
}

func (h *Handler) Login(c *gin.Context) {
	var form LoginForm
	next := c.PostForm("next")
	if err := c.ShouldBind(&form); err != nil {
		web.Render(c, http.StatusOK, "auth/login.html", gin.H{
			"Form":   form,
			"Next":   next,
			"Errors": forms.FromBinding(err),
		})
		return
	}

	user, err := h.svc.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			h.log.Error("authenticate user", "error", err)
			web.RenderError(c, http.StatusInternalServerError, "Ошибка сервера")
			return
		}
		web.Render(c, http.StatusOK, "auth/login.html", gin.H{
			"Form":   form,
			"Next":   next,
			"Errors": forms.FieldError(forms.NonField, "Пожалуйста, введите правильные имя пользователя и пароль."),
		})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		h.log.Error("save session", "error", err)
		web.RenderError(c, http.StatusInternalServerError, "Ошибка сервера")
		return
	}

	c.Redirect(http.StatusFound, middleware.SafeNext(next, "/"))
}

// Logout accepts GET and POST and shows a confirmation page.
func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		h.log.Error("save session", "error", err)
	}
	c.Set(middleware.CurrentUserKey, nil)

	web.Render(c, http.StatusOK, "auth/logout.html", nil)
}

func (h *Handler) ShowSignup(c *gin.Context) {
	web.Render(c, http.StatusOK, "auth/signup.html", gin.H{"Form": SignupForm{}})
}

func (h *Handler) Signup(c *gin.Context) {
	var form SignupForm
	if err := c.ShouldBind(&form); err != nil {
		web.Render(c, http.StatusOK, "auth/signup.html", gin.H{
			"Form":   form,
			"Errors": forms.FromBinding(err),
		})
		return
	}

	if _, err := h.svc.Register(c.Request.Context(), form.Username, form.Password1); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			web.Render(c, http.StatusOK, "auth/signup.html", gin.H{
				"Form":   form,
				"Errors": forms.FieldError("username", "Пользователь с таким именем уже существует."),
			})
			return
		}
		h.log.Error("register user", "error", err)
		web.RenderError(c, http.StatusInternalServerError, "Ошибка сервера")
		return
	}

	c.Redirect(http.StatusFound, middleware.LoginPath)
}
