package notes

import (
	"log/slog"
	"net/http"

	"yaportal/internal/access"
	"yaportal/internal/forms"
	"yaportal/internal/middleware"
	"yaportal/internal/models"
	"yaportal/internal/web"

	"github.com/gin-gonic/gin"
)

const successPath = "/done/"

type NoteForm struct {
	Title string `form:"title" binding:"required,max=100"`
	Text  string `form:"text" binding:"required"`
	Slug  string `form:"slug" binding:"omitempty,max=100,slug"`
}

func (f NoteForm) input() Input {
	return Input{Title: f.Title, Text: f.Text, Slug: f.Slug}
}

type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Home(c *gin.Context) {
	web.Render(c, http.StatusOK, "notes/home.html", nil)
}

func (h *Handler) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	list, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	web.Render(c, http.StatusOK, "notes/list.html", gin.H{"Notes": list})
}

func (h *Handler) Success(c *gin.Context) {
	web.Render(c, http.StatusOK, "notes/success.html", nil)
}

func (h *Handler) ShowAdd(c *gin.Context) {
	h.renderForm(c, "Добавить заметку", "/add/", NoteForm{}, nil)
}

func (h *Handler) Add(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var form NoteForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, "Добавить заметку", "/add/", form, forms.FromBinding(err))
		return
	}

	if _, err := h.svc.Create(c.Request.Context(), user.ID, form.input()); err != nil {
		if fe, ok := forms.AsErrors(err); ok {
			h.renderForm(c, "Добавить заметку", "/add/", form, fe)
			return
		}
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, successPath)
}

func (h *Handler) Detail(c *gin.Context) {
	note, ok := h.owned(c)
	if !ok {
		return
	}
	web.Render(c, http.StatusOK, "notes/detail.html", gin.H{"Note": note})
}

func (h *Handler) ShowEdit(c *gin.Context) {
	note, ok := h.owned(c)
	if !ok {
		return
	}
	form := NoteForm{Title: note.Title, Text: note.Text, Slug: note.Slug}
	h.renderForm(c, "Редактировать заметку", editPath(note.Slug), form, nil)
}

func (h *Handler) Edit(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	note, ok := h.owned(c)
	if !ok {
		return
	}

	var form NoteForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, "Редактировать заметку", editPath(note.Slug), form, forms.FromBinding(err))
		return
	}

	if _, err := h.svc.Update(c.Request.Context(), note.Slug, user.ID, form.input()); err != nil {
		if fe, ok := forms.AsErrors(err); ok {
			h.renderForm(c, "Редактировать заметку", editPath(note.Slug), form, fe)
			return
		}
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, successPath)
}

func (h *Handler) ShowDelete(c *gin.Context) {
	note, ok := h.owned(c)
	if !ok {
		return
	}
	web.Render(c, http.StatusOK, "notes/delete.html", gin.H{"Note": note})
}

// Delete serves both the confirmation form POST and DELETE requests.
func (h *Handler) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	if err := h.svc.Delete(c.Request.Context(), c.Param("slug"), user.ID); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, successPath)
}

func (h *Handler) owned(c *gin.Context) (*models.Note, bool) {
	user, _ := middleware.CurrentUser(c)
	note, err := h.svc.Get(c.Request.Context(), c.Param("slug"), user.ID)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return note, true
}

func (h *Handler) renderForm(c *gin.Context, heading, action string, form NoteForm, errs forms.Errors) {
	web.Render(c, http.StatusOK, "notes/form.html", gin.H{
		"Heading": heading,
		"Action":  action,
		"Form":    form,
		"Errors":  errs,
	})
}

func editPath(slug string) string {
	return "/edit/" + slug + "/"
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch access.StatusFor(err) {
	case http.StatusNotFound:
		web.NotFound(c)
	case http.StatusForbidden:
		web.RenderError(c, http.StatusForbidden, "Доступ запрещён")
	default:
		h.log.Error("notes request failed", "path", c.Request.URL.Path, "error", err)
		web.RenderError(c, http.StatusInternalServerError, "Ошибка сервера")
	}
}
