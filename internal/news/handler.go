package news

import (
	"fmt"
	"log/slog"
	"net/http"

	"yaportal/internal/access"
	"yaportal/internal/forms"
	"yaportal/internal/middleware"
	"yaportal/internal/models"
	"yaportal/internal/utils"
	"yaportal/internal/web"

	"github.com/gin-gonic/gin"
)

type CommentForm struct {
	Text string `form:"text" binding:"required"`
}

type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func detailURL(newsID uint) string {
	return fmt.Sprintf("/news/%d/#comments", newsID)
}

func (h *Handler) Home(c *gin.Context) {
	list, err := h.svc.Home(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	web.Render(c, http.StatusOK, "news/home.html", gin.H{"NewsList": list})
}

func (h *Handler) Detail(c *gin.Context) {
	h.renderDetail(c, http.StatusOK, CommentForm{}, nil)
}

func (h *Handler) renderDetail(c *gin.Context, code int, form CommentForm, errs forms.Errors) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		web.NotFound(c)
		return
	}

	item, comments, err := h.svc.Detail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	web.Render(c, code, "news/detail.html", gin.H{
		"News":     item,
		"Comments": comments,
		"Form":     form,
		"Errors":   errs,
	})
}

// CreateComment re-renders the detail page with inline errors when the text is rejected.
func (h *Handler) CreateComment(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		web.NotFound(c)
		return
	}

	var form CommentForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderDetail(c, http.StatusOK, form, forms.FromBinding(err))
		return
	}

	if _, err := h.svc.CreateComment(c.Request.Context(), id, user.ID, form.Text); err != nil {
		if fe, ok := forms.AsErrors(err); ok {
			h.renderDetail(c, http.StatusOK, form, fe)
			return
		}
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, detailURL(id))
}

func (h *Handler) ShowEditComment(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		web.NotFound(c)
		return
	}

	comment, err := h.svc.Comment(c.Request.Context(), id, user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	web.Render(c, http.StatusOK, "news/comment_edit.html", gin.H{
		"Comment": comment,
		"Form":    CommentForm{Text: comment.Text},
	})
}

func (h *Handler) EditComment(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		web.NotFound(c)
		return
	}

	// Ownership comes first so a foreign comment is a 404 even for invalid input.
	comment, err := h.svc.Comment(c.Request.Context(), id, user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	var form CommentForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderEdit(c, comment, form, forms.FromBinding(err))
		return
	}

	updated, err := h.svc.UpdateComment(c.Request.Context(), id, user.ID, form.Text)
	if err != nil {
		if fe, ok := forms.AsErrors(err); ok {
			h.renderEdit(c, comment, form, fe)
			return
		}
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, detailURL(updated.NewsID))
}

func (h *Handler) renderEdit(c *gin.Context, comment *models.Comment, form CommentForm, errs forms.Errors) {
	web.Render(c, http.StatusOK, "news/comment_edit.html", gin.H{
		"Comment": comment,
		"Form":    form,
		"Errors":  errs,
	})
}

func (h *Handler) ShowDeleteComment(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		web.NotFound(c)
		return
	}

	comment, err := h.svc.Comment(c.Request.Context(), id, user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	web.Render(c, http.StatusOK, "news/comment_delete.html", gin.H{"Comment": comment})
}

func (h *Handler) DeleteComment(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		web.NotFound(c)
		return
	}

	comment, err := h.svc.DeleteComment(c.Request.Context(), id, user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, detailURL(comment.NewsID))
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch access.StatusFor(err) {
	case http.StatusNotFound:
		web.NotFound(c)
	case http.StatusForbidden:
		web.RenderError(c, http.StatusForbidden, "Доступ запрещён")
	default:
		h.log.Error("news request failed", "path", c.Request.URL.Path, "error", err)
		web.RenderError(c, http.StatusInternalServerError, "Ошибка сервера")
	}
}
