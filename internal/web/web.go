// Package web holds the HTML templates and the render helpers shared by both apps.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"

	"yaportal/internal/forms"
	"yaportal/internal/middleware"
	"yaportal/internal/utils"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
)

//go:embed templates
var templateFS embed.FS

const appKey = "app"

// App tags every request with the application name used by the layout.
func App(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(appKey, name)
		c.Next()
	}
}

// Render injects the values every page needs (current user, app, empty form errors).
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user, ok := middleware.CurrentUser(c); ok {
		obj["CurrentUser"] = user
	}
	obj["App"] = c.GetString(appKey)
	obj["CurrentPath"] = c.Request.URL.Path
	if _, ok := obj["Errors"]; !ok {
		obj["Errors"] = forms.Errors{}
	}

	c.HTML(code, name, obj)
}

func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Status": code, "Error": message})
}

// NotFound is the page served for missing and foreign records alike.
func NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, "Страница не найдена")
}

var funcMap = template.FuncMap{
	"dict": func(values ...interface{}) (map[string]interface{}, error) {
		if len(values)%2 != 0 {
			return nil, fmt.Errorf("invalid dict call")
		}
		dict := make(map[string]interface{}, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			key, ok := values[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict keys must be strings")
			}
			dict[key] = values[i+1]
		}
		return dict, nil
	},
	"date": func(t time.Time) string {
		return t.Format("02.01.2006 15:04")
	},
	"iso": func(t time.Time) string {
		return t.Format(time.RFC3339)
	},
	"markdown": utils.RenderMarkdown,
}

// LoadTemplates builds one template set per view: the layout, every include and the view itself.
func LoadTemplates() multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}

	includes, err := fs.Glob(sub, "includes/*.html")
	if err != nil {
		panic(err)
	}

	views := []string{
		"error.html",
		"auth/login.html",
		"auth/signup.html",
		"auth/logout.html",
		"news/home.html",
		"news/detail.html",
		"news/comment_edit.html",
		"news/comment_delete.html",
		"notes/home.html",
		"notes/list.html",
		"notes/form.html",
		"notes/detail.html",
		"notes/delete.html",
		"notes/success.html",
	}

	for _, view := range views {
		files := make([]string, 0, len(includes)+2)
		files = append(files, "layouts/base.html")
		files = append(files, includes...)
		files = append(files, path.Join("views", view))

		tmpl := template.Must(template.New("base.html").Funcs(funcMap).ParseFS(sub, files...))
		r.Add(view, tmpl)
	}

	return r
}
