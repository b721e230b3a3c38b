package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Templates parses the embedded page templates, use with gin.Engine.SetHTMLTemplate
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))
}

// Gallery is the client side gallery. It only talks to the JSON API.
func Gallery(c *gin.Context) {
	c.HTML(http.StatusOK, "gallery.tmpl", gin.H{
		"title": "PhotoMind",
	})
}

func DisallowRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
