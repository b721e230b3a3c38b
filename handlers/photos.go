package handlers

import (
	"errors"
	"log"
	"net/http"
	"path"
	"photomind/catalog"
	"photomind/intake"
	"photomind/search"
	"photomind/storage"
	"strings"

	"github.com/gin-gonic/gin"
)

type Photos struct {
	Catalog catalog.Store
	Search  *search.Reconciler
	Intake  *intake.Intake
	Storage storage.StorageAPI
}

type SearchRequest struct {
	Query string `form:"query"`
	Q     string `form:"q"` // older clients
}

func (h *Photos) List(c *gin.Context) {
	photos, err := h.Catalog.List()
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, photos)
}

func (h *Photos) SearchPhotos(c *gin.Context) {
	req := SearchRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		_ = c.Error(ErrQueryRequired)
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		query = strings.TrimSpace(req.Q)
	}
	if query == "" {
		_ = c.Error(ErrQueryRequired)
		return
	}
	photos, err := h.Search.Search(c.Request.Context(), query)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, photos)
}

func (h *Photos) Upload(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		_ = c.Error(ErrNoFile)
		return
	}
	reader, err := file.Open()
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer reader.Close()

	photo, err := h.Intake.Add(c.Request.Context(), intake.Upload{
		Name:        file.Filename,
		Reader:      reader,
		DesiredPath: c.PostForm("desiredPath"),
	})
	if errors.Is(err, intake.ErrNoFile) {
		_ = c.Error(ErrNoFile)
		return
	} else if errors.Is(err, intake.ErrDescription) {
		log.Printf("Upload %q: %v", file.Filename, err)
		_ = c.Error(ErrDescription)
		return
	} else if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, photo)
}

// Image serves a stored image by its name. Any directories in the name are ignored.
func (h *Photos) Image(c *gin.Context) {
	name := path.Base(c.Param("name"))
	if name == "/" || name == "." || name == ".." {
		_ = c.Error(ErrNotFound)
		return
	}
	h.Storage.Serve(name, c.Request, c.Writer)
}
