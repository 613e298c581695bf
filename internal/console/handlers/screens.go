package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/your-org/frfront/internal/client"
	"github.com/your-org/frfront/internal/screens"
)

const maxUploadBytes = 32 << 20

// ScreenHandler exposes the screens over HTTP. Views come back with 200
// even when they carry an error; only malformed console input is a 4xx.
type ScreenHandler struct {
	svc *screens.Service
}

func NewScreenHandler(svc *screens.Service) *ScreenHandler {
	return &ScreenHandler{svc: svc}
}

func (h *ScreenHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"screens": screens.Catalog(),
		"tools":   screens.Tools(),
	})
}

// View serves a screen that needs no input.
func (h *ScreenHandler) View(load func(*screens.Service, context.Context) *screens.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, load(h.svc, c.Request.Context()))
	}
}

func (h *ScreenHandler) Search(c *gin.Context) {
	by := c.DefaultQuery("by", screens.SearchByEmail)
	c.JSON(http.StatusOK, h.svc.Search(c.Request.Context(), screens.SearchInput{
		By:    by,
		Value: c.Query("value"),
	}))
}

func (h *ScreenHandler) Register(c *gin.Context) {
	photo, ok := upload(c, "image")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Register(c.Request.Context(), screens.RegisterInput{
		Name:      c.PostForm("name"),
		Surname:   c.PostForm("surname"),
		Email:     c.PostForm("email"),
		StudentID: c.PostForm("student_id"),
		Photo:     photo,
	}))
}

func (h *ScreenHandler) UpdateFeatures(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid person id"})
		return
	}
	photo, ok := upload(c, "image")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.UpdateFeatures(c.Request.Context(), id, photo))
}

func (h *ScreenHandler) Recognize(c *gin.Context) {
	image, ok := upload(c, "image")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Recognize(c.Request.Context(), screens.RecognitionInput{
		By:    c.DefaultPostForm("by", screens.SearchByEmail),
		Value: c.PostForm("value"),
		Image: image,
	}))
}

func (h *ScreenHandler) Identify(c *gin.Context) {
	image, ok := upload(c, "image")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Identify(c.Request.Context(), image))
}

func (h *ScreenHandler) Cleanup(c *gin.Context) {
	hours := 0
	if raw := c.Query("max_age_hours"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_age_hours must be a non-negative integer"})
			return
		}
		hours = n
	}
	c.JSON(http.StatusOK, h.svc.Cleanup(c.Request.Context(), hours))
}

func (h *ScreenHandler) RunTool(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.RunTool(c.Request.Context(), c.Param("tool")))
}

func (h *ScreenHandler) Export(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ExportAll(c.Request.Context()))
}

func (h *ScreenHandler) ExportPerson(c *gin.Context) {
	email := c.PostForm("email")
	if email == "" {
		email = c.Query("email")
	}
	c.JSON(http.StatusOK, h.svc.ExportPerson(c.Request.Context(), email))
}

func (h *ScreenHandler) Backup(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Backup(c.Request.Context()))
}

func (h *ScreenHandler) Import(c *gin.Context) {
	file, ok := upload(c, "file")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Import(c.Request.Context(), file))
}

// Download streams the file on success and the view otherwise.
func (h *ScreenHandler) Download(c *gin.Context) {
	v, d := h.svc.Download(c.Request.Context(), c.Param("filename"))
	if d == nil {
		c.JSON(http.StatusOK, v)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, strings.ReplaceAll(d.Filename, `"`, "")))
	c.Data(http.StatusOK, d.ContentType, d.Data)
}

// upload reads one file part of a multipart form. It writes the 400 itself
// and reports false when the part is missing or unreadable.
func upload(c *gin.Context, field string) (client.File, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		msg := fmt.Sprintf("invalid %s upload: %v", field, err)
		if errors.Is(err, http.ErrMissingFile) {
			msg = fmt.Sprintf("missing %s file", field)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return client.File{}, false
	}
	if fh.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("%s exceeds %d bytes", field, maxUploadBytes)})
		return client.File{}, false
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("open %s: %v", field, err)})
		return client.File{}, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("read %s: %v", field, err)})
		return client.File{}, false
	}
	// The content type is derived from the name, as the service expects.
	return client.File{Name: fh.Filename, Data: data}, true
}
