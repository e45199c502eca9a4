package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// MediaHandler serves generated speech and poster files by name. Files
// disappear once the cleanup service expires them.
type MediaHandler struct {
	audioDir  string
	imagesDir string
}

func NewMediaHandler(mediaDir string) *MediaHandler {
	return &MediaHandler{
		audioDir:  filepath.Join(mediaDir, "audio"),
		imagesDir: filepath.Join(mediaDir, "images"),
	}
}

// safeName rejects anything that could escape the media directory.
func safeName(name, ext string) bool {
	return name != "" &&
		name == filepath.Base(name) &&
		!strings.Contains(name, "..") &&
		strings.HasSuffix(name, ext)
}

func (h *MediaHandler) serve(c *gin.Context, dir, ext string) {
	name := c.Param("filename")
	if !safeName(name, ext) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file name"})
		return
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.File(path)
}

func (h *MediaHandler) GetAudio(c *gin.Context) {
	h.serve(c, h.audioDir, ".mp3")
}

func (h *MediaHandler) GetImage(c *gin.Context) {
	h.serve(c, h.imagesDir, ".png")
}
