package adaptors

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"screen_navigator/internal/domain/models"
)

// imageMimeType picks the artifact's declared type, then the extension, then
// content sniffing.
func imageMimeType(a *models.Artifact) string {
	if a.MimeType != "" && a.MimeType != "application/octet-stream" {
		return a.MimeType
	}
	switch strings.ToLower(filepath.Ext(a.Name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	}
	if t := mime.TypeByExtension(filepath.Ext(a.Name)); t != "" {
		return t
	}
	return http.DetectContentType(a.Data)
}
