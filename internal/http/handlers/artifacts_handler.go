package handlers

import (
	"context"
	"io"
	"mime"
	"net/http"

	domain "screen_navigator/internal/domain/adaptors"
	"screen_navigator/internal/domain/models"
	"screen_navigator/internal/http/middleware"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

// SessionArtifacts is the host-side store the artifact routes write to.
type SessionArtifacts interface {
	Put(ctx context.Context, session string, artifact *models.Artifact) error
	Session(session string) domain.ArtifactStore
	Clear(session string)
}

type ArtifactsHandler struct {
	store    SessionArtifacts
	maxBytes int64
	log      *log.Logger
}

type ArtifactResponse struct {
	Session  string `json:"session"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type,omitempty"`
	Size     string `json:"size"`
}

type ArtifactListResponse struct {
	Session   string   `json:"session"`
	Artifacts []string `json:"artifacts"`
}

func NewArtifactsHandler(store SessionArtifacts, maxBytes int64, log *log.Logger) *ArtifactsHandler {
	return &ArtifactsHandler{store: store, maxBytes: maxBytes, log: log}
}

// Put attaches the raw request body to the session under {name}. The
// Content-Type header, when given, becomes the artifact's mime type.
func (h *ArtifactsHandler) Put(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	name := chi.URLParam(r, "name")
	entry := h.log.WithFields(log.Fields{
		`session`:    session,
		`artifact`:   name,
		`request_id`: middleware.RequestID(r.Context()),
	})

	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		entry.WithError(err).Error(`failed to read artifact body`)
		sendError(w, `failed to read artifact body`, err, statusFor(err))
		return
	}

	var mimeType string
	if ct := r.Header.Get(`Content-Type`); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil {
			mimeType = mt
		}
	}

	artifact := &models.Artifact{Name: name, MimeType: mimeType, Data: data}
	if err := h.store.Put(r.Context(), session, artifact); err != nil {
		entry.WithError(err).Error(`failed to attach artifact`)
		code := statusFor(err)
		if code == http.StatusBadGateway {
			code = http.StatusBadRequest
		}
		sendError(w, `failed to attach artifact`, err, code)
		return
	}

	response := ArtifactResponse{
		Session:  session,
		Name:     name,
		MimeType: mimeType,
		Size:     humanize.IBytes(uint64(len(data))),
	}
	if err := sendJSON(w, http.StatusCreated, response); err != nil {
		entry.WithError(err).Error(`failed to encode response`)
	}
}

func (h *ArtifactsHandler) List(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")

	names, err := h.store.Session(session).List(r.Context())
	if err != nil {
		sendError(w, `failed to list artifacts`, err, http.StatusInternalServerError)
		return
	}

	if err := sendJSON(w, http.StatusOK, ArtifactListResponse{Session: session, Artifacts: names}); err != nil {
		h.log.WithError(err).Error(`failed to encode response`)
	}
}

func (h *ArtifactsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.store.Clear(chi.URLParam(r, "session"))
	w.WriteHeader(http.StatusNoContent)
}
