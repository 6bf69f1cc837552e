package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"screen_navigator/internal/http/middleware"
	"screen_navigator/internal/service"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

// maxArgsBytes caps the JSON arguments of one tool call.
const maxArgsBytes = 1 << 20

type ToolHandler struct {
	dispatcher *service.Dispatcher
	artifacts  SessionArtifacts
	log        *log.Logger
}

func NewToolHandler(dispatcher *service.Dispatcher, artifacts SessionArtifacts, log *log.Logger) *ToolHandler {
	return &ToolHandler{dispatcher: dispatcher, artifacts: artifacts, log: log}
}

// Handle runs one tool call for an agent in a session. The body holds the
// call's JSON arguments and may be empty.
func (h *ToolHandler) Handle(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	agent := chi.URLParam(r, "agent")
	tool := chi.URLParam(r, "tool")

	h.log.WithFields(log.Fields{
		`session`:    session,
		`agent`:      agent,
		`tool`:       tool,
		`request_id`: middleware.RequestID(r.Context()),
	}).Debug(`tool handler called`)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxArgsBytes))
	if err != nil {
		sendError(w, `failed to read request body`, err, statusFor(err))
		return
	}

	args := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &args); err != nil {
			sendError(w, `failed to decode request body`, err, http.StatusBadRequest)
			return
		}
	}

	tc := service.ToolContext{
		Session:   session,
		Artifacts: h.artifacts.Session(session),
	}
	result, err := h.dispatcher.Invoke(r.Context(), agent, tool, tc, args)
	if err != nil {
		sendError(w, `tool call failed`, err, statusFor(err))
		return
	}

	if err := sendJSON(w, http.StatusOK, result); err != nil {
		h.log.WithError(err).Error(`failed to encode response`)
	}
}
