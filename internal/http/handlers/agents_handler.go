package handlers

import (
	"net/http"

	"screen_navigator/internal/domain/models"
	"screen_navigator/internal/service"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

type AgentsHandler struct {
	dispatcher *service.Dispatcher
	log        *log.Logger
}

// AgentResponse is an agent configuration together with the function
// declarations of its tools.
type AgentResponse struct {
	*models.AgentConfig
	ToolDeclarations []service.ToolDeclaration `json:"tool_declarations"`
}

func NewAgentsHandler(dispatcher *service.Dispatcher, log *log.Logger) *AgentsHandler {
	return &AgentsHandler{dispatcher: dispatcher, log: log}
}

func (h *AgentsHandler) List(w http.ResponseWriter, r *http.Request) {
	agents := h.dispatcher.Agents().List()
	response := make([]AgentResponse, 0, len(agents))
	for _, a := range agents {
		decls, err := h.dispatcher.Declarations(a.Name)
		if err != nil {
			sendError(w, `failed to describe agent tools`, err, http.StatusInternalServerError)
			return
		}
		response = append(response, AgentResponse{AgentConfig: a, ToolDeclarations: decls})
	}

	if err := sendJSON(w, http.StatusOK, response); err != nil {
		h.log.WithError(err).Error(`failed to encode response`)
	}
}

func (h *AgentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "agent")

	agent, err := h.dispatcher.Agents().Get(name)
	if err != nil {
		sendError(w, `agent not found`, err, statusFor(err))
		return
	}
	decls, err := h.dispatcher.Declarations(name)
	if err != nil {
		sendError(w, `failed to describe agent tools`, err, http.StatusInternalServerError)
		return
	}

	if err := sendJSON(w, http.StatusOK, AgentResponse{AgentConfig: agent, ToolDeclarations: decls}); err != nil {
		h.log.WithError(err).Error(`failed to encode response`)
	}
}
