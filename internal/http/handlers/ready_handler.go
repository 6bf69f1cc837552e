package handlers

import (
	"net/http"

	"screen_navigator/internal/service"
)

type ReadyResponse struct {
	Status string   `json:"status"`
	Agents []string `json:"agents"`
	Error  string   `json:"error,omitempty"`
}

// ReadyHandler reports ready once every registered agent has all of its
// tools wired.
type ReadyHandler struct {
	dispatcher *service.Dispatcher
}

func NewReadyHandler(dispatcher *service.Dispatcher) *ReadyHandler {
	return &ReadyHandler{dispatcher: dispatcher}
}

func (h *ReadyHandler) Handle(w http.ResponseWriter, r *http.Request) {
	response := ReadyResponse{Status: `ok`, Agents: []string{}}
	code := http.StatusOK

	for _, a := range h.dispatcher.Agents().List() {
		response.Agents = append(response.Agents, a.Name)
		if _, err := h.dispatcher.Declarations(a.Name); err != nil && response.Error == "" {
			response.Status = `unavailable`
			response.Error = err.Error()
			code = http.StatusServiceUnavailable
		}
	}

	sendJSON(w, code, response)
}
