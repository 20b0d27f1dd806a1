// Package assistant serves the chat endpoints backed by a single shared
// session.
package assistant

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"financas/internal/services/assistant"

	apphttp "financas/internal/http"
)

var session *assistant.Session

// Initialize sets up the assistant package with required dependencies
func Initialize(s *assistant.Session) {
	session = s
}

// RegisterRoutes registers all assistant routes
func RegisterRoutes(r chi.Router) {
	r.Post("/api/assistant/open", handleOpen)
	r.Post("/api/assistant/ask", handleAsk)
	r.Get("/api/assistant/messages", handleMessages)
	r.Post("/api/assistant/reset", handleReset)
}

func handleOpen(w http.ResponseWriter, r *http.Request) {
	messages, err := session.Open()
	if err != nil {
		apphttp.ErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}
	apphttp.JSONResponse(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

func handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		apphttp.ErrorResponse(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	// The client going away during the reply delay cancels the answer
	reply, err := session.Ask(r.Context(), req.Question)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		apphttp.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	apphttp.JSONResponse(w, http.StatusOK, reply)
}

func handleMessages(w http.ResponseWriter, r *http.Request) {
	apphttp.JSONResponse(w, http.StatusOK, map[string]interface{}{"messages": session.Messages()})
}

func handleReset(w http.ResponseWriter, r *http.Request) {
	session.Reset()
	apphttp.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
