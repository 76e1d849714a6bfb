package advisor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wolfman30/jwbeauty-studio/internal/http/middleware"
	"github.com/wolfman30/jwbeauty-studio/internal/i18n"
	"github.com/wolfman30/jwbeauty-studio/pkg/logging"
)

// Handler serves the advisor chat API.
type Handler struct {
	svc    *Service
	dict   *i18n.Dictionary
	logger *logging.Logger
}

func NewHandler(svc *Service, dict *i18n.Dictionary, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, dict: dict, logger: logger}
}

type askRequest struct {
	Text string `json:"text"`
}

type transcriptResponse struct {
	Messages []Message `json:"messages"`
}

// Ask handles POST /api/advisor/messages.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionIDFromContext(r.Context())
	if sid == "" {
		writeError(w, http.StatusBadRequest, "missing session")
		return
	}
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	tr := i18n.NewTranslator(h.dict, middleware.LocaleFromContext(r.Context()))
	res, err := h.svc.Ask(r.Context(), sid, tr, req.Text)
	switch {
	case errors.Is(err, ErrEmptyQuestion):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ErrBusy):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		h.logger.Error("advisor ask failed", "session_id", sid, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Transcript handles GET /api/advisor/messages.
func (h *Handler) Transcript(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionIDFromContext(r.Context())
	if sid == "" {
		writeError(w, http.StatusBadRequest, "missing session")
		return
	}
	msgs, err := h.svc.Transcript(r.Context(), sid)
	if err != nil {
		h.logger.Error("advisor transcript failed", "session_id", sid, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if msgs == nil {
		msgs = []Message{}
	}
	writeJSON(w, http.StatusOK, transcriptResponse{Messages: msgs})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
