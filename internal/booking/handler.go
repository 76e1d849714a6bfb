package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wolfman30/jwbeauty-studio/internal/calendar"
	"github.com/wolfman30/jwbeauty-studio/internal/http/middleware"
	"github.com/wolfman30/jwbeauty-studio/internal/i18n"
	"github.com/wolfman30/jwbeauty-studio/pkg/logging"
)

// Handler serves the booking JSON API for the page script.
type Handler struct {
	ctrl   *Controller
	dict   *i18n.Dictionary
	logger *logging.Logger
}

func NewHandler(ctrl *Controller, dict *i18n.Dictionary, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{ctrl: ctrl, dict: dict, logger: logger}
}

type feedbackResponse struct {
	Phase Phase    `json:"phase"`
	Key   i18n.Key `json:"key,omitempty"`
	Style Style    `json:"style,omitempty"`
	Text  string   `json:"text,omitempty"`
}

type statusResponse struct {
	Feedback  feedbackResponse `json:"feedback"`
	History   []Phase          `json:"history"`
	Loading   bool             `json:"loading"`
	DialogKey i18n.Key         `json:"dialog_key,omitempty"`
	Dialog    string           `json:"dialog,omitempty"`
	Draft     Draft            `json:"draft"`
	DateLabel string           `json:"date_label"`
}

type submitResponse struct {
	ID       string           `json:"id"`
	Message  string           `json:"message,omitempty"`
	DeepLink string           `json:"deep_link,omitempty"`
	Feedback feedbackResponse `json:"feedback"`
	Dialog   string           `json:"dialog,omitempty"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields []ValidationError `json:"fields,omitempty"`
}

func (h *Handler) translator(r *http.Request) i18n.Translator {
	return i18n.NewTranslator(h.dict, middleware.LocaleFromContext(r.Context()))
}

func (h *Handler) feedback(tr i18n.Translator, f Feedback) feedbackResponse {
	out := feedbackResponse{Phase: f.Phase, Key: f.Key, Style: f.Style}
	if f.Key != "" {
		out.Text = tr.T(f.Key)
	}
	return out
}

func (h *Handler) status(tr i18n.Translator, snap Snapshot) statusResponse {
	resp := statusResponse{
		Feedback:  h.feedback(tr, snap.Feedback),
		History:   snap.History,
		Loading:   snap.Loading,
		DialogKey: snap.Dialog,
		Draft:     snap.Draft,
	}
	if resp.History == nil {
		resp.History = []Phase{}
	}
	if snap.Dialog != "" {
		resp.Dialog = tr.T(snap.Dialog)
	}
	if d, err := calendar.ParseDate(snap.Draft.Date); err == nil {
		resp.DateLabel = calendar.FormatDisplay(d, tr.Locale)
	}
	return resp
}

func sessionID(r *http.Request) (string, bool) {
	id := middleware.SessionIDFromContext(r.Context())
	return id, id != ""
}

// Submit handles POST /api/booking.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing session"})
		return
	}
	var draft Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	tr := h.translator(r)
	var sub Submission
	_, err := h.ctrl.Replace(sid, draft)
	if err == nil {
		sub, err = h.ctrl.Submit(r.Context(), sid, tr)
	}
	if err != nil {
		var verrs ValidationErrors
		switch {
		case errors.As(err, &verrs):
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid booking request", Fields: verrs})
		case errors.Is(err, ErrCompose):
			writeJSON(w, http.StatusInternalServerError, submitResponse{
				ID:       sub.ID,
				Feedback: h.feedback(tr, sub.Feedback),
				Dialog:   tr.T(i18n.KeyAlertFormError),
			})
		default:
			h.logger.Error("booking submit failed", "session_id", sid, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		}
		return
	}
	writeJSON(w, http.StatusCreated, submitResponse{
		ID:       sub.ID,
		Message:  sub.Message,
		DeepLink: sub.DeepLink,
		Feedback: h.feedback(tr, sub.Feedback),
	})
}

// Status handles GET /api/booking/status. Sessions are only created by the
// page and the draft routes; an unknown or expired one answers 404.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing session"})
		return
	}
	snap, err := h.ctrl.Lookup(sid)
	if errors.Is(err, ErrSessionNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, h.status(h.translator(r), snap))
}

// DismissDialog handles POST /api/booking/dialog/dismiss.
func (h *Handler) DismissDialog(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing session"})
		return
	}
	if _, err := h.ctrl.Lookup(sid); errors.Is(err, ErrSessionNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, h.status(h.translator(r), h.ctrl.DismissDialog(sid)))
}

type fieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// UpdateField handles PATCH /api/booking/draft.
func (h *Handler) UpdateField(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing session"})
		return
	}
	var req fieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	snap, err := h.ctrl.Update(sid, req.Field, req.Value)
	switch {
	case errors.Is(err, calendar.ErrPastDate):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, h.status(h.translator(r), snap))
}

type dateRequest struct {
	Date string `json:"date"`
}

// SelectDate handles POST /api/booking/date. Past days answer 422 and leave
// the draft untouched.
func (h *Handler) SelectDate(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing session"})
		return
	}
	var req dateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	snap, err := h.ctrl.SelectDate(sid, req.Date)
	switch {
	case errors.Is(err, calendar.ErrPastDate):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, h.status(h.translator(r), snap))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
