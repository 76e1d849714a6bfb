// Package site renders the studio's single page and its form-post fallbacks.
package site

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/go-chi/chi/v5"
	"github.com/wolfman30/jwbeauty-studio/internal/advisor"
	"github.com/wolfman30/jwbeauty-studio/internal/booking"
	"github.com/wolfman30/jwbeauty-studio/internal/calendar"
	"github.com/wolfman30/jwbeauty-studio/internal/catalog"
	"github.com/wolfman30/jwbeauty-studio/internal/http/middleware"
	"github.com/wolfman30/jwbeauty-studio/internal/i18n"
	"github.com/wolfman30/jwbeauty-studio/pkg/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Advisor is the part of the advisor service the page needs.
type Advisor interface {
	Ask(ctx context.Context, sessionID string, tr i18n.Translator, text string) (advisor.Result, error)
	Transcript(ctx context.Context, sessionID string) ([]advisor.Message, error)
}

// Config carries the studio details shown on the page.
type Config struct {
	ChatURL         string
	WhatsAppNumber  string
	ReviewsWidgetID string
	SecureCookies   bool
}

// Handler serves the page and its plain form posts.
type Handler struct {
	ctrl    *booking.Controller
	advisor Advisor
	dict    *i18n.Dictionary
	cfg     Config
	clock   clock.Clock
	logger  *logging.Logger
	tmpl    *template.Template
}

func NewHandler(ctrl *booking.Controller, adv Advisor, dict *i18n.Dictionary, cfg Config, logger *logging.Logger) (*Handler, error) {
	if logger == nil {
		logger = logging.Default()
	}
	tmpl, err := template.New("site").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{
		ctrl:    ctrl,
		advisor: adv,
		dict:    dict,
		cfg:     cfg,
		clock:   clock.New(),
		logger:  logger,
		tmpl:    tmpl,
	}, nil
}

// Static serves the page script and stylesheet.
func (h *Handler) Static() http.Handler {
	sub, _ := fs.Sub(staticFS, "static")
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

func (h *Handler) translator(r *http.Request) i18n.Translator {
	return i18n.NewTranslator(h.dict, middleware.LocaleFromContext(r.Context()))
}

func (h *Handler) page(r *http.Request, snap booking.Snapshot) pageData {
	tr := h.translator(r)
	p := newPageData(tr, h.clock.Now())
	p.ChatURL = h.cfg.ChatURL
	p.WhatsAppNumber = h.cfg.WhatsAppNumber
	p.ReviewsWidgetID = h.cfg.ReviewsWidgetID
	p.applySnapshot(snap)

	picker := h.ctrl.Picker()
	view := picker.CurrentView()
	if m := r.URL.Query().Get("month"); m != "" {
		if v, err := calendar.ParseView(m); err == nil {
			view = v
		}
	}
	p.Calendar = calendarView{
		Open:  r.URL.Query().Get("calendar") == "open",
		Month: picker.Grid(view, snap.Draft.Date, tr.Locale),
	}

	if h.advisor != nil {
		msgs, err := h.advisor.Transcript(r.Context(), snap.SessionID)
		if err != nil {
			h.logger.Warn("advisor transcript unavailable", "error", err)
		}
		p.Advisor = msgs
	}
	return p
}

func (h *Handler) render(w http.ResponseWriter, name string, status int, data pageData) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("page render failed", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// Index handles GET /. A ?service= id pre-selects that treatment in the form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionIDFromContext(r.Context())
	snap := h.ctrl.Status(sid)
	if id := r.URL.Query().Get("service"); id != "" {
		if label, ok := catalog.Label(h.translator(r), id); ok {
			snap, _ = h.ctrl.Update(sid, "service", label)
		}
	}
	h.render(w, "page.html", http.StatusOK, h.page(r, snap))
}

// Submit handles POST /booking, the form post fallback of the booking form.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionIDFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	tr := h.translator(r)
	var sub booking.Submission
	_, err := h.ctrl.Replace(sid, booking.Draft{
		Name:    r.PostForm.Get("name"),
		Phone:   r.PostForm.Get("phone"),
		Service: r.PostForm.Get("service"),
		Date:    r.PostForm.Get("date"),
		Time:    booking.TimeSlot(r.PostForm.Get("time")),
	})
	if err == nil {
		sub, err = h.ctrl.Submit(r.Context(), sid, tr)
	}
	var verrs booking.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		p := h.page(r, h.ctrl.Status(sid))
		p.applyValidation(verrs)
		h.render(w, "page.html", http.StatusUnprocessableEntity, p)
		return
	case errors.Is(err, booking.ErrCompose):
		h.render(w, "page.html", http.StatusInternalServerError, h.page(r, h.ctrl.Status(sid)))
		return
	case err != nil:
		h.logger.Error("booking submit failed", "session_id", sid, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	p := h.page(r, h.ctrl.Status(sid))
	p.DeepLink = sub.DeepLink
	h.render(w, "page.html", http.StatusOK, p)
}

// Calendar handles GET /booking/calendar?month=YYYY-MM and renders only the
// picker.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionIDFromContext(r.Context())
	if m := r.URL.Query().Get("month"); m != "" {
		if _, err := calendar.ParseView(m); err != nil {
			http.Error(w, "invalid month", http.StatusBadRequest)
			return
		}
	}
	p := h.page(r, h.ctrl.Status(sid))
	p.Calendar.Open = true
	h.render(w, "calendar", http.StatusOK, p)
}

// SelectDate handles POST /booking/date with month=YYYY-MM and day=N.
func (h *Handler) SelectDate(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionIDFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	view, err := calendar.ParseView(r.PostForm.Get("month"))
	if err != nil {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}
	day, err := strconv.Atoi(r.PostForm.Get("day"))
	if err != nil {
		http.Error(w, "invalid day", http.StatusBadRequest)
		return
	}
	snap, err := h.ctrl.SelectDay(sid, view, day)
	if err != nil {
		// Past or impossible days keep the picker open on the same month.
		q := url.Values{"calendar": {"open"}, "month": {view.String()}}
		r.URL.RawQuery = q.Encode()
		h.render(w, "page.html", http.StatusUnprocessableEntity, h.page(r, snap))
		return
	}
	http.Redirect(w, r, "/#booking", http.StatusSeeOther)
}

// DismissDialog handles POST /booking/dialog.
func (h *Handler) DismissDialog(w http.ResponseWriter, r *http.Request) {
	h.ctrl.DismissDialog(middleware.SessionIDFromContext(r.Context()))
	http.Redirect(w, r, "/#booking", http.StatusSeeOther)
}

// Ask handles POST /advisor, the form post fallback of the advisor widget.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if h.advisor != nil {
		sid := middleware.SessionIDFromContext(r.Context())
		_, err := h.advisor.Ask(r.Context(), sid, h.translator(r), r.PostForm.Get("text"))
		if err != nil && !errors.Is(err, advisor.ErrEmptyQuestion) && !errors.Is(err, advisor.ErrBusy) {
			h.logger.Error("advisor ask failed", "session_id", sid, "error", err)
		}
	}
	http.Redirect(w, r, "/#ai-advisor", http.StatusSeeOther)
}

// Language handles GET /lang/{locale}: it stores the choice and returns to
// the page the visitor came from.
func (h *Handler) Language(w http.ResponseWriter, r *http.Request) {
	locale, err := i18n.ParseLocale(chi.URLParam(r, "locale"))
	if err != nil {
		http.Error(w, "unsupported language", http.StatusNotFound)
		return
	}
	middleware.SetLocaleCookie(w, locale, h.cfg.SecureCookies)
	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

// backTo returns the same-host referer path, or "/".
func backTo(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	if !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") || strings.HasPrefix(ref.Path, "/lang/") {
		return "/"
	}
	q := ref.Query()
	q.Del("lang")
	out := ref.Path
	if enc := q.Encode(); enc != "" {
		out += "?" + enc
	}
	return out
}
