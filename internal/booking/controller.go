package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/wolfman30/jwbeauty-studio/internal/calendar"
	"github.com/wolfman30/jwbeauty-studio/internal/i18n"
	"github.com/wolfman30/jwbeauty-studio/internal/observability/metrics"
	"github.com/wolfman30/jwbeauty-studio/internal/records"
	"github.com/wolfman30/jwbeauty-studio/pkg/logging"
)

// ErrCompose wraps failures while building the message or deep link.
var ErrCompose = errors.New("booking: compose failed")

// Phase is the state of the latest submission attempt.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseProcessing Phase = "processing"
	PhaseRecorded   Phase = "recorded"
	PhaseReady      Phase = "ready"
	PhaseFailed     Phase = "failed"
)

// Style is the color hint of a feedback line.
type Style string

const (
	StylePending Style = "pending"
	StyleSuccess Style = "success"
	StyleError   Style = "error"
)

// Feedback is the status line under the form. The zero value means no
// feedback is shown.
type Feedback struct {
	Phase Phase    `json:"phase"`
	Key   i18n.Key `json:"key,omitempty"`
	Style Style    `json:"style,omitempty"`
}

func feedbackFor(p Phase) Feedback {
	switch p {
	case PhaseProcessing:
		return Feedback{Phase: p, Key: i18n.KeyFeedbackProcessing, Style: StylePending}
	case PhaseRecorded:
		return Feedback{Phase: p, Key: i18n.KeyFeedbackSpreadsheetSent, Style: StyleSuccess}
	case PhaseReady:
		return Feedback{Phase: p, Key: i18n.KeyFeedbackWhatsAppReady, Style: StyleSuccess}
	case PhaseFailed:
		return Feedback{Phase: p, Key: i18n.KeyAlertFormError, Style: StyleError}
	}
	return Feedback{Phase: PhaseIdle}
}

// Submission is what the caller needs to hand the visitor off to WhatsApp.
type Submission struct {
	ID       string   `json:"id"`
	Message  string   `json:"message,omitempty"`
	DeepLink string   `json:"deep_link,omitempty"`
	Feedback Feedback `json:"feedback"`
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	SessionID string   `json:"-"`
	Draft     Draft    `json:"draft"`
	Feedback  Feedback `json:"feedback"`
	History   []Phase  `json:"history,omitempty"`
	Loading   bool     `json:"loading"`
	Dialog    i18n.Key `json:"dialog,omitempty"`
}

// MessageComposer builds the WhatsApp hand-off for a draft.
type MessageComposer interface {
	Compose(d Draft, tr i18n.Translator) (string, error)
	DeepLink(message string) string
}

// RecordDispatcher starts the best-effort record write. Implementations
// must not block on the write.
type RecordDispatcher interface {
	Dispatch(ctx context.Context, submissionID string, rec records.Record)
}

// Config holds the timing of a submission attempt.
type Config struct {
	// ReadyDelay is measured from submission start to the ready state,
	// the confirmation dialog and the draft reset.
	ReadyDelay time.Duration
	// LoadingDelay is measured from submission start to clearing the
	// loading overlay, on every path.
	LoadingDelay time.Duration
	Location     *time.Location
}

// DefaultConfig mirrors the site's original timings.
func DefaultConfig() Config {
	return Config{
		ReadyDelay:   2500 * time.Millisecond,
		LoadingDelay: 3 * time.Second,
		Location:     time.Local,
	}
}

// Controller owns booking sessions and runs the submission state machine.
// Deadlines are stored on the session and applied whenever the session is
// touched, so no timer goroutines exist and a mock clock drives tests.
type Controller struct {
	store      *SessionStore
	picker     *calendar.Picker
	validator  *Validator
	composer   MessageComposer
	dispatcher RecordDispatcher
	clock      clock.Clock
	cfg        Config
	logger     *logging.Logger
	metrics    *metrics.BookingMetrics
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock.
func WithClock(c clock.Clock) Option {
	return func(ctrl *Controller) { ctrl.clock = c }
}

// WithMetrics records submissions and transitions.
func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(ctrl *Controller) { ctrl.metrics = m }
}

// WithSessionStore shares an existing store.
func WithSessionStore(s *SessionStore) Option {
	return func(ctrl *Controller) { ctrl.store = s }
}

func NewController(composer MessageComposer, dispatcher RecordDispatcher, cfg Config, logger *logging.Logger, opts ...Option) *Controller {
	if composer == nil {
		panic("booking: composer required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	c := &Controller{
		validator:  NewValidator(),
		composer:   composer,
		dispatcher: dispatcher,
		clock:      clock.New(),
		cfg:        cfg,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = NewSessionStore(0, c.clock)
	}
	c.picker = calendar.NewPicker(c.clock, cfg.Location)
	return c
}

// Picker exposes the calendar used for date selection.
func (c *Controller) Picker() *calendar.Picker { return c.picker }

// Store exposes the session store.
func (c *Controller) Store() *SessionStore { return c.store }

func (c *Controller) session(id string) *Session {
	return c.store.Get(id, func() Draft { return NewDraft(c.picker.Today()) })
}

// Submit validates the session's draft and starts a submission attempt.
// On validation failure nothing changes and ValidationErrors is returned.
// A composition failure puts the attempt in PhaseFailed and returns an error
// wrapping ErrCompose together with the submission.
func (c *Controller) Submit(ctx context.Context, sessionID string, tr i18n.Translator) (Submission, error) {
	s := c.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := c.clock.Now()
	c.advance(s, now)

	if err := c.validator.ValidateOn(s.draft, c.picker.Today()); err != nil {
		c.metrics.ObserveSubmission("invalid", tr.Locale.String())
		return Submission{}, err
	}
	// Name, phone and service go out exactly as typed.
	draft := s.draft
	draft.Date = strings.TrimSpace(draft.Date)
	draft.Time = TimeSlot(strings.TrimSpace(string(draft.Time)))

	// A new attempt supersedes whatever the previous one still had pending.
	s.history = s.history[:0]
	s.dialog = ""
	s.pendingReady = false
	s.loading = true
	s.loadingUntil = now.Add(c.cfg.LoadingDelay)
	s.submissionID = uuid.NewString()
	c.transition(s, PhaseProcessing)

	rec := records.Record{
		Timestamp: FormatTimestamp(now, c.cfg.Location),
		Name:      draft.Name,
		Phone:     draft.Phone,
		Service:   draft.Service,
		Date:      draft.Date,
		Time:      string(draft.Time),
	}
	if c.dispatcher != nil {
		c.dispatcher.Dispatch(ctx, s.submissionID, rec)
	}
	// Optimistic: the write's outcome is never awaited.
	c.transition(s, PhaseRecorded)

	msg, err := c.composer.Compose(draft, tr)
	if err != nil {
		c.transition(s, PhaseFailed)
		s.dialog = i18n.KeyAlertFormError
		c.metrics.ObserveSubmission("failed", tr.Locale.String())
		c.logger.Error("booking message composition failed",
			"session_id", sessionID,
			"submission_id", s.submissionID,
			"error", err,
		)
		return Submission{ID: s.submissionID, Feedback: s.feedback}, fmt.Errorf("%w: %v", ErrCompose, err)
	}

	s.pendingReady = true
	s.readyAt = now.Add(c.cfg.ReadyDelay)
	c.metrics.ObserveSubmission("accepted", tr.Locale.String())
	c.logger.Info("booking request prepared",
		"session_id", sessionID,
		"submission_id", s.submissionID,
		"service", draft.Service,
		"date", draft.Date,
		"time", string(draft.Time),
		"locale", tr.Locale.String(),
	)
	return Submission{
		ID:       s.submissionID,
		Message:  msg,
		DeepLink: c.composer.DeepLink(msg),
		Feedback: s.feedback,
	}, nil
}

// advance applies every deadline that has passed. Each fires at most once
// per attempt.
func (c *Controller) advance(s *Session, now time.Time) {
	if s.pendingReady && !now.Before(s.readyAt) {
		s.pendingReady = false
		c.transition(s, PhaseReady)
		s.dialog = i18n.KeyAlertRequestSent
		s.draft = NewDraft(calendar.Today(now, c.cfg.Location))
	}
	if s.loading && !now.Before(s.loadingUntil) {
		s.loading = false
	}
}

func (c *Controller) transition(s *Session, p Phase) {
	s.feedback = feedbackFor(p)
	s.history = append(s.history, p)
	c.metrics.ObserveTransition(string(p))
}

func (c *Controller) snapshot(s *Session) Snapshot {
	return Snapshot{
		SessionID: s.id,
		Draft:     s.draft,
		Feedback:  s.feedback,
		History:   append([]Phase(nil), s.history...),
		Loading:   s.loading,
		Dialog:    s.dialog,
	}
}

// Status advances the session against the clock and returns its state.
func (c *Controller) Status(sessionID string) Snapshot {
	s := c.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.advance(s, c.clock.Now())
	return c.snapshot(s)
}

// Lookup returns the state of an existing session without creating one.
func (c *Controller) Lookup(sessionID string) (Snapshot, error) {
	s, err := c.store.Lookup(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.advance(s, c.clock.Now())
	return c.snapshot(s), nil
}

// Update sets one draft field. A date goes through the calendar, so empty,
// malformed and past dates are rejected and leave the draft untouched.
func (c *Controller) Update(sessionID, field, value string) (Snapshot, error) {
	if field == "date" {
		iso, err := c.picker.SelectDate(strings.TrimSpace(value))
		if err != nil {
			return c.Status(sessionID), err
		}
		value = iso
	}
	s := c.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.advance(s, c.clock.Now())
	if err := s.draft.Set(field, value); err != nil {
		return c.snapshot(s), err
	}
	return c.snapshot(s), nil
}

// Replace sets every draft field at once, as a form post does. An empty date
// keeps the current one. A malformed or past date also keeps it and is
// reported as ValidationErrors together with the other field errors.
func (c *Controller) Replace(sessionID string, d Draft) (Snapshot, error) {
	var dateErr error
	if raw := strings.TrimSpace(d.Date); raw != "" {
		d.Date, dateErr = c.picker.SelectDate(raw)
	}

	s := c.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.advance(s, c.clock.Now())
	if d.Date == "" {
		d.Date = c.currentDate(s)
	}
	s.draft = d
	if dateErr == nil {
		return c.snapshot(s), nil
	}

	errs := ValidationErrors{dateError(dateErr)}
	var rest ValidationErrors
	if errors.As(c.validator.Validate(s.draft), &rest) {
		for _, e := range rest {
			if e.Field != "date" {
				errs = append(errs, e)
			}
		}
	}
	return c.snapshot(s), errs
}

// currentDate is the session's date while it is still selectable, else today.
func (c *Controller) currentDate(s *Session) string {
	if iso, err := c.picker.SelectDate(s.draft.Date); err == nil {
		return iso
	}
	return c.picker.Today().String()
}

// SelectDay applies a calendar click on day of view. Past days are rejected
// and leave the draft untouched.
func (c *Controller) SelectDay(sessionID string, view calendar.View, day int) (Snapshot, error) {
	date, err := c.picker.Select(view, day)
	if err != nil {
		return c.Status(sessionID), err
	}
	return c.Update(sessionID, "date", date)
}

// SelectDate applies a calendar selection given as YYYY-MM-DD.
func (c *Controller) SelectDate(sessionID, date string) (Snapshot, error) {
	return c.Update(sessionID, "date", date)
}

// DismissDialog closes the pending dialog, if any.
func (c *Controller) DismissDialog(sessionID string) Snapshot {
	s := c.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.advance(s, c.clock.Now())
	s.dialog = ""
	return c.snapshot(s)
}
