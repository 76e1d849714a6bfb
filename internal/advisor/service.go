// Package advisor answers skincare questions with a generative model primed
// with the studio's service and price list.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wolfman30/jwbeauty-studio/internal/i18n"
	"github.com/wolfman30/jwbeauty-studio/internal/observability/metrics"
	"github.com/wolfman30/jwbeauty-studio/pkg/logging"
)

var (
	ErrEmptyQuestion = errors.New("advisor: question is empty")
	ErrBusy          = errors.New("advisor: a question is already being answered")
	ErrNotConfigured = errors.New("advisor: model client not configured")
)

// Config tunes the Service.
type Config struct {
	StudioName string
	Provider   string
	MaxTokens  int32
	Timeout    time.Duration
}

// Result is the outcome of one question.
type Result struct {
	Reply    Message   `json:"reply"`
	Failed   bool      `json:"failed"`
	Messages []Message `json:"messages"`
}

// Service runs advisor questions. Each question is sent on its own with the
// system prompt; the transcript is kept for display only.
type Service struct {
	client   LLMClient
	store    TranscriptStore
	system   string
	cfg      Config
	logger   *logging.Logger
	metrics  *metrics.AdvisorMetrics
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewService creates the advisor. A nil client is allowed: every question
// then gets the localized error reply.
func NewService(client LLMClient, store TranscriptStore, cfg Config, logger *logging.Logger, m *metrics.AdvisorMetrics) *Service {
	if store == nil {
		store = NewMemoryTranscriptStore()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Provider == "" {
		cfg.Provider = "none"
	}
	return &Service{
		client:   client,
		store:    store,
		system:   SystemPrompt(cfg.StudioName),
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
		inflight: make(map[string]struct{}),
	}
}

func (s *Service) acquire(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[sessionID]; busy {
		return false
	}
	s.inflight[sessionID] = struct{}{}
	return true
}

func (s *Service) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, sessionID)
}

// Ask records the question, asks the model and records the answer. When the
// model is unavailable or fails, the localized error text is recorded as
// the advisor's reply and Result.Failed is set; the error itself is only
// logged.
func (s *Service) Ask(ctx context.Context, sessionID string, tr i18n.Translator, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyQuestion
	}
	if !s.acquire(sessionID) {
		return Result{}, ErrBusy
	}
	defer s.release(sessionID)

	if err := s.store.Append(ctx, sessionID, Message{Sender: SenderUser, Text: text}); err != nil {
		return Result{}, fmt.Errorf("advisor: record question: %w", err)
	}

	reply, err := s.complete(ctx, text)
	failed := err != nil
	if failed {
		s.logger.Error("advisor completion failed",
			"session_id", sessionID,
			"provider", s.cfg.Provider,
			"error", err,
		)
		reply = tr.T(i18n.KeyAIError)
	}

	msg := Message{Sender: SenderAI, Text: reply, Failed: failed}
	if err := s.store.Append(ctx, sessionID, msg); err != nil {
		return Result{}, fmt.Errorf("advisor: record reply: %w", err)
	}
	messages, err := s.store.List(ctx, sessionID)
	if err != nil {
		return Result{}, fmt.Errorf("advisor: list transcript: %w", err)
	}
	if n := len(messages); n > 0 {
		msg = messages[n-1]
	}
	return Result{Reply: msg, Failed: failed, Messages: messages}, nil
}

func (s *Service) complete(ctx context.Context, text string) (string, error) {
	if s.client == nil {
		s.metrics.ObserveRequest(s.cfg.Provider, "unconfigured", 0)
		return "", ErrNotConfigured
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	start := time.Now()
	resp, err := s.client.Complete(ctx, Request{System: s.system, Prompt: text, MaxTokens: s.cfg.MaxTokens})
	elapsed := time.Since(start).Seconds()
	if err != nil {
		s.metrics.ObserveRequest(s.cfg.Provider, "error", elapsed)
		return "", err
	}
	if strings.TrimSpace(resp.Text) == "" {
		s.metrics.ObserveRequest(s.cfg.Provider, "empty", elapsed)
		return "", errors.New("advisor: empty completion")
	}
	s.metrics.ObserveRequest(s.cfg.Provider, "ok", elapsed)
	return resp.Text, nil
}

// Transcript returns the session's chat, oldest first.
func (s *Service) Transcript(ctx context.Context, sessionID string) ([]Message, error) {
	return s.store.List(ctx, sessionID)
}
