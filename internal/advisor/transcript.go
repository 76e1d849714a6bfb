package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	transcriptKeyPrefix = "advisor_transcript:"
	transcriptTTL       = 24 * time.Hour
	maxTranscript       = 100
)

// Sender is who wrote a transcript message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Message is one line of the advisor chat.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Failed    bool      `json:"failed,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// TranscriptStore keeps the chat of each visitor session, oldest first.
type TranscriptStore interface {
	Append(ctx context.Context, sessionID string, msg Message) error
	List(ctx context.Context, sessionID string) ([]Message, error)
}

func normalize(msg Message) Message {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	return msg
}

// RedisTranscriptStore keeps transcripts in Redis lists that expire a day
// after the last message.
type RedisTranscriptStore struct {
	redis       *redis.Client
	tracer      trace.Tracer
	maxMessages int64
}

// NewRedisTranscriptStore returns nil for a nil client.
func NewRedisTranscriptStore(client *redis.Client) *RedisTranscriptStore {
	if client == nil {
		return nil
	}
	return &RedisTranscriptStore{
		redis:       client,
		tracer:      otel.Tracer("jwbeauty.internal.advisor.transcript"),
		maxMessages: maxTranscript,
	}
}

func (s *RedisTranscriptStore) Append(ctx context.Context, sessionID string, msg Message) error {
	if sessionID == "" {
		return errors.New("advisor: transcript session id required")
	}
	data, err := json.Marshal(normalize(msg))
	if err != nil {
		return fmt.Errorf("advisor: marshal transcript message: %w", err)
	}

	ctx, span := s.tracer.Start(ctx, "advisor.transcript.append")
	defer span.End()

	key := transcriptKey(sessionID)
	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, transcriptTTL)
	if s.maxMessages > 0 {
		pipe.LTrim(ctx, key, -s.maxMessages, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("advisor: append transcript message: %w", err)
	}
	return nil
}

func (s *RedisTranscriptStore) List(ctx context.Context, sessionID string) ([]Message, error) {
	if sessionID == "" {
		return nil, errors.New("advisor: transcript session id required")
	}
	ctx, span := s.tracer.Start(ctx, "advisor.transcript.list")
	defer span.End()

	raw, err := s.redis.LRange(ctx, transcriptKey(sessionID), 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Message{}, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("advisor: list transcript: %w", err)
	}
	out := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			span.RecordError(err)
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

func transcriptKey(sessionID string) string {
	return transcriptKeyPrefix + sessionID
}

// MemoryTranscriptStore is the in-process store used when Redis is not
// configured. Transcripts live as long as the process.
type MemoryTranscriptStore struct {
	mu          sync.RWMutex
	transcripts map[string][]Message
	maxMessages int
}

func NewMemoryTranscriptStore() *MemoryTranscriptStore {
	return &MemoryTranscriptStore{
		transcripts: make(map[string][]Message),
		maxMessages: maxTranscript,
	}
}

func (s *MemoryTranscriptStore) Append(_ context.Context, sessionID string, msg Message) error {
	if sessionID == "" {
		return errors.New("advisor: transcript session id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.transcripts[sessionID], normalize(msg))
	if over := len(list) - s.maxMessages; over > 0 {
		list = list[over:]
	}
	s.transcripts[sessionID] = list
	return nil
}

func (s *MemoryTranscriptStore) List(_ context.Context, sessionID string) ([]Message, error) {
	if sessionID == "" {
		return nil, errors.New("advisor: transcript session id required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Message{}, s.transcripts[sessionID]...), nil
}

var (
	_ TranscriptStore = (*RedisTranscriptStore)(nil)
	_ TranscriptStore = (*MemoryTranscriptStore)(nil)
)
