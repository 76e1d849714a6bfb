package bootstrap

import (
	"context"
	"net/http"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wolfman30/jwbeauty-studio/internal/advisor"
	appconfig "github.com/wolfman30/jwbeauty-studio/internal/config"
	"github.com/wolfman30/jwbeauty-studio/internal/notify"
	"github.com/wolfman30/jwbeauty-studio/internal/observability/metrics"
	"github.com/wolfman30/jwbeauty-studio/pkg/logging"
)

func TestBuildRedisClientDisabled(t *testing.T) {
	if client := BuildRedisClient(context.Background(), &appconfig.Config{}, logging.New("error"), true); client != nil {
		t.Fatalf("expected nil client without REDIS_ADDR")
	}
}

func TestBuildRedisClientVerifies(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &appconfig.Config{RedisAddr: mr.Addr()}

	client := BuildRedisClient(context.Background(), cfg, logging.New("error"), true)
	if client == nil {
		t.Fatalf("expected client for reachable redis")
	}
	defer client.Close()

	store := BuildTranscriptStore(client, logging.New("error"))
	if _, ok := store.(*advisor.RedisTranscriptStore); !ok {
		t.Fatalf("expected redis transcript store, got %T", store)
	}
}

func TestBuildRedisClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if client := BuildRedisClient(context.Background(), &appconfig.Config{RedisAddr: addr}, logging.New("error"), true); client != nil {
		t.Fatalf("expected nil client when ping fails")
	}
}

func TestBuildTranscriptStoreFallsBackToMemory(t *testing.T) {
	store := BuildTranscriptStore(nil, logging.New("error"))
	if _, ok := store.(*advisor.MemoryTranscriptStore); !ok {
		t.Fatalf("expected memory transcript store, got %T", store)
	}
}

func TestBuildLLM(t *testing.T) {
	logger := logging.New("error")

	if _, err := BuildLLM(context.Background(), nil, aws.Config{}, logger); err == nil {
		t.Fatalf("expected error for nil config")
	}

	llm, err := BuildLLM(context.Background(), &appconfig.Config{AdvisorProvider: "gemini"}, aws.Config{}, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if llm.Client != nil {
		t.Fatalf("expected no client without gemini key")
	}
	if err := llm.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	llm, err = BuildLLM(context.Background(), &appconfig.Config{AdvisorProvider: "bedrock"}, aws.Config{}, logger)
	if err != nil || llm.Client != nil {
		t.Fatalf("expected disabled bedrock without model, got %v %v", llm.Client, err)
	}

	llm, err = BuildLLM(context.Background(), &appconfig.Config{AdvisorProvider: "bedrock", BedrockModelID: "anthropic.claude-3-haiku"}, aws.Config{Region: "ap-southeast-1"}, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := llm.Client.(*advisor.BedrockClient); !ok {
		t.Fatalf("expected bedrock client, got %T", llm.Client)
	}
	if llm.Provider != "bedrock" {
		t.Fatalf("expected bedrock provider label, got %q", llm.Provider)
	}

	if _, err := BuildLLM(context.Background(), &appconfig.Config{AdvisorProvider: "other"}, aws.Config{}, logger); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestBuildEmailSender(t *testing.T) {
	logger := logging.New("error")

	if _, ok := BuildEmailSender(&appconfig.Config{Env: "development"}, aws.Config{}, logger).(*notify.StubEmailSender); !ok {
		t.Fatalf("expected stub sender in development")
	}
	if sender := BuildEmailSender(&appconfig.Config{Env: "production"}, aws.Config{}, logger); sender != nil {
		t.Fatalf("expected no sender in production without credentials, got %T", sender)
	}
	sg := BuildEmailSender(&appconfig.Config{Env: "production", SendGridAPIKey: "SG.test", SendGridFromEmail: "studio@example.com"}, aws.Config{}, logger)
	if _, ok := sg.(*notify.SendGridSender); !ok {
		t.Fatalf("expected sendgrid sender, got %T", sg)
	}
	ses := BuildEmailSender(&appconfig.Config{Env: "production", SESFromEmail: "studio@example.com"}, aws.Config{Region: "ap-southeast-1"}, logger)
	if _, ok := ses.(*notify.SESSender); !ok {
		t.Fatalf("expected ses sender, got %T", ses)
	}
}

func TestRecordHTTPClientTimeout(t *testing.T) {
	if c := RecordHTTPClient(&appconfig.Config{}); c.Timeout != 0 {
		t.Fatalf("expected no timeout by default, got %v", c.Timeout)
	}
	if c := RecordHTTPClient(&appconfig.Config{SheetWebhookTimeout: 8 * time.Second}); c.Timeout != 8*time.Second {
		t.Fatalf("expected configured timeout, got %v", c.Timeout)
	}
}

func TestBuildRecordSinksAndDispatcher(t *testing.T) {
	logger := logging.New("error")

	if sinks := BuildRecordSinks(&appconfig.Config{}, aws.Config{}, http.DefaultClient, logger); len(sinks) != 0 {
		t.Fatalf("expected no sinks, got %d", len(sinks))
	}

	cfg := &appconfig.Config{
		SheetWebhookURL:     "https://script.example/exec",
		RecordArchiveBucket: "jw-bookings",
		RecordArchivePrefix: "bookings",
		StaffAlertEmail:     "staff@example.com",
		StudioName:          "JW Beauty Studio",
	}
	sinks := BuildRecordSinks(cfg, aws.Config{Region: "ap-southeast-1"}, http.DefaultClient, logger)
	if len(sinks) != 2 {
		t.Fatalf("expected sheet and s3 sinks, got %d", len(sinks))
	}

	d := BuildDispatcher(cfg, sinks, notify.NewStubEmailSender(logger), metrics.NewRecordMetrics(prometheus.NewRegistry()), logger)
	names := d.Sinks()
	if len(names) != 2 || names[0] != "sheet" || names[1] != "s3" {
		t.Fatalf("unexpected sinks %v", names)
	}
	d.Wait()
}
