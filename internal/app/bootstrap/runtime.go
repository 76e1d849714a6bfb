// Package bootstrap builds the optional infrastructure of the web binary
// from configuration. Every builder tolerates missing settings by returning
// nil or an in-process fallback.
package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/jwbeauty-studio/internal/advisor"
	appconfig "github.com/wolfman30/jwbeauty-studio/internal/config"
	"github.com/wolfman30/jwbeauty-studio/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildTranscriptStore keeps advisor transcripts in Redis when available and
// in process memory otherwise.
func BuildTranscriptStore(redisClient *redis.Client, logger *logging.Logger) advisor.TranscriptStore {
	if logger == nil {
		logger = logging.Default()
	}
	if store := advisor.NewRedisTranscriptStore(redisClient); store != nil {
		logger.Info("advisor transcripts stored in redis")
		return store
	}
	logger.Info("advisor transcripts stored in memory")
	return advisor.NewMemoryTranscriptStore()
}
