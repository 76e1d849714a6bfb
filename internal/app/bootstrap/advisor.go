package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/wolfman30/jwbeauty-studio/internal/advisor"
	appconfig "github.com/wolfman30/jwbeauty-studio/internal/config"
	"github.com/wolfman30/jwbeauty-studio/pkg/logging"
)

// LLM is the advisor's model client together with its provider label and a
// release hook for shutdown.
type LLM struct {
	Client   advisor.LLMClient
	Provider string
	Close    func() error
}

// BuildLLM wires the advisor's model client for the configured provider.
// A provider without credentials yields a nil Client; the advisor then
// answers every question with its localized error text.
func BuildLLM(ctx context.Context, cfg *appconfig.Config, awsCfg aws.Config, logger *logging.Logger) (LLM, error) {
	if cfg == nil {
		return LLM{}, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	out := LLM{Provider: cfg.AdvisorProvider, Close: func() error { return nil }}

	switch cfg.AdvisorProvider {
	case "gemini":
		client, err := advisor.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if errors.Is(err, advisor.ErrNotConfigured) {
			logger.Warn("gemini api key not set; advisor disabled")
			return out, nil
		}
		if err != nil {
			return LLM{}, fmt.Errorf("bootstrap: gemini client: %w", err)
		}
		out.Client = client
		out.Close = client.Close
	case "bedrock":
		model := strings.TrimSpace(cfg.BedrockModelID)
		if model == "" {
			logger.Warn("bedrock model id empty; advisor disabled")
			return out, nil
		}
		client, err := advisor.NewBedrockClient(bedrockruntime.NewFromConfig(awsCfg), model)
		if err != nil {
			return LLM{}, fmt.Errorf("bootstrap: bedrock client: %w", err)
		}
		out.Client = client
	default:
		return LLM{}, fmt.Errorf("bootstrap: unknown advisor provider %q", cfg.AdvisorProvider)
	}
	logger.Info("advisor enabled", "provider", cfg.AdvisorProvider)
	return out, nil
}
