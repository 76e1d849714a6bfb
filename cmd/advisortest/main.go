// Command advisortest sends one question to the configured advisor model
// and prints the reply, for checking provider credentials by hand.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/wolfman30/jwbeauty-studio/cmd/mainconfig"
	"github.com/wolfman30/jwbeauty-studio/internal/advisor"
	"github.com/wolfman30/jwbeauty-studio/internal/app/bootstrap"
	appconfig "github.com/wolfman30/jwbeauty-studio/internal/config"
	"github.com/wolfman30/jwbeauty-studio/pkg/logging"
)

const defaultQuestion = "What is the difference between a hydrafacial and a classic facial?"

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	question := questionFrom(os.Args[1:])
	if err := run(ctx, cfg, question, logger); err != nil {
		fmt.Printf("advisor error: %v\n", err)
		os.Exit(1)
	}
}

func questionFrom(args []string) string {
	if q := strings.TrimSpace(strings.Join(args, " ")); q != "" {
		return q
	}
	return defaultQuestion
}

func run(ctx context.Context, cfg *appconfig.Config, question string, logger *logging.Logger) error {
	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("load AWS config: %w", err)
	}
	llm, err := bootstrap.BuildLLM(ctx, cfg, awsCfg, logger)
	if err != nil {
		return err
	}
	defer llm.Close()
	if llm.Client == nil {
		return fmt.Errorf("provider %q has no credentials", llm.Provider)
	}

	fmt.Printf("Provider: %s\nQuestion: %s\n\n", llm.Provider, question)
	start := time.Now()
	resp, err := llm.Client.Complete(ctx, advisor.Request{
		System:    advisor.SystemPrompt(cfg.StudioName),
		Prompt:    question,
		MaxTokens: int32(cfg.AdvisorMaxTokens),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Reply (%v):\n%s\n", time.Since(start).Round(time.Millisecond), resp.Text)
	fmt.Printf("Tokens: in=%d, out=%d\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
	return nil
}
