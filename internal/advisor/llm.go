package advisor

import "context"

// Request is a single stateless completion: one system instruction and one
// user prompt, no history.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int32
}

type TokenUsage struct {
	InputTokens  int32
	OutputTokens int32
	TotalTokens  int32
}

type Response struct {
	Text       string
	Usage      TokenUsage
	StopReason string
}

// LLMClient produces a completion for one request.
type LLMClient interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
