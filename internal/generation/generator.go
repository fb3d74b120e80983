// Package generation wraps the external text-generation services the
// ingestion pipeline calls. Two providers are supported: any
// OpenAI-compatible endpoint and Azure OpenAI deployments.
package generation

import "context"

// CompletionRequest carries a system/user prompt pair plus generation
// parameters for one completion call.
type CompletionRequest struct {
	System      string
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// TextGenerator produces a single text completion for a request
type TextGenerator interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
