package provider

import (
	"context"
	"errors"

	"github.com/Vrajesh-Sharma/Blog-Agent/config"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI    Client = "openai"
	Anthropic Client = "anthropic"
	Gemini    Client = "gemini"
)

// Tool is a callable capability exposed to the model for the duration of one
// exchange. Parameters is a JSON schema describing the arguments.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
	Call        func(args map[string]interface{}) (map[string]interface{}, error)
}

// Request describes one completion exchange.
type Request struct {
	Model       string
	Instruction string
	Prompt      string
	Tools       []Tool
	ForceJSON   bool
}

// Provider is the interface that all LLM implementations must satisfy.
// Complete runs one full exchange: when the request carries tools, the
// provider executes model-issued tool calls itself and feeds the results
// back into the same exchange before returning the final text.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// NewProvider creates a new LLM client based on the provided configuration
func NewProvider(client Client, cfg config.OpenAIConfig, toolTurnLimit int) (Provider, error) {
	switch client {
	case OpenAI:
		if cfg.APIKey == "" {
			return nil, errors.New("OPENAI_API_KEY not set")
		}
		return NewOpenAIClient(cfg, toolTurnLimit), nil
	case Anthropic:
		return nil, errors.New("anthropic client not implemented yet")
	case Gemini:
		return nil, errors.New("gemini client not implemented yet")
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
