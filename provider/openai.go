package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"context"

	"github.com/Vrajesh-Sharma/Blog-Agent/config"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// openAIClient implements Provider using OpenAI's chat completions API.
type openAIClient struct {
	apiKey        string
	baseURL       string
	model         string
	temperature   float64
	maxTokens     int
	toolTurnLimit int
	httpClient    *http.Client
}

// Message represents a message in a conversation
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a model-issued request to run one of the attached tools.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the tool name and its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type toolDef struct {
	Type     string      `json:"type"`
	Function functionDef `json:"function"`
}

type functionDef struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// request represents a request to the OpenAI API
type request struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Tools          []toolDef       `json:"tools,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

// response represents a response from the OpenAI API
type response struct {
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(cfg config.OpenAIConfig, toolTurnLimit int) Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if toolTurnLimit <= 0 {
		toolTurnLimit = 4
	}
	return &openAIClient{
		apiKey:        cfg.APIKey,
		baseURL:       baseURL,
		model:         cfg.CompletionModel,
		temperature:   cfg.Temperature,
		maxTokens:     cfg.MaxTokens,
		toolTurnLimit: toolTurnLimit,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

// Complete runs one exchange against the chat completions endpoint. Tool
// calls issued by the model are executed here and their results appended to
// the conversation until the model answers with plain content or the tool
// turn limit is hit.
func (c *openAIClient) Complete(ctx context.Context, req Request) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	messages := []Message{}
	if req.Instruction != "" {
		messages = append(messages, Message{Role: "system", Content: req.Instruction})
	}
	messages = append(messages, Message{Role: "user", Content: req.Prompt})

	var tools []toolDef
	byName := map[string]Tool{}
	for _, t := range req.Tools {
		tools = append(tools, toolDef{Type: "function", Function: functionDef{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		}})
		byName[t.Name] = t
	}

	var format *responseFormat
	if req.ForceJSON && len(tools) == 0 {
		format = &responseFormat{Type: "json_object"}
	}

	for turn := 0; ; turn++ {
		msg, err := c.sendRequest(ctx, request{
			Model:          model,
			Messages:       messages,
			Temperature:    c.temperature,
			MaxTokens:      c.maxTokens,
			Tools:          tools,
			ResponseFormat: format,
		})
		if err != nil {
			return "", err
		}
		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}
		if turn >= c.toolTurnLimit {
			return "", fmt.Errorf("tool turn limit (%d) exceeded", c.toolTurnLimit)
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			messages = append(messages, c.runToolCall(byName, call))
		}
	}
}

// runToolCall executes one tool call and wraps the outcome as a tool message.
// Tool failures are reported back to the model rather than failing the
// exchange, so the model can recover or answer without the tool.
func (c *openAIClient) runToolCall(byName map[string]Tool, call ToolCall) Message {
	reply := func(v interface{}) Message {
		b, err := json.Marshal(v)
		if err != nil {
			b = []byte(fmt.Sprintf(`{"error":%q}`, err.Error()))
		}
		return Message{Role: "tool", ToolCallID: call.ID, Content: string(b)}
	}

	tool, ok := byName[call.Function.Name]
	if !ok {
		return reply(map[string]interface{}{"error": "unknown tool: " + call.Function.Name})
	}
	var args map[string]interface{}
	if call.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return reply(map[string]interface{}{"error": "bad tool arguments: " + err.Error()})
		}
	}
	out, err := tool.Call(args)
	if err != nil {
		return reply(map[string]interface{}{"error": err.Error()})
	}
	return reply(out)
}

// sendRequest sends a request to the OpenAI API
func (c *openAIClient) sendRequest(ctx context.Context, body request) (Message, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return Message{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Message{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// include status and a slice of the body so callers can classify
		// rate-limit and quota errors from the text
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Message{}, fmt.Errorf("OpenAI status %d: %s", resp.StatusCode, string(b))
	}

	var openaiResp response
	if err := json.NewDecoder(resp.Body).Decode(&openaiResp); err != nil {
		return Message{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if openaiResp.Error != nil {
		return Message{}, fmt.Errorf("OpenAI error: %s", openaiResp.Error.Message)
	}
	if len(openaiResp.Choices) == 0 {
		return Message{}, fmt.Errorf("no choices in response")
	}
	return openaiResp.Choices[0].Message, nil
}
