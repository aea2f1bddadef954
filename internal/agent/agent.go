package agent

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/Vrajesh-Sharma/Blog-Agent/provider"
	"github.com/Vrajesh-Sharma/Blog-Agent/utils"
)

// Result is the outcome of one agent invocation: a parsed mapping, raw text,
// or an error record. Exactly one of Data/Text is populated on success.
type Result struct {
	Data      map[string]interface{}
	Text      string
	Err       string
	Exhausted bool // retry budget spent on rate-limit errors
}

// IsError reports whether the invocation failed.
func (r Result) IsError() bool { return r.Err != "" }

// Agent is a named, configured binding to one model and instruction set,
// optionally augmented with callable tools. Immutable after construction.
type Agent struct {
	name        string
	model       string
	instruction string
	tools       []provider.Tool
	strictJSON  bool
	prov        provider.Provider
	retrier     *Retrier
	logger      *log.Logger
}

// New constructs an agent. Tool use and strict-JSON output are mutually
// exclusive: attaching tools disables strict-JSON enforcement, since the
// underlying API does not support both on one exchange.
func New(name string, prov provider.Provider, model, instruction string, tools []provider.Tool, strictJSON bool, retrier *Retrier) *Agent {
	if len(tools) > 0 {
		strictJSON = false
	}
	if retrier == nil {
		retrier = NewRetrier(0, 0, 0)
	}
	return &Agent{
		name:        name,
		model:       model,
		instruction: instruction,
		tools:       tools,
		strictJSON:  strictJSON,
		prov:        prov,
		retrier:     retrier,
		logger:      log.New(log.Writer(), "[AGENT] ", log.LstdFlags),
	}
}

// Name returns the agent's name.
func (a *Agent) Name() string { return a.name }

// Act executes the agent's task for the given context mapping. The session
// and memory refs are passed through untouched for callers that track them.
// Failures never propagate as errors: they are converted to an error Result.
func (a *Agent) Act(ctx context.Context, inputs map[string]interface{}, sessionRef, memoryRef interface{}) Result {
	_ = sessionRef
	_ = memoryRef

	prompt := "Task Context: " + marshalInputs(inputs)
	a.logger.Printf("%s input: %s", a.name, utils.Preview(prompt, 200))

	raw, err := a.retrier.Do(ctx, func() (string, error) {
		return a.prov.Complete(ctx, provider.Request{
			Model:       a.model,
			Instruction: a.instruction,
			Prompt:      prompt,
			Tools:       a.tools,
			ForceJSON:   a.strictJSON,
		})
	})
	if err != nil {
		a.logger.Printf("%s error: %v", a.name, err)
		return Result{Err: err.Error(), Exhausted: IsExhausted(err)}
	}
	a.logger.Printf("%s result: %s", a.name, utils.Preview(raw, 200))

	if a.strictJSON {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return Result{Err: "invalid JSON from " + a.name + ": " + err.Error()}
		}
		return Result{Data: data}
	}
	if len(a.tools) > 0 {
		// tool-augmented answers often wrap the JSON payload in prose;
		// best-effort extraction, raw text stays a valid result
		if span := ExtractJSON(raw); span != "" {
			var data map[string]interface{}
			if err := json.Unmarshal([]byte(span), &data); err == nil {
				return Result{Data: data}
			}
		}
	}
	return Result{Text: raw}
}

// marshalInputs renders the task context as JSON, stringifying any values
// the encoder cannot handle.
func marshalInputs(inputs map[string]interface{}) string {
	b, err := json.Marshal(inputs)
	if err == nil {
		return string(b)
	}
	safe := make(map[string]interface{}, len(inputs))
	for k, v := range inputs {
		if _, err := json.Marshal(v); err != nil {
			safe[k] = utils.Str(v)
		} else {
			safe[k] = v
		}
	}
	b, _ = json.Marshal(safe)
	return string(b)
}

// ExtractJSON returns the substring spanning the first '{' through the last
// '}' of s, or "" when no such span exists.
func ExtractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}
