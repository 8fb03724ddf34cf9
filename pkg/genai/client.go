package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mentorconnect/mentorconnect-api/pkg/logger"
	"github.com/mentorconnect/mentorconnect-api/pkg/metrics"
)

// Failure taxonomy surfaced to callers. Each maps to a distinct user-facing
// message at the service boundary.
var (
	// ErrOverloaded indicates the model endpoint is unavailable or shedding load
	ErrOverloaded = errors.New("model service unavailable")

	// ErrUnauthorized indicates invalid or missing model credentials
	ErrUnauthorized = errors.New("model credentials rejected")

	// ErrMalformedResponse indicates the model output could not be parsed as
	// the expected structured shape
	ErrMalformedResponse = errors.New("malformed model response")
)

// maxToolRounds bounds the tool-call loop so a misbehaving model cannot spin
const maxToolRounds = 4

// ToolFunc is a read-only data-fetch callback exposed to the model. Each
// returns a list-of-strings payload.
type ToolFunc func(ctx context.Context) ([]string, error)

// Tool pairs a function definition with its callback
type Tool struct {
	Name        string
	Description string
	Call        ToolFunc
}

// ChatCompleter is the subset of the OpenAI client used here, extracted for
// testing
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client wraps an OpenAI-compatible chat-completions API
type Client struct {
	api   ChatCompleter
	model string
}

// NewClient creates a model client. baseURL overrides the endpoint for
// OpenAI-compatible providers; empty means the default.
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}

	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}
}

// NewClientWithCompleter creates a client over an existing completer (tests)
func NewClientWithCompleter(api ChatCompleter, model string) *Client {
	return &Client{api: api, model: model}
}

// structuredAnswer is the strict response contract: a single JSON object with
// one answer field, no prose outside the object.
type structuredAnswer struct {
	Answer string `json:"answer"`
}

// Ask runs a question through the model with the given tool callbacks and
// returns the answer string from the structured response.
func (c *Client) Ask(ctx context.Context, systemPrompt, question string, tools []Tool) (string, error) {
	start := time.Now()

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: question},
	}

	defs := make([]openai.Tool, 0, len(tools))
	byName := make(map[string]Tool, len(tools))
	for _, t := range tools {
		defs = append(defs, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters: map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
		})
		byName[t.Name] = t
	}

	for round := 0; round < maxToolRounds; round++ {
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    c.model,
			Messages: messages,
			Tools:    defs,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		if err != nil {
			duration := metrics.MeasureDuration(start)
			metrics.GenAIRequestDuration.WithLabelValues("ask", "error").Observe(duration)
			metrics.GenAIRequestTotal.WithLabelValues("ask", "error").Inc()
			logger.LogAPICall("genai", "ask", "error", duration, zap.Error(err))
			return "", classifyAPIError(err)
		}

		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("%w: empty choices", ErrMalformedResponse)
		}
		choice := resp.Choices[0].Message

		if len(choice.ToolCalls) == 0 {
			duration := metrics.MeasureDuration(start)
			metrics.GenAIRequestDuration.WithLabelValues("ask", "success").Observe(duration)
			metrics.GenAIRequestTotal.WithLabelValues("ask", "success").Inc()
			logger.LogAPICall("genai", "ask", "success", duration,
				zap.Int("tool_rounds", round))
			return ParseAnswer(choice.Content)
		}

		// The model asked for grounding data: run each read-only callback and
		// feed the payloads back.
		messages = append(messages, choice)
		for _, call := range choice.ToolCalls {
			messages = append(messages, c.runTool(ctx, byName, call))
		}
	}

	metrics.GenAIRequestTotal.WithLabelValues("ask", "error").Inc()
	return "", fmt.Errorf("%w: tool loop exceeded %d rounds", ErrMalformedResponse, maxToolRounds)
}

// runTool executes a single tool call. Tool failures are non-fatal: the model
// receives an empty list and answers from what it has (best-effort grounding).
func (c *Client) runTool(ctx context.Context, byName map[string]Tool, call openai.ToolCall) openai.ChatCompletionMessage {
	result := []string{}

	tool, ok := byName[call.Function.Name]
	if !ok {
		logger.Warn("Model requested unknown tool", zap.String("tool", call.Function.Name))
		metrics.GenAIToolInvocations.WithLabelValues(call.Function.Name, "unknown").Inc()
	} else {
		values, err := tool.Call(ctx)
		if err != nil {
			logger.Warn("Tool callback failed",
				zap.String("tool", tool.Name),
				zap.Error(err))
			metrics.GenAIToolInvocations.WithLabelValues(tool.Name, "error").Inc()
		} else {
			result = values
			metrics.GenAIToolInvocations.WithLabelValues(tool.Name, "success").Inc()
		}
	}

	payload, _ := json.Marshal(result) //nolint:errcheck // []string always marshals

	return openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		Content:    string(payload),
		ToolCallID: call.ID,
	}
}

// Complete runs a single-shot prompt with no tools and returns the raw text
// response (used by the recommendation flow, a pure passthrough).
func (c *Client) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	start := time.Now()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.GenAIRequestDuration.WithLabelValues("complete", "error").Observe(duration)
		metrics.GenAIRequestTotal.WithLabelValues("complete", "error").Inc()
		logger.LogAPICall("genai", "complete", "error", duration, zap.Error(err))
		return "", classifyAPIError(err)
	}

	metrics.GenAIRequestDuration.WithLabelValues("complete", "success").Observe(duration)
	metrics.GenAIRequestTotal.WithLabelValues("complete", "success").Inc()

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrMalformedResponse)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ParseAnswer extracts the answer field from model output with a layered
// fallback: direct parse, then unwrap-one-level for double-encoded output.
func ParseAnswer(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty content", ErrMalformedResponse)
	}

	var direct structuredAnswer
	if err := json.Unmarshal([]byte(raw), &direct); err == nil && direct.Answer != "" {
		// Some models double-encode: the answer field itself holds a JSON
		// object with the real answer inside.
		var nested structuredAnswer
		if err := json.Unmarshal([]byte(direct.Answer), &nested); err == nil && nested.Answer != "" {
			return nested.Answer, nil
		}
		return direct.Answer, nil
	}

	// Unwrap one level: the whole payload may be a JSON-encoded string that
	// itself contains the object.
	var wrapped string
	if err := json.Unmarshal([]byte(raw), &wrapped); err == nil {
		var inner structuredAnswer
		if err := json.Unmarshal([]byte(wrapped), &inner); err == nil && inner.Answer != "" {
			return inner.Answer, nil
		}
	}

	return "", fmt.Errorf("%w: no answer field in output", ErrMalformedResponse)
}

// IsRetryable reports whether the error is worth retrying (load shedding)
func IsRetryable(err error) bool {
	return errors.Is(err, ErrOverloaded)
}

// classifyAPIError maps transport errors onto the client's failure taxonomy
func classifyAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable:
			return fmt.Errorf("%w: %v", ErrOverloaded, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
	}
	return err
}
