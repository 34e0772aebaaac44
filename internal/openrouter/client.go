// internal/openrouter/client.go
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mateusz-szafarz/10x-cards/internal/model"
)

const (
	defaultBaseURL    = "https://openrouter.ai/api/v1"
	defaultModel      = "google/gemma-3-27b-it:free"
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 2

	// maxRetryWait caps the wait before any retry. A Retry-After above this
	// fails immediately instead of blocking the caller.
	maxRetryWait = 10 * time.Second

	minProposals = 4
	maxProposals = 8
)

const systemPrompt = `You are an expert educational content creator specializing in creating high-quality flashcards for spaced repetition learning. Your goal is to extract key concepts from the provided text and transform them into clear, concise question-answer pairs that facilitate effective learning.

Guidelines:
- Focus each flashcard on a single concept or fact
- Write clear, specific questions that aren't ambiguous
- Provide complete, accurate answers
- Avoid simple yes/no questions when possible
- Cover different cognitive levels: definitions, applications, relationships, examples
- Ensure questions are self-contained (don't reference "the text" or "above")
- Generate between 4 and 8 flashcards based on content richness`

// Config holds the OpenRouter connection settings. Zero values fall back to
// the package defaults.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxRetries  int
	HTTPReferer string
	AppTitle    string
}

// Client talks to the OpenRouter chat-completions API and turns source text
// into flashcard proposals. It is stateless: each call owns its own timeout
// and retry state, so a single Client is safe for concurrent use.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	timeout     time.Duration
	maxRetries  int
	httpReferer string
	appTitle    string

	httpClient *http.Client
	logger     *slog.Logger

	// sleep is swapped out in tests to assert backoff without waiting.
	sleep func(time.Duration)
}

func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter: API key is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		timeout:     cfg.Timeout,
		maxRetries:  cfg.MaxRetries,
		httpReferer: cfg.HTTPReferer,
		appTitle:    cfg.AppTitle,
		httpClient:  &http.Client{},
		logger:      logger,
		sleep:       time.Sleep,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.model == "" {
		c.model = defaultModel
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.maxRetries < 0 {
		c.maxRetries = defaultMaxRetries
	}
	if c.appTitle == "" {
		c.appTitle = "10x-cards"
	}
	return c, nil
}

// ModelName returns the model identifier this client is configured to use.
func (c *Client) ModelName() string {
	return c.model
}

// GenerateProposals sends sourceText to the configured model and returns the
// parsed flashcard proposals. The caller is responsible for length
// validation; only emptiness is checked here.
func (c *Client) GenerateProposals(ctx context.Context, sourceText string) ([]model.FlashcardProposal, error) {
	if sourceText == "" {
		return nil, &InvalidRequestError{Message: "source text must not be empty"}
	}

	c.logger.Debug("OpenRouter request started",
		slog.String("model", c.model),
		slog.Int("text_length", len(sourceText)),
	)

	body, err := json.Marshal(c.buildPayload(sourceText))
	if err != nil {
		return nil, &InvalidRequestError{Message: fmt.Sprintf("failed to marshal request: %v", err)}
	}

	resp, err := c.execute(ctx, body)
	if err != nil {
		return nil, err
	}

	proposals, err := parseResponse(resp)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("OpenRouter response received", slog.Int("proposals", len(proposals)))
	return proposals, nil
}

// chat-completions wire types.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat any           `json:"response_format"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	TopP           float64       `json:"top_p"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type proposalsPayload struct {
	Flashcards []model.FlashcardProposal `json:"flashcards"`
}

func (c *Client) buildPayload(sourceText string) chatRequest {
	// The JSON schema is passed to the provider so the model output is
	// structurally constrained before we ever see it.
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"flashcards": map[string]any{
				"type":        "array",
				"description": "Array of generated flashcard proposals",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"front": map[string]any{"type": "string", "description": "The question or prompt for the flashcard"},
						"back":  map[string]any{"type": "string", "description": "The answer or explanation for the flashcard"},
					},
					"required":             []string{"front", "back"},
					"additionalProperties": false,
				},
				"minItems": minProposals,
				"maxItems": maxProposals,
			},
		},
		"required":             []string{"flashcards"},
		"additionalProperties": false,
	}

	return chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Based on the following text, generate flashcards following the guidelines provided.\n\nText:\n" + sourceText},
		},
		ResponseFormat: map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   "flashcard_proposals",
				"strict": true,
				"schema": schema,
			},
		},
		Temperature: 0.4,
		MaxTokens:   2000,
		TopP:        1.0,
	}
}

// execute runs the HTTP call with per-attempt timeout and the retry policy:
// 429 and 5xx are retried up to maxRetries with 2^attempt seconds of backoff,
// an integer Retry-After header overriding the computed wait. Waits above
// maxRetryWait fail immediately with a RateLimitError carrying the intended
// wait instead of blocking.
func (c *Client) execute(ctx context.Context, body []byte) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		respBody, status, header, err := c.doRequest(ctx, body)
		if err != nil {
			return nil, err
		}
		if status == http.StatusOK {
			return respBody, nil
		}

		if (status == http.StatusTooManyRequests || status >= 500) && attempt < c.maxRetries {
			wait := time.Duration(1<<attempt) * time.Second
			retryAfter := 0
			if v := header.Get("Retry-After"); v != "" {
				// Seconds granularity only; a malformed header falls back to
				// exponential backoff rather than failing the call.
				if secs, perr := strconv.Atoi(v); perr == nil && secs >= 0 {
					wait = time.Duration(secs) * time.Second
					retryAfter = secs
				}
			}
			if wait > maxRetryWait {
				return nil, &RateLimitError{
					Message:    fmt.Sprintf("rate limit exceeded: retry after %ds exceeds maximum wait time", int(wait.Seconds())),
					RetryAfter: retryAfter,
				}
			}
			c.logger.Warn("OpenRouter retrying",
				slog.Int("attempt", attempt+1),
				slog.Int("max_retries", c.maxRetries),
				slog.Int("status", status),
				slog.Duration("wait", wait),
			)
			c.sleep(wait)
			continue
		}

		switch {
		case status == http.StatusUnauthorized:
			return nil, &AuthenticationError{Message: "invalid or missing API key"}
		case status == http.StatusForbidden:
			return nil, &AuthorizationError{Message: "insufficient permissions"}
		case status == http.StatusTooManyRequests:
			retryAfter := 0
			if secs, perr := strconv.Atoi(header.Get("Retry-After")); perr == nil {
				retryAfter = secs
			}
			return nil, &RateLimitError{Message: "rate limit exceeded", RetryAfter: retryAfter}
		case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
			return nil, &InvalidRequestError{Message: fmt.Sprintf("invalid request: HTTP %d", status)}
		case status >= 500:
			return nil, &ServerError{Message: fmt.Sprintf("server error: HTTP %d", status), StatusCode: status}
		default:
			return nil, &NetworkError{Message: fmt.Sprintf("unexpected HTTP status %d", status)}
		}
	}
}

// doRequest performs a single attempt under the configured timeout.
func (c *Client) doRequest(ctx context.Context, body []byte) ([]byte, int, http.Header, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, 0, nil, &NetworkError{Message: fmt.Sprintf("failed to create request: %v", err), Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.httpReferer != "" {
		req.Header.Set("HTTP-Referer", c.httpReferer)
	}
	req.Header.Set("X-Title", c.appTitle)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Distinguish the per-attempt timeout from other transport failures.
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, 0, nil, &TimeoutError{Message: "request timeout exceeded"}
		}
		if ctx.Err() != nil {
			return nil, 0, nil, ctx.Err()
		}
		return nil, 0, nil, &NetworkError{Message: fmt.Sprintf("network error: %v", err), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, nil, &NetworkError{Message: fmt.Sprintf("failed to read response: %v", err), Err: err}
	}
	return respBody, resp.StatusCode, resp.Header, nil
}

// parseResponse validates the provider envelope, then parses and validates
// the model-generated payload. The two layers are independent because the
// provider's outer contract and the model's inner content have different
// trust levels and failure modes.
func parseResponse(raw []byte) ([]model.FlashcardProposal, error) {
	var envelope chatResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, invalidResponsef("failed to parse API response: %v", err)
	}
	if len(envelope.Choices) == 0 {
		return nil, invalidResponsef("response must contain at least one choice")
	}
	content := envelope.Choices[0].Message.Content
	if content == nil {
		return nil, invalidResponsef("choice message content must be a string")
	}

	var payload proposalsPayload
	if err := json.Unmarshal([]byte(*content), &payload); err != nil {
		return nil, invalidResponsef("failed to parse response content as JSON: %v", err)
	}
	if len(payload.Flashcards) < 1 || len(payload.Flashcards) > maxProposals {
		return nil, invalidResponsef("expected 1-%d flashcards, got %d", maxProposals, len(payload.Flashcards))
	}
	for i, p := range payload.Flashcards {
		if p.Front == "" || p.Back == "" {
			return nil, invalidResponsef("flashcard %d has an empty front or back", i)
		}
	}
	return payload.Flashcards, nil
}
