package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"maxagent/config"
	apperrors "maxagent/errors"
	"maxagent/web/types"

	"go.uber.org/zap"
)

type chatRequest struct {
	Model       string               `json:"model"`
	Messages    []types.AgentMessage `json:"messages"`
	MaxTokens   int                  `json:"max_tokens,omitempty"`
	Temperature float64              `json:"temperature"`
}

// chatResponse keeps the choice content raw: the backend may return a plain
// string, a list of typed parts, or nothing at all. Coercion happens after
// decoding.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     *zap.Logger
}

func New(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.LLMRequestTimeout},
		logger:     logger,
	}
}

// Chat performs a chat completion call and returns the coerced reply text plus
// the backend's token-usage count (0 when absent). A non-success status is a
// hard failure; an empty or unusable reply body is not, and falls back to the
// fixed insufficient-information message.
func (c *Client) Chat(ctx context.Context, messages []types.AgentMessage) (string, int, error) {
	reqBody := chatRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", 0, fmt.Errorf("marshal chat request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", strings.TrimRight(c.cfg.OpenAIBaseURL, "/"))

	var resp *http.Response
	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
		if err != nil {
			return "", 0, fmt.Errorf("create chat request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.OpenAIAPIKey)

		r, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			// Do not retry on context cancellation/deadline
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if r.StatusCode == http.StatusServiceUnavailable || r.StatusCode == http.StatusTooManyRequests {
			// Keep the last busy response so its status reaches the caller.
			if attempt == c.cfg.MaxRetries-1 {
				resp = r
				break
			}
			io.Copy(io.Discard, r.Body)
			r.Body.Close()
			c.logger.Warn("Generation backend busy, retrying", zap.Int("attempt", attempt+1), zap.Int("status", r.StatusCode))
			c.backoffSleep(attempt)
			continue
		}
		resp = r
		break
	}
	if resp == nil {
		return "", 0, apperrors.WrapError(apperrors.ErrLLMCommunication, fmt.Sprintf("no response from generation backend: %v", lastErr))
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", 0, apperrors.WrapErrorf(apperrors.ErrLLMCommunication,
			"generation backend status %s", resp.Status)
	}

	var cr chatResponse
	if err := json.Unmarshal(bodyBytes, &cr); err != nil {
		c.logger.Warn("Undecodable chat response body, using fallback reply", zap.Error(err))
		return FallbackReply, 0, nil
	}

	reply := ""
	if len(cr.Choices) > 0 {
		reply = CoerceContent(cr.Choices[0].Message.Content)
	}
	if reply == "" {
		reply = FallbackReply
	}
	return reply, cr.Usage.TotalTokens, nil
}

func (c *Client) backoffSleep(attempt int) {
	// Exponential backoff with a little jitter
	base := c.cfg.RetryDelaySeconds
	if base <= 0 {
		base = time.Second
	}
	d := base * time.Duration(1<<attempt)
	jitter := time.Duration(time.Now().UnixNano() % int64(d/4+1))
	time.Sleep(d + jitter)
}
