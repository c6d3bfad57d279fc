package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

const (
	// DefaultBaseURL is the completion endpoint used when none is configured
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultModel is the model used when none is configured
	DefaultModel = "openai/gpt-5.1"

	// maxOutputTokens caps the response length on every request
	maxOutputTokens = 10000

	// scanBufferSize bounds a single stream line; deltas are small but a
	// full accumulated code block can arrive in one event
	scanBufferSize = 1024 * 1024
)

// chatRequest is the JSON body sent to the completion endpoint
type chatRequest struct {
	Model     string            `json:"model"`
	Messages  []chatMessage     `json:"messages"`
	MaxTokens int               `json:"max_tokens"`
	Stream    bool              `json:"stream"`
	Reasoning *reasoningOptions `json:"reasoning,omitempty"`
}

// chatMessage is one request message. Content is a plain string for
// text-only messages and a []contentPart slice for messages with images.
type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// contentPart is one element of a multimodal content array
type contentPart struct {
	Type     string    `json:"type"` // "text" or "image_url"
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

// imageURL carries an image as a base64 data URL
type imageURL struct {
	URL string `json:"url"`
}

// reasoningOptions configures how much reasoning the model performs
type reasoningOptions struct {
	Effort string `json:"effort"`
}

// streamChunk is one decoded SSE event from the response stream
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content   string `json:"content"`
			Reasoning string `json:"reasoning"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Client streams chat completions from an OpenAI-compatible endpoint.
// At most one request is in flight per client; starting a new Send
// cancels whichever request is still running.
type Client struct {
	settings Settings
	baseURL  string
	model    string
	client   *http.Client

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewClient creates a streaming completion client. The credential and
// system prompt are read from settings at the start of each Send call.
func NewClient(settings Settings, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		settings: settings,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		model:    model,
		client:   &http.Client{},
	}
}

// CancelCurrent cancels the in-flight request, if any. It does not wait
// for the canceled request to observe the signal and is a no-op when
// nothing is running.
func (c *Client) CancelCurrent() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.ctx = nil
		c.cancel = nil
	}
}

// begin cancels any in-flight request and installs this send's handle
func (c *Client) begin() (context.Context, context.CancelFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.ctx = ctx
	c.cancel = cancel
	return ctx, cancel
}

// finish releases this send's handle unless a newer send already replaced it
func (c *Client) finish(ctx context.Context, cancel context.CancelFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cancel()
	if c.ctx == ctx {
		c.ctx = nil
		c.cancel = nil
	}
}

// Send posts the conversation to the completion endpoint and streams the
// response, invoking onProgress with the cumulative content and reasoning
// text after every event that carried a delta. It blocks until the stream
// ends and should be run off the UI thread.
//
// A send superseded by a newer Send, or stopped via CancelCurrent, returns
// ErrCanceled with no further progress callbacks.
func (c *Client) Send(conversation []Message, effort ReasoningEffort, onProgress ProgressFunc) error {
	apiKey := c.settings.APIKey()
	if apiKey == "" {
		return ErrMissingAPIKey
	}
	systemPrompt := c.settings.SystemPrompt()

	ctx, cancel := c.begin()
	defer c.finish(ctx, cancel)

	reqBody, err := json.Marshal(c.buildRequest(conversation, effort, systemPrompt))
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return ErrCanceled
		}
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return c.readStream(ctx, resp.Body, onProgress)
}

// readStream consumes the SSE response body line by line, accumulating the
// content and reasoning channels independently
func (c *Client) readStream(ctx context.Context, body io.Reader, onProgress ProgressFunc) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), scanBufferSize)

	var content, reasoning strings.Builder

	for scanner.Scan() {
		// Cancellation is cooperative, checked once per line
		select {
		case <-ctx.Done():
			return ErrCanceled
		default:
		}

		line := scanner.Text()

		// SSE format: "data: {...}"
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			return nil
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Skip malformed events
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		delta := chunk.Choices[0].Delta
		if delta.Content == "" && delta.Reasoning == "" {
			continue
		}

		content.WriteString(delta.Content)
		reasoning.WriteString(delta.Reasoning)

		if onProgress != nil {
			onProgress(content.String(), reasoning.String())
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return ErrCanceled
		}
		return fmt.Errorf("stream read error: %w", err)
	}

	// Connection closed without the [DONE] sentinel still counts as a
	// complete response
	return nil
}

// buildRequest assembles the request body from the conversation snapshot
func (c *Client) buildRequest(conversation []Message, effort ReasoningEffort, systemPrompt string) chatRequest {
	messages := make([]chatMessage, 0, len(conversation)+1)

	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: RoleSystem, Content: systemPrompt})
	}

	for _, msg := range conversation {
		messages = append(messages, convertMessage(msg))
	}

	req := chatRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: maxOutputTokens,
		Stream:    true,
	}

	if effort != EffortNone {
		req.Reasoning = &reasoningOptions{Effort: string(effort)}
	}

	return req
}

// convertMessage maps a conversation message to the wire format, expanding
// image attachments into a multimodal content array
func convertMessage(msg Message) chatMessage {
	if len(msg.Images) == 0 {
		return chatMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	var parts []contentPart
	if msg.Content != "" {
		parts = append(parts, contentPart{
			Type: "text",
			Text: msg.Content,
		})
	}

	for _, img := range msg.Images {
		parts = append(parts, contentPart{
			Type:     "image_url",
			ImageURL: &imageURL{URL: img.DataURL()},
		})
	}

	return chatMessage{
		Role:    msg.Role,
		Content: parts,
	}
}
