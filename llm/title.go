package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// titleSystemPrompt instructs the model to produce a short window title
const titleSystemPrompt = "You are a helpful assistant that generates short, concise titles for conversations. " +
	"The title should be 3-8 words, descriptive, and capture the main topic. Only output the title, nothing else."

// TitleGenerator produces a short title for a conversation using a
// non-streaming completion against the same endpoint and credential as the
// streaming client
type TitleGenerator struct {
	settings Settings
	baseURL  string
	model    string
}

// NewTitleGenerator creates a title generator
func NewTitleGenerator(settings Settings, baseURL, model string) *TitleGenerator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	return &TitleGenerator{
		settings: settings,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		model:    model,
	}
}

// GenerateTitle generates a short title from the first few conversation
// messages. Image attachments are not forwarded.
func (g *TitleGenerator) GenerateTitle(ctx context.Context, conversation []Message) (string, error) {
	apiKey := g.settings.APIKey()
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}

	// Build the client per call so credential changes apply immediately
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = g.baseURL
	client := openai.NewClientWithConfig(config)

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: titleSystemPrompt,
		},
	}

	// Limit context to the first few messages to keep the call cheap
	maxMessages := 4
	for i, msg := range conversation {
		if i >= maxMessages {
			break
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: "Based on the above conversation, generate a short title (3-8 words):",
	})

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     g.model,
		Messages:  messages,
		MaxTokens: 60,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate title: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from model")
	}

	return cleanTitle(resp.Choices[0].Message.Content), nil
}

// cleanTitle cleans up a generated title by removing quotes and extra whitespace
func cleanTitle(title string) string {
	title = strings.TrimSpace(title)
	title = strings.Trim(title, "\"'")
	title = strings.TrimSpace(title)

	if len(title) > 100 {
		title = title[:100] + "..."
	}

	if title == "" {
		title = "New Chat"
	}

	return title
}
