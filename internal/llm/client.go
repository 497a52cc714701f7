// Package llm wraps the OpenAI chat-completion API behind a small Completer
// contract so the pipeline and metadata extraction can be tested with fakes.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"deedflow/internal/logger"
)

// maxCompletionTokens is the token budget for every completion call.
const maxCompletionTokens = 2000

// DefaultModel is used when no model is configured.
const DefaultModel = openai.GPT3Dot5Turbo

// ErrCompletionFailed is returned on transport or service errors, and when
// the service returns no completion choices.
var ErrCompletionFailed = errors.New("completion request failed")

// Message is one role-tagged prompt message.
type Message struct {
	Role    string
	Content string
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: openai.ChatMessageRoleSystem, Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: openai.ChatMessageRoleUser, Content: content}
}

// Completer is the text-completion contract consumed by correction and
// metadata extraction.
type Completer interface {
	// Complete sends the messages and returns the first completion's
	// content, whitespace-trimmed.
	Complete(ctx context.Context, messages []Message) (string, error)
}

// OpenAIClient implements Completer against the OpenAI chat completion API.
type OpenAIClient struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewOpenAIClient creates a client for the given API key and model.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = DefaultModel
	}
	return NewOpenAIClientWithClient(openai.NewClient(apiKey), model)
}

// NewOpenAIClientWithClient creates a client with an explicit OpenAI client
// (for testing against a stub server via openai.ClientConfig.BaseURL).
func NewOpenAIClientWithClient(client *openai.Client, model string) *OpenAIClient {
	return &OpenAIClient{
		client: client,
		model:  model,
		log:    logger.WithComponent("openai"),
	}
}

// Complete sends a chat completion request and returns the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, messages []Message) (string, error) {
	const op = "Complete"

	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  chatMessages,
		MaxTokens: maxCompletionTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, ErrCompletionFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w: no completion choices returned", op, ErrCompletionFailed)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.log.Debug().
		Str("model", c.model).
		Int("messages", len(messages)).
		Int("response_length", len(content)).
		Msg("Completion received")

	return content, nil
}
