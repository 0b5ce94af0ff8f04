package chat

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const assistantSystemPrompt = "You are the Smart Promo assistant, a Shopify growth expert. " +
	"Answer merchant questions about Shopify, ecommerce, and the Smart Promo app. " +
	"Keep answers short, use markdown, and never invent product features."

// OpenAIResponder generates answers for messages the knowledge base cannot
// handle. It is optional; without an API key the service sticks to canned
// replies.
type OpenAIResponder struct {
	client *openai.Client
	model  string
}

// NewOpenAIResponder builds a responder. An empty key returns an error so
// callers can fall back to knowledge-base-only mode.
func NewOpenAIResponder(apiKey, model string) (*OpenAIResponder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("chat: openai responder requires an api key")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIResponder{client: openai.NewClient(apiKey), model: model}, nil
}

var _ Responder = (*OpenAIResponder)(nil)

// Respond asks the model for an answer to the visitor's message.
func (r *OpenAIResponder) Respond(ctx context.Context, sessionID, message string) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: assistantSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		User: sessionID,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat: empty completion")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
