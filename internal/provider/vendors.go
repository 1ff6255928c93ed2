package provider

import (
	"context"

	"github.com/sciados/campaign-engine/pkg/anthropic"
	"github.com/sciados/campaign-engine/pkg/groq"
	"github.com/sciados/campaign-engine/pkg/openai"
)

// AnthropicCompleter adapts an anthropic.Client to the ChatCompleter
// interface.
type AnthropicCompleter struct {
	Client anthropic.Client
}

func (a AnthropicCompleter) Complete(ctx context.Context, model, system, prompt string, maxTokens int) (*Completion, error) {
	resp, err := a.Client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     model,
		MaxTokens: int64(maxTokens),
		System:    system,
		Prompt:    prompt,
	})
	if err != nil {
		return nil, err
	}
	return &Completion{
		Text:         resp.Text,
		InputTokens:  int(resp.Usage.InputTokens),
		OutputTokens: int(resp.Usage.OutputTokens),
	}, nil
}

// OpenAICompleter adapts an openai.Client to the ChatCompleter interface.
type OpenAICompleter struct {
	Client openai.Client
}

func (o OpenAICompleter) Complete(ctx context.Context, model, system, prompt string, maxTokens int) (*Completion, error) {
	resp, err := o.Client.CreateChatCompletion(ctx, openai.ChatRequest{
		Model:     model,
		System:    system,
		Prompt:    prompt,
		MaxTokens: int64(maxTokens),
	})
	if err != nil {
		return nil, err
	}
	return &Completion{
		Text:         resp.Text,
		InputTokens:  int(resp.PromptTokens),
		OutputTokens: int(resp.CompletionTokens),
	}, nil
}

// GroqCompleter adapts a groq.Client to the ChatCompleter interface.
type GroqCompleter struct {
	Client groq.Client
}

func (g GroqCompleter) Complete(ctx context.Context, model, system, prompt string, maxTokens int) (*Completion, error) {
	messages := make([]groq.Message, 0, 2)
	if system != "" {
		messages = append(messages, groq.Message{Role: "system", Content: system})
	}
	messages = append(messages, groq.Message{Role: "user", Content: prompt})

	req := groq.ChatCompletionRequest{Model: model, Messages: messages}
	if maxTokens > 0 {
		req.MaxTokens = &maxTokens
	}

	resp, err := g.Client.ChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return &Completion{}, nil
	}
	return &Completion{
		Text:         resp.Choices[0].Message.Content,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}
