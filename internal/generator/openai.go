package generator

import (
	"context"

	"github.com/nguyentantai21042004/notescribe/internal/apperr"
	"github.com/nguyentantai21042004/notescribe/internal/config"
	"github.com/nguyentantai21042004/notescribe/internal/logger"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openAIGenerator struct {
	client    openai.Client
	model     string
	maxTokens int
	logger    logger.Logger
}

// newOpenAI reads OPENAI_API_KEY from the environment. BaseURL points the
// client at any OpenAI-compatible gateway.
func newOpenAI(cfg *config.Config, log logger.Logger, opts ...option.RequestOption) *openAIGenerator {
	if cfg.Generator.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.Generator.BaseURL))
	}
	return &openAIGenerator{
		client:    openai.NewClient(opts...),
		model:     cfg.Generator.ModelID,
		maxTokens: cfg.Generator.MaxTokens,
		logger:    log,
	}
}

func (g *openAIGenerator) Name() string { return config.ProviderOpenAI }

func (g *openAIGenerator) Generate(ctx context.Context, prompt string) (*Reply, error) {
	g.logger.Debug(ctx, "Calling openai model %s", g.model)

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(g.model),
		Messages:            []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		MaxCompletionTokens: openai.Int(int64(g.maxTokens)),
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindService, err, "chat completion with %s", g.model)
	}

	if len(completion.Choices) == 0 {
		return &Reply{ID: completion.ID, Model: completion.Model}, nil
	}
	choice := completion.Choices[0]
	return textReply(completion.ID, completion.Model, choice.FinishReason, choice.Message.Content), nil
}
