package generator

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/nguyentantai21042004/notescribe/internal/apperr"
	"github.com/nguyentantai21042004/notescribe/internal/config"
	"github.com/nguyentantai21042004/notescribe/internal/logger"
	"github.com/ollama/ollama/api"
)

type ollamaGenerator struct {
	client    *api.Client
	model     string
	maxTokens int
	logger    logger.Logger
}

func newOllama(cfg *config.Config, log logger.Logger) (*ollamaGenerator, error) {
	base, err := url.Parse(cfg.Generator.BaseURL)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, err, "parse ollama base_url")
	}
	return &ollamaGenerator{
		client:    api.NewClient(base, http.DefaultClient),
		model:     cfg.Generator.ModelID,
		maxTokens: cfg.Generator.MaxTokens,
		logger:    log,
	}, nil
}

func (g *ollamaGenerator) Name() string { return config.ProviderOllama }

func (g *ollamaGenerator) Generate(ctx context.Context, prompt string) (*Reply, error) {
	stream := false
	req := &api.ChatRequest{
		Model:    g.model,
		Messages: []api.Message{{Role: "user", Content: prompt}},
		Stream:   &stream,
		Options:  map[string]interface{}{"num_predict": g.maxTokens},
	}

	g.logger.Debug(ctx, "Calling ollama model %s", g.model)

	var (
		text  strings.Builder
		model string
	)
	err := g.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		model = resp.Model
		text.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindService, err, "ollama chat with %s", g.model)
	}

	if text.Len() == 0 {
		return &Reply{Model: model}, nil
	}
	return textReply("", model, "", text.String()), nil
}
