package generator

import (
	"context"
	"os"

	"github.com/nguyentantai21042004/notescribe/internal/apperr"
	"github.com/nguyentantai21042004/notescribe/internal/config"
	"github.com/nguyentantai21042004/notescribe/internal/logger"
	"google.golang.org/genai"
)

type geminiGenerator struct {
	client    *genai.Client
	model     string
	maxTokens int
	logger    logger.Logger
}

// newGemini uses Vertex AI in cfg.Region when a project is configured,
// otherwise the Gemini API with GEMINI_API_KEY.
func newGemini(ctx context.Context, cfg *config.Config, log logger.Logger) (*geminiGenerator, error) {
	clientCfg := &genai.ClientConfig{}
	if cfg.Generator.Project != "" {
		clientCfg.Backend = genai.BackendVertexAI
		clientCfg.Project = cfg.Generator.Project
		clientCfg.Location = cfg.Region
	} else {
		clientCfg.Backend = genai.BackendGeminiAPI
		clientCfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Generator.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Generator.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, err, "create gemini client")
	}

	return &geminiGenerator{
		client:    client,
		model:     cfg.Generator.ModelID,
		maxTokens: cfg.Generator.MaxTokens,
		logger:    log,
	}, nil
}

func (g *geminiGenerator) Name() string { return config.ProviderGemini }

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (*Reply, error) {
	g.logger.Debug(ctx, "Calling gemini model %s", g.model)

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: int32(g.maxTokens),
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindService, err, "generate content with %s", g.model)
	}

	reply := &Reply{ID: result.ResponseID, Model: result.ModelVersion}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return reply, nil
	}

	candidate := result.Candidates[0]
	reply.StopReason = string(candidate.FinishReason)
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Text == "" || part.Thought {
			continue
		}
		reply.Content = append(reply.Content, Segment{Type: SegmentText, Text: part.Text})
	}
	return reply, nil
}
