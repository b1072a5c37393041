package generator

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/nguyentantai21042004/notescribe/internal/apperr"
	"github.com/nguyentantai21042004/notescribe/internal/config"
	"github.com/nguyentantai21042004/notescribe/internal/logger"
)

// bedrockInvoker is the slice of the bedrockruntime client we use.
type bedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type bedrockGenerator struct {
	client    bedrockInvoker
	modelID   string
	maxTokens int
	version   string
	logger    logger.Logger
}

type anthropicMessage struct {
	Role    string    `json:"role"`
	Content []Segment `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	ID         string    `json:"id"`
	Model      string    `json:"model"`
	StopReason string    `json:"stop_reason"`
	Content    []Segment `json:"content"`
}

func newBedrock(ctx context.Context, cfg *config.Config, log logger.Logger) (*bedrockGenerator, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, err, "load aws config")
	}

	return &bedrockGenerator{
		client:    bedrockruntime.NewFromConfig(awsCfg),
		modelID:   cfg.Generator.ModelID,
		maxTokens: cfg.Generator.MaxTokens,
		version:   cfg.Generator.AnthropicVersion,
		logger:    log,
	}, nil
}

func (g *bedrockGenerator) Name() string { return config.ProviderBedrock }

// Generate invokes the model with a single user message holding the prompt.
func (g *bedrockGenerator) Generate(ctx context.Context, prompt string) (*Reply, error) {
	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: g.version,
		MaxTokens:        g.maxTokens,
		Messages: []anthropicMessage{{
			Role:    "user",
			Content: []Segment{{Type: SegmentText, Text: prompt}},
		}},
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindService, err, "encode bedrock request")
	}

	g.logger.Debug(ctx, "Invoking bedrock model %s (%d bytes)", g.modelID, len(body))

	out, err := g.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(g.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindService, err, "invoke bedrock model %s", g.modelID)
	}

	return parseAnthropicReply(out.Body)
}

func parseAnthropicReply(body []byte) (*Reply, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperr.Wrap(apperr.KindMalformedReply, err, "decode bedrock response")
	}
	return &Reply{
		ID:         resp.ID,
		Model:      resp.Model,
		StopReason: resp.StopReason,
		Content:    resp.Content,
	}, nil
}
