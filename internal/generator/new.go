package generator

import (
	"context"

	"github.com/nguyentantai21042004/notescribe/internal/apperr"
	"github.com/nguyentantai21042004/notescribe/internal/config"
	"github.com/nguyentantai21042004/notescribe/internal/logger"
)

// New creates the Generator selected by cfg.Generator.Provider.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (Generator, error) {
	var (
		g   Generator
		err error
	)

	switch cfg.Generator.Provider {
	case config.ProviderBedrock, "":
		var b *bedrockGenerator
		if b, err = newBedrock(ctx, cfg, log); err == nil {
			g = b
		}
	case config.ProviderGemini:
		var gm *geminiGenerator
		if gm, err = newGemini(ctx, cfg, log); err == nil {
			g = gm
		}
	case config.ProviderOpenAI:
		g = newOpenAI(cfg, log)
	case config.ProviderOllama:
		var o *ollamaGenerator
		if o, err = newOllama(cfg, log); err == nil {
			g = o
		}
	default:
		err = apperr.New(apperr.KindConfig, "unknown generator provider %q", cfg.Generator.Provider)
	}
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "Note generator ready: %s (model %s, max tokens %d)", g.Name(), cfg.Generator.ModelID, cfg.Generator.MaxTokens)
	return g, nil
}
