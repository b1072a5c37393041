package processor

import (
	"github.com/nguyentantai21042004/notescribe/internal/config"
	"github.com/nguyentantai21042004/notescribe/internal/generator"
	"github.com/nguyentantai21042004/notescribe/internal/logger"
	"github.com/nguyentantai21042004/notescribe/internal/notewriter"
	"github.com/nguyentantai21042004/notescribe/internal/transcriber"
)

type implProcessor struct {
	cfg         *config.Config
	transcriber transcriber.Transcriber
	generator   generator.Generator
	writer      notewriter.Writer
	logger      logger.Logger
}

// New creates a Processor. gen may be nil when only transcripts are needed;
// requesting a note without one fails with a CONFIG_ERROR.
func New(cfg *config.Config, t transcriber.Transcriber, gen generator.Generator, w notewriter.Writer, log logger.Logger) Processor {
	return &implProcessor{
		cfg:         cfg,
		transcriber: t,
		generator:   gen,
		writer:      w,
		logger:      log,
	}
}
