package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/notescribe/internal/apperr"
	"github.com/nguyentantai21042004/notescribe/internal/audiofile"
	"github.com/nguyentantai21042004/notescribe/internal/prompt"
)

// Process validates, transcribes, then generates and saves each requested
// note. The first failure aborts the run; the partial result is returned
// alongside the error.
func (p *implProcessor) Process(ctx context.Context, req Request) (*Result, error) {
	startTime := time.Now()
	res := &Result{RunID: uuid.NewString()}
	kinds := req.Kinds()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting run %s: %s", res.RunID, req.AudioPath)
	p.logger.Info(ctx, "Notes requested: %s", kindList(kinds))
	p.logger.Info(ctx, "========================================")

	// Step 1: Validate input
	if err := audiofile.Check(req.AudioPath); err != nil {
		return p.finish(ctx, res, startTime, err)
	}

	// Step 2: Transcribe
	transcript, err := p.transcriber.Transcribe(ctx, req.AudioPath)
	if err != nil {
		return p.finish(ctx, res, startTime, fmt.Errorf("transcribe: %w", err))
	}
	res.Transcript = transcript
	p.logger.Info(ctx, "Transcript ready (%d chars)", len(transcript))

	// Step 3: One note per requested kind
	for _, kind := range kinds {
		label := string(kind)
		if req.TagRunID {
			label += "_" + shortID(res.RunID)
		}

		// a path with an error means the text note reached disk
		path, err := p.writeNote(ctx, kind, label, transcript, req.InstructionsPath)
		if path != "" {
			res.Notes = append(res.Notes, SavedNote{Kind: kind, Path: path})
		}
		if err != nil {
			return p.finish(ctx, res, startTime, fmt.Errorf("generate %s note: %w", kind, err))
		}
	}

	return p.finish(ctx, res, startTime, nil)
}

func (p *implProcessor) ProcessFile(ctx context.Context, path string) error {
	w := p.cfg.Watch
	_, err := p.Process(ctx, Request{
		AudioPath:        path,
		SOAP:             w.SOAP,
		BIRP:             w.BIRP,
		InstructionsPath: w.Instructions,
		TagRunID:         true,
	})
	return err
}

func (p *implProcessor) writeNote(ctx context.Context, kind prompt.Kind, label, transcript, instructionsPath string) (string, error) {
	if p.generator == nil {
		return "", apperr.New(apperr.KindConfig, "no note generator configured")
	}

	text, err := prompt.Build(kind, transcript, instructionsPath)
	if err != nil {
		return "", err
	}

	stepStart := time.Now()
	p.logger.Info(ctx, "Generating %s note with %s", kind.Label(), p.generator.Name())
	reply, err := p.generator.Generate(ctx, text)
	if err != nil {
		return "", err
	}

	body, err := reply.FirstText()
	if err != nil {
		return "", err
	}
	p.logger.Debug(ctx, "%s note generated in %s (stop reason %q)", kind.Label(), time.Since(stepStart), reply.StopReason)

	return p.writer.Save(ctx, label, body)
}

func (p *implProcessor) finish(ctx context.Context, res *Result, startTime time.Time, err error) (*Result, error) {
	res.Elapsed = time.Since(startTime)

	p.logger.Info(ctx, "========================================")
	if err != nil {
		p.logger.Error(ctx, "Run %s failed after %s: %v", res.RunID, res.Elapsed, err)
		for _, n := range res.Notes {
			p.logger.Info(ctx, "Kept %s note: %s", n.Kind.Label(), n.Path)
		}
		p.logger.Info(ctx, "========================================")
		return res, err
	}

	p.logger.Info(ctx, "Run %s completed successfully!", res.RunID)
	for _, n := range res.Notes {
		p.logger.Info(ctx, "%s note: %s", n.Kind.Label(), n.Path)
	}
	p.logger.Info(ctx, "Processing time: %s", res.Elapsed)
	p.logger.Info(ctx, "========================================")
	return res, nil
}

func shortID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}

func kindList(kinds []prompt.Kind) string {
	if len(kinds) == 0 {
		return "none (transcript only)"
	}
	labels := make([]string, len(kinds))
	for i, k := range kinds {
		labels[i] = k.Label()
	}
	return strings.Join(labels, ", ")
}
