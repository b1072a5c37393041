package transcriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/notescribe/internal/config"
	"github.com/nguyentantai21042004/notescribe/internal/logger"
	"github.com/nguyentantai21042004/notescribe/pkg/executor"
)

type cliTranscriber struct {
	cfg      config.TranscriberConfig
	model    string
	tempRoot string
	device   Device
	opts     Options
	executor executor.Executor
	logger   logger.Logger
}

// whisperJSON is the subset of whisper.cpp's -oj output we read.
type whisperJSON struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// Transcribe normalizes the input and runs whisper.cpp over it.
func (t *cliTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout.Duration)
	defer cancel()

	workDir, err := os.MkdirTemp(t.tempRoot, "notescribe-*")
	if err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	wavPath, err := t.normalizeAudio(ctx, audioPath, workDir)
	if err != nil {
		return "", err
	}

	outputPrefix := filepath.Join(workDir, "transcript")

	t.logger.Info(ctx, "Starting transcription on %s/%s with %d threads: %s",
		t.device.Name, t.device.Precision, t.cfg.Threads, audioPath)

	args := t.args(wavPath, outputPrefix)
	if skipped := skippedOptions(t.opts); len(skipped) > 0 {
		t.logger.Debug(ctx, "whisper.cpp has no flag for: %s", strings.Join(skipped, ", "))
	}

	if _, err := t.executor.ExecuteInDir(ctx, workDir, t.cfg.BinaryPath, args...); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("whisper timed out after %s: %w", t.cfg.Timeout.Duration, err)
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("whisper binary %q not found: %w", t.cfg.BinaryPath, err)
		}
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	text, err := readWhisperJSON(outputPrefix + ".json")
	if err != nil {
		return "", err
	}

	t.logger.Info(ctx, "Transcription completed: %d characters", len(text))
	return text, nil
}

// whisperWindow is the fixed audio window whisper.cpp decodes at a time.
const whisperWindow = 30 * time.Second

// args maps Options onto whisper.cpp flags. Language, threads and
// timestamps have flags; the 30 s chunk length is whisper.cpp's own window.
func (t *cliTranscriber) args(wavPath, outputPrefix string) []string {
	args := []string{
		"-m", t.model,
		"-f", wavPath,
		"-l", languageCode(t.opts.Language),
		"-t", strconv.Itoa(t.cfg.Threads),
		"-oj",
		"-of", outputPrefix,
		"-np",
	}
	// -oj always carries segment offsets; -nt drops them from the text
	if !t.opts.ReturnTimestamps {
		args = append(args, "-nt")
	}
	if !t.device.Accelerated() {
		args = append(args, "-ng")
	}
	return args
}

// skippedOptions lists the options whisper.cpp cannot take. It decodes one
// window at a time with no per-window token cap, so max_new_tokens and
// batch_size only reach the whisper-server backend.
func skippedOptions(opts Options) []string {
	var skipped []string
	if opts.MaxNewTokens > 0 {
		skipped = append(skipped, "max_new_tokens="+strconv.Itoa(opts.MaxNewTokens))
	}
	if opts.BatchSize > 0 {
		skipped = append(skipped, "batch_size="+strconv.Itoa(opts.BatchSize))
	}
	if opts.ChunkLength > 0 && opts.ChunkLength != whisperWindow {
		skipped = append(skipped, "chunk_length="+opts.ChunkLength.String())
	}
	return skipped
}

func readWhisperJSON(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	var out whisperJSON
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode whisper output: %w", err)
	}

	var b strings.Builder
	for _, seg := range out.Transcription {
		b.WriteString(seg.Text)
	}
	return strings.TrimSpace(b.String()), nil
}

var languageCodes = map[string]string{
	"english": "en",
	"spanish": "es",
	"french":  "fr",
	"german":  "de",
}

// languageCode maps a language name to the code whisper.cpp expects.
func languageCode(lang string) string {
	if code, ok := languageCodes[strings.ToLower(lang)]; ok {
		return code
	}
	return lang
}
