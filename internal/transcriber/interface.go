// Package transcriber turns a validated audio or video file into a transcript.
//
// Backends:
//   - whisper-cli: whisper.cpp CLI, input normalized with ffmpeg first
//   - whisper-server: whisper HTTP sidecar that runs the model pipeline
package transcriber

import (
	"context"
	"time"
)

// Transcriber converts an audio file to plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Options are the inference settings sent with every transcription.
type Options struct {
	MaxNewTokens     int
	ChunkLength      time.Duration
	BatchSize        int
	ReturnTimestamps bool
	Language         string
}

// DefaultOptions returns the fixed pipeline settings.
func DefaultOptions(language string) Options {
	return Options{
		MaxNewTokens:     128,
		ChunkLength:      30 * time.Second,
		BatchSize:        16,
		ReturnTimestamps: true,
		Language:         language,
	}
}
