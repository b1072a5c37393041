package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-audio/wav"
)

// normalizeAudio converts any supported input into 16 kHz mono PCM WAV,
// the only format whisper.cpp reads.
func (t *cliTranscriber) normalizeAudio(ctx context.Context, inputPath, workDir string) (string, error) {
	audioPath := filepath.Join(workDir, "input.wav")

	t.logger.Info(ctx, "Normalizing audio with ffmpeg: %s", inputPath)

	// -vn drops any video stream, -ar/-ac give 16 kHz mono
	args := []string{
		"-i", inputPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.FFmpegPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg normalize audio: %w", err)
	}

	duration, err := probeWAV(audioPath)
	if err != nil {
		return "", fmt.Errorf("probe normalized audio: %w", err)
	}

	t.logger.Info(ctx, "Audio normalized: %s (%s)", audioPath, duration.Round(time.Millisecond))
	return audioPath, nil
}

// probeWAV checks the RIFF header and returns the audio duration, measured
// from the size of the data chunk.
func probeWAV(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return 0, fmt.Errorf("%s is not a valid PCM wav file", path)
	}
	if err := dec.FwdToPCM(); err != nil {
		return 0, fmt.Errorf("find pcm data in %s: %w", path, err)
	}

	bytesPerSecond := int64(dec.SampleRate) * int64(dec.NumChans) * int64(dec.BitDepth) / 8
	if bytesPerSecond == 0 {
		return 0, fmt.Errorf("%s has no sample rate", path)
	}
	return time.Duration(int64(dec.PCMSize) * int64(time.Second) / bytesPerSecond), nil
}
