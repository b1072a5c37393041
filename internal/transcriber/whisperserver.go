package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/notescribe/internal/logger"
)

type serverTranscriber struct {
	url    string
	model  string
	device Device
	opts   Options
	client *http.Client
	logger logger.Logger
}

type serverResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe uploads the recording and returns the sidecar's text field.
func (t *serverTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	body, contentType, err := t.buildForm(audioPath)
	if err != nil {
		return "", err
	}

	t.logger.Info(ctx, "Sending %s to whisper sidecar %s (model %s, %s/%s)",
		filepath.Base(audioPath), t.url, t.model, t.device.Name, t.device.Precision)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(t.url, "/")+"/transcribe", body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("whisper error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var result serverResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode whisper response: %w", err)
	}

	t.logger.Info(ctx, "Transcription completed: %d segments, %d characters", len(result.Segments), len(result.Text))
	return strings.TrimSpace(result.Text), nil
}

func (t *serverTranscriber) buildForm(audioPath string) (io.Reader, string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("audio", filepath.Base(audioPath))
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("write audio data: %w", err)
	}

	fields := [][2]string{
		{"model", t.model},
		{"language", t.opts.Language},
		{"device", t.device.Name},
		{"compute_type", t.device.Precision},
		{"max_new_tokens", strconv.Itoa(t.opts.MaxNewTokens)},
		{"chunk_length_s", strconv.Itoa(int(t.opts.ChunkLength.Seconds()))},
		{"batch_size", strconv.Itoa(t.opts.BatchSize)},
		{"return_timestamps", strconv.FormatBool(t.opts.ReturnTimestamps)},
	}
	for _, kv := range fields {
		if err := writer.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", kv[0], err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}
