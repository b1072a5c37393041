package transcriber

import (
	"context"
	"net/http"

	"github.com/nguyentantai21042004/notescribe/internal/apperr"
	"github.com/nguyentantai21042004/notescribe/internal/config"
	"github.com/nguyentantai21042004/notescribe/internal/logger"
	"github.com/nguyentantai21042004/notescribe/pkg/executor"
)

// serviceErrors tags every backend failure as a SERVICE_ERROR.
type serviceErrors struct {
	next Transcriber
}

func (s serviceErrors) Transcribe(ctx context.Context, audioPath string) (string, error) {
	text, err := s.next.Transcribe(ctx, audioPath)
	if err != nil {
		return "", apperr.Wrap(apperr.KindService, err, "transcribe %s", audioPath)
	}
	return text, nil
}

// New creates the Transcriber selected by cfg.Transcriber.Backend.
// cfg must already be validated.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	tc := cfg.Transcriber
	opts := DefaultOptions(tc.Language)

	var (
		t      Transcriber
		device Device
	)
	switch tc.Backend {
	case config.BackendWhisperCLI, "":
		device = selectDevice(tc.Device, exec.LookPath)
		t = &cliTranscriber{
			cfg:      tc,
			model:    cfg.ModelChoice,
			tempRoot: cfg.Paths.Temp,
			device:   device,
			opts:     opts,
			executor: exec,
			logger:   log,
		}
	case config.BackendWhisperServer:
		device = remoteDevice(tc.Device)
		t = &serverTranscriber{
			url:    tc.ServerURL,
			model:  cfg.ModelChoice,
			device: device,
			opts:   opts,
			client: &http.Client{Timeout: tc.Timeout.Duration},
			logger: log,
		}
	default:
		return nil, apperr.New(apperr.KindConfig, "unknown transcriber backend %q", tc.Backend)
	}

	log.Info(context.Background(), "Transcriber ready: %s, model %s, device %s (%s)",
		tc.Backend, cfg.ModelChoice, device.Name, device.Precision)
	return serviceErrors{next: t}, nil
}
