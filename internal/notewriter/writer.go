package notewriter

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/notescribe/internal/apperr"
)

const timestampLayout = "2006-01-02_15-04-05"

// Filename returns transcript_<timestamp>[_<label>].txt for the writer's clock.
func (w *implWriter) Filename(label string) string {
	name := "transcript_" + w.now().Format(timestampLayout)
	if label != "" {
		name += "_" + strings.ToLower(label)
	}
	return name + ".txt"
}

// Save overwrites any file with the same computed name.
func (w *implWriter) Save(ctx context.Context, label, body string) (string, error) {
	path := filepath.Join(w.outputDir, w.Filename(label))

	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return "", apperr.Wrap(apperr.KindIO, err, "error saving file %s", path)
	}
	w.logger.Info(ctx, "Note saved: %s (%d bytes)", path, len(body))

	if w.docx {
		docxPath := strings.TrimSuffix(path, ".txt") + ".docx"
		title := "Clinical Note"
		if label != "" {
			kind, _, _ := strings.Cut(label, "_")
			title = strings.ToUpper(kind) + " Note"
		}
		if err := markdownToDocx(title, body, docxPath); err != nil {
			return path, apperr.Wrap(apperr.KindIO, err, "error saving docx %s", docxPath)
		}
		w.logger.Info(ctx, "Docx saved: %s", docxPath)
	}

	return path, nil
}
