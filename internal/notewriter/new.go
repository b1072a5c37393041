package notewriter

import (
	"time"

	"github.com/nguyentantai21042004/notescribe/internal/logger"
)

type implWriter struct {
	outputDir string
	docx      bool
	now       func() time.Time
	logger    logger.Logger
}

// New creates a Writer rooted at outputDir. When docx is set, every note
// is also rendered as a .docx next to the text file.
func New(outputDir string, docx bool, log logger.Logger) Writer {
	return &implWriter{
		outputDir: outputDir,
		docx:      docx,
		now:       time.Now,
		logger:    log,
	}
}
