package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/notescribe/internal/prompt"
)

// Processor runs one recording through transcription and note generation.
type Processor interface {
	Process(ctx context.Context, req Request) (*Result, error)
	// ProcessFile runs path with the note kinds configured for watch mode.
	ProcessFile(ctx context.Context, path string) error
}

// Request describes a single run. Zero kinds requested means transcribe only.
type Request struct {
	AudioPath        string
	SOAP             bool
	BIRP             bool
	InstructionsPath string
	// TagRunID appends a short run id to note names so runs that finish
	// in the same second never share a file.
	TagRunID bool
}

// Kinds returns the requested note kinds in processing order.
func (r Request) Kinds() []prompt.Kind {
	var kinds []prompt.Kind
	if r.SOAP {
		kinds = append(kinds, prompt.KindSOAP)
	}
	if r.BIRP {
		kinds = append(kinds, prompt.KindBIRP)
	}
	return kinds
}

// SavedNote is a note that reached disk.
type SavedNote struct {
	Kind prompt.Kind
	Path string
}

type Result struct {
	RunID      string
	Transcript string
	Notes      []SavedNote
	Elapsed    time.Duration
}
