// Package prompt renders the fixed BIRP and SOAP instruction templates
// around a transcript.
package prompt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/nguyentantai21042004/notescribe/internal/apperr"
)

// Kind selects a note format.
type Kind string

const (
	KindSOAP Kind = "soap"
	KindBIRP Kind = "birp"
)

func (k Kind) Label() string {
	return strings.ToUpper(string(k))
}

// Build renders the template for kind.
func Build(kind Kind, transcript, instructionsPath string) (string, error) {
	switch kind {
	case KindSOAP:
		return BuildSOAP(transcript, instructionsPath)
	case KindBIRP:
		return BuildBIRP(transcript, instructionsPath)
	default:
		return "", fmt.Errorf("unknown note kind %q", kind)
	}
}

// BuildBIRP renders the BIRP prompt. The transcript is embedded verbatim.
func BuildBIRP(transcript, instructionsPath string) (string, error) {
	instructions, err := instructionsBlock(instructionsPath)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(birpPreamble)
	writeTranscript(&b, transcript)
	b.WriteString(birpExample)
	b.WriteString(instructions)
	b.WriteString(birpClosing)
	return b.String(), nil
}

// BuildSOAP renders the SOAP prompt. Instructions precede the transcript.
func BuildSOAP(transcript, instructionsPath string) (string, error) {
	instructions, err := instructionsBlock(instructionsPath)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(soapPreamble)
	b.WriteString(instructions)
	b.WriteString(soapOptionalFields)
	writeTranscript(&b, transcript)
	b.WriteString(soapExample)
	return b.String(), nil
}

func writeTranscript(b *strings.Builder, transcript string) {
	b.WriteString(transcriptOpen)
	b.WriteString("\n")
	b.WriteString(transcript)
	b.WriteString("\n")
	b.WriteString(transcriptClose)
	b.WriteString("\n")
}

// instructionsBlock returns the file contents followed by a newline, or the
// placeholder heading when path is empty.
func instructionsBlock(path string) (string, error) {
	if path == "" {
		return Placeholder + "\n", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperr.Wrap(apperr.KindNotFound, err, "instructions file not found")
		}
		return "", apperr.Wrap(apperr.KindIO, err, "read instructions file")
	}
	return string(data) + "\n", nil
}
