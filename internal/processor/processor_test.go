package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/notescribe/internal/apperr"
	"github.com/nguyentantai21042004/notescribe/internal/config"
	"github.com/nguyentantai21042004/notescribe/internal/generator"
	"github.com/nguyentantai21042004/notescribe/internal/logger"
	"github.com/nguyentantai21042004/notescribe/internal/notewriter"
	"github.com/nguyentantai21042004/notescribe/internal/prompt"
	"github.com/nguyentantai21042004/notescribe/internal/testutil"
)

type fakeTranscriber struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeGenerator struct {
	replies []*generator.Reply
	errs    []error
	prompts []string
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(ctx context.Context, p string) (*generator.Reply, error) {
	i := len(f.prompts)
	f.prompts = append(f.prompts, p)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return nil, err
	}
	return f.replies[i], nil
}

func textReply(s string) *generator.Reply {
	return &generator.Reply{Content: []generator.Segment{{Type: generator.SegmentText, Text: s}}}
}

type fixture struct {
	audio  string
	outDir string
	trans  *fakeTranscriber
	gen    *fakeGenerator
	proc   Processor
}

func newFixture(t *testing.T, transcript string, gen *fakeGenerator) *fixture {
	t.Helper()
	dir := t.TempDir()
	audio := filepath.Join(dir, "session.wav")
	testutil.WriteWAV(t, audio, 10)

	outDir := filepath.Join(dir, "notes")
	if err := os.Mkdir(outDir, 0755); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{Paths: config.PathsConfig{Output: outDir}}
	trans := &fakeTranscriber{text: transcript}
	var g generator.Generator
	if gen != nil {
		g = gen
	}
	proc := New(cfg, trans, g, notewriter.New(outDir, false, logger.Nop()), logger.Nop())
	return &fixture{audio: audio, outDir: outDir, trans: trans, gen: gen, proc: proc}
}

func (f *fixture) files(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.outDir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestProcessSOAPOnly(t *testing.T) {
	gen := &fakeGenerator{replies: []*generator.Reply{textReply("Subjective (S): cough")}}
	f := newFixture(t, "patient reports a cough", gen)

	res, err := f.proc.Process(context.Background(), Request{AudioPath: f.audio, SOAP: true})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if res.Transcript != "patient reports a cough" {
		t.Errorf("Transcript = %q", res.Transcript)
	}
	if res.RunID == "" {
		t.Error("RunID is empty")
	}
	if len(res.Notes) != 1 || res.Notes[0].Kind != prompt.KindSOAP {
		t.Fatalf("Notes = %+v, want one SOAP note", res.Notes)
	}

	files := f.files(t)
	if len(files) != 1 {
		t.Fatalf("output dir has %v, want exactly one file", files)
	}
	got, _ := os.ReadFile(res.Notes[0].Path)
	if string(got) != "Subjective (S): cough" {
		t.Errorf("note contents = %q", got)
	}

	if len(gen.prompts) != 1 || !strings.Contains(gen.prompts[0], "patient reports a cough") {
		t.Error("SOAP prompt should embed the transcript")
	}
}

func TestProcessBothKindsInOrder(t *testing.T) {
	gen := &fakeGenerator{replies: []*generator.Reply{textReply("soap"), textReply("birp")}}
	f := newFixture(t, "T", gen)

	res, err := f.proc.Process(context.Background(), Request{AudioPath: f.audio, SOAP: true, BIRP: true})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(res.Notes) != 2 || res.Notes[0].Kind != prompt.KindSOAP || res.Notes[1].Kind != prompt.KindBIRP {
		t.Fatalf("Notes = %+v, want SOAP then BIRP", res.Notes)
	}
	if !strings.Contains(gen.prompts[1], "Behavior") {
		t.Error("second prompt should be the BIRP template")
	}
	if n := len(f.files(t)); n != 2 {
		t.Errorf("got %d files, want 2", n)
	}
}

func TestProcessTranscriptOnly(t *testing.T) {
	f := newFixture(t, "just words", nil)

	res, err := f.proc.Process(context.Background(), Request{AudioPath: f.audio})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.Transcript != "just words" {
		t.Errorf("Transcript = %q", res.Transcript)
	}
	if n := len(f.files(t)); n != 0 {
		t.Errorf("got %d files, want none", n)
	}
}

func TestProcessMissingFile(t *testing.T) {
	f := newFixture(t, "T", &fakeGenerator{})

	_, err := f.proc.Process(context.Background(), Request{AudioPath: filepath.Join(f.outDir, "nope.wav"), SOAP: true})
	if !errors.Is(err, apperr.NotFound) {
		t.Fatalf("Process() error = %v, want NOT_FOUND", err)
	}
	if f.trans.calls != 0 {
		t.Error("transcriber should not run for a missing file")
	}
}

func TestProcessUnsupportedFormat(t *testing.T) {
	f := newFixture(t, "T", &fakeGenerator{})
	txt := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(txt, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := f.proc.Process(context.Background(), Request{AudioPath: txt})
	if !errors.Is(err, apperr.UnsupportedFormat) {
		t.Fatalf("Process() error = %v, want UNSUPPORTED_FORMAT", err)
	}
}

func TestProcessTranscriberError(t *testing.T) {
	f := newFixture(t, "", &fakeGenerator{})
	f.trans.err = apperr.New(apperr.KindService, "whisper crashed")

	_, err := f.proc.Process(context.Background(), Request{AudioPath: f.audio, SOAP: true})
	if !errors.Is(err, apperr.Service) {
		t.Fatalf("Process() error = %v, want SERVICE_ERROR", err)
	}
	if len(f.gen.prompts) != 0 {
		t.Error("generator should not be called after a transcription failure")
	}
}

func TestProcessGeneratorErrorKeepsEarlierNotes(t *testing.T) {
	gen := &fakeGenerator{
		replies: []*generator.Reply{textReply("soap"), nil},
		errs:    []error{nil, apperr.New(apperr.KindService, "throttled")},
	}
	f := newFixture(t, "T", gen)

	res, err := f.proc.Process(context.Background(), Request{AudioPath: f.audio, SOAP: true, BIRP: true})
	if !errors.Is(err, apperr.Service) {
		t.Fatalf("Process() error = %v, want SERVICE_ERROR", err)
	}
	if !strings.Contains(err.Error(), "generate birp note") {
		t.Errorf("error %q should name the failing note", err)
	}
	if res == nil || len(res.Notes) != 1 || res.Notes[0].Kind != prompt.KindSOAP {
		t.Fatalf("partial result = %+v, want the SOAP note", res)
	}
	if n := len(f.files(t)); n != 1 {
		t.Errorf("got %d files, want 1", n)
	}
}

func TestProcessMalformedReply(t *testing.T) {
	gen := &fakeGenerator{replies: []*generator.Reply{{Content: []generator.Segment{{Type: "tool_use"}}}}}
	f := newFixture(t, "T", gen)

	_, err := f.proc.Process(context.Background(), Request{AudioPath: f.audio, BIRP: true})
	if !errors.Is(err, apperr.MalformedReply) {
		t.Fatalf("Process() error = %v, want MALFORMED_REPLY", err)
	}
	if n := len(f.files(t)); n != 0 {
		t.Errorf("got %d files, want none", n)
	}
}

func TestProcessMissingInstructions(t *testing.T) {
	f := newFixture(t, "T", &fakeGenerator{})

	_, err := f.proc.Process(context.Background(), Request{
		AudioPath:        f.audio,
		SOAP:             true,
		InstructionsPath: filepath.Join(t.TempDir(), "missing.txt"),
	})
	if !errors.Is(err, apperr.NotFound) {
		t.Fatalf("Process() error = %v, want NOT_FOUND", err)
	}
	if len(f.gen.prompts) != 0 {
		t.Error("generator should not be called without a prompt")
	}
}

func TestProcessNoGenerator(t *testing.T) {
	f := newFixture(t, "T", nil)

	_, err := f.proc.Process(context.Background(), Request{AudioPath: f.audio, SOAP: true})
	if !errors.Is(err, apperr.Config) {
		t.Fatalf("Process() error = %v, want CONFIG_ERROR", err)
	}
}

func TestProcessFileUsesWatchConfig(t *testing.T) {
	gen := &fakeGenerator{replies: []*generator.Reply{textReply("birp")}}
	f := newFixture(t, "T", gen)
	f.proc.(*implProcessor).cfg.Watch = config.WatchConfig{BIRP: true}

	if err := f.proc.ProcessFile(context.Background(), f.audio); err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	files := f.files(t)
	if len(files) != 1 || !taggedName.MatchString(files[0]) || !strings.Contains(files[0], "_birp_") {
		t.Errorf("files = %v, want one BIRP note tagged with the run id", files)
	}
}

var taggedName = regexp.MustCompile(`^transcript_\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}_(soap|birp)_[0-9a-f]{8}\.txt$`)

func TestProcessFileDistinctNamesPerRun(t *testing.T) {
	gen := &fakeGenerator{replies: []*generator.Reply{textReply("first"), textReply("second")}}
	f := newFixture(t, "T", gen)
	f.proc.(*implProcessor).cfg.Watch = config.WatchConfig{SOAP: true}
	ctx := context.Background()

	// back to back runs land in the same second
	for i := 0; i < 2; i++ {
		if err := f.proc.ProcessFile(ctx, f.audio); err != nil {
			t.Fatalf("ProcessFile() error = %v", err)
		}
	}

	files := f.files(t)
	if len(files) != 2 {
		t.Fatalf("files = %v, want one note per run", files)
	}
	for _, name := range files {
		if !taggedName.MatchString(name) {
			t.Errorf("%s is not tagged with a run id", name)
		}
	}
}

func TestProcessKeepsNoteWhenDocxFails(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "session.wav")
	testutil.WriteWAV(t, audio, 1)
	outDir := filepath.Join(dir, "notes")
	if err := os.Mkdir(outDir, 0755); err != nil {
		t.Fatal(err)
	}

	// directories in place of the .docx files make the export fail
	now := time.Now()
	for i := 0; i < 10; i++ {
		name := "transcript_" + now.Add(time.Duration(i)*time.Second).Format("2006-01-02_15-04-05") + "_soap.docx"
		if err := os.Mkdir(filepath.Join(outDir, name), 0755); err != nil {
			t.Fatal(err)
		}
	}

	gen := &fakeGenerator{replies: []*generator.Reply{textReply("Subjective (S): cough")}}
	cfg := &config.Config{Paths: config.PathsConfig{Output: outDir}, Output: config.OutputConfig{Docx: true}}
	proc := New(cfg, &fakeTranscriber{text: "T"}, gen, notewriter.New(outDir, true, logger.Nop()), logger.Nop())

	res, err := proc.Process(context.Background(), Request{AudioPath: audio, SOAP: true})
	if !errors.Is(err, apperr.IO) {
		t.Fatalf("Process() error = %v, want IO_ERROR", err)
	}
	if res == nil || len(res.Notes) != 1 {
		t.Fatalf("partial result = %+v, want the saved text note", res)
	}
	got, readErr := os.ReadFile(res.Notes[0].Path)
	if readErr != nil || string(got) != "Subjective (S): cough" {
		t.Errorf("note on disk = %q (%v)", got, readErr)
	}
}

func TestRequestKinds(t *testing.T) {
	tests := []struct {
		req  Request
		want []prompt.Kind
	}{
		{Request{}, nil},
		{Request{BIRP: true}, []prompt.Kind{prompt.KindBIRP}},
		{Request{SOAP: true, BIRP: true}, []prompt.Kind{prompt.KindSOAP, prompt.KindBIRP}},
	}
	for _, tt := range tests {
		got := tt.req.Kinds()
		if len(got) != len(tt.want) {
			t.Errorf("Kinds() = %v, want %v", got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Kinds() = %v, want %v", got, tt.want)
			}
		}
	}
}
