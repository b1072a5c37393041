// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"math"
	"os"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV writes a 16 kHz mono 16-bit PCM tone of the given length.
func WriteWAV(t testing.TB, path string, seconds int) {
	t.Helper()

	const sampleRate = 16000
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav: %v", err)
	}
	defer f.Close()

	data := make([]int, sampleRate*seconds)
	for i := range data {
		data[i] = int(3000 * math.Sin(2*math.Pi*440*float64(i)/sampleRate))
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           data,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close wav encoder: %v", err)
	}
}
