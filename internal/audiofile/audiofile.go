// Package audiofile validates recording paths before they reach the transcriber.
package audiofile

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nguyentantai21042004/notescribe/internal/apperr"
)

var supportedExtensions = []string{
	".m4a", ".mp3", ".webm", ".mp4", ".mpga", ".wav",
	".mpeg", ".avi", ".flv", ".mov", ".wmv",
}

// Extensions returns the supported extensions in canonical order.
func Extensions() []string {
	return slices.Clone(supportedExtensions)
}

// IsSupported reports whether path has a supported extension. It does not touch the filesystem.
func IsSupported(path string) bool {
	return slices.Contains(supportedExtensions, strings.ToLower(filepath.Ext(path)))
}

// Check fails with NOT_FOUND if path is not an existing regular file and
// with UNSUPPORTED_FORMAT if its extension is not supported.
func Check(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return apperr.Wrap(apperr.KindNotFound, err, "file not found: %s", path)
	}

	if !IsSupported(path) {
		return apperr.New(apperr.KindUnsupportedFormat,
			"unsupported file format %q, supported formats are: %s",
			filepath.Ext(path), strings.Join(supportedExtensions, ", "))
	}
	return nil
}
