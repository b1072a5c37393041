package notewriter

import "context"

// Writer persists generated note text.
type Writer interface {
	// Save writes body to a timestamp-named file and returns its path.
	// A non-empty label is appended to the name before the extension.
	Save(ctx context.Context, label, body string) (string, error)
}
