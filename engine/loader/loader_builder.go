package loader

import "github.com/google/uuid"

// ImporterOption is a functional option for configuring an importer.
// Use the With* functions to create options.
type ImporterOption func(l *importer)

// WithIDSource overrides the runtime identity generator. The default is
// uuid.New; a deterministic source makes identities stable across imports of
// the same document, which tests rely on.
//
// Parameters:
//   - source: function producing the next identity
//
// Returns:
//   - ImporterOption: option function to apply
func WithIDSource(source func() uuid.UUID) ImporterOption {
	return func(l *importer) {
		l.newID = source
	}
}

// WithWorkerCount sets how many workers stage primitive data in parallel
// during import.
//
// Parameters:
//   - workers: worker count, minimum 1
//
// Returns:
//   - ImporterOption: option function to apply
func WithWorkerCount(workers int) ImporterOption {
	return func(l *importer) {
		if workers > 0 {
			l.workers = workers
		}
	}
}
