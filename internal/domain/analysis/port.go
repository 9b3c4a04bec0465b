package analysis

import "context"

// Analyzer port: one round trip to the external model, no internal retry.
// Every retry is a fresh user-initiated submission.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (*Result, error)
}

// Repository port for the optional history store.
type Repository interface {
	Save(ctx context.Context, r *Result) error
	ListByOwner(ctx context.Context, owner string, limit int) ([]*Result, error)
	Get(ctx context.Context, owner, id string) (*Result, error)
}

// ArtifactStore port for uploaded export documents.
type ArtifactStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Disabled is the Analyzer wired at startup when no model credential is
// configured. Injecting it makes the "missing key" state explicit instead of
// a cached first-use initialization failure.
type Disabled struct{}

func (Disabled) Analyze(context.Context, Request) (*Result, error) {
	return nil, ErrNotConfigured
}
