// Package archive stores raw scraped HTML pages for later reprocessing.
package archive

import "context"

// Provider persists raw page snapshots under a run-scoped object name and
// returns the URI of the stored object.
type Provider interface {
	PutPage(ctx context.Context, objectName string, data []byte) (string, error)
	Close() error
}

// NoOpProvider discards every page. It is the default when archiving is
// disabled in configuration.
type NoOpProvider struct{}

// NewNoOpProvider creates a provider that drops all snapshots.
func NewNoOpProvider() *NoOpProvider {
	return &NoOpProvider{}
}

// PutPage discards the data and reports an empty URI.
func (n *NoOpProvider) PutPage(_ context.Context, _ string, _ []byte) (string, error) {
	return "", nil
}

// Close is a no-op.
func (n *NoOpProvider) Close() error {
	return nil
}
