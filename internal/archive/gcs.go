package archive

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"

	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/logging"
)

// GCSProvider archives pages to a Google Cloud Storage bucket.
type GCSProvider struct {
	client *storage.Client
	bucket string
}

// NewGCSProvider initializes a GCS client and verifies the bucket is
// reachable. Authentication is handled via Application Default Credentials.
func NewGCSProvider(ctx context.Context, bucket string) (*GCSProvider, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}

	// Fail fast on startup if the bucket is missing or inaccessible.
	if _, err := client.Bucket(bucket).Attrs(ctx); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			logging.L.Warn("failed to close GCS client after bucket check failure", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("get GCS bucket %q attributes: %w", bucket, err)
	}

	return &GCSProvider{client: client, bucket: bucket}, nil
}

// PutPage uploads the page body to the configured bucket and returns the
// gs:// URI of the object.
func (g *GCSProvider) PutPage(ctx context.Context, objectName string, data []byte) (string, error) {
	wc := g.client.Bucket(g.bucket).Object(objectName).NewWriter(ctx)

	if _, err := wc.Write(data); err != nil {
		// Close anyway to release resources; the write failure is primary.
		if closeErr := wc.Close(); closeErr != nil {
			logging.L.Warn("failed to close GCS writer after write failure",
				zap.Error(err), zap.NamedError("close_error", closeErr))
		}
		return "", fmt.Errorf("write GCS object %s: %w", objectName, err)
	}

	// Close finalizes the upload and flushes buffered data.
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("close GCS writer for object %s: %w", objectName, err)
	}

	return fmt.Sprintf("gs://%s/%s", g.bucket, objectName), nil
}

// Close releases the underlying GCS client.
func (g *GCSProvider) Close() error {
	return g.client.Close()
}
