package state

import (
	"context"
	"fmt"

	"github.com/imamik/slsfw/internal/config"
	"github.com/imamik/slsfw/internal/platform/s3"
)

// Store loads and saves deployment records by name.
type Store interface {
	// Load returns the record saved under name, or an empty record.
	Load(ctx context.Context, name string) (*Record, error)
	// Save stores r under name and stamps its UpdatedAt.
	Save(ctx context.Context, name string, r *Record) error
	// Delete removes the record. Deleting a missing record is not an error.
	Delete(ctx context.Context, name string) error
}

// Open returns the store selected by settings.
func Open(ctx context.Context, settings config.StateSettings) (Store, error) {
	switch settings.Backend {
	case config.BackendLocal, "":
		return NewFileStore(settings.Dir), nil
	case config.BackendS3:
		client, err := s3.NewClient(ctx, s3.Options{
			Endpoint:     settings.S3.Endpoint,
			Region:       settings.S3.Region,
			Bucket:       settings.S3.Bucket,
			AccessKey:    settings.S3.AccessKey,
			SecretKey:    settings.S3.SecretKey,
			UsePathStyle: settings.S3.Endpoint != "",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		if err := client.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return NewS3Store(client, settings.S3.Prefix), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, settings.Backend)
	}
}
