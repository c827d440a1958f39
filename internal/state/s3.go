package state

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/imamik/slsfw/internal/platform/s3"
)

// ObjectStore is the subset of the S3 client the store needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// S3Store keeps records as <prefix>/<name>.yaml in a bucket.
type S3Store struct {
	objects ObjectStore
	prefix  string
	now     func() time.Time
}

func NewS3Store(objects ObjectStore, prefix string) *S3Store {
	return &S3Store{objects: objects, prefix: prefix, now: time.Now}
}

func (s *S3Store) key(name string) string {
	return path.Join(s.prefix, name+".yaml")
}

func (s *S3Store) Load(ctx context.Context, name string) (*Record, error) {
	data, err := s.objects.Get(ctx, s.key(name))
	if errors.Is(err, s3.ErrObjectNotFound) {
		return &Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state %s: %w", name, err)
	}
	return decode(data)
}

func (s *S3Store) Save(ctx context.Context, name string, r *Record) error {
	r.UpdatedAt = s.now().UTC()
	data, err := encode(r)
	if err != nil {
		return err
	}
	if err := s.objects.Put(ctx, s.key(name), data); err != nil {
		return fmt.Errorf("failed to write state %s: %w", name, err)
	}
	return nil
}

func (s *S3Store) Delete(ctx context.Context, name string) error {
	if err := s.objects.Delete(ctx, s.key(name)); err != nil {
		return fmt.Errorf("failed to delete state %s: %w", name, err)
	}
	return nil
}
