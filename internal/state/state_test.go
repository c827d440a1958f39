package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/slsfw/internal/config"
	"github.com/imamik/slsfw/internal/config/node"
	"github.com/imamik/slsfw/internal/platform/s3"
)

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// memoryObjects is an in-memory ObjectStore.
type memoryObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newMemoryObjects() *memoryObjects {
	return &memoryObjects{objects: map[string][]byte{}}
}

func (m *memoryObjects) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.objects[key] = data
	return nil
}

func (m *memoryObjects) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("bucket/%s: %w", key, s3.ErrObjectNotFound)
	}
	return data, nil
}

func (m *memoryObjects) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return m.err
}

func sampleRecord() *Record {
	r := NewRecord()
	r.Framework = "express"
	r.FunctionName = "express_component_abc123"
	r.FromClientRemark = "tencent-express"
	r.Regions = []string{"ap-guangzhou", "ap-shanghai"}
	r.CNS = []string{"example.com"}
	r.Outputs = node.Mapping().
		Set("functionName", node.String("express_component_abc123")).
		Set("cns", node.Strings("example.com"))
	return r
}

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	fs := NewFileStore(filepath.Join(t.TempDir(), ".serverless"))
	fs.now = func() time.Time { return fixedTime }
	ss := NewS3Store(newMemoryObjects(), "slsfw")
	ss.now = func() time.Time { return fixedTime }
	return map[string]Store{"file": fs, "s3": ss}
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := sampleRecord()
			require.NoError(t, store.Save(ctx, "express-dev", want))

			got, err := store.Load(ctx, "express-dev")
			require.NoError(t, err)

			assert.Equal(t, want.DeploymentID, got.DeploymentID)
			assert.Equal(t, want.FunctionName, got.FunctionName)
			assert.Equal(t, want.FromClientRemark, got.FromClientRemark)
			assert.Equal(t, want.Regions, got.Regions)
			assert.Equal(t, want.CNS, got.CNS)
			assert.True(t, fixedTime.Equal(got.UpdatedAt))
			assert.Equal(t, want.Outputs.Value(), got.Outputs.Value())
			assert.False(t, got.IsEmpty())
		})
	}
}

func TestStore_LoadMissing(t *testing.T) {
	t.Parallel()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			r, err := store.Load(context.Background(), "nothing-here")
			require.NoError(t, err)
			assert.True(t, r.IsEmpty())
			assert.Equal(t, config.PriorState{}, r.Prior())
		})
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Save(ctx, "express-dev", sampleRecord()))
			require.NoError(t, store.Delete(ctx, "express-dev"))

			r, err := store.Load(ctx, "express-dev")
			require.NoError(t, err)
			assert.True(t, r.IsEmpty())

			// Deleting twice is fine.
			assert.NoError(t, store.Delete(ctx, "express-dev"))
		})
	}
}

func TestFileStore_Layout(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "state")
	store := NewFileStore(dir)
	require.NoError(t, store.Save(context.Background(), "koa-prod", sampleRecord()))

	data, err := os.ReadFile(filepath.Join(dir, "koa-prod.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "functionName: express_component_abc123")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_CorruptRecord(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("regions: {{"), 0o600))

	_, err := NewFileStore(dir).Load(context.Background(), "bad")
	assert.ErrorContains(t, err, "failed to decode state")
}

func TestS3Store_KeyAndErrors(t *testing.T) {
	t.Parallel()

	objects := newMemoryObjects()
	store := NewS3Store(objects, "team/slsfw")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "express-dev", sampleRecord()))
	assert.Contains(t, objects.objects, "team/slsfw/express-dev.yaml")

	objects.err = errors.New("access denied")
	_, err := store.Load(ctx, "express-dev")
	assert.ErrorContains(t, err, "failed to read state express-dev: access denied")
	assert.ErrorContains(t, store.Save(ctx, "express-dev", sampleRecord()), "failed to write state")
	assert.ErrorContains(t, store.Delete(ctx, "express-dev"), "failed to delete state")
}

func TestRecord_Prior(t *testing.T) {
	t.Parallel()

	var nilRecord *Record
	assert.True(t, nilRecord.IsEmpty())
	assert.Equal(t, config.PriorState{}, nilRecord.Prior())
	assert.Equal(t, "express_component_abc123", sampleRecord().Prior().FunctionName)
	assert.Len(t, NewRecord().DeploymentID, 36)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	store, err := Open(context.Background(), config.StateSettings{Backend: config.BackendLocal, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)

	_, err = Open(context.Background(), config.StateSettings{Backend: "etcd"})
	assert.ErrorIs(t, err, config.ErrUnknownBackend)
}
