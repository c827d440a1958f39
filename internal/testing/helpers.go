package testing

import (
	"context"
	"testing"
	"time"

	"github.com/imamik/slsfw/internal/config"
	"github.com/imamik/slsfw/internal/config/node"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// FixedSuffix makes generated function names deterministic.
func FixedSuffix() string { return "abc123" }

// MustPrepare normalizes in with a fixed name suffix and fails the test on
// error.
func MustPrepare(t *testing.T, in *node.Node) *config.Prepared {
	t.Helper()
	p, err := config.Prepare(context.Background(), in, config.Options{
		WorkDir: "/work",
		Suffix:  FixedSuffix,
	})
	if err != nil {
		t.Fatalf("unexpected error preparing inputs: %v", err)
	}
	return p
}
