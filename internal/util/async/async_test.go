package async

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunParallel_Success(t *testing.T) {
	t.Parallel()
	var count atomic.Int32

	task := func(_ context.Context) error {
		count.Add(1)
		return nil
	}
	tasks := []Task{{Name: "a", Func: task}, {Name: "b", Func: task}, {Name: "c", Func: task}}

	require.NoError(t, RunParallel(context.Background(), tasks, 0))
	assert.Equal(t, int32(3), count.Load())
}

func TestRunParallel_EmptyTasks(t *testing.T) {
	t.Parallel()
	assert.NoError(t, RunParallel(context.Background(), nil, 0))
	assert.NoError(t, RunParallel(context.Background(), []Task{}, 2))
}

func TestRunParallel_AllErrorsReported(t *testing.T) {
	t.Parallel()
	err1 := errors.New("error 1")
	err2 := errors.New("error 2")
	var ran atomic.Int32

	tasks := []Task{
		{Name: "fail1", Func: func(context.Context) error { ran.Add(1); return err1 }},
		{Name: "ok", Func: func(context.Context) error { ran.Add(1); return nil }},
		{Name: "fail2", Func: func(context.Context) error { ran.Add(1); return err2 }},
	}

	err := RunParallel(context.Background(), tasks, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, err1)
	assert.ErrorIs(t, err, err2)
	assert.Equal(t, "fail1: error 1\nfail2: error 2", err.Error())
	assert.Equal(t, int32(3), ran.Load())
}

func TestRunParallel_Limit(t *testing.T) {
	t.Parallel()
	var running, peak atomic.Int32

	task := func(context.Context) error {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		return nil
	}

	tasks := make([]Task, 8)
	for i := range tasks {
		tasks[i] = Task{Name: "t", Func: task}
	}

	require.NoError(t, RunParallel(context.Background(), tasks, 2))
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRunParallel_PassesContext(t *testing.T) {
	t.Parallel()
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	err := RunParallel(ctx, []Task{{Name: "ctx", Func: func(c context.Context) error {
		if c.Value(key{}) != "v" {
			return errors.New("context not passed")
		}
		return nil
	}}}, 1)
	assert.NoError(t, err)
}
