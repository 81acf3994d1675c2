package tasks

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePruner struct {
	mu     sync.Mutex
	calls  int
	maxAge time.Duration
	err    error
}

func (f *fakePruner) PruneStale(_ context.Context, maxAge time.Duration) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.maxAge = maxAge
	return 2, f.err
}

func (f *fakePruner) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestPruneStaleEntries(t *testing.T) {
	p := &fakePruner{}
	PruneStaleEntries(p, 12*time.Hour, time.Second)()
	assert.Equal(t, 1, p.count())
	assert.Equal(t, 12*time.Hour, p.maxAge)

	p.err = errors.New("db down")
	PruneStaleEntries(p, time.Hour, time.Second)()
	assert.Equal(t, 2, p.count())
}

func TestInitScheduler_RejectsBadSpec(t *testing.T) {
	_, err := InitScheduler("every tuesday", &fakePruner{}, time.Hour)
	assert.Error(t, err)
}

func TestInitScheduler_RunsJob(t *testing.T) {
	p := &fakePruner{}
	c, err := InitScheduler("* * * * * *", p, time.Hour)
	require.NoError(t, err)
	defer c.Stop()

	assert.Eventually(t, func() bool { return p.count() > 0 }, 3*time.Second, 50*time.Millisecond)
}
