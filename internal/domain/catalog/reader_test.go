package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRepo struct {
	lists   atomic.Int64
	started chan struct{} // closed when the first List is in flight
	release chan struct{} // first List blocks until this closes
	items   []Item
}

func (c *countingRepo) List(_ context.Context) ([]Item, error) {
	if c.lists.Add(1) == 1 {
		close(c.started)
		<-c.release
	}
	return c.items, nil
}

func (c *countingRepo) GetByID(_ context.Context, _ string) (*Item, error) {
	return nil, ErrNotFound
}

func (c *countingRepo) GetByIDs(_ context.Context, _ []string) ([]Item, error) {
	return nil, nil
}

func TestReader_ListCollapsesConcurrentCalls(t *testing.T) {
	repo := &countingRepo{
		started: make(chan struct{}),
		release: make(chan struct{}),
		items:   []Item{{ID: "pizza", Name: "Pizza", Price: decimal.NewFromInt(10)}},
	}
	reader := NewReader(repo)

	const callers = 8
	var wg sync.WaitGroup
	results := make([][]Item, callers)
	errs := make([]error, callers)

	wg.Add(callers)
	for i := range callers {
		go func() {
			defer wg.Done()
			results[i], errs[i] = reader.List(context.Background())
		}()
	}

	// Wait for the first query to be in flight, give the remaining callers
	// time to join it, then let it finish.
	<-repo.started
	time.Sleep(50 * time.Millisecond)
	close(repo.release)
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		require.Len(t, results[i], 1)
		assert.Equal(t, "pizza", results[i][0].ID)
	}
	assert.Less(t, repo.lists.Load(), int64(callers), "concurrent lists must share queries")
}
