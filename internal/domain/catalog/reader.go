package catalog

import (
	"context"

	"golang.org/x/sync/singleflight"
)

var _ Repository = (*Reader)(nil)

// Reader wraps a Repository and collapses concurrent List calls into a single
// underlying query. The storefront client polls the full listing on every
// page load, so bursts of identical reads are common.
type Reader struct {
	repo Repository
	sfg  singleflight.Group
}

// NewReader returns a Reader over the given repository.
func NewReader(repo Repository) *Reader {
	return &Reader{repo: repo}
}

// List returns the full catalog. Concurrent callers share one repository
// query and receive the same result.
func (r *Reader) List(ctx context.Context) ([]Item, error) {
	v, err, _ := r.sfg.Do("list", func() (any, error) {
		return r.repo.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]Item), nil
}

// GetByID resolves a single item.
func (r *Reader) GetByID(ctx context.Context, id string) (*Item, error) {
	return r.repo.GetByID(ctx, id)
}

// GetByIDs resolves a batch of items. Not deduplicated: batches vary per
// caller and the repository answers them in one query anyway.
func (r *Reader) GetByIDs(ctx context.Context, ids []string) ([]Item, error) {
	return r.repo.GetByIDs(ctx, ids)
}
