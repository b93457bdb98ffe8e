package repository

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/feastly/storefront/internal/domain/catalog"
)

const (
	listItemsSQL = `SELECT id, name, price, category, image, available
		FROM products ORDER BY id`

	getItemByIDSQL = `SELECT id, name, price, category, image, available
		FROM products WHERE id = $1`

	getItemsByIDsSQL = `SELECT id, name, price, category, image, available
		FROM products WHERE id = ANY($1)`

	upsertItemSQL = `INSERT INTO products (id, name, price, category, image, available)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			category = EXCLUDED.category,
			image = EXCLUDED.image,
			available = EXCLUDED.available`
)

var _ catalog.Repository = (*CatalogRepository)(nil)

// CatalogRepository implements catalog.Repository backed by PostgreSQL.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository returns a CatalogRepository that uses the given pool.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// List returns all catalog items ordered by ID.
func (r *CatalogRepository) List(ctx context.Context) ([]catalog.Item, error) {
	rows, err := r.pool.Query(ctx, listItemsSQL)
	if err != nil {
		return nil, errors.Wrap(err, "listing items")
	}
	return pgx.CollectRows(rows, scanItem)
}

// GetByID returns a single item by its identifier.
func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*catalog.Item, error) {
	rows, err := r.pool.Query(ctx, getItemByIDSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "getting item %q", id)
	}

	it, err := pgx.CollectExactlyOneRow(rows, scanItem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, errors.Wrapf(err, "getting item %q", id)
	}
	return &it, nil
}

// GetByIDs returns items matching any of the given IDs.
func (r *CatalogRepository) GetByIDs(ctx context.Context, ids []string) ([]catalog.Item, error) {
	rows, err := r.pool.Query(ctx, getItemsByIDsSQL, ids)
	if err != nil {
		return nil, errors.Wrap(err, "getting items by ids")
	}
	return pgx.CollectRows(rows, scanItem)
}

// Upsert inserts an item or replaces an existing one with the same ID.
// Used by the catalog seeding command.
func (r *CatalogRepository) Upsert(ctx context.Context, it catalog.Item) error {
	_, err := r.pool.Exec(ctx, upsertItemSQL,
		it.ID, it.Name, it.Price, it.Category, it.Image, it.Available)
	if err != nil {
		return errors.Wrapf(err, "upserting item %q", it.ID)
	}
	return nil
}

func scanItem(row pgx.CollectableRow) (catalog.Item, error) {
	var (
		it    catalog.Item
		price decimal.Decimal
	)
	err := row.Scan(&it.ID, &it.Name, &price, &it.Category, &it.Image, &it.Available)
	it.Price = price
	return it, err
}
