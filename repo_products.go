package catalog

import (
	"context"
	"database/sql"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Products persists product records. Default reads exclude original_price;
// the plaintext amount is internal reference data and never leaves the
// repository unless asked for explicitly.
type Products interface {
	List(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, product *Product) (*Product, error)
	Update(ctx context.Context, product *Product, columns ...string) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type products struct {
	db *bun.DB
}

var _ Products = (*products)(nil)

// NewProductsRepository creates the Bun backed Products repository
func NewProductsRepository(db *bun.DB) Products {
	return &products{db: db}
}

func (r *products) List(ctx context.Context) ([]*Product, error) {
	var records []*Product
	err := r.db.NewSelect().
		Model(&records).
		ExcludeColumn("original_price").
		Order("prd.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list products")
	}

	return records, nil
}

func (r *products) GetByID(ctx context.Context, id string) (*Product, error) {
	pid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrProductNotFound
	}

	product := &Product{}
	err = r.db.NewSelect().
		Model(product).
		ExcludeColumn("original_price").
		Where("prd.id = ?", pid).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load product")
	}

	return product, nil
}

func (r *products) Create(ctx context.Context, product *Product) (*Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	if _, err := r.db.NewInsert().Model(product).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create product")
	}

	return product, nil
}

// Update writes only the given columns. A partial update never touches the
// price columns unless the caller re-encrypted and named them explicitly.
func (r *products) Update(ctx context.Context, product *Product, columns ...string) (*Product, error) {
	if len(columns) == 0 {
		return nil, errors.New("update requires at least one column", errors.CategoryBadInput)
	}

	res, err := r.db.NewUpdate().
		Model(product).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update product")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrProductNotFound
	}

	return r.GetByID(ctx, product.ID.String())
}

func (r *products) Delete(ctx context.Context, id string) error {
	pid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return ErrProductNotFound
	}

	res, err := r.db.NewDelete().
		Model((*Product)(nil)).
		Where("prd.id = ?", pid).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete product")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrProductNotFound
	}

	return nil
}
