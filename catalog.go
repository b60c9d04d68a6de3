package catalog

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
)

// ProductInput carries client supplied product fields. Pointer fields
// distinguish "not part of this update" from explicit zero values.
type ProductInput struct {
	Name             *string        `json:"name"`
	Description      *string        `json:"description"`
	ImageURL         *string        `json:"image_url"`
	Price            *float64       `json:"price"`
	TechnicalDetails map[string]any `json:"technical_details"`
}

// Catalog is the CRUD service over products. It delegates every
// confidentiality decision to the PriceCipher plus the caller's AuthContext.
type Catalog struct {
	products Products
	cipher   *PriceCipher
	logger   Logger
}

// NewCatalog creates the catalog service
func NewCatalog(products Products, cipher *PriceCipher) *Catalog {
	return &Catalog{
		products: products,
		cipher:   cipher,
		logger:   defLogger{},
	}
}

func (c *Catalog) WithLogger(logger Logger) *Catalog {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// List returns all products, applying the price omission rule per caller
func (c *Catalog) List(ctx context.Context, auth *AuthContext) ([]*ProductView, error) {
	records, err := c.products.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*ProductView, 0, len(records))
	for _, record := range records {
		views = append(views, c.view(record, auth))
	}

	return views, nil
}

// Get returns one product, applying the price omission rule per caller
func (c *Catalog) Get(ctx context.Context, auth *AuthContext, id string) (*ProductView, error) {
	record, err := c.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return c.view(record, auth), nil
}

// Create stores a new product. The route is guarded upstream, so the caller
// is always authenticated and the returned view carries the price.
func (c *Catalog) Create(ctx context.Context, input ProductInput) (*ProductView, error) {
	if input.Name == nil || input.Description == nil || input.ImageURL == nil || input.Price == nil {
		return nil, errors.New("name, description, image_url and price are required", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest)
	}

	product := &Product{
		Name:             *input.Name,
		Description:      *input.Description,
		ImageURL:         *input.ImageURL,
		TechnicalDetails: input.TechnicalDetails,
	}
	if product.TechnicalDetails == nil {
		product.TechnicalDetails = map[string]any{}
	}

	if err := c.setPrice(product, *input.Price); err != nil {
		return nil, err
	}

	record, err := c.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	view := c.baseView(record)
	view.Price = input.Price
	return view, nil
}

// Update applies a partial update. A price change runs through the same
// setPrice path as create, so ciphertext and original_price never diverge.
func (c *Catalog) Update(ctx context.Context, id string, input ProductInput) (*ProductView, error) {
	record, err := c.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	columns := make([]string, 0, 6)

	if input.Name != nil {
		record.Name = *input.Name
		columns = append(columns, "name")
	}
	if input.Description != nil {
		record.Description = *input.Description
		columns = append(columns, "description")
	}
	if input.ImageURL != nil {
		record.ImageURL = *input.ImageURL
		columns = append(columns, "image_url")
	}
	if input.TechnicalDetails != nil {
		record.TechnicalDetails = input.TechnicalDetails
		columns = append(columns, "technical_details")
	}
	if input.Price != nil {
		if err := c.setPrice(record, *input.Price); err != nil {
			return nil, err
		}
		columns = append(columns, "price", "original_price")
	}

	if len(columns) == 0 {
		return nil, errors.New("update requires at least one field", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest)
	}

	now := time.Now()
	record.UpdatedAt = &now
	columns = append(columns, "updated_at")

	updated, err := c.products.Update(ctx, record, columns...)
	if err != nil {
		return nil, err
	}

	view := c.baseView(updated)
	if input.Price != nil {
		view.Price = input.Price
	} else if amount, err := c.cipher.Decrypt(updated.Price); err == nil {
		view.Price = &amount
	}
	return view, nil
}

// Delete permanently removes a product; there is no soft delete
func (c *Catalog) Delete(ctx context.Context, id string) error {
	return c.products.Delete(ctx, id)
}

// setPrice is the single price mutation path: plaintext into original_price,
// ciphertext into price. Both create and update go through here.
func (c *Catalog) setPrice(product *Product, amount float64) error {
	ciphertext, err := c.cipher.Encrypt(amount)
	if err != nil {
		return err
	}

	product.OriginalPrice = amount
	product.Price = ciphertext
	return nil
}

// view applies the confidentiality rule: authenticated callers get the
// decrypted amount, anonymous callers get no price key at all. A ciphertext
// that fails to decrypt degrades that one product's price to absent.
func (c *Catalog) view(record *Product, auth *AuthContext) *ProductView {
	view := c.baseView(record)

	if auth == nil || !auth.Authenticated {
		return view
	}

	amount, err := c.cipher.Decrypt(record.Price)
	if err != nil {
		c.logger.Error("failed to decrypt product price", "product_id", record.ID, "error", err)
		return view
	}

	view.Price = &amount
	return view
}

func (c *Catalog) baseView(record *Product) *ProductView {
	return &ProductView{
		ID:               record.ID,
		Name:             record.Name,
		Description:      record.Description,
		ImageURL:         record.ImageURL,
		TechnicalDetails: record.TechnicalDetails,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
}
