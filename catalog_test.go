package catalog_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/goliatone/go-catalog"
)

type fakeProducts struct {
	order []string
	items map[string]*catalog.Product
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{items: map[string]*catalog.Product{}}
}

func (f *fakeProducts) List(ctx context.Context) ([]*catalog.Product, error) {
	out := make([]*catalog.Product, 0, len(f.order))
	for _, id := range f.order {
		record := *f.items[id]
		out = append(out, &record)
	}
	return out, nil
}

func (f *fakeProducts) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	record, ok := f.items[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	clone := *record
	return &clone, nil
}

func (f *fakeProducts) Create(ctx context.Context, product *catalog.Product) (*catalog.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	clone := *product
	f.items[product.ID.String()] = &clone
	f.order = append(f.order, product.ID.String())
	return product, nil
}

func (f *fakeProducts) Update(ctx context.Context, product *catalog.Product, columns ...string) (*catalog.Product, error) {
	stored, ok := f.items[product.ID.String()]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	for _, column := range columns {
		switch column {
		case "name":
			stored.Name = product.Name
		case "description":
			stored.Description = product.Description
		case "image_url":
			stored.ImageURL = product.ImageURL
		case "technical_details":
			stored.TechnicalDetails = product.TechnicalDetails
		case "price":
			stored.Price = product.Price
		case "original_price":
			stored.OriginalPrice = product.OriginalPrice
		case "updated_at":
			stored.UpdatedAt = product.UpdatedAt
		}
	}
	clone := *stored
	return &clone, nil
}

func (f *fakeProducts) Delete(ctx context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return catalog.ErrProductNotFound
	}
	delete(f.items, id)
	for i, stored := range f.order {
		if stored == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func strptr(s string) *string   { return &s }
func f64ptr(v float64) *float64 { return &v }

func newCatalogForTest(t *testing.T) (*catalog.Catalog, *fakeProducts, *catalog.PriceCipher) {
	t.Helper()

	cipher, err := catalog.NewPriceCipher("fixture-secret", catalog.CipherModeGCM, nil)
	require.NoError(t, err)

	repo := newFakeProducts()
	return catalog.NewCatalog(repo, cipher), repo, cipher
}

func createFixtureProduct(t *testing.T, svc *catalog.Catalog, price float64) *catalog.ProductView {
	t.Helper()

	view, err := svc.Create(context.Background(), catalog.ProductInput{
		Name:        strptr("Widget"),
		Description: strptr("A fine widget"),
		ImageURL:    strptr("https://example.com/widget.png"),
		Price:       f64ptr(price),
		TechnicalDetails: map[string]any{
			"weight": "2kg",
		},
	})
	require.NoError(t, err)
	return view
}

func TestCatalog_Create(t *testing.T) {
	svc, repo, cipher := newCatalogForTest(t)

	view := createFixtureProduct(t, svc, 199.99)
	require.NotNil(t, view.Price)
	assert.Equal(t, 199.99, *view.Price)

	stored := repo.items[view.ID.String()]
	require.NotNil(t, stored)

	// Persisted price is ciphertext, round-trippable with the secret.
	assert.NotEqual(t, "199.99", stored.Price)
	amount, err := cipher.Decrypt(stored.Price)
	require.NoError(t, err)
	assert.Equal(t, 199.99, amount)
	assert.Equal(t, 199.99, stored.OriginalPrice)
}

func TestCatalog_Create_MissingFields(t *testing.T) {
	svc, _, _ := newCatalogForTest(t)

	_, err := svc.Create(context.Background(), catalog.ProductInput{
		Name: strptr("Widget"),
	})
	assert.Error(t, err)
}

func TestCatalog_PriceVisibility(t *testing.T) {
	svc, _, _ := newCatalogForTest(t)
	created := createFixtureProduct(t, svc, 49.5)

	authed := &catalog.AuthContext{Authenticated: true, User: fixtureUser()}

	t.Run("authenticated caller sees decrypted price", func(t *testing.T) {
		view, err := svc.Get(context.Background(), authed, created.ID.String())
		require.NoError(t, err)
		require.NotNil(t, view.Price)
		assert.Equal(t, 49.5, *view.Price)
	})

	t.Run("anonymous caller gets no price key at all", func(t *testing.T) {
		view, err := svc.Get(context.Background(), catalog.Anonymous(), created.ID.String())
		require.NoError(t, err)
		assert.Nil(t, view.Price)

		payload, err := json.Marshal(view)
		require.NoError(t, err)
		assert.NotContains(t, string(payload), `"price"`)
	})

	t.Run("nil auth context reads as anonymous", func(t *testing.T) {
		view, err := svc.Get(context.Background(), nil, created.ID.String())
		require.NoError(t, err)
		assert.Nil(t, view.Price)
	})
}

func TestCatalog_List_CorruptCiphertextDegrades(t *testing.T) {
	svc, repo, _ := newCatalogForTest(t)
	good := createFixtureProduct(t, svc, 10)
	bad := createFixtureProduct(t, svc, 20)

	repo.items[bad.ID.String()].Price = "deadbeef"

	authed := &catalog.AuthContext{Authenticated: true, User: fixtureUser()}
	views, err := svc.List(context.Background(), authed)
	require.NoError(t, err)
	require.Len(t, views, 2)

	// One corrupt entry degrades only its own price, never the response.
	byID := map[string]*catalog.ProductView{}
	for _, view := range views {
		byID[view.ID.String()] = view
	}
	require.NotNil(t, byID[good.ID.String()].Price)
	assert.Equal(t, 10.0, *byID[good.ID.String()].Price)
	assert.Nil(t, byID[bad.ID.String()].Price)
}

func TestCatalog_Update(t *testing.T) {
	svc, repo, cipher := newCatalogForTest(t)
	created := createFixtureProduct(t, svc, 100)

	t.Run("price change re-encrypts through the same path as create", func(t *testing.T) {
		view, err := svc.Update(context.Background(), created.ID.String(), catalog.ProductInput{
			Price: f64ptr(150.25),
		})
		require.NoError(t, err)
		require.NotNil(t, view.Price)
		assert.Equal(t, 150.25, *view.Price)

		stored := repo.items[created.ID.String()]
		amount, err := cipher.Decrypt(stored.Price)
		require.NoError(t, err)
		assert.Equal(t, 150.25, amount)
		assert.Equal(t, 150.25, stored.OriginalPrice)
	})

	t.Run("update without price leaves ciphertext untouched", func(t *testing.T) {
		before := repo.items[created.ID.String()].Price

		_, err := svc.Update(context.Background(), created.ID.String(), catalog.ProductInput{
			Name: strptr("Widget v2"),
		})
		require.NoError(t, err)

		assert.Equal(t, before, repo.items[created.ID.String()].Price)
		assert.Equal(t, "Widget v2", repo.items[created.ID.String()].Name)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		_, err := svc.Update(context.Background(), created.ID.String(), catalog.ProductInput{})
		assert.Error(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(context.Background(), uuid.NewString(), catalog.ProductInput{
			Name: strptr("nope"),
		})
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})
}

func TestCatalog_Delete(t *testing.T) {
	svc, _, _ := newCatalogForTest(t)
	created := createFixtureProduct(t, svc, 5)

	require.NoError(t, svc.Delete(context.Background(), created.ID.String()))

	_, err := svc.Get(context.Background(), catalog.Anonymous(), created.ID.String())
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID.String()), catalog.ErrProductNotFound)
}
