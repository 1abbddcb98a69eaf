package product

import (
	"context"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbpkg "github.com/stockpilot/inventory-api/internal/db"
	"github.com/stockpilot/inventory-api/internal/httperr"
	"github.com/stockpilot/inventory-api/internal/infra/repository"
	"github.com/stockpilot/inventory-api/internal/models"
)

func newTestRepo(t *testing.T) *repository.CatalogGormRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))
	return repository.NewCatalogGormRepository(db)
}

func seedCategory(t *testing.T, repo *repository.CatalogGormRepository, name string, userID uint) *models.Category {
	t.Helper()

	cat := models.Category{Name: name, UserID: &userID}
	require.NoError(t, repo.CreateCategory(context.Background(), &cat))
	return &cat
}

func gallery(n int) models.Gallery {
	g := make(models.Gallery, 0, n)
	for range n {
		g = append(g, models.GalleryItem{Image: "https://assets.example.com/storage/x.png"})
	}
	return g
}

func TestCreateProductValidation(t *testing.T) {
	repo := newTestRepo(t)
	actor := models.User{ID: 1, Role: models.RoleNormal}
	cat := seedCategory(t, repo, "Gear", actor.ID)

	valid := Fields{
		Name:        "Widget",
		Price:       9.99,
		Stock:       3,
		CategoryIDs: []uint{cat.ID},
	}

	tests := []struct {
		name      string
		mutate    func(f *Fields)
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing name",
			mutate:    func(f *Fields) { f.Name = "" },
			wantField: "name",
			wantMsg:   "The name field is required.",
		},
		{
			name:      "name too long",
			mutate:    func(f *Fields) { f.Name = strings.Repeat("a", 256) },
			wantField: "name",
			wantMsg:   "The name field must not be greater than 255 characters.",
		},
		{
			name:      "negative stock",
			mutate:    func(f *Fields) { f.Stock = -1 },
			wantField: "stock",
			wantMsg:   "The stock field must be at least 0.",
		},
		{
			name:      "negative price",
			mutate:    func(f *Fields) { f.Price = -0.01 },
			wantField: "price",
			wantMsg:   "The price field must be at least 0.",
		},
		{
			name:      "unknown category id",
			mutate:    func(f *Fields) { f.CategoryIDs = []uint{cat.ID, 999} },
			wantField: "category_ids",
			wantMsg:   "The selected category is invalid.",
		},
		{
			name:      "gallery over the cap",
			mutate:    func(f *Fields) { f.Gallery = gallery(7) },
			wantField: "gallery",
			wantMsg:   "The gallery field must not have more than 6 items.",
		},
	}

	uc := NewCreateProduct(repo)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)

			_, err := uc.Execute(context.Background(), CreateProductInput{
				Actor:  actor,
				Fields: f,
			})
			require.Error(t, err)

			ve, ok := httperr.AsValidation(err)
			require.True(t, ok, "expected a validation error, got %v", err)
			assert.Contains(t, ve.Fields[tt.wantField], tt.wantMsg)
		})
	}
}

func TestCreateProductAcceptsFullGallery(t *testing.T) {
	repo := newTestRepo(t)
	actor := models.User{ID: 1, Role: models.RoleNormal}

	uc := NewCreateProduct(repo)
	p, err := uc.Execute(context.Background(), CreateProductInput{
		Actor: actor,
		Fields: Fields{
			Name:    "Widget",
			Price:   10,
			Stock:   0,
			Gallery: gallery(models.GalleryMaxEntries),
		},
	})
	require.NoError(t, err)
	assert.Len(t, p.Gallery, models.GalleryMaxEntries)
	assert.Equal(t, actor.ID, p.UserID)
}

func TestCreateProductDuplicateNamePerOwner(t *testing.T) {
	repo := newTestRepo(t)
	alice := models.User{ID: 1, Role: models.RoleNormal}
	bob := models.User{ID: 2, Role: models.RoleNormal}

	uc := NewCreateProduct(repo)

	_, err := uc.Execute(context.Background(), CreateProductInput{
		Actor:  alice,
		Fields: Fields{Name: "Widget", Price: 1, Stock: 1},
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), CreateProductInput{
		Actor:  alice,
		Fields: Fields{Name: "Widget", Price: 1, Stock: 1},
	})
	require.Error(t, err)
	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields["name"], "You already have a product with this name.")

	// a different owner may reuse the name
	_, err = uc.Execute(context.Background(), CreateProductInput{
		Actor:  bob,
		Fields: Fields{Name: "Widget", Price: 1, Stock: 1},
	})
	require.NoError(t, err)
}

func TestUpdateProductOwnership(t *testing.T) {
	repo := newTestRepo(t)
	owner := models.User{ID: 1, Role: models.RoleNormal}
	other := models.User{ID: 2, Role: models.RoleNormal}
	admin := models.User{ID: 3, Role: models.RoleAdmin}

	created, err := NewCreateProduct(repo).Execute(context.Background(), CreateProductInput{
		Actor:  owner,
		Fields: Fields{Name: "Widget", Price: 5, Stock: 2},
	})
	require.NoError(t, err)

	uc := NewUpdateProduct(repo)

	_, err = uc.Execute(context.Background(), UpdateProductInput{
		Actor:     other,
		ProductID: created.ID,
		Fields:    Fields{Name: "Hijacked", Price: 5, Stock: 2},
	})
	assert.True(t, httperr.IsBusiness(err, ErrForbidden))

	updated, err := uc.Execute(context.Background(), UpdateProductInput{
		Actor:     admin,
		ProductID: created.ID,
		Fields:    Fields{Name: "Renamed", Price: 7.5, Stock: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "7.5", updated.Price.String())
	// ownership never transfers on an admin edit
	assert.Equal(t, owner.ID, updated.UserID)
}

func TestUpdateProductKeepingOwnName(t *testing.T) {
	repo := newTestRepo(t)
	owner := models.User{ID: 1, Role: models.RoleNormal}

	created, err := NewCreateProduct(repo).Execute(context.Background(), CreateProductInput{
		Actor:  owner,
		Fields: Fields{Name: "Widget", Price: 5, Stock: 2},
	})
	require.NoError(t, err)

	// resubmitting the unchanged name must not trip the uniqueness check
	_, err = NewUpdateProduct(repo).Execute(context.Background(), UpdateProductInput{
		Actor:     owner,
		ProductID: created.ID,
		Fields:    Fields{Name: "Widget", Price: 6, Stock: 2},
	})
	require.NoError(t, err)
}

func TestGetProductNotFound(t *testing.T) {
	repo := newTestRepo(t)
	actor := models.User{ID: 1, Role: models.RoleNormal}

	_, err := NewGetProduct(repo).Execute(context.Background(), GetProductInput{
		Actor:     actor,
		ProductID: 42,
	})
	assert.True(t, httperr.IsBusiness(err, ErrProductNotFound))
}

func TestDeleteProductOwnership(t *testing.T) {
	repo := newTestRepo(t)
	owner := models.User{ID: 1, Role: models.RoleNormal}
	other := models.User{ID: 2, Role: models.RoleNormal}

	created, err := NewCreateProduct(repo).Execute(context.Background(), CreateProductInput{
		Actor:  owner,
		Fields: Fields{Name: "Widget", Price: 5, Stock: 2},
	})
	require.NoError(t, err)

	uc := NewDeleteProduct(repo)

	err = uc.Execute(context.Background(), DeleteProductInput{
		Actor:     other,
		ProductID: created.ID,
	})
	assert.True(t, httperr.IsBusiness(err, ErrForbidden))

	require.NoError(t, uc.Execute(context.Background(), DeleteProductInput{
		Actor:     owner,
		ProductID: created.ID,
	}))

	err = uc.Execute(context.Background(), DeleteProductInput{
		Actor:     owner,
		ProductID: created.ID,
	})
	assert.True(t, httperr.IsBusiness(err, ErrProductNotFound))
}

func TestListProductsScopeAndPaging(t *testing.T) {
	repo := newTestRepo(t)
	alice := models.User{ID: 1, Role: models.RoleNormal}
	bob := models.User{ID: 2, Role: models.RoleNormal}
	admin := models.User{ID: 3, Role: models.RoleAdmin}

	create := NewCreateProduct(repo)
	for _, name := range []string{"A1", "A2", "A3"} {
		_, err := create.Execute(context.Background(), CreateProductInput{
			Actor:  alice,
			Fields: Fields{Name: name, Price: 1, Stock: 1},
		})
		require.NoError(t, err)
	}
	_, err := create.Execute(context.Background(), CreateProductInput{
		Actor:  bob,
		Fields: Fields{Name: "B1", Price: 1, Stock: 1},
	})
	require.NoError(t, err)

	uc := NewListProducts(repo)

	out, err := uc.Execute(context.Background(), ListProductsInput{Actor: alice, Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, out.Total)
	assert.Len(t, out.Products, 2)
	assert.Equal(t, 2, out.PerPage)

	out, err = uc.Execute(context.Background(), ListProductsInput{Actor: admin})
	require.NoError(t, err)
	assert.EqualValues(t, 4, out.Total)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, defaultPerPage, out.PerPage)

	// out-of-range values fall back to the defaults
	out, err = uc.Execute(context.Background(), ListProductsInput{Actor: alice, Page: -1, PerPage: 9999})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, defaultPerPage, out.PerPage)
}
