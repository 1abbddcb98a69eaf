package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbpkg "github.com/stockpilot/inventory-api/internal/db"
	"github.com/stockpilot/inventory-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second connection would get its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	user := models.User{
		Name:         "Test",
		Email:        email,
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func newTestProduct(t *testing.T, db *gorm.DB, userID uint, name string, price float64, stock int) *models.Product {
	t.Helper()

	p := models.Product{
		Name:   name,
		Price:  decimal.NewFromFloat(price),
		Stock:  stock,
		UserID: userID,
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func TestCreateCategorySlugSuffixes(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogGormRepository(db)
	ctx := context.Background()

	user := newTestUser(t, db, "a@example.com", models.RoleNormal)

	slugs := make([]string, 0, 3)
	for range 3 {
		cat := models.Category{Name: "Foo", UserID: &user.ID}
		require.NoError(t, repo.CreateCategory(ctx, &cat))
		slugs = append(slugs, cat.Slug)
	}

	require.Equal(t, []string{"foo", "foo-1", "foo-2"}, slugs)
}

func TestUpdateCategoryKeepsOwnSlug(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogGormRepository(db)
	ctx := context.Background()

	user := newTestUser(t, db, "a@example.com", models.RoleNormal)

	cat := models.Category{Name: "Foo", UserID: &user.ID}
	require.NoError(t, repo.CreateCategory(ctx, &cat))

	// renaming to the same display name must not grow a suffix
	cat.Name = "Foo"
	require.NoError(t, repo.UpdateCategory(ctx, &cat))
	require.Equal(t, "foo", cat.Slug)

	cat.Name = "Bar"
	require.NoError(t, repo.UpdateCategory(ctx, &cat))
	require.Equal(t, "bar", cat.Slug)
}

func TestDeleteCategoryCascadesJoinRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogGormRepository(db)
	ctx := context.Background()

	user := newTestUser(t, db, "a@example.com", models.RoleNormal)

	cat := models.Category{Name: "Gear", UserID: &user.ID}
	require.NoError(t, repo.CreateCategory(ctx, &cat))

	p := &models.Product{
		Name:   "Widget",
		Price:  decimal.NewFromInt(10),
		Stock:  3,
		UserID: user.ID,
	}
	require.NoError(t, repo.CreateProduct(ctx, p, []uint{cat.ID}))

	var joins int64
	require.NoError(t, db.Model(&models.ProductCategory{}).Count(&joins).Error)
	require.EqualValues(t, 1, joins)

	require.NoError(t, repo.DeleteCategory(ctx, &cat))

	require.NoError(t, db.Model(&models.ProductCategory{}).Count(&joins).Error)
	require.EqualValues(t, 0, joins)
}

func TestSyncCategoriesReplacesSet(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogGormRepository(db)
	ctx := context.Background()

	user := newTestUser(t, db, "a@example.com", models.RoleNormal)

	ids := make([]uint, 0, 3)
	for _, name := range []string{"One", "Two", "Three"} {
		cat := models.Category{Name: name, UserID: &user.ID}
		require.NoError(t, repo.CreateCategory(ctx, &cat))
		ids = append(ids, cat.ID)
	}

	p := &models.Product{
		Name:   "Widget",
		Price:  decimal.NewFromInt(5),
		Stock:  1,
		UserID: user.ID,
	}
	require.NoError(t, repo.CreateProduct(ctx, p, ids))
	require.Len(t, p.Categories, 3)

	// shrink the set
	require.NoError(t, repo.UpdateProduct(ctx, p, ids[:1]))
	require.Len(t, p.Categories, 1)
	require.Equal(t, ids[0], p.Categories[0].ID)

	// empty list clears every tag
	require.NoError(t, repo.UpdateProduct(ctx, p, nil))
	require.Empty(t, p.Categories)

	var joins int64
	require.NoError(t, db.Model(&models.ProductCategory{}).Count(&joins).Error)
	require.EqualValues(t, 0, joins)
}

func TestListProductsScoping(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogGormRepository(db)
	ctx := context.Background()

	alice := newTestUser(t, db, "alice@example.com", models.RoleNormal)
	bob := newTestUser(t, db, "bob@example.com", models.RoleNormal)

	newTestProduct(t, db, alice.ID, "A1", 10, 1)
	newTestProduct(t, db, alice.ID, "A2", 20, 2)
	newTestProduct(t, db, bob.ID, "B1", 30, 3)

	own, total, err := repo.ListProducts(ctx, alice.ID, false, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	for _, p := range own {
		require.Equal(t, alice.ID, p.UserID)
	}

	all, total, err := repo.ListProducts(ctx, alice.ID, true, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, all, 3)
}

func TestProductNameExistsPerOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogGormRepository(db)
	ctx := context.Background()

	alice := newTestUser(t, db, "alice@example.com", models.RoleNormal)
	bob := newTestUser(t, db, "bob@example.com", models.RoleNormal)

	p := newTestProduct(t, db, alice.ID, "Widget", 10, 1)

	taken, err := repo.ProductNameExists(ctx, alice.ID, "Widget", 0)
	require.NoError(t, err)
	require.True(t, taken)

	// excluding the row itself frees the name for updates
	taken, err = repo.ProductNameExists(ctx, alice.ID, "Widget", p.ID)
	require.NoError(t, err)
	require.False(t, taken)

	// a different owner may reuse the name
	taken, err = repo.ProductNameExists(ctx, bob.ID, "Widget", 0)
	require.NoError(t, err)
	require.False(t, taken)
}
