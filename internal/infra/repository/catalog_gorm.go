package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/stockpilot/inventory-api/internal/domain/catalog"
	"github.com/stockpilot/inventory-api/internal/httperr"
	"github.com/stockpilot/inventory-api/internal/models"
	"github.com/stockpilot/inventory-api/internal/slug"
)

const slugInsertAttempts = 3

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Categories
// --------------------------------------------------

func (r *CatalogGormRepository) ListCategories(
	ctx context.Context,
	userID uint,
) ([]models.Category, error) {

	var categories []models.Category
	if err := r.db.WithContext(ctx).
		Where("user_id IS NULL OR user_id = ?", userID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CatalogGormRepository) GetCategory(
	ctx context.Context,
	id uint,
) (*models.Category, error) {

	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CatalogGormRepository) CategoryNameExists(
	ctx context.Context,
	userID uint,
	name string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("name = ?", name).
		Where("user_id = ? OR user_id IS NULL", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CatalogGormRepository) CountCategories(
	ctx context.Context,
	ids []uint,
) (int64, error) {

	if len(ids) == 0 {
		return 0, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id IN ?", ids).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// assignSlug probes the taken slugs for the base candidate and picks the
// first free suffix. The read-then-write window is closed by the unique
// index on slug plus the retry in the callers.
func (r *CatalogGormRepository) assignSlug(
	ctx context.Context,
	category *models.Category,
	excludeID uint,
) error {

	base := slug.Make(category.Name)
	if base == "" {
		base = "category"
	}

	q := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("slug = ? OR slug LIKE ?", base, base+"-%")
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var taken []string
	if err := q.Pluck("slug", &taken).Error; err != nil {
		return err
	}

	category.Slug = slug.Next(base, taken)
	return nil
}

func (r *CatalogGormRepository) CreateCategory(
	ctx context.Context,
	category *models.Category,
) error {

	var lastErr error
	for attempt := 0; attempt < slugInsertAttempts; attempt++ {
		if err := r.assignSlug(ctx, category, 0); err != nil {
			return err
		}

		err := r.db.WithContext(ctx).Create(category).Error
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
		// concurrent create grabbed the slug first, probe again
		lastErr = err
	}
	return lastErr
}

func (r *CatalogGormRepository) UpdateCategory(
	ctx context.Context,
	category *models.Category,
) error {

	var lastErr error
	for attempt := 0; attempt < slugInsertAttempts; attempt++ {
		if err := r.assignSlug(ctx, category, category.ID); err != nil {
			return err
		}

		err := r.db.WithContext(ctx).Save(category).Error
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

func (r *CatalogGormRepository) DeleteCategory(
	ctx context.Context,
	category *models.Category,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("category_id = ?", category.ID).
			Delete(&models.ProductCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
}

// --------------------------------------------------
// Products
// --------------------------------------------------

func (r *CatalogGormRepository) ListProducts(
	ctx context.Context,
	ownerID uint,
	all bool,
	page int,
	perPage int,
) ([]models.Product, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Product{})
	if !all {
		q = q.Where("user_id = ?", ownerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	if err := q.
		Preload("Categories").
		Preload("Category").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *CatalogGormRepository) ListAllProducts(
	ctx context.Context,
	ownerID uint,
	all bool,
) ([]models.Product, error) {

	q := r.db.WithContext(ctx)
	if !all {
		q = q.Where("user_id = ?", ownerID)
	}

	var products []models.Product
	if err := q.
		Preload("Categories").
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *CatalogGormRepository) GetProduct(
	ctx context.Context,
	id uint,
) (*models.Product, error) {

	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Category").
		First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *CatalogGormRepository) ProductNameExists(
	ctx context.Context,
	ownerID uint,
	name string,
	excludeID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("user_id = ? AND name = ?", ownerID, name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CatalogGormRepository) CreateProduct(
	ctx context.Context,
	product *models.Product,
	categoryIDs []uint,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return err
		}
		return syncProductCategories(tx, product, categoryIDs)
	})

	if isUniqueViolation(err) {
		return httperr.ErrBusiness(domain.ErrDuplicateProductName)
	}
	return err
}

func (r *CatalogGormRepository) UpdateProduct(
	ctx context.Context,
	product *models.Product,
	categoryIDs []uint,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(product).Error; err != nil {
			return err
		}
		return syncProductCategories(tx, product, categoryIDs)
	})

	if isUniqueViolation(err) {
		return httperr.ErrBusiness(domain.ErrDuplicateProductName)
	}
	return err
}

func (r *CatalogGormRepository) DeleteProduct(
	ctx context.Context,
	product *models.Product,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("product_id = ?", product.ID).
			Delete(&models.ProductCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(product).Error
	})
}

// syncProductCategories replaces the product's tag set with exactly
// categoryIDs. An empty list clears all tags.
func syncProductCategories(
	tx *gorm.DB,
	product *models.Product,
	categoryIDs []uint,
) error {

	if err := tx.
		Where("product_id = ?", product.ID).
		Delete(&models.ProductCategory{}).Error; err != nil {
		return err
	}

	if len(categoryIDs) == 0 {
		product.Categories = []models.Category{}
		return nil
	}

	now := time.Now()
	rows := make([]models.ProductCategory, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		rows = append(rows, models.ProductCategory{
			ProductID:  product.ID,
			CategoryID: id,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return err
	}

	return tx.
		Where("id IN ?", categoryIDs).
		Order("name ASC").
		Find(&product.Categories).Error
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// sqlite wording, used by the test database
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Compile-time check
var _ domain.Repository = (*CatalogGormRepository)(nil)
