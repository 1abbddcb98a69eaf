package catalog

import (
	"context"

	"github.com/stockpilot/inventory-api/internal/models"
)

// Business error codes surfaced by repository implementations.
const (
	ErrDuplicateProductName = "duplicate_product_name"
)

type Repository interface {
	// -------- Categories --------
	ListCategories(
		ctx context.Context,
		userID uint,
	) ([]models.Category, error)

	GetCategory(
		ctx context.Context,
		id uint,
	) (*models.Category, error)

	CategoryNameExists(
		ctx context.Context,
		userID uint,
		name string,
	) (bool, error)

	CountCategories(
		ctx context.Context,
		ids []uint,
	) (int64, error)

	// CreateCategory derives a unique slug from category.Name before
	// inserting the row.
	CreateCategory(
		ctx context.Context,
		category *models.Category,
	) error

	// UpdateCategory re-derives the slug, excluding the row itself from
	// the uniqueness probe.
	UpdateCategory(
		ctx context.Context,
		category *models.Category,
	) error

	// DeleteCategory hard-deletes the row and its tagging join rows.
	DeleteCategory(
		ctx context.Context,
		category *models.Category,
	) error

	// -------- Products --------
	ListProducts(
		ctx context.Context,
		ownerID uint,
		all bool,
		page int,
		perPage int,
	) ([]models.Product, int64, error)

	ListAllProducts(
		ctx context.Context,
		ownerID uint,
		all bool,
	) ([]models.Product, error)

	GetProduct(
		ctx context.Context,
		id uint,
	) (*models.Product, error)

	ProductNameExists(
		ctx context.Context,
		ownerID uint,
		name string,
		excludeID uint,
	) (bool, error)

	// CreateProduct inserts the row and synchronizes its tags to exactly
	// categoryIDs.
	CreateProduct(
		ctx context.Context,
		product *models.Product,
		categoryIDs []uint,
	) error

	UpdateProduct(
		ctx context.Context,
		product *models.Product,
		categoryIDs []uint,
	) error

	DeleteProduct(
		ctx context.Context,
		product *models.Product,
	) error
}
