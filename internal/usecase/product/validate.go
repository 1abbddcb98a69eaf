package product

import (
	"context"

	domain "github.com/stockpilot/inventory-api/internal/domain/catalog"
	"github.com/stockpilot/inventory-api/internal/httperr"
	"github.com/stockpilot/inventory-api/internal/models"
)

const nameMaxLen = 255

// Fields is the mutable product payload shared by create and update.
type Fields struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	CategoryIDs []uint
	Image       string
	Gallery     models.Gallery
}

// validateFields runs every field check before any mutation and collects
// the failures into a single per-field error bag. excludeID is the row to
// skip in the per-owner name uniqueness probe (0 on create).
func validateFields(
	ctx context.Context,
	repo domain.Repository,
	actor *models.User,
	in Fields,
	excludeID uint,
) error {

	ve := httperr.NewValidation()

	switch {
	case in.Name == "":
		ve.Add("name", "The name field is required.")
	case len(in.Name) > nameMaxLen:
		ve.Add("name", "The name field must not be greater than 255 characters.")
	default:
		taken, err := repo.ProductNameExists(ctx, actor.ID, in.Name, excludeID)
		if err != nil {
			return err
		}
		if taken {
			ve.Add("name", "You already have a product with this name.")
		}
	}

	if in.Stock < 0 {
		ve.Add("stock", "The stock field must be at least 0.")
	}

	if in.Price < 0 {
		ve.Add("price", "The price field must be at least 0.")
	}

	if len(in.CategoryIDs) > 0 {
		ids := dedupe(in.CategoryIDs)
		count, err := repo.CountCategories(ctx, ids)
		if err != nil {
			return err
		}
		if count != int64(len(ids)) {
			ve.Add("category_ids", "The selected category is invalid.")
		}
	}

	if len(in.Gallery) > models.GalleryMaxEntries {
		ve.Add("gallery", "The gallery field must not have more than 6 items.")
	}

	return ve.OrNil()
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
