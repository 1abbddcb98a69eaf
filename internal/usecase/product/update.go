package product

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/stockpilot/inventory-api/internal/domain/catalog"
	"github.com/stockpilot/inventory-api/internal/httperr"
	"github.com/stockpilot/inventory-api/internal/models"
	"github.com/stockpilot/inventory-api/internal/policy"
)

const (
	ErrProductNotFound = "product_not_found"
	ErrForbidden       = "forbidden"
)

// ======================================================
// INPUT
// ======================================================

type UpdateProductInput struct {
	Actor     models.User
	ProductID uint
	Fields    Fields
}

// ======================================================
// USE CASE
// ======================================================

type UpdateProduct struct {
	repo domain.Repository
}

func NewUpdateProduct(repo domain.Repository) *UpdateProduct {
	return &UpdateProduct{repo: repo}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateProduct) Execute(
	ctx context.Context,
	in UpdateProductInput,
) (*models.Product, error) {

	p, err := uc.repo.GetProduct(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(ErrProductNotFound)
		}
		return nil, err
	}

	if !policy.CanProduct(&in.Actor, p, policy.ActionUpdate) {
		return nil, httperr.ErrBusiness(ErrForbidden)
	}

	// uniqueness probe excludes the row itself
	if err := validateFields(ctx, uc.repo, &in.Actor, in.Fields, p.ID); err != nil {
		return nil, err
	}

	p.Name = in.Fields.Name
	p.Description = in.Fields.Description
	p.Price = decimal.NewFromFloat(in.Fields.Price).Round(2)
	p.Stock = in.Fields.Stock
	p.Image = in.Fields.Image
	p.Gallery = in.Fields.Gallery

	ids := dedupe(in.Fields.CategoryIDs)
	if err := uc.repo.UpdateProduct(ctx, p, ids); err != nil {
		if httperr.IsBusiness(err, domain.ErrDuplicateProductName) {
			ve := httperr.NewValidation()
			ve.Add("name", "You already have a product with this name.")
			return nil, ve
		}
		return nil, err
	}

	return p, nil
}
