package product

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/stockpilot/inventory-api/internal/domain/catalog"
	"github.com/stockpilot/inventory-api/internal/httperr"
	"github.com/stockpilot/inventory-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateProductInput struct {
	Actor  models.User
	Fields Fields
}

// ======================================================
// USE CASE
// ======================================================

type CreateProduct struct {
	repo domain.Repository
}

func NewCreateProduct(repo domain.Repository) *CreateProduct {
	return &CreateProduct{repo: repo}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateProduct) Execute(
	ctx context.Context,
	in CreateProductInput,
) (*models.Product, error) {

	if err := validateFields(ctx, uc.repo, &in.Actor, in.Fields, 0); err != nil {
		return nil, err
	}

	p := &models.Product{
		Name:        in.Fields.Name,
		Description: in.Fields.Description,
		Price:       decimal.NewFromFloat(in.Fields.Price).Round(2),
		Stock:       in.Fields.Stock,
		UserID:      in.Actor.ID,
		Image:       in.Fields.Image,
		Gallery:     in.Fields.Gallery,
	}

	ids := dedupe(in.Fields.CategoryIDs)
	if err := uc.repo.CreateProduct(ctx, p, ids); err != nil {
		if httperr.IsBusiness(err, domain.ErrDuplicateProductName) {
			// lost the race with a concurrent create; same answer as the
			// synchronous pre-check
			ve := httperr.NewValidation()
			ve.Add("name", "You already have a product with this name.")
			return nil, ve
		}
		return nil, err
	}

	return p, nil
}
