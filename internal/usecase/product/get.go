package product

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/stockpilot/inventory-api/internal/domain/catalog"
	"github.com/stockpilot/inventory-api/internal/httperr"
	"github.com/stockpilot/inventory-api/internal/models"
	"github.com/stockpilot/inventory-api/internal/policy"
)

type GetProductInput struct {
	Actor     models.User
	ProductID uint
}

type GetProduct struct {
	repo domain.Repository
}

func NewGetProduct(repo domain.Repository) *GetProduct {
	return &GetProduct{repo: repo}
}

func (uc *GetProduct) Execute(
	ctx context.Context,
	in GetProductInput,
) (*models.Product, error) {

	p, err := uc.repo.GetProduct(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(ErrProductNotFound)
		}
		return nil, err
	}

	if !policy.CanProduct(&in.Actor, p, policy.ActionView) {
		return nil, httperr.ErrBusiness(ErrForbidden)
	}

	return p, nil
}
