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

type DeleteProductInput struct {
	Actor     models.User
	ProductID uint
}

type DeleteProduct struct {
	repo domain.Repository
}

func NewDeleteProduct(repo domain.Repository) *DeleteProduct {
	return &DeleteProduct{repo: repo}
}

func (uc *DeleteProduct) Execute(
	ctx context.Context,
	in DeleteProductInput,
) error {

	p, err := uc.repo.GetProduct(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness(ErrProductNotFound)
		}
		return err
	}

	if !policy.CanProduct(&in.Actor, p, policy.ActionDelete) {
		return httperr.ErrBusiness(ErrForbidden)
	}

	return uc.repo.DeleteProduct(ctx, p)
}
