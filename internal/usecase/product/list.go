package product

import (
	"context"

	domain "github.com/stockpilot/inventory-api/internal/domain/catalog"
	"github.com/stockpilot/inventory-api/internal/models"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

type ListProductsInput struct {
	Actor   models.User
	Page    int
	PerPage int
}

type ListProductsOutput struct {
	Products []models.Product
	Page     int
	PerPage  int
	Total    int64
}

type ListProducts struct {
	repo domain.Repository
}

func NewListProducts(repo domain.Repository) *ListProducts {
	return &ListProducts{repo: repo}
}

// Execute lists the actor's own products, newest first. Admins see every
// row.
func (uc *ListProducts) Execute(
	ctx context.Context,
	in ListProductsInput,
) (*ListProductsOutput, error) {

	page := in.Page
	if page <= 0 {
		page = 1
	}

	perPage := in.PerPage
	if perPage <= 0 || perPage > maxPerPage {
		perPage = defaultPerPage
	}

	products, total, err := uc.repo.ListProducts(
		ctx,
		in.Actor.ID,
		in.Actor.IsAdmin(),
		page,
		perPage,
	)
	if err != nil {
		return nil, err
	}

	return &ListProductsOutput{
		Products: products,
		Page:     page,
		PerPage:  perPage,
		Total:    total,
	}, nil
}
