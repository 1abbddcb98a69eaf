package dto

import (
	"github.com/stockpilot/inventory-api/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

type ProductDTO struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Stock       int               `json:"stock"`
	UserID      uint              `json:"user_id"`
	Category    *models.Category  `json:"category"`
	Categories  []models.Category `json:"categories"`
	CategoryIDs []uint            `json:"category_ids"`
	Image       string            `json:"image"`
	Gallery     models.Gallery    `json:"gallery"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

func NewProductDTO(p *models.Product) ProductDTO {
	price, _ := p.Price.Round(2).Float64()

	categories := p.Categories
	if categories == nil {
		categories = []models.Category{}
	}

	ids := make([]uint, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}

	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Stock:       p.Stock,
		UserID:      p.UserID,
		Category:    p.Category,
		Categories:  categories,
		CategoryIDs: ids,
		Image:       p.Image,
		Gallery:     p.Gallery,
		CreatedAt:   p.CreatedAt.Format(timeLayout),
		UpdatedAt:   p.UpdatedAt.Format(timeLayout),
	}
}

func NewProductList(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, NewProductDTO(&products[i]))
	}
	return out
}
