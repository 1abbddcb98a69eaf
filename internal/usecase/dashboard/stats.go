package dashboard

import (
	"context"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	domain "github.com/stockpilot/inventory-api/internal/domain/catalog"
	"github.com/stockpilot/inventory-api/internal/models"
)

// LowStockThreshold marks products running out: 0 < stock <= threshold.
const LowStockThreshold = 5

const topProductsLimit = 5

type ProductStat struct {
	ID         uint              `json:"id"`
	Name       string            `json:"name"`
	Price      float64           `json:"price"`
	Stock      int               `json:"stock"`
	Capital    float64           `json:"capital"`
	Image      string            `json:"image"`
	Categories []models.Category `json:"categories"`
}

type CategoryShare struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type Stats struct {
	TotalProducts         int             `json:"totalProducts"`
	TotalCategories       int             `json:"totalCategories"`
	TotalCapital          float64         `json:"totalCapital"`
	AveragePrice          float64         `json:"averagePrice"`
	HighestPriceProduct   *ProductStat    `json:"highestPriceProduct"`
	HighestCapitalProduct *ProductStat    `json:"highestCapitalProduct"`
	LowStockProducts      []ProductStat   `json:"lowStockProducts"`
	OutOfStockProducts    []ProductStat   `json:"outOfStockProducts"`
	CategoryDistribution  []CategoryShare `json:"categoryDistribution"`
	TopProducts           []ProductStat   `json:"topProducts"`
}

// Compute derives the full statistics block from the visible product set.
// Pure: recomputed on every request, no caching. Ties on the highest-price
// and highest-capital picks go to the first product in input order.
func Compute(products []models.Product) Stats {
	stats := Stats{
		LowStockProducts:     []ProductStat{},
		OutOfStockProducts:   []ProductStat{},
		CategoryDistribution: []CategoryShare{},
		TopProducts:          []ProductStat{},
	}

	stats.TotalProducts = len(products)

	rows := make([]ProductStat, 0, len(products))
	totalCapital := decimal.Zero
	priceSum := decimal.Zero

	var (
		highestPrice   *ProductStat
		highestCapital *ProductStat
		bestPrice      decimal.Decimal
		bestCapital    decimal.Decimal
	)

	for i := range products {
		p := &products[i]
		capital := p.Capital()

		row := ProductStat{
			ID:         p.ID,
			Name:       p.Name,
			Price:      round2(p.Price),
			Stock:      p.Stock,
			Capital:    round2(capital),
			Image:      p.Image,
			Categories: p.Categories,
		}
		rows = append(rows, row)

		totalCapital = totalCapital.Add(capital)
		priceSum = priceSum.Add(p.Price)

		if highestPrice == nil || p.Price.GreaterThan(bestPrice) {
			highestPrice = &rows[len(rows)-1]
			bestPrice = p.Price
		}
		if highestCapital == nil || capital.GreaterThan(bestCapital) {
			highestCapital = &rows[len(rows)-1]
			bestCapital = capital
		}

		switch {
		case p.Stock == 0:
			stats.OutOfStockProducts = append(stats.OutOfStockProducts, row)
		case p.Stock <= LowStockThreshold:
			stats.LowStockProducts = append(stats.LowStockProducts, row)
		}
	}

	stats.TotalCapital = round2(totalCapital)
	stats.HighestPriceProduct = highestPrice
	stats.HighestCapitalProduct = highestCapital

	if len(products) > 0 {
		avg := priceSum.Div(decimal.NewFromInt(int64(len(products))))
		stats.AveragePrice = round2(avg)
	}

	stats.TotalCategories, stats.CategoryDistribution = distribution(products)

	top := make([]ProductStat, len(rows))
	copy(top, rows)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Capital > top[j].Capital
	})
	if len(top) > topProductsLimit {
		top = top[:topProductsLimit]
	}
	stats.TopProducts = top

	return stats
}

// distribution counts, per category appearing on at least one product, how
// many products carry the tag, with the share of the total product count
// rounded to one decimal. Sorted by count descending; ties keep first-seen
// order.
func distribution(products []models.Product) (int, []CategoryShare) {
	type bucket struct {
		share CategoryShare
		seen  int
	}

	index := map[uint]int{}
	buckets := []bucket{}

	for i := range products {
		for _, cat := range products[i].Categories {
			if pos, ok := index[cat.ID]; ok {
				buckets[pos].share.Count++
				continue
			}
			index[cat.ID] = len(buckets)
			buckets = append(buckets, bucket{
				share: CategoryShare{ID: cat.ID, Name: cat.Name, Count: 1},
				seen:  len(buckets),
			})
		}
	}

	total := len(products)
	shares := make([]CategoryShare, 0, len(buckets))
	for _, b := range buckets {
		if total > 0 {
			b.share.Percentage = math.Round(float64(b.share.Count)/float64(total)*1000) / 10
		}
		shares = append(shares, b.share)
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Count > shares[j].Count
	})

	return len(buckets), shares
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// ======================================================
// USE CASE
// ======================================================

type GetStats struct {
	repo domain.Repository
}

func NewGetStats(repo domain.Repository) *GetStats {
	return &GetStats{repo: repo}
}

func (uc *GetStats) Execute(
	ctx context.Context,
	actor models.User,
) (*Stats, error) {

	products, err := uc.repo.ListAllProducts(ctx, actor.ID, actor.IsAdmin())
	if err != nil {
		return nil, err
	}

	stats := Compute(products)
	return &stats, nil
}
