package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/stockpilot/inventory-api/internal/config"
	dbpkg "github.com/stockpilot/inventory-api/internal/db"
	"github.com/stockpilot/inventory-api/internal/models"
	"github.com/stockpilot/inventory-api/internal/slug"
)

const seedPassword = "password"

var globalCategories = []string{
	"Electronics",
	"Home Appliances",
	"Office Supplies",
	"Clothing",
	"Toys",
}

func main() {
	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	admin := seedUser(db, "Admin", "admin@example.com", models.RoleAdmin)

	users := []*models.User{admin}
	for i := 1; i <= 5; i++ {
		u := seedUser(
			db,
			fmt.Sprintf("User %d", i),
			fmt.Sprintf("user%d@example.com", i),
			models.RoleNormal,
		)
		users = append(users, u)
	}

	categories := seedGlobalCategories(db)

	for _, u := range users {
		seedProducts(db, u, categories)
	}

	log.Println("seed complete")
}

func seedUser(db *gorm.DB, name, email, role string) *models.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}

	if err := db.Where("email = ?", email).FirstOrCreate(&user).Error; err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	return &user
}

func seedGlobalCategories(db *gorm.DB) []models.Category {
	out := make([]models.Category, 0, len(globalCategories))

	for _, name := range globalCategories {
		category := models.Category{
			Name: name,
			Slug: slug.Make(name),
		}
		if err := db.Where("name = ? AND user_id IS NULL", name).
			FirstOrCreate(&category).Error; err != nil {
			log.Fatalf("failed to seed category %s: %v", name, err)
		}
		out = append(out, category)
	}
	return out
}

func seedProducts(db *gorm.DB, user *models.User, categories []models.Category) {
	for i := 1; i <= 10; i++ {
		product := models.Product{
			Name:        fmt.Sprintf("Sample Product %d (%s)", i, user.Email),
			Description: "Seeded inventory row.",
			Price:       decimal.NewFromFloat(1 + rand.Float64()*499).Round(2),
			Stock:       rand.Intn(501),
			UserID:      user.ID,
			Image:       fmt.Sprintf("https://placehold.co/640x480?text=p%d", i),
		}

		if err := db.Where("user_id = ? AND name = ?", user.ID, product.Name).
			FirstOrCreate(&product).Error; err != nil {
			log.Fatalf("failed to seed product: %v", err)
		}

		// tag each row with one global category
		tags := categories[rand.Intn(len(categories))]
		if err := db.FirstOrCreate(&models.ProductCategory{
			ProductID:  product.ID,
			CategoryID: tags.ID,
		}).Error; err != nil {
			log.Fatalf("failed to tag product: %v", err)
		}
	}
}
