package routes

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/stockpilot/inventory-api/internal/config"
	"github.com/stockpilot/inventory-api/internal/handlers"
	infraRepo "github.com/stockpilot/inventory-api/internal/infra/repository"
	"github.com/stockpilot/inventory-api/internal/middleware"
	"github.com/stockpilot/inventory-api/internal/tokens"
	"github.com/stockpilot/inventory-api/internal/upload"
	ucDashboard "github.com/stockpilot/inventory-api/internal/usecase/dashboard"
	ucProduct "github.com/stockpilot/inventory-api/internal/usecase/product"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, rdb *redis.Client) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	catalogRepo := infraRepo.NewCatalogGormRepository(db)
	revoker := tokens.NewRevoker(rdb)
	gateway := upload.NewGateway(upload.NewS3Store(cfg))

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	createProductUC := ucProduct.NewCreateProduct(catalogRepo)
	updateProductUC := ucProduct.NewUpdateProduct(catalogRepo)
	getProductUC := ucProduct.NewGetProduct(catalogRepo)
	listProductsUC := ucProduct.NewListProducts(catalogRepo)
	deleteProductUC := ucProduct.NewDeleteProduct(catalogRepo)

	statsUC := ucDashboard.NewGetStats(catalogRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, revoker)
	meHandler := handlers.NewMeHandler(db)
	categoryHandler := handlers.NewCategoryHandler(catalogRepo)
	imageHandler := handlers.NewImageHandler(gateway, cfg)
	dashboardHandler := handlers.NewDashboardHandler(statsUC)

	productHandler := handlers.NewProductHandler(
		createProductUC,
		updateProductUC,
		getProductUC,
		listProductsUC,
		deleteProductUC,
	)

	productWebHandler := handlers.NewProductWebHandler(
		catalogRepo,
		createProductUC,
		updateProductUC,
		getProductUC,
		listProductsUC,
		deleteProductUC,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, revoker))
		{
			secured.GET("/user", meHandler.GetMe)
			secured.POST("/logout", authHandler.Logout)

			secured.POST("/images", imageHandler.Upload)

			secured.GET("/products", productHandler.List)
			secured.POST("/products", productHandler.Create)
			secured.GET("/products/:id", productHandler.Show)
			secured.PUT("/products/:id", productHandler.Update)
			secured.DELETE("/products/:id", productHandler.Delete)

			secured.GET("/categories", categoryHandler.List)
			secured.POST("/categories", categoryHandler.Create)
			secured.PUT("/categories/:id", categoryHandler.Update)
			secured.DELETE("/categories/:id", categoryHandler.Delete)
		}
	}

	// ======================================================
	// 🌍 ROTAS WEB (page payloads + flash)
	// ======================================================
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))

	web := r.Group("/web")
	web.Use(sessions.Sessions("inventory_session", sessionStore))
	web.Use(middleware.AuthMiddleware(cfg, revoker))
	{
		web.GET("/dashboard", dashboardHandler.Page)

		web.GET("/products", productWebHandler.Index)
		web.GET("/products/create", productWebHandler.Create)
		web.POST("/products", productWebHandler.Store)
		web.GET("/products/:id", productWebHandler.Show)
		web.GET("/products/:id/edit", productWebHandler.Edit)
		web.PUT("/products/:id", productWebHandler.Update)
		web.DELETE("/products/:id", productWebHandler.Destroy)

		web.POST("/categories", categoryHandler.CreateWithNameCheck)
		web.PUT("/categories/:id", categoryHandler.Update)
		web.DELETE("/categories/:id", categoryHandler.Delete)

		web.POST("/images/upload", imageHandler.UploadWeb)
	}
}
