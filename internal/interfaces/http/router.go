package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/reports"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	ProductUC  *usecase.ProductUseCase
	RecordSale *sales.RecordSaleUseCase
	SalesQuery *sales.QueryUseCase
	ReportUC   *reports.ReportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleAdmin)
	anyStaff := RequireRole(entity.RoleAdmin, entity.RoleStaff)

	// Auth (público salvo el listado de usuarios)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/users", AuthMiddleware(deps.JWTSecret), authHandler.ListUsers)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products: lectura para cualquier usuario autenticado, escritura solo Admin
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock) // antes de /:id
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Sales
	salesGroup := protected.Group("/sales", anyStaff)
	saleHandler := NewSaleHandler(deps.RecordSale, deps.SalesQuery)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/product/:productId", saleHandler.ListByProduct)
	salesGroup.Get("/user/:userId", saleHandler.ListByUser)

	// Reports
	reportsGroup := protected.Group("/reports", anyStaff)
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/stock-history", reportHandler.StockHistory)
	reportsGroup.Get("/sales-summary", reportHandler.SalesSummary)
	reportsGroup.Get("/sales-summary/pdf", reportHandler.SalesSummaryPDF)
	reportsGroup.Get("/top-selling-products", reportHandler.TopSellingProducts)
}
