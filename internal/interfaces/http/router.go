package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supermarket-pos/internal/application/auth"
	"github.com/jhoicas/supermarket-pos/internal/application/billing"
	"github.com/jhoicas/supermarket-pos/internal/application/catalog"
	"github.com/jhoicas/supermarket-pos/internal/application/reports"
	"github.com/jhoicas/supermarket-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *catalog.ProductUseCase
	CreateBill  *billing.CreateBillUseCase
	BillPDF     *billing.PDFUseCase
	DashboardUC *reports.DashboardUseCase
	SalesUC     *reports.SalesReportUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido). Las rutas fijas van antes que /:id.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/categories", productHandler.ListCategories)
	products.Get("/category/:category", productHandler.ListByCategory)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/out-of-stock", productHandler.ListOutOfStock)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)
	products.Post("/:id/adjust-stock", RequireRole(entity.RoleAdmin), productHandler.AdjustStock)
	products.Get("/:id/movements", productHandler.MovementHistory)

	// Ledger completo (protegido)
	protected.Get("/movements", productHandler.RecentMovements)

	// Bills (protegido)
	bills := protected.Group("/bills")
	billingHandler := NewBillingHandler(deps.CreateBill, deps.BillPDF)
	bills.Post("/", billingHandler.Create)
	bills.Get("/", billingHandler.List)
	bills.Get("/number/:number", billingHandler.GetByNumber)
	bills.Get("/:id", billingHandler.GetByID)
	bills.Get("/:id/pdf", billingHandler.DownloadPDF)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.DashboardUC, deps.SalesUC)
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)
	reportsGroup.Get("/sales", reportHandler.SalesReport)
	reportsGroup.Get("/daily", reportHandler.DailyReport)
	reportsGroup.Get("/monthly", reportHandler.MonthlyReport)
}
