package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-tienda/internal/application/analytics"
	"github.com/jhoicas/gestor-tienda/internal/application/auth"
	"github.com/jhoicas/gestor-tienda/internal/application/inventory"
	"github.com/jhoicas/gestor-tienda/internal/application/sales"
	"github.com/jhoicas/gestor-tienda/internal/application/usecase"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	UserUC           *usecase.UserUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	RegisterSale     *sales.RegisterSaleUseCase
	History          *sales.HistoryUseCase
	UndoSale         *sales.UndoSaleUseCase
	Report           *sales.ReportUseCase
	Dashboard        *analytics.DashboardUseCase
	LoginLimiter     *LoginRateLimiter // nil desactiva el límite
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	if deps.LoginLimiter != nil {
		api.Post("/auth/login", deps.LoginLimiter.Handler(), authHandler.Login)
	} else {
		api.Post("/auth/login", authHandler.Login)
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	admin := RequireRole(entity.RoleAdmin)
	stockManagers := RequireRole(entity.RoleAdmin, entity.RoleInventarista)
	sellers := RequireRole(entity.SellerRoles...)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Replenishment)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", stockManagers, productHandler.Create)
	products.Put("/:id", stockManagers, productHandler.Update)
	products.Delete("/:id", stockManagers, productHandler.Delete)
	products.Post("/:id/movements", stockManagers, inventoryHandler.RegisterMovement)

	protected.Get("/inventory/replenishment-list", stockManagers, inventoryHandler.GetReplenishmentList)

	// Sales: las rutas estáticas van antes de /:id
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.RegisterSale, deps.History, deps.UndoSale, deps.Report)
	salesGroup.Get("/stock-check", saleHandler.StockCheck)
	salesGroup.Get("/report/pdf", saleHandler.ReportPDF)
	salesGroup.Get("/report/xml", saleHandler.ReportXML)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", sellers, saleHandler.Register)
	salesGroup.Delete("/", admin, saleHandler.DeleteAll)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/undo", sellers, saleHandler.Undo)
	salesGroup.Delete("/:id", admin, saleHandler.Delete)

	protected.Get("/dashboard", admin, NewDashboardHandler(deps.Dashboard).GetSummary)

	// Users: cambio de contraseña propio para cualquier rol, el resto solo admin
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Put("/me/password", userHandler.ChangePassword)
	users.Post("/", admin, userHandler.Create)
	users.Get("/", admin, userHandler.List)
	users.Get("/:id", admin, userHandler.GetByID)
	users.Put("/:id", admin, userHandler.Update)
	users.Delete("/:id", admin, userHandler.Delete)
}
