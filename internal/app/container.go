// Package app arma las dependencias de la aplicación (repositorios, casos de uso, HTTP)
// según la configuración. Lo comparten cmd/api y cmd/tienda.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/gestor-tienda/internal/application/analytics"
	"github.com/jhoicas/gestor-tienda/internal/application/auth"
	"github.com/jhoicas/gestor-tienda/internal/application/inventory"
	"github.com/jhoicas/gestor-tienda/internal/application/sales"
	"github.com/jhoicas/gestor-tienda/internal/application/usecase"
	"github.com/jhoicas/gestor-tienda/internal/domain/repository"
	"github.com/jhoicas/gestor-tienda/internal/domain/sale"
	"github.com/jhoicas/gestor-tienda/internal/infrastructure/memory"
	"github.com/jhoicas/gestor-tienda/internal/infrastructure/pdf"
	"github.com/jhoicas/gestor-tienda/internal/infrastructure/postgres"
	"github.com/jhoicas/gestor-tienda/internal/infrastructure/xml"
	apphttp "github.com/jhoicas/gestor-tienda/internal/interfaces/http"
	"github.com/jhoicas/gestor-tienda/internal/metrics"
	"github.com/jhoicas/gestor-tienda/pkg/config"
	"github.com/jhoicas/gestor-tienda/pkg/logger"
)

// MetricsNamespace prefijo de todas las métricas de la aplicación.
const MetricsNamespace = "tienda"

// Container agrupa las dependencias ya construidas.
type Container struct {
	Config  *config.Config
	Log     *logger.Logger
	Metrics *metrics.Provider

	Products repository.ProductRepository
	Users    repository.UserRepository
	Sales    repository.SaleRepository

	ProductUC        *usecase.ProductUseCase
	UserUC           *usecase.UserUseCase
	AuthUC           *auth.AuthUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	RegisterSale     *sales.RegisterSaleUseCase
	History          *sales.HistoryUseCase
	UndoSale         *sales.UndoSaleUseCase
	Report           *sales.ReportUseCase
	Dashboard        *analytics.DashboardUseCase

	pool *pgxpool.Pool
}

// New construye el contenedor. Con STORAGE=postgres abre el pool (el esquema lo crea `migrate`).
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}

	switch cfg.Storage {
	case config.StorageMemory:
		c.Products = memory.NewProductRepository()
		c.Users = memory.NewUserRepository()
		c.Sales = memory.NewSaleRepository()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		c.pool = pool
		c.Products = postgres.NewProductRepository(pool)
		c.Users = postgres.NewUserRepository(pool)
		c.Sales = postgres.NewSaleRepository(pool)
	}

	mp, err := metrics.NewProvider()
	if err != nil {
		c.Close(ctx)
		return nil, err
	}
	c.Metrics = mp
	bm, err := metrics.NewBusinessMetrics(mp.MeterProvider(), MetricsNamespace)
	if err != nil {
		c.Close(ctx)
		return nil, fmt.Errorf("métricas de negocio: %w", err)
	}

	c.wire(bm)
	return c, nil
}

// NewWithRepositories arma los casos de uso sobre repositorios ya construidos (tests).
func NewWithRepositories(cfg *config.Config, log *logger.Logger, products repository.ProductRepository, users repository.UserRepository, salesRepo repository.SaleRepository) *Container {
	c := &Container{Config: cfg, Log: log, Products: products, Users: users, Sales: salesRepo}
	c.wire(metrics.NewNoOpBusinessMetrics())
	return c
}

func (c *Container) wire(bm metrics.BusinessMetrics) {
	cfg := c.Config
	locker := inventory.NewStockLocker()

	validator := sale.NewValidator(c.Products, c.Users, sale.WithCategories(cfg.Sales.AllowedCategories...))

	c.ProductUC = usecase.NewProductUseCase(c.Products, c.Sales, locker)
	c.UserUC = usecase.NewUserUseCase(c.Users, c.Sales)
	c.AuthUC = auth.NewAuthUseCase(c.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.PasswordMaxAge())
	c.RegisterMovement = inventory.NewRegisterMovementUseCase(c.Products, locker, bm, c.Log.Named("inventory"))
	c.Replenishment = inventory.NewReplenishmentUseCase(c.Products)
	c.RegisterSale = sales.NewRegisterSaleUseCase(validator, c.Products, c.Sales, locker, bm, c.Log.Named("sales"))
	c.History = sales.NewHistoryUseCase(c.Sales, c.Products, c.Users, c.Log.Named("sales"))
	c.UndoSale = sales.NewUndoSaleUseCase(c.Sales, c.Products, locker, bm, c.Log.Named("sales"))
	c.Report = sales.NewReportUseCase(c.History, pdf.NewMarotoPDFGenerator(), xml.NewEtreeExporter(), cfg.App.Name)
	c.Dashboard = analytics.NewDashboardUseCase(c.Sales, c.Products)
}

// Bootstrap crea el admin configurado si todavía no existe.
func (c *Container) Bootstrap(ctx context.Context) error {
	if c.Config.Admin.Name == "" {
		return nil
	}
	created, err := c.UserUC.EnsureAdmin(ctx, c.Config.Admin.Name, c.Config.Admin.Password)
	if err != nil {
		return fmt.Errorf("crear admin inicial: %w", err)
	}
	if created {
		c.Log.Info().Str("name", c.Config.Admin.Name).Msg("admin inicial creado")
	}
	return nil
}

// RouterDeps dependencias del router HTTP.
func (c *Container) RouterDeps() apphttp.RouterDeps {
	return apphttp.RouterDeps{
		AuthUC:           c.AuthUC,
		ProductUC:        c.ProductUC,
		UserUC:           c.UserUC,
		RegisterMovement: c.RegisterMovement,
		Replenishment:    c.Replenishment,
		RegisterSale:     c.RegisterSale,
		History:          c.History,
		UndoSale:         c.UndoSale,
		Report:           c.Report,
		Dashboard:        c.Dashboard,
		LoginLimiter:     apphttp.NewLoginRateLimiter(c.Config.Auth.LoginRateLimitRPS, c.Config.Auth.LoginRateLimitBurst),
		JWTSecret:        c.Config.JWT.Secret,
	}
}

// ServerConfig configuración de la aplicación Fiber.
func (c *Container) ServerConfig(swaggerFile string) apphttp.ServerConfig {
	return apphttp.ServerConfig{
		AppName:     c.Config.App.Name,
		Log:         c.Log,
		Metrics:     c.Metrics,
		SwaggerFile: swaggerFile,
	}
}

// Close libera el pool y el provider de métricas.
func (c *Container) Close(ctx context.Context) {
	if c.Metrics != nil {
		if err := c.Metrics.Shutdown(ctx); err != nil {
			c.Log.Warn().Err(err).Msg("cerrar métricas")
		}
	}
	if c.pool != nil {
		c.pool.Close()
	}
}
