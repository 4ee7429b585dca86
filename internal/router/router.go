package router

import (
	"time"

	"github.com/CroSSer23/spa-procurement/internal/config"
	"github.com/CroSSer23/spa-procurement/internal/handler"
	"github.com/CroSSer23/spa-procurement/internal/infra"
	"github.com/CroSSer23/spa-procurement/internal/middleware"
	"github.com/CroSSer23/spa-procurement/internal/model"
	"github.com/CroSSer23/spa-procurement/internal/repository"
	"github.com/CroSSer23/spa-procurement/internal/service"
	"github.com/CroSSer23/spa-procurement/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	roleAdmin       = string(model.RoleAdmin)
	roleProcurement = string(model.RoleProcurement)
	roleRequester   = string(model.RoleRequester)
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	trybeClient := infra.NewTrybeClient(cfg.TrybeAPIURL, cfg.TrybeToken, cfg.TrybeSiteID)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	requisitionRepo := repository.NewRequisitionRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	catalogSvc := service.NewCatalogService(categoryRepo, productRepo)
	locationSvc := service.NewLocationService(locationRepo, productRepo)
	requisitionSvc := service.NewRequisitionService(requisitionRepo, userRepo, locationRepo, productRepo, dispatcher)
	exportSvc := service.NewExportService(requisitionRepo)
	trybeSvc := service.NewTrybeService(trybeClient, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	locationsH := handler.NewLocationsHandler(locationSvc)
	categoriesH := handler.NewCategoriesHandler(catalogSvc)
	productsH := handler.NewProductsHandler(catalogSvc)
	requisitionsH := handler.NewRequisitionsHandler(requisitionSvc, exportSvc, authSvc)
	trybeH := handler.NewTrybeHandler(trybeSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(roleAdmin, roleProcurement, roleRequester)
	staff := middleware.RequireRole(roleAdmin, roleProcurement)
	admin := middleware.RequireRole(roleAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		// Requisitions — every authenticated role; per-record checks live in
		// the policy layer (ownership, location scope, status).
		reqs := v1.Group("/requisitions", anyRole)
		{
			reqs.POST("", requisitionsH.Create)
			reqs.GET("", requisitionsH.List)
			reqs.GET("/export", staff, requisitionsH.Export)
			reqs.GET("/:id", requisitionsH.Get)
			reqs.POST("/:id/submit", requisitionsH.Submit)
			reqs.PATCH("/:id/items", requisitionsH.EditItems)
			reqs.POST("/:id/receive", requisitionsH.ReceiveItems)
			reqs.POST("/:id/status", staff, requisitionsH.ChangeStatus)
			reqs.POST("/:id/comments", requisitionsH.AddComment)
			reqs.POST("/:id/attachments", requisitionsH.AddAttachment)
			reqs.DELETE("/:id", requisitionsH.Delete)
		}

		// Catalog — everyone reads, staff writes
		v1.GET("/products", anyRole, productsH.List)
		v1.GET("/products/:id", anyRole, productsH.Get)
		products := v1.Group("/products", staff)
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		v1.GET("/categories", anyRole, categoriesH.List)
		categories := v1.Group("/categories", staff)
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		// Locations — everyone reads, admin writes
		v1.GET("/locations", anyRole, locationsH.List)
		v1.GET("/locations/:id", anyRole, locationsH.Get)
		v1.GET("/locations/:id/products", anyRole, locationsH.ListAssignments)
		locations := v1.Group("/locations", admin)
		{
			locations.POST("", locationsH.Create)
			locations.PUT("/:id", locationsH.Update)
			locations.DELETE("/:id", locationsH.Delete)
			locations.POST("/:id/products", locationsH.AssignProduct)
		}

		// Users — admin only
		users := v1.Group("/users", admin)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.PATCH("/:id/role", usersH.UpdateRole)
			users.POST("/:id/locations", usersH.AssignLocation)
			users.DELETE("/:id/locations/:locationId", usersH.UnassignLocation)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}

		// Trybe inventory passthrough — staff only
		trybe := v1.Group("/trybe", staff)
		{
			trybe.GET("/products", trybeH.ListProducts)
			trybe.GET("/products/:id", trybeH.GetProduct)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
