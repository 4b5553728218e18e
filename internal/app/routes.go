package app

import (
	"context"

	"propboard/internal/auth"
	"propboard/internal/cache"
	"propboard/internal/config"
	"propboard/internal/container"
	"propboard/internal/handlers"
	"propboard/internal/repo"
	"propboard/internal/service"
	"propboard/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	_ "propboard/docs"
)

// Container tokens.
const (
	tokenSessions         = "auth.sessions"
	tokenTaskCache        = "cache.tasks"
	tokenUserRepo         = "repo.users"
	tokenProfileRepo      = "repo.profiles"
	tokenPortfolioRepo    = "repo.portfolios"
	tokenTaskRepo         = "repo.tasks"
	tokenTaskImageRepo    = "repo.taskimages"
	tokenAddressRepo      = "repo.addresses"
	tokenUserService      = "service.users"
	tokenTaskService      = "service.tasks"
	tokenPortfolioService = "service.portfolios"
	tokenProfileService   = "service.profiles"
)

// BuildContainer registers every repository and service. Everything is a
// singleton; the container keeps construction lazy and lets tests swap
// registrations before first resolve.
func BuildContainer(cfg config.Config, db *pgxpool.Pool, rdb *redis.Client, store storage.ObjectStore) *container.Container {
	c := container.New()

	c.Register(tokenSessions, func(*container.Container) any {
		return auth.NewStore(rdb, cfg.Redis.SessionTTL.Duration())
	}, true)
	c.Register(tokenTaskCache, func(*container.Container) any {
		return cache.NewTaskCache(rdb, cfg.Redis.DefaultTTL.Duration())
	}, true)

	c.Register(tokenUserRepo, func(*container.Container) any { return repo.NewPGUserRepo(db) }, true)
	c.Register(tokenProfileRepo, func(*container.Container) any { return repo.NewPGProfileRepo(db) }, true)
	c.Register(tokenPortfolioRepo, func(*container.Container) any { return repo.NewPGPortfolioRepo(db) }, true)
	c.Register(tokenTaskRepo, func(*container.Container) any { return repo.NewPGTaskRepo(db) }, true)
	c.Register(tokenTaskImageRepo, func(*container.Container) any { return repo.NewPGTaskImageRepo(db) }, true)
	c.Register(tokenAddressRepo, func(*container.Container) any { return repo.NewPGAddressRepo(db) }, true)

	c.Register(tokenUserService, func(c *container.Container) any {
		return service.NewUserService(
			c.MustResolve(tokenUserRepo).(repo.UserRepo),
			c.MustResolve(tokenProfileRepo).(repo.ProfileRepo),
		)
	}, true)
	c.Register(tokenTaskService, func(c *container.Container) any {
		tasks := c.MustResolve(tokenTaskRepo).(repo.TaskRepo)
		strategies := []service.CreationStrategy{
			service.NewFunctionStrategy(cfg.Function.BaseURL, cfg.Function.Token, nil),
			service.NewDirectStrategy(tasks),
		}
		return service.NewTaskService(
			tasks,
			c.MustResolve(tokenTaskImageRepo).(repo.TaskImageRepo),
			c.MustResolve(tokenProfileRepo).(repo.ProfileRepo),
			store,
			strategies,
			c.MustResolve(tokenTaskCache).(*cache.TaskCache),
		)
	}, true)
	c.Register(tokenPortfolioService, func(c *container.Container) any {
		return service.NewPortfolioService(
			c.MustResolve(tokenPortfolioRepo).(repo.PortfolioRepo),
			c.MustResolve(tokenTaskRepo).(repo.TaskRepo),
			c.MustResolve(tokenTaskCache).(*cache.TaskCache),
		)
	}, true)
	c.Register(tokenProfileService, func(c *container.Container) any {
		return service.NewProfileService(
			c.MustResolve(tokenProfileRepo).(repo.ProfileRepo),
			c.MustResolve(tokenAddressRepo).(repo.AddressRepo),
		)
	}, true)

	return c
}

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client, store storage.ObjectStore) {
	c := BuildContainer(cfg, db, rdb, store)

	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api/v1")

	sessions := c.MustResolve(tokenSessions).(*auth.Store)
	userSvc := c.MustResolve(tokenUserService).(*service.UserService)
	authHandler := handlers.NewAuthHandler(sessions, userSvc)
	registerAuthRoutes(api, authHandler)

	validator := auth.ValidatorFunc(func(ctx context.Context, userID string) error {
		_, err := userSvc.EnsureUserValid(ctx, userID)
		return err
	})
	protected := api.Group("", auth.RequireSession(sessions, validator))

	protected.GET("/auth/me", authHandler.Me)

	taskHandler := handlers.NewTaskHandler(c.MustResolve(tokenTaskService).(*service.TaskService))
	registerTaskRoutes(protected, taskHandler)

	portfolioHandler := handlers.NewPortfolioHandler(c.MustResolve(tokenPortfolioService).(*service.PortfolioService))
	registerPortfolioRoutes(protected, portfolioHandler)

	profileHandler := handlers.NewProfileHandler(c.MustResolve(tokenProfileService).(*service.ProfileService))
	registerProfileRoutes(protected, profileHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Propboard API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/logout", h.Logout)
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.POST("/tasks", h.Create)
	api.GET("/tasks", h.List)
	api.GET("/tasks/:id", h.GetByID)
	api.PATCH("/tasks/:id", h.Update)
	api.DELETE("/tasks/:id", h.Delete)
	api.POST("/tasks/:id/complete", h.Complete)
	api.POST("/tasks/:id/images", h.UploadImages)
	api.GET("/tasks/:id/images", h.ListImages)
	api.DELETE("/tasks/:id/images/:imageID", h.DeleteImage)
	api.DELETE("/tasks/:id/legacy-image", h.DeleteLegacyImage)
}

func registerPortfolioRoutes(api *gin.RouterGroup, h *handlers.PortfolioHandler) {
	api.GET("/portfolios", h.List)
	api.GET("/portfolios/with-tasks", h.ListWithTasks)
	api.POST("/portfolios", h.Create)
	api.PATCH("/portfolios/:id", h.Update)
	api.DELETE("/portfolios/:id", h.Delete)
	api.DELETE("/portfolios/:id/tasks", h.DeleteTasks)
}

func registerProfileRoutes(api *gin.RouterGroup, h *handlers.ProfileHandler) {
	api.GET("/profile/completion", h.Completion)
	api.PATCH("/profile", h.Update)
	api.PUT("/profile/billing-address", h.PutBillingAddress)
}
