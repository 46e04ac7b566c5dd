package http

import (
	"taskmanager/internal/cache"
	"taskmanager/internal/config"
	"taskmanager/internal/http/handlers"
	"taskmanager/internal/http/middleware"
	"taskmanager/internal/logger"
	"taskmanager/internal/repository"
	"taskmanager/internal/seed"
	"taskmanager/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Services bundles everything the router needs.
type Services struct {
	Auth   *service.AuthService
	Tasks  *service.TaskService
	Seeder handlers.Seeder
	DB     handlers.Pinger
	Cache  handlers.Pinger
}

// NewServices wires repositories and services on top of the pool. rdb may be
// nil, which disables the task list cache.
func NewServices(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client) *Services {
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	users := repository.NewUserRepository(pool)
	tasks := repository.NewTaskRepository(pool)

	svc := &Services{
		Auth: service.NewAuthService(users, tokens, cfg.BcryptCost),
		DB:   pool,
	}

	if rdb != nil {
		tc := cache.NewTaskCache(rdb, cfg.CacheTTL)
		svc.Tasks = service.NewTaskService(tasks, tc)
		svc.Seeder = seed.NewSeeder(pool, cfg.BcryptCost, tc)
		svc.Cache = tc
	} else {
		svc.Tasks = service.NewTaskService(tasks, nil)
		svc.Seeder = seed.NewSeeder(pool, cfg.BcryptCost, nil)
	}
	return svc
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(cfg *config.Config, svc *Services) *gin.Engine {
	middleware.SetErrorDetail(cfg.IsDevelopment())

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	RegisterRoutes(r, cfg, svc)
	return r
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, svc *Services) {
	h := handlers.NewHandler(svc.Auth, svc.Tasks)
	healthHandler := handlers.NewHealthHandler(svc.DB, svc.Cache, cfg.Version)

	r.GET("/", healthHandler.Root)

	// Health checks
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	tasks := api.Group("/tasks")
	tasks.Use(middleware.JWT(svc.Auth))
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("", h.CreateTask)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
	}

	if cfg.DevEndpointsEnabled && svc.Seeder != nil {
		devHandler := handlers.NewDevHandler(svc.Seeder)
		dev := api.Group("/dev")
		{
			dev.POST("/seed-db", devHandler.SeedDB)
			dev.POST("/destroy-db", devHandler.DestroyDB)
		}
		logger.Warn("development endpoints /api/dev/seed-db and /api/dev/destroy-db are active")
	} else {
		logger.Info("development endpoints are disabled")
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
