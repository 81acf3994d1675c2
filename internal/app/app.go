package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"nextcut/internal/auth"
	"nextcut/internal/config"
	"nextcut/internal/events"
	"nextcut/internal/handlers"
	"nextcut/internal/middleware"
	"nextcut/internal/queue"
	"nextcut/internal/response"
	"nextcut/internal/storage"
	"nextcut/internal/tasks"
	"nextcut/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// App holds the process-wide dependencies.
type App struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Router *gin.Engine
	Hub    *ws.Hub
	Queue  *queue.Service

	cron   *cron.Cron
	cancel context.CancelFunc
}

// New connects postgres and redis, migrates the schema and wires the server.
func New(cfg *config.Config) (*App, error) {
	db, err := storage.ConnectDatabase(cfg.DSN(), !cfg.Release())
	if err != nil {
		return nil, err
	}
	if err := storage.Migrate(db); err != nil {
		return nil, err
	}
	log.Println("database schema up to date")

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if rdb, err = storage.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
			return nil, err
		}
		log.Println("redis connection established")
	}

	return Build(cfg, db, rdb)
}

// Build wires an App around existing connections. rdb may be nil, in which
// case queue events only reach clients of this process.
func Build(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{DB: db, Redis: rdb, Hub: ws.NewHub(), cancel: cancel}
	go a.Hub.Run(ctx)

	var pub events.Publisher = a.Hub
	if rdb != nil {
		pub = events.NewRedisPublisher(rdb, events.DefaultChannel)
		go func() {
			if err := events.Relay(ctx, rdb, events.DefaultChannel, a.Hub); err != nil {
				log.Println("queue event relay stopped:", err)
			}
		}()
	}

	users := storage.NewUsersRepository(db)
	barbers := storage.NewBarbersRepository(db)
	a.Queue = queue.NewService(barbers, storage.NewQueueRepository(db), pub)

	scheduler, err := tasks.InitScheduler(cfg.PruneSchedule, a.Queue, cfg.QueueEntryMaxAge)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("app: %w", err)
	}
	a.cron = scheduler

	response.ExposeDetails = !cfg.Release()
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	h := handlers.New(users, barbers, a.Queue, tokens)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	// Websockets outlive any request deadline.
	router.GET("/barbers/:id/ws", a.Hub.ServeQueue)

	api := router.Group("", middleware.Timeout(10*time.Second))
	h.Routes(api)

	a.Router = router
	return a, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

// Shutdown stops background work and closes connections.
func (a *App) Shutdown() {
	if a.cron != nil {
		<-a.cron.Stop().Done()
	}
	a.cancel()
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			log.Println("closing redis:", err)
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Println("closing database:", err)
		}
	}
}
