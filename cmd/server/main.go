package main // lab-desk REST API

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/lab-desk/internal/config"
	"github.com/iliyamo/lab-desk/internal/database"
	"github.com/iliyamo/lab-desk/internal/handler"
	"github.com/iliyamo/lab-desk/internal/middleware"
	"github.com/iliyamo/lab-desk/internal/model"
	"github.com/iliyamo/lab-desk/internal/queue"
	"github.com/iliyamo/lab-desk/internal/repository"
	"github.com/iliyamo/lab-desk/internal/router"
)

func main() {
	config.LoadDotenv()
	cfg := config.Load()
	pageCfg := config.LoadPageConfig()
	queueCfg := config.LoadQueueConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("database: %v", err)
	}

	// documents live only in Redis, so unlike cache and limiter it is required
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Fatal("redis: unavailable; catalog types and order events need it")
	}
	defer rdb.Close()

	users := repository.NewUserRepo(db)
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := users.EnsureUser(ctx, cfg.AdminEmail, cfg.AdminPassword, model.RoleAdmin, cfg.BcryptCost); err != nil {
			log.Fatalf("bootstrap admin: %v", err)
		}
	}

	var pub handler.ActivityPublisher
	if queueCfg.Enabled {
		pub = queue.NewPublisher(queueCfg)
		go queue.StartOrderEventsConsumer(queueCfg)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Pre(echomw.AddTrailingSlash())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, repository.NewSessionRepo(db)), cfg.JWTSecret)
	router.RegisterLab(e,
		handler.NewTestHandler(repository.NewTestRepo(db), pageCfg.Size),
		handler.NewOrderHandler(repository.NewOrderRepo(db), pub, pageCfg.Size),
		cfg.JWTSecret)
	router.RegisterShows(e,
		handler.NewShowHandler(repository.NewShowRepo(db), pageCfg.Size),
		handler.NewReservationHandler(repository.NewReservationRepo(db), pageCfg.Size),
		cfg.JWTSecret)
	router.RegisterDocuments(e,
		handler.NewDocumentHandler(repository.NewCatalogTypeStore(rdb), repository.NewOrderEventStore(rdb), pub),
		cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
