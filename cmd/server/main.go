package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/ravshanbek/catalog-api/internal/config"
	"github.com/ravshanbek/catalog-api/internal/database"
	"github.com/ravshanbek/catalog-api/internal/handler"
	"github.com/ravshanbek/catalog-api/internal/httperr"
	"github.com/ravshanbek/catalog-api/internal/queue"
	"github.com/ravshanbek/catalog-api/internal/repository"
	"github.com/ravshanbek/catalog-api/internal/router"
	"github.com/ravshanbek/catalog-api/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Redis is optional; nil disables the response cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable, response cache disabled")
	}
	cacheCfg := config.LoadCacheConfig()

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	categories := repository.NewCategoryRepo(db)
	files := repository.NewFileRepo(db)

	tokens := service.NewTokenIssuer(cfg.Auth)
	auth := service.NewAuthService(users, sessions, tokens, service.NewQueuePublisher())
	fileSvc := service.NewFileService(files, cfg.S3)

	// Auth events land on a durable queue; the consumer appends them to
	// logs/auth.log and survives broker restarts on its own.
	go func() {
		if err := queue.StartAuthConsumer(); err != nil {
			log.Printf("auth consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httperr.Handler()

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(auth), cfg.Auth)
	router.RegisterUsers(e, handler.NewUserHandler(users, cfg.Auth.BcryptCost), cfg.Auth)
	router.RegisterCatalog(e, handler.NewCategoryHandler(categories, files), handler.NewFileHandler(fileSvc), cfg.Auth, cacheCfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
