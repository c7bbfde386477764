package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/jmvillar/turnero/internal/config"
	"github.com/jmvillar/turnero/internal/database"
	"github.com/jmvillar/turnero/internal/handler"
	"github.com/jmvillar/turnero/internal/middleware"
	"github.com/jmvillar/turnero/internal/queue"
	"github.com/jmvillar/turnero/internal/repository"
	"github.com/jmvillar/turnero/internal/router"
	"github.com/jmvillar/turnero/internal/service"
	"github.com/jmvillar/turnero/internal/session"
)

func main() {
	_ = godotenv.Load() // .env is optional
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Schema and seed data. Seeding only fills an empty database.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	categorias := repository.NewCategoriaRepo(db)
	turnos := repository.NewTurnoRepo(db)
	usuarios := repository.NewUsuarioRepo(db)

	if err := categorias.SeedDefaults(ctx); err != nil {
		log.Fatalf("seed categorias: %v", err)
	}
	created, err := usuarios.EnsureDefaultAdmin(ctx, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if created {
		log.Println("usuario administrador creado: admin@turnero.com / admin123")
	}

	events := queue.NewPublisher()
	turnoSvc := service.NewTurnoService(categorias, turnos, events)
	lifecycle := service.NewLifecycle(turnos, events)
	statsSvc := service.NewStatsService(turnos)

	rdb := config.NewRedisClient(cfg) // nil when Redis is unreachable

	var sessions *session.Store
	if rdb != nil {
		sessions = session.NewStore(rdb, time.Duration(cfg.SessionTTLHours)*time.Hour)
	} else {
		log.Println("redis unavailable: session login and rate limiting disabled")
	}

	turnoHandler := handler.NewTurnoHandler(turnoSvc)
	categoriaHandler := handler.NewCategoriaHandler(categorias)
	authHandler := handler.NewAuthHandler(cfg, usuarios, sessions)
	adminHandler := handler.NewAdminHandler(lifecycle, turnos, categorias)
	statsHandler := handler.NewStatsHandler(statsSvc)

	// Background consumer writing turno events to logs/turnos.log. Keeps
	// retrying across broker outages.
	go queue.StartTurnoConsumer()

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterPublic(e, turnoHandler, categoriaHandler, limiter)
	if sessions != nil {
		router.RegisterSession(e, cfg, authHandler, adminHandler, sessions)
	}
	router.RegisterToken(e, cfg, usuarios, authHandler, adminHandler, statsHandler)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
