package main // Entry point package

import (
	"context"
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/onamfest/house-registration/internal/backup"
	"github.com/onamfest/house-registration/internal/config"
	"github.com/onamfest/house-registration/internal/database"
	"github.com/onamfest/house-registration/internal/handler"
	"github.com/onamfest/house-registration/internal/intake"
	"github.com/onamfest/house-registration/internal/queue"
	"github.com/onamfest/house-registration/internal/repository"
	"github.com/onamfest/house-registration/internal/router"
	"github.com/onamfest/house-registration/internal/session"
	"github.com/onamfest/house-registration/internal/status"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	regRepo := repository.NewRegistrationRepo(db)
	statusRepo := repository.NewStatusRepo(db)

	// The Redis mirror is best-effort: when the client cannot connect the
	// service runs without a backup store rather than refusing to start.
	var mirror intake.BackupStore
	if rdb := config.NewRedisClient(); rdb != nil {
		mirror = backup.NewMirror(rdb)
	} else {
		log.Print("redis unavailable; registration backup mirror disabled")
	}

	submitter := intake.NewDualWriteSubmitter(regRepo, mirror, queue.NewPublisher())

	// House status: one initial read, then wholesale refreshes driven by
	// commit events from the broker.
	reader := status.NewReader(statusRepo)
	if err := reader.Refresh(context.Background()); err != nil {
		log.Printf("initial status fetch failed: %v", err)
	}
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	go func() {
		if err := queue.StartStatusConsumer(consumerCtx, reader.Refresh); err != nil {
			log.Printf("status consumer stopped: %v", err)
		}
	}()

	guard := session.NewGuard(session.NewStore(cfg.SessionFile), cfg.SessionTTLHours)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e, handler.NewRegistrationHandler(reader, submitter))
	router.RegisterAdmin(e, handler.NewAdminHandler(cfg, guard, regRepo, statusRepo), cfg.JWTSecret, guard)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
