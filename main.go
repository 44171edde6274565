package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"auditorium-booking/cmd"
	"auditorium-booking/internal/adaptor"
	"auditorium-booking/internal/data/repository"
	"auditorium-booking/internal/notification"
	"auditorium-booking/internal/scheduler"
	"auditorium-booking/internal/wire"
	"auditorium-booking/pkg/cache"
	"auditorium-booking/pkg/database"
	"auditorium-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("timezone", config.App.Location().String()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("Database connected successfully")

	rdb, err := cache.NewRedis(ctx, config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()
	logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr()))

	repos := repository.NewRepository(db, rdb, config.OTP.MaxVerifyAttempt, logger)
	notifier := notification.New(config.Email, logger)

	checks := map[string]adaptor.HealthCheck{
		"postgres": db.Ping,
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
	app := wire.Wiring(repos, notifier, checks, config, logger)

	jobs, err := scheduler.New(scheduler.Config{
		SweepSpec:          config.Booking.SweepSpec,
		SessionCleanupSpec: config.Booking.SessionCleanupSpec,
		Location:           config.App.Location(),
	}, app.Service.Booking, app.Service.Auth, logger)
	if err != nil {
		logger.Fatal("Failed to schedule jobs", zap.Error(err))
	}
	jobs.Start()

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, config.Booking.ShutdownTimeout, logger); err != nil {
		logger.Error("HTTP server stopped with error", zap.Error(err))
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), config.Booking.ShutdownTimeout)
	defer cancel()
	if err := jobs.Stop(stopCtx); err != nil {
		logger.Warn("Scheduler did not stop cleanly", zap.Error(err))
	}

	// flush queued booking notifications before the process exits
	app.Service.Booking.Wait()
	logger.Info("Shutdown complete")
}
