package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/studyhub/seat-reservation/internal/cache"
    "github.com/studyhub/seat-reservation/internal/config"
    "github.com/studyhub/seat-reservation/internal/database"
    "github.com/studyhub/seat-reservation/internal/handler"
    "github.com/studyhub/seat-reservation/internal/logger"
    appmw "github.com/studyhub/seat-reservation/internal/middleware"
    "github.com/studyhub/seat-reservation/internal/queue"
    "github.com/studyhub/seat-reservation/internal/repository"
    "github.com/studyhub/seat-reservation/internal/reservation"
    "github.com/studyhub/seat-reservation/internal/router"
)

func main() {
    _ = godotenv.Load() // .env is optional; real env vars win

    cfg := config.Load()
    zlog := logger.New(cfg.Env)
    defer func() { _ = zlog.Sync() }()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    rdb := config.NewRedisClient()
    if rdb == nil {
        zlog.Warn("redis unreachable; caching and rate limiting disabled")
    }
    qc := cache.New(rdb, config.LoadCacheConfig(), zlog)

    store := repository.NewStore(db)
    svc := reservation.NewService(store, qc, zlog)

    e := echo.New()
    e.HideBanner = true
    e.Use(appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    router.RegisterRoutes(e)
    router.RegisterBrowse(e, handler.NewBrowseHandler(store, svc, qc))
    router.RegisterReservations(e,
        handler.NewReservationHandler(svc),
        handler.NewCheckInHandler(svc),
        cfg.JWTSecret)

    // Background consumer mirrors domain events into logs/reservation.log.
    go func() {
        if err := queue.StartEventConsumer(); err != nil {
            zlog.Warn("event consumer stopped", zap.Error(err))
        }
    }()

    addr := ":" + cfg.Port
    zlog.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
