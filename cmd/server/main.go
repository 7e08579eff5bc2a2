package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/charityevents/events-api/internal/config"
	"github.com/charityevents/events-api/internal/database"
	"github.com/charityevents/events-api/internal/filter"
	"github.com/charityevents/events-api/internal/handler"
	"github.com/charityevents/events-api/internal/logger"
	"github.com/charityevents/events-api/internal/middleware"
	"github.com/charityevents/events-api/internal/queue"
	"github.com/charityevents/events-api/internal/repository"
	"github.com/charityevents/events-api/internal/router"
	"github.com/charityevents/events-api/internal/service"
)

const serviceName = "events-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(serviceName, false)
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(serviceName, cfg.App.Debug)

	loc, _ := cfg.Location() // validated by Load
	decimal.MarshalJSONWithoutQuotes = true

	db, err := database.Open(cfg.DB, loc)
	if err != nil {
		log.Fatal().Err(err).Str("host", cfg.DB.Host).Msg("database connection failed")
	}
	defer db.Close()

	tables, err := repository.NewTables(cfg.DB.Prefix)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid DB_PREFIX")
	}
	filters := filter.NewBuilder(loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var publisher handler.RegistrationPublisher
	if cfg.AMQP.Enabled {
		publisher = service.NewRegistrationPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
		consumer := &queue.Consumer{
			URL:   cfg.AMQP.URL,
			Queue: cfg.AMQP.Queue,
			Log:   queue.NewRegistrationLog(cfg.App.LogsDir),
		}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("registration consumer stopped")
			}
		}()
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		log.Warn().Str("addr", cfg.Redis.Address()).Msg("redis unavailable, rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = handler.JSONSerializer{}
	e.Use(middleware.RequestLogger())

	opts := router.Options{
		CORSOrigins: cfg.App.CORSOrigins,
		UploadsDir:  cfg.App.UploadsDir,
		RateLimit:   middleware.NewTokenBucket(cfg.RateLimit, rdb),
	}
	router.Use(e, opts)
	router.RegisterRoutes(e, router.Handlers{
		Activity: &handler.ActivityHandler{
			Activities: repository.NewActivityRepo(db, tables, filters),
			Publisher:  publisher,
			MaxLimit:   cfg.Listing.MaxLimit,
			Location:   loc,
		},
		Article: &handler.ArticleHandler{
			Articles: repository.NewArticleRepo(db, tables, filters),
			MaxLimit: cfg.Listing.MaxLimit,
		},
		Health: &handler.HealthHandler{DB: db},
	}, opts)

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.App.Env).Str("tz", loc.String()).Msg("listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
