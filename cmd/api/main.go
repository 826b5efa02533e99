package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Arif911659/DhakaCart-03/internal/catalog"
	"github.com/Arif911659/DhakaCart-03/internal/config"
	"github.com/Arif911659/DhakaCart-03/internal/httpx"
	kafkax "github.com/Arif911659/DhakaCart-03/internal/kafka"
	"github.com/Arif911659/DhakaCart-03/internal/logx"
	"github.com/Arif911659/DhakaCart-03/internal/orders"
	"github.com/Arif911659/DhakaCart-03/internal/postgres"
	"github.com/Arif911659/DhakaCart-03/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logx.Init(cfg.Environment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr())
	defer rdb.Close()
	if err := redisx.Ping(ctx, rdb); err != nil {
		log.Warn().Err(err).Msg("cache unreachable, serving from store only")
	}
	cache := &redisx.Cache{RDB: rdb}

	var producer *kafkax.Producer
	if cfg.EventsEnabled() {
		producer = kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024)
		producer.Start(ctx)
	}

	catalogSvc := &catalog.Service{
		Store: &catalog.Repo{DB: db},
		Cache: cache,
	}
	orderSvc := &orders.Service{
		Store:       &orders.Repo{DB: db},
		Cache:       cache,
		ServiceName: cfg.ServiceName,
	}
	if producer != nil {
		orderSvc.Producer = producer
	}

	router := httpx.NewRouter()
	(&httpx.CatalogHandler{Service: catalogSvc}).Register(router)
	(&httpx.OrdersHandler{Service: orderSvc}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr(), Handler: router}

	go func() {
		log.Info().
			Str("addr", cfg.HTTPAddr()).
			Str("db", cfg.DBHost).
			Str("redis", cfg.RedisAddr()).
			Msg("storefront API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	if producer != nil {
		producer.Close() // flush buffered events
		producer.WaitClosed()
	}
}
