package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Arif911659/DhakaCart-03/internal/config"
	kafkax "github.com/Arif911659/DhakaCart-03/internal/kafka"
	"github.com/Arif911659/DhakaCart-03/internal/logx"
	"github.com/Arif911659/DhakaCart-03/internal/notifier"
	"github.com/Arif911659/DhakaCart-03/internal/orders"
	"github.com/Arif911659/DhakaCart-03/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logx.Init(cfg.Environment)

	if !cfg.EventsEnabled() {
		log.Fatal().Msg("KAFKA_BROKERS is required for the notifier")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr())
	defer rdb.Close()

	svc := &notifier.Service{
		Cache: &redisx.Cache{RDB: rdb},
		Name:  "notifier",
	}

	group := getenv("NOTIFIER_GROUP", "dhakacart-notifier")
	workers := mustAtoi(os.Getenv("NOTIFIER_WORKERS"), 4)
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderCreated, workers)

	go func() {
		log.Info().
			Str("group", group).
			Str("topic", orders.TopicOrderCreated).
			Int("workers", workers).
			Msg("notifier consumer started")
		if err := cons.Start(ctx, svc.HandleOrderCreated); err != nil {
			log.Error().Err(err).Msg("consumer exit")
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutting down consumer...")
	cancel()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
