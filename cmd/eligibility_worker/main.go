package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hetulpatel/MantleCoop/internal/app"
	"github.com/hetulpatel/MantleCoop/internal/config"
	"github.com/hetulpatel/MantleCoop/internal/kafka"
	"github.com/hetulpatel/MantleCoop/internal/logging"
	"github.com/hetulpatel/MantleCoop/internal/workers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("[eligibility-worker] config: %v", err)
	}
	logging.Init(cfg.Log.Level, cfg.Log.Format)
	defer logging.Sync()

	brokers := cfg.Kafka.BrokerList()
	requestTopic := cfg.Kafka.RequestTopic
	resultTopic := cfg.Kafka.ResultTopic

	waitCtx, cancel := context.WithTimeout(ctx, 45*time.Second)
	if err := kafka.WaitForBroker(waitCtx, brokers); err != nil {
		logging.Fatalf("[eligibility-worker] wait for broker: %v", err)
	}
	cancel()

	ensureCtx, cancelEnsure := context.WithTimeout(ctx, 30*time.Second)
	if err := kafka.EnsureTopics(ensureCtx, brokers, requestTopic, resultTopic); err != nil {
		logging.Errorf("[eligibility-worker] ensure topic warning: %v", err)
	}
	cancelEnsure()

	svc, err := app.NewService(ctx, cfg, nil, logging.L())
	if err != nil {
		logging.Fatalf("[eligibility-worker] service init: %v", err)
	}
	defer svc.Close()

	writer := kafka.NewWriter(brokers, resultTopic)
	defer writer.Close()

	processor := workers.NewProcessor(svc, writer)
	logging.Infof("[eligibility-worker] consuming %s with group %s (%d workers, backend=%s) -> %s",
		requestTopic, cfg.Kafka.Group, cfg.Kafka.Workers, svc.Backend, resultTopic)
	workers.Run(ctx, brokers, requestTopic, cfg.Kafka.Group, cfg.Kafka.Workers, processor.Handle)
}
