package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/blockpulse/blockpulse-backend/internal/metrics"
	"github.com/blockpulse/blockpulse-backend/internal/repository"
	"github.com/blockpulse/blockpulse-backend/internal/service"
	"github.com/blockpulse/blockpulse-backend/pkg/batcher"
)

type config struct {
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"BTC_PRICE_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	PriceAPIURL   string        `long:"price-api-url" env:"BTC_PRICE_API_URL" description:"CoinGecko-compatible API base URL" default:"https://api.coingecko.com/api/v3"`
	Currency      string        `long:"currency" env:"BTC_PRICE_CURRENCY" description:"fiat currency" default:"usd"`
	Interval      time.Duration `long:"interval" env:"BTC_PRICE_INTERVAL" description:"poll interval" default:"1m"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if cfg.ClickhouseDSN == "" {
		logger.Fatal("ClickHouse DSN is required")
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("btc price poller failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	repo, err := repository.NewBTCRepository(cfg.ClickhouseDSN, metrics.NewRepository("price"))
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		_ = repo.Close()
	}()

	source := service.NewHTTPPriceSource(cfg.PriceAPIURL, nil)

	svc := service.NewPricePollerService(
		repo,
		source,
		cfg.Currency,
		cfg.Interval,
		logger,
		metrics.NewPricePoller(cfg.Currency),
		batcher.DefaultConfig(),
	)
	return svc.Run(ctx)
}
