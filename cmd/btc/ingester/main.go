package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/blockpulse/blockpulse-backend/internal/metrics"
	"github.com/blockpulse/blockpulse-backend/internal/repository"
	"github.com/blockpulse/blockpulse-backend/internal/service"
)

type config struct {
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"BTC_INGESTER_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	Network       string        `long:"network" env:"BTC_INGESTER_NETWORK" description:"network name" default:"mainnet"`
	RPCURL        string        `long:"rpc-url" env:"BTC_INGESTER_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string        `long:"rpc-user" env:"BTC_INGESTER_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword   string        `long:"rpc-password" env:"BTC_INGESTER_RPC_PASSWORD" description:"Bitcoin RPC password"`
	HTTPTimeout   time.Duration `long:"http-timeout" env:"BTC_INGESTER_HTTP_TIMEOUT" description:"HTTP timeout for RPC requests" default:"30s"`
	WorkerCount   int           `long:"worker-count" env:"BTC_INGESTER_WORKER_COUNT" description:"concurrent block fetchers" default:"8"`
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
		logger.Fatal("btc ingester failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	repo, err := repository.NewBTCRepository(cfg.ClickhouseDSN, metrics.NewRepository(cfg.Network))
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		_ = repo.Close()
	}()

	client, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init btc rpc client: %w", err)
	}
	defer func() {
		client.Shutdown()
		client.WaitForShutdown()
	}()

	node := repository.NewBTCNodeRepository(client, metrics.NewRPCClient(cfg.Network))

	svc, err := service.NewBTCHistorySyncService(
		repo,
		node,
		cfg.Network,
		logger,
		metrics.NewHistoryIngester(cfg.Network),
		service.BTCHistorySyncConfig{WorkerCount: cfg.WorkerCount},
	)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	cfg := &rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}

	return rpcclient.New(cfg, nil)
}
