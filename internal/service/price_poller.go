package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/blockpulse/blockpulse-backend/internal/clock"
	"github.com/blockpulse/blockpulse-backend/internal/metrics"
	"github.com/blockpulse/blockpulse-backend/internal/model"
	"github.com/blockpulse/blockpulse-backend/pkg/batcher"
)

const defaultPollInterval = time.Minute

// PricePollerService periodically samples the spot price and buffers the
// samples into ClickHouse through a batcher.
type PricePollerService struct {
	source   PriceSource
	logger   *zap.Logger
	currency string
	interval time.Duration
	metrics  *metrics.PricePoller

	points *batcher.Batcher[model.BTCPricePoint]
}

// NewPricePollerService builds the poller for a single fiat currency.
func NewPricePollerService(
	repo BTCRepository,
	source PriceSource,
	currency string,
	interval time.Duration,
	logger *zap.Logger,
	pollerMetrics *metrics.PricePoller,
	batchCfg batcher.Config,
) *PricePollerService {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &PricePollerService{
		source:   source,
		logger:   logger,
		currency: currency,
		interval: interval,
		metrics:  pollerMetrics,
		points: batcher.New[model.BTCPricePoint](
			logger.Named("priceBatcher"),
			repo.InsertPricePoints,
			batchCfg,
		),
	}
}

// Run polls until the context is canceled, flushing buffered samples on exit.
func (s *PricePollerService) Run(ctx context.Context) error {
	s.points.Start(ctx)
	defer s.points.Stop()

	s.logger.Info("price poller started",
		zap.String("currency", s.currency),
		zap.Duration("interval", s.interval))

	return clock.Every(ctx, s.interval, s.poll, func(err error) {
		s.logger.Warn("price poll failed", zap.String("currency", s.currency), zap.Error(err))
	})
}

func (s *PricePollerService) poll(ctx context.Context) error {
	started := time.Now()
	point, err := s.source.LatestPrice(ctx, s.currency)
	s.metrics.ObservePoll(err, started)
	if err != nil {
		return err
	}

	if err := s.points.Add(ctx, point); err != nil {
		return err
	}
	s.metrics.SetLastPrice(point.Price)

	s.logger.Debug("price sampled",
		zap.String("currency", point.Currency),
		zap.Float64("price", point.Price))
	return nil
}
