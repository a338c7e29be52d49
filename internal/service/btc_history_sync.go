package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"go.uber.org/zap"

	"github.com/blockpulse/blockpulse-backend/internal/derive"
	"github.com/blockpulse/blockpulse-backend/internal/metrics"
	"github.com/blockpulse/blockpulse-backend/internal/model"
	"github.com/blockpulse/blockpulse-backend/pkg/safe"
	"github.com/blockpulse/blockpulse-backend/pkg/workerpool"
)

// BTCHistorySyncConfig defines concurrency and batch sizes for ingestion.
type BTCHistorySyncConfig struct {
	WorkerCount     int
	FetchChunkSize  int
	BlockBatchSize  int
	TxBatchSize     int
	OutputBatchSize int
}

// DefaultBTCHistorySyncConfig returns sane default settings.
func DefaultBTCHistorySyncConfig() BTCHistorySyncConfig {
	return BTCHistorySyncConfig{
		WorkerCount:     8,
		FetchChunkSize:  64,
		BlockBatchSize:  100,
		TxBatchSize:     1000,
		OutputBatchSize: 2000,
	}
}

func (c BTCHistorySyncConfig) withDefaults() BTCHistorySyncConfig {
	def := DefaultBTCHistorySyncConfig()
	if c.WorkerCount <= 0 {
		c.WorkerCount = def.WorkerCount
	}
	if c.FetchChunkSize <= 0 {
		c.FetchChunkSize = def.FetchChunkSize
	}
	if c.BlockBatchSize <= 0 {
		c.BlockBatchSize = def.BlockBatchSize
	}
	if c.TxBatchSize <= 0 {
		c.TxBatchSize = def.TxBatchSize
	}
	if c.OutputBatchSize <= 0 {
		c.OutputBatchSize = def.OutputBatchSize
	}
	return c
}

// BTCHistorySyncService orchestrates block ingestion into ClickHouse. Block
// difficulty is recomputed from the compact bits field and the miner is
// identified from the coinbase script rather than trusted from the node.
type BTCHistorySyncService struct {
	repo    BTCRepository
	rpc     BTCRpcClient
	logger  *zap.Logger
	network string
	cfg     BTCHistorySyncConfig
	decoder *scriptDecoder
	ingMet  *metrics.HistoryIngester
}

// NewBTCHistorySyncService builds the history sync service with the provided dependencies.
func NewBTCHistorySyncService(
	repo BTCRepository,
	rpc BTCRpcClient,
	network string,
	logger *zap.Logger,
	ingMet *metrics.HistoryIngester,
	cfg BTCHistorySyncConfig,
) (*BTCHistorySyncService, error) {
	decoder, err := newScriptDecoder(network)
	if err != nil {
		return nil, err
	}
	return &BTCHistorySyncService{
		repo:    repo,
		rpc:     rpc,
		logger:  logger,
		network: network,
		cfg:     cfg.withDefaults(),
		decoder: decoder,
		ingMet:  ingMet,
	}, nil
}

// Run performs the backfill until the latest block height.
func (s *BTCHistorySyncService) Run(ctx context.Context) error {
	maxHeight, exists, err := s.repo.MaxBlockHeight(ctx, s.network)
	if err != nil {
		return err
	}

	latestHeight, err := s.rpc.GetBlockCount()
	if err != nil {
		return fmt.Errorf("get latest block height: %w", err)
	}
	if latestHeight < 0 {
		return fmt.Errorf("negative latest height %d", latestHeight)
	}

	targetHeight := uint64(latestHeight)
	var startHeight uint64

	switch {
	case !exists:
		startHeight = 0
		s.logger.Info("starting history backfill from genesis",
			zap.String("network", s.network),
			zap.Uint64("target_height", targetHeight))
	default:
		if maxHeight >= targetHeight {
			s.logger.Info("history already ingested up to latest height",
				zap.String("network", s.network),
				zap.Uint64("height", maxHeight))
			return nil
		}
		startHeight = maxHeight + 1
		s.logger.Info("resuming history backfill",
			zap.String("network", s.network),
			zap.Uint64("start_height", startHeight),
			zap.Uint64("target_height", targetHeight))
	}

	resolver := NewBTCOutputResolver(s.repo, s.network)

	blockBatch := make([]model.BTCBlock, 0, s.cfg.BlockBatchSize)
	txBatch := make([]model.BTCTransaction, 0, s.cfg.TxBatchSize)
	outputBatch := make([]model.BTCTransactionOutput, 0, s.cfg.OutputBatchSize)

	flush := func() error {
		if len(blockBatch) == 0 && len(txBatch) == 0 && len(outputBatch) == 0 {
			return nil
		}
		lastHeight := uint64(0)
		if len(blockBatch) > 0 {
			lastHeight = blockBatch[len(blockBatch)-1].Height
		}
		err := s.flushBatches(ctx, blockBatch, txBatch, outputBatch)
		s.ingMet.ObserveProcessBatch(err, len(blockBatch))
		if err != nil {
			return err
		}
		if len(blockBatch) > 0 {
			s.ingMet.SetLastHeight(lastHeight)
		}
		blockBatch = blockBatch[:0]
		txBatch = txBatch[:0]
		outputBatch = outputBatch[:0]
		return nil
	}

	for chunkStart := startHeight; chunkStart <= targetHeight; {
		heights := chunkHeights(chunkStart, targetHeight, s.cfg.FetchChunkSize)

		fetched, err := workerpool.Map(ctx, s.cfg.WorkerCount, heights, func(ctx context.Context, h uint64) (*btcjson.GetBlockVerboseTxResult, error) {
			return s.fetchBlockByHeight(ctx, h)
		})
		if err != nil {
			return err
		}

		// Conversion stays sequential in height order so the resolver sees
		// every output before any transaction that spends it.
		for _, src := range fetched {
			started := time.Now()
			blockModel, txModels, outputs, convErr := s.convertRPCBlock(ctx, resolver, src)
			s.ingMet.ObserveProcessHeight(convErr, started)
			if convErr != nil {
				return convErr
			}

			blockBatch = append(blockBatch, blockModel)
			txBatch = append(txBatch, txModels...)
			outputBatch = append(outputBatch, outputs...)

			s.logger.Debug("ingested block",
				zap.Uint64("height", blockModel.Height),
				zap.String("network", s.network),
				zap.String("miner", blockModel.Miner),
				zap.Int("transactions", len(txModels)))

			if len(blockBatch) >= s.cfg.BlockBatchSize ||
				len(txBatch) >= s.cfg.TxBatchSize ||
				len(outputBatch) >= s.cfg.OutputBatchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}

		chunkStart += uint64(len(heights))
	}

	if err := flush(); err != nil {
		return err
	}

	s.logger.Info("history backfill complete",
		zap.String("network", s.network),
		zap.Uint64("last_height", targetHeight))

	return nil
}

func chunkHeights(start, target uint64, size int) []uint64 {
	heights := make([]uint64, 0, size)
	for h := start; h <= target && len(heights) < size; h++ {
		heights = append(heights, h)
	}
	return heights
}

func (s *BTCHistorySyncService) fetchBlockByHeight(ctx context.Context, height uint64) (*btcjson.GetBlockVerboseTxResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if height > math.MaxInt64 {
		return nil, fmt.Errorf("height %d exceeds rpc limit", height)
	}
	hash, err := s.rpc.GetBlockHash(int64(height))
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	block, err := s.rpc.GetBlockVerboseTx(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	return block, nil
}

func (s *BTCHistorySyncService) convertRPCBlock(
	ctx context.Context,
	resolver *BTCOutputResolver,
	src *btcjson.GetBlockVerboseTxResult,
) (model.BTCBlock, []model.BTCTransaction, []model.BTCTransactionOutput, error) {
	var block model.BTCBlock

	bits, err := parseBits(src.Bits)
	if err != nil {
		return block, nil, nil, fmt.Errorf("block %d bits parse: %w", src.Height, err)
	}
	height, err := safe.ToUint64(src.Height)
	if err != nil {
		return block, nil, nil, fmt.Errorf("block height: %w", err)
	}
	size, err := safe.ToUint32(src.Size)
	if err != nil {
		return block, nil, nil, fmt.Errorf("block %d size: %w", src.Height, err)
	}
	weight, err := safe.ToUint32(src.Weight)
	if err != nil {
		return block, nil, nil, fmt.Errorf("block %d weight: %w", src.Height, err)
	}

	timestamp := time.Unix(src.Time, 0).UTC()

	totalOutputs := 0
	for _, tx := range src.Tx {
		totalOutputs += len(tx.Vout)
	}

	outputs := make([]model.BTCTransactionOutput, 0, totalOutputs)
	for _, tx := range src.Tx {
		txOutputs, err := s.convertOutputs(tx, height, timestamp)
		if err != nil {
			return block, nil, nil, err
		}
		resolver.Seed(tx.Txid, txOutputs)
		outputs = append(outputs, txOutputs...)
	}

	block = model.BTCBlock{
		Network:    s.network,
		Height:     height,
		Hash:       src.Hash,
		PrevHash:   src.PreviousHash,
		Timestamp:  timestamp,
		Version:    uint32(src.Version),
		MerkleRoot: src.MerkleRoot,
		Bits:       bits,
		Nonce:      src.Nonce,
		Difficulty: derive.Difficulty(bits),
		Miner:      s.identifyBlockMiner(src, resolver),
		Size:       size,
		Weight:     weight,
		TXCount:    uint32(len(src.Tx)),
	}

	txs := make([]model.BTCTransaction, 0, len(src.Tx))
	for _, tx := range src.Tx {
		txModel, err := s.convertTransaction(ctx, resolver, tx, height, timestamp)
		if err != nil {
			return block, nil, nil, err
		}
		txs = append(txs, txModel)
	}

	return block, txs, outputs, nil
}

// identifyBlockMiner names the mining pool from the coinbase script and the
// coinbase payout addresses.
func (s *BTCHistorySyncService) identifyBlockMiner(src *btcjson.GetBlockVerboseTxResult, resolver *BTCOutputResolver) string {
	if len(src.Tx) == 0 {
		return derive.UnknownMiner
	}

	coinbase := src.Tx[0]
	coinbaseHex := ""
	if len(coinbase.Vin) > 0 {
		coinbaseHex = coinbase.Vin[0].Coinbase
	}

	var payouts []string
	if outputs, ok := resolver.Local(coinbase.Txid); ok {
		for _, out := range outputs {
			payouts = append(payouts, out.Addresses...)
		}
	}

	return derive.IdentifyMiner(coinbaseHex, payouts...)
}

func (s *BTCHistorySyncService) convertTransaction(
	ctx context.Context,
	resolver *BTCOutputResolver,
	tx btcjson.TxRawResult,
	blockHeight uint64,
	timestamp time.Time,
) (model.BTCTransaction, error) {
	var txModel model.BTCTransaction

	inputCount, err := safe.ToUint16(len(tx.Vin))
	if err != nil {
		return txModel, fmt.Errorf("tx %s vin count: %w", tx.Txid, err)
	}
	outputCount, err := safe.ToUint16(len(tx.Vout))
	if err != nil {
		return txModel, fmt.Errorf("tx %s vout count: %w", tx.Txid, err)
	}
	size, err := safe.ToUint32(tx.Size)
	if err != nil {
		return txModel, fmt.Errorf("tx %s size: %w", tx.Txid, err)
	}
	vsize, err := safe.ToUint32(tx.Vsize)
	if err != nil {
		return txModel, fmt.Errorf("tx %s vsize: %w", tx.Txid, err)
	}
	weight, err := safe.ToUint32(tx.Weight)
	if err != nil {
		return txModel, fmt.Errorf("tx %s weight: %w", tx.Txid, err)
	}

	view, err := s.buildTransactionView(ctx, resolver, tx)
	if err != nil {
		return txModel, err
	}

	summary := derive.Aggregate(view)

	coinbase := isCoinbaseTx(tx)
	fee := summary.Fee
	if coinbase {
		// A coinbase transaction mints its outputs; there is no fee to pay.
		fee = 0
	}

	return model.BTCTransaction{
		Network:     s.network,
		TxID:        tx.Txid,
		BlockHeight: blockHeight,
		Timestamp:   timestamp,
		Size:        size,
		VSize:       vsize,
		Weight:      weight,
		Version:     tx.Version,
		LockTime:    tx.LockTime,
		IsCoinbase:  coinbase,
		Fee:         fee,
		TotalInput:  summary.TotalInput,
		TotalOutput: summary.TotalOutput,
		FromAddress: summary.From.Address,
		ToAddress:   summary.To.Address,
		InputCount:  inputCount,
		OutputCount: outputCount,
	}, nil
}

func (s *BTCHistorySyncService) buildTransactionView(
	ctx context.Context,
	resolver *BTCOutputResolver,
	tx btcjson.TxRawResult,
) (derive.TransactionView, error) {
	view := derive.TransactionView{
		Hash: tx.Hash,
		TxID: tx.Txid,
	}

	for _, vin := range tx.Vin {
		if vin.IsCoinBase() {
			view.Inputs = append(view.Inputs, derive.TxInput{Coinbase: vin.Coinbase})
			continue
		}

		prevOutputs, err := resolver.Resolve(ctx, vin.Txid)
		if err != nil {
			return view, fmt.Errorf("resolve prev outputs for tx %s: %w", vin.Txid, err)
		}
		if int(vin.Vout) >= len(prevOutputs) {
			return view, fmt.Errorf("input references missing vout %d in tx %s", vin.Vout, vin.Txid)
		}
		prev := prevOutputs[vin.Vout]
		value, err := safe.ToInt64(prev.Value)
		if err != nil {
			return view, fmt.Errorf("tx %s prev output value: %w", vin.Txid, err)
		}

		view.Inputs = append(view.Inputs, derive.TxInput{
			PrevOut: &derive.TxOutput{
				Address: firstAddress(prev.Addresses),
				Script:  prev.ScriptHex,
				Value:   value,
			},
		})
	}

	local, ok := resolver.Local(tx.Txid)
	if !ok {
		return view, fmt.Errorf("outputs for tx %s not prepared", tx.Txid)
	}
	for _, out := range local {
		value, err := safe.ToInt64(out.Value)
		if err != nil {
			return view, fmt.Errorf("tx %s output value: %w", tx.Txid, err)
		}
		view.Out = append(view.Out, derive.TxOutput{
			Address: firstAddress(out.Addresses),
			Script:  out.ScriptHex,
			Value:   value,
		})
	}

	return view, nil
}

func (s *BTCHistorySyncService) convertOutputs(tx btcjson.TxRawResult, blockHeight uint64, blockTime time.Time) ([]model.BTCTransactionOutput, error) {
	outputs := make([]model.BTCTransactionOutput, 0, len(tx.Vout))
	for idx, vout := range tx.Vout {
		if vout.Value < 0 {
			return nil, fmt.Errorf("tx %s output %d negative value: %f", tx.Txid, idx, vout.Value)
		}

		value, err := btcToSatoshis(vout.Value)
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d convert value: %w", tx.Txid, idx, err)
		}

		addresses, err := s.decoder.decodeAddresses(vout)
		if err != nil {
			return nil, fmt.Errorf("decode addresses for tx %s output %d: %w", tx.Txid, idx, err)
		}

		outputs = append(outputs, model.BTCTransactionOutput{
			Network:     s.network,
			BlockHeight: blockHeight,
			BlockTime:   blockTime,
			TxID:        tx.Txid,
			Index:       uint32(idx),
			Value:       value,
			ScriptType:  vout.ScriptPubKey.Type,
			ScriptHex:   vout.ScriptPubKey.Hex,
			Addresses:   addresses,
		})
	}

	return outputs, nil
}

func (s *BTCHistorySyncService) flushBatches(
	ctx context.Context,
	blocks []model.BTCBlock,
	txs []model.BTCTransaction,
	outputs []model.BTCTransactionOutput,
) error {
	if len(blocks) > 0 {
		if err := s.repo.InsertBlocks(ctx, blocks); err != nil {
			return fmt.Errorf("batch insert blocks: %w", err)
		}
	}
	if len(txs) > 0 {
		if err := s.repo.InsertTransactions(ctx, txs); err != nil {
			return fmt.Errorf("batch insert transactions: %w", err)
		}
	}
	if len(outputs) > 0 {
		if err := s.repo.InsertTransactionOutputs(ctx, outputs); err != nil {
			return fmt.Errorf("batch insert outputs: %w", err)
		}
	}
	return nil
}

func parseBits(value string) (uint32, error) {
	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(parsed), nil
}

func firstAddress(addresses []string) string {
	if len(addresses) == 0 {
		return ""
	}
	return addresses[0]
}

func btcToSatoshis(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return uint64(amt), nil
}

func isCoinbaseTx(tx btcjson.TxRawResult) bool {
	switch len(tx.Vin) {
	case 0:
		return false
	case 1:
		return tx.Vin[0].IsCoinBase()
	default:
		return false
	}
}
