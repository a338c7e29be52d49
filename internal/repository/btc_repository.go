package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/blockpulse/blockpulse-backend/internal/model"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("not found")

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// BTCRepository persists and reads explorer data in ClickHouse.
type BTCRepository struct {
	conn    clickhouse.Conn
	metrics Metrics
}

func NewBTCRepository(dsn string, metrics Metrics) (*BTCRepository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &BTCRepository{conn: conn, metrics: metrics}, nil
}

// MaxBlockHeight returns the highest stored height for a network. The second
// return value is false when no blocks are stored yet.
func (r *BTCRepository) MaxBlockHeight(ctx context.Context, network string) (height uint64, ok bool, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("max_block_height", err, started)
	}()

	const query = `
SELECT toUInt64(max(height)) AS height, count() AS cnt
FROM btc_blocks
WHERE network = ?`

	rows, err := r.conn.Query(ctx, query, network)
	if err != nil {
		return 0, false, fmt.Errorf("query max block height: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, false, nil
	}

	var cnt uint64
	if err = rows.Scan(&height, &cnt); err != nil {
		return 0, false, fmt.Errorf("scan max block height: %w", err)
	}
	if cnt == 0 {
		return 0, false, nil
	}
	return height, true, nil
}

const blockColumns = `
	network,
	height,
	hash,
	prev_hash,
	timestamp,
	version,
	merkleroot,
	bits,
	nonce,
	difficulty,
	miner,
	size,
	weight,
	tx_count`

func (r *BTCRepository) InsertBlocks(ctx context.Context, blocks []model.BTCBlock) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("insert_blocks", err, started)
	}()

	if len(blocks) == 0 {
		return nil
	}

	query := "INSERT INTO btc_blocks (" + blockColumns + ") VALUES"

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}

	for _, block := range blocks {
		if err = batch.Append(
			block.Network,
			block.Height,
			block.Hash,
			block.PrevHash,
			block.Timestamp,
			block.Version,
			block.MerkleRoot,
			block.Bits,
			block.Nonce,
			block.Difficulty,
			block.Miner,
			block.Size,
			block.Weight,
			block.TXCount,
		); err != nil {
			return fmt.Errorf("append block: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}

func (r *BTCRepository) InsertTransactions(ctx context.Context, txs []model.BTCTransaction) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("insert_transactions", err, started)
	}()

	if len(txs) == 0 {
		return nil
	}

	const query = `
INSERT INTO btc_transactions (
	network,
	txid,
	block_height,
	timestamp,
	size,
	vsize,
	weight,
	version,
	locktime,
	is_coinbase,
	fee,
	total_input,
	total_output,
	from_address,
	to_address,
	input_count,
	output_count
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}

	for _, tx := range txs {
		if err = batch.Append(
			tx.Network,
			tx.TxID,
			tx.BlockHeight,
			tx.Timestamp,
			tx.Size,
			tx.VSize,
			tx.Weight,
			tx.Version,
			tx.LockTime,
			tx.IsCoinbase,
			tx.Fee,
			tx.TotalInput,
			tx.TotalOutput,
			tx.FromAddress,
			tx.ToAddress,
			tx.InputCount,
			tx.OutputCount,
		); err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

func (r *BTCRepository) InsertTransactionOutputs(ctx context.Context, outputs []model.BTCTransactionOutput) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("insert_transaction_outputs", err, started)
	}()

	if len(outputs) == 0 {
		return nil
	}

	const query = `
INSERT INTO btc_transaction_outputs (
	network,
	block_height,
	block_timestamp,
	txid,
	output_index,
	value,
	script_type,
	script_hex,
	addresses
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare transaction outputs batch: %w", err)
	}

	for _, output := range outputs {
		if err = batch.Append(
			output.Network,
			output.BlockHeight,
			output.BlockTime,
			output.TxID,
			output.Index,
			output.Value,
			output.ScriptType,
			output.ScriptHex,
			output.Addresses,
		); err != nil {
			return fmt.Errorf("append transaction output: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transaction outputs: %w", err)
	}
	return nil
}

func (r *BTCRepository) BlockByHeight(ctx context.Context, network string, height uint64) (block model.BTCBlock, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("block_by_height", err, started)
	}()

	query := "SELECT " + blockColumns + `
FROM btc_blocks
WHERE network = ? AND height = ?
LIMIT 1`

	return r.queryBlock(ctx, query, network, height)
}

func (r *BTCRepository) BlockByHash(ctx context.Context, network, hash string) (block model.BTCBlock, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("block_by_hash", err, started)
	}()

	query := "SELECT " + blockColumns + `
FROM btc_blocks
WHERE network = ? AND hash = ?
LIMIT 1`

	return r.queryBlock(ctx, query, network, hash)
}

func (r *BTCRepository) LatestBlocks(ctx context.Context, network string, limit uint64) (blocks []model.BTCBlock, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("latest_blocks", err, started)
	}()

	query := "SELECT " + blockColumns + `
FROM btc_blocks
WHERE network = ?
ORDER BY height DESC
LIMIT ?`

	rows, err := r.conn.Query(ctx, query, network, limit)
	if err != nil {
		return nil, fmt.Errorf("query latest blocks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var block model.BTCBlock
		if err = scanBlock(rows, &block); err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate latest blocks: %w", err)
	}

	return blocks, nil
}

func (r *BTCRepository) TransactionByID(ctx context.Context, network, txid string) (tx model.BTCTransaction, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("transaction_by_id", err, started)
	}()

	const query = `
SELECT
	network,
	txid,
	block_height,
	timestamp,
	size,
	vsize,
	weight,
	version,
	locktime,
	is_coinbase,
	fee,
	total_input,
	total_output,
	from_address,
	to_address,
	input_count,
	output_count
FROM btc_transactions
WHERE network = ? AND txid = ?
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, network, txid)
	if err != nil {
		return tx, fmt.Errorf("query transaction: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		err = ErrNotFound
		return tx, err
	}
	if err = rows.Scan(
		&tx.Network,
		&tx.TxID,
		&tx.BlockHeight,
		&tx.Timestamp,
		&tx.Size,
		&tx.VSize,
		&tx.Weight,
		&tx.Version,
		&tx.LockTime,
		&tx.IsCoinbase,
		&tx.Fee,
		&tx.TotalInput,
		&tx.TotalOutput,
		&tx.FromAddress,
		&tx.ToAddress,
		&tx.InputCount,
		&tx.OutputCount,
	); err != nil {
		return tx, fmt.Errorf("scan transaction: %w", err)
	}

	return tx, nil
}

func (r *BTCRepository) TransactionOutputs(ctx context.Context, network, txid string) (outputs []model.BTCTransactionOutput, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("transaction_outputs", err, started)
	}()

	const query = `
SELECT
	block_height,
	block_timestamp,
	output_index,
	value,
	script_type,
	script_hex,
	addresses
FROM btc_transaction_outputs
WHERE network = ? AND txid = ?
ORDER BY output_index ASC`

	rows, err := r.conn.Query(ctx, query, network, txid)
	if err != nil {
		return nil, fmt.Errorf("query transaction outputs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		output := model.BTCTransactionOutput{Network: network, TxID: txid}
		if err = rows.Scan(
			&output.BlockHeight,
			&output.BlockTime,
			&output.Index,
			&output.Value,
			&output.ScriptType,
			&output.ScriptHex,
			&output.Addresses,
		); err != nil {
			return nil, fmt.Errorf("scan transaction output: %w", err)
		}
		outputs = append(outputs, output)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction outputs: %w", err)
	}

	return outputs, nil
}

func (r *BTCRepository) InsertPricePoints(ctx context.Context, points []model.BTCPricePoint) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("insert_price_points", err, started)
	}()

	if len(points) == 0 {
		return nil
	}

	const query = `
INSERT INTO btc_prices (
	timestamp,
	currency,
	price
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare price points batch: %w", err)
	}

	for _, point := range points {
		if err = batch.Append(point.Timestamp, point.Currency, point.Price); err != nil {
			return fmt.Errorf("append price point: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert price points: %w", err)
	}
	return nil
}

func (r *BTCRepository) LatestPrice(ctx context.Context, currency string) (point model.BTCPricePoint, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("latest_price", err, started)
	}()

	const query = `
SELECT timestamp, currency, price
FROM btc_prices
WHERE currency = ?
ORDER BY timestamp DESC
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, currency)
	if err != nil {
		return point, fmt.Errorf("query latest price: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		err = ErrNotFound
		return point, err
	}
	if err = rows.Scan(&point.Timestamp, &point.Currency, &point.Price); err != nil {
		return point, fmt.Errorf("scan latest price: %w", err)
	}

	return point, nil
}

func (r *BTCRepository) Close() error {
	return r.conn.Close()
}

type blockScanner interface {
	Scan(dest ...any) error
}

func (r *BTCRepository) queryBlock(ctx context.Context, query string, args ...any) (model.BTCBlock, error) {
	var block model.BTCBlock

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return block, fmt.Errorf("query block: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return block, ErrNotFound
	}
	if err := scanBlock(rows, &block); err != nil {
		return block, err
	}
	return block, nil
}

func scanBlock(rows blockScanner, block *model.BTCBlock) error {
	if err := rows.Scan(
		&block.Network,
		&block.Height,
		&block.Hash,
		&block.PrevHash,
		&block.Timestamp,
		&block.Version,
		&block.MerkleRoot,
		&block.Bits,
		&block.Nonce,
		&block.Difficulty,
		&block.Miner,
		&block.Size,
		&block.Weight,
		&block.TXCount,
	); err != nil {
		return fmt.Errorf("scan block: %w", err)
	}
	return nil
}
