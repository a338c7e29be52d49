package service

import (
	"context"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/blockpulse/blockpulse-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BTCRepository interface {
		MaxBlockHeight(ctx context.Context, network string) (uint64, bool, error)
		InsertBlocks(ctx context.Context, blocks []model.BTCBlock) error
		InsertTransactions(ctx context.Context, txs []model.BTCTransaction) error
		InsertTransactionOutputs(ctx context.Context, outputs []model.BTCTransactionOutput) error
		TransactionOutputs(ctx context.Context, network, txid string) ([]model.BTCTransactionOutput, error)
		InsertPricePoints(ctx context.Context, points []model.BTCPricePoint) error
	}
	BTCRpcClient interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
	}
	PriceSource interface {
		LatestPrice(ctx context.Context, currency string) (model.BTCPricePoint, error)
	}
)
