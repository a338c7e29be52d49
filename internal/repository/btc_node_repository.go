package repository

import (
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
)

// BTCNodeRepository wraps rpcclient.Client with per-operation metrics.
type BTCNodeRepository struct {
	client  *rpcclient.Client
	metrics Metrics
}

func NewBTCNodeRepository(client *rpcclient.Client, metrics Metrics) *BTCNodeRepository {
	return &BTCNodeRepository{
		client:  client,
		metrics: metrics,
	}
}

func (r *BTCNodeRepository) GetBlockCount() (count int64, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("get_block_count", err, started)
	}()
	return r.client.GetBlockCount()
}

func (r *BTCNodeRepository) GetBlockHash(blockHeight int64) (hash *chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("get_block_hash", err, started)
	}()
	return r.client.GetBlockHash(blockHeight)
}

func (r *BTCNodeRepository) GetBlockVerboseTx(blockHash *chainhash.Hash) (res *btcjson.GetBlockVerboseTxResult, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("get_block_verbose_tx", err, started)
	}()
	return r.client.GetBlockVerboseTx(blockHash)
}
