package model

import "time"

// InsertBTCBlock groups a block with its transactions and outputs for batch insertion.
type InsertBTCBlock struct {
	Block   BTCBlock
	Txs     []BTCTransaction
	Outputs []BTCTransactionOutput
}

// BTCBlock describes a bitcoin block stored in ClickHouse.
type BTCBlock struct {
	Network    string
	Height     uint64
	Hash       string
	PrevHash   string
	Timestamp  time.Time
	Version    uint32
	MerkleRoot string
	Bits       uint32
	Nonce      uint32
	Difficulty float64
	Miner      string
	Size       uint32
	Weight     uint32
	TXCount    uint32
}

// BTCTransaction describes a bitcoin transaction stored in ClickHouse.
// Fee is signed on purpose: inconsistent upstream data can produce a negative
// fee and we store it as observed instead of clamping.
type BTCTransaction struct {
	Network     string
	TxID        string
	BlockHeight uint64
	Timestamp   time.Time
	Size        uint32
	VSize       uint32
	Weight      uint32
	Version     uint32
	LockTime    uint32
	IsCoinbase  bool
	Fee         int64
	TotalInput  int64
	TotalOutput int64
	FromAddress string
	ToAddress   string
	InputCount  uint16
	OutputCount uint16
}

// BTCTransactionOutput describes a single transaction output.
type BTCTransactionOutput struct {
	Network     string
	BlockHeight uint64
	BlockTime   time.Time
	TxID        string
	Index       uint32
	Value       uint64
	ScriptType  string
	ScriptHex   string
	Addresses   []string
}

// BTCPricePoint is a spot-price sample for one fiat currency.
type BTCPricePoint struct {
	Timestamp time.Time
	Currency  string
	Price     float64
}
