// Package transport exposes the REST API surface.
package transport

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blockpulse/blockpulse-backend/internal/derive"
	"github.com/blockpulse/blockpulse-backend/internal/model"
	"github.com/blockpulse/blockpulse-backend/internal/repository"
)

const (
	defaultLatestBlocksLimit = 10
	maxLatestBlocksLimit     = 100

	defaultCurrency = "usd"
)

type ExplorerRepository interface {
	LatestBlocks(ctx context.Context, network string, limit uint64) ([]model.BTCBlock, error)
	BlockByHash(ctx context.Context, network, hash string) (model.BTCBlock, error)
	BlockByHeight(ctx context.Context, network string, height uint64) (model.BTCBlock, error)
	TransactionByID(ctx context.Context, network, txid string) (model.BTCTransaction, error)
	TransactionOutputs(ctx context.Context, network, txid string) ([]model.BTCTransactionOutput, error)
	LatestPrice(ctx context.Context, currency string) (model.BTCPricePoint, error)
}

// ExplorerHandler serves explorer REST endpoints.
type ExplorerHandler struct {
	repo    ExplorerRepository
	logger  *zap.Logger
	network string
}

// NewExplorerHandler returns an ExplorerHandler instance.
func NewExplorerHandler(repo ExplorerRepository, network string, logger *zap.Logger) *ExplorerHandler {
	return &ExplorerHandler{
		repo:    repo,
		logger:  logger,
		network: network,
	}
}

// Health reports server health.
// GET /health
func (h *ExplorerHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// LatestBlocks returns the most recent blocks.
// GET /api/v1/blocks/latest?limit=10
func (h *ExplorerHandler) LatestBlocks(c *gin.Context) {
	limit := uint64(defaultLatestBlocksLimit)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		if parsed > maxLatestBlocksLimit {
			parsed = maxLatestBlocksLimit
		}
		limit = parsed
	}

	blocks, err := h.repo.LatestBlocks(c.Request.Context(), h.network, limit)
	if err != nil {
		h.respondError(c, err, "no blocks found")
		return
	}

	resp := make([]BlockResponse, 0, len(blocks))
	for _, block := range blocks {
		resp = append(resp, newBlockResponse(block))
	}
	c.JSON(http.StatusOK, resp)
}

// BlockByHash returns a block by its hash.
// GET /api/v1/blocks/:hash
func (h *ExplorerHandler) BlockByHash(c *gin.Context) {
	hash := c.Param("hash")

	block, err := h.repo.BlockByHash(c.Request.Context(), h.network, hash)
	if err != nil {
		h.respondError(c, err, "block not found")
		return
	}

	c.JSON(http.StatusOK, newBlockResponse(block))
}

// BlockByHeight returns a block by its height.
// GET /api/v1/blocks/height/:height
func (h *ExplorerHandler) BlockByHeight(c *gin.Context) {
	height, err := strconv.ParseUint(c.Param("height"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid height"})
		return
	}

	block, err := h.repo.BlockByHeight(c.Request.Context(), h.network, height)
	if err != nil {
		h.respondError(c, err, "block not found")
		return
	}

	c.JSON(http.StatusOK, newBlockResponse(block))
}

// TransactionByID returns a transaction with its outputs.
// GET /api/v1/txs/:txid
func (h *ExplorerHandler) TransactionByID(c *gin.Context) {
	txid := c.Param("txid")
	ctx := c.Request.Context()

	tx, err := h.repo.TransactionByID(ctx, h.network, txid)
	if err != nil {
		h.respondError(c, err, "transaction not found")
		return
	}

	outputs, err := h.repo.TransactionOutputs(ctx, h.network, txid)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.respondError(c, err, "transaction not found")
		return
	}

	c.JSON(http.StatusOK, newTransactionResponse(tx, outputs))
}

// LatestPrice returns the most recent spot price sample.
// GET /api/v1/price/latest?currency=usd
func (h *ExplorerHandler) LatestPrice(c *gin.Context) {
	currency := c.DefaultQuery("currency", defaultCurrency)

	point, err := h.repo.LatestPrice(c.Request.Context(), currency)
	if err != nil {
		h.respondError(c, err, "no price recorded for currency")
		return
	}

	c.JSON(http.StatusOK, newPriceResponse(point))
}

func (h *ExplorerHandler) respondError(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}

	h.logger.Error("explorer request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// BlockResponse is a block with derived presentation fields.
type BlockResponse struct {
	Network     string  `json:"network"`
	Height      uint64  `json:"height"`
	Hash        string  `json:"hash"`
	HashShort   string  `json:"hash_short"`
	PrevHash    string  `json:"prev_hash"`
	Time        int64   `json:"time"`
	TimeText    string  `json:"time_text"`
	Age         string  `json:"age"`
	Version     uint32  `json:"version"`
	MerkleRoot  string  `json:"merkle_root"`
	Bits        uint32  `json:"bits"`
	Nonce       uint32  `json:"nonce"`
	Difficulty  float64 `json:"difficulty"`
	Miner       string  `json:"miner"`
	Size        uint32  `json:"size"`
	SizeText    string  `json:"size_text"`
	Weight      uint32  `json:"weight"`
	TxCount     uint32  `json:"tx_count"`
	TxCountText string  `json:"tx_count_text"`
}

func newBlockResponse(b model.BTCBlock) BlockResponse {
	unix := b.Timestamp.Unix()
	size := int64(b.Size)
	txCount := int64(b.TXCount)

	return BlockResponse{
		Network:     b.Network,
		Height:      b.Height,
		Hash:        b.Hash,
		HashShort:   derive.TruncateHash(b.Hash),
		PrevHash:    b.PrevHash,
		Time:        unix,
		TimeText:    derive.FormatTimestamp(unix),
		Age:         derive.FormatTimeAgo(unix),
		Version:     b.Version,
		MerkleRoot:  b.MerkleRoot,
		Bits:        b.Bits,
		Nonce:       b.Nonce,
		Difficulty:  b.Difficulty,
		Miner:       b.Miner,
		Size:        b.Size,
		SizeText:    derive.FormatFileSize(&size),
		Weight:      b.Weight,
		TxCount:     b.TXCount,
		TxCountText: derive.FormatNumber(&txCount),
	}
}

// TransactionResponse is a transaction with derived presentation fields.
type TransactionResponse struct {
	Network         string           `json:"network"`
	TxID            string           `json:"txid"`
	TxIDShort       string           `json:"txid_short"`
	BlockHeight     uint64           `json:"block_height"`
	Time            int64            `json:"time"`
	TimeText        string           `json:"time_text"`
	Age             string           `json:"age"`
	Size            uint32           `json:"size"`
	VSize           uint32           `json:"vsize"`
	Weight          uint32           `json:"weight"`
	Version         uint32           `json:"version"`
	LockTime        uint32           `json:"locktime"`
	IsCoinbase      bool             `json:"is_coinbase"`
	Fee             int64            `json:"fee"`
	FeeText         string           `json:"fee_text"`
	TotalInput      int64            `json:"total_input"`
	TotalInputText  string           `json:"total_input_text"`
	TotalOutput     int64            `json:"total_output"`
	TotalOutputText string           `json:"total_output_text"`
	From            string           `json:"from"`
	To              string           `json:"to"`
	InputCount      uint16           `json:"input_count"`
	OutputCount     uint16           `json:"output_count"`
	Outputs         []OutputResponse `json:"outputs"`
}

// OutputResponse is a single transaction output.
type OutputResponse struct {
	Index      uint32   `json:"index"`
	Value      uint64   `json:"value"`
	ValueText  string   `json:"value_text"`
	ScriptType string   `json:"script_type"`
	Addresses  []string `json:"addresses"`
}

func newTransactionResponse(tx model.BTCTransaction, outputs []model.BTCTransactionOutput) TransactionResponse {
	unix := tx.Timestamp.Unix()
	fee := tx.Fee
	totalInput := tx.TotalInput
	totalOutput := tx.TotalOutput

	outs := make([]OutputResponse, 0, len(outputs))
	for _, out := range outputs {
		value := int64(out.Value)
		outs = append(outs, OutputResponse{
			Index:      out.Index,
			Value:      out.Value,
			ValueText:  derive.FormatBTCAmount(&value),
			ScriptType: out.ScriptType,
			Addresses:  out.Addresses,
		})
	}

	return TransactionResponse{
		Network:         tx.Network,
		TxID:            tx.TxID,
		TxIDShort:       derive.TruncateHash(tx.TxID),
		BlockHeight:     tx.BlockHeight,
		Time:            unix,
		TimeText:        derive.FormatTimestamp(unix),
		Age:             derive.FormatTimeAgo(unix),
		Size:            tx.Size,
		VSize:           tx.VSize,
		Weight:          tx.Weight,
		Version:         tx.Version,
		LockTime:        tx.LockTime,
		IsCoinbase:      tx.IsCoinbase,
		Fee:             tx.Fee,
		FeeText:         derive.FormatBTCAmount(&fee),
		TotalInput:      tx.TotalInput,
		TotalInputText:  derive.FormatBTCAmount(&totalInput),
		TotalOutput:     tx.TotalOutput,
		TotalOutputText: derive.FormatBTCAmount(&totalOutput),
		From:            tx.FromAddress,
		To:              tx.ToAddress,
		InputCount:      tx.InputCount,
		OutputCount:     tx.OutputCount,
		Outputs:         outs,
	}
}

// PriceResponse is the latest spot price sample.
type PriceResponse struct {
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
	Time     int64   `json:"time"`
	TimeText string  `json:"time_text"`
	Age      string  `json:"age"`
}

func newPriceResponse(p model.BTCPricePoint) PriceResponse {
	unix := p.Timestamp.Unix()
	return PriceResponse{
		Currency: p.Currency,
		Price:    p.Price,
		Time:     unix,
		TimeText: derive.FormatTimestamp(unix),
		Age:      derive.FormatTimeAgo(unix),
	}
}
