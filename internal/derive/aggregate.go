package derive

// Sentinels surfaced by Aggregate when a party cannot be named.
const (
	// CoinbaseSender labels the input side of a coinbase transaction.
	CoinbaseSender = "Coinbase (Newly Generated Coins)"
	// ScriptOutput labels a first output that carries only a script payload.
	ScriptOutput = "Script Output"
	// UnknownAddress labels a party with no usable address data.
	UnknownAddress = "Unknown Address"
)

// TransactionView is the normalized transaction shape accepted by Aggregate.
// The JSON tags cover both upstream variants: the raw API nests previous
// outputs under inputs[].prev_out and lists outputs under "out", while the
// alternate shape uses "outputs" and carries a precomputed fee.
type TransactionView struct {
	Hash       string     `json:"hash"`
	TxID       string     `json:"txid"`
	IsCoinbase bool       `json:"is_coinbase"`
	Fee        *int64     `json:"fee"`
	Inputs     []TxInput  `json:"inputs"`
	Out        []TxOutput `json:"out"`
	Outputs    []TxOutput `json:"outputs"`
}

// TxInput is a single transaction input. A non-empty Coinbase marker or a
// missing PrevOut identifies a coinbase input.
type TxInput struct {
	Coinbase string    `json:"coinbase"`
	PrevOut  *TxOutput `json:"prev_out"`
}

// TxOutput is a single transaction output. Value is in satoshis.
type TxOutput struct {
	Address string `json:"addr"`
	Script  string `json:"script"`
	Value   int64  `json:"value"`
}

// Party is one side of a transaction as shown to a reader.
type Party struct {
	Address string
	Value   int64
}

// Summary carries the derived economics of a single transaction.
type Summary struct {
	TotalInput  int64
	TotalOutput int64
	Fee         int64
	From        Party
	To          Party
}

// Aggregate computes total values, fee and primary sender/receiver for a
// transaction. When input data is absent entirely an explicit upstream fee is
// trusted; otherwise the fee is inputs minus outputs, and a negative result
// is passed through unclamped so inconsistent upstream data stays visible.
func Aggregate(tx TransactionView) Summary {
	var s Summary

	for _, in := range tx.Inputs {
		if in.PrevOut != nil {
			s.TotalInput += in.PrevOut.Value
		}
	}

	// The two output shapes carry the same data; never sum both.
	outs := tx.Out
	if outs == nil {
		outs = tx.Outputs
	}
	for _, out := range outs {
		s.TotalOutput += out.Value
	}

	if s.TotalInput == 0 && tx.Fee != nil {
		s.Fee = *tx.Fee
	} else {
		s.Fee = s.TotalInput - s.TotalOutput
	}

	s.To = Party{Address: UnknownAddress}
	if len(outs) > 0 {
		first := outs[0]
		s.To.Value = first.Value
		switch {
		case first.Address != "":
			s.To.Address = first.Address
		case first.Script != "":
			s.To.Address = ScriptOutput
		}
	}

	if isCoinbase(tx) {
		s.From = Party{Address: CoinbaseSender, Value: s.TotalOutput}
		return s
	}

	s.From = Party{Address: UnknownAddress}
	if len(tx.Inputs) > 0 && tx.Inputs[0].PrevOut != nil {
		prev := tx.Inputs[0].PrevOut
		if prev.Address != "" {
			s.From.Address = prev.Address
		}
		s.From.Value = prev.Value
	}
	return s
}

func isCoinbase(tx TransactionView) bool {
	if tx.IsCoinbase {
		return true
	}
	if len(tx.Inputs) == 0 {
		return false
	}
	first := tx.Inputs[0]
	return first.Coinbase != "" || first.PrevOut == nil
}
