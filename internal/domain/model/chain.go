package model

import "time"

// LamportsPerSOL is the number of lamports in one SOL.
const LamportsPerSOL = 1_000_000_000

// ActivityEntry is one confirmed signature from a wallet's recent history.
type ActivityEntry struct {
	Signature string     `json:"signature"`
	Slot      uint64     `json:"slot"`
	BlockTime *time.Time `json:"block_time,omitempty"`
	Failed    bool       `json:"failed"`
}

// TokenBalance is one SPL token position held by a wallet.
type TokenBalance struct {
	Mint   string  `json:"mint"`
	Amount float64 `json:"amount"`
}

// AccountSnapshot is a wallet's balance state at query time.
type AccountSnapshot struct {
	Lamports uint64         `json:"lamports"`
	SOL      float64        `json:"sol"`
	Tokens   []TokenBalance `json:"tokens,omitempty"`
}
