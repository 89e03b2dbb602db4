package core

import "math/big"

// TokenDecimals is the fixed decimal scale of the faucet token contract.
// Human-readable amounts are shifted by 10^18 before hitting the chain.
const TokenDecimals = 18

// FaucetStatus is the per-address view of the faucet contract.
type FaucetStatus struct {
	HasClaimed bool     `json:"hasClaimed"`
	Balance    string   `json:"balance"`
	Users      []string `json:"users"`
}

// FaucetInfo is the public description of the deployed faucet.
type FaucetInfo struct {
	ContractAddress string `json:"contractAddress"`
	FaucetAmount    string `json:"faucetAmount"`
	TotalUsers      int    `json:"totalUsers"`
	Network         string `json:"network"`
	ChainID         int64  `json:"chainId"`
}

// TransferLog is one raw Transfer event entry from the contract log.
type TransferLog struct {
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
}

// TxStatus classifies a transaction by its receipt outcome.
type TxStatus string

const (
	TxStatusConfirmed TxStatus = "confirmed"
	TxStatusFailed    TxStatus = "failed"
	TxStatusPending   TxStatus = "pending"
)

// TxDetails bundles a transaction with its receipt, if mined.
type TxDetails struct {
	Hash     string   `json:"hash"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Value    string   `json:"value"`
	Nonce    uint64   `json:"nonce"`
	GasUsed  uint64   `json:"gasUsed"`
	BlockNum *big.Int `json:"blockNumber"`
	Status   TxStatus `json:"status"`
}
