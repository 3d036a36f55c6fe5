package echo

import "encoding/json"

// StakeArgs represents arguments for the Stake and Unstake operations
type StakeArgs struct {
	Amount json.Number `json:"amount" jsonschema:"required,type=number,description=Human readable amount of APT (or eAPT when unstaking) such as 1.5"`
}

// StakeResponse represents the response for the Stake operation
type StakeResponse struct {
	TransactionHash string `json:"stakeTransactionHash"`
	Amount          string `json:"amount"`
}

// UnstakeResponse represents the response for the Unstake operation
type UnstakeResponse struct {
	TransactionHash string `json:"unstakeTransactionHash"`
	Amount          string `json:"amount"`
}
