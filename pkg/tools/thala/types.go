package thala

import "encoding/json"

// StakeArgs represents arguments for the Stake and Unstake operations
type StakeArgs struct {
	Amount json.Number `json:"amount" jsonschema:"required,type=number,description=Human readable amount of APT to stake (or sthAPT to unstake) such as 1 or 0.01"`
}

// Token is the liquid staking token summary.
type Token struct {
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
}

// StakeResponse represents the response for the Stake operation
type StakeResponse struct {
	TransactionHash string `json:"stakeTransactionHash"`
	Token           Token  `json:"token"`
}

// UnstakeResponse represents the response for the Unstake operation
type UnstakeResponse struct {
	TransactionHash string `json:"unstakeTransactionHash"`
	Token           Token  `json:"token"`
}
