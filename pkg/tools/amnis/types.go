package amnis

import "encoding/json"

// StakeArgs represents arguments for the Stake operation
type StakeArgs struct {
	Amount json.Number `json:"amount" jsonschema:"required,type=number,description=Human readable amount of APT to stake such as 1 or 0.01"`
	To     string      `json:"to" jsonschema:"description=Account that receives the stAPT. Defaults to the agent's own account."`
}

// StakeResponse represents the response for the Stake operation
type StakeResponse struct {
	TransactionHash string `json:"stakeTransactionHash"`
	To              string `json:"to"`
	Amount          string `json:"amount"`
}
