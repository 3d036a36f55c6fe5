package aries

import "encoding/json"

// CreateProfileArgs is empty: a profile belongs to the agent's account.
type CreateProfileArgs struct{}

// CreateProfileResponse represents the response for the CreateProfile operation
type CreateProfileResponse struct {
	TransactionHash string `json:"createProfileTransactionHash"`
}

// TokenArgs represents arguments for the Borrow and Repay operations
type TokenArgs struct {
	Amount json.Number `json:"amount" jsonschema:"required,type=number,description=Human readable amount such as 1 or 0.01"`
	Mint   string      `json:"mint" jsonschema:"required,description=Coin type of the token such as 0x1::aptos_coin::AptosCoin"`
}

// Token is the token summary returned with every result.
type Token struct {
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
}

// BorrowResponse represents the response for the Borrow operation
type BorrowResponse struct {
	TransactionHash string `json:"borrowTokenTransactionHash"`
	Token           Token  `json:"token"`
}

// RepayResponse represents the response for the Repay operation
type RepayResponse struct {
	TransactionHash string `json:"repayTokenTransactionHash"`
	Token           Token  `json:"token"`
}
