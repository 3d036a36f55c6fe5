package joule

import "encoding/json"

// DefaultPositionID is used when lending without naming a position; a new
// position is opened for it.
const DefaultPositionID = "1234"

// LendTokenArgs represents arguments for the LendToken operation
type LendTokenArgs struct {
	Amount      json.Number `json:"amount" jsonschema:"required,type=number,description=Human readable amount to lend such as 1 or 0.01"`
	Mint        string      `json:"mint" jsonschema:"required,description=Coin type or fungible asset address of the token to lend."`
	PositionID  string      `json:"positionId" jsonschema:"description=Lending position to add to. A new position is opened when omitted."`
	NewPosition bool        `json:"newPosition" jsonschema:"description=Open a new position instead of adding to an existing one."`
}

// PositionArgs represents arguments for the operations on an existing
// position: BorrowToken, RepayToken and WithdrawToken.
type PositionArgs struct {
	Amount     json.Number `json:"amount" jsonschema:"required,type=number,description=Human readable amount such as 1 or 0.01"`
	Mint       string      `json:"mint" jsonschema:"required,description=Coin type or fungible asset address of the token."`
	PositionID string      `json:"positionId" jsonschema:"required,description=Joule position the operation applies to."`
}

// Token is the token summary returned with every Joule result.
type Token struct {
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
}

// LendResponse represents the response for the LendToken operation
type LendResponse struct {
	TransactionHash string `json:"lendTokenTransactionHash"`
	PositionID      string `json:"positionId"`
	Token           Token  `json:"token"`
}

// BorrowResponse represents the response for the BorrowToken operation
type BorrowResponse struct {
	TransactionHash string `json:"borrowTokenTransactionHash"`
	PositionID      string `json:"positionId"`
	Token           Token  `json:"token"`
}

// RepayResponse represents the response for the RepayToken operation
type RepayResponse struct {
	TransactionHash string `json:"repayTokenTransactionHash"`
	PositionID      string `json:"positionId"`
	Token           Token  `json:"token"`
}

// WithdrawResponse represents the response for the WithdrawToken operation
type WithdrawResponse struct {
	TransactionHash string `json:"withdrawTokenTransactionHash"`
	PositionID      string `json:"positionId"`
	Token           Token  `json:"token"`
}
