package panora

import "encoding/json"

// SwapArgs represents arguments for the Swap operation
type SwapArgs struct {
	FromToken       string      `json:"fromToken" jsonschema:"required,description=Coin type or fungible asset address of the token to sell"`
	ToToken         string      `json:"toToken" jsonschema:"required,description=Coin type or fungible asset address of the token to buy"`
	SwapAmount      json.Number `json:"swapAmount" jsonschema:"required,type=number,description=Human readable amount of fromToken to sell"`
	ToWalletAddress string      `json:"toWalletAddress" jsonschema:"description=Account that receives the bought tokens. Defaults to the agent's own account."`
}

// Token is one side of the swap in a result.
type Token struct {
	Mint     string `json:"mint"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
}

// SwapResponse represents the response for the Swap operation
type SwapResponse struct {
	TransactionHash string  `json:"swapTransactionHash"`
	Token           []Token `json:"token"`
}
