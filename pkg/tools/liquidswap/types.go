package liquidswap

import "encoding/json"

// lpDecimals is the precision of every Liquidswap LP token.
const lpDecimals = 6

// SwapArgs represents arguments for the Swap operation
type SwapArgs struct {
	MintX      string      `json:"mintX" jsonschema:"required,description=Coin type of the token to sell such as 0x1::aptos_coin::AptosCoin"`
	MintY      string      `json:"mintY" jsonschema:"required,description=Coin type of the token to buy"`
	SwapAmount json.Number `json:"swapAmount" jsonschema:"required,type=number,description=Human readable amount of mintX to sell"`
	MinCoinOut json.Number `json:"minCoinOut" jsonschema:"type=number,description=Least amount of mintY to accept"`
}

// RemoveLiquidityArgs represents arguments for the RemoveLiquidity operation
type RemoveLiquidityArgs struct {
	MintX    string      `json:"mintX" jsonschema:"required,description=Coin type of the first token of the pool"`
	MintY    string      `json:"mintY" jsonschema:"required,description=Coin type of the second token of the pool"`
	LPAmount json.Number `json:"lpAmount" jsonschema:"required,type=number,description=Human readable amount of LP tokens to burn"`
	MinMintX json.Number `json:"minMintX" jsonschema:"type=number,description=Least amount of mintX to receive"`
	MinMintY json.Number `json:"minMintY" jsonschema:"type=number,description=Least amount of mintY to receive"`
}

// Token is one side of the pair in a result.
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

// RemoveLiquidityResponse represents the response for the RemoveLiquidity operation
type RemoveLiquidityResponse struct {
	TransactionHash string  `json:"removeLiquidityTransactionHash"`
	Token           []Token `json:"token"`
}
