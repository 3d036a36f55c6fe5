package aptos

import "encoding/json"

// TokenInfo is the token summary returned with every result.
type TokenInfo struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol,omitempty"`
	Decimals int    `json:"decimals"`
}

// BalanceArgs represents arguments for the Balance operation
type BalanceArgs struct {
	Mint string `json:"mint" jsonschema:"description=Coin type or fungible asset address of the token. Leave empty for APT."`
}

// BalanceResponse represents the response for the Balance operation
type BalanceResponse struct {
	Balance    string    `json:"balance"`
	RawBalance string    `json:"rawBalance"`
	Token      TokenInfo `json:"token"`
}

// TokenDetailsArgs represents arguments for the TokenDetails operation
type TokenDetailsArgs struct {
	TokenAddress string `json:"tokenAddress" jsonschema:"required,description=Coin type or fungible asset address of the token."`
}

// TokenDetailsResponse represents the response for the TokenDetails operation
type TokenDetailsResponse struct {
	TokenData TokenData `json:"tokenData"`
}

// TokenData is a token's metadata as reported by the chain.
type TokenData struct {
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Decimals  int    `json:"decimals"`
	CoinType  string `json:"coinType,omitempty"`
	FAAddress string `json:"faAddress,omitempty"`
}

// TransferTokenArgs represents arguments for the TransferToken operation
type TransferTokenArgs struct {
	To     string      `json:"to" jsonschema:"required,description=Recipient account address such as 0x123..."`
	Amount json.Number `json:"amount" jsonschema:"required,type=number,description=Human readable amount to send such as 1.5"`
	Mint   string      `json:"mint" jsonschema:"required,description=Coin type or fungible asset address of the token such as 0x1::aptos_coin::AptosCoin"`
}

// TransferTokenResponse represents the response for the TransferToken operation
type TransferTokenResponse struct {
	TransactionHash string    `json:"transferTokenTransactionHash"`
	Token           TokenInfo `json:"token"`
}

// BurnTokenArgs represents arguments for the BurnToken operation
type BurnTokenArgs struct {
	Amount json.Number `json:"amount" jsonschema:"required,type=number,description=Human readable amount to burn."`
	Mint   string      `json:"mint" jsonschema:"required,description=Fungible asset address of the token to burn."`
}

// BurnTokenResponse represents the response for the BurnToken operation
type BurnTokenResponse struct {
	TransactionHash string    `json:"burnTransactionHash"`
	Token           TokenInfo `json:"token"`
}

// CreateTokenArgs represents arguments for the CreateToken operation
type CreateTokenArgs struct {
	Name       string `json:"name" jsonschema:"required,description=Token name such as My Token"`
	Symbol     string `json:"symbol" jsonschema:"required,description=Token symbol such as MTK"`
	IconURI    string `json:"iconURI" jsonschema:"description=URL of the token icon."`
	ProjectURI string `json:"projectURI" jsonschema:"description=URL of the project site."`
}

// CreateTokenResponse represents the response for the CreateToken operation
type CreateTokenResponse struct {
	TransactionHash string    `json:"createTokenTransactionHash"`
	Address         string    `json:"tokenAddress"`
	Token           TokenInfo `json:"token"`
}

// TransferNFTArgs represents arguments for the TransferNFT operation
type TransferNFTArgs struct {
	To   string `json:"to" jsonschema:"required,description=Recipient account address."`
	Mint string `json:"mint" jsonschema:"required,description=Object address of the NFT."`
}

// BurnNFTArgs represents arguments for the BurnNFT operation
type BurnNFTArgs struct {
	Mint string `json:"mint" jsonschema:"required,description=Object address of the NFT to burn."`
}

// NFTResponse represents the response for the NFT operations
type NFTResponse struct {
	TransactionHash string `json:"transfer"`
	NFT             string `json:"nft"`
}
