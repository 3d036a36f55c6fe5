// Package aptos implements the core account tools: balances, token details,
// transfers, burns, token creation and NFTs.
package aptos

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/internal/toolargs"
	"github.com/hamzaessahbaoui/aptos-agent-kit/runtime"
)

// createdDecimals is the precision of every token created by CreateToken.
const createdDecimals = 8

// Balance returns the balance of the agent's account for mint, or for APT
// when no mint is given.
func Balance(ctx context.Context, agent runtime.Agent, logger *log.Logger, args BalanceArgs) (BalanceResponse, error) {
	mint := strings.TrimSpace(args.Mint)
	if mint == "" {
		mint = runtime.AptosCoin
	}
	logger.Debug("executing aptos balance", "mint", mint)

	details, err := agent.GetTokenDetails(ctx, mint)
	if err != nil {
		return BalanceResponse{}, err
	}
	balance, err := agent.GetBalance(ctx, mint)
	if err != nil {
		return BalanceResponse{}, err
	}

	return BalanceResponse{
		Balance:    runtime.FromOnChain(balance, details.Decimals),
		RawBalance: balance.String(),
		Token:      tokenInfo(details),
	}, nil
}

// TokenDetails looks up a token by coin type or fungible asset address.
func TokenDetails(ctx context.Context, agent runtime.Agent, logger *log.Logger, args TokenDetailsArgs) (TokenDetailsResponse, error) {
	if err := toolargs.Require("token_address_required", "tokenAddress", args.TokenAddress); err != nil {
		return TokenDetailsResponse{}, err
	}
	logger.Debug("executing aptos token details", "token", args.TokenAddress)

	d, err := agent.GetTokenDetails(ctx, args.TokenAddress)
	if err != nil {
		return TokenDetailsResponse{}, err
	}
	return TokenDetailsResponse{TokenData: TokenData(d)}, nil
}

// TransferToken sends a human-readable amount of mint to another account.
func TransferToken(ctx context.Context, agent runtime.Agent, logger *log.Logger, args TransferTokenArgs) (TransferTokenResponse, error) {
	logger.Debug("executing aptos transfer", "to", args.To, "amount", args.Amount, "mint", args.Mint)
	if err := toolargs.Require("recipient_required", "to", args.To); err != nil {
		return TransferTokenResponse{}, err
	}
	if err := toolargs.Mint("mint", args.Mint); err != nil {
		return TransferTokenResponse{}, err
	}

	details, err := agent.GetTokenDetails(ctx, args.Mint)
	if err != nil {
		return TransferTokenResponse{}, err
	}
	amount, err := toolargs.OnChain(args.Amount, details.Decimals)
	if err != nil {
		return TransferTokenResponse{}, err
	}

	hash, err := agent.TransferTokens(ctx, args.To, amount, args.Mint)
	if err != nil {
		return TransferTokenResponse{}, err
	}
	return TransferTokenResponse{TransactionHash: hash, Token: tokenInfo(details)}, nil
}

// BurnToken burns a human-readable amount of a fungible asset.
func BurnToken(ctx context.Context, agent runtime.Agent, logger *log.Logger, args BurnTokenArgs) (BurnTokenResponse, error) {
	logger.Debug("executing aptos burn", "amount", args.Amount, "mint", args.Mint)
	if err := toolargs.Mint("mint", args.Mint); err != nil {
		return BurnTokenResponse{}, err
	}

	details, err := agent.GetTokenDetails(ctx, args.Mint)
	if err != nil {
		return BurnTokenResponse{}, err
	}
	amount, err := toolargs.OnChain(args.Amount, details.Decimals)
	if err != nil {
		return BurnTokenResponse{}, err
	}

	hash, err := agent.BurnToken(ctx, amount, args.Mint)
	if err != nil {
		return BurnTokenResponse{}, err
	}
	return BurnTokenResponse{TransactionHash: hash, Token: tokenInfo(details)}, nil
}

// CreateToken creates a fungible asset owned by the agent's account.
func CreateToken(ctx context.Context, agent runtime.Agent, logger *log.Logger, args CreateTokenArgs) (CreateTokenResponse, error) {
	logger.Debug("executing aptos create token", "name", args.Name, "symbol", args.Symbol)
	if err := toolargs.Require("name_required", "name", args.Name); err != nil {
		return CreateTokenResponse{}, err
	}
	if err := toolargs.Require("symbol_required", "symbol", args.Symbol); err != nil {
		return CreateTokenResponse{}, err
	}

	created, err := agent.CreateToken(ctx, runtime.CreateTokenRequest{
		Name:       args.Name,
		Symbol:     args.Symbol,
		IconURI:    args.IconURI,
		ProjectURI: args.ProjectURI,
	})
	if err != nil {
		return CreateTokenResponse{}, err
	}
	return CreateTokenResponse{
		TransactionHash: created.Hash,
		Address:         created.Address,
		Token:           TokenInfo{Name: args.Name, Symbol: args.Symbol, Decimals: createdDecimals},
	}, nil
}

func tokenInfo(d runtime.TokenDetails) TokenInfo {
	return TokenInfo{Name: d.Name, Symbol: d.Symbol, Decimals: d.Decimals}
}
