// Package aries implements the Aries Markets tools. Borrowing and repaying
// need the account's Aries profile, which CreateProfile opens once.
package aries

import (
	"context"
	"math/big"

	"github.com/charmbracelet/log"

	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/internal/toolargs"
	"github.com/hamzaessahbaoui/aptos-agent-kit/runtime"
)

// CreateProfile opens the agent's Aries profile.
func CreateProfile(ctx context.Context, agent runtime.Agent, logger *log.Logger, _ CreateProfileArgs) (CreateProfileResponse, error) {
	logger.Debug("executing aries create profile")
	hash, err := agent.CreateAriesProfile(ctx)
	if err != nil {
		return CreateProfileResponse{}, err
	}
	return CreateProfileResponse{TransactionHash: hash}, nil
}

// Borrow borrows a token from Aries against the profile's collateral.
func Borrow(ctx context.Context, agent runtime.Agent, logger *log.Logger, args TokenArgs) (BorrowResponse, error) {
	logger.Debug("executing aries borrow", "amount", args.Amount, "mint", args.Mint)
	amount, details, err := resolve(ctx, agent, args)
	if err != nil {
		return BorrowResponse{}, err
	}
	hash, err := agent.BorrowAriesToken(ctx, args.Mint, amount)
	if err != nil {
		return BorrowResponse{}, err
	}
	return BorrowResponse{TransactionHash: hash, Token: Token{Name: details.Name, Decimals: details.Decimals}}, nil
}

// Repay repays borrowed tokens.
func Repay(ctx context.Context, agent runtime.Agent, logger *log.Logger, args TokenArgs) (RepayResponse, error) {
	logger.Debug("executing aries repay", "amount", args.Amount, "mint", args.Mint)
	amount, details, err := resolve(ctx, agent, args)
	if err != nil {
		return RepayResponse{}, err
	}
	hash, err := agent.RepayAriesToken(ctx, args.Mint, amount)
	if err != nil {
		return RepayResponse{}, err
	}
	return RepayResponse{TransactionHash: hash, Token: Token{Name: details.Name, Decimals: details.Decimals}}, nil
}

func resolve(ctx context.Context, agent runtime.Agent, args TokenArgs) (*big.Int, runtime.TokenDetails, error) {
	if err := toolargs.Mint("mint", args.Mint); err != nil {
		return nil, runtime.TokenDetails{}, err
	}
	details, err := agent.GetTokenDetails(ctx, args.Mint)
	if err != nil {
		return nil, runtime.TokenDetails{}, err
	}
	amount, err := toolargs.OnChain(args.Amount, details.Decimals)
	if err != nil {
		return nil, runtime.TokenDetails{}, err
	}
	return amount, details, nil
}
