// Package joule implements lending and borrowing tools for the Joule
// protocol.
package joule

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/internal/toolargs"
	"github.com/hamzaessahbaoui/aptos-agent-kit/runtime"
)

// LendToken lends tokens to a Joule position, opening the default position
// when none is given.
func LendToken(ctx context.Context, agent runtime.Agent, logger *log.Logger, args LendTokenArgs) (LendResponse, error) {
	positionID, newPosition := args.PositionID, args.NewPosition
	if positionID == "" {
		positionID, newPosition = DefaultPositionID, true
	}
	logger.Debug("executing joule lend", "amount", args.Amount, "mint", args.Mint, "position", positionID)

	req, details, err := buildRequest(ctx, agent, args.Amount, args.Mint, positionID)
	if err != nil {
		return LendResponse{}, err
	}
	req.NewPosition = newPosition

	hash, err := agent.LendToken(ctx, req)
	if err != nil {
		return LendResponse{}, err
	}
	return LendResponse{TransactionHash: hash, PositionID: positionID, Token: token(details)}, nil
}

// BorrowToken borrows tokens against an existing Joule position.
func BorrowToken(ctx context.Context, agent runtime.Agent, logger *log.Logger, args PositionArgs) (BorrowResponse, error) {
	logger.Debug("executing joule borrow", "amount", args.Amount, "mint", args.Mint, "position", args.PositionID)
	req, details, err := positionRequest(ctx, agent, args)
	if err != nil {
		return BorrowResponse{}, err
	}

	hash, err := agent.BorrowToken(ctx, req)
	if err != nil {
		return BorrowResponse{}, err
	}
	return BorrowResponse{TransactionHash: hash, PositionID: args.PositionID, Token: token(details)}, nil
}

// RepayToken repays debt of an existing Joule position.
func RepayToken(ctx context.Context, agent runtime.Agent, logger *log.Logger, args PositionArgs) (RepayResponse, error) {
	logger.Debug("executing joule repay", "amount", args.Amount, "mint", args.Mint, "position", args.PositionID)
	req, details, err := positionRequest(ctx, agent, args)
	if err != nil {
		return RepayResponse{}, err
	}

	hash, err := agent.RepayToken(ctx, req)
	if err != nil {
		return RepayResponse{}, err
	}
	return RepayResponse{TransactionHash: hash, PositionID: args.PositionID, Token: token(details)}, nil
}

// WithdrawToken withdraws lent tokens from an existing Joule position.
func WithdrawToken(ctx context.Context, agent runtime.Agent, logger *log.Logger, args PositionArgs) (WithdrawResponse, error) {
	logger.Debug("executing joule withdraw", "amount", args.Amount, "mint", args.Mint, "position", args.PositionID)
	req, details, err := positionRequest(ctx, agent, args)
	if err != nil {
		return WithdrawResponse{}, err
	}

	hash, err := agent.WithdrawToken(ctx, req)
	if err != nil {
		return WithdrawResponse{}, err
	}
	return WithdrawResponse{TransactionHash: hash, PositionID: args.PositionID, Token: token(details)}, nil
}

func positionRequest(ctx context.Context, agent runtime.Agent, args PositionArgs) (runtime.LendRequest, runtime.TokenDetails, error) {
	if err := toolargs.Require("position_required", "positionId", args.PositionID); err != nil {
		return runtime.LendRequest{}, runtime.TokenDetails{}, err
	}
	return buildRequest(ctx, agent, args.Amount, args.Mint, args.PositionID)
}

// buildRequest resolves the token and converts the amount. A mint equal to
// the token's fungible asset address marks the request as a fungible asset
// operation.
func buildRequest(ctx context.Context, agent runtime.Agent, amount json.Number, mint, positionID string) (runtime.LendRequest, runtime.TokenDetails, error) {
	if err := toolargs.Mint("mint", mint); err != nil {
		return runtime.LendRequest{}, runtime.TokenDetails{}, err
	}
	details, err := agent.GetTokenDetails(ctx, mint)
	if err != nil {
		return runtime.LendRequest{}, runtime.TokenDetails{}, err
	}
	onChain, err := toolargs.OnChain(amount, details.Decimals)
	if err != nil {
		return runtime.LendRequest{}, runtime.TokenDetails{}, err
	}
	return runtime.LendRequest{
		Amount:        onChain,
		Mint:          mint,
		PositionID:    positionID,
		FungibleAsset: details.FAAddress != "" && strings.EqualFold(details.FAAddress, mint),
	}, details, nil
}

func token(d runtime.TokenDetails) Token {
	return Token{Name: d.Name, Decimals: d.Decimals}
}
