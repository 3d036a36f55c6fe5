// Package echo implements liquid staking tools for the Echo protocol.
package echo

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/internal/toolargs"
	"github.com/hamzaessahbaoui/aptos-agent-kit/runtime"
)

// aptDecimals is shared by APT and eAPT.
const aptDecimals = 8

// Stake stakes APT with Echo in exchange for eAPT.
func Stake(ctx context.Context, agent runtime.Agent, logger *log.Logger, args StakeArgs) (StakeResponse, error) {
	logger.Debug("executing echo stake", "amount", args.Amount)
	amount, err := toolargs.OnChain(args.Amount, aptDecimals)
	if err != nil {
		return StakeResponse{}, err
	}
	hash, err := agent.StakeEcho(ctx, amount)
	if err != nil {
		return StakeResponse{}, err
	}
	return StakeResponse{TransactionHash: hash, Amount: amount.String()}, nil
}

// Unstake redeems eAPT for APT.
func Unstake(ctx context.Context, agent runtime.Agent, logger *log.Logger, args StakeArgs) (UnstakeResponse, error) {
	logger.Debug("executing echo unstake", "amount", args.Amount)
	amount, err := toolargs.OnChain(args.Amount, aptDecimals)
	if err != nil {
		return UnstakeResponse{}, err
	}
	hash, err := agent.UnstakeEcho(ctx, amount)
	if err != nil {
		return UnstakeResponse{}, err
	}
	return UnstakeResponse{TransactionHash: hash, Amount: amount.String()}, nil
}
