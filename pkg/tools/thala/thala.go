// Package thala implements liquid staking tools for Thala, which stakes APT
// for sthAPT.
package thala

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/internal/toolargs"
	"github.com/hamzaessahbaoui/aptos-agent-kit/runtime"
)

var staked = Token{Name: "sthAPT", Decimals: 8}

// Stake stakes APT with Thala.
func Stake(ctx context.Context, agent runtime.Agent, logger *log.Logger, args StakeArgs) (StakeResponse, error) {
	logger.Debug("executing thala stake", "amount", args.Amount)
	amount, err := toolargs.OnChain(args.Amount, staked.Decimals)
	if err != nil {
		return StakeResponse{}, err
	}
	hash, err := agent.StakeThala(ctx, amount)
	if err != nil {
		return StakeResponse{}, err
	}
	return StakeResponse{TransactionHash: hash, Token: staked}, nil
}

// Unstake redeems sthAPT for APT.
func Unstake(ctx context.Context, agent runtime.Agent, logger *log.Logger, args StakeArgs) (UnstakeResponse, error) {
	logger.Debug("executing thala unstake", "amount", args.Amount)
	amount, err := toolargs.OnChain(args.Amount, staked.Decimals)
	if err != nil {
		return UnstakeResponse{}, err
	}
	hash, err := agent.UnstakeThala(ctx, amount)
	if err != nil {
		return UnstakeResponse{}, err
	}
	return UnstakeResponse{TransactionHash: hash, Token: staked}, nil
}
