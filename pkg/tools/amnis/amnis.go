// Package amnis implements the Amnis liquid staking tool.
package amnis

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/internal/toolargs"
	"github.com/hamzaessahbaoui/aptos-agent-kit/runtime"
)

const aptDecimals = 8

// Stake stakes APT with Amnis and sends the stAPT to args.To, or to the
// agent's account when no recipient is given.
func Stake(ctx context.Context, agent runtime.Agent, logger *log.Logger, args StakeArgs) (StakeResponse, error) {
	to := strings.TrimSpace(args.To)
	if to == "" {
		to = agent.Address()
	}
	logger.Debug("executing amnis stake", "amount", args.Amount, "to", to)

	amount, err := toolargs.OnChain(args.Amount, aptDecimals)
	if err != nil {
		return StakeResponse{}, err
	}
	hash, err := agent.StakeAmnis(ctx, to, amount)
	if err != nil {
		return StakeResponse{}, err
	}
	return StakeResponse{TransactionHash: hash, To: to, Amount: amount.String()}, nil
}
