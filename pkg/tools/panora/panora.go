// Package panora implements swaps through the Panora aggregator, which
// routes coins and fungible assets alike.
package panora

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/internal/toolargs"
	"github.com/hamzaessahbaoui/aptos-agent-kit/runtime"
)

// Swap sells SwapAmount of FromToken for ToToken.
func Swap(ctx context.Context, agent runtime.Agent, logger *log.Logger, args SwapArgs) (SwapResponse, error) {
	logger.Debug("executing panora swap", "from", args.FromToken, "to", args.ToToken, "amount", args.SwapAmount, "wallet", args.ToWalletAddress)
	if err := toolargs.Mint("fromToken", args.FromToken); err != nil {
		return SwapResponse{}, err
	}
	if err := toolargs.Mint("toToken", args.ToToken); err != nil {
		return SwapResponse{}, err
	}

	from, err := agent.GetTokenDetails(ctx, args.FromToken)
	if err != nil {
		return SwapResponse{}, err
	}
	to, err := agent.GetTokenDetails(ctx, args.ToToken)
	if err != nil {
		return SwapResponse{}, err
	}
	amount, err := toolargs.OnChain(args.SwapAmount, from.Decimals)
	if err != nil {
		return SwapResponse{}, err
	}

	hash, err := agent.SwapWithPanora(ctx, runtime.SwapRequest{
		MintX:    args.FromToken,
		MintY:    args.ToToken,
		AmountIn: amount,
		ToWallet: args.ToWalletAddress,
	})
	if err != nil {
		return SwapResponse{}, err
	}
	return SwapResponse{
		TransactionHash: hash,
		Token: []Token{
			{Mint: args.FromToken, Name: from.Name, Decimals: from.Decimals},
			{Mint: args.ToToken, Name: to.Name, Decimals: to.Decimals},
		},
	}, nil
}
