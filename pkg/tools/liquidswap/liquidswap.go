// Package liquidswap implements swaps and liquidity removal on Liquidswap.
// Liquidswap pools hold coins only; fungible assets trade through Panora.
package liquidswap

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/internal/toolargs"
	"github.com/hamzaessahbaoui/aptos-agent-kit/runtime"
	"github.com/hamzaessahbaoui/aptos-agent-kit/toolkit"
)

// Swap sells SwapAmount of MintX for MintY.
func Swap(ctx context.Context, agent runtime.Agent, logger *log.Logger, args SwapArgs) (SwapResponse, error) {
	logger.Debug("executing liquidswap swap", "from", args.MintX, "to", args.MintY, "amount", args.SwapAmount)
	x, y, err := pair(ctx, agent, args.MintX, args.MintY)
	if err != nil {
		return SwapResponse{}, err
	}
	amountIn, err := toolargs.OnChain(args.SwapAmount, x.Decimals)
	if err != nil {
		return SwapResponse{}, err
	}
	minOut, err := toolargs.Optional(args.MinCoinOut, y.Decimals)
	if err != nil {
		return SwapResponse{}, err
	}

	hash, err := agent.Swap(ctx, runtime.SwapRequest{
		MintX:        args.MintX,
		MintY:        args.MintY,
		AmountIn:     amountIn,
		MinAmountOut: minOut,
	})
	if err != nil {
		return SwapResponse{}, err
	}
	return SwapResponse{TransactionHash: hash, Token: []Token{x, y}}, nil
}

// RemoveLiquidity burns LP tokens of the MintX/MintY pool and returns both
// tokens to the account.
func RemoveLiquidity(ctx context.Context, agent runtime.Agent, logger *log.Logger, args RemoveLiquidityArgs) (RemoveLiquidityResponse, error) {
	logger.Debug("executing liquidswap remove liquidity", "mintX", args.MintX, "mintY", args.MintY, "lp", args.LPAmount)
	x, y, err := pair(ctx, agent, args.MintX, args.MintY)
	if err != nil {
		return RemoveLiquidityResponse{}, err
	}
	lp, err := toolargs.OnChain(args.LPAmount, lpDecimals)
	if err != nil {
		return RemoveLiquidityResponse{}, err
	}
	minX, err := toolargs.Optional(args.MinMintX, x.Decimals)
	if err != nil {
		return RemoveLiquidityResponse{}, err
	}
	minY, err := toolargs.Optional(args.MinMintY, y.Decimals)
	if err != nil {
		return RemoveLiquidityResponse{}, err
	}

	hash, err := agent.RemoveLiquidity(ctx, runtime.RemoveLiquidityRequest{
		MintX:    args.MintX,
		MintY:    args.MintY,
		LPAmount: lp,
		MinX:     minX,
		MinY:     minY,
	})
	if err != nil {
		return RemoveLiquidityResponse{}, err
	}
	return RemoveLiquidityResponse{TransactionHash: hash, Token: []Token{x, y}}, nil
}

// pair checks that both mints are coin types and resolves their details.
func pair(ctx context.Context, agent runtime.Agent, mintX, mintY string) (Token, Token, error) {
	var tokens [2]Token
	for i, m := range []struct{ field, mint string }{{"mintX", mintX}, {"mintY", mintY}} {
		if err := toolargs.Mint(m.field, m.mint); err != nil {
			return Token{}, Token{}, err
		}
		if !strings.Contains(m.mint, "::") {
			return Token{}, Token{}, toolkit.NewError("coin_required",
				fmt.Sprintf("%s %q is a fungible asset; Liquidswap only trades coins, use panora_aggregator_swap instead", m.field, m.mint))
		}
		details, err := agent.GetTokenDetails(ctx, m.mint)
		if err != nil {
			return Token{}, Token{}, err
		}
		tokens[i] = Token{Mint: m.mint, Name: details.Name, Decimals: details.Decimals}
	}
	return tokens[0], tokens[1], nil
}
