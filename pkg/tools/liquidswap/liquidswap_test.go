package liquidswap

import (
	"context"
	"errors"
	"io"
	"math/big"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamzaessahbaoui/aptos-agent-kit/runtime"
	"github.com/hamzaessahbaoui/aptos-agent-kit/toolkit"
)

const usdc = "0x2::usdc::USDC"

var discard = log.NewWithOptions(io.Discard, log.Options{})

func errCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	var tkErr toolkit.ToolKitError
	if errors.As(err, &tkErr) {
		return tkErr.Code
	}
	var coder toolkit.Coder
	require.ErrorAs(t, err, &coder)
	return coder.ErrorCode()
}

// newAgent returns an account with 10 APT next to a 1000 APT / 100 USDC
// pool whose LP supply is 1 token.
func newAgent(t *testing.T) (*runtime.DryRun, string) {
	t.Helper()
	rt := runtime.NewDryRun("0xabc", discard)
	require.NoError(t, rt.Fund(runtime.AptosCoin, big.NewInt(1_000_000_000)))
	rt.AddToken(usdc, runtime.TokenDetails{Name: "USD Coin", Symbol: "USDC", Decimals: 6, CoinType: usdc}, nil)
	lp, err := rt.AddPool(runtime.AptosCoin, usdc, big.NewInt(100_000_000_000), big.NewInt(100_000_000), big.NewInt(1_000_000))
	require.NoError(t, err)
	return rt, lp
}

func balanceOf(t *testing.T, rt *runtime.DryRun, mint string) int64 {
	t.Helper()
	bal, err := rt.GetBalance(context.Background(), mint)
	require.NoError(t, err)
	return bal.Int64()
}

func TestSwap(t *testing.T) {
	tests := []struct {
		name     string
		args     SwapArgs
		wantCode string
		wantUSDC int64
	}{
		{name: "swap", args: SwapArgs{MintX: runtime.AptosCoin, MintY: usdc, SwapAmount: "1"}, wantUSDC: 99_600},
		{name: "within slippage", args: SwapArgs{MintX: runtime.AptosCoin, MintY: usdc, SwapAmount: "1", MinCoinOut: "0.0996"}, wantUSDC: 99_600},
		{name: "below min out", args: SwapArgs{MintX: runtime.AptosCoin, MintY: usdc, SwapAmount: "1", MinCoinOut: "0.1"}, wantCode: "SLIPPAGE"},
		{name: "fungible asset", args: SwapArgs{MintX: runtime.AptosCoin, MintY: "0x357b", SwapAmount: "1"}, wantCode: "coin_required"},
		{name: "missing mint", args: SwapArgs{MintY: usdc, SwapAmount: "1"}, wantCode: "mint_required"},
		{name: "no pool", args: SwapArgs{MintX: runtime.AptosCoin, MintY: runtime.EchoAPT, SwapAmount: "1"}, wantCode: "NO_POOL"},
		{name: "invalid amount", args: SwapArgs{MintX: runtime.AptosCoin, MintY: usdc, SwapAmount: "x"}, wantCode: "invalid_amount"},
		{name: "insufficient balance", args: SwapArgs{MintX: usdc, MintY: runtime.AptosCoin, SwapAmount: "1"}, wantCode: "INSUFFICIENT_BALANCE"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rt, _ := newAgent(t)
			resp, err := Swap(context.Background(), rt, discard, tc.args)
			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, errCode(t, err))
				assert.Equal(t, int64(1_000_000_000), balanceOf(t, rt, runtime.AptosCoin))
				assert.Empty(t, rt.Transactions())
				return
			}
			require.NoError(t, err)
			require.Len(t, resp.Token, 2)
			assert.Equal(t, "USD Coin", resp.Token[1].Name)
			assert.Equal(t, int64(900_000_000), balanceOf(t, rt, runtime.AptosCoin))
			assert.Equal(t, tc.wantUSDC, balanceOf(t, rt, usdc))
		})
	}
}

func TestRemoveLiquidity(t *testing.T) {
	ctx := context.Background()
	rt, lp := newAgent(t)
	require.NoError(t, rt.Fund(lp, big.NewInt(100_000)))

	_, err := RemoveLiquidity(ctx, rt, discard, RemoveLiquidityArgs{MintX: runtime.AptosCoin, MintY: usdc, LPAmount: "0.2"})
	assert.Equal(t, "INSUFFICIENT_BALANCE", errCode(t, err))

	_, err = RemoveLiquidity(ctx, rt, discard, RemoveLiquidityArgs{MintX: runtime.AptosCoin, MintY: usdc, LPAmount: "0.1", MinMintY: "10.000001"})
	assert.Equal(t, "SLIPPAGE", errCode(t, err))

	resp, err := RemoveLiquidity(ctx, rt, discard, RemoveLiquidityArgs{MintX: runtime.AptosCoin, MintY: usdc, LPAmount: "0.1", MinMintY: "10"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.TransactionHash)

	assert.Equal(t, int64(1_000_000_000+10_000_000_000), balanceOf(t, rt, runtime.AptosCoin))
	assert.Equal(t, int64(10_000_000), balanceOf(t, rt, usdc))
	assert.Zero(t, balanceOf(t, rt, lp))
	assert.Len(t, rt.Transactions(), 1)
}
