package amnis

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

func TestStake(t *testing.T) {
	tests := []struct {
		name      string
		args      StakeArgs
		wantCode  string
		wantTo    string
		wantStAPT int64
		wantAPT   int64
	}{
		{name: "to self by default", args: StakeArgs{Amount: "1"}, wantTo: "0xabc", wantStAPT: 100_000_000, wantAPT: 200_000_000},
		{name: "to another account", args: StakeArgs{Amount: "1", To: "0x456"}, wantTo: "0x456", wantStAPT: 0, wantAPT: 200_000_000},
		{name: "invalid recipient", args: StakeArgs{Amount: "1", To: "alice"}, wantCode: "INVALID_ADDRESS", wantAPT: 300_000_000},
		{name: "invalid amount", args: StakeArgs{Amount: "abc"}, wantCode: "invalid_amount", wantAPT: 300_000_000},
		{name: "insufficient balance", args: StakeArgs{Amount: "4"}, wantCode: "INSUFFICIENT_BALANCE", wantAPT: 300_000_000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			rt := runtime.NewDryRun("0xabc", discard)
			require.NoError(t, rt.Fund(runtime.AptosCoin, big.NewInt(300_000_000)))

			resp, err := Stake(ctx, rt, discard, tc.args)
			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, errCode(t, err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.wantTo, resp.To)
				assert.Equal(t, "100000000", resp.Amount)
			}

			st, err := rt.GetBalance(ctx, runtime.AmnisStakedAPT)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStAPT, st.Int64())
			apt, err := rt.GetBalance(ctx, runtime.AptosCoin)
			require.NoError(t, err)
			assert.Equal(t, tc.wantAPT, apt.Int64())
		})
	}
}
