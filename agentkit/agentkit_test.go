package agentkit

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamzaessahbaoui/aptos-agent-kit/runtime"
	"github.com/hamzaessahbaoui/aptos-agent-kit/schema"
	"github.com/hamzaessahbaoui/aptos-agent-kit/toolkit"
)

func newKit(t *testing.T, opts ...Option) (*toolkit.Toolkit, *runtime.DryRun) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	rt := runtime.NewDryRun("0xabc", logger)
	require.NoError(t, rt.Fund(runtime.AptosCoin, big.NewInt(500_000_000)))
	return New(rt, logger, opts...), rt
}

func call(t *testing.T, tk *toolkit.Toolkit, name, input string) map[string]any {
	t.Helper()
	c, ok := tk.Lookup(name)
	require.True(t, ok, "tool %s not registered", name)
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(toolkit.Call(context.Background(), c, input)), &out))
	return out
}

func TestNew_Tools(t *testing.T) {
	tk, _ := newKit(t)
	assert.Equal(t, Name, tk.GetToolkitName())

	var names []string
	for _, c := range tk.Children() {
		names = append(names, c.GetName())
		assert.True(t, schema.Validate(c.GetInputSchema()), "%s must have a valid input schema", c.GetName())
	}
	assert.Equal(t, []string{
		"aptos_balance", "aptos_burn_nft", "aptos_burn_token", "aptos_create_token",
		"aptos_get_token_details", "aptos_transfer_nft", "aptos_transfer_token",
		"aries_borrow", "aries_create_profile", "aries_repay",
		"joule_borrow_token", "joule_lend_token", "joule_repay_token", "joule_withdraw_token",
		"liquidswap_remove_liquidity", "liquidswap_swap",
		"panora_aggregator_swap",
		"amnis_stake_token", "echo_stake_token", "echo_unstake_token", "thala_stake_token", "thala_unstake_token",
	}, names)

	withResponse, _ := newKit(t, WithResponseTools(), WithName("custom"))
	assert.Equal(t, "custom", withResponse.GetToolkitName())
	_, ok := withResponse.Lookup("model_response")
	assert.True(t, ok)
}

func TestBalanceAndTransfer(t *testing.T) {
	tk, rt := newKit(t)

	out := call(t, tk, "aptos_balance", `{}`)
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, "5.00000000", out["balance"])

	out = call(t, tk, "aptos_transfer_token", `{"to":"0x123","amount":"1.5","mint":"0x1::aptos_coin::AptosCoin"}`)
	require.Equal(t, "success", out["status"], out)
	assert.NotEmpty(t, out["transferTokenTransactionHash"])

	out = call(t, tk, "aptos_balance", `{"mint":"0x1::aptos_coin::AptosCoin"}`)
	assert.Equal(t, "3.50000000", out["balance"])
	assert.Len(t, rt.Transactions(), 1)
}

func TestTransfer_Errors(t *testing.T) {
	tk, rt := newKit(t)

	out := call(t, tk, "aptos_transfer_token", `{"to":"0x123","amount":100,"mint":"0x1::aptos_coin::AptosCoin"}`)
	assert.Equal(t, "error", out["status"])
	assert.Equal(t, "INSUFFICIENT_BALANCE", out["code"])

	out = call(t, tk, "aptos_transfer_token", `{"to":"0x123","amount":"lots","mint":"0x1::aptos_coin::AptosCoin"}`)
	assert.Equal(t, "error", out["status"])

	out = call(t, tk, "aptos_transfer_token", `{"to":"0x123","amount":"1","mint":"0xdead::x::Y"}`)
	assert.Equal(t, "UNKNOWN_TOKEN", out["code"])

	assert.Empty(t, rt.Transactions())
}

func TestJouleAndEcho(t *testing.T) {
	tk, rt := newKit(t)

	out := call(t, tk, "joule_lend_token", `{"amount":1,"mint":"0x1::aptos_coin::AptosCoin"}`)
	require.Equal(t, "success", out["status"], out)
	assert.Equal(t, "1234", out["positionId"])
	assert.NotEmpty(t, out["lendTokenTransactionHash"])

	out = call(t, tk, "joule_borrow_token", `{"amount":0.5,"mint":"0x1::aptos_coin::AptosCoin","positionId":"1234"}`)
	require.Equal(t, "success", out["status"], out)
	assert.NotEmpty(t, out["borrowTokenTransactionHash"])

	out = call(t, tk, "echo_stake_token", `{"amount":"2"}`)
	require.Equal(t, "success", out["status"], out)
	assert.Equal(t, "200000000", out["amount"])
	assert.NotEmpty(t, out["stakeTransactionHash"])

	out = call(t, tk, "echo_unstake_token", `{"amount":"1"}`)
	require.Equal(t, "success", out["status"], out)

	bal, err := rt.GetBalance(context.Background(), runtime.EchoAPT)
	require.NoError(t, err)
	assert.Equal(t, int64(100_000_000), bal.Int64())
	assert.Len(t, rt.Transactions(), 4)
}

func TestTokenDetailsAndBurn(t *testing.T) {
	tk, rt := newKit(t)
	const fa = "0x357b0b74bc833e95a115ad22604854d6b0fca151cecd94111770e5d6ffc9dc2b"
	rt.AddToken(fa, runtime.TokenDetails{Name: "Tether USD", Symbol: "USDt", Decimals: 6, FAAddress: fa}, big.NewInt(5_000_000))

	out := call(t, tk, "aptos_get_token_details", `{"tokenAddress":"`+fa+`"}`)
	require.Equal(t, "success", out["status"], out)
	data, ok := out["tokenData"].(map[string]any)
	require.True(t, ok, out)
	assert.Equal(t, "USDt", data["symbol"])
	assert.Equal(t, float64(6), data["decimals"])

	out = call(t, tk, "aptos_get_token_details", `{}`)
	assert.Equal(t, "missing_required_fields", out["code"])

	out = call(t, tk, "aptos_burn_token", `{"amount":"1.5","mint":"`+fa+`"}`)
	require.Equal(t, "success", out["status"], out)
	assert.NotEmpty(t, out["burnTransactionHash"])

	bal, err := rt.GetBalance(context.Background(), fa)
	require.NoError(t, err)
	assert.Equal(t, int64(3_500_000), bal.Int64())
}

// A burn without a mint must fail instead of burning APT.
func TestBurn_RequiresMint(t *testing.T) {
	tk, rt := newKit(t)

	tests := []struct {
		name  string
		input string
		code  string
	}{
		{name: "mint omitted", input: `{"amount":"2"}`, code: "missing_required_fields"},
		{name: "mint null", input: `{"amount":"2","mint":null}`, code: "missing_required_fields"},
		{name: "mint empty", input: `{"amount":"2","mint":""}`, code: "mint_required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := call(t, tk, "aptos_burn_token", tc.input)
			assert.Equal(t, "error", out["status"])
			assert.Equal(t, tc.code, out["code"])
		})
	}

	out := call(t, tk, "aptos_balance", `{}`)
	assert.Equal(t, "5.00000000", out["balance"])
	assert.Empty(t, rt.Transactions())
}

func TestCreateTokenAndNFTs(t *testing.T) {
	tk, rt := newKit(t)
	rt.AddNFT("0xa1")

	out := call(t, tk, "aptos_create_token", `{"name":"My Token","symbol":"MTK"}`)
	require.Equal(t, "success", out["status"], out)
	addr, _ := out["tokenAddress"].(string)
	require.NotEmpty(t, addr)

	out = call(t, tk, "aptos_balance", `{"mint":"`+addr+`"}`)
	assert.Equal(t, "0.00000000", out["balance"])

	out = call(t, tk, "aptos_transfer_nft", `{"to":"0x456","mint":"0xa1"}`)
	require.Equal(t, "success", out["status"], out)
	assert.Equal(t, "0xa1", out["nft"])

	out = call(t, tk, "aptos_burn_nft", `{"mint":"0xa1"}`)
	assert.Equal(t, "NFT_NOT_OWNED", out["code"])
	assert.Len(t, rt.Transactions(), 2)
}

func TestJouleRepayAndWithdraw(t *testing.T) {
	tk, rt := newKit(t)

	for _, step := range []struct{ tool, input, key string }{
		{"joule_lend_token", `{"amount":2,"mint":"0x1::aptos_coin::AptosCoin"}`, "lendTokenTransactionHash"},
		{"joule_borrow_token", `{"amount":1,"mint":"0x1::aptos_coin::AptosCoin","positionId":"1234"}`, "borrowTokenTransactionHash"},
		{"joule_repay_token", `{"amount":1,"mint":"0x1::aptos_coin::AptosCoin","positionId":"1234"}`, "repayTokenTransactionHash"},
		{"joule_withdraw_token", `{"amount":2,"mint":"0x1::aptos_coin::AptosCoin","positionId":"1234"}`, "withdrawTokenTransactionHash"},
	} {
		out := call(t, tk, step.tool, step.input)
		require.Equal(t, "success", out["status"], "%s: %v", step.tool, out)
		assert.NotEmpty(t, out[step.key], step.tool)
	}

	out := call(t, tk, "joule_repay_token", `{"amount":1,"mint":"0x1::aptos_coin::AptosCoin"}`)
	assert.Equal(t, "missing_required_fields", out["code"])

	out = call(t, tk, "joule_withdraw_token", `{"amount":1,"mint":"0x1::aptos_coin::AptosCoin","positionId":"1234"}`)
	assert.Equal(t, "EXCEEDS_POSITION", out["code"])

	out = call(t, tk, "aptos_balance", `{}`)
	assert.Equal(t, "5.00000000", out["balance"])
	assert.Len(t, rt.Transactions(), 4)
}

func TestSwapsAndStaking(t *testing.T) {
	tk, rt := newKit(t)
	const usdc = "0x2::usdc::USDC"
	rt.AddToken(usdc, runtime.TokenDetails{Name: "USD Coin", Symbol: "USDC", Decimals: 6, CoinType: usdc}, nil)
	_, err := rt.AddPool(runtime.AptosCoin, usdc, big.NewInt(100_000_000_000), big.NewInt(100_000_000), big.NewInt(1_000_000))
	require.NoError(t, err)

	out := call(t, tk, "liquidswap_swap", `{"mintX":"0x1::aptos_coin::AptosCoin","mintY":"`+usdc+`","swapAmount":1}`)
	require.Equal(t, "success", out["status"], out)
	assert.NotEmpty(t, out["swapTransactionHash"])

	out = call(t, tk, "liquidswap_swap", `{"mintX":"0x1::aptos_coin::AptosCoin","mintY":"0x357b","swapAmount":1}`)
	assert.Equal(t, "coin_required", out["code"])

	out = call(t, tk, "panora_aggregator_swap", `{"fromToken":"`+usdc+`","toToken":"0x1::aptos_coin::AptosCoin","swapAmount":0.05}`)
	require.Equal(t, "success", out["status"], out)

	out = call(t, tk, "aries_borrow", `{"amount":1,"mint":"0x1::aptos_coin::AptosCoin"}`)
	assert.Equal(t, "PROFILE_REQUIRED", out["code"])

	out = call(t, tk, "aries_create_profile", `{}`)
	require.Equal(t, "success", out["status"], out)
	assert.NotEmpty(t, out["createProfileTransactionHash"])

	out = call(t, tk, "thala_stake_token", `{"amount":1}`)
	require.Equal(t, "success", out["status"], out)
	out = call(t, tk, "amnis_stake_token", `{"amount":1}`)
	require.Equal(t, "success", out["status"], out)
	assert.Equal(t, "0xabc", out["to"])

	for mint, want := range map[string]int64{
		runtime.StakedThalaAPT: 100_000_000,
		runtime.AmnisStakedAPT: 100_000_000,
		usdc:                   49_600,
	} {
		bal, err := rt.GetBalance(context.Background(), mint)
		require.NoError(t, err)
		assert.Equal(t, want, bal.Int64(), mint)
	}
	assert.Len(t, rt.Transactions(), 5)
}

func TestResponseTools(t *testing.T) {
	tk, _ := newKit(t, WithResponseTools())

	out := call(t, tk, "model_thinking", `{"thinking":"check balance first"}`)
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, true, out["recorded"])

	out = call(t, tk, "model_response", `{"response":""}`)
	assert.Equal(t, false, out["recorded"])
}
