// Package agentkit assembles the Aptos tools into a toolkit.
package agentkit

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/amnis"
	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/aptos"
	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/aries"
	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/echo"
	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/joule"
	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/liquidswap"
	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/panora"
	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/response"
	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/thala"
	"github.com/hamzaessahbaoui/aptos-agent-kit/runtime"
	"github.com/hamzaessahbaoui/aptos-agent-kit/toolkit"
)

// Name is the toolkit name used when none is configured.
const Name = "aptos_agent"

// Option configures New.
type Option func(*options)

type options struct {
	name          string
	responseTools bool
}

// WithName overrides the toolkit name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithResponseTools adds the "response" parent with the model_thinking and
// model_response tools, for conversation loops that require the model to
// answer through tools.
func WithResponseTools() Option {
	return func(o *options) { o.responseTools = true }
}

// New builds the toolkit with one parent per protocol, every tool bound to
// agent and logging through logger.
func New(agent runtime.Agent, logger *log.Logger, opts ...Option) *toolkit.Toolkit {
	o := options{name: Name}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = log.Default()
	}
	tools := logger.WithPrefix("tools")

	parents := []toolkit.Parent{
		aptosParent(agent, tools),
		jouleParent(agent, tools),
		ariesParent(agent, tools),
		liquidswapParent(agent, tools),
		panoraParent(agent, tools),
		stakingParent(agent, tools),
	}
	if o.responseTools {
		parents = append(parents, responseParent(logger))
	}
	return toolkit.New(o.name, parents...)
}

func aptosParent(agent runtime.Agent, logger *log.Logger) toolkit.Parent {
	return toolkit.NewParent(
		"aptos",
		"Core Aptos account operations: balances, token details, transfers, burns, token creation and NFTs.",
		toolkit.NewChild("aptos_balance",
			"Get the balance of the agent's account. Without a mint the balance is in APT; for any other token pass its coin type or fungible asset address as mint.",
			func(ctx context.Context, args aptos.BalanceArgs) (interface{}, error) {
				return aptos.Balance(ctx, agent, logger, args)
			},
			toolkit.WithExamples(
				toolkit.Example{
					Input:       map[string]any{},
					Output:      map[string]any{"status": "success", "balance": "1.50000000"},
					Explanation: "What is my APT balance?",
				},
			),
		),
		toolkit.NewChild("aptos_get_token_details",
			"Get the name, symbol and decimals of a token by coin type or fungible asset address.",
			func(ctx context.Context, args aptos.TokenDetailsArgs) (interface{}, error) {
				return aptos.TokenDetails(ctx, agent, logger, args)
			},
		),
		toolkit.NewChild("aptos_transfer_token",
			"Transfer tokens from the agent's account to another address. When a token has native and bridged versions (USDC, USDT) ask the user which one they mean before transferring.",
			func(ctx context.Context, args aptos.TransferTokenArgs) (interface{}, error) {
				return aptos.TransferToken(ctx, agent, logger, args)
			},
			toolkit.WithExamples(
				toolkit.Example{
					Input:       map[string]any{"to": "0x123", "amount": "1", "mint": runtime.AptosCoin},
					Output:      map[string]any{"status": "success", "transferTokenTransactionHash": "0x..."},
					Explanation: "Transfer 1 APT to 0x123",
				},
			),
		),
		toolkit.NewChild("aptos_burn_token",
			"Burn an amount of a fungible asset held by the agent's account. The mint is required; nothing is burned by default.",
			func(ctx context.Context, args aptos.BurnTokenArgs) (interface{}, error) {
				return aptos.BurnToken(ctx, agent, logger, args)
			},
		),
		toolkit.NewChild("aptos_create_token",
			"Create a new fungible asset with 8 decimals owned by the agent's account.",
			func(ctx context.Context, args aptos.CreateTokenArgs) (interface{}, error) {
				return aptos.CreateToken(ctx, agent, logger, args)
			},
			toolkit.WithExamples(
				toolkit.Example{
					Input:       map[string]any{"name": "My Token", "symbol": "MTK"},
					Output:      map[string]any{"status": "success", "createTokenTransactionHash": "0x...", "tokenAddress": "0x..."},
					Explanation: "Create a new token called My Token with symbol MTK",
				},
			),
		),
		toolkit.NewChild("aptos_transfer_nft",
			"Transfer an NFT held by the agent's account to another address.",
			func(ctx context.Context, args aptos.TransferNFTArgs) (interface{}, error) {
				return aptos.TransferNFT(ctx, agent, logger, args)
			},
		),
		toolkit.NewChild("aptos_burn_nft",
			"Burn an NFT held by the agent's account.",
			func(ctx context.Context, args aptos.BurnNFTArgs) (interface{}, error) {
				return aptos.BurnNFT(ctx, agent, logger, args)
			},
		),
	)
}

func jouleParent(agent runtime.Agent, logger *log.Logger) toolkit.Parent {
	return toolkit.NewParent(
		"joule",
		"Lending and borrowing on the Joule protocol.",
		toolkit.NewChild("joule_lend_token",
			"Lend APT, a coin or a fungible asset to a Joule position. Without positionId a new position is opened.",
			func(ctx context.Context, args joule.LendTokenArgs) (interface{}, error) {
				return joule.LendToken(ctx, agent, logger, args)
			},
			toolkit.WithExamples(
				toolkit.Example{
					Input:       map[string]any{"amount": 1, "mint": runtime.AptosCoin},
					Output:      map[string]any{"status": "success", "positionId": joule.DefaultPositionID},
					Explanation: "I want to lend 1 native APT to Joule",
				},
			),
		),
		toolkit.NewChild("joule_borrow_token",
			"Borrow a token against an existing Joule position.",
			func(ctx context.Context, args joule.PositionArgs) (interface{}, error) {
				return joule.BorrowToken(ctx, agent, logger, args)
			},
		),
		toolkit.NewChild("joule_repay_token",
			"Repay debt of an existing Joule position. The amount cannot exceed what the position owes.",
			func(ctx context.Context, args joule.PositionArgs) (interface{}, error) {
				return joule.RepayToken(ctx, agent, logger, args)
			},
		),
		toolkit.NewChild("joule_withdraw_token",
			"Withdraw lent tokens from an existing Joule position. The amount cannot exceed what the position holds.",
			func(ctx context.Context, args joule.PositionArgs) (interface{}, error) {
				return joule.WithdrawToken(ctx, agent, logger, args)
			},
		),
	)
}

func ariesParent(agent runtime.Agent, logger *log.Logger) toolkit.Parent {
	return toolkit.NewParent(
		"aries",
		"Borrowing and repaying on Aries Markets. Create the Aries profile once before borrowing.",
		toolkit.NewChild("aries_create_profile",
			"Create the agent's Aries profile.",
			func(ctx context.Context, args aries.CreateProfileArgs) (interface{}, error) {
				return aries.CreateProfile(ctx, agent, logger, args)
			},
		),
		toolkit.NewChild("aries_borrow",
			"Borrow a token from Aries.",
			func(ctx context.Context, args aries.TokenArgs) (interface{}, error) {
				return aries.Borrow(ctx, agent, logger, args)
			},
		),
		toolkit.NewChild("aries_repay",
			"Repay a token borrowed from Aries.",
			func(ctx context.Context, args aries.TokenArgs) (interface{}, error) {
				return aries.Repay(ctx, agent, logger, args)
			},
		),
	)
}

func liquidswapParent(agent runtime.Agent, logger *log.Logger) toolkit.Parent {
	return toolkit.NewParent(
		"liquidswap",
		"Coin swaps and liquidity removal on Liquidswap. Fungible assets must be swapped with Panora.",
		toolkit.NewChild("liquidswap_swap",
			"Swap one coin for another on Liquidswap.",
			func(ctx context.Context, args liquidswap.SwapArgs) (interface{}, error) {
				return liquidswap.Swap(ctx, agent, logger, args)
			},
			toolkit.WithExamples(
				toolkit.Example{
					Input:       map[string]any{"mintX": runtime.AptosCoin, "mintY": "0x5e156f1207d0ebfa19a9eeff00d62a282278fb8719f4fab3a586a0a2c0fffbea::coin::T", "swapAmount": 0.1},
					Output:      map[string]any{"status": "success", "swapTransactionHash": "0x..."},
					Explanation: "Swap 0.1 APT for whUSDC",
				},
			),
		),
		toolkit.NewChild("liquidswap_remove_liquidity",
			"Burn Liquidswap LP tokens and receive both tokens of the pool.",
			func(ctx context.Context, args liquidswap.RemoveLiquidityArgs) (interface{}, error) {
				return liquidswap.RemoveLiquidity(ctx, agent, logger, args)
			},
		),
	)
}

func panoraParent(agent runtime.Agent, logger *log.Logger) toolkit.Parent {
	return toolkit.NewParent(
		"panora",
		"Swaps routed by the Panora aggregator, for coins and fungible assets.",
		toolkit.NewChild("panora_aggregator_swap",
			"Swap tokens through Panora, optionally sending the output to another wallet.",
			func(ctx context.Context, args panora.SwapArgs) (interface{}, error) {
				return panora.Swap(ctx, agent, logger, args)
			},
		),
	)
}

func stakingParent(agent runtime.Agent, logger *log.Logger) toolkit.Parent {
	return toolkit.NewParent(
		"staking",
		"Liquid staking of APT with Echo, Thala and Amnis.",
		toolkit.NewChild("echo_stake_token",
			"Stake APT with Echo and receive eAPT.",
			func(ctx context.Context, args echo.StakeArgs) (interface{}, error) {
				return echo.Stake(ctx, agent, logger, args)
			},
		),
		toolkit.NewChild("echo_unstake_token",
			"Redeem eAPT staked with Echo for APT.",
			func(ctx context.Context, args echo.StakeArgs) (interface{}, error) {
				return echo.Unstake(ctx, agent, logger, args)
			},
		),
		toolkit.NewChild("thala_stake_token",
			"Stake APT with Thala and receive sthAPT.",
			func(ctx context.Context, args thala.StakeArgs) (interface{}, error) {
				return thala.Stake(ctx, agent, logger, args)
			},
		),
		toolkit.NewChild("thala_unstake_token",
			"Redeem sthAPT staked with Thala for APT.",
			func(ctx context.Context, args thala.StakeArgs) (interface{}, error) {
				return thala.Unstake(ctx, agent, logger, args)
			},
		),
		toolkit.NewChild("amnis_stake_token",
			"Stake APT with Amnis. The stAPT goes to the agent's account unless another recipient is given.",
			func(ctx context.Context, args amnis.StakeArgs) (interface{}, error) {
				return amnis.Stake(ctx, agent, logger, args)
			},
		),
	)
}

func responseParent(logger *log.Logger) toolkit.Parent {
	return toolkit.NewParent(
		"response",
		"Shows the model's thinking and its final response to the user.",
		toolkit.NewChild("model_thinking", "Record the model's thinking before acting.",
			func(ctx context.Context, args response.ThinkingArgs) (interface{}, error) {
				return response.LogThinking(ctx, logger, args)
			},
		),
		toolkit.NewChild("model_response", "Give the final response to the user.",
			func(ctx context.Context, args response.AnswerArgs) (interface{}, error) {
				return response.LogResponse(ctx, logger, args)
			},
		),
	)
}
