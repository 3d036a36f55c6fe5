package aptos

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/hamzaessahbaoui/aptos-agent-kit/pkg/tools/internal/toolargs"
	"github.com/hamzaessahbaoui/aptos-agent-kit/runtime"
)

// TransferNFT sends an NFT held by the agent's account to another account.
func TransferNFT(ctx context.Context, agent runtime.Agent, logger *log.Logger, args TransferNFTArgs) (NFTResponse, error) {
	logger.Debug("executing aptos transfer nft", "to", args.To, "nft", args.Mint)
	if err := toolargs.Require("recipient_required", "to", args.To); err != nil {
		return NFTResponse{}, err
	}
	if err := toolargs.Require("nft_required", "mint", args.Mint); err != nil {
		return NFTResponse{}, err
	}

	hash, err := agent.TransferNFT(ctx, args.To, args.Mint)
	if err != nil {
		return NFTResponse{}, err
	}
	return NFTResponse{TransactionHash: hash, NFT: args.Mint}, nil
}

// BurnNFT burns an NFT held by the agent's account.
func BurnNFT(ctx context.Context, agent runtime.Agent, logger *log.Logger, args BurnNFTArgs) (NFTResponse, error) {
	logger.Debug("executing aptos burn nft", "nft", args.Mint)
	if err := toolargs.Require("nft_required", "mint", args.Mint); err != nil {
		return NFTResponse{}, err
	}

	hash, err := agent.BurnNFT(ctx, args.Mint)
	if err != nil {
		return NFTResponse{}, err
	}
	return NFTResponse{TransactionHash: hash, NFT: args.Mint}, nil
}
