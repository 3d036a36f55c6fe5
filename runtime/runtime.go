// Package runtime defines the boundary between agent tools and the Aptos
// SDK that signs, submits and awaits transactions.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// AptosCoin is the coin type of native APT.
const AptosCoin = "0x1::aptos_coin::AptosCoin"

// TokenDetails describes a coin or fungible asset.
type TokenDetails struct {
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Decimals  int    `json:"decimals"`
	CoinType  string `json:"coinType,omitempty"`
	FAAddress string `json:"faAddress,omitempty"`
}

// LendRequest is a Joule lending, borrowing, repaying or withdrawing
// operation.
type LendRequest struct {
	Amount        *big.Int
	Mint          string
	PositionID    string
	NewPosition   bool
	FungibleAsset bool
}

// SwapRequest swaps AmountIn of MintX for at least MinAmountOut of MintY.
// ToWallet, when set, receives the output instead of the agent's account.
type SwapRequest struct {
	MintX        string
	MintY        string
	AmountIn     *big.Int
	MinAmountOut *big.Int
	ToWallet     string
}

// RemoveLiquidityRequest burns LPAmount of the X/Y pool's LP token.
type RemoveLiquidityRequest struct {
	MintX    string
	MintY    string
	LPAmount *big.Int
	MinX     *big.Int
	MinY     *big.Int
}

// CreateTokenRequest describes a new fungible asset.
type CreateTokenRequest struct {
	Name       string
	Symbol     string
	IconURI    string
	ProjectURI string
}

// CreatedToken is the result of CreateToken.
type CreatedToken struct {
	Hash    string `json:"hash"`
	Address string `json:"address"`
}

// Agent is the account-bound client tools run against. Every write
// operation submits a single transaction, waits for it to be committed and
// returns its hash. Amounts are on-chain integers.
type Agent interface {
	Address() string
	GetBalance(ctx context.Context, mint string) (*big.Int, error)
	GetTokenDetails(ctx context.Context, mint string) (TokenDetails, error)

	TransferTokens(ctx context.Context, to string, amount *big.Int, mint string) (string, error)
	BurnToken(ctx context.Context, amount *big.Int, mint string) (string, error)
	CreateToken(ctx context.Context, req CreateTokenRequest) (CreatedToken, error)
	TransferNFT(ctx context.Context, to, nft string) (string, error)
	BurnNFT(ctx context.Context, nft string) (string, error)

	// Joule
	LendToken(ctx context.Context, req LendRequest) (string, error)
	BorrowToken(ctx context.Context, req LendRequest) (string, error)
	RepayToken(ctx context.Context, req LendRequest) (string, error)
	WithdrawToken(ctx context.Context, req LendRequest) (string, error)

	// Aries
	CreateAriesProfile(ctx context.Context) (string, error)
	BorrowAriesToken(ctx context.Context, mint string, amount *big.Int) (string, error)
	RepayAriesToken(ctx context.Context, mint string, amount *big.Int) (string, error)

	// Liquidswap and the Panora aggregator
	Swap(ctx context.Context, req SwapRequest) (string, error)
	SwapWithPanora(ctx context.Context, req SwapRequest) (string, error)
	RemoveLiquidity(ctx context.Context, req RemoveLiquidityRequest) (string, error)

	// Liquid staking
	StakeEcho(ctx context.Context, amount *big.Int) (string, error)
	UnstakeEcho(ctx context.Context, amount *big.Int) (string, error)
	StakeThala(ctx context.Context, amount *big.Int) (string, error)
	UnstakeThala(ctx context.Context, amount *big.Int) (string, error)
	StakeAmnis(ctx context.Context, to string, amount *big.Int) (string, error)
}

// Error is a failure reported by the chain or the runtime, tagged with a
// machine-readable code.
type Error struct {
	Code string
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error     { return e.Err }
func (e *Error) ErrorCode() string { return e.Code }

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidAddress     = errors.New("invalid account address")
	ErrUnknownToken       = errors.New("unknown token")
	ErrInsufficientFunds  = errors.New("insufficient balance")
	ErrTransactionAborted = errors.New("transaction was not successful")
	ErrNFTNotOwned        = errors.New("nft not owned by account")
	ErrPositionNotFound   = errors.New("position not found")
	ErrExceedsPosition    = errors.New("amount exceeds position")
	ErrProfileRequired    = errors.New("aries profile required")
	ErrProfileExists      = errors.New("aries profile already exists")
	ErrNoPool             = errors.New("no pool for pair")
	ErrSlippage           = errors.New("output below minimum")
)

// ToOnChain converts a human-readable amount such as "1.5" to on-chain
// units for a token with the given decimals. Precision beyond decimals is
// truncated.
func ToOnChain(amount string, decimals int) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" || decimals < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	r, ok := new(big.Rat).SetString(amount)
	if !ok || r.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))
	return new(big.Int).Quo(r.Num(), r.Denom()), nil
}

// FromOnChain renders an on-chain amount as a decimal string.
func FromOnChain(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0"
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return new(big.Rat).SetFrac(amount, scale).FloatString(decimals)
}

// ValidAddress reports whether s looks like an account address: 0x
// followed by 1 to 64 hex digits.
func ValidAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") || len(s) < 3 || len(s) > 66 {
		return false
	}
	for _, c := range s[2:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
