package runtime

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Liquid staking tokens known to every DryRun.
const (
	EchoAPT        = "0xe3be68ed6c78b47be73c9c7f84d6f3a2fd8a568a2860b304446b0de36991956::coin::EchoCoinAPT"
	StakedThalaAPT = "0xfaf4e633ae9eb31366c9ca24214231760926576c7b625313b3688b5e900731f6::staking::StakedThalaAPT"
	AmnisStakedAPT = "0x111ae3e5bc816a5e63c2da97d0aa3886519e0cd5e4b046659fa35796bd11542a::stapt_token::StakedApt"
)

// Tx is a transaction recorded by DryRun.
type Tx struct {
	Hash     string   `json:"hash"`
	Function string   `json:"function"`
	Args     []string `json:"args"`
}

// DryRun is an in-memory Agent that never touches the network. It keeps
// balances per token along with NFTs, Joule positions, the Aries profile
// and liquidity pools, applies every operation to them and returns
// deterministic transaction hashes. It is safe for concurrent use.
type DryRun struct {
	mu       sync.Mutex
	address  string
	tokens   map[string]TokenDetails
	balances map[string]*big.Int
	// alias maps a fungible asset address to the key of its coin.
	alias map[string]string
	nfts  map[string]bool

	positions    map[string]*position
	ariesProfile bool
	ariesDebt    map[string]*big.Int
	pools        map[string]*pool

	txs    []Tx
	logger *log.Logger
}

// NewDryRun returns a DryRun for address that knows APT and the liquid
// staking tokens of Echo, Thala and Amnis.
func NewDryRun(address string, logger *log.Logger) *DryRun {
	if logger == nil {
		logger = log.Default()
	}
	d := &DryRun{
		address:   address,
		tokens:    make(map[string]TokenDetails),
		balances:  make(map[string]*big.Int),
		alias:     make(map[string]string),
		nfts:      make(map[string]bool),
		positions: make(map[string]*position),
		ariesDebt: make(map[string]*big.Int),
		pools:     make(map[string]*pool),
		logger:    logger.WithPrefix("dryrun"),
	}
	d.AddToken(AptosCoin, TokenDetails{Name: "Aptos Coin", Symbol: "APT", Decimals: 8, CoinType: AptosCoin}, nil)
	d.AddToken(EchoAPT, TokenDetails{Name: "Echo APT", Symbol: "eAPT", Decimals: 8, CoinType: EchoAPT}, nil)
	d.AddToken(StakedThalaAPT, TokenDetails{Name: "Staked Thala APT", Symbol: "sthAPT", Decimals: 8, CoinType: StakedThalaAPT}, nil)
	d.AddToken(AmnisStakedAPT, TokenDetails{Name: "Staked Aptos Coin", Symbol: "stAPT", Decimals: 8, CoinType: AmnisStakedAPT}, nil)
	return d
}

// AddToken registers a token with a starting balance. The token can later be
// addressed by its coin type or its fungible asset address.
func (d *DryRun) AddToken(mint string, details TokenDetails, balance *big.Int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.addToken(mint, details, balance)
}

func (d *DryRun) addToken(mint string, details TokenDetails, balance *big.Int) {
	if balance == nil {
		balance = new(big.Int)
	}
	key := normalize(mint)
	d.tokens[key] = details
	d.balances[key] = new(big.Int).Set(balance)
	if fa := normalize(details.FAAddress); fa != "" && fa != key {
		d.alias[fa] = key
	}
}

// Fund credits the account with amount of an already registered token.
func (d *DryRun) Fund(mint string, amount *big.Int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.credit(mint, amount); err != nil {
		err.(*Error).Op = "fund"
		return err
	}
	return nil
}

// AddNFT gives the account the NFT with the given token address.
func (d *DryRun) AddNFT(nft string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nfts[normalize(nft)] = true
}

// OwnsNFT reports whether the account holds nft.
func (d *DryRun) OwnsNFT(nft string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nfts[normalize(nft)]
}

// Transactions returns the transactions submitted so far.
func (d *DryRun) Transactions() []Tx {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Tx(nil), d.txs...)
}

func (d *DryRun) Address() string { return d.address }

func (d *DryRun) GetBalance(ctx context.Context, mint string) (*big.Int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	bal, ok := d.balances[d.key(mint)]
	if !ok {
		return nil, &Error{Code: "UNKNOWN_TOKEN", Op: "get balance", Err: fmt.Errorf("%w: %s", ErrUnknownToken, mint)}
	}
	return new(big.Int).Set(bal), nil
}

func (d *DryRun) GetTokenDetails(ctx context.Context, mint string) (TokenDetails, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	details, ok := d.tokens[d.key(mint)]
	if !ok {
		return TokenDetails{}, &Error{Code: "UNKNOWN_TOKEN", Op: "get token details", Err: fmt.Errorf("%w: %s", ErrUnknownToken, mint)}
	}
	return details, nil
}

func (d *DryRun) TransferTokens(ctx context.Context, to string, amount *big.Int, mint string) (string, error) {
	if !ValidAddress(to) {
		return "", invalidAddress("transfer", to)
	}
	return d.submit(ctx, "transfer", "0x1::primary_fungible_store::transfer", func() error {
		return d.debit(mint, amount)
	}, mint, to, amountString(amount))
}

func (d *DryRun) BurnToken(ctx context.Context, amount *big.Int, mint string) (string, error) {
	return d.submit(ctx, "token burn", "launchpad::burn_fa", func() error {
		return d.debit(mint, amount)
	}, mint, amountString(amount))
}

// CreateToken registers a fungible asset with 8 decimals and a zero balance
// at an address derived from the account and the token's name and symbol.
func (d *DryRun) CreateToken(ctx context.Context, req CreateTokenRequest) (CreatedToken, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Symbol) == "" {
		return CreatedToken{}, &Error{Code: "INVALID_TOKEN", Op: "create token", Err: fmt.Errorf("token name and symbol are required")}
	}
	var address string
	hash, err := d.submit(ctx, "create token", "launchpad::create_fa_simple", func() error {
		sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%d", d.address, req.Name, req.Symbol, len(d.tokens))))
		address = "0x" + hex.EncodeToString(sum[:])
		d.addToken(address, TokenDetails{Name: req.Name, Symbol: req.Symbol, Decimals: 8, FAAddress: address}, nil)
		return nil
	}, req.Name, req.Symbol, req.IconURI, req.ProjectURI)
	if err != nil {
		return CreatedToken{}, err
	}
	return CreatedToken{Hash: hash, Address: address}, nil
}

func (d *DryRun) TransferNFT(ctx context.Context, to, nft string) (string, error) {
	if !ValidAddress(to) {
		return "", invalidAddress("transfer nft", to)
	}
	return d.submit(ctx, "transfer nft", "0x1::object::transfer", func() error {
		return d.takeNFT(nft)
	}, nft, to)
}

func (d *DryRun) BurnNFT(ctx context.Context, nft string) (string, error) {
	return d.submit(ctx, "burn nft", "0x4::aptos_token::burn", func() error {
		return d.takeNFT(nft)
	}, nft)
}

// submit applies a state change under the lock and records the transaction.
// A failed apply must leave the state untouched.
func (d *DryRun) submit(ctx context.Context, op, function string, apply func() error, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &Error{Code: "CANCELLED", Op: op, Err: err}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := apply(); err != nil {
		d.logger.Warn("transaction aborted", "op", op, "err", err)
		if rtErr, ok := err.(*Error); ok {
			rtErr.Op = op
			return "", rtErr
		}
		return "", &Error{Code: "TRANSACTION_FAILED", Op: op, Err: err}
	}

	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s|%s", d.address, len(d.txs), function, strings.Join(args, ","))))
	tx := Tx{Hash: "0x" + hex.EncodeToString(sum[:]), Function: function, Args: args}
	d.txs = append(d.txs, tx)
	d.logger.Debug("transaction committed", "op", op, "hash", tx.Hash)
	return tx.Hash, nil
}

// The helpers below must be called with d.mu held.

// key resolves mint to the key its balance is stored under.
func (d *DryRun) key(mint string) string {
	k := normalize(mint)
	if coin, ok := d.alias[k]; ok {
		return coin
	}
	return k
}

func (d *DryRun) balance(mint string) (*big.Int, error) {
	bal, ok := d.balances[d.key(mint)]
	if !ok {
		return nil, &Error{Code: "UNKNOWN_TOKEN", Err: fmt.Errorf("%w: %q", ErrUnknownToken, mint)}
	}
	return bal, nil
}

func (d *DryRun) debit(mint string, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	bal, err := d.balance(mint)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return &Error{Code: "INSUFFICIENT_BALANCE", Err: fmt.Errorf("%w: have %s, need %s", ErrInsufficientFunds, bal, amount)}
	}
	bal.Sub(bal, amount)
	return nil
}

func (d *DryRun) credit(mint string, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	bal, err := d.balance(mint)
	if err != nil {
		return err
	}
	bal.Add(bal, amount)
	return nil
}

func (d *DryRun) takeNFT(nft string) error {
	k := normalize(nft)
	if !d.nfts[k] {
		return &Error{Code: "NFT_NOT_OWNED", Err: fmt.Errorf("%w: %q", ErrNFTNotOwned, nft)}
	}
	delete(d.nfts, k)
	return nil
}

func checkAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return &Error{Code: "INVALID_AMOUNT", Err: ErrInvalidAmount}
	}
	return nil
}

func invalidAddress(op, address string) error {
	return &Error{Code: "INVALID_ADDRESS", Op: op, Err: fmt.Errorf("%w: %q", ErrInvalidAddress, address)}
}

func normalize(mint string) string {
	return strings.ToLower(strings.TrimSpace(mint))
}

func amountString(a *big.Int) string {
	if a == nil {
		return "0"
	}
	return a.String()
}
