package runtime

import (
	"context"
	"fmt"
	"math/big"
	"strings"
)

// position is a Joule lending position; amounts are keyed by token key.
type position struct {
	lent     map[string]*big.Int
	borrowed map[string]*big.Int
}

// pool is a constant product pool between two coins.
type pool struct {
	x, y     string
	reserveX *big.Int
	reserveY *big.Int
	lp       string
	supply   *big.Int
}

// Swap fee in basis points.
const swapFeeBps = 30

// AddPool opens an X/Y pool with the given reserves and LP supply and
// returns the LP token, which Fund can then credit to the account. Both
// coins must already be registered.
func (d *DryRun) AddPool(mintX, mintY string, reserveX, reserveY, lpSupply *big.Int) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, m := range []string{mintX, mintY} {
		if _, err := d.balance(m); err != nil {
			err.(*Error).Op = "add pool"
			return "", err
		}
	}
	for _, a := range []*big.Int{reserveX, reserveY, lpSupply} {
		if err := checkAmount(a); err != nil {
			err.(*Error).Op = "add pool"
			return "", err
		}
	}

	kx, ky := d.key(mintX), d.key(mintY)
	lp := "liquidswap::lp::" + pairKey(kx, ky)
	d.pools[pairKey(kx, ky)] = &pool{
		x: kx, y: ky,
		reserveX: new(big.Int).Set(reserveX),
		reserveY: new(big.Int).Set(reserveY),
		lp:       lp,
		supply:   new(big.Int).Set(lpSupply),
	}
	sx, sy := d.tokens[kx].Symbol, d.tokens[ky].Symbol
	d.addToken(lp, TokenDetails{Name: fmt.Sprintf("Liquidswap LP %s-%s", sx, sy), Symbol: "LP", Decimals: 6, CoinType: lp}, nil)
	return lp, nil
}

// Joule

func (d *DryRun) LendToken(ctx context.Context, req LendRequest) (string, error) {
	return d.submit(ctx, "lend token", "joule::pool::lend", func() error {
		pos, ok := d.positions[req.PositionID]
		if !ok && !req.NewPosition {
			return positionNotFound(req.PositionID)
		}
		if err := d.debit(req.Mint, req.Amount); err != nil {
			return err
		}
		if !ok {
			pos = &position{lent: map[string]*big.Int{}, borrowed: map[string]*big.Int{}}
			d.positions[req.PositionID] = pos
		}
		add(pos.lent, d.key(req.Mint), req.Amount)
		return nil
	}, req.PositionID, req.Mint, amountString(req.Amount), fmt.Sprint(req.NewPosition), fmt.Sprint(req.FungibleAsset))
}

func (d *DryRun) BorrowToken(ctx context.Context, req LendRequest) (string, error) {
	return d.submit(ctx, "borrow token", "joule::pool::borrow", func() error {
		pos, ok := d.positions[req.PositionID]
		if !ok {
			return positionNotFound(req.PositionID)
		}
		if err := d.credit(req.Mint, req.Amount); err != nil {
			return err
		}
		add(pos.borrowed, d.key(req.Mint), req.Amount)
		return nil
	}, req.PositionID, req.Mint, amountString(req.Amount), fmt.Sprint(req.FungibleAsset))
}

func (d *DryRun) RepayToken(ctx context.Context, req LendRequest) (string, error) {
	return d.submit(ctx, "repay token", "joule::pool::repay", func() error {
		pos, ok := d.positions[req.PositionID]
		if !ok {
			return positionNotFound(req.PositionID)
		}
		if err := checkAmount(req.Amount); err != nil {
			return err
		}
		if err := covers(pos.borrowed, d.key(req.Mint), req.Amount, "debt"); err != nil {
			return err
		}
		if err := d.debit(req.Mint, req.Amount); err != nil {
			return err
		}
		sub(pos.borrowed, d.key(req.Mint), req.Amount)
		return nil
	}, req.PositionID, req.Mint, amountString(req.Amount), fmt.Sprint(req.FungibleAsset))
}

func (d *DryRun) WithdrawToken(ctx context.Context, req LendRequest) (string, error) {
	return d.submit(ctx, "withdraw token", "joule::pool::withdraw", func() error {
		pos, ok := d.positions[req.PositionID]
		if !ok {
			return positionNotFound(req.PositionID)
		}
		if err := checkAmount(req.Amount); err != nil {
			return err
		}
		if err := covers(pos.lent, d.key(req.Mint), req.Amount, "deposit"); err != nil {
			return err
		}
		if err := d.credit(req.Mint, req.Amount); err != nil {
			return err
		}
		sub(pos.lent, d.key(req.Mint), req.Amount)
		return nil
	}, req.PositionID, req.Mint, amountString(req.Amount), fmt.Sprint(req.FungibleAsset))
}

// Aries

func (d *DryRun) CreateAriesProfile(ctx context.Context) (string, error) {
	return d.submit(ctx, "create aries profile", "aries::controller::register_user", func() error {
		if d.ariesProfile {
			return &Error{Code: "PROFILE_EXISTS", Err: ErrProfileExists}
		}
		d.ariesProfile = true
		return nil
	}, "Main account")
}

func (d *DryRun) BorrowAriesToken(ctx context.Context, mint string, amount *big.Int) (string, error) {
	return d.submit(ctx, "borrow aries token", "aries::controller::withdraw", func() error {
		if !d.ariesProfile {
			return &Error{Code: "PROFILE_REQUIRED", Err: ErrProfileRequired}
		}
		if err := d.credit(mint, amount); err != nil {
			return err
		}
		add(d.ariesDebt, d.key(mint), amount)
		return nil
	}, mint, amountString(amount))
}

func (d *DryRun) RepayAriesToken(ctx context.Context, mint string, amount *big.Int) (string, error) {
	return d.submit(ctx, "repay aries token", "aries::controller::deposit", func() error {
		if !d.ariesProfile {
			return &Error{Code: "PROFILE_REQUIRED", Err: ErrProfileRequired}
		}
		if err := checkAmount(amount); err != nil {
			return err
		}
		if err := covers(d.ariesDebt, d.key(mint), amount, "debt"); err != nil {
			return err
		}
		if err := d.debit(mint, amount); err != nil {
			return err
		}
		sub(d.ariesDebt, d.key(mint), amount)
		return nil
	}, mint, amountString(amount))
}

// Liquidswap and Panora

func (d *DryRun) Swap(ctx context.Context, req SwapRequest) (string, error) {
	return d.swap(ctx, "swap", "liquidswap::scripts::swap", req)
}

// SwapWithPanora routes through the same pools as Swap.
func (d *DryRun) SwapWithPanora(ctx context.Context, req SwapRequest) (string, error) {
	return d.swap(ctx, "panora swap", "panora::router::swap", req)
}

func (d *DryRun) swap(ctx context.Context, op, function string, req SwapRequest) (string, error) {
	if req.ToWallet != "" && !ValidAddress(req.ToWallet) {
		return "", invalidAddress(op, req.ToWallet)
	}
	return d.submit(ctx, op, function, func() error {
		if err := checkAmount(req.AmountIn); err != nil {
			return err
		}
		kx, ky := d.key(req.MintX), d.key(req.MintY)
		p, ok := d.pools[pairKey(kx, ky)]
		if !ok {
			return &Error{Code: "NO_POOL", Err: fmt.Errorf("%w: %s/%s", ErrNoPool, req.MintX, req.MintY)}
		}
		reserveIn, reserveOut := p.reserveX, p.reserveY
		if kx != p.x {
			reserveIn, reserveOut = p.reserveY, p.reserveX
		}

		inAfterFee := new(big.Int).Mul(req.AmountIn, big.NewInt(10_000-swapFeeBps))
		out := new(big.Int).Mul(reserveOut, inAfterFee)
		out.Quo(out, new(big.Int).Add(new(big.Int).Mul(reserveIn, big.NewInt(10_000)), inAfterFee))
		if out.Sign() == 0 || (req.MinAmountOut != nil && out.Cmp(req.MinAmountOut) < 0) {
			return &Error{Code: "SLIPPAGE", Err: fmt.Errorf("%w: got %s, want %s", ErrSlippage, out, amountString(req.MinAmountOut))}
		}

		if err := d.debit(req.MintX, req.AmountIn); err != nil {
			return err
		}
		reserveIn.Add(reserveIn, req.AmountIn)
		reserveOut.Sub(reserveOut, out)
		if req.ToWallet == "" || strings.EqualFold(req.ToWallet, d.address) {
			return d.credit(req.MintY, out)
		}
		return nil
	}, req.MintX, req.MintY, amountString(req.AmountIn), amountString(req.MinAmountOut), req.ToWallet)
}

func (d *DryRun) RemoveLiquidity(ctx context.Context, req RemoveLiquidityRequest) (string, error) {
	return d.submit(ctx, "remove liquidity", "liquidswap::scripts::remove_liquidity", func() error {
		if err := checkAmount(req.LPAmount); err != nil {
			return err
		}
		kx, ky := d.key(req.MintX), d.key(req.MintY)
		p, ok := d.pools[pairKey(kx, ky)]
		if !ok {
			return &Error{Code: "NO_POOL", Err: fmt.Errorf("%w: %s/%s", ErrNoPool, req.MintX, req.MintY)}
		}
		if req.LPAmount.Cmp(p.supply) > 0 {
			return &Error{Code: "EXCEEDS_POSITION", Err: fmt.Errorf("%w: pool supply is %s", ErrExceedsPosition, p.supply)}
		}

		outX := share(p.reserveX, req.LPAmount, p.supply)
		outY := share(p.reserveY, req.LPAmount, p.supply)
		if kx != p.x {
			outX, outY = outY, outX
		}
		if (req.MinX != nil && outX.Cmp(req.MinX) < 0) || (req.MinY != nil && outY.Cmp(req.MinY) < 0) {
			return &Error{Code: "SLIPPAGE", Err: fmt.Errorf("%w: got %s and %s", ErrSlippage, outX, outY)}
		}
		if err := d.debit(p.lp, req.LPAmount); err != nil {
			return err
		}

		p.supply.Sub(p.supply, req.LPAmount)
		if kx == p.x {
			p.reserveX.Sub(p.reserveX, outX)
			p.reserveY.Sub(p.reserveY, outY)
		} else {
			p.reserveX.Sub(p.reserveX, outY)
			p.reserveY.Sub(p.reserveY, outX)
		}
		for _, c := range []struct {
			mint   string
			amount *big.Int
		}{{req.MintX, outX}, {req.MintY, outY}} {
			if c.amount.Sign() > 0 {
				if err := d.credit(c.mint, c.amount); err != nil {
					return err
				}
			}
		}
		return nil
	}, req.MintX, req.MintY, amountString(req.LPAmount), amountString(req.MinX), amountString(req.MinY))
}

// Liquid staking

func (d *DryRun) StakeEcho(ctx context.Context, amount *big.Int) (string, error) {
	return d.submit(ctx, "stake token in echo", "echo::lsdmanage::stake", func() error {
		return d.exchange(AptosCoin, EchoAPT, amount)
	}, amountString(amount))
}

func (d *DryRun) UnstakeEcho(ctx context.Context, amount *big.Int) (string, error) {
	return d.submit(ctx, "unstake token in echo", "echo::lsdmanage::unstake", func() error {
		return d.exchange(EchoAPT, AptosCoin, amount)
	}, amountString(amount))
}

func (d *DryRun) StakeThala(ctx context.Context, amount *big.Int) (string, error) {
	return d.submit(ctx, "stake token in thala", "thala::scripts::stake_APT_and_thAPT", func() error {
		return d.exchange(AptosCoin, StakedThalaAPT, amount)
	}, amountString(amount))
}

func (d *DryRun) UnstakeThala(ctx context.Context, amount *big.Int) (string, error) {
	return d.submit(ctx, "unstake token in thala", "thala::scripts::unstake_thAPT", func() error {
		return d.exchange(StakedThalaAPT, AptosCoin, amount)
	}, amountString(amount))
}

// StakeAmnis stakes APT and sends the minted stAPT to to, which may be the
// agent's own account.
func (d *DryRun) StakeAmnis(ctx context.Context, to string, amount *big.Int) (string, error) {
	if !ValidAddress(to) {
		return "", invalidAddress("stake token in amnis", to)
	}
	return d.submit(ctx, "stake token in amnis", "amnis::router::deposit_and_stake_entry", func() error {
		if strings.EqualFold(to, d.address) {
			return d.exchange(AptosCoin, AmnisStakedAPT, amount)
		}
		return d.debit(AptosCoin, amount)
	}, amountString(amount), to)
}

// exchange swaps amount of from for the same amount of to.
func (d *DryRun) exchange(from, to string, amount *big.Int) error {
	if err := d.debit(from, amount); err != nil {
		return err
	}
	return d.credit(to, amount)
}

func positionNotFound(id string) error {
	return &Error{Code: "POSITION_NOT_FOUND", Err: fmt.Errorf("%w: %q", ErrPositionNotFound, id)}
}

// covers checks that m holds at least amount under key.
func covers(m map[string]*big.Int, key string, amount *big.Int, what string) error {
	have := m[key]
	if have == nil || have.Cmp(amount) < 0 {
		return &Error{Code: "EXCEEDS_POSITION", Err: fmt.Errorf("%w: %s is %s", ErrExceedsPosition, what, amountString(have))}
	}
	return nil
}

func add(m map[string]*big.Int, key string, amount *big.Int) {
	if m[key] == nil {
		m[key] = new(big.Int)
	}
	m[key].Add(m[key], amount)
}

func sub(m map[string]*big.Int, key string, amount *big.Int) {
	m[key].Sub(m[key], amount)
	if m[key].Sign() == 0 {
		delete(m, key)
	}
}

func share(reserve, amount, supply *big.Int) *big.Int {
	out := new(big.Int).Mul(reserve, amount)
	return out.Quo(out, supply)
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "/" + b
}
