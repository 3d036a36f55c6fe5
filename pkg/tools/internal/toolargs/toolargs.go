// Package toolargs checks and converts the arguments shared by the Aptos
// tools.
package toolargs

import (
	"encoding/json"
	"math/big"
	"strings"

	"github.com/hamzaessahbaoui/aptos-agent-kit/runtime"
	"github.com/hamzaessahbaoui/aptos-agent-kit/toolkit"
)

// Require fails with code when value is blank.
func Require(code, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return toolkit.NewError(code, field+" is required")
	}
	return nil
}

// Mint fails with mint_required when mint is blank. Tools that move funds
// never fall back to APT.
func Mint(field, mint string) error {
	return Require("mint_required", field, mint)
}

// OnChain converts a human-readable amount for a token with the given
// decimals. Zero and negative amounts are rejected.
func OnChain(amount json.Number, decimals int) (*big.Int, error) {
	v, err := runtime.ToOnChain(amount.String(), decimals)
	if err != nil {
		return nil, toolkit.NewError("invalid_amount", err.Error())
	}
	if v.Sign() <= 0 {
		return nil, toolkit.NewError("invalid_amount", "amount must be greater than zero")
	}
	return v, nil
}

// Optional converts an optional amount, returning nil when it is absent.
func Optional(amount json.Number, decimals int) (*big.Int, error) {
	if strings.TrimSpace(amount.String()) == "" {
		return nil, nil
	}
	v, err := runtime.ToOnChain(amount.String(), decimals)
	if err != nil {
		return nil, toolkit.NewError("invalid_amount", err.Error())
	}
	return v, nil
}
