// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package green

import (
	"context"
	"sort"

	"github.com/btcsuite/btcd/btcutil"
)

// Balance maps an asset identifier to the wallet's amount of that asset in
// its smallest unit.
type Balance map[string]uint64

// NewBalance returns an empty Balance.
func NewBalance() Balance {
	return make(Balance)
}

// Get returns the amount held of the given asset.
func (b Balance) Get(assetID string) (uint64, bool) {
	amt, ok := b[assetID]
	return amt, ok
}

// Set records the amount held of the given asset.
func (b Balance) Set(assetID string, amount uint64) {
	b[assetID] = amount
}

// AssetCount returns the number of assets in the balance.
func (b Balance) AssetCount() int {
	return len(b)
}

// IsEmpty returns whether the balance holds no assets.
func (b Balance) IsEmpty() bool {
	return len(b) == 0
}

// FeeEstimates holds fee rates in satoshis per kilo-vbyte keyed by the
// confirmation target in blocks.
type FeeEstimates struct {
	Fees map[uint32]uint64 `json:"fees"`
}

// Targets returns the confirmation targets in ascending order.
func (f *FeeEstimates) Targets() []uint32 {
	targets := make([]uint32, 0, len(f.Fees))
	for blocks := range f.Fees {
		targets = append(targets, blocks)
	}
	sort.Slice(targets, func(i, j int) bool {
		return targets[i] < targets[j]
	})
	return targets
}

// FeeRate returns the fee rate per kilo-vbyte for confirmation within the
// given number of blocks.  It picks the smallest known target that is at
// least blocks, falling back to the largest target when blocks exceeds them
// all.  The boolean is false when there are no estimates.
func (f *FeeEstimates) FeeRate(blocks uint32) (btcutil.Amount, bool) {
	targets := f.Targets()
	if len(targets) == 0 {
		return 0, false
	}

	i := sort.Search(len(targets), func(i int) bool {
		return targets[i] >= blocks
	})
	if i == len(targets) {
		i--
	}

	return btcutil.Amount(f.Fees[targets[i]]), true
}

// GetBalanceAsync returns an instance of a type that can be used to get the
// result of the get balance command at some future time by invoking the
// Receive function on the returned instance.
//
// See GetBalance for the blocking version and more details.
func (c *Client) GetBalanceAsync(ctx context.Context) Future[Balance] {
	return query[Balance](ctx, c, "balance", "get", "balance")
}

// GetBalance returns the wallet balance per asset.
func (c *Client) GetBalance(ctx context.Context) (Balance, error) {
	return c.GetBalanceAsync(ctx).Receive()
}

// GetFeeEstimatesAsync returns an instance of a type that can be used to get
// the result of the get fee-estimates command at some future time by
// invoking the Receive function on the returned instance.
//
// See GetFeeEstimates for the blocking version and more details.
func (c *Client) GetFeeEstimatesAsync(
	ctx context.Context) Future[FeeEstimates] {

	return query[FeeEstimates](
		ctx, c, "fee estimates", "get", "fee-estimates",
	)
}

// GetFeeEstimates returns the current fee estimates.
func (c *Client) GetFeeEstimates(ctx context.Context) (FeeEstimates, error) {
	return c.GetFeeEstimatesAsync(ctx).Receive()
}
