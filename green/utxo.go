// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package green

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// BaseAssetKey is the group key of outputs that carry no asset identifier.
// It also groups outputs explicitly tagged with it.
const BaseAssetKey = "btc"

// UnspentOutput is a spendable output as reported by the wallet CLI.
type UnspentOutput struct {
	// TxHash is the hash of the transaction that created the output.
	TxHash string `json:"txhash"`

	// Vout is the index of the output within its transaction.
	Vout uint32 `json:"vout"`

	// Satoshi is the value of the output in the smallest unit.
	Satoshi uint64 `json:"satoshi"`

	// AssetID is the asset of the output.  Nil means the base asset.
	AssetID *string `json:"asset_id,omitempty"`

	// BlockHeight is the height of the block that confirmed the output,
	// if any.
	BlockHeight *uint32 `json:"block_height,omitempty"`

	// Confirmations is the number of confirmations, if known.
	Confirmations *uint32 `json:"confirmations,omitempty"`

	Address      *string `json:"address,omitempty"`
	AddressType  *string `json:"address_type,omitempty"`
	ScriptPubKey *string `json:"script_pubkey,omitempty"`

	// Subaccount is the index of the subaccount owning the output.
	Subaccount uint32 `json:"subaccount"`

	// Pointer is the HD derivation index of the output's address.
	Pointer uint32 `json:"pointer"`

	IsInternal     bool `json:"is_internal"`
	IsConfidential bool `json:"is_confidential"`
	IsFrozen       bool `json:"is_frozen"`

	Memo *string `json:"memo,omitempty"`
}

// AssetKey returns the key the output is grouped under: its asset
// identifier, or BaseAssetKey when it has none.
func (u *UnspentOutput) AssetKey() string {
	if u.AssetID == nil {
		return BaseAssetKey
	}
	return *u.AssetID
}

// Amount returns the value of the output as a btcutil.Amount.
func (u *UnspentOutput) Amount() btcutil.Amount {
	return btcutil.Amount(u.Satoshi)
}

// OutPoint returns the outpoint identifying the output.
func (u *UnspentOutput) OutPoint() (wire.OutPoint, error) {
	hash, err := chainhash.NewHashFromStr(u.TxHash)
	if err != nil {
		return wire.OutPoint{}, greenError(ErrInvalidResponse,
			fmt.Sprintf("invalid txhash %q", u.TxHash), err)
	}
	return *wire.NewOutPoint(hash, u.Vout), nil
}

// ConfirmationsOpt returns the confirmation count as an option.
func (u *UnspentOutput) ConfirmationsOpt() fn.Option[uint32] {
	return optionFromPtr(u.Confirmations)
}

// BlockHeightOpt returns the confirming block height as an option.
func (u *UnspentOutput) BlockHeightOpt() fn.Option[uint32] {
	return optionFromPtr(u.BlockHeight)
}

// UnspentOutputs maps an asset key to the unspent outputs of that asset.
type UnspentOutputs map[string][]UnspentOutput

// UtxoSortBy selects the order GetUnspentOutputs returns each asset's
// outputs in.
type UtxoSortBy uint8

const (
	// SortByValue orders by value, smallest first.
	SortByValue UtxoSortBy = iota

	// SortByValueDesc orders by value, largest first.
	SortByValueDesc

	// SortByAge orders by block height, lowest first.
	SortByAge

	// SortByAgeDesc orders by block height, highest first.
	SortByAgeDesc

	// SortByConfirmations orders by confirmations, fewest first.
	SortByConfirmations

	// SortByConfirmationsDesc orders by confirmations, most first.
	SortByConfirmationsDesc
)

var utxoSortByStrings = map[UtxoSortBy]string{
	SortByValue:             "value",
	SortByValueDesc:         "value_desc",
	SortByAge:               "age",
	SortByAgeDesc:           "age_desc",
	SortByConfirmations:     "confirmations",
	SortByConfirmationsDesc: "confirmations_desc",
}

// UtxoSortModes returns every sort mode in declaration order.
func UtxoSortModes() []UtxoSortBy {
	return []UtxoSortBy{
		SortByValue, SortByValueDesc,
		SortByAge, SortByAgeDesc,
		SortByConfirmations, SortByConfirmationsDesc,
	}
}

// ParseUtxoSortBy returns the sort mode with the given name.
func ParseUtxoSortBy(s string) (UtxoSortBy, error) {
	for mode, name := range utxoSortByStrings {
		if name == s {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown utxo sort mode %q", s)
}

// String returns the wire name of the sort mode.
func (s UtxoSortBy) String() string {
	if name, ok := utxoSortByStrings[s]; ok {
		return name
	}
	return fmt.Sprintf("UtxoSortBy(%d)", uint8(s))
}

// MarshalText encodes the sort mode as its wire name.
func (s UtxoSortBy) MarshalText() ([]byte, error) {
	name, ok := utxoSortByStrings[s]
	if !ok {
		return nil, fmt.Errorf("unknown utxo sort mode %d", uint8(s))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a sort mode from its wire name.
func (s *UtxoSortBy) UnmarshalText(text []byte) error {
	mode, err := ParseUtxoSortBy(string(text))
	if err != nil {
		return err
	}
	*s = mode
	return nil
}

// descending reports whether the mode is the mirror of an ascending mode.
func (s UtxoSortBy) descending() bool {
	switch s {
	case SortByValueDesc, SortByAgeDesc, SortByConfirmationsDesc:
		return true
	}
	return false
}

// GetUnspentOutputsParams filters and orders a GetUnspentOutputs call.  Every
// field is optional; nil means no constraint on that dimension.  Filtering is
// done by the CLI, the sort order is applied again locally.
type GetUnspentOutputsParams struct {
	Subaccount       *uint32     `json:"subaccount,omitempty"`
	MinConfs         *uint32     `json:"min_confs,omitempty"`
	MaxConfs         *uint32     `json:"max_confs,omitempty"`
	IncludeFrozen    *bool       `json:"include_frozen,omitempty"`
	ConfidentialOnly *bool       `json:"confidential_only,omitempty"`
	SortBy           *UtxoSortBy `json:"sort_by,omitempty"`
	AssetID          *string     `json:"asset_id,omitempty"`
	MinValue         *uint64     `json:"min_value,omitempty"`
	MaxValue         *uint64     `json:"max_value,omitempty"`
}

// GroupUnspentOutputs partitions outputs by AssetKey.  Outputs keep the
// order they were passed in within each group.
func GroupUnspentOutputs(outputs []UnspentOutput) UnspentOutputs {
	groups := make(UnspentOutputs)
	for _, output := range outputs {
		key := output.AssetKey()
		groups[key] = append(groups[key], output)
	}
	return groups
}

// SortUnspentOutputs sorts outputs in place.  The sort is stable, so outputs
// with equal keys keep their relative order in every mode.  An unknown
// confirmation count or block height orders before every known one.
func SortUnspentOutputs(outputs []UnspentOutput, mode UtxoSortBy) {
	var compare func(a, b UnspentOutput) int
	switch mode {
	case SortByValue, SortByValueDesc:
		compare = func(a, b UnspentOutput) int {
			return cmp.Compare(a.Satoshi, b.Satoshi)
		}

	case SortByAge, SortByAgeDesc:
		compare = func(a, b UnspentOutput) int {
			return compareOption(
				a.BlockHeightOpt(), b.BlockHeightOpt(),
			)
		}

	case SortByConfirmations, SortByConfirmationsDesc:
		compare = func(a, b UnspentOutput) int {
			return compareOption(
				a.ConfirmationsOpt(), b.ConfirmationsOpt(),
			)
		}

	default:
		log.Warnf("Ignoring unknown utxo sort mode %v", mode)
		return
	}

	if mode.descending() {
		ascending := compare
		compare = func(a, b UnspentOutput) int {
			return ascending(b, a)
		}
	}

	slices.SortStableFunc(outputs, compare)
}

// compareOption orders None before any Some and Some values naturally.
func compareOption[T cmp.Ordered](a, b fn.Option[T]) int {
	switch {
	case a.IsNone() && b.IsNone():
		return 0
	case a.IsNone():
		return -1
	case b.IsNone():
		return 1
	}

	var zero T
	return cmp.Compare(a.UnwrapOr(zero), b.UnwrapOr(zero))
}

// optionFromPtr converts a JSON optional into an fn.Option.
func optionFromPtr[T any](v *T) fn.Option[T] {
	if v == nil {
		return fn.None[T]()
	}
	return fn.Some(*v)
}

// processUnspentOutputs groups outputs by asset and applies the requested
// sort to every group.
func processUnspentOutputs(outputs []UnspentOutput,
	sortBy *UtxoSortBy) UnspentOutputs {

	groups := GroupUnspentOutputs(outputs)
	if sortBy != nil {
		for _, group := range groups {
			SortUnspentOutputs(group, *sortBy)
		}
	}

	log.Debugf("Grouped %d unspent %s into %d %s", len(outputs),
		pickNoun(len(outputs), "output", "outputs"), len(groups),
		pickNoun(len(groups), "asset", "assets"))

	return groups
}

// GetUnspentOutputsAsync returns an instance of a type that can be used to
// get the result of the get utxos command at some future time by invoking
// the Receive function on the returned instance.
//
// See GetUnspentOutputs for the blocking version and more details.
func (c *Client) GetUnspentOutputsAsync(ctx context.Context,
	params GetUnspentOutputsParams) Future[UnspentOutputs] {

	paramsJSON, err := encodeParams(params)
	if err != nil {
		return futureError[UnspentOutputs](err)
	}

	log.Tracef("Requesting utxos with params %s", paramsJSON)

	output := c.runner.RunAsync(
		ctx, "get", "utxos", "--params", paramsJSON, "--json",
	)

	decode := decodeJSON[[]UnspentOutput]("utxos")
	return newFuture(output, func(stdout string) (UnspentOutputs, error) {
		outputs, err := decode(stdout)
		if err != nil {
			return nil, err
		}
		return processUnspentOutputs(outputs, params.SortBy), nil
	})
}

// GetUnspentOutputs returns the wallet's unspent outputs matching params,
// grouped by asset.  Outputs without an asset identifier are grouped under
// BaseAssetKey.  When params.SortBy is set every group is sorted with
// SortUnspentOutputs, otherwise each group keeps the order the CLI reported.
//
// The call either returns every group or fails as a whole.
func (c *Client) GetUnspentOutputs(ctx context.Context,
	params GetUnspentOutputsParams) (UnspentOutputs, error) {

	return c.GetUnspentOutputsAsync(ctx, params).Receive()
}

// UpdateUtxoRequest freezes or unfreezes an output and sets its memo.
type UpdateUtxoRequest struct {
	TxHash   string  `json:"txhash"`
	Vout     uint32  `json:"vout"`
	IsFrozen bool    `json:"is_frozen"`
	Memo     *string `json:"memo,omitempty"`
}

// UpdateUnspentOutputAsync returns an instance of a type that can be used to
// get the result of the update utxo command at some future time by invoking
// the Receive function on the returned instance.
//
// See UpdateUnspentOutput for the blocking version and more details.
func (c *Client) UpdateUnspentOutputAsync(ctx context.Context,
	req UpdateUtxoRequest) Future[UnspentOutput] {

	return queryParams[UnspentOutput](ctx, c, "utxo", "update", "utxo", req)
}

// UpdateUnspentOutput changes the frozen status and memo of an output and
// returns the output as the CLI reports it afterwards.
func (c *Client) UpdateUnspentOutput(ctx context.Context,
	req UpdateUtxoRequest) (UnspentOutput, error) {

	return c.UpdateUnspentOutputAsync(ctx, req).Receive()
}

// UtxoSummary totals the unspent outputs of a single asset.
type UtxoSummary struct {
	AssetID       string `json:"asset_id"`
	UtxoCount     uint32 `json:"utxo_count"`
	TotalSatoshi  uint64 `json:"total_satoshi"`
	FrozenCount   uint32 `json:"frozen_count"`
	FrozenSatoshi uint64 `json:"frozen_satoshi"`
}

// Summarize totals every group, ordered by asset key.
func Summarize(groups UnspentOutputs) []UtxoSummary {
	summaries := make([]UtxoSummary, 0, len(groups))
	for assetID, outputs := range groups {
		summary := UtxoSummary{AssetID: assetID}
		for _, output := range outputs {
			summary.UtxoCount++
			summary.TotalSatoshi += output.Satoshi
			if output.IsFrozen {
				summary.FrozenCount++
				summary.FrozenSatoshi += output.Satoshi
			}
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].AssetID < summaries[j].AssetID
	})

	return summaries
}
