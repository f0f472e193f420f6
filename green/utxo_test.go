// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package green

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"
)

func u32(v uint32) *uint32 { return &v }
func u64(v uint64) *uint64 { return &v }
func str(v string) *string { return &v }

// sampleOutputs returns outputs with duplicated and missing sort keys across
// two assets.
func sampleOutputs() []UnspentOutput {
	return []UnspentOutput{
		{TxHash: "a0", Satoshi: 5000, Confirmations: u32(3),
			BlockHeight: u32(100)},
		{TxHash: "a1", Satoshi: 1000},
		{TxHash: "a2", Satoshi: 5000, Confirmations: u32(1),
			BlockHeight: u32(102)},
		{TxHash: "a3", Satoshi: 300, AssetID: str("L-USDT"),
			Confirmations: u32(10), BlockHeight: u32(90)},
		{TxHash: "a4", Satoshi: 1000, Confirmations: u32(3),
			BlockHeight: u32(100)},
		{TxHash: "a5", Satoshi: 7000, AssetID: str(BaseAssetKey),
			Confirmations: u32(0)},
		{TxHash: "a6", Satoshi: 200, AssetID: str("L-USDT")},
	}
}

// sortKey returns the key mode orders by, with an unknown value mapped below
// every known one.
func sortKey(u UnspentOutput, mode UtxoSortBy) int64 {
	var opt fn.Option[uint32]
	switch mode {
	case SortByValue, SortByValueDesc:
		return int64(u.Satoshi)
	case SortByAge, SortByAgeDesc:
		opt = u.BlockHeightOpt()
	default:
		opt = u.ConfirmationsOpt()
	}
	if opt.IsNone() {
		return -1
	}
	return int64(opt.UnwrapOr(0))
}

func txHashes(outputs []UnspentOutput) []string {
	hashes := make([]string, 0, len(outputs))
	for _, u := range outputs {
		hashes = append(hashes, u.TxHash)
	}
	return hashes
}

// TestGroupUnspentOutputs checks that outputs without an asset fold into the
// base asset group together with explicitly tagged ones, in received order.
func TestGroupUnspentOutputs(t *testing.T) {
	t.Parallel()

	groups := GroupUnspentOutputs(sampleOutputs())
	require.Len(t, groups, 2)

	require.Equal(t, []string{"a0", "a1", "a2", "a4", "a5"},
		txHashes(groups[BaseAssetKey]))
	require.Equal(t, []string{"a3", "a6"}, txHashes(groups["L-USDT"]))

	// Only untagged outputs must land in exactly one group of the same
	// size.
	untagged := []UnspentOutput{
		{TxHash: "b0"}, {TxHash: "b1"}, {TxHash: "b2"},
	}
	groups = GroupUnspentOutputs(untagged)
	require.Len(t, groups, 1)
	require.Len(t, groups[BaseAssetKey], len(untagged))

	require.Empty(t, GroupUnspentOutputs(nil))
}

// TestSortUnspentOutputs checks the resulting order of every sort mode,
// including stability among equal keys.
func TestSortUnspentOutputs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		mode     UtxoSortBy
		expected []string
	}{
		{
			mode:     SortByValue,
			expected: []string{"a1", "a4", "a0", "a2", "a5"},
		},
		{
			mode:     SortByValueDesc,
			expected: []string{"a5", "a0", "a2", "a1", "a4"},
		},
		{
			mode:     SortByAge,
			expected: []string{"a1", "a5", "a0", "a4", "a2"},
		},
		{
			mode:     SortByAgeDesc,
			expected: []string{"a2", "a0", "a4", "a1", "a5"},
		},
		{
			mode:     SortByConfirmations,
			expected: []string{"a1", "a5", "a2", "a0", "a4"},
		},
		{
			mode:     SortByConfirmationsDesc,
			expected: []string{"a0", "a4", "a2", "a5", "a1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.mode.String(), func(t *testing.T) {
			t.Parallel()

			outputs := GroupUnspentOutputs(sampleOutputs())[BaseAssetKey]
			SortUnspentOutputs(outputs, tc.mode)
			require.Equal(t, tc.expected, txHashes(outputs))
		})
	}
}

// TestSortAdjacentPairs checks that every adjacent pair is ordered by the
// mode's key and that sorting a sorted slice changes nothing.
func TestSortAdjacentPairs(t *testing.T) {
	t.Parallel()

	for _, mode := range UtxoSortModes() {
		groups := processUnspentOutputs(sampleOutputs(), &mode)

		for asset, outputs := range groups {
			for i := 1; i < len(outputs); i++ {
				a := sortKey(outputs[i-1], mode)
				b := sortKey(outputs[i], mode)
				if mode.descending() {
					require.GreaterOrEqual(t, a, b,
						"%v %s at %d", mode, asset, i)
				} else {
					require.LessOrEqual(t, a, b,
						"%v %s at %d", mode, asset, i)
				}
			}

			again := append([]UnspentOutput(nil), outputs...)
			SortUnspentOutputs(again, mode)
			require.Equal(t, outputs, again)
		}

		// Grouping and sorting the already processed output is a no-op.
		var flat []UnspentOutput
		for _, outputs := range groups {
			flat = append(flat, outputs...)
		}
		require.Equal(t, groups, processUnspentOutputs(flat, &mode))
	}
}

// TestProcessWithoutSort checks that groups keep received order when no
// sort mode is requested.
func TestProcessWithoutSort(t *testing.T) {
	t.Parallel()

	groups := processUnspentOutputs(sampleOutputs(), nil)
	require.Equal(t, []string{"a0", "a1", "a2", "a4", "a5"},
		txHashes(groups[BaseAssetKey]))
}

// TestUtxoSortByText checks the text names of the sort modes.
func TestUtxoSortByText(t *testing.T) {
	t.Parallel()

	names := []string{
		"value", "value_desc", "age", "age_desc", "confirmations",
		"confirmations_desc",
	}
	for i, mode := range UtxoSortModes() {
		text, err := mode.MarshalText()
		require.NoError(t, err)
		require.Equal(t, names[i], string(text))

		var decoded UtxoSortBy
		require.NoError(t, decoded.UnmarshalText(text))
		require.Equal(t, mode, decoded)
	}

	var mode UtxoSortBy
	require.Error(t, mode.UnmarshalText([]byte("oldest")))
	require.Error(t, json.Unmarshal([]byte(`{"sort_by":"size"}`),
		&GetUnspentOutputsParams{}))

	_, err := UtxoSortBy(42).MarshalText()
	require.Error(t, err)
	require.Equal(t, "UtxoSortBy(42)", UtxoSortBy(42).String())
}

// TestGetUnspentOutputsParamsJSON checks that unset fields are left out of
// the encoding and stay unset after decoding.
func TestGetUnspentOutputsParamsJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(GetUnspentOutputsParams{})
	require.NoError(t, err)
	require.Equal(t, "{}", string(b))

	sortBy := SortByAgeDesc
	params := GetUnspentOutputsParams{
		Subaccount: u32(1),
		MinConfs:   u32(0),
		SortBy:     &sortBy,
		MaxValue:   u64(50000),
	}
	b, err = json.Marshal(params)
	require.NoError(t, err)
	require.JSONEq(t, `{"subaccount":1,"min_confs":0,`+
		`"sort_by":"age_desc","max_value":50000}`, string(b))

	var decoded GetUnspentOutputsParams
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, params, decoded)
	require.Nil(t, decoded.MaxConfs)
	require.Nil(t, decoded.IncludeFrozen)
	require.Nil(t, decoded.AssetID)
}

// TestUnspentOutputHelpers checks the accessors of UnspentOutput.
func TestUnspentOutputHelpers(t *testing.T) {
	t.Parallel()

	txHash := "aa" + strings.Repeat("00", 30) + "bb"
	u := UnspentOutput{TxHash: txHash, Vout: 3, Satoshi: 150000}

	require.Equal(t, BaseAssetKey, u.AssetKey())
	require.Equal(t, btcutil.Amount(150000), u.Amount())
	require.True(t, u.ConfirmationsOpt().IsNone())

	op, err := u.OutPoint()
	require.NoError(t, err)
	require.Equal(t, txHash, op.Hash.String())
	require.EqualValues(t, 3, op.Index)
	require.Equal(t, UtxoRef{TxID: txHash, Vout: 3}, NewUtxoRef(op))

	u.TxHash = "not-a-hash"
	_, err = u.OutPoint()
	require.True(t, IsErrorCode(err, ErrInvalidResponse))
}

// TestSummarize checks the per-asset totals.
func TestSummarize(t *testing.T) {
	t.Parallel()

	outputs := sampleOutputs()
	outputs[1].IsFrozen = true
	outputs[6].IsFrozen = true

	summaries := Summarize(GroupUnspentOutputs(outputs))
	require.Equal(t, []UtxoSummary{
		{
			AssetID:       "L-USDT",
			UtxoCount:     2,
			TotalSatoshi:  500,
			FrozenCount:   1,
			FrozenSatoshi: 200,
		},
		{
			AssetID:       BaseAssetKey,
			UtxoCount:     5,
			TotalSatoshi:  19000,
			FrozenCount:   1,
			FrozenSatoshi: 1000,
		},
	}, summaries)
}

// BenchmarkSortUnspentOutputs measures sorting a large group.
func BenchmarkSortUnspentOutputs(b *testing.B) {
	outputs := make([]UnspentOutput, 10000)
	for i := range outputs {
		outputs[i] = UnspentOutput{
			TxHash:  fmt.Sprintf("%064x", i),
			Satoshi: uint64((i * 7919) % 100000),
		}
	}

	work := make([]UnspentOutput, len(outputs))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(work, outputs)
		SortUnspentOutputs(work, SortByValueDesc)
	}
}
