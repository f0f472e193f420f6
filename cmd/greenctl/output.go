// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/greenwallet/green"
	"github.com/btcsuite/greenwallet/pkg/unit"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTable returns a tabwriter for aligned columns.  It must be flushed.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// formatAmount renders an amount of assetID.  The base asset is shown in BTC,
// any other asset in its smallest unit.
func formatAmount(assetID string, satoshi uint64) string {
	if assetID == green.BaseAssetKey {
		return btcutil.Amount(satoshi).String()
	}
	return strconv.FormatUint(satoshi, 10)
}

// sortedAssets returns the keys of m with the base asset first and the rest
// in lexical order.
func sortedAssets[T any](m map[string]T) []string {
	assets := make([]string, 0, len(m))
	for asset := range m {
		assets = append(assets, asset)
	}
	sort.Slice(assets, func(i, j int) bool {
		switch {
		case assets[i] == green.BaseAssetKey:
			return assets[j] != green.BaseAssetKey
		case assets[j] == green.BaseAssetKey:
			return false
		}
		return assets[i] < assets[j]
	})
	return assets
}

func printBalance(w io.Writer, balance green.Balance) error {
	if balance.IsEmpty() {
		_, err := fmt.Fprintln(w, "No funds")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ASSET\tAMOUNT")
	for _, asset := range sortedAssets(balance) {
		fmt.Fprintf(tw, "%s\t%s\n", asset, formatAmount(asset,
			balance[asset]))
	}
	return tw.Flush()
}

func printFees(w io.Writer, fees green.FeeEstimates) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "BLOCKS\tSAT/KVB\tSAT/VB")
	for _, blocks := range fees.Targets() {
		rate := unit.NewSatPerKVByte(btcutil.Amount(fees.Fees[blocks]))
		fmt.Fprintf(tw, "%d\t%d\t%s\n", blocks, fees.Fees[blocks],
			rate.FeePerVByte().FloatString(2))
	}
	return tw.Flush()
}

func optString(v *uint32) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatUint(uint64(*v), 10)
}

func printUnspentOutputs(w io.Writer, groups green.UnspentOutputs) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ASSET\tOUTPOINT\tAMOUNT\tCONFS\tHEIGHT\tSUBACCOUNT\t"+
		"FROZEN")
	for _, asset := range sortedAssets(groups) {
		for _, u := range groups[asset] {
			fmt.Fprintf(tw, "%s\t%s:%d\t%s\t%s\t%s\t%d\t%v\n",
				asset, u.TxHash, u.Vout,
				formatAmount(asset, u.Satoshi),
				optString(u.Confirmations),
				optString(u.BlockHeight), u.Subaccount,
				u.IsFrozen)
		}
	}
	return tw.Flush()
}

func printUtxoSummaries(w io.Writer, summaries []green.UtxoSummary) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ASSET\tOUTPUTS\tTOTAL\tFROZEN\tFROZEN TOTAL")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%s\n", s.AssetID, s.UtxoCount,
			formatAmount(s.AssetID, s.TotalSatoshi), s.FrozenCount,
			formatAmount(s.AssetID, s.FrozenSatoshi))
	}
	return tw.Flush()
}

func printSubaccounts(w io.Writer, subaccounts []green.Subaccount) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "POINTER\tNAME\tTYPE\tHIDDEN")
	for _, sa := range subaccounts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%v\n", sa.Pointer, sa.Name,
			sa.Type, sa.Hidden)
	}
	return tw.Flush()
}

func printTransactions(w io.Writer, txs []green.Transaction) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "TXID\tTYPE\tCONFS\tFEE\tMEMO")
	for _, tx := range txs {
		txType, memo, fee := "-", "", "-"
		if tx.TxType != nil {
			txType = *tx.TxType
		}
		if tx.Memo != nil {
			memo = *tx.Memo
		}
		if tx.Fee != nil {
			fee = btcutil.Amount(*tx.Fee).String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", tx.TxID, txType,
			tx.Confirmations, fee, memo)
	}
	return tw.Flush()
}
