// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/greenwallet/green"
	"github.com/btcsuite/greenwallet/pkg/unit"
)

func (s *session) balance(ctx context.Context) error {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	balance, err := s.client.GetBalance(ctx)
	if err != nil {
		return fmt.Errorf("unable to fetch balance: %w", err)
	}

	if s.cfg.JSON {
		return printJSON(s.out, balance)
	}
	return printBalance(s.out, balance)
}

func (s *session) fees(ctx context.Context, cfg *feesConfig) error {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	fees, err := s.client.GetFeeEstimates(ctx)
	if err != nil {
		return fmt.Errorf("unable to fetch fee estimates: %w", err)
	}

	if cfg.Blocks == 0 {
		if s.cfg.JSON {
			return printJSON(s.out, fees)
		}
		return printFees(s.out, fees)
	}

	rate, ok := fees.FeeRate(cfg.Blocks)
	if !ok {
		return errors.New("green-cli returned no fee estimates")
	}
	if s.cfg.JSON {
		return printJSON(s.out, map[string]int64{
			"blocks":      int64(cfg.Blocks),
			"sat_per_kvb": int64(rate),
		})
	}
	kvbRate := unit.NewSatPerKVByte(rate)
	_, err = fmt.Fprintf(s.out, "%v (%v)\n", kvbRate, kvbRate.FeePerVByte())
	return err
}

// unspentParams converts the utxos flags into request params.  Boolean flags
// are only sent when given.
func (cfg *utxosConfig) unspentParams() green.GetUnspentOutputsParams {
	params := green.GetUnspentOutputsParams{
		Subaccount: cfg.Subaccount,
		MinConfs:   cfg.MinConfs,
		MaxConfs:   cfg.MaxConfs,
		SortBy:     cfg.SortBy.Mode(),
		MinValue:   cfg.MinValue,
		MaxValue:   cfg.MaxValue,
	}
	if cfg.IncludeFrozen {
		params.IncludeFrozen = &cfg.IncludeFrozen
	}
	if cfg.ConfidentialOnly {
		params.ConfidentialOnly = &cfg.ConfidentialOnly
	}
	if cfg.AssetID != "" {
		params.AssetID = &cfg.AssetID
	}
	return params
}

func (s *session) utxos(ctx context.Context, cfg *utxosConfig) error {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	groups, err := s.client.GetUnspentOutputs(ctx, cfg.unspentParams())
	if err != nil {
		return fmt.Errorf("unable to fetch unspent outputs: %w", err)
	}

	switch {
	case cfg.Summary && s.cfg.JSON:
		return printJSON(s.out, green.Summarize(groups))
	case cfg.Summary:
		return printUtxoSummaries(s.out, green.Summarize(groups))
	case s.cfg.JSON:
		return printJSON(s.out, groups)
	}
	return printUnspentOutputs(s.out, groups)
}

func (s *session) freeze(ctx context.Context, cfg *freezeConfig) error {
	ref := green.ParseUtxoRef(cfg.Outpoint)
	req := green.UpdateUtxoRequest{
		TxHash:   ref.TxID,
		Vout:     ref.Vout,
		IsFrozen: !cfg.Unfreeze,
	}
	if cfg.Memo != "" {
		req.Memo = &cfg.Memo
	}

	ctx, cancel := s.callContext(ctx)
	defer cancel()

	utxo, err := s.client.UpdateUnspentOutput(ctx, req)
	if err != nil {
		return fmt.Errorf("unable to update %s: %w", cfg.Outpoint, err)
	}

	log.Infof("Output %s:%d frozen=%v", utxo.TxHash, utxo.Vout,
		utxo.IsFrozen)

	if s.cfg.JSON {
		return printJSON(s.out, utxo)
	}
	return printUnspentOutputs(s.out, green.GroupUnspentOutputs(
		[]green.UnspentOutput{utxo},
	))
}

func (s *session) subaccounts(ctx context.Context,
	cfg *subaccountsConfig) error {

	ctx, cancel := s.callContext(ctx)
	defer cancel()

	var (
		subaccounts []green.Subaccount
		err         error
	)
	switch {
	case cfg.Create != "":
		var sa green.Subaccount
		sa, err = s.client.CreateSubaccount(ctx,
			green.CreateSubaccountParams{
				Name: cfg.Create,
				Type: cfg.Type,
			})
		subaccounts = []green.Subaccount{sa}

	case cfg.Update != nil:
		if cfg.Hide && cfg.Unhide {
			return errors.New("--hide and --unhide are exclusive")
		}
		var params green.UpdateSubaccountParams
		if cfg.Name != "" {
			params.Name = &cfg.Name
		}
		if cfg.Hide || cfg.Unhide {
			hidden := cfg.Hide
			params.Hidden = &hidden
		}

		var sa green.Subaccount
		sa, err = s.client.UpdateSubaccount(ctx, *cfg.Update, params)
		subaccounts = []green.Subaccount{sa}

	case cfg.Show != nil:
		var sa green.Subaccount
		sa, err = s.client.GetSubaccount(ctx, *cfg.Show)
		subaccounts = []green.Subaccount{sa}

	default:
		subaccounts, err = s.client.GetSubaccounts(ctx)
	}
	if err != nil {
		return fmt.Errorf("subaccount request failed: %w", err)
	}

	if s.cfg.JSON {
		return printJSON(s.out, subaccounts)
	}
	return printSubaccounts(s.out, subaccounts)
}

func (s *session) address(ctx context.Context, cfg *addressConfig) error {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	if cfg.Previous {
		b := green.NewPreviousAddressesBuilder()
		if cfg.Subaccount != nil {
			b.Subaccount(*cfg.Subaccount)
		}
		if cfg.LastPointer != nil {
			b.LastPointer(*cfg.LastPointer)
		}
		if cfg.Unused {
			b.UnusedOnly(true)
		}

		addrs, err := s.client.GetPreviousAddresses(ctx, b.Build())
		if err != nil {
			return fmt.Errorf("unable to list addresses: %w", err)
		}
		if s.cfg.JSON {
			return printJSON(s.out, addrs)
		}

		tw := newTable(s.out)
		fmt.Fprintln(tw, "POINTER\tADDRESS\tTYPE\tTXS")
		for _, a := range addrs.List {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", a.Pointer, a.Address,
				a.AddressType, a.TxCount)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if addrs.LastPointer != nil {
			_, err = fmt.Fprintf(s.out, "More with --lastpointer=%d\n",
				*addrs.LastPointer)
		}
		return err
	}

	b := green.NewReceiveAddressBuilder()
	if cfg.Subaccount != nil {
		b.Subaccount(*cfg.Subaccount)
	}
	if cfg.Type != "" {
		b.AddressType(cfg.Type)
	}

	var (
		addr green.ReceiveAddress
		err  error
	)
	if cfg.New {
		addr, err = s.client.GetNewAddress(ctx, b.Build())
	} else {
		addr, err = s.client.GetReceiveAddress(ctx, b.Build())
	}
	if err != nil {
		return fmt.Errorf("unable to fetch address: %w", err)
	}

	if s.cfg.JSON {
		return printJSON(s.out, addr)
	}
	_, err = fmt.Fprintln(s.out, addr.Address)
	return err
}

func (s *session) transactions(ctx context.Context,
	cfg *transactionsConfig) error {

	ctx, cancel := s.callContext(ctx)
	defer cancel()

	if cfg.TxID != "" {
		tx, err := s.client.GetTransactionDetails(ctx, cfg.TxID)
		if err != nil {
			return fmt.Errorf("unable to fetch transaction: %w", err)
		}
		if s.cfg.JSON {
			return printJSON(s.out, tx)
		}
		return printTransactions(s.out, []green.Transaction{tx})
	}

	params := green.GetTransactionsParams{
		Subaccount: cfg.Subaccount,
		First:      cfg.First,
		Count:      cfg.Count,
	}
	if cfg.AssetID != "" {
		params.AssetID = &cfg.AssetID
	}
	if cfg.NextPage != "" {
		params.NextPage = &cfg.NextPage
	}

	list, err := s.client.GetTransactions(ctx, params)
	if err != nil {
		return fmt.Errorf("unable to list transactions: %w", err)
	}
	if s.cfg.JSON {
		return printJSON(s.out, list)
	}
	if err := printTransactions(s.out, list.Transactions); err != nil {
		return err
	}
	if list.More && list.NextPage != nil {
		_, err = fmt.Fprintf(s.out, "More with --nextpage=%s\n",
			*list.NextPage)
	}
	return err
}
