// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/btcsuite/greenwallet/green"
	"golang.org/x/sync/errgroup"
)

// walletSummary is the report printed by the summary subcommand.
type walletSummary struct {
	Balance green.Balance       `json:"balance"`
	Fees    green.FeeEstimates  `json:"fee_estimates"`
	Utxos   []green.UtxoSummary `json:"utxos"`
}

// collectSummary queries balance, fee estimates and outputs concurrently.
// The first failure cancels the remaining invocations.
func (s *session) collectSummary(ctx context.Context) (*walletSummary, error) {
	var summary walletSummary

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ctx, cancel := s.callContext(ctx)
		defer cancel()

		balance, err := s.client.GetBalance(ctx)
		if err != nil {
			return fmt.Errorf("unable to fetch balance: %w", err)
		}
		summary.Balance = balance
		return nil
	})
	g.Go(func() error {
		ctx, cancel := s.callContext(ctx)
		defer cancel()

		fees, err := s.client.GetFeeEstimates(ctx)
		if err != nil {
			return fmt.Errorf("unable to fetch fee estimates: %w",
				err)
		}
		summary.Fees = fees
		return nil
	})
	g.Go(func() error {
		ctx, cancel := s.callContext(ctx)
		defer cancel()

		groups, err := s.client.GetUnspentOutputs(
			ctx, green.GetUnspentOutputsParams{},
		)
		if err != nil {
			return fmt.Errorf("unable to fetch unspent outputs: %w",
				err)
		}
		summary.Utxos = green.Summarize(groups)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *session) summary(ctx context.Context) error {
	summary, err := s.collectSummary(ctx)
	if err != nil {
		return err
	}

	if s.cfg.JSON {
		return printJSON(s.out, summary)
	}

	fmt.Fprintln(s.out, "Balance")
	if err := printBalance(s.out, summary.Balance); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "\nFee estimates")
	if err := printFees(s.out, summary.Fees); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "\nUnspent outputs")
	return printUtxoSummaries(s.out, summary.Utxos)
}
