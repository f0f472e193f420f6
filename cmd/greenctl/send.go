// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/greenwallet/green"
	"github.com/btcsuite/greenwallet/internal/prompt"
	"github.com/btcsuite/greenwallet/pkg/unit"
)

// errNotConfirmed is returned when the operator declines to broadcast.
var errNotConfirmed = errors.New("transaction not broadcast")

// txBuilder assembles the transaction described by the send flags.
func (cfg *sendConfig) txBuilder() *green.TxBuilder {
	b := green.NewTxBuilder()

	amount := uint64(cfg.Amount.Amount)
	if cfg.AssetID != "" {
		b.AddAssetOutput(cfg.Address, amount, cfg.AssetID)
	} else {
		b.AddOutput(cfg.Address, amount)
	}
	for _, input := range cfg.Inputs {
		b.AddInput(input)
	}
	if cfg.FeeRate != 0 {
		b.SetFeeRate(cfg.FeeRate)
	}
	if cfg.Subaccount != nil {
		b.SetSubaccount(*cfg.Subaccount)
	}
	if cfg.Memo != "" {
		b.SetMemo(cfg.Memo)
	}
	return b.SetSendAll(cfg.SendAll)
}

func (s *session) send(ctx context.Context, cfg *sendConfig) error {
	if cfg.Amount.Amount < 0 {
		return errors.New("--amount may not be negative")
	}

	if cfg.Direct {
		return s.sendDirect(ctx, cfg)
	}

	b := cfg.txBuilder()
	if cfg.Blocks != 0 {
		if cfg.FeeRate != 0 {
			return errors.New("--blocks and --feerate are exclusive")
		}
		rate, err := s.estimateFeeRate(ctx, cfg.Blocks)
		if err != nil {
			return err
		}
		b.SetFeeRate(rate.Ceil())
	}

	// Have the wallet price the transaction before anything is signed.
	callCtx, cancel := s.callContext(ctx)
	created, err := s.client.CreateTransaction(callCtx, b.Build())
	cancel()
	if err != nil {
		return fmt.Errorf("unable to create transaction: %w", err)
	}

	vsize := unit.VByte(created.EstimatedVSize)
	fee := btcutil.Amount(created.EstimatedFee)
	fmt.Fprintf(s.out, "Paying %s to %s with fee %v (%v, %v)\n",
		formatAmount(assetOrBase(cfg.AssetID),
			uint64(cfg.Amount.Amount)), cfg.Address, fee, vsize,
		unit.NewSatPerVByte(fee, vsize))

	pending, err := b.Dump(cfg.TxDir)
	if err != nil {
		return err
	}
	// A declined transaction stays on disk in its signed form.
	keep := cfg.Keep
	defer func() {
		if keep {
			return
		}
		if err := pending.Remove(); err != nil {
			log.Warnf("Unable to remove %s: %v", pending.Path, err)
		}
	}()

	callCtx, cancel = s.callContext(ctx)
	signed, err := s.client.SignTransaction(callCtx, pending)
	cancel()
	if err != nil {
		return fmt.Errorf("unable to sign transaction: %w", err)
	}

	if !cfg.Yes {
		if !s.interactive {
			return errors.New("refusing to broadcast without --yes " +
				"when standard input is not a terminal")
		}
		ok, err := prompt.Confirm(s.in, s.out, "Broadcast transaction?")
		if err != nil {
			return err
		}
		if !ok {
			keep = true
			log.Infof("Leaving signed transaction unbroadcast in %s",
				signed.Path)
			return errNotConfirmed
		}
	}

	callCtx, cancel = s.callContext(ctx)
	result, err := s.client.BroadcastTransaction(callCtx, signed)
	cancel()
	if err != nil {
		return fmt.Errorf("unable to broadcast transaction: %w", err)
	}

	log.Infof("Broadcast transaction %s", result.TxHash)

	if s.cfg.JSON {
		return printJSON(s.out, result)
	}
	_, err = fmt.Fprintln(s.out, result.TxHash)
	return err
}

// estimateFeeRate returns the wallet's fee rate estimate for confirmation
// within blocks.
func (s *session) estimateFeeRate(ctx context.Context,
	blocks uint32) (unit.SatPerVByte, error) {

	ctx, cancel := s.callContext(ctx)
	defer cancel()

	fees, err := s.client.GetFeeEstimates(ctx)
	if err != nil {
		return unit.SatPerVByte{}, fmt.Errorf("unable to fetch fee "+
			"estimates: %w", err)
	}
	rate, ok := fees.FeeRate(blocks)
	if !ok {
		return unit.SatPerVByte{}, errors.New("green-cli returned no " +
			"fee estimates")
	}

	vbRate := unit.NewSatPerKVByte(rate).FeePerVByte()
	log.Debugf("Using fee rate %v for a %d block target", vbRate, blocks)

	return vbRate, nil
}

// sendDirect pays through the single send to-address command.
func (s *session) sendDirect(ctx context.Context, cfg *sendConfig) error {
	if !cfg.Yes {
		return errors.New("--direct requires --yes")
	}

	var assetID *string
	if cfg.AssetID != "" {
		assetID = &cfg.AssetID
	}

	ctx, cancel := s.callContext(ctx)
	defer cancel()

	result, err := s.client.SendToAddress(
		ctx, cfg.Address, uint64(cfg.Amount.Amount), assetID,
	)
	if err != nil {
		return fmt.Errorf("unable to send: %w", err)
	}

	if s.cfg.JSON {
		return printJSON(s.out, result)
	}
	_, err = fmt.Fprintln(s.out, result.TxHash)
	return err
}

func assetOrBase(assetID string) string {
	if assetID == "" {
		return green.BaseAssetKey
	}
	return assetID
}
