// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package green

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// TxBuilder assembles a CreateTransactionRequest.  It performs no
// validation: zero outputs, duplicate inputs and zero amounts are passed to
// the wallet as they are.
type TxBuilder struct {
	req CreateTransactionRequest
}

// NewTxBuilder returns a builder for an empty request.
func NewTxBuilder() *TxBuilder {
	return &TxBuilder{}
}

// AddOutput pays satoshi of the base asset to address.
func (b *TxBuilder) AddOutput(address string, satoshi uint64) *TxBuilder {
	b.req.Addressees = append(b.req.Addressees, Addressee{
		Address: address,
		Satoshi: satoshi,
	})
	return b
}

// AddAssetOutput pays satoshi of assetID to address.
func (b *TxBuilder) AddAssetOutput(address string, satoshi uint64,
	assetID string) *TxBuilder {

	b.req.Addressees = append(b.req.Addressees, Addressee{
		Address: address,
		Satoshi: satoshi,
		AssetID: &assetID,
	})
	return b
}

// AddInput spends the output named by utxo in "txid:vout" form.  Anything
// else is taken verbatim as a txid spending output 0.
func (b *TxBuilder) AddInput(utxo string) *TxBuilder {
	b.req.Utxos = append(b.req.Utxos, ParseUtxoRef(utxo))
	return b
}

// AddUtxoRef spends ref.
func (b *TxBuilder) AddUtxoRef(ref UtxoRef) *TxBuilder {
	b.req.Utxos = append(b.req.Utxos, ref)
	return b
}

// SetFeeRate sets the fee rate in satoshis per vbyte.
func (b *TxBuilder) SetFeeRate(satPerVByte uint64) *TxBuilder {
	b.req.FeeRate = &satPerVByte
	return b
}

// SetSubaccount selects the subaccount that funds the transaction.
func (b *TxBuilder) SetSubaccount(subaccount uint32) *TxBuilder {
	b.req.Subaccount = &subaccount
	return b
}

// SetMemo attaches a memo stored by the wallet with the transaction.
func (b *TxBuilder) SetMemo(memo string) *TxBuilder {
	b.req.Memo = &memo
	return b
}

// SetSendAll sweeps the subaccount into the outputs.
func (b *TxBuilder) SetSendAll(sendAll bool) *TxBuilder {
	b.req.SendAll = sendAll
	return b
}

// Build returns the assembled request.
func (b *TxBuilder) Build() CreateTransactionRequest {
	return b.req
}

// Dump writes the JSON encoding of the request to a new file in dir, or in
// the default temporary directory when dir is empty.  The returned
// PendingTx can be signed and broadcast, and should be removed afterwards.
func (b *TxBuilder) Dump(dir string) (*PendingTx, error) {
	reqJSON, err := json.Marshal(b.req)
	if err != nil {
		return nil, greenError(ErrJSON, "unable to encode transaction "+
			"request", err)
	}

	f, err := os.CreateTemp(dir, "green-tx-*.json")
	if err != nil {
		return nil, greenError(ErrIO, "unable to create transaction "+
			"file", err)
	}
	path := f.Name()

	if _, err := f.Write(reqJSON); err != nil {
		f.Close()
		os.Remove(path)
		return nil, greenError(ErrIO, "unable to write transaction "+
			"file", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, greenError(ErrIO, "unable to write transaction "+
			"file", err)
	}

	log.Debugf("Wrote transaction request with %d %s to %s",
		len(b.req.Addressees),
		pickNoun(len(b.req.Addressees), "output", "outputs"), path)

	return &PendingTx{Path: path, JSON: string(reqJSON)}, nil
}

// PendingTx is a transaction stored in a file on its way to the network.
type PendingTx struct {
	// Path is the file holding the transaction.
	Path string

	// JSON is the file contents as last written by this package.
	JSON string

	// Signed is set once the wallet has signed the transaction.
	Signed bool
}

// Remove deletes the transaction file.  Removing a file that no longer
// exists is not an error.
func (p *PendingTx) Remove() error {
	err := os.Remove(p.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return greenError(ErrIO, "unable to remove transaction file",
			err)
	}
	return nil
}

// ParseUtxoRef splits "txid:vout".  Input without a valid numeric vout after
// the last colon is kept whole as the txid with vout 0.
func ParseUtxoRef(utxo string) UtxoRef {
	i := strings.LastIndexByte(utxo, ':')
	if i < 0 {
		return UtxoRef{TxID: utxo}
	}

	vout, err := strconv.ParseUint(utxo[i+1:], 10, 32)
	if err != nil {
		return UtxoRef{TxID: utxo}
	}

	return UtxoRef{TxID: utxo[:i], Vout: uint32(vout)}
}
