// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package green

import (
	"context"
	"os"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
)

// TxInput is an input of a wallet transaction.
type TxInput struct {
	TxID       string    `json:"txid"`
	Vout       uint32    `json:"vout"`
	ScriptSig  *string   `json:"script_sig,omitempty"`
	Witness    []string  `json:"witness,omitempty"`
	Sequence   uint32    `json:"sequence"`
	PrevOut    *TxOutput `json:"prevout,omitempty"`
	IsRelevant bool      `json:"is_relevant"`
	Address    *string   `json:"address,omitempty"`
	Subaccount *uint32   `json:"subaccount,omitempty"`
	Pointer    *uint32   `json:"pointer,omitempty"`
}

// TxOutput is an output of a wallet transaction.
type TxOutput struct {
	Satoshi      uint64  `json:"satoshi"`
	ScriptPubKey string  `json:"script_pubkey"`
	Address      *string `json:"address,omitempty"`
	AssetID      *string `json:"asset_id,omitempty"`

	// IsRelevant is set when the output pays the wallet.
	IsRelevant bool    `json:"is_relevant"`
	Subaccount *uint32 `json:"subaccount,omitempty"`
	Pointer    *uint32 `json:"pointer,omitempty"`
	IsChange   bool    `json:"is_change"`
}

// Amount returns the value of the output as a btcutil.Amount.
func (o *TxOutput) Amount() btcutil.Amount {
	return btcutil.Amount(o.Satoshi)
}

// Transaction is a transaction as described by the wallet.
type Transaction struct {
	TxID     string     `json:"txid"`
	Version  int32      `json:"version"`
	LockTime uint32     `json:"locktime"`
	Inputs   []TxInput  `json:"inputs"`
	Outputs  []TxOutput `json:"outputs"`

	Weight *uint32 `json:"weight,omitempty"`
	Size   *uint32 `json:"size,omitempty"`
	VSize  *uint32 `json:"vsize,omitempty"`
	Fee    *uint64 `json:"fee,omitempty"`

	// FeeRate is in satoshis per vbyte.
	FeeRate *float64 `json:"fee_rate,omitempty"`

	BlockHash     *string `json:"block_hash,omitempty"`
	BlockHeight   *uint32 `json:"block_height,omitempty"`
	Confirmations uint32  `json:"confirmations"`
	Timestamp     *uint64 `json:"timestamp,omitempty"`
	Memo          *string `json:"memo,omitempty"`

	// TxType is "incoming", "outgoing" or "redeposit".
	TxType *string `json:"tx_type,omitempty"`

	Subaccounts     []uint32 `json:"subaccounts,omitempty"`
	CanRBF          bool     `json:"can_rbf"`
	HasBeenReplaced bool     `json:"has_been_replaced"`
	Hex             *string  `json:"hex,omitempty"`
}

// TransactionList is one page of wallet transactions.
type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
	More         bool          `json:"more"`
	NextPage     *string       `json:"next_page,omitempty"`
}

// GetTransactionsParams selects the transactions returned by
// GetTransactions.  NextPage continues a previous listing.
type GetTransactionsParams struct {
	Subaccount *uint32 `json:"subaccount,omitempty"`
	First      *uint32 `json:"first,omitempty"`
	Count      *uint32 `json:"count,omitempty"`
	AssetID    *string `json:"asset_id,omitempty"`
	NextPage   *string `json:"next_page,omitempty"`
}

// Addressee is a recipient of a new transaction.
type Addressee struct {
	Address string  `json:"address"`
	Satoshi uint64  `json:"satoshi"`
	AssetID *string `json:"asset_id,omitempty"`
}

// UtxoRef names an output to spend.
type UtxoRef struct {
	TxID string `json:"txid"`
	Vout uint32 `json:"vout"`
}

// NewUtxoRef returns a reference to the output at op.
func NewUtxoRef(op wire.OutPoint) UtxoRef {
	return UtxoRef{TxID: op.Hash.String(), Vout: op.Index}
}

// CreateTransactionRequest describes a transaction for the wallet to build.
type CreateTransactionRequest struct {
	Addressees []Addressee `json:"addressees,omitempty"`

	// FeeRate is in satoshis per vbyte.
	FeeRate    *uint64   `json:"fee_rate,omitempty"`
	Subaccount *uint32   `json:"subaccount,omitempty"`
	SendAll    bool      `json:"send_all"`
	Memo       *string   `json:"memo,omitempty"`
	Utxos      []UtxoRef `json:"utxos,omitempty"`
}

// InputToSign describes the signatures an input requires.
type InputToSign struct {
	Index              uint32     `json:"index"`
	RequiredSignatures uint32     `json:"required_signatures"`
	PubKeys            []string   `json:"pubkeys"`
	Paths              [][]uint32 `json:"paths"`
	Script             string     `json:"script"`
	SigHash            uint32     `json:"sighash"`
}

// CreateTransactionResult is an unsigned transaction built by the wallet.
type CreateTransactionResult struct {
	Transaction    Transaction   `json:"transaction"`
	UnsignedHex    string        `json:"unsigned_hex"`
	InputsToSign   []InputToSign `json:"inputs_to_sign"`
	EstimatedVSize uint32        `json:"estimated_vsize"`
	EstimatedFee   uint64        `json:"estimated_fee"`
}

// SendResult is the outcome of broadcasting a transaction.
type SendResult struct {
	TxHash string `json:"txhash"`
}

// CreateTransactionAsync returns an instance of a type that can be used to get
// the result of the create transaction command at some future time by invoking
// the Receive function on the returned instance.
//
// See CreateTransaction for the blocking version and more details.
func (c *Client) CreateTransactionAsync(ctx context.Context,
	req CreateTransactionRequest) Future[CreateTransactionResult] {

	return queryParams[CreateTransactionResult](
		ctx, c, "create transaction", "create", "transaction", req,
	)
}

// CreateTransaction asks the wallet to select inputs, compute the fee and
// build an unsigned transaction.  Nothing is validated locally.
func (c *Client) CreateTransaction(ctx context.Context,
	req CreateTransactionRequest) (CreateTransactionResult, error) {

	return c.CreateTransactionAsync(ctx, req).Receive()
}

// SendToAddressAsync returns an instance of a type that can be used to get
// the result of the send to-address command at some future time by invoking
// the Receive function on the returned instance.
//
// See SendToAddress for the blocking version and more details.
func (c *Client) SendToAddressAsync(ctx context.Context, address string,
	satoshi uint64, assetID *string) Future[SendResult] {

	var extra []string
	extra = append(extra, address, strconv.FormatUint(satoshi, 10))
	if assetID != nil {
		extra = append(extra, "--asset-id", *assetID)
	}

	return query[SendResult](ctx, c, "send", "send", "to-address", extra...)
}

// SendToAddress builds, signs and broadcasts a payment in one step.  A nil
// assetID pays in the base asset.
func (c *Client) SendToAddress(ctx context.Context, address string,
	satoshi uint64, assetID *string) (SendResult, error) {

	return c.SendToAddressAsync(ctx, address, satoshi, assetID).Receive()
}

// GetTransactionsAsync returns an instance of a type that can be used to get
// the result of the get transactions command at some future time by invoking
// the Receive function on the returned instance.
//
// See GetTransactions for the blocking version and more details.
func (c *Client) GetTransactionsAsync(ctx context.Context,
	params GetTransactionsParams) Future[TransactionList] {

	return queryParams[TransactionList](
		ctx, c, "transactions", "get", "transactions", params,
	)
}

// GetTransactions returns one page of wallet transactions.
func (c *Client) GetTransactions(ctx context.Context,
	params GetTransactionsParams) (TransactionList, error) {

	return c.GetTransactionsAsync(ctx, params).Receive()
}

// GetTransactionDetailsAsync returns an instance of a type that can be used to
// get the result of the get transaction-details command at some future time by
// invoking the Receive function on the returned instance.
//
// See GetTransactionDetails for the blocking version and more details.
func (c *Client) GetTransactionDetailsAsync(ctx context.Context,
	txid string) Future[Transaction] {

	return query[Transaction](
		ctx, c, "transaction details", "get", "transaction-details", txid,
	)
}

// GetTransactionDetails returns the transaction with the given id.
func (c *Client) GetTransactionDetails(ctx context.Context,
	txid string) (Transaction, error) {

	return c.GetTransactionDetailsAsync(ctx, txid).Receive()
}

// SignTransactionAsync returns an instance of a type that can be used to get
// the result of the tx sign command at some future time by invoking the
// Receive function on the returned instance.
//
// See SignTransaction for the blocking version and more details.
func (c *Client) SignTransactionAsync(ctx context.Context,
	tx *PendingTx) Future[*PendingTx] {

	output := c.runner.RunAsync(
		ctx, "tx", "sign", "--file", tx.Path, "--json",
	)
	return newFuture(output, func(stdout string) (*PendingTx, error) {
		// Store the signed form so the file can be broadcast as is.
		err := os.WriteFile(tx.Path, []byte(stdout), 0600)
		if err != nil {
			return nil, greenError(ErrIO, "unable to write signed "+
				"transaction", err)
		}

		log.Debugf("Wrote signed transaction to %s", tx.Path)

		return &PendingTx{Path: tx.Path, JSON: stdout, Signed: true}, nil
	})
}

// SignTransaction has the wallet sign the pending transaction stored at
// tx.Path.  The signed transaction replaces the file contents and is
// returned as a new PendingTx.
func (c *Client) SignTransaction(ctx context.Context,
	tx *PendingTx) (*PendingTx, error) {

	return c.SignTransactionAsync(ctx, tx).Receive()
}

// BroadcastTransactionAsync returns an instance of a type that can be used to
// get the result of the tx send command at some future time by invoking the
// Receive function on the returned instance.
//
// See BroadcastTransaction for the blocking version and more details.
func (c *Client) BroadcastTransactionAsync(ctx context.Context,
	tx *PendingTx) Future[SendResult] {

	if !tx.Signed {
		log.Warnf("Broadcasting transaction %s that was not signed "+
			"through this client", tx.Path)
	}

	return query[SendResult](ctx, c, "send result", "tx", "send",
		"--file", tx.Path)
}

// BroadcastTransaction relays the transaction stored at tx.Path to the
// network.
func (c *Client) BroadcastTransaction(ctx context.Context,
	tx *PendingTx) (SendResult, error) {

	return c.BroadcastTransactionAsync(ctx, tx).Receive()
}
