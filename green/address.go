// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package green

import (
	"context"
)

// ReceiveAddress is an address handed out for receiving funds.
type ReceiveAddress struct {
	Address     string `json:"address"`
	Pointer     uint32 `json:"pointer"`
	AddressType string `json:"address_type"`

	// Branch is 0 for external addresses and 1 for change.
	Branch     uint32 `json:"branch"`
	Subaccount uint32 `json:"subaccount"`

	ScriptPubKey          *string `json:"script_pubkey,omitempty"`
	IsConfidential        *bool   `json:"is_confidential,omitempty"`
	UnconfidentialAddress *string `json:"unconfidential_address,omitempty"`
}

// GetReceiveAddressRequest selects the subaccount and type of a receive
// address.
type GetReceiveAddressRequest struct {
	Subaccount  *uint32 `json:"subaccount,omitempty"`
	AddressType *string `json:"address_type,omitempty"`
}

// GetPreviousAddressesRequest pages through previously generated addresses.
type GetPreviousAddressesRequest struct {
	Subaccount  *uint32 `json:"subaccount,omitempty"`
	LastPointer *uint32 `json:"last_pointer,omitempty"`
	UnusedOnly  *bool   `json:"unused_only,omitempty"`
}

// AddressDetails describes a previously generated address.
type AddressDetails struct {
	Address     string  `json:"address"`
	AddressType string  `json:"address_type"`
	Subaccount  uint32  `json:"subaccount"`
	Pointer     uint32  `json:"pointer"`
	Label       *string `json:"label,omitempty"`
	TxCount     uint32  `json:"tx_count"`
	IsUsed      bool    `json:"is_used"`
}

// PreviousAddresses is one page of previously generated addresses.  A set
// LastPointer is passed back to fetch the next page.
type PreviousAddresses struct {
	List        []AddressDetails `json:"list"`
	LastPointer *uint32          `json:"last_pointer,omitempty"`
}

// ReceiveAddressBuilder assembles a GetReceiveAddressRequest.
type ReceiveAddressBuilder struct {
	req GetReceiveAddressRequest
}

// NewReceiveAddressBuilder returns a builder for a request with no fields
// set.
func NewReceiveAddressBuilder() *ReceiveAddressBuilder {
	return &ReceiveAddressBuilder{}
}

// Subaccount sets the subaccount to derive the address from.
func (b *ReceiveAddressBuilder) Subaccount(
	subaccount uint32) *ReceiveAddressBuilder {

	b.req.Subaccount = &subaccount
	return b
}

// AddressType sets the address type, such as "p2wpkh".
func (b *ReceiveAddressBuilder) AddressType(
	addrType string) *ReceiveAddressBuilder {

	b.req.AddressType = &addrType
	return b
}

// Build returns the assembled request.
func (b *ReceiveAddressBuilder) Build() GetReceiveAddressRequest {
	return b.req
}

// PreviousAddressesBuilder assembles a GetPreviousAddressesRequest.
type PreviousAddressesBuilder struct {
	req GetPreviousAddressesRequest
}

// NewPreviousAddressesBuilder returns a builder for a request with no fields
// set.
func NewPreviousAddressesBuilder() *PreviousAddressesBuilder {
	return &PreviousAddressesBuilder{}
}

// Subaccount lists the addresses of the given subaccount.
func (b *PreviousAddressesBuilder) Subaccount(
	subaccount uint32) *PreviousAddressesBuilder {

	b.req.Subaccount = &subaccount
	return b
}

// LastPointer continues listing after the page that returned pointer.
func (b *PreviousAddressesBuilder) LastPointer(
	pointer uint32) *PreviousAddressesBuilder {

	b.req.LastPointer = &pointer
	return b
}

// UnusedOnly restricts the listing to addresses that never received funds.
func (b *PreviousAddressesBuilder) UnusedOnly(
	unused bool) *PreviousAddressesBuilder {

	b.req.UnusedOnly = &unused
	return b
}

// Build returns the assembled request.
func (b *PreviousAddressesBuilder) Build() GetPreviousAddressesRequest {
	return b.req
}

// GetReceiveAddressAsync returns an instance of a type that can be used to get
// the result of the get receive-address command at some future time by
// invoking the Receive function on the returned instance.
//
// See GetReceiveAddress for the blocking version and more details.
func (c *Client) GetReceiveAddressAsync(ctx context.Context,
	req GetReceiveAddressRequest) Future[ReceiveAddress] {

	return queryParams[ReceiveAddress](
		ctx, c, "receive address", "get", "receive-address", req,
	)
}

// GetReceiveAddress returns the current unused receive address of the
// requested subaccount.  Repeated calls may return the same address.
func (c *Client) GetReceiveAddress(ctx context.Context,
	req GetReceiveAddressRequest) (ReceiveAddress, error) {

	return c.GetReceiveAddressAsync(ctx, req).Receive()
}

// GetNewAddressAsync returns an instance of a type that can be used to get the
// result of the new receive-address command at some future time by invoking
// the Receive function on the returned instance.
//
// See GetNewAddress for the blocking version and more details.
func (c *Client) GetNewAddressAsync(ctx context.Context,
	req GetReceiveAddressRequest) Future[ReceiveAddress] {

	return queryParams[ReceiveAddress](
		ctx, c, "new address", "new", "receive-address", req,
	)
}

// GetNewAddress derives a fresh receive address.
func (c *Client) GetNewAddress(ctx context.Context,
	req GetReceiveAddressRequest) (ReceiveAddress, error) {

	return c.GetNewAddressAsync(ctx, req).Receive()
}

// GetPreviousAddressesAsync returns an instance of a type that can be used to
// get the result of the get previous-addresses command at some future time by
// invoking the Receive function on the returned instance.
//
// See GetPreviousAddresses for the blocking version and more details.
func (c *Client) GetPreviousAddressesAsync(ctx context.Context,
	req GetPreviousAddressesRequest) Future[PreviousAddresses] {

	return queryParams[PreviousAddresses](
		ctx, c, "previous addresses", "get", "previous-addresses", req,
	)
}

// GetPreviousAddresses returns one page of previously generated addresses.
func (c *Client) GetPreviousAddresses(ctx context.Context,
	req GetPreviousAddressesRequest) (PreviousAddresses, error) {

	return c.GetPreviousAddressesAsync(ctx, req).Receive()
}
