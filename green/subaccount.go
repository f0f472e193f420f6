// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package green

import (
	"context"
)

// Subaccount is an account within the wallet.
type Subaccount struct {
	Pointer uint32 `json:"pointer"`
	Name    string `json:"name"`

	// Type is the signing arrangement, such as "2of2" or "2of3".
	Type string `json:"type"`

	RecoveryMnemonic *string `json:"recovery_mnemonic,omitempty"`
	RecoveryXpub     *string `json:"recovery_xpub,omitempty"`
	RequiredCA       uint32  `json:"required_ca"`
	AvailableCA      uint32  `json:"available_ca"`
	Hidden           bool    `json:"hidden"`
	Bip44Discovered  *bool   `json:"bip44_discovered,omitempty"`
}

// SubaccountList is the response of get subaccounts.
type SubaccountList struct {
	Subaccounts []Subaccount `json:"subaccounts"`
}

// CreateSubaccountParams describes a subaccount to create.  The recovery
// fields only apply to 2of3 subaccounts.
type CreateSubaccountParams struct {
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	RecoveryMnemonic *string `json:"recovery_mnemonic,omitempty"`
	RecoveryXpub     *string `json:"recovery_xpub,omitempty"`
}

// UpdateSubaccountParams holds the subaccount fields to change.  Unset
// fields are left as they are.
type UpdateSubaccountParams struct {
	Name   *string `json:"name,omitempty"`
	Hidden *bool   `json:"hidden,omitempty"`
}

// GetSubaccountsAsync returns an instance of a type that can be used to get
// the result of the get subaccounts command at some future time by invoking
// the Receive function on the returned instance.
//
// See GetSubaccounts for the blocking version and more details.
func (c *Client) GetSubaccountsAsync(ctx context.Context) Future[[]Subaccount] {
	list := query[SubaccountList](
		ctx, c, "subaccounts", "get", "subaccounts",
	)
	return newFuture(list.output, func(stdout string) ([]Subaccount, error) {
		resp, err := list.decode(stdout)
		if err != nil {
			return nil, err
		}
		return resp.Subaccounts, nil
	})
}

// GetSubaccounts lists every subaccount of the wallet.
func (c *Client) GetSubaccounts(ctx context.Context) ([]Subaccount, error) {
	return c.GetSubaccountsAsync(ctx).Receive()
}

// GetSubaccountAsync returns an instance of a type that can be used to get the
// result of the get subaccount command at some future time by invoking the
// Receive function on the returned instance.
//
// See GetSubaccount for the blocking version and more details.
func (c *Client) GetSubaccountAsync(ctx context.Context,
	pointer uint32) Future[Subaccount] {

	return query[Subaccount](
		ctx, c, "subaccount", "get", "subaccount",
		"--subaccount", pointerArg(pointer),
	)
}

// GetSubaccount returns the subaccount at pointer.
func (c *Client) GetSubaccount(ctx context.Context,
	pointer uint32) (Subaccount, error) {

	return c.GetSubaccountAsync(ctx, pointer).Receive()
}

// CreateSubaccountAsync returns an instance of a type that can be used to get
// the result of the create subaccount command at some future time by invoking
// the Receive function on the returned instance.
//
// See CreateSubaccount for the blocking version and more details.
func (c *Client) CreateSubaccountAsync(ctx context.Context,
	params CreateSubaccountParams) Future[Subaccount] {

	return queryParams[Subaccount](
		ctx, c, "subaccount", "create", "subaccount", params,
	)
}

// CreateSubaccount creates a subaccount and returns it as stored by the
// wallet.
func (c *Client) CreateSubaccount(ctx context.Context,
	params CreateSubaccountParams) (Subaccount, error) {

	return c.CreateSubaccountAsync(ctx, params).Receive()
}

// UpdateSubaccountAsync returns an instance of a type that can be used to get
// the result of the update subaccount command at some future time by invoking
// the Receive function on the returned instance.
//
// See UpdateSubaccount for the blocking version and more details.
func (c *Client) UpdateSubaccountAsync(ctx context.Context, pointer uint32,
	params UpdateSubaccountParams) Future[Subaccount] {

	return queryParams[Subaccount](
		ctx, c, "subaccount", "update", "subaccount", params,
		"--subaccount", pointerArg(pointer),
	)
}

// UpdateSubaccount renames or hides the subaccount at pointer.
func (c *Client) UpdateSubaccount(ctx context.Context, pointer uint32,
	params UpdateSubaccountParams) (Subaccount, error) {

	return c.UpdateSubaccountAsync(ctx, pointer, params).Receive()
}
