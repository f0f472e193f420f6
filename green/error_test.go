// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package green

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestErrorCodeStringer tests the stringized output for the ErrorCode type.
func TestErrorCodeStringer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   ErrorCode
		want string
	}{
		{ErrIO, "ErrIO"},
		{ErrJSON, "ErrJSON"},
		{ErrCLI, "ErrCLI"},
		{ErrTimeout, "ErrTimeout"},
		{ErrCanceled, "ErrCanceled"},
		{ErrNetwork, "ErrNetwork"},
		{ErrInvalidResponse, "ErrInvalidResponse"},
		{ErrUnexpected, "ErrUnexpected"},
		{0xffff, "Unknown ErrorCode (65535)"},
	}

	// Detect additional error codes that don't have the stringer added.
	require.Len(t, errorCodeStrings, len(tests)-1)

	for i, test := range tests {
		require.Equal(t, test.want, test.in.String(), "#%d", i)
	}
}

// TestError tests the error output for the Error type.
func TestError(t *testing.T) {
	t.Parallel()

	cause := errors.New("exec: \"green-cli\": executable file not found")

	tests := []struct {
		in   Error
		want string
	}{
		{
			greenError(ErrUnexpected, "something went wrong", nil),
			"something went wrong",
		},
		{
			greenError(ErrIO, "unable to run green-cli", cause),
			"unable to run green-cli: " + cause.Error(),
		},
		{
			cliError("Wallet locked"),
			"CLI error: Wallet locked",
		},
	}

	for i, test := range tests {
		require.Equal(t, test.want, test.in.Error(), "#%d", i)
	}
}

// TestIsErrorCode checks matching of wrapped errors by code.
func TestIsErrorCode(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetching utxos: %w", cliError("Wallet locked"))
	require.True(t, IsErrorCode(err, ErrCLI))
	require.False(t, IsErrorCode(err, ErrJSON))
	require.False(t, IsErrorCode(errors.New("plain"), ErrCLI))
	require.False(t, IsErrorCode(nil, ErrCLI))

	var e Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, "Wallet locked", e.Stderr)
}

// TestContextError checks that context errors map to the timeout and
// cancellation codes and keep the cause.
func TestContextError(t *testing.T) {
	t.Parallel()

	err := contextError(context.DeadlineExceeded)
	require.Equal(t, ErrTimeout, err.ErrorCode)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	err = contextError(context.Canceled)
	require.Equal(t, ErrCanceled, err.ErrorCode)
	require.ErrorIs(t, err, context.Canceled)
}
