// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package green

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrIO indicates the external CLI could not be spawned, or its output
	// could not be read at the OS level.  The Err field holds the
	// underlying OS error.
	ErrIO ErrorCode = iota

	// ErrJSON indicates a request could not be encoded, or a response did
	// not decode into the expected structure.  The Err field holds the
	// encoding/json error.
	ErrJSON

	// ErrCLI indicates the external CLI ran and exited with a non-zero
	// status.  The Stderr field holds its standard error verbatim.
	ErrCLI

	// ErrTimeout indicates the caller's deadline passed while the external
	// CLI was running.  The subprocess is killed.
	ErrTimeout

	// ErrCanceled indicates the caller canceled the context while the
	// external CLI was running.  The subprocess is killed.
	ErrCanceled

	// ErrNetwork is reserved for network failures reported by callers
	// layering on top of this package.
	ErrNetwork

	// ErrInvalidResponse indicates a response that decoded but cannot be
	// used, such as a malformed transaction hash.
	ErrInvalidResponse

	// ErrUnexpected is a catch-all for anything else.
	ErrUnexpected
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrIO:              "ErrIO",
	ErrJSON:            "ErrJSON",
	ErrCLI:             "ErrCLI",
	ErrTimeout:         "ErrTimeout",
	ErrCanceled:        "ErrCanceled",
	ErrNetwork:         "ErrNetwork",
	ErrInvalidResponse: "ErrInvalidResponse",
	ErrUnexpected:      "ErrUnexpected",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error provides a single type for errors that can happen while talking to
// the external wallet CLI.  It is similar to wtxmgr.TxStoreError.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Stderr      string    // Standard error of the CLI, set for ErrCLI
	Err         error     // Underlying error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	switch {
	case e.ErrorCode == ErrCLI:
		return e.Description + ": " + e.Stderr
	case e.Err != nil:
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying error, if any.
func (e Error) Unwrap() error {
	return e.Err
}

// greenError creates an Error given a set of arguments.
func greenError(c ErrorCode, desc string, err error) Error {
	return Error{ErrorCode: c, Description: desc, Err: err}
}

// cliError creates an ErrCLI Error carrying the CLI's standard error.
func cliError(stderr string) Error {
	return Error{
		ErrorCode:   ErrCLI,
		Description: "CLI error",
		Stderr:      stderr,
	}
}

// IsErrorCode returns whether err is an Error, possibly wrapped, with a
// matching error code.
func IsErrorCode(err error, c ErrorCode) bool {
	var e Error
	return errors.As(err, &e) && e.ErrorCode == c
}
