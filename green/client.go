// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package green

import (
	"context"
	"encoding/json"
	"strconv"
)

// Future is a future promise to deliver the decoded result of a CLI
// invocation (or an applicable error).  It may be received from only once.
type Future[T any] struct {
	output FutureOutput
	decode func(string) (T, error)
}

// Receive waits for the CLI invocation promised by the future and returns the
// decoded result.
func (f Future[T]) Receive() (T, error) {
	stdout, err := f.output.Receive()
	if err != nil {
		var zero T
		return zero, err
	}
	return f.decode(stdout)
}

// newFuture pairs a pending CLI invocation with the decoder for its output.
func newFuture[T any](output FutureOutput,
	decode func(string) (T, error)) Future[T] {

	return Future[T]{output: output, decode: decode}
}

// futureError returns a Future that is already resolved with err.
func futureError[T any](err error) Future[T] {
	return newFuture(newFutureError(err), func(string) (T, error) {
		var zero T
		return zero, nil
	})
}

// decodeJSON returns a decoder that unmarshals standard output into T.  desc
// names the response in error messages.
func decodeJSON[T any](desc string) func(string) (T, error) {
	return func(stdout string) (T, error) {
		var v T
		if err := json.Unmarshal([]byte(stdout), &v); err != nil {
			var zero T
			return zero, greenError(ErrJSON,
				"unable to decode "+desc+" response", err)
		}

		log.Tracef("Decoded %s response: %v", desc, spewClosure(v))

		return v, nil
	}
}

// encodeParams marshals a request value for the --params flag.
func encodeParams(params interface{}) (string, error) {
	b, err := json.Marshal(params)
	if err != nil {
		return "", greenError(ErrJSON, "unable to encode request params",
			err)
	}
	return string(b), nil
}

// Client talks to the external wallet CLI.  Every operation comes in two
// forms: an Async variant that returns a Future immediately and a blocking
// variant that is exactly Async(...).Receive(), so both deliver identical
// results.  Client holds no mutable state and is safe for concurrent use.
type Client struct {
	runner CommandRunner
}

// NewClient returns a Client that invokes the CLI through runner.
func NewClient(runner CommandRunner) *Client {
	return &Client{runner: runner}
}

// New returns a Client that launches the CLI described by cfg.
func New(cfg *Config) *Client {
	return NewClient(NewRunner(cfg))
}

// RunCommandAsync runs the CLI with a raw argument vector.
//
// See RunCommand for the blocking version.
func (c *Client) RunCommandAsync(ctx context.Context,
	args ...string) FutureOutput {

	return c.runner.RunAsync(ctx, args...)
}

// RunCommand runs the CLI with a raw argument vector and returns its
// standard output.
func (c *Client) RunCommand(ctx context.Context, args ...string) (string,
	error) {

	return c.RunCommandAsync(ctx, args...).Receive()
}

// query runs verb noun [extra...] --json and decodes the result into T.
func query[T any](ctx context.Context, c *Client, desc, verb, noun string,
	extra ...string) Future[T] {

	args := make([]string, 0, len(extra)+3)
	args = append(args, verb, noun)
	args = append(args, extra...)
	args = append(args, "--json")

	return newFuture(c.runner.RunAsync(ctx, args...), decodeJSON[T](desc))
}

// queryParams is query with the JSON encoding of params passed through
// --params after the extra arguments.
func queryParams[T any](ctx context.Context, c *Client, desc, verb,
	noun string, params interface{}, extra ...string) Future[T] {

	paramsJSON, err := encodeParams(params)
	if err != nil {
		return futureError[T](err)
	}

	extra = append(extra[:len(extra):len(extra)], "--params", paramsJSON)
	return query[T](ctx, c, desc, verb, noun, extra...)
}

// pointerArg formats a subaccount pointer for the --subaccount flag.
func pointerArg(pointer uint32) string {
	return strconv.FormatUint(uint64(pointer), 10)
}
