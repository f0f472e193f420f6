// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package green_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/btcsuite/greenwallet/green"
	"github.com/btcsuite/greenwallet/greentest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunnerSuccess checks that stdout is returned verbatim and the argument
// vector reaches the CLI untouched.
func TestRunnerSuccess(t *testing.T) {
	t.Parallel()

	h := greentest.New(t)
	h.Script("get", "balance", greentest.Reply{Stdout: `{"btc":1}`})

	runner := green.NewRunner(h.Config())
	require.Equal(t, h.Path(), runner.Path())

	args := []string{"get", "balance", "--note", "two words; $HOME", "--json"}
	stdout, err := runner.Run(context.Background(), args...)
	require.NoError(t, err)
	require.Equal(t, `{"btc":1}`, stdout)
	require.Equal(t, args, h.LastArgs())
}

// TestRunnerEnvironment checks the fixed logging variables and that extra
// entries reach the CLI without displacing them.
func TestRunnerEnvironment(t *testing.T) {
	t.Parallel()

	h := greentest.New(t)
	h.Script("get", "balance", greentest.Reply{Stdout: "{}"})

	runner := green.NewRunner(h.Config(
		"GREEN_TEST_NETWORK=testnet", "GREEN_CLI_L=overridden",
	))
	_, err := runner.Run(context.Background(), "get", "balance", "--json")
	require.NoError(t, err)

	tests := []struct {
		key  string
		want string
	}{
		{"GREEN_CLI_L", "-L"},
		{"GREEN_CLI_T", "-T"},
		{"GREEN_TEST_NETWORK", "testnet"},
	}
	for _, test := range tests {
		value, ok := h.LastEnv(test.key)
		require.True(t, ok, test.key)
		require.Equal(t, test.want, value, test.key)
	}
}

// TestRunnerFailures checks the error returned for each way an invocation
// can fail.
func TestRunnerFailures(t *testing.T) {
	t.Parallel()

	h := greentest.New(t)
	h.Script("get", "utxos", greentest.Reply{
		Stderr:   "Wallet locked",
		ExitCode: 1,
	})
	h.Script("get", "balance", greentest.Reply{
		Stdout:   `{"btc":1}`,
		Stderr:   "partial \xff output",
		ExitCode: 3,
	})

	ctx := context.Background()
	runner := green.NewRunner(h.Config())

	_, err := runner.Run(ctx, "get", "utxos", "--params", "{}", "--json")
	require.True(t, green.IsErrorCode(err, green.ErrCLI))
	var e green.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, "Wallet locked", e.Stderr)
	require.Equal(t, "CLI error: Wallet locked", err.Error())

	// Invalid UTF-8 on stderr is replaced rather than rejected.
	_, err = runner.Run(ctx, "get", "balance", "--json")
	require.ErrorAs(t, err, &e)
	require.Equal(t, "partial \uFFFD output", e.Stderr)

	missing := green.NewRunner(&green.Config{
		Path: filepath.Join(t.TempDir(), "no-such-cli"),
	})
	_, err = missing.Run(ctx, "get", "balance", "--json")
	require.True(t, green.IsErrorCode(err, green.ErrIO))
}

// TestRunnerCancellation checks that an abandoned invocation is killed and
// reported as a timeout or cancellation.
func TestRunnerCancellation(t *testing.T) {
	t.Parallel()

	h := greentest.New(t)
	h.Hang("get", "utxos", 30*time.Second)
	runner := green.NewRunner(h.Config())

	ctx, cancel := context.WithTimeout(
		context.Background(), 100*time.Millisecond,
	)
	defer cancel()

	start := time.Now()
	_, err := runner.Run(ctx, "get", "utxos", "--json")
	require.True(t, green.IsErrorCode(err, green.ErrTimeout))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 10*time.Second)

	ctx, cancel = context.WithCancel(context.Background())
	future := runner.RunAsync(ctx, "get", "utxos", "--json")
	cancel()
	_, err = future.Receive()
	require.True(t, green.IsErrorCode(err, green.ErrCanceled))
}

// TestClientEndToEnd runs the UTXO pipeline against the stub executable.
func TestClientEndToEnd(t *testing.T) {
	t.Parallel()

	h := greentest.New(t)
	h.Script("get", "utxos", greentest.Reply{
		Stdout: `[{"txhash":"a","vout":0,"satoshi":10,"subaccount":0,` +
			`"pointer":0,"confirmations":2},` +
			`{"txhash":"b","vout":0,"satoshi":20,"subaccount":0,` +
			`"pointer":0},` +
			`{"txhash":"c","vout":0,"satoshi":30,"subaccount":0,` +
			`"pointer":0,"confirmations":1}]`,
	})

	sortBy := green.SortByConfirmations
	groups, err := h.Client().GetUnspentOutputs(
		context.Background(), green.GetUnspentOutputsParams{
			SortBy: &sortBy,
		},
	)
	require.NoError(t, err)
	require.Equal(t, []string{
		"get", "utxos", "--params", `{"sort_by":"confirmations"}`,
		"--json",
	}, h.LastArgs())

	outputs := groups[green.BaseAssetKey]
	require.Len(t, outputs, 3)
	require.Equal(t, "b", outputs[0].TxHash)
	require.Equal(t, "c", outputs[1].TxHash)
	require.Equal(t, "a", outputs[2].TxHash)
}

// TestClientConcurrentCalls checks that concurrent invocations each complete
// with their own result.
func TestClientConcurrentCalls(t *testing.T) {
	t.Parallel()

	h := greentest.New(t)
	h.Script("get", "balance", greentest.Reply{Stdout: `{"btc":5}`})
	h.Script("get", "fee-estimates", greentest.Reply{
		Stdout: `{"fees":{"2":1500}}`,
	})
	client := h.Client()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			balance, err := client.GetBalance(ctx)
			if err == nil {
				assert.Equal(t, green.Balance{"btc": 5}, balance)
			}
			errs <- err
		}()
		go func() {
			defer wg.Done()
			fees, err := client.GetFeeEstimatesAsync(ctx).Receive()
			if err == nil {
				assert.Len(t, fees.Fees, 1)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}
