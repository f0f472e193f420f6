// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package green

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestParseUtxoRef checks the accepted input spellings.
func TestParseUtxoRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want UtxoRef
	}{
		{"abcd:1", UtxoRef{TxID: "abcd", Vout: 1}},
		{"abcd:0", UtxoRef{TxID: "abcd"}},
		{"abcd", UtxoRef{TxID: "abcd"}},
		{"abcd:x", UtxoRef{TxID: "abcd:x"}},
		{"abcd:-1", UtxoRef{TxID: "abcd:-1"}},
		{"ab:cd:7", UtxoRef{TxID: "ab:cd", Vout: 7}},
		{"", UtxoRef{}},
	}

	for _, test := range tests {
		require.Equal(t, test.want, ParseUtxoRef(test.in), test.in)
	}
}

// TestTxBuilder checks the request assembled by the builder.  Nothing is
// validated, so duplicates and zero values pass through.
func TestTxBuilder(t *testing.T) {
	t.Parallel()

	req := NewTxBuilder().
		AddOutput("bc1qone", 1000).
		AddOutput("bc1qone", 0).
		AddAssetOutput("lq1qtwo", 50, "L-USDT").
		AddInput("ff:2").
		AddInput("ff:2").
		SetFeeRate(3).
		SetSubaccount(1).
		SetMemo("rent").
		Build()

	usdt := "L-USDT"
	require.Equal(t, CreateTransactionRequest{
		Addressees: []Addressee{
			{Address: "bc1qone", Satoshi: 1000},
			{Address: "bc1qone"},
			{Address: "lq1qtwo", Satoshi: 50, AssetID: &usdt},
		},
		FeeRate:    u64(3),
		Subaccount: u32(1),
		Memo:       str("rent"),
		Utxos: []UtxoRef{
			{TxID: "ff", Vout: 2},
			{TxID: "ff", Vout: 2},
		},
	}, req)

	b, err := json.Marshal(NewTxBuilder().SetSendAll(true).Build())
	require.NoError(t, err)
	require.JSONEq(t, `{"send_all":true}`, string(b))
}

// TestPendingTxLifecycle dumps a request, signs it through a mocked CLI and
// broadcasts it.
func TestPendingTxLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	pending, err := NewTxBuilder().AddOutput("bc1qdest", 1000).Dump(dir)
	require.NoError(t, err)
	require.Equal(t, dir, filepath.Dir(pending.Path))
	require.False(t, pending.Signed)

	contents, err := os.ReadFile(pending.Path)
	require.NoError(t, err)
	require.Equal(t, pending.JSON, string(contents))
	require.JSONEq(t, `{"addressees":[{"address":"bc1qdest",`+
		`"satoshi":1000}],"send_all":false}`, pending.JSON)

	client, runner := testClientWithMock(t)

	signedJSON := `{"transaction":"0200aa","is_signed":true}`
	runner.On("RunAsync", []string{
		"tx", "sign", "--file", pending.Path, "--json",
	}).Return(signedJSON, nil)
	runner.On("RunAsync", []string{
		"tx", "send", "--file", pending.Path, "--json",
	}).Return(`{"txhash":"cafe"}`, nil)

	signed, err := client.SignTransaction(ctx, pending)
	require.NoError(t, err)
	require.True(t, signed.Signed)
	require.Equal(t, pending.Path, signed.Path)
	require.Equal(t, signedJSON, signed.JSON)

	contents, err = os.ReadFile(pending.Path)
	require.NoError(t, err)
	require.Equal(t, signedJSON, string(contents))

	result, err := client.BroadcastTransaction(ctx, signed)
	require.NoError(t, err)
	require.Equal(t, "cafe", result.TxHash)

	require.NoError(t, signed.Remove())
	require.NoFileExists(t, signed.Path)
	require.NoError(t, signed.Remove())
}

// TestSignFailureKeepsFile checks that a failed signing leaves the request
// file untouched.
func TestSignFailureKeepsFile(t *testing.T) {
	t.Parallel()

	pending, err := NewTxBuilder().AddOutput("bc1qdest", 1).Dump(t.TempDir())
	require.NoError(t, err)

	client, runner := testClientWithMock(t)
	runner.On("RunAsync", mock.Anything).Return(
		"", cliError("Insufficient funds"),
	)

	_, err = client.SignTransaction(context.Background(), pending)
	require.True(t, IsErrorCode(err, ErrCLI))

	contents, err := os.ReadFile(pending.Path)
	require.NoError(t, err)
	require.Equal(t, pending.JSON, string(contents))
}

// TestDumpBadDir checks that an unusable directory is an I/O error.
func TestDumpBadDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "missing")
	_, err := NewTxBuilder().Dump(dir)
	require.True(t, IsErrorCode(err, ErrIO))
}
