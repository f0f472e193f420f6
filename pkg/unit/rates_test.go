// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package unit

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/stretchr/testify/require"
)

// TestFeeRateConversions checks that the conversion between the different fee
// rate units is correct.
func TestFeeRateConversions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		kvb          btcutil.Amount
		expectedVB   string
		expectedCeil uint64
	}{
		{
			name:         "whole rate",
			kvb:          1000,
			expectedVB:   "1.00 sat/vb",
			expectedCeil: 1,
		},
		{
			name:         "fractional rate",
			kvb:          1500,
			expectedVB:   "1.50 sat/vb",
			expectedCeil: 2,
		},
		{
			name:         "sub-satoshi rate",
			kvb:          253,
			expectedVB:   "0.25 sat/vb",
			expectedCeil: 1,
		},
		{
			name:         "zero rate",
			kvb:          0,
			expectedVB:   "0.00 sat/vb",
			expectedCeil: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			kvbRate := NewSatPerKVByte(tc.kvb)
			vbRate := kvbRate.FeePerVByte()

			require.Equal(t, tc.expectedVB, vbRate.String())
			require.Equal(t, tc.expectedCeil, vbRate.Ceil())
			require.True(t, kvbRate.Equal(vbRate.FeePerKVByte()))
		})
	}
}

// TestNewSatPerVByte checks the rate derived from a fee and a size.
func TestNewSatPerVByte(t *testing.T) {
	t.Parallel()

	rate := NewSatPerVByte(705, 141)
	require.Equal(t, "5.00 sat/vb", rate.String())
	require.True(t, rate.Equal(NewSatPerKVByte(5000).FeePerVByte()))

	require.Equal(t, "0.00 sat/vb", NewSatPerVByte(705, 0).String())
	require.Equal(t, "141 vb", VByte(141).String())
}

// TestFeeForVSize checks that fees are rounded to the nearest satoshi.
func TestFeeForVSize(t *testing.T) {
	t.Parallel()

	require.EqualValues(t, 141, NewSatPerKVByte(1000).FeeForVSize(141))
	require.EqualValues(t, 212, NewSatPerKVByte(1500).FeeForVSize(141))
	require.EqualValues(t, 36, NewSatPerKVByte(253).FeeForVSize(141))
}
