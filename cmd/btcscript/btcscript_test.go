// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcscript/txscript"
	"github.com/btcsuite/btcscript/wire"
	"github.com/stretchr/testify/require"
)

const (
	// testAddr is a mainnet pay-to-pubkey-hash address.
	testAddr = "18p3G8gQ3oKy4U9EqnWs7UZswdqAMhE3r8"

	// testAddrScript is the locking script paying to testAddr.
	testAddrScript = "76a91455ae51684c43435da751ac8d2173b2652eb6410588ac"

	// emptyHashCheck is a script checking that the single stack item hashes
	// to HASH160 of the empty string.
	emptyHashCheck = "a914b472a266d0bd89c13706a4132ccfb16f7c3b9fcb88"
)

// runWith runs the tool with the given configuration and returns its output.
func runWith(t *testing.T, cfg *config) (string, error) {
	var out strings.Builder
	err := run(cfg, &out)
	return out.String(), err
}

// TestRunScript ensures scripts are decoded and executed.
func TestRunScript(t *testing.T) {
	t.Parallel()

	out, err := runWith(t, &config{Script: emptyHashCheck})
	require.NoError(t, err)
	require.Contains(t, out, "script hex: "+emptyHashCheck)
	require.Contains(t, out, "OP_HASH160")
	require.Contains(t, out, "OP_EQUALVERIFY")
	require.Contains(t, out, "script terms: 4")
	require.NotContains(t, out, "verdict")

	out, err = runWith(t, &config{
		Script:  emptyHashCheck,
		Execute: true,
		stack:   [][]byte{{}},
	})
	require.NoError(t, err)
	require.Contains(t, out, "verdict: true")

	out, err = runWith(t, &config{
		Script:  emptyHashCheck,
		Execute: true,
		stack:   [][]byte{{0x01}},
	})
	require.NoError(t, err)
	require.Contains(t, out, "verdict: false")
}

// TestRunScriptErrors ensures malformed input and unsupported opcodes are
// reported as errors while a failed hash check is only a false verdict.
func TestRunScriptErrors(t *testing.T) {
	t.Parallel()

	_, err := runWith(t, &config{Script: "zz"})
	require.Error(t, err)

	_, err = runWith(t, &config{Script: "4c"})
	require.True(t, txscript.IsErrorCode(err, txscript.ErrMalformedPush))

	_, err = runWith(t, &config{Script: "ac", Execute: true})
	require.True(t, txscript.IsErrorCode(err, txscript.ErrUnsupportedOpcode))

	// A key that does not hash to the committed hash fails at
	// OP_EQUALVERIFY before OP_CHECKSIG is reached.
	out, err := runWith(t, &config{Script: testAddrScript, Execute: true,
		stack: [][]byte{{0x01}}})
	require.NoError(t, err)
	require.Contains(t, out, "verdict: false")
}

// TestRunAddress ensures a locking script is built for an address.
func TestRunAddress(t *testing.T) {
	t.Parallel()

	out, err := runWith(t, &config{Address: testAddr})
	require.NoError(t, err)
	require.Contains(t, out, "script hex: "+testAddrScript)
	require.Contains(t, out, "script address: "+testAddr)

	_, err = runWith(t, &config{Address: "1111"})
	require.True(t, txscript.IsErrorCode(err, txscript.ErrUnsupportedAddress))
}

// TestRunTx ensures the scripts of a transaction are described.
func TestRunTx(t *testing.T) {
	t.Parallel()

	pkScript, err := hex.DecodeString(testAddrScript)
	require.NoError(t, err)

	tx := wire.NewMsgTx(1)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{0x01}, 0),
		[]byte{0x51}, [][]byte{{0xde, 0xad}}))
	tx.AddTxOut(wire.NewTxOut(5000, pkScript))
	rawTx, err := tx.Bytes()
	require.NoError(t, err)

	out, err := runWith(t, &config{Tx: hex.EncodeToString(rawTx)})
	require.NoError(t, err)
	require.Contains(t, out, "txid: "+tx.TxHash().String())
	require.Contains(t, out, "wtxid: "+tx.WitnessHash().String())
	require.Contains(t, out, "input 0 sigscript asm: OP_1")
	require.Contains(t, out, "input 0 witness 0: dead")
	require.Contains(t, out, "output 0 value: 5000")
	require.Contains(t, out, "output 0 pkscript address: "+testAddr)

	_, err = runWith(t, &config{Tx: "0100"})
	require.Error(t, err)
}
