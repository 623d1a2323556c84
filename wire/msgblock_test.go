// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

// TestBlock tests the MsgBlock API.
func TestBlock(t *testing.T) {
	t.Parallel()

	bh := genesisHeader(t)
	msg := NewMsgBlock(&bh)
	require.Equal(t, bh, msg.Header)
	require.Empty(t, msg.Transactions)

	tx := genesisCoinbaseTx
	msg.AddTransaction(&tx)
	require.Len(t, msg.Transactions, 1)
	require.Equal(t, []chainhash.Hash{tx.TxHash()}, msg.TxHashes())

	msg.ClearTransactions()
	require.Empty(t, msg.Transactions)
}

// TestBlockHash ensures the block hash is the header hash.
func TestBlockHash(t *testing.T) {
	t.Parallel()

	bh := genesisHeader(t)
	msg := NewMsgBlock(&bh)
	require.Equal(t, bh.BlockHash(), msg.BlockHash())
}

// TestBlockSerialize tests MsgBlock serialize and deserialize of the genesis
// block along with a block carrying a witness transaction.
func TestBlockSerialize(t *testing.T) {
	t.Parallel()

	bh := genesisHeader(t)

	genesis := NewMsgBlock(&bh)
	genesis.AddTransaction(&genesisCoinbaseTx)

	withWitness := NewMsgBlock(&bh)
	withWitness.AddTransaction(&genesisCoinbaseTx)
	withWitness.AddTransaction(witnessTx())

	tests := []struct {
		name string
		in   *MsgBlock
		size int
	}{
		{"genesis", genesis, 285},
		{"witness", withWitness, 285 + witnessTx().SerializeSize()},
	}

	for _, test := range tests {
		encoded, err := test.in.Bytes()
		require.NoError(t, err, test.name)
		require.Len(t, encoded, test.size, test.name)
		require.Equal(t, test.size, test.in.SerializeSize(), test.name)

		var got MsgBlock
		err = got.Deserialize(bytes.NewReader(encoded))
		require.NoError(t, err, test.name)
		require.Equal(t, test.in.BlockHash(), got.BlockHash(), test.name)
		require.Equal(t, test.in.TxHashes(), got.TxHashes(), test.name)

		reencoded, err := got.Bytes()
		require.NoError(t, err, test.name)
		require.Equal(t, encoded, reencoded, test.name)
	}
}

// TestBlockOverflowErrors ensures a block claiming more transactions than
// can fit is rejected before any are read.
func TestBlockOverflowErrors(t *testing.T) {
	t.Parallel()

	bh := genesisHeader(t)
	var buf bytes.Buffer
	require.NoError(t, bh.Serialize(&buf))
	buf.Write([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})

	var msg MsgBlock
	err := msg.Deserialize(&buf)
	require.True(t, IsErrorCode(err, ErrTooLarge), "unexpected error %v", err)
}
