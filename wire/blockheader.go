// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// MaxBlockHeaderPayload is the number of bytes a block header can be.
// Version 4 bytes + Timestamp 4 bytes + Bits 4 bytes + Nonce 4 bytes +
// PrevBlock and MerkleRoot hashes.
const MaxBlockHeaderPayload = 16 + (chainhash.HashSize * 2)

// BlockHeader defines information about a block and is used in the bitcoin
// block (MsgBlock) message.
type BlockHeader struct {
	// Version of the block.  This is not the same as the protocol version.
	Version int32

	// Hash of the previous block header in the block chain.
	PrevBlock chainhash.Hash

	// Merkle tree reference to hash of all transactions for the block.
	MerkleRoot chainhash.Hash

	// Time the block was created.  This is, unfortunately, encoded as a
	// uint32 on the wire and therefore is limited to 2106.
	Timestamp time.Time

	// Difficulty target for the block.
	Bits uint32

	// Nonce used to generate the block.
	Nonce uint32
}

// BlockHash computes the block identifier hash for the given block header.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	// Encode the header and double sha256 everything prior to the number
	// of transactions.  Ignore the error returns since there is no way the
	// encode could fail except being out of memory which would cause a
	// run-time panic.
	buf := bytes.NewBuffer(make([]byte, 0, MaxBlockHeaderPayload))
	_ = writeBlockHeader(buf, h)

	return chainhash.DoubleHashH(buf.Bytes())
}

// Deserialize decodes a block header from r into the receiver.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	return readBlockHeader(r, h)
}

// Serialize encodes a block header from r into the receiver.
func (h *BlockHeader) Serialize(w io.Writer) error {
	return writeBlockHeader(w, h)
}

// NewBlockHeader returns a new BlockHeader using the provided version, previous
// block hash, merkle root hash, difficulty bits, and nonce used to generate the
// block with defaults for the remaining fields.
func NewBlockHeader(version int32, prevHash, merkleRootHash *chainhash.Hash,
	bits uint32, nonce uint32) *BlockHeader {

	// Limit the timestamp to one second precision since the protocol
	// doesn't support better.
	return &BlockHeader{
		Version:    version,
		PrevBlock:  *prevHash,
		MerkleRoot: *merkleRootHash,
		Timestamp:  time.Unix(time.Now().Unix(), 0),
		Bits:       bits,
		Nonce:      nonce,
	}
}

// readBlockHeader reads a bitcoin block header from r.
func readBlockHeader(r io.Reader, bh *BlockHeader) error {
	version, err := readUint32(r)
	if err != nil {
		return err
	}
	bh.Version = int32(version)

	if _, err := io.ReadFull(r, bh.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, bh.MerkleRoot[:]); err != nil {
		return err
	}

	sec, err := readUint32(r)
	if err != nil {
		return err
	}
	bh.Timestamp = time.Unix(int64(sec), 0)

	if bh.Bits, err = readUint32(r); err != nil {
		return err
	}
	bh.Nonce, err = readUint32(r)
	return err
}

// writeBlockHeader writes a bitcoin block header to w.
func writeBlockHeader(w io.Writer, bh *BlockHeader) error {
	if err := writeUint32(w, uint32(bh.Version)); err != nil {
		return err
	}
	if _, err := w.Write(bh.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := w.Write(bh.MerkleRoot[:]); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(bh.Timestamp.Unix())); err != nil {
		return err
	}
	if err := writeUint32(w, bh.Bits); err != nil {
		return err
	}
	return writeUint32(w, bh.Nonce)
}
