// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package wire implements the byte layouts that carry scripts.

At the base is the CompactSize integer: a single byte for values up to 252,
otherwise one of the markers 0xfd, 0xfe or 0xff followed by a 2, 4 or 8 byte
little-endian value.  EncodeCompactSize and DecodeCompactSize work on complete
encodings, while ReadVarInt and WriteVarInt work on streams.

# Transactions and Blocks

MsgTx, BlockHeader and MsgBlock serialize transactions and blocks.  Script
fields are stored as raw bytes prefixed with their CompactSize length and are
decoded into terms by the txscript package.

# Errors

Errors returned by this package are either the raw errors provided by
underlying calls to read/write from streams such as io.EOF and
io.ErrUnexpectedEOF, or of type MessageError.  This allows the caller to
differentiate between general IO errors and malformed data.
*/
package wire
