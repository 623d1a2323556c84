// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/ripemd160"
)

// Term is a single element of a parsed script: either an Instruction or the
// Data announced by the push instruction in front of it.
type Term interface {
	// isTerm restricts implementations to this package.
	isTerm()

	fmt.Stringer
}

// Instruction is a script term that holds an opcode.
type Instruction struct {
	Opcode Opcode
}

func (Instruction) isTerm() {}

// String returns the mnemonic of the opcode.
func (i Instruction) String() string {
	return i.Opcode.Name()
}

// Data is a script term that holds raw bytes pushed by the preceding
// instruction.
type Data []byte

func (Data) isTerm() {}

// String returns the data hex encoded.
func (d Data) String() string {
	return hex.EncodeToString(d)
}

// Script is an ordered sequence of terms.  The order of the terms is exactly
// the order of their bytes on the wire.
type Script []Term

// ParseScript decodes a raw script into its terms.  Every push opcode is
// followed by a Data term holding the bytes it announces.  No partial script
// is returned on failure.
func ParseScript(script []byte) (Script, error) {
	terms := make(Script, 0, len(script))
	tokenizer := MakeScriptTokenizer(script)
	for tokenizer.Next() {
		op := tokenizer.Opcode()
		terms = append(terms, Instruction{Opcode: op})
		if op.IsPush() {
			terms = append(terms, Data(bytes.Clone(tokenizer.Data())))
		}
	}
	if err := tokenizer.Err(); err != nil {
		log.Debugf("Failed to parse script %x: %v", script, err)
		return nil, err
	}
	return terms, nil
}

// Bytes encodes the script.  Length descriptors of OP_PUSHDATA# opcodes are
// written exactly as stored and are not derived from the data that follows
// them.
func (s Script) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	for _, term := range s {
		switch t := term.(type) {
		case Instruction:
			b, err := t.Opcode.Byte()
			if err != nil {
				return nil, err
			}
			buf.WriteByte(b)
			buf.Write(t.Opcode.LengthDescriptor())

		case Data:
			buf.Write(t)

		default:
			str := fmt.Sprintf("unknown script term %T", term)
			return nil, scriptError(ErrInternal, str)
		}
	}
	return buf.Bytes(), nil
}

// String returns a one line disassembly of the script with terms separated by
// a single space.
func (s Script) String() string {
	var buf strings.Builder
	for i, term := range s {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(term.String())
	}
	return buf.String()
}

// DisasmString formats a disassembled script for one line printing.  When the
// script fails to parse, the returned string will contain the disassembly up to
// the point the failure occurred along with the string '[error]' appended.  In
// addition, the reason the script failed to parse is returned if the caller
// wants more information about the failure.
func DisasmString(script []byte) (string, error) {
	var disbuf strings.Builder
	tokenizer := MakeScriptTokenizer(script)
	if tokenizer.Next() {
		disasmOpcode(&disbuf, tokenizer.Opcode(), tokenizer.Data())
	}
	for tokenizer.Next() {
		disbuf.WriteByte(' ')
		disasmOpcode(&disbuf, tokenizer.Opcode(), tokenizer.Data())
	}
	if tokenizer.Err() != nil {
		if tokenizer.ByteIndex() != 0 {
			disbuf.WriteByte(' ')
		}
		disbuf.WriteString("[error]")
	}
	return disbuf.String(), tokenizer.Err()
}

// disasmOpcode writes a human-readable disassembly of the provided opcode and
// data into the provided buffer.
func disasmOpcode(buf *strings.Builder, op Opcode, data []byte) {
	buf.WriteString(op.Name())
	if op.IsPush() {
		buf.WriteByte(' ')
		buf.WriteString(hex.EncodeToString(data))
	}
}

// calcHash hashes buf with hasher.
func calcHash(buf []byte, hasher hash.Hash) []byte {
	hasher.Write(buf)
	return hasher.Sum(nil)
}

// hash160 returns the RIPEMD160 hash of the SHA-256 HASH of the given data.
func hash160(data []byte) []byte {
	h := sha256.Sum256(data)
	return calcHash(h[:], ripemd160.New())
}
