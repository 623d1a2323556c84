// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"fmt"
)

const (
	// defaultScriptAlloc is the default number of terms used for the backing
	// array for a script being built by the ScriptBuilder.  The array will
	// dynamically grow as needed, but this figure is intended to provide
	// enough space for vast majority of scripts without needing to grow the
	// backing array multiple times.
	defaultScriptAlloc = 16

	// maxPushData4Len is one past the largest length OP_PUSHDATA4 can
	// announce.
	maxPushData4Len = 1 << 40

	// maxPushData2Len is one past the largest length OP_PUSHDATA2 can
	// announce.
	maxPushData2Len = 1 << 24
)

// ScriptBuilder provides a facility for building custom scripts.  It allows
// you to push opcodes and data while keeping every push opcode consistent with
// the data that follows it.  It does not ensure the script will execute
// correctly.
//
// For example, the following would build a pay-to-pubkey-hash script:
//
//	builder := txscript.NewScriptBuilder()
//	builder.AddOp(txscript.OP_DUP).AddOp(txscript.OP_HASH160)
//	builder.AddData(pubKeyHash).AddOp(txscript.OP_EQUALVERIFY)
//	builder.AddOp(txscript.OP_CHECKSIG)
//	script, err := builder.Script()
//	if err != nil {
//		// Handle the error.
//		return
//	}
//	fmt.Printf("Final pay-to-pubkey-hash script: %x\n", script)
type ScriptBuilder struct {
	terms Script
	err   error
}

// AddOp pushes the opcode identified by the passed tag byte to the end of the
// script.  Tags of push opcodes are rejected since they must be paired with
// data; use AddData for those.
func (b *ScriptBuilder) AddOp(opcode byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	op, err := OpcodeFromByte(opcode)
	if err != nil {
		b.err = err
		return b
	}
	return b.AddOpcode(op)
}

// AddOps pushes the opcodes identified by the passed tag bytes to the end of
// the script.
func (b *ScriptBuilder) AddOps(opcodes []byte) *ScriptBuilder {
	for _, opcode := range opcodes {
		b.AddOp(opcode)
	}
	return b
}

// AddOpcode pushes the passed opcode to the end of the script.  Push opcodes
// are rejected since they must be paired with data; use AddData for those.
func (b *ScriptBuilder) AddOpcode(op Opcode) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	if op.IsPush() {
		str := fmt.Sprintf("push opcode %s can not be added without "+
			"its data", op.Name())
		b.err = scriptError(ErrUnencodablePush, str)
		return b
	}
	if _, err := op.Byte(); err != nil {
		b.err = err
		return b
	}

	b.terms = append(b.terms, Instruction{Opcode: op})
	return b
}

// pushOpcodeFor returns the push opcode that announces exactly dataLen bytes.
// Lengths of 256 and above can only be announced when they are a multiple of
// 256, since the OP_PUSHDATA2 and OP_PUSHDATA4 length bytes are read with a
// trailing eight bit shift.
func pushOpcodeFor(dataLen uint64) (Opcode, error) {
	switch {
	case dataLen == 0:
		return PushData2([2]byte{}), nil

	case dataLen <= OP_DATA_75:
		return PushBytes(byte(dataLen)), nil

	case dataLen <= 0xff:
		return PushData1(byte(dataLen)), nil

	case dataLen%256 == 0 && dataLen < maxPushData2Len:
		return PushData2([2]byte{
			byte(dataLen >> 16), byte(dataLen >> 8),
		}), nil

	case dataLen%256 == 0 && dataLen < maxPushData4Len:
		return PushData4([4]byte{
			byte(dataLen >> 32), byte(dataLen >> 24),
			byte(dataLen >> 16), byte(dataLen >> 8),
		}), nil
	}

	str := fmt.Sprintf("no push opcode can announce %d bytes", dataLen)
	return Opcode{}, scriptError(ErrUnencodablePush, str)
}

// AddData pushes a copy of the passed data to the end of the script preceded
// by the push opcode announcing its length.  A zero length buffer is announced
// with an OP_PUSHDATA2 of length zero, which is the only push that decodes to
// empty data.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	op, err := pushOpcodeFor(uint64(len(data)))
	if err != nil {
		b.err = err
		return b
	}

	b.terms = append(b.terms, Instruction{Opcode: op},
		Data(bytes.Clone(data)))
	return b
}

// Reset resets the script so it has no content.
func (b *ScriptBuilder) Reset() *ScriptBuilder {
	b.terms = b.terms[0:0]
	b.err = nil
	return b
}

// Terms returns the currently built script as terms.  If any errors occurred
// while building the script, the script will be returned up the point of the
// first error along with the error.
func (b *ScriptBuilder) Terms() (Script, error) {
	return b.terms, b.err
}

// Script returns the currently built script encoded.  If any errors occurred
// while building the script, the encoding of the terms up the point of the
// first error is returned along with the error.
func (b *ScriptBuilder) Script() ([]byte, error) {
	script, err := b.terms.Bytes()
	if err != nil {
		return nil, err
	}
	return script, b.err
}

// NewScriptBuilder returns a new instance of a script builder.  See
// ScriptBuilder for details.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{
		terms: make(Script, 0, defaultScriptAlloc),
	}
}
