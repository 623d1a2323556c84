// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestScriptBuilderAddOp tests that pushing opcodes to a script via the
// ScriptBuilder API works as expected.
func TestScriptBuilderAddOp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opcodes  []byte
		expected []byte
	}{
		{
			name:     "push OP_0",
			opcodes:  []byte{OP_0},
			expected: []byte{OP_0},
		},
		{
			name:     "push OP_1 OP_2",
			opcodes:  []byte{OP_1, OP_2},
			expected: []byte{OP_1, OP_2},
		},
		{
			name:     "push OP_HASH160 OP_EQUAL",
			opcodes:  []byte{OP_HASH160, OP_EQUAL},
			expected: []byte{OP_HASH160, OP_EQUAL},
		},
	}

	// Run tests and individually add each op via AddOp.
	builder := NewScriptBuilder()
	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		builder.Reset()
		for _, opcode := range test.opcodes {
			builder.AddOp(opcode)
		}
		result, err := builder.Script()
		if err != nil {
			t.Errorf("ScriptBuilder.AddOp #%d (%s) unexpected error: "+
				"%v", i, test.name, err)
			continue
		}
		if !bytes.Equal(result, test.expected) {
			t.Errorf("ScriptBuilder.AddOp #%d (%s) wrong result\n"+
				"got: %x\nwant: %x", i, test.name, result,
				test.expected)
			continue
		}
	}

	// Run tests and bulk add ops via AddOps.
	for i, test := range tests {
		builder.Reset()
		result, err := builder.AddOps(test.opcodes).Script()
		if err != nil {
			t.Errorf("ScriptBuilder.AddOps #%d (%s) unexpected "+
				"error: %v", i, test.name, err)
			continue
		}
		if !bytes.Equal(result, test.expected) {
			t.Errorf("ScriptBuilder.AddOps #%d (%s) wrong result\n"+
				"got: %x\nwant: %x", i, test.name, result,
				test.expected)
			continue
		}
	}
}

// TestScriptBuilderAddOpErrors ensures opcodes that can not stand on their own
// stop the builder.
func TestScriptBuilderAddOpErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		op   byte
		want ErrorCode
	}{
		{"direct push tag", OP_DATA_20, ErrUnencodablePush},
		{"OP_PUSHDATA1", OP_PUSHDATA1, ErrUnencodablePush},
		{"OP_PUSHDATA4", OP_PUSHDATA4, ErrUnencodablePush},
		{"unassigned", 0xbb, ErrInvalidOpcode},
	}

	for _, test := range tests {
		builder := NewScriptBuilder().AddOp(OP_DUP).AddOp(test.op).
			AddOp(OP_CHECKSIG)
		script, err := builder.Script()
		require.True(t, IsErrorCode(err, test.want),
			"%s: unexpected error %v", test.name, err)

		// The script up to the failure is still returned.
		require.Equal(t, []byte{OP_DUP}, script, test.name)

		// Reset clears the error.
		script, err = builder.Reset().AddOp(OP_CHECKSIG).Script()
		require.NoError(t, err, test.name)
		require.Equal(t, []byte{OP_CHECKSIG}, script, test.name)
	}

	_, err := NewScriptBuilder().AddOpcode(PushBytes(4)).Script()
	require.True(t, IsErrorCode(err, ErrUnencodablePush))
	_, err = NewScriptBuilder().AddOpcode(Op(0xfd)).Script()
	require.True(t, IsErrorCode(err, ErrInvalidOpcode))
}

// TestScriptBuilderAddData tests that pushing data to a script via the
// ScriptBuilder API works as expected and that the result parses back into
// the same data.
func TestScriptBuilderAddData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     []byte
		expected []byte
	}{
		{
			name:     "push empty byte sequence",
			data:     nil,
			expected: []byte{OP_PUSHDATA2, 0x00, 0x00},
		},
		{
			name:     "push 1 byte 0x00",
			data:     []byte{0x00},
			expected: []byte{OP_DATA_1, 0x00},
		},
		{
			name:     "push data len 20",
			data:     bytes.Repeat([]byte{0x49}, 20),
			expected: append([]byte{OP_DATA_20}, bytes.Repeat([]byte{0x49}, 20)...),
		},
		{
			name:     "push data len 75",
			data:     bytes.Repeat([]byte{0x49}, 75),
			expected: append([]byte{OP_DATA_75}, bytes.Repeat([]byte{0x49}, 75)...),
		},
		{
			name:     "push data len 76",
			data:     bytes.Repeat([]byte{0x49}, 76),
			expected: append([]byte{OP_PUSHDATA1, 76}, bytes.Repeat([]byte{0x49}, 76)...),
		},
		{
			name:     "push data len 255",
			data:     bytes.Repeat([]byte{0x49}, 255),
			expected: append([]byte{OP_PUSHDATA1, 255}, bytes.Repeat([]byte{0x49}, 255)...),
		},
		{
			name:     "push data len 256",
			data:     bytes.Repeat([]byte{0x49}, 256),
			expected: append([]byte{OP_PUSHDATA2, 0x00, 0x01}, bytes.Repeat([]byte{0x49}, 256)...),
		},
		{
			name:     "push data len 512",
			data:     bytes.Repeat([]byte{0x49}, 512),
			expected: append([]byte{OP_PUSHDATA2, 0x00, 0x02}, bytes.Repeat([]byte{0x49}, 512)...),
		},
		{
			name:     "push data len 65536",
			data:     bytes.Repeat([]byte{0x49}, 65536),
			expected: append([]byte{OP_PUSHDATA2, 0x01, 0x00}, bytes.Repeat([]byte{0x49}, 65536)...),
		},
	}

	builder := NewScriptBuilder()
	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		result, err := builder.Reset().AddData(test.data).Script()
		if err != nil {
			t.Errorf("ScriptBuilder.AddData #%d (%s) unexpected "+
				"error: %v", i, test.name, err)
			continue
		}
		if !bytes.Equal(result, test.expected) {
			t.Errorf("ScriptBuilder.AddData #%d (%s) wrong result\n"+
				"got: %x\nwant: %x", i, test.name, result,
				test.expected)
			continue
		}

		parsed, err := ParseScript(result)
		require.NoError(t, err, test.name)
		require.Len(t, parsed, 2, test.name)
		require.True(t, bytes.Equal(test.data, parsed[1].(Data)),
			test.name)
	}
}

// TestScriptBuilderAddDataCopies ensures the builder keeps its own copy of
// pushed data so later changes to the caller's buffer do not leak into the
// script.
func TestScriptBuilderAddDataCopies(t *testing.T) {
	t.Parallel()

	data := []byte{0xaa}
	builder := NewScriptBuilder().AddData(data)
	data[0] = 0xbb

	script, err := builder.Script()
	require.NoError(t, err)
	require.Equal(t, []byte{OP_DATA_1, 0xaa}, script)

	terms, err := builder.Terms()
	require.NoError(t, err)
	require.Equal(t, Data{0xaa}, terms[1])
}

// TestPushOpcodeFor ensures lengths the shifted OP_PUSHDATA2 and OP_PUSHDATA4
// arithmetic can not express are rejected and large multiples of 256 pick
// OP_PUSHDATA4.
func TestPushOpcodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dataLen uint64
		want    Opcode
		err     bool
	}{
		{dataLen: 257, err: true},
		{dataLen: 1000, err: true},
		{dataLen: 0xffff, err: true},
		{dataLen: 0xffff00, want: PushData2([2]byte{0xff, 0xff})},
		{dataLen: 1 << 24, want: PushData4([4]byte{0x00, 0x01, 0x00, 0x00})},
		{dataLen: 0xffffffff00, want: PushData4([4]byte{0xff, 0xff, 0xff, 0xff})},
		{dataLen: 1 << 40, err: true},
	}

	for _, test := range tests {
		op, err := pushOpcodeFor(test.dataLen)
		if test.err {
			require.True(t, IsErrorCode(err, ErrUnencodablePush),
				"len %d: unexpected error %v", test.dataLen, err)
			continue
		}
		require.NoError(t, err, "len %d", test.dataLen)
		require.Equal(t, test.want, op, "len %d", test.dataLen)

		got, isPush := op.PushLen()
		require.True(t, isPush)
		require.Equal(t, test.dataLen, got)
	}

	_, err := NewScriptBuilder().AddData(make([]byte, 257)).Script()
	require.True(t, IsErrorCode(err, ErrUnencodablePush))
}
