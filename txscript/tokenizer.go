// Copyright (c) 2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"
)

// opcodeArrayRef is used to break initialization cycles.
var opcodeArrayRef *[256]opcode

func init() {
	opcodeArrayRef = &opcodeArray
}

// ScriptTokenizer provides a facility for easily and efficiently tokenizing
// scripts without creating allocations.  Each successive opcode is parsed with
// the Next function, which returns false when iteration is complete, either
// due to successfully tokenizing the entire script or encountering a parse
// error.  In the case of failure, the Err function may be used to obtain the
// specific parse error.
//
// Upon successfully parsing an opcode, the opcode and data associated with it
// may be obtained via the Opcode and Data functions, respectively.  Data is nil
// for opcodes that do not push anything.
//
// The ByteIndex function may be used to obtain the tokenizer's current offset
// into the raw script.
type ScriptTokenizer struct {
	script []byte
	offset int
	op     Opcode
	data   []byte
	err    error
}

// Done returns true when either all opcodes have been exhausted or a parse
// failure was encountered and therefore the state has an associated error.
func (t *ScriptTokenizer) Done() bool {
	return t.err != nil || t.offset >= len(t.script)
}

// Next attempts to parse the next opcode and returns whether or not it was
// successful.  It will not be successful if invoked when already at the end of
// the script, a parse failure is encountered, or an associated error already
// exists due to a previous parse failure.
//
// In the case of a false return, the parsed opcode and data will be the last
// successfully parsed values (if any) and the offset into the script will
// either point to the failing opcode or the end of the script if the function
// was invoked when already at the end of the script.
func (t *ScriptTokenizer) Next() bool {
	if t.Done() {
		return false
	}

	op := &opcodeArrayRef[t.script[t.offset]]
	switch {
	case !op.assigned:
		str := fmt.Sprintf("tag byte 0x%02x at offset %d is not an "+
			"assigned opcode", op.value, t.offset)
		t.err = scriptError(ErrInvalidOpcode, str)
		return false

	// No additional data.
	case op.length == 1:
		t.offset++
		t.op = Op(op.value)
		t.data = nil
		return true

	// Data pushes of specific lengths -- OP_PUSHBYTES[1-75].
	case op.length > 1:
		script := t.script[t.offset:]
		if len(script) < op.length {
			str := fmt.Sprintf("opcode %s requires %d bytes, but "+
				"script only has %d remaining", op.name,
				op.length, len(script))
			t.err = scriptError(ErrMalformedPush, str)
			return false
		}

		t.offset += op.length
		t.op = PushBytes(op.value)
		t.data = script[1:op.length]
		return true

	// Data pushes with parsed lengths -- OP_PUSHDATA{1,2,4}.
	case op.length < 0:
		script := t.script[t.offset+1:]
		if len(script) < -op.length {
			str := fmt.Sprintf("opcode %s requires %d length bytes, "+
				"but script only has %d remaining", op.name,
				-op.length, len(script))
			t.err = scriptError(ErrMalformedPush, str)
			return false
		}

		var pushOp Opcode
		switch op.length {
		case -1:
			if script[0] <= OP_DATA_75 {
				str := fmt.Sprintf("opcode %s declares %d bytes "+
					"which requires a direct push", op.name,
					script[0])
				t.err = scriptError(ErrMalformedPush, str)
				return false
			}
			pushOp = PushData1(script[0])
		case -2:
			pushOp = PushData2([2]byte{script[0], script[1]})
		case -4:
			pushOp = PushData4([4]byte{script[0], script[1],
				script[2], script[3]})
		default:
			str := fmt.Sprintf("invalid opcode length %d", op.length)
			t.err = scriptError(ErrMalformedPush, str)
			return false
		}
		dataLen, _ := pushOp.PushLen()

		// Move to the beginning of the data.
		script = script[-op.length:]
		if dataLen > uint64(len(script)) {
			str := fmt.Sprintf("opcode %s pushes %d bytes, but "+
				"script only has %d remaining", pushOp.Name(),
				dataLen, len(script))
			t.err = scriptError(ErrMalformedPush, str)
			return false
		}

		t.offset += 1 + -op.length + int(dataLen)
		t.op = pushOp
		t.data = script[:dataLen]
		return true
	}

	// The only remaining case is an opcode with length zero which is
	// impossible.
	panic("unreachable")
}

// Script returns the full script associated with the tokenizer.
func (t *ScriptTokenizer) Script() []byte {
	return t.script
}

// ByteIndex returns the current offset into the full script that will be parsed
// next and therefore also implies everything before it has already been parsed.
func (t *ScriptTokenizer) ByteIndex() int {
	return t.offset
}

// Opcode returns the current opcode associated with the tokenizer.
func (t *ScriptTokenizer) Opcode() Opcode {
	return t.op
}

// Data returns the data associated with the most recently successfully parsed
// opcode.
func (t *ScriptTokenizer) Data() []byte {
	return t.data
}

// Err returns any errors currently associated with the tokenizer.  This will
// only be non-nil in the case a parsing error was encountered.
func (t *ScriptTokenizer) Err() error {
	return t.err
}

// MakeScriptTokenizer returns a new instance of a script tokenizer.
//
// See the docs for ScriptTokenizer for more details.
func MakeScriptTokenizer(script []byte) ScriptTokenizer {
	return ScriptTokenizer{script: script}
}
