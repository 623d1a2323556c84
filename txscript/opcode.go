// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// An opcode defines the information related to a txscript opcode.  opfunc is
// the function to call to perform the opcode on the engine.  Unassigned tag
// bytes have assigned set to false and are rejected by the codec.
type opcode struct {
	value    byte
	name     string
	length   int
	assigned bool
	opfunc   func(*opcode, Opcode, *Engine) error
}

// These constants are the values of the official opcodes used on the btc wiki,
// in bitcoin core and in most if not all other references and software related
// to handling BTC scripts.
const (
	OP_0                   = 0x00 // 0
	OP_FALSE               = 0x00 // 0 - AKA OP_0
	OP_DATA_1              = 0x01 // 1 - first OP_PUSHBYTES tag
	OP_DATA_20             = 0x14 // 20
	OP_DATA_75             = 0x4b // 75 - last OP_PUSHBYTES tag
	OP_PUSHDATA1           = 0x4c // 76
	OP_PUSHDATA2           = 0x4d // 77
	OP_PUSHDATA4           = 0x4e // 78
	OP_1NEGATE             = 0x4f // 79
	OP_RESERVED            = 0x50 // 80
	OP_1                   = 0x51 // 81 - AKA OP_TRUE
	OP_TRUE                = 0x51 // 81
	OP_2                   = 0x52 // 82
	OP_3                   = 0x53 // 83
	OP_4                   = 0x54 // 84
	OP_5                   = 0x55 // 85
	OP_6                   = 0x56 // 86
	OP_7                   = 0x57 // 87
	OP_8                   = 0x58 // 88
	OP_9                   = 0x59 // 89
	OP_10                  = 0x5a // 90
	OP_11                  = 0x5b // 91
	OP_12                  = 0x5c // 92
	OP_13                  = 0x5d // 93
	OP_14                  = 0x5e // 94
	OP_15                  = 0x5f // 95
	OP_16                  = 0x60 // 96
	OP_NOP                 = 0x61 // 97
	OP_VER                 = 0x62 // 98
	OP_IF                  = 0x63 // 99
	OP_NOTIF               = 0x64 // 100
	OP_VERIF               = 0x65 // 101
	OP_VERNOTIF            = 0x66 // 102
	OP_ELSE                = 0x67 // 103
	OP_ENDIF               = 0x68 // 104
	OP_VERIFY              = 0x69 // 105
	OP_RETURN              = 0x6a // 106
	OP_TOALTSTACK          = 0x6b // 107
	OP_FROMALTSTACK        = 0x6c // 108
	OP_2DROP               = 0x6d // 109
	OP_2DUP                = 0x6e // 110
	OP_3DUP                = 0x6f // 111
	OP_2OVER               = 0x70 // 112
	OP_2ROT                = 0x71 // 113
	OP_2SWAP               = 0x72 // 114
	OP_IFDUP               = 0x73 // 115
	OP_DEPTH               = 0x74 // 116
	OP_DROP                = 0x75 // 117
	OP_DUP                 = 0x76 // 118
	OP_NIP                 = 0x77 // 119
	OP_OVER                = 0x78 // 120
	OP_PICK                = 0x79 // 121
	OP_ROLL                = 0x7a // 122
	OP_ROT                 = 0x7b // 123
	OP_SWAP                = 0x7c // 124
	OP_TUCK                = 0x7d // 125
	OP_CAT                 = 0x7e // 126
	OP_SUBSTR              = 0x7f // 127
	OP_LEFT                = 0x80 // 128
	OP_RIGHT               = 0x81 // 129
	OP_SIZE                = 0x82 // 130
	OP_INVERT              = 0x83 // 131
	OP_AND                 = 0x84 // 132
	OP_OR                  = 0x85 // 133
	OP_XOR                 = 0x86 // 134
	OP_EQUAL               = 0x87 // 135
	OP_EQUALVERIFY         = 0x88 // 136
	OP_RESERVED1           = 0x89 // 137
	OP_RESERVED2           = 0x8a // 138
	OP_1ADD                = 0x8b // 139
	OP_1SUB                = 0x8c // 140
	OP_2MUL                = 0x8d // 141
	OP_2DIV                = 0x8e // 142
	OP_NEGATE              = 0x8f // 143
	OP_ABS                 = 0x90 // 144
	OP_NOT                 = 0x91 // 145
	OP_0NOTEQUAL           = 0x92 // 146
	OP_ADD                 = 0x93 // 147
	OP_SUB                 = 0x94 // 148
	OP_MUL                 = 0x95 // 149
	OP_DIV                 = 0x96 // 150
	OP_MOD                 = 0x97 // 151
	OP_LSHIFT              = 0x98 // 152
	OP_RSHIFT              = 0x99 // 153
	OP_BOOLAND             = 0x9a // 154
	OP_BOOLOR              = 0x9b // 155
	OP_NUMEQUAL            = 0x9c // 156
	OP_NUMEQUALVERIFY      = 0x9d // 157
	OP_NUMNOTEQUAL         = 0x9e // 158
	OP_LESSTHAN            = 0x9f // 159
	OP_GREATERTHAN         = 0xa0 // 160
	OP_LESSTHANOREQUAL     = 0xa1 // 161
	OP_GREATERTHANOREQUAL  = 0xa2 // 162
	OP_MIN                 = 0xa3 // 163
	OP_MAX                 = 0xa4 // 164
	OP_WITHIN              = 0xa5 // 165
	OP_RIPEMD160           = 0xa6 // 166
	OP_SHA1                = 0xa7 // 167
	OP_SHA256              = 0xa8 // 168
	OP_HASH160             = 0xa9 // 169
	OP_HASH256             = 0xaa // 170
	OP_CODESEPARATOR       = 0xab // 171
	OP_CHECKSIG            = 0xac // 172
	OP_CHECKSIGVERIFY      = 0xad // 173
	OP_CHECKMULTISIG       = 0xae // 174
	OP_CHECKMULTISIGVERIFY = 0xaf // 175
	OP_NOP1                = 0xb0 // 176
	OP_NOP2                = 0xb1 // 177 - deprecated alias
	OP_CHECKLOCKTIMEVERIFY = 0xb1 // 177 - AKA OP_NOP2
	OP_NOP3                = 0xb2 // 178 - deprecated alias
	OP_CHECKSEQUENCEVERIFY = 0xb2 // 178 - AKA OP_NOP3
	OP_NOP4                = 0xb3 // 179
	OP_NOP5                = 0xb4 // 180
	OP_NOP6                = 0xb5 // 181
	OP_NOP7                = 0xb6 // 182
	OP_NOP8                = 0xb7 // 183
	OP_NOP9                = 0xb8 // 184
	OP_NOP10               = 0xb9 // 185
	OP_CHECKSIGADD         = 0xba // 186
	OP_INVALIDOPCODE       = 0xff // 255
)

// opcodeArray holds details about all possible opcodes such as how many bytes
// the opcode and any associated data should take, its human-readable name, and
// the handler function.  The direct pushes OP_PUSHBYTES1 through
// OP_PUSHBYTES75 and the unassigned range are filled in by init.
var opcodeArray = [256]opcode{
	// Data push opcodes.
	OP_FALSE:     {OP_FALSE, "OP_0", 1, true, opcodeFalse},
	OP_PUSHDATA1: {OP_PUSHDATA1, "OP_PUSHDATA1", -1, true, opcodeUnsupported},
	OP_PUSHDATA2: {OP_PUSHDATA2, "OP_PUSHDATA2", -2, true, opcodeUnsupported},
	OP_PUSHDATA4: {OP_PUSHDATA4, "OP_PUSHDATA4", -4, true, opcodeUnsupported},
	OP_1NEGATE:   {OP_1NEGATE, "OP_1NEGATE", 1, true, opcodeUnsupported},
	OP_RESERVED:  {OP_RESERVED, "OP_RESERVED", 1, true, opcodeUnsupported},
	OP_TRUE:      {OP_TRUE, "OP_1", 1, true, opcodeUnsupported},
	OP_2:         {OP_2, "OP_2", 1, true, opcodeUnsupported},
	OP_3:         {OP_3, "OP_3", 1, true, opcodeUnsupported},
	OP_4:         {OP_4, "OP_4", 1, true, opcodeUnsupported},
	OP_5:         {OP_5, "OP_5", 1, true, opcodeUnsupported},
	OP_6:         {OP_6, "OP_6", 1, true, opcodeUnsupported},
	OP_7:         {OP_7, "OP_7", 1, true, opcodeUnsupported},
	OP_8:         {OP_8, "OP_8", 1, true, opcodeUnsupported},
	OP_9:         {OP_9, "OP_9", 1, true, opcodeUnsupported},
	OP_10:        {OP_10, "OP_10", 1, true, opcodeUnsupported},
	OP_11:        {OP_11, "OP_11", 1, true, opcodeUnsupported},
	OP_12:        {OP_12, "OP_12", 1, true, opcodeUnsupported},
	OP_13:        {OP_13, "OP_13", 1, true, opcodeUnsupported},
	OP_14:        {OP_14, "OP_14", 1, true, opcodeUnsupported},
	OP_15:        {OP_15, "OP_15", 1, true, opcodeUnsupported},
	OP_16:        {OP_16, "OP_16", 1, true, opcodeUnsupported},

	// Control opcodes.
	OP_NOP:      {OP_NOP, "OP_NOP", 1, true, opcodeUnsupported},
	OP_VER:      {OP_VER, "OP_VER", 1, true, opcodeUnsupported},
	OP_IF:       {OP_IF, "OP_IF", 1, true, opcodeUnsupported},
	OP_NOTIF:    {OP_NOTIF, "OP_NOTIF", 1, true, opcodeUnsupported},
	OP_VERIF:    {OP_VERIF, "OP_VERIF", 1, true, opcodeUnsupported},
	OP_VERNOTIF: {OP_VERNOTIF, "OP_VERNOTIF", 1, true, opcodeUnsupported},
	OP_ELSE:     {OP_ELSE, "OP_ELSE", 1, true, opcodeUnsupported},
	OP_ENDIF:    {OP_ENDIF, "OP_ENDIF", 1, true, opcodeUnsupported},
	OP_VERIFY:   {OP_VERIFY, "OP_VERIFY", 1, true, opcodeUnsupported},
	OP_RETURN:   {OP_RETURN, "OP_RETURN", 1, true, opcodeUnsupported},

	// Stack opcodes.
	OP_TOALTSTACK:   {OP_TOALTSTACK, "OP_TOALTSTACK", 1, true, opcodeUnsupported},
	OP_FROMALTSTACK: {OP_FROMALTSTACK, "OP_FROMALTSTACK", 1, true, opcodeUnsupported},
	OP_2DROP:        {OP_2DROP, "OP_2DROP", 1, true, opcodeUnsupported},
	OP_2DUP:         {OP_2DUP, "OP_2DUP", 1, true, opcodeUnsupported},
	OP_3DUP:         {OP_3DUP, "OP_3DUP", 1, true, opcodeUnsupported},
	OP_2OVER:        {OP_2OVER, "OP_2OVER", 1, true, opcodeUnsupported},
	OP_2ROT:         {OP_2ROT, "OP_2ROT", 1, true, opcodeUnsupported},
	OP_2SWAP:        {OP_2SWAP, "OP_2SWAP", 1, true, opcodeUnsupported},
	OP_IFDUP:        {OP_IFDUP, "OP_IFDUP", 1, true, opcodeUnsupported},
	OP_DEPTH:        {OP_DEPTH, "OP_DEPTH", 1, true, opcodeUnsupported},
	OP_DROP:         {OP_DROP, "OP_DROP", 1, true, opcodeUnsupported},
	OP_DUP:          {OP_DUP, "OP_DUP", 1, true, opcodeDup},
	OP_NIP:          {OP_NIP, "OP_NIP", 1, true, opcodeUnsupported},
	OP_OVER:         {OP_OVER, "OP_OVER", 1, true, opcodeUnsupported},
	OP_PICK:         {OP_PICK, "OP_PICK", 1, true, opcodeUnsupported},
	OP_ROLL:         {OP_ROLL, "OP_ROLL", 1, true, opcodeUnsupported},
	OP_ROT:          {OP_ROT, "OP_ROT", 1, true, opcodeUnsupported},
	OP_SWAP:         {OP_SWAP, "OP_SWAP", 1, true, opcodeUnsupported},
	OP_TUCK:         {OP_TUCK, "OP_TUCK", 1, true, opcodeUnsupported},

	// Splice opcodes.
	OP_CAT:    {OP_CAT, "OP_CAT", 1, true, opcodeUnsupported},
	OP_SUBSTR: {OP_SUBSTR, "OP_SUBSTR", 1, true, opcodeUnsupported},
	OP_LEFT:   {OP_LEFT, "OP_LEFT", 1, true, opcodeUnsupported},
	OP_RIGHT:  {OP_RIGHT, "OP_RIGHT", 1, true, opcodeUnsupported},
	OP_SIZE:   {OP_SIZE, "OP_SIZE", 1, true, opcodeUnsupported},

	// Bitwise logic opcodes.
	OP_INVERT:      {OP_INVERT, "OP_INVERT", 1, true, opcodeUnsupported},
	OP_AND:         {OP_AND, "OP_AND", 1, true, opcodeUnsupported},
	OP_OR:          {OP_OR, "OP_OR", 1, true, opcodeUnsupported},
	OP_XOR:         {OP_XOR, "OP_XOR", 1, true, opcodeUnsupported},
	OP_EQUAL:       {OP_EQUAL, "OP_EQUAL", 1, true, opcodeUnsupported},
	OP_EQUALVERIFY: {OP_EQUALVERIFY, "OP_EQUALVERIFY", 1, true, opcodeEqualVerify},
	OP_RESERVED1:   {OP_RESERVED1, "OP_RESERVED1", 1, true, opcodeUnsupported},
	OP_RESERVED2:   {OP_RESERVED2, "OP_RESERVED2", 1, true, opcodeUnsupported},

	// Numeric related opcodes.
	OP_1ADD:               {OP_1ADD, "OP_1ADD", 1, true, opcodeUnsupported},
	OP_1SUB:               {OP_1SUB, "OP_1SUB", 1, true, opcodeUnsupported},
	OP_2MUL:               {OP_2MUL, "OP_2MUL", 1, true, opcodeUnsupported},
	OP_2DIV:               {OP_2DIV, "OP_2DIV", 1, true, opcodeUnsupported},
	OP_NEGATE:             {OP_NEGATE, "OP_NEGATE", 1, true, opcodeUnsupported},
	OP_ABS:                {OP_ABS, "OP_ABS", 1, true, opcodeUnsupported},
	OP_NOT:                {OP_NOT, "OP_NOT", 1, true, opcodeUnsupported},
	OP_0NOTEQUAL:          {OP_0NOTEQUAL, "OP_0NOTEQUAL", 1, true, opcodeUnsupported},
	OP_ADD:                {OP_ADD, "OP_ADD", 1, true, opcodeUnsupported},
	OP_SUB:                {OP_SUB, "OP_SUB", 1, true, opcodeUnsupported},
	OP_MUL:                {OP_MUL, "OP_MUL", 1, true, opcodeUnsupported},
	OP_DIV:                {OP_DIV, "OP_DIV", 1, true, opcodeUnsupported},
	OP_MOD:                {OP_MOD, "OP_MOD", 1, true, opcodeUnsupported},
	OP_LSHIFT:             {OP_LSHIFT, "OP_LSHIFT", 1, true, opcodeUnsupported},
	OP_RSHIFT:             {OP_RSHIFT, "OP_RSHIFT", 1, true, opcodeUnsupported},
	OP_BOOLAND:            {OP_BOOLAND, "OP_BOOLAND", 1, true, opcodeUnsupported},
	OP_BOOLOR:             {OP_BOOLOR, "OP_BOOLOR", 1, true, opcodeUnsupported},
	OP_NUMEQUAL:           {OP_NUMEQUAL, "OP_NUMEQUAL", 1, true, opcodeUnsupported},
	OP_NUMEQUALVERIFY:     {OP_NUMEQUALVERIFY, "OP_NUMEQUALVERIFY", 1, true, opcodeUnsupported},
	OP_NUMNOTEQUAL:        {OP_NUMNOTEQUAL, "OP_NUMNOTEQUAL", 1, true, opcodeUnsupported},
	OP_LESSTHAN:           {OP_LESSTHAN, "OP_LESSTHAN", 1, true, opcodeUnsupported},
	OP_GREATERTHAN:        {OP_GREATERTHAN, "OP_GREATERTHAN", 1, true, opcodeUnsupported},
	OP_LESSTHANOREQUAL:    {OP_LESSTHANOREQUAL, "OP_LESSTHANOREQUAL", 1, true, opcodeUnsupported},
	OP_GREATERTHANOREQUAL: {OP_GREATERTHANOREQUAL, "OP_GREATERTHANOREQUAL", 1, true, opcodeUnsupported},
	OP_MIN:                {OP_MIN, "OP_MIN", 1, true, opcodeUnsupported},
	OP_MAX:                {OP_MAX, "OP_MAX", 1, true, opcodeUnsupported},
	OP_WITHIN:             {OP_WITHIN, "OP_WITHIN", 1, true, opcodeUnsupported},

	// Crypto opcodes.
	OP_RIPEMD160:           {OP_RIPEMD160, "OP_RIPEMD160", 1, true, opcodeUnsupported},
	OP_SHA1:                {OP_SHA1, "OP_SHA1", 1, true, opcodeUnsupported},
	OP_SHA256:              {OP_SHA256, "OP_SHA256", 1, true, opcodeUnsupported},
	OP_HASH160:             {OP_HASH160, "OP_HASH160", 1, true, opcodeHash160},
	OP_HASH256:             {OP_HASH256, "OP_HASH256", 1, true, opcodeUnsupported},
	OP_CODESEPARATOR:       {OP_CODESEPARATOR, "OP_CODESEPARATOR", 1, true, opcodeUnsupported},
	OP_CHECKSIG:            {OP_CHECKSIG, "OP_CHECKSIG", 1, true, opcodeUnsupported},
	OP_CHECKSIGVERIFY:      {OP_CHECKSIGVERIFY, "OP_CHECKSIGVERIFY", 1, true, opcodeUnsupported},
	OP_CHECKMULTISIG:       {OP_CHECKMULTISIG, "OP_CHECKMULTISIG", 1, true, opcodeUnsupported},
	OP_CHECKMULTISIGVERIFY: {OP_CHECKMULTISIGVERIFY, "OP_CHECKMULTISIGVERIFY", 1, true, opcodeUnsupported},

	// Reserved opcodes.
	OP_NOP1:                {OP_NOP1, "OP_NOP1", 1, true, opcodeUnsupported},
	OP_CHECKLOCKTIMEVERIFY: {OP_CHECKLOCKTIMEVERIFY, "OP_CHECKLOCKTIMEVERIFY", 1, true, opcodeUnsupported},
	OP_CHECKSEQUENCEVERIFY: {OP_CHECKSEQUENCEVERIFY, "OP_CHECKSEQUENCEVERIFY", 1, true, opcodeUnsupported},
	OP_NOP4:                {OP_NOP4, "OP_NOP4", 1, true, opcodeUnsupported},
	OP_NOP5:                {OP_NOP5, "OP_NOP5", 1, true, opcodeUnsupported},
	OP_NOP6:                {OP_NOP6, "OP_NOP6", 1, true, opcodeUnsupported},
	OP_NOP7:                {OP_NOP7, "OP_NOP7", 1, true, opcodeUnsupported},
	OP_NOP8:                {OP_NOP8, "OP_NOP8", 1, true, opcodeUnsupported},
	OP_NOP9:                {OP_NOP9, "OP_NOP9", 1, true, opcodeUnsupported},
	OP_NOP10:               {OP_NOP10, "OP_NOP10", 1, true, opcodeUnsupported},

	// Tapscript signature aggregation.
	OP_CHECKSIGADD: {OP_CHECKSIGADD, "OP_CHECKSIGADD", 1, true, opcodeUnsupported},

	OP_INVALIDOPCODE: {OP_INVALIDOPCODE, "OP_INVALIDOPCODE", 1, true, opcodeUnsupported},
}

// disabledOpcodes is the set of opcodes that were disabled on the network and
// are therefore reported as not activated.
var disabledOpcodes = map[byte]struct{}{
	OP_CAT:                 {},
	OP_SUBSTR:              {},
	OP_LEFT:                {},
	OP_RIGHT:               {},
	OP_INVERT:              {},
	OP_AND:                 {},
	OP_OR:                  {},
	OP_XOR:                 {},
	OP_2MUL:                {},
	OP_2DIV:                {},
	OP_MUL:                 {},
	OP_DIV:                 {},
	OP_MOD:                 {},
	OP_LSHIFT:              {},
	OP_RSHIFT:              {},
	OP_CHECKMULTISIG:       {},
	OP_CHECKMULTISIGVERIFY: {},
}

// opcodeShape identifies which variant of the Opcode union a value holds.
type opcodeShape uint8

const (
	shapeAtom opcodeShape = iota
	shapePushBytes
	shapePushData1
	shapePushData2
	shapePushData4
)

// Opcode is a single script instruction.  It is one of three shapes:
//
//   - an atom, identified purely by its tag byte (OP_DUP, OP_CHECKSIG, ...)
//   - OP_PUSHBYTES(n), whose tag byte is n itself and which is only encodable
//     for 1 <= n <= 75
//   - OP_PUSHDATA1, OP_PUSHDATA2 or OP_PUSHDATA4, which carry the raw length
//     descriptor bytes that follow their tag byte on the wire
//
// The length descriptor of the OP_PUSHDATA# shapes is stored verbatim and is
// emitted as is when encoding, so it must be kept consistent with the data
// that follows.  ScriptBuilder does this automatically.
//
// Opcode values are comparable with ==.
type Opcode struct {
	shape opcodeShape
	value byte
	desc  [4]byte
}

// Op returns the opcode identified by the provided tag byte.  Tags 0x01
// through 0x4b produce the matching OP_PUSHBYTES opcode, while the
// OP_PUSHDATA# tags produce a zeroed length descriptor since the real one can
// only be read from the bytes that follow in a script.  No check is made that
// the tag is assigned; see OpcodeFromByte.
func Op(code byte) Opcode {
	switch {
	case code >= OP_DATA_1 && code <= OP_DATA_75:
		return PushBytes(code)
	case code == OP_PUSHDATA1:
		return Opcode{shape: shapePushData1, value: OP_PUSHDATA1}
	case code == OP_PUSHDATA2:
		return Opcode{shape: shapePushData2, value: OP_PUSHDATA2}
	case code == OP_PUSHDATA4:
		return Opcode{shape: shapePushData4, value: OP_PUSHDATA4}
	}
	return Opcode{shape: shapeAtom, value: code}
}

// OpcodeFromByte returns the opcode identified by the provided tag byte, or an
// ErrInvalidOpcode error when the tag is not assigned.
func OpcodeFromByte(code byte) (Opcode, error) {
	if !opcodeArray[code].assigned {
		str := fmt.Sprintf("tag byte 0x%02x is not an assigned opcode",
			code)
		return Opcode{}, scriptError(ErrInvalidOpcode, str)
	}
	return Op(code), nil
}

// PushBytes returns an OP_PUSHBYTES opcode announcing n bytes of data.  Values
// of n outside of 1 through 75 are representable but fail to encode.
func PushBytes(n byte) Opcode {
	return Opcode{shape: shapePushBytes, value: n}
}

// PushData1 returns an OP_PUSHDATA1 opcode with the provided length byte.
func PushData1(length byte) Opcode {
	return Opcode{shape: shapePushData1, value: OP_PUSHDATA1,
		desc: [4]byte{length}}
}

// PushData2 returns an OP_PUSHDATA2 opcode with the provided length bytes.
func PushData2(length [2]byte) Opcode {
	return Opcode{shape: shapePushData2, value: OP_PUSHDATA2,
		desc: [4]byte{length[0], length[1]}}
}

// PushData4 returns an OP_PUSHDATA4 opcode with the provided length bytes.
func PushData4(length [4]byte) Opcode {
	return Opcode{shape: shapePushData4, value: OP_PUSHDATA4, desc: length}
}

// Byte returns the tag byte of the opcode.  It fails with ErrInvalidPushBytes
// for an OP_PUSHBYTES opcode announcing 0 or more than 75 bytes and with
// ErrInvalidOpcode for an atom whose tag is not assigned.
func (op Opcode) Byte() (byte, error) {
	switch op.shape {
	case shapePushBytes:
		if op.value < OP_DATA_1 || op.value > OP_DATA_75 {
			str := fmt.Sprintf("OP_PUSHBYTES must announce between "+
				"%d and %d bytes, got %d", OP_DATA_1, OP_DATA_75,
				op.value)
			return 0, scriptError(ErrInvalidPushBytes, str)
		}
		return op.value, nil

	case shapeAtom:
		if !opcodeArray[op.value].assigned {
			str := fmt.Sprintf("tag byte 0x%02x is not an assigned "+
				"opcode", op.value)
			return 0, scriptError(ErrInvalidOpcode, str)
		}
	}

	return op.value, nil
}

// LengthDescriptor returns the raw length bytes carried by an OP_PUSHDATA#
// opcode, or nil for every other shape.
func (op Opcode) LengthDescriptor() []byte {
	switch op.shape {
	case shapePushData1:
		return op.desc[:1:1]
	case shapePushData2:
		return op.desc[:2:2]
	case shapePushData4:
		return op.desc[:4:4]
	}
	return nil
}

// PushLen returns the number of data bytes the opcode announces and whether
// it is a data push at all.  The OP_PUSHDATA2 and OP_PUSHDATA4 lengths are
// assembled big endian with a trailing eight bit shift, which is how this
// script dialect has always read them off the wire.
func (op Opcode) PushLen() (uint64, bool) {
	switch op.shape {
	case shapePushBytes:
		return uint64(op.value), true
	case shapePushData1:
		return uint64(op.desc[0]), true
	case shapePushData2:
		return pushData2Len(op.desc[0], op.desc[1]), true
	case shapePushData4:
		return pushData4Len(op.desc[:4]), true
	}
	return 0, false
}

// pushData2Len computes the data length announced by OP_PUSHDATA2 length
// bytes.
func pushData2Len(b1, b2 byte) uint64 {
	return uint64(b1)<<16 | uint64(b2)<<8
}

// pushData4Len computes the data length announced by OP_PUSHDATA4 length
// bytes.
func pushData4Len(b []byte) uint64 {
	n := ((uint64(b[0])<<8|uint64(b[1]))<<8|uint64(b[2]))<<8 |
		uint64(b[3])
	return n << 8
}

// IsPush returns whether the opcode announces data that follows it.
func (op Opcode) IsPush() bool {
	return op.shape != shapeAtom
}

// IsActivated returns whether the opcode is permitted on the network.  Only
// the opcodes that were historically disabled report false.
func (op Opcode) IsActivated() bool {
	if op.shape != shapeAtom {
		return true
	}
	_, disabled := disabledOpcodes[op.value]
	return !disabled
}

// Name returns the canonical mnemonic of the opcode.  OP_PUSHDATA# opcodes
// include their length descriptor in hex, for example "OP_PUSHDATA1 4c".
func (op Opcode) Name() string {
	switch op.shape {
	case shapePushBytes:
		return fmt.Sprintf("OP_PUSHBYTES%d", op.value)
	case shapePushData1, shapePushData2, shapePushData4:
		return opcodeArray[op.value].name + " " +
			hex.EncodeToString(op.LengthDescriptor())
	}
	return opcodeArray[op.value].name
}

// String returns the canonical mnemonic of the opcode.
func (op Opcode) String() string {
	return op.Name()
}

// info returns the table entry for the opcode.
func (op Opcode) info() *opcode {
	return &opcodeArray[op.value]
}

// *******************************************
// Opcode implementation functions start here.
// *******************************************

// opcodeUnsupported is the handler for every opcode the engine does not
// implement.  The script is neither valid nor invalid when one is reached, so
// the resulting error is kept apart from the false verdict errors.
func opcodeUnsupported(op *opcode, instr Opcode, vm *Engine) error {
	str := fmt.Sprintf("opcode %s is not implemented", op.name)
	return scriptError(ErrUnsupportedOpcode, str)
}

// opcodeFalse pushes a single zero byte onto the data stack.
//
// Stack transformation: [...] -> [... 0x00]
func opcodeFalse(op *opcode, instr Opcode, vm *Engine) error {
	vm.dstack.PushByteArray([]byte{0})
	return nil
}

// opcodePushBytes records how many bytes the following data term must
// contain.  The data term itself performs the push.
func opcodePushBytes(op *opcode, instr Opcode, vm *Engine) error {
	vm.expectPush(int(instr.value))
	return nil
}

// opcodeDup duplicates an item on the data stack.  Without the
// ScriptDupTopOfStack flag the item at the bottom of the stack is
// duplicated, which is how this engine has always behaved.
//
// Stack transformation: [x1 x2 x3] -> [x1 x2 x3 x1]
// With ScriptDupTopOfStack: [x1 x2 x3] -> [x1 x2 x3 x3]
func opcodeDup(op *opcode, instr Opcode, vm *Engine) error {
	if vm.hasFlag(ScriptDupTopOfStack) {
		return vm.dstack.DupTop()
	}
	return vm.dstack.DupBottom()
}

// opcodeHash160 treats the top item of the data stack as raw bytes and replaces
// it with ripemd160(sha256(data)).
//
// Stack transformation: [... x1] -> [... ripemd160(sha256(x1))]
func opcodeHash160(op *opcode, instr Opcode, vm *Engine) error {
	buf, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	vm.dstack.PushByteArray(hash160(buf))
	return nil
}

// opcodeEqualVerify removes the top 2 items of the data stack, compares them
// as raw bytes and pushes the result, encoded as a boolean, back to the stack.
// It then pops the result and fails unless it is exactly [0x01].
//
// Stack transformation: [... x1 x2] -> [... bool] -> [...]
func opcodeEqualVerify(op *opcode, instr Opcode, vm *Engine) error {
	lhs, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	rhs, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(bytes.Equal(lhs, rhs))

	result, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	if len(result) != 1 || result[0] != 1 {
		str := fmt.Sprintf("%s failed: %x != %x", op.name, lhs, rhs)
		return scriptError(ErrEqualVerify, str)
	}
	return nil
}

// OpcodeByName is a map that can be used to lookup an opcode by its
// human-readable name (OP_CHECKMULTISIG, OP_CHECKSIG, etc).
var OpcodeByName = make(map[string]byte)

func init() {
	// Fill in the direct pushes and the unassigned range, which follow a
	// fixed pattern.
	for i := OP_DATA_1; i <= OP_DATA_75; i++ {
		opcodeArray[i] = opcode{
			value:    byte(i),
			name:     fmt.Sprintf("OP_PUSHBYTES%d", i),
			length:   i + 1,
			assigned: true,
			opfunc:   opcodePushBytes,
		}
	}
	for i := OP_CHECKSIGADD + 1; i < OP_INVALIDOPCODE; i++ {
		opcodeArray[i] = opcode{
			value:  byte(i),
			name:   fmt.Sprintf("OP_UNKNOWN%d", i),
			length: 1,
			opfunc: opcodeUnsupported,
		}
	}

	// Initialize the opcode name to value map using the contents of the
	// opcode array.  Also add entries for "OP_FALSE", "OP_TRUE", "OP_NOP2"
	// and "OP_NOP3" since they are aliases for "OP_0", "OP_1",
	// "OP_CHECKLOCKTIMEVERIFY" and "OP_CHECKSEQUENCEVERIFY" respectively.
	for _, op := range opcodeArray {
		if op.assigned {
			OpcodeByName[op.name] = op.value
		}
	}
	OpcodeByName["OP_FALSE"] = OP_FALSE
	OpcodeByName["OP_TRUE"] = OP_TRUE
	OpcodeByName["OP_NOP2"] = OP_CHECKLOCKTIMEVERIFY
	OpcodeByName["OP_NOP3"] = OP_CHECKSEQUENCEVERIFY
}
