// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript_test

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcscript/txscript"
)

// This example demonstrates creating a script which pays to a bitcoin address
// and disassembling it.
func ExamplePayToAddrScript() {
	script, err := txscript.PayToAddrScript("18p3G8gQ3oKy4U9EqnWs7UZswdqAMhE3r8")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Script Hex: %x\n", script)

	disasm, err := txscript.DisasmString(script)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Script Disassembly:", disasm)

	// Output:
	// Script Hex: 76a91455ae51684c43435da751ac8d2173b2652eb6410588ac
	// Script Disassembly: OP_DUP OP_HASH160 OP_PUSHBYTES20 55ae51684c43435da751ac8d2173b2652eb64105 OP_EQUALVERIFY OP_CHECKSIG
}

// This example demonstrates parsing a script into its terms and encoding it
// back to the original bytes.
func ExampleParseScript() {
	raw, _ := hex.DecodeString("04ffff001d010400")
	script, err := txscript.ParseScript(raw)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, term := range script {
		fmt.Printf("%T %v\n", term, term)
	}

	encoded, err := script.Bytes()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Encoded: %x\n", encoded)

	// Output:
	// txscript.Instruction OP_PUSHBYTES4
	// txscript.Data ffff001d
	// txscript.Instruction OP_PUSHBYTES1
	// txscript.Data 04
	// txscript.Instruction OP_0
	// Encoded: 04ffff001d010400
}

// This example demonstrates executing a script that checks the HASH160 of the
// public key on the stack.
func ExampleInterpret() {
	pubKey, _ := hex.DecodeString("03f0609c81a45f8cab67fc2d050c21b1acd3d3" +
		"7c7acfd54041be6601ab4cef4f31")

	builder := txscript.NewScriptBuilder()
	builder.AddOp(txscript.OP_HASH160).AddData(txscript.Hash160(pubKey))
	builder.AddOp(txscript.OP_EQUALVERIFY)
	script, err := builder.Terms()
	if err != nil {
		fmt.Println(err)
		return
	}

	valid, err := txscript.Interpret(script, [][]byte{pubKey},
		txscript.ScriptVerifyNone)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Valid:", valid)

	// The engine does not implement signature checks.
	script = append(script, txscript.Instruction{
		Opcode: txscript.Op(txscript.OP_CHECKSIG),
	})
	_, err = txscript.Interpret(script, [][]byte{pubKey},
		txscript.ScriptVerifyNone)
	fmt.Println("Unsupported:", txscript.IsErrorCode(err,
		txscript.ErrUnsupportedOpcode))

	// Output:
	// Valid: true
	// Unsupported: true
}
