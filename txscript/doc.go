// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package txscript implements a bitcoin-style transaction script codec and a
small interpreter for it.

This package provides data structures and functions to parse scripts into
their terms, encode them back to the exact same bytes, and execute them
against an explicit data stack.

# Script Overview

Scripts are written in a stack-based, FORTH-like language.  A raw script is a
sequence of opcodes, some of which announce a number of data bytes that follow
them directly.  ParseScript splits a raw script into a Script, an ordered list
of terms where every push opcode is followed by a Data term holding the bytes
it announces.  Script.Bytes reverses the process byte for byte.

The OP_PUSHDATA2 and OP_PUSHDATA4 length bytes are read big endian and then
shifted left by eight bits, so a script that uses them can only announce
lengths that are a multiple of 256.  ScriptBuilder takes this into account when
choosing a push opcode for data.

# Execution

The Engine implements OP_0, the direct pushes OP_PUSHBYTES1 through
OP_PUSHBYTES75, OP_DUP, OP_HASH160 and OP_EQUALVERIFY.  Reaching any other
opcode stops execution with ErrUnsupportedOpcode, which is not a verdict on the
script.  A script evaluates to true when the data stack is empty once every
term has executed.  ScriptFlags select the canonical OP_DUP and termination
rules instead.

# Errors

Errors returned by this package are of type txscript.Error.  This allows the
caller to programmatically determine the specific error by examining the
ErrorCode field of the type asserted txscript.Error while still providing rich
error messages with contextual information.  A convenience function named
IsErrorCode is also provided to allow callers to easily check for a specific
error code.  See ErrorCode in the package documentation for a full list.
*/
package txscript
