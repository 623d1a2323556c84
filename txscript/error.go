// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of script error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrInternal is returned if internal consistency checks fail.  In
	// practice this error should never be seen as it would mean there is an
	// error in the engine logic.
	ErrInternal ErrorCode = iota

	// ---------------------------------------
	// Failures related to encoding opcodes.
	// ---------------------------------------

	// ErrInvalidOpcode is returned when a tag byte does not map to any
	// assigned opcode, either while decoding a script or while encoding an
	// opcode that was built from such a byte.
	ErrInvalidOpcode

	// ErrInvalidPushBytes is returned when an OP_PUSHBYTES opcode declares a
	// length outside of the range 1 through 75 and is asked to encode.
	ErrInvalidPushBytes

	// ErrUnencodablePush is returned by the script builder when the length
	// of the data to push can not be expressed by any of the push opcodes.
	ErrUnencodablePush

	// ---------------------------------------
	// Failures related to decoding scripts.
	// ---------------------------------------

	// ErrMalformedPush is returned when a data push opcode tries to push
	// more bytes than are left in the script, when the length bytes of an
	// OP_PUSHDATA# opcode are truncated, or when OP_PUSHDATA1 declares a
	// length that should have used a direct push.
	ErrMalformedPush

	// ---------------------------------------
	// Failures related to signature tags.
	// ---------------------------------------

	// ErrUnsupportedSigHashType is returned when a signature with a hash
	// type that has no tag byte is serialized.
	ErrUnsupportedSigHashType

	// ErrInvalidSigHashType is returned when the trailing byte of a
	// serialized signature is not a known hash type, or the signature is
	// empty.
	ErrInvalidSigHashType

	// ---------------------------------------
	// Failures related to standard scripts.
	// ---------------------------------------

	// ErrUnsupportedAddress is returned when an address can not be decoded
	// or is of a type for which no script can be generated.
	ErrUnsupportedAddress

	// ErrInvalidPubKey is returned when a public key is not a valid
	// serialized secp256k1 point.
	ErrInvalidPubKey

	// ------------------------------------------
	// Failures which evaluate a script to false.
	// ------------------------------------------

	// ErrUnexpectedData is returned when a data term is encountered that
	// was not announced by a preceding push opcode.
	ErrUnexpectedData

	// ErrPushLengthMismatch is returned when a data term does not have the
	// length announced by the preceding push opcode.
	ErrPushLengthMismatch

	// ErrInvalidStackOperation is returned when an opcode attempts to pop
	// or duplicate an item that is not on the stack.
	ErrInvalidStackOperation

	// ErrEqualVerify is returned when OP_EQUALVERIFY is encountered in a
	// script and the top item on the data stack does not equal the item
	// below it.
	ErrEqualVerify

	// ErrCleanStack is returned when the stack is not empty at the end of
	// execution.
	ErrCleanStack

	// ErrEvalFalse is returned when the stack does not hold exactly one item
	// that evaluates to true at the end of execution and the engine was
	// asked for the canonical termination rule.
	ErrEvalFalse

	// ErrScriptUnfinished is returned when CheckErrorCondition is called on
	// a script that has not finished executing.
	ErrScriptUnfinished

	// ErrScriptDone is returned when an attempt to execute an opcode is
	// made once all of them have already been executed.
	ErrScriptDone

	// -----------------------------------------------
	// Failures which indicate an incomplete engine.
	// -----------------------------------------------

	// ErrUnsupportedOpcode is returned when the engine is asked to execute
	// an opcode it does not implement.  This is not a verdict on the
	// script.
	ErrUnsupportedOpcode

	// numErrorCodes is the maximum error code number used in tests.  This
	// entry MUST be the last entry in the enum.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrInternal:               "ErrInternal",
	ErrInvalidOpcode:          "ErrInvalidOpcode",
	ErrInvalidPushBytes:       "ErrInvalidPushBytes",
	ErrUnencodablePush:        "ErrUnencodablePush",
	ErrMalformedPush:          "ErrMalformedPush",
	ErrUnsupportedSigHashType: "ErrUnsupportedSigHashType",
	ErrInvalidSigHashType:     "ErrInvalidSigHashType",
	ErrUnsupportedAddress:     "ErrUnsupportedAddress",
	ErrInvalidPubKey:          "ErrInvalidPubKey",
	ErrUnexpectedData:         "ErrUnexpectedData",
	ErrPushLengthMismatch:     "ErrPushLengthMismatch",
	ErrInvalidStackOperation:  "ErrInvalidStackOperation",
	ErrEqualVerify:            "ErrEqualVerify",
	ErrCleanStack:             "ErrCleanStack",
	ErrEvalFalse:              "ErrEvalFalse",
	ErrScriptUnfinished:       "ErrScriptUnfinished",
	ErrScriptDone:             "ErrScriptDone",
	ErrUnsupportedOpcode:      "ErrUnsupportedOpcode",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a script-related error.  It is used to indicate three
// classes of errors:
//  1. Script encoding and decoding failures
//  2. Script execution failures, which evaluate the script to false
//  3. Opcodes the engine does not implement
//
// The caller can use type assertions to determine if an error is an Error and
// access the ErrorCode field to ascertain the specific reason for the failure.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// scriptError creates an Error given a set of arguments.
func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether or not the provided error is a script error with
// the provided error code.
func IsErrorCode(err error, c ErrorCode) bool {
	var serr Error
	return errors.As(err, &serr) && serr.ErrorCode == c
}

// isVerdictError returns whether the error describes a script that evaluated
// to false, as opposed to a malformed script or an incomplete engine.
func isVerdictError(err error) bool {
	var serr Error
	if !errors.As(err, &serr) {
		return false
	}

	switch serr.ErrorCode {
	case ErrUnexpectedData, ErrPushLengthMismatch,
		ErrInvalidStackOperation, ErrEqualVerify, ErrCleanStack,
		ErrEvalFalse:

		return true
	}
	return false
}
