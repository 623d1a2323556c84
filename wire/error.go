// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of malformed encoding a MessageError
// describes.
type ErrorCode int

const (
	// ErrCompactSizeMarker indicates a multi-byte CompactSize whose first
	// byte is not the marker for its width.
	ErrCompactSizeMarker ErrorCode = iota

	// ErrCompactSizeLength indicates a CompactSize encoding whose total
	// length is not one of 1, 3, 5 or 9 bytes.
	ErrCompactSizeLength

	// ErrTooLarge indicates a count or length prefix that exceeds the
	// remaining payload or the limit for the field being read.
	ErrTooLarge

	// ErrMalformedTx indicates transaction bytes that can not be decoded,
	// such as a segwit marker followed by a zero flag.
	ErrMalformedTx

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrCompactSizeMarker: "ErrCompactSizeMarker",
	ErrCompactSizeLength: "ErrCompactSizeLength",
	ErrTooLarge:          "ErrTooLarge",
	ErrMalformedTx:       "ErrMalformedTx",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// MessageError describes an issue with encoded data.
//
// This provides a mechanism for the caller to type assert the error to
// differentiate between general io errors such as io.EOF and issues that
// resulted from malformed encodings.
type MessageError struct {
	Func        string    // Function name
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e *MessageError) Error() string {
	if e.Func != "" {
		return fmt.Sprintf("%v: %v", e.Func, e.Description)
	}
	return e.Description
}

// messageError creates an error for the given function, error code and
// description.
func messageError(f string, c ErrorCode, desc string) *MessageError {
	return &MessageError{Func: f, ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether or not the provided error is a MessageError
// with the provided error code.
func IsErrorCode(err error, c ErrorCode) bool {
	var merr *MessageError
	return errors.As(err, &merr) && merr.ErrorCode == c
}
