// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestErrorCodeStringer tests the stringized output for the ErrorCode type.
func TestErrorCodeStringer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   ErrorCode
		want string
	}{
		{ErrCompactSizeMarker, "ErrCompactSizeMarker"},
		{ErrCompactSizeLength, "ErrCompactSizeLength"},
		{ErrTooLarge, "ErrTooLarge"},
		{ErrMalformedTx, "ErrMalformedTx"},
		{0xffff, "Unknown ErrorCode (65535)"},
	}

	// Detect additional error codes that don't have the stringer added.
	require.Equal(t, int(numErrorCodes), len(tests)-1,
		"it appears an error code was added without adding an "+
			"associated stringer test")

	for _, test := range tests {
		require.Equal(t, test.want, test.in.String())
	}
}

// TestMessageError tests the error output for the MessageError type.
func TestMessageError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   MessageError
		want string
	}{
		{
			MessageError{Description: "some error"},
			"some error",
		},
		{
			MessageError{Func: "foo", Description: "human-readable error"},
			"foo: human-readable error",
		},
	}

	for i, test := range tests {
		require.Equal(t, test.want, test.in.Error(), "test #%d", i)
	}
}

// TestIsErrorCode ensures wrapped message errors are recognized and unrelated
// errors are not.
func TestIsErrorCode(t *testing.T) {
	t.Parallel()

	err := messageError("f", ErrTooLarge, "too large")
	wrapped := fmt.Errorf("context: %w", err)

	require.True(t, IsErrorCode(err, ErrTooLarge))
	require.True(t, IsErrorCode(wrapped, ErrTooLarge))
	require.False(t, IsErrorCode(wrapped, ErrMalformedTx))
	require.False(t, IsErrorCode(io.EOF, ErrTooLarge))
	require.False(t, IsErrorCode(errors.New("plain"), ErrTooLarge))
}
