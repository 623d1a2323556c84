// Copyright (c) 2017 The btcsuite developers
// Copyright (c) 2015-2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"
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
		{ErrInternal, "ErrInternal"},
		{ErrInvalidOpcode, "ErrInvalidOpcode"},
		{ErrInvalidPushBytes, "ErrInvalidPushBytes"},
		{ErrUnencodablePush, "ErrUnencodablePush"},
		{ErrMalformedPush, "ErrMalformedPush"},
		{ErrUnsupportedSigHashType, "ErrUnsupportedSigHashType"},
		{ErrInvalidSigHashType, "ErrInvalidSigHashType"},
		{ErrUnsupportedAddress, "ErrUnsupportedAddress"},
		{ErrInvalidPubKey, "ErrInvalidPubKey"},
		{ErrUnexpectedData, "ErrUnexpectedData"},
		{ErrPushLengthMismatch, "ErrPushLengthMismatch"},
		{ErrInvalidStackOperation, "ErrInvalidStackOperation"},
		{ErrEqualVerify, "ErrEqualVerify"},
		{ErrCleanStack, "ErrCleanStack"},
		{ErrEvalFalse, "ErrEvalFalse"},
		{ErrScriptUnfinished, "ErrScriptUnfinished"},
		{ErrScriptDone, "ErrScriptDone"},
		{ErrUnsupportedOpcode, "ErrUnsupportedOpcode"},
		{0xffff, "Unknown ErrorCode (65535)"},
	}

	// Detect additional error codes that don't have the stringer added.
	if len(tests)-1 != int(numErrorCodes) {
		t.Errorf("It appears an error code was added without adding an " +
			"associated stringer test")
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		result := test.in.String()
		if result != test.want {
			t.Errorf("String #%d\n got: %s want: %s", i, result,
				test.want)
			continue
		}
	}
}

// TestError tests the error output for the Error type.
func TestError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Error
		want string
	}{
		{
			Error{Description: "some error"},
			"some error",
		},
		{
			Error{Description: "human-readable error"},
			"human-readable error",
		},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		result := test.in.Error()
		if result != test.want {
			t.Errorf("Error #%d\n got: %s want: %s", i, result,
				test.want)
			continue
		}
	}
}

// TestIsErrorCode ensures error codes are detected through wrapping and that
// only the execution failures are classified as verdicts.
func TestIsErrorCode(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("context: %w", scriptError(ErrEqualVerify, "x"))
	require.True(t, IsErrorCode(err, ErrEqualVerify))
	require.False(t, IsErrorCode(err, ErrCleanStack))
	require.False(t, IsErrorCode(fmt.Errorf("plain"), ErrEqualVerify))

	verdicts := map[ErrorCode]bool{
		ErrUnexpectedData:        true,
		ErrPushLengthMismatch:    true,
		ErrInvalidStackOperation: true,
		ErrEqualVerify:           true,
		ErrCleanStack:            true,
		ErrEvalFalse:             true,
	}
	for c := ErrorCode(0); c < numErrorCodes; c++ {
		require.Equal(t, verdicts[c], isVerdictError(scriptError(c, "")),
			"code %v", c)
	}
	require.False(t, isVerdictError(nil))
}
