// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package log

import (
	"path/filepath"
	"testing"

	"github.com/btcsuite/btclog"
	"github.com/stretchr/testify/require"
)

// TestSetLogLevels ensures the level of every subsystem follows SetLogLevels
// and that unknown subsystems and levels are handled.
func TestSetLogLevels(t *testing.T) {
	SetLogLevels("debug")
	for id, logger := range SubsystemLoggers {
		require.Equal(t, btclog.LevelDebug, logger.Level(), id)
	}

	SetLogLevel("SCRP", "trace")
	require.Equal(t, btclog.LevelTrace, SubsystemLoggers["SCRP"].Level())
	require.Equal(t, btclog.LevelDebug, SubsystemLoggers["BSCR"].Level())

	// Invalid levels fall back to info.
	SetLogLevel("BSCR", "bogus")
	require.Equal(t, btclog.LevelInfo, SubsystemLoggers["BSCR"].Level())

	// Unknown subsystems are ignored.
	SetLogLevel("NOPE", "trace")
	require.NotContains(t, SubsystemLoggers, "NOPE")

	SetLogLevels("info")
}

// TestSupportedSubsystems ensures the subsystems are listed in sorted order.
func TestSupportedSubsystems(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"BSCR", "SCRP"}, SupportedSubsystems())
}

// TestInitLogRotator ensures the rotator is created along with its directory.
func TestInitLogRotator(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "btcscript.log")
	require.NoError(t, InitLogRotator(logFile))
	require.NotNil(t, LogRotator)

	BscrLog.Infof("rotator initialized")

	require.NoError(t, LogRotator.Close())
	LogRotator = nil
}

// TestPickNoun tests the singular and plural selection.
func TestPickNoun(t *testing.T) {
	t.Parallel()

	require.Equal(t, "item", PickNoun(1, "item", "items"))
	require.Equal(t, "items", PickNoun(0, "item", "items"))
	require.Equal(t, "items", PickNoun(2, "item", "items"))
}
