// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcscript/internal/log"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "btcscript.conf"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "btcscript.log"
)

var (
	defaultHomeDir    = btcutil.AppDataDir("btcscript", false)
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFilename)
	defaultLogDir     = filepath.Join(defaultHomeDir, defaultLogDirname)
)

// config defines the configuration options for btcscript.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion bool     `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile  string   `short:"C" long:"configfile" description:"Path to configuration file"`
	LogDir      string   `long:"logdir" description:"Directory to log output"`
	DebugLevel  string   `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	Script      string   `short:"s" long:"script" description:"Hex encoded script to decode"`
	Address     string   `short:"a" long:"address" description:"Base58 pay-to-pubkey-hash address to build a locking script for"`
	Tx          string   `long:"tx" description:"Hex encoded transaction whose scripts are decoded"`
	Stack       []string `long:"stack" description:"Hex encoded initial stack item, bottom first (may be repeated)"`
	Execute     bool     `short:"x" long:"execute" description:"Execute the script against the initial stack and print the verdict"`
	DupTop      bool     `long:"duptop" description:"Make OP_DUP duplicate the top of the stack instead of the bottom"`
	SingleTrue  bool     `long:"singletrue" description:"Require exactly one true item on the final stack instead of an empty stack"`

	stack [][]byte
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(defaultHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	switch logLevel {
	case "trace", "debug", "info", "warn", "error", "critical":
		return true
	}
	return false
}

// parseAndSetDebugLevels attempts to parse the specified debug level and set
// the levels accordingly.  An appropriate error is returned if anything is
// invalid.
func parseAndSetDebugLevels(debugLevel string) error {
	// When the specified string doesn't have any delimters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		// Validate debug log level.
		if !validLogLevel(debugLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, debugLevel)
		}

		// Change the logging level for all subsystems.
		log.SetLogLevels(debugLevel)

		return nil
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			str := "the specified debug level contains an invalid " +
				"subsystem/level pair [%v]"
			return fmt.Errorf(str, logLevelPair)
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		// Validate subsystem.
		if _, exists := log.SubsystemLoggers[subsysID]; !exists {
			str := "the specified subsystem [%v] is invalid -- " +
				"supported subsystems %v"
			return fmt.Errorf(str, subsysID, log.SupportedSubsystems())
		}

		// Validate log level.
		if !validLogLevel(logLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, logLevel)
		}

		log.SetLogLevel(subsysID, logLevel)
	}

	return nil
}

// errShowVersion is returned by loadConfig when the version flag was given.
var errShowVersion = errors.New("version requested")

// errShowSubsystems is returned by loadConfig when the debug level asked for
// the list of subsystems.
var errShowSubsystems = errors.New("subsystems requested")

// loadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in btcscript functioning properly without any config
// settings while still allowing the user to override settings with config
// files and command line options.  Command line options always take
// precedence.
func loadConfig(args []string) (*config, []string, error) {
	// Default config.
	cfg := config{
		ConfigFile: defaultConfigFile,
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
	}

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified.
	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.HelpFlag)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}

	if preCfg.ShowVersion {
		return nil, nil, errShowVersion
	}

	// Load additional config from file.  A missing file is not an error.
	parser := flags.NewParser(&cfg, flags.HelpFlag)
	err = flags.NewIniParser(parser).ParseFile(cleanAndExpandPath(preCfg.ConfigFile))
	if err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}

	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		return nil, nil, errShowSubsystems
	}

	// Parse, validate, and set debug log level(s).
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return nil, nil, fmt.Errorf("loadConfig: %w", err)
	}

	// Exactly one script source must be given.
	sources := 0
	for _, s := range []string{cfg.Script, cfg.Address, cfg.Tx} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return nil, nil, errors.New("loadConfig: exactly one of --script, " +
			"--address or --tx must be specified")
	}

	if cfg.Tx != "" && (cfg.Execute || len(cfg.Stack) != 0) {
		return nil, nil, errors.New("loadConfig: --execute and --stack " +
			"can not be used with --tx")
	}

	// Decode the initial stack items.
	cfg.stack = make([][]byte, 0, len(cfg.Stack))
	for i, item := range cfg.Stack {
		b, err := hex.DecodeString(item)
		if err != nil {
			return nil, nil, fmt.Errorf("loadConfig: stack item %d "+
				"is not valid hex: %w", i, err)
		}
		cfg.stack = append(cfg.stack, b)
	}

	return &cfg, remainingArgs, nil
}
