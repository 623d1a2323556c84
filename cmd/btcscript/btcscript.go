// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcscript/internal/log"
	"github.com/btcsuite/btcscript/internal/version"
	"github.com/btcsuite/btcscript/txscript"
	"github.com/btcsuite/btcscript/wire"
	flags "github.com/jessevdk/go-flags"
)

// scriptFlags returns the engine flags selected by the configuration.
func scriptFlags(cfg *config) txscript.ScriptFlags {
	sf := txscript.ScriptVerifyNone
	if cfg.DupTop {
		sf |= txscript.ScriptDupTopOfStack
	}
	if cfg.SingleTrue {
		sf |= txscript.ScriptVerifySingleTrue
	}
	return sf
}

// describeScript writes the hex and disassembly of script to w, prefixed by
// label.  Pay-to-pubkey-hash scripts also get their mainnet address.
func describeScript(w io.Writer, label string, script []byte) {
	disasm, err := txscript.DisasmString(script)
	if err != nil {
		log.BscrLog.Debugf("Unable to fully disassemble %s: %v", label, err)
	}
	fmt.Fprintf(w, "%s hex: %x\n", label, script)
	fmt.Fprintf(w, "%s asm: %s\n", label, disasm)

	if hash := txscript.ExtractPubKeyHash(script); hash != nil {
		addr, err := txscript.EncodePubKeyHashAddress(hash,
			txscript.PubKeyHashAddrID)
		if err == nil {
			fmt.Fprintf(w, "%s address: %s\n", label, addr)
		}
	}
}

// runScript decodes and optionally executes a single script.
func runScript(cfg *config, w io.Writer, script []byte) error {
	terms, err := txscript.ParseScript(script)
	if err != nil {
		return err
	}
	describeScript(w, "script", script)
	fmt.Fprintf(w, "script terms: %d\n", len(terms))

	if !cfg.Execute {
		return nil
	}

	log.BscrLog.Debugf("Executing %d %s against %d stack %s", len(terms),
		log.PickNoun(uint64(len(terms)), "term", "terms"), len(cfg.stack),
		log.PickNoun(uint64(len(cfg.stack)), "item", "items"))

	valid, err := txscript.Interpret(terms, cfg.stack, scriptFlags(cfg))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "verdict: %v\n", valid)
	return nil
}

// runTx decodes a transaction and describes the scripts it carries.
func runTx(w io.Writer, rawTx []byte) error {
	var tx wire.MsgTx
	r := bytes.NewReader(rawTx)
	if err := tx.Deserialize(r); err != nil {
		return err
	}
	if r.Len() != 0 {
		log.BscrLog.Warnf("Ignoring %d trailing %s after the transaction",
			r.Len(), log.PickNoun(uint64(r.Len()), "byte", "bytes"))
	}

	fmt.Fprintf(w, "txid: %v\n", tx.TxHash())
	if tx.HasWitness() {
		fmt.Fprintf(w, "wtxid: %v\n", tx.WitnessHash())
	}
	fmt.Fprintf(w, "version: %d\n", tx.Version)
	fmt.Fprintf(w, "locktime: %d\n", tx.LockTime)

	for i, txIn := range tx.TxIn {
		label := fmt.Sprintf("input %d", i)
		fmt.Fprintf(w, "%s outpoint: %v\n", label, txIn.PreviousOutPoint)
		describeScript(w, label+" sigscript", txIn.SignatureScript)
		for j, item := range txIn.Witness {
			fmt.Fprintf(w, "%s witness %d: %x\n", label, j, item)
		}
		fmt.Fprintf(w, "%s sequence: %d\n", label, txIn.Sequence)
	}
	for i, txOut := range tx.TxOut {
		label := fmt.Sprintf("output %d", i)
		fmt.Fprintf(w, "%s value: %d\n", label, txOut.Value)
		describeScript(w, label+" pkscript", txOut.PkScript)
	}
	return nil
}

// run performs the work selected by the configuration and writes the results
// to w.
func run(cfg *config, w io.Writer) error {
	switch {
	case cfg.Tx != "":
		rawTx, err := hex.DecodeString(cfg.Tx)
		if err != nil {
			return fmt.Errorf("transaction is not valid hex: %w", err)
		}
		return runTx(w, rawTx)

	case cfg.Address != "":
		script, err := txscript.PayToAddrScript(cfg.Address)
		if err != nil {
			return err
		}
		return runScript(cfg, w, script)
	}

	script, err := hex.DecodeString(cfg.Script)
	if err != nil {
		return fmt.Errorf("script is not valid hex: %w", err)
	}
	return runScript(cfg, w, script)
}

// realMain is the real main function for the utility.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
func realMain() error {
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))

	// Load configuration and parse command line.
	cfg, _, err := loadConfig(os.Args[1:])
	switch {
	case errors.Is(err, errShowVersion):
		fmt.Println(version.Banner(appName))
		return nil

	case errors.Is(err, errShowSubsystems):
		fmt.Println("Supported subsystems", log.SupportedSubsystems())
		return nil

	case err != nil:
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			return nil
		}
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintf(os.Stderr, "Use %s -h to show usage\n", appName)
		return err
	}

	// Initialize log rotation.  After log rotation has been initialized,
	// the logger variables may be used.
	err = log.InitLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer func() {
		if log.LogRotator != nil {
			log.LogRotator.Close()
		}
	}()

	log.BscrLog.Debugf("Version %s", version.String())

	if err := run(cfg, os.Stdout); err != nil {
		log.BscrLog.Errorf("%v", err)
		return err
	}
	return nil
}

func main() {
	// Work around defer not working after os.Exit()
	if err := realMain(); err != nil {
		os.Exit(1)
	}
}
