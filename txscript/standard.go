// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/base58"
)

const (
	// PubKeyHashLen is the length of the HASH160 of a public key.
	PubKeyHashLen = 20

	// PubKeyHashAddrID is the base58check version byte of mainnet
	// pay-to-pubkey-hash addresses.
	PubKeyHashAddrID = 0x00

	// TestNetPubKeyHashAddrID is the base58check version byte of testnet
	// pay-to-pubkey-hash addresses.
	TestNetPubKeyHashAddrID = 0x6f
)

// Hash160 calculates the hash ripemd160(sha256(b)), the same digest
// OP_HASH160 leaves on the stack.
func Hash160(buf []byte) []byte {
	return hash160(buf)
}

// isPubKeyHashScript returns whether or not the passed script is a standard
// pay-to-pubkey-hash script.
func isPubKeyHashScript(script []byte) bool {
	return extractPubKeyHash(script) != nil
}

// extractPubKeyHash extracts the public key hash from the passed script if it
// is a standard pay-to-pubkey-hash script.  It will return nil otherwise.
func extractPubKeyHash(script []byte) []byte {
	// A pay-to-pubkey-hash script is of the form:
	//  OP_DUP OP_HASH160 <20-byte hash> OP_EQUALVERIFY OP_CHECKSIG
	if len(script) == 25 &&
		script[0] == OP_DUP &&
		script[1] == OP_HASH160 &&
		script[2] == OP_DATA_20 &&
		script[23] == OP_EQUALVERIFY &&
		script[24] == OP_CHECKSIG {

		return script[3:23]
	}

	return nil
}

// IsPayToPubKeyHash returns true if the script is in the standard
// pay-to-pubkey-hash (P2PKH) format, false otherwise.
func IsPayToPubKeyHash(script []byte) bool {
	return isPubKeyHashScript(script)
}

// ExtractPubKeyHash returns the 20-byte public key hash committed to by a
// standard pay-to-pubkey-hash script, or nil when the script is not one.
func ExtractPubKeyHash(script []byte) []byte {
	return extractPubKeyHash(script)
}

// PayToPubKeyHashScript creates a new script to pay a transaction output to a
// 20-byte pubkey hash.
func PayToPubKeyHashScript(pubKeyHash []byte) ([]byte, error) {
	if len(pubKeyHash) != PubKeyHashLen {
		str := fmt.Sprintf("pubkey hash must be %d bytes, got %d",
			PubKeyHashLen, len(pubKeyHash))
		return nil, scriptError(ErrUnsupportedAddress, str)
	}

	return NewScriptBuilder().AddOp(OP_DUP).AddOp(OP_HASH160).
		AddData(pubKeyHash).AddOp(OP_EQUALVERIFY).AddOp(OP_CHECKSIG).
		Script()
}

// PayToPubKeyScript creates a new script to pay a transaction output to a
// public key.  The key must be a valid serialized secp256k1 point.
func PayToPubKeyScript(serializedPubKey []byte) ([]byte, error) {
	if _, err := btcec.ParsePubKey(serializedPubKey); err != nil {
		str := fmt.Sprintf("invalid public key %x: %v",
			serializedPubKey, err)
		return nil, scriptError(ErrInvalidPubKey, str)
	}

	return NewScriptBuilder().AddData(serializedPubKey).
		AddOp(OP_CHECKSIG).Script()
}

// DecodePubKeyHashAddress decodes a base58check encoded pay-to-pubkey-hash
// address and returns the 20-byte hash it commits to.  Both mainnet and
// testnet version bytes are accepted.
func DecodePubKeyHashAddress(addr string) ([]byte, error) {
	decoded, netID, err := base58.CheckDecode(addr)
	if err != nil {
		str := fmt.Sprintf("failed to decode address %q: %v", addr, err)
		return nil, scriptError(ErrUnsupportedAddress, str)
	}

	switch {
	case netID != PubKeyHashAddrID && netID != TestNetPubKeyHashAddrID:
		str := fmt.Sprintf("address %q has unsupported version 0x%02x",
			addr, netID)
		return nil, scriptError(ErrUnsupportedAddress, str)

	case len(decoded) != PubKeyHashLen:
		str := fmt.Sprintf("address %q decodes to %d bytes instead of "+
			"%d", addr, len(decoded), PubKeyHashLen)
		return nil, scriptError(ErrUnsupportedAddress, str)
	}

	return decoded, nil
}

// EncodePubKeyHashAddress encodes a 20-byte public key hash as a base58check
// pay-to-pubkey-hash address with the given version byte.
func EncodePubKeyHashAddress(pubKeyHash []byte, netID byte) (string, error) {
	if len(pubKeyHash) != PubKeyHashLen {
		str := fmt.Sprintf("pubkey hash must be %d bytes, got %d",
			PubKeyHashLen, len(pubKeyHash))
		return "", scriptError(ErrUnsupportedAddress, str)
	}
	return base58.CheckEncode(pubKeyHash, netID), nil
}

// PayToAddrScript creates a new script to pay a transaction output to the
// specified base58check pay-to-pubkey-hash address.
func PayToAddrScript(addr string) ([]byte, error) {
	pubKeyHash, err := DecodePubKeyHashAddress(addr)
	if err != nil {
		return nil, err
	}
	return PayToPubKeyHashScript(pubKeyHash)
}
