// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"
)

// SigHashType represents the hash type a signature commits to.  The values
// are an enumeration and are not the tag bytes used on the wire.
type SigHashType uint8

// Hash types a signature may declare.
const (
	SigHashAll SigHashType = iota
	SigHashNone
	SigHashSingle
	SigHashAnyOneCanPay

	// SigHashDefault is only implied when the tag byte is missing and has
	// no tag byte of its own.
	SigHashDefault

	// SigHashOutputMask and SigHashInputMask select bit groups within a
	// tag byte and can not appear on the wire by themselves.
	SigHashOutputMask
	SigHashInputMask
)

// sigHashTags maps each serializable hash type to its tag byte.
var sigHashTags = map[SigHashType]byte{
	SigHashAll:          0x01,
	SigHashNone:         0x02,
	SigHashSingle:       0x03,
	SigHashAnyOneCanPay: 0x80,
}

// sigHashTypeStrings maps hash types back to their names for pretty printing.
var sigHashTypeStrings = map[SigHashType]string{
	SigHashAll:          "SIGHASH_ALL",
	SigHashNone:         "SIGHASH_NONE",
	SigHashSingle:       "SIGHASH_SINGLE",
	SigHashAnyOneCanPay: "SIGHASH_ANYONECANPAY",
	SigHashDefault:      "SIGHASH_DEFAULT",
	SigHashOutputMask:   "SIGHASH_OUTPUT_MASK",
	SigHashInputMask:    "SIGHASH_INPUT_MASK",
}

// String returns the SigHashType as a human-readable name.
func (t SigHashType) String() string {
	if s, ok := sigHashTypeStrings[t]; ok {
		return s
	}
	return fmt.Sprintf("Unknown SigHashType (%d)", uint8(t))
}

// Tag returns the tag byte the hash type is serialized as.  It fails with
// ErrUnsupportedSigHashType for hash types without one.
func (t SigHashType) Tag() (byte, error) {
	tag, ok := sigHashTags[t]
	if !ok {
		str := fmt.Sprintf("hash type %v has no tag byte", t)
		return 0, scriptError(ErrUnsupportedSigHashType, str)
	}
	return tag, nil
}

// sigHashTypeFromTag returns the hash type identified by a tag byte.
func sigHashTypeFromTag(tag byte) (SigHashType, error) {
	for hashType, t := range sigHashTags {
		if t == tag {
			return hashType, nil
		}
	}
	str := fmt.Sprintf("0x%02x is not a known hash type tag", tag)
	return 0, scriptError(ErrInvalidSigHashType, str)
}

// Signature is a raw signature together with the hash type it commits to.
// The raw bytes are carried opaquely and are never checked.
type Signature struct {
	Raw      []byte
	HashType SigHashType
}

// Bytes serializes the signature as its raw bytes followed by the tag byte of
// its hash type.
func (s *Signature) Bytes() ([]byte, error) {
	tag, err := s.HashType.Tag()
	if err != nil {
		return nil, err
	}

	b := make([]byte, 0, len(s.Raw)+1)
	b = append(b, s.Raw...)
	return append(b, tag), nil
}

// ParseSignature splits a serialized signature into the raw signature and the
// hash type selected by its final byte.  The returned raw bytes alias b.
func ParseSignature(b []byte) (*Signature, error) {
	if len(b) == 0 {
		return nil, scriptError(ErrInvalidSigHashType,
			"empty signature has no hash type")
	}

	hashType, err := sigHashTypeFromTag(b[len(b)-1])
	if err != nil {
		return nil, err
	}
	return &Signature{Raw: b[:len(b)-1], HashType: hashType}, nil
}
