// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	// compactSizeUint16 is the marker preceding a two byte value.
	compactSizeUint16 = 0xfd

	// compactSizeUint32 is the marker preceding a four byte value.
	compactSizeUint32 = 0xfe

	// compactSizeUint64 is the marker preceding an eight byte value.
	compactSizeUint64 = 0xff
)

// littleEndian is a convenience variable since binary.LittleEndian is quite
// long.
var littleEndian = binary.LittleEndian

// EncodeCompactSize returns the CompactSize encoding of v using the smallest
// of the four widths that can hold it.
func EncodeCompactSize(v uint64) []byte {
	switch {
	case v < compactSizeUint16:
		return []byte{uint8(v)}

	case v <= math.MaxUint16:
		buf := make([]byte, 3)
		buf[0] = compactSizeUint16
		littleEndian.PutUint16(buf[1:], uint16(v))
		return buf

	case v <= math.MaxUint32:
		buf := make([]byte, 5)
		buf[0] = compactSizeUint32
		littleEndian.PutUint32(buf[1:], uint32(v))
		return buf
	}

	buf := make([]byte, 9)
	buf[0] = compactSizeUint64
	littleEndian.PutUint64(buf[1:], v)
	return buf
}

// DecodeCompactSize decodes a complete CompactSize encoding.  The length of b
// selects the width, so b must hold exactly 1, 3, 5 or 9 bytes, and the first
// byte of a multi-byte encoding must be the marker for that width.  Encodings
// that use more bytes than the value needs are accepted.
func DecodeCompactSize(b []byte) (uint64, error) {
	var marker byte
	switch len(b) {
	case 1:
		return uint64(b[0]), nil
	case 3:
		marker = compactSizeUint16
	case 5:
		marker = compactSizeUint32
	case 9:
		marker = compactSizeUint64
	default:
		str := fmt.Sprintf("unsupported number of bytes %d", len(b))
		return 0, messageError("DecodeCompactSize", ErrCompactSizeLength, str)
	}

	if b[0] != marker {
		str := fmt.Sprintf("%d byte encoding must start with 0x%02x, "+
			"got 0x%02x", len(b), marker, b[0])
		return 0, messageError("DecodeCompactSize", ErrCompactSizeMarker, str)
	}

	switch marker {
	case compactSizeUint16:
		return uint64(littleEndian.Uint16(b[1:])), nil
	case compactSizeUint32:
		return uint64(littleEndian.Uint32(b[1:])), nil
	}
	return littleEndian.Uint64(b[1:]), nil
}

// ReadVarInt reads a CompactSize encoded integer from r and returns it as a
// uint64.  The discriminant byte is read first followed by exactly the number
// of bytes it names.
func ReadVarInt(r io.Reader) (uint64, error) {
	var buf [9]byte
	if _, err := io.ReadFull(r, buf[:1]); err != nil {
		return 0, err
	}

	var n int
	switch buf[0] {
	case compactSizeUint16:
		n = 3
	case compactSizeUint32:
		n = 5
	case compactSizeUint64:
		n = 9
	default:
		return uint64(buf[0]), nil
	}

	if _, err := io.ReadFull(r, buf[1:n]); err != nil {
		return 0, err
	}
	return DecodeCompactSize(buf[:n])
}

// WriteVarInt serializes val to w as a CompactSize using the smallest width
// that can hold it.
func WriteVarInt(w io.Writer, val uint64) error {
	_, err := w.Write(EncodeCompactSize(val))
	return err
}

// VarIntSerializeSize returns the number of bytes it would take to serialize
// val as a CompactSize.
func VarIntSerializeSize(val uint64) int {
	// The value is small enough to be represented by itself, so it's
	// just 1 byte.
	if val < compactSizeUint16 {
		return 1
	}

	// Discriminant 1 byte plus 2 bytes for the uint16.
	if val <= math.MaxUint16 {
		return 3
	}

	// Discriminant 1 byte plus 4 bytes for the uint32.
	if val <= math.MaxUint32 {
		return 5
	}

	// Discriminant 1 byte plus 8 bytes for the uint64.
	return 9
}

// ReadVarBytes reads a variable length byte array.  A byte array is encoded
// as a CompactSize containing the length of the array followed by the bytes
// themselves.  An error is returned if the length is greater than the passed
// maxAllowed parameter which helps protect against memory exhaustion attacks
// and forced panics through malformed data.  The fieldName parameter is only
// used for the error message so it provides more context in the error.
func ReadVarBytes(r io.Reader, maxAllowed uint32, fieldName string) ([]byte, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}

	// Prevent byte array larger than the max message size.  It would
	// be possible to cause memory exhaustion and panics without a sane
	// upper bound on this count.
	if count > uint64(maxAllowed) {
		str := fmt.Sprintf("%s is larger than the max allowed size "+
			"[count %d, max %d]", fieldName, count, maxAllowed)
		return nil, messageError("ReadVarBytes", ErrTooLarge, str)
	}

	b := make([]byte, count)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// WriteVarBytes serializes a variable length byte array to w as a CompactSize
// containing the number of bytes, followed by the bytes themselves.
func WriteVarBytes(w io.Writer, bytes []byte) error {
	slen := uint64(len(bytes))
	if err := WriteVarInt(w, slen); err != nil {
		return err
	}

	_, err := w.Write(bytes)
	return err
}

// readUint32 reads a little-endian uint32 from r.
func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return littleEndian.Uint32(buf[:]), nil
}

// readUint64 reads a little-endian uint64 from r.
func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return littleEndian.Uint64(buf[:]), nil
}

// writeUint32 writes val to w as a little-endian uint32.
func writeUint32(w io.Writer, val uint32) error {
	var buf [4]byte
	littleEndian.PutUint32(buf[:], val)
	_, err := w.Write(buf[:])
	return err
}

// writeUint64 writes val to w as a little-endian uint64.
func writeUint64(w io.Writer, val uint64) error {
	var buf [8]byte
	littleEndian.PutUint64(buf[:], val)
	_, err := w.Write(buf[:])
	return err
}
