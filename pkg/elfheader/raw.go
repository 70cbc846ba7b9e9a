package elfheader

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/cpu"
)

// Magic is the four byte sequence every ELF file starts with.
var Magic = [4]byte{0x7f, 'E', 'L', 'F'}

var nativeEndian = func() Endian {
	if cpu.IsBigEndian {
		return EndianBig
	}
	return EndianLittle
}()

// NativeEndian returns the byte order of the machine doing the decoding.
func NativeEndian() Endian { return nativeEndian }

// HasMagic reports whether data starts with the ELF magic.
func HasMagic(data []byte) bool {
	return bytes.HasPrefix(data, Magic[:])
}

// RawHeader is a read-only view over the leading header bytes of a buffer.
// It borrows the caller's memory and never writes to it.
type RawHeader struct {
	input  []byte
	data   []byte
	class  Class
	endian Endian
}

// NewRawHeader validates data and returns a view over its first 52 or 64 bytes.
func NewRawHeader(data []byte) (RawHeader, error) {
	if len(data) < minIdentLen {
		return RawHeader{}, fmt.Errorf("%w: %d bytes is too short for e_ident", ErrInvalidFile, len(data))
	}
	if !HasMagic(data) {
		e := &InvalidMagicError{}
		copy(e.Magic[:], data)
		return RawHeader{}, e
	}

	class := Class(data[classOffset])
	size := class.recordSize()
	if size == 0 {
		return RawHeader{}, fmt.Errorf("%w: unknown class %d", ErrInvalidFile, data[classOffset])
	}
	if len(data) < size {
		return RawHeader{}, fmt.Errorf("%w: %s header needs %d bytes, got %d", ErrInvalidFile, class, size, len(data))
	}

	endian := Endian(data[dataOffset])
	if !endian.IsKnown() {
		return RawHeader{}, fmt.Errorf("%w: unknown data encoding %d", ErrInvalidFile, data[dataOffset])
	}

	return RawHeader{
		input:  data,
		data:   data[:size:size],
		class:  class,
		endian: endian,
	}, nil
}

// Class returns the detected address width.
func (r RawHeader) Class() Class { return r.class }

// Endian returns the byte order the file was written in.
func (r RawHeader) Endian() Endian { return r.endian }

// Magic returns the first four bytes of the header.
func (r RawHeader) Magic() [4]byte {
	var m [4]byte
	copy(m[:], r.data)
	return m
}

// Bytes returns the header prefix of the input, exactly 52 or 64 bytes long.
// The slice aliases the caller's buffer.
func (r RawHeader) Bytes() []byte { return r.data }

// Input returns the whole buffer the view was created from, header included.
func (r RawHeader) Input() []byte { return r.input }

// NeedsSwap reports whether multi-byte fields must be reversed to be read natively.
func (r RawHeader) NeedsSwap() bool { return r.endian != nativeEndian }

// Header32 reinterprets the bytes as an ELFCLASS32 record in native byte order,
// without normalization. ok is false for ELFCLASS64 views.
func (r RawHeader) Header32() (h Header32, ok bool) {
	if r.class != Class32 {
		return Header32{}, false
	}
	return decodeHeader32(r.data, nativeOrder()), true
}

// Header64 reinterprets the bytes as an ELFCLASS64 record in native byte order,
// without normalization. ok is false for ELFCLASS32 views.
func (r RawHeader) Header64() (h Header64, ok bool) {
	if r.class != Class64 {
		return Header64{}, false
	}
	return decodeHeader64(r.data, nativeOrder()), true
}

// Normalized returns the record with every field in native byte order, with
// ELFCLASS32 addresses zero-extended.
func (r RawHeader) Normalized() Header64 {
	swap := r.NeedsSwap()
	if h, ok := r.Header32(); ok {
		if swap {
			h = h.SwapBytes()
		}
		return h.widen()
	}
	h, _ := r.Header64()
	if swap {
		h = h.SwapBytes()
	}
	return h
}

func nativeOrder() binary.ByteOrder { return nativeEndian.ByteOrder() }
