// Package elfwriter serialises decoded ELF file headers back to their on-disk
// layout, in the byte order and class recorded in the header itself.
//
// Only the file header is written. Program and section header tables are not
// produced, so the offsets and counts are copied from the header as given.
package elfwriter

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/polarsignals/elf-header/pkg/elfheader"
)

// writer holds the state of a single header write. The first error is sticky.
type writer struct {
	w         io.Writer
	byteOrder binary.ByteOrder
	class     elfheader.Class

	err error

	n int64 // bytes written, for validation after writeFileHeader.

	standardSizes bool
}

// WriteHeader writes the file header of hdr to w.
func WriteHeader(w io.Writer, hdr *elfheader.Header, opts ...Option) error {
	byteOrder := hdr.Endian.ByteOrder()
	if byteOrder == nil {
		return errors.New("byte order has to be specified")
	}

	switch hdr.Class {
	case elfheader.Class32:
	case elfheader.Class64:
		// Ok
	default:
		return errors.New("unknown ELF class")
	}

	wrt := &writer{
		w:         w,
		byteOrder: byteOrder,
		class:     hdr.Class,
	}
	for _, opt := range opts {
		opt(wrt)
	}

	if err := wrt.writeFileHeader(hdr); err != nil {
		return fmt.Errorf("failed to write file header: %w", err)
	}
	return nil
}

// Encode returns the on-disk bytes of hdr.
func Encode(hdr *elfheader.Header, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteHeader(&buf, hdr, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFileHeader writes the file header using given information.
func (w *writer) writeFileHeader(hdr *elfheader.Header) error {
	var ehsize, phentsize, shentsize uint16
	switch w.class {
	case elfheader.Class32:
		ehsize = elfheader.Header32Size
		phentsize = 32
		shentsize = 40
	case elfheader.Class64:
		ehsize = elfheader.Header64Size
		phentsize = 56
		shentsize = 64
	default:
		return errors.New("unknown ELF class")
	}
	if !w.standardSizes || hdr.HeaderSize != 0 {
		ehsize = hdr.HeaderSize
	}
	if !w.standardSizes || hdr.ProgramHeaderEntrySize != 0 {
		phentsize = hdr.ProgramHeaderEntrySize
	}
	if !w.standardSizes || hdr.SectionHeaderEntrySize != 0 {
		shentsize = hdr.SectionHeaderEntrySize
	}

	// e_ident
	w.write([]byte{
		0x7f, 'E', 'L', 'F', // Magic number
		byte(hdr.Class),
		byte(hdr.Endian),
		byte(hdr.Version),
		byte(hdr.OSABI),
		hdr.ABIVersion,
		0, 0, 0, 0, 0, 0, 0, // Padding
	})

	w.u16(uint16(hdr.Type))    // e_type
	w.u16(uint16(hdr.Machine)) // e_machine
	w.u32(hdr.ObjectVersion)   // e_version

	switch w.class {
	case elfheader.Class32:
		w.addr32(hdr.Entry)               // e_entry
		w.addr32(hdr.ProgramHeaderOffset) // e_phoff
		w.addr32(hdr.SectionHeaderOffset) // e_shoff
	case elfheader.Class64:
		w.u64(uint64(hdr.Entry))               // e_entry
		w.u64(uint64(hdr.ProgramHeaderOffset)) // e_phoff
		w.u64(uint64(hdr.SectionHeaderOffset)) // e_shoff
	}

	w.u32(hdr.Flags)                    // e_flags
	w.u16(ehsize)                       // e_ehsize
	w.u16(phentsize)                    // e_phentsize
	w.u16(hdr.ProgramHeaderCount)       // e_phnum
	w.u16(shentsize)                    // e_shentsize
	w.u16(hdr.SectionHeaderCount)       // e_shnum
	w.u16(hdr.SectionHeaderStringIndex) // e_shstrndx

	if w.err != nil {
		return w.err
	}

	// Sanity check, number of bytes written should match the layout of the class.
	want := int64(elfheader.Header64Size)
	if w.class == elfheader.Class32 {
		want = elfheader.Header32Size
	}
	if w.n != want {
		return errors.New("internal error, ELF header size")
	}
	return nil
}

// addr32 writes an address into a 32-bit field, recording an error if it does not fit.
func (w *writer) addr32(a elfheader.Address) {
	if uint64(a) > 0xffffffff && w.err == nil {
		w.err = fmt.Errorf("address %s does not fit in ELFCLASS32", a)
	}
	w.u32(uint32(a))
}

func (w *writer) write(buf []byte) {
	n, err := w.w.Write(buf)
	w.n += int64(n)
	if err != nil && w.err == nil {
		w.err = err
	}
}

func (w *writer) u16(n uint16) {
	var b [2]byte
	w.byteOrder.PutUint16(b[:], n)
	w.write(b[:])
}

func (w *writer) u32(n uint32) {
	var b [4]byte
	w.byteOrder.PutUint32(b[:], n)
	w.write(b[:])
}

func (w *writer) u64(n uint64) {
	var b [8]byte
	w.byteOrder.PutUint64(b[:], n)
	w.write(b[:])
}
