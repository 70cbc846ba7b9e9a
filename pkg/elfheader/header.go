// Package elfheader decodes the fixed-size ELF file header.
//
// Parse validates the buffer, detects the class and data encoding, reads the
// 32-bit or 64-bit layout in place, byte-swaps it when the file was written in
// the other byte order, and projects it into Header. Unrecognized codes are
// never errors: they are kept as-is in the open code types (see IsKnown).
//
// Parsing does no I/O, does not allocate on success and never mutates the
// input, so buffers can be decoded concurrently.
package elfheader

// Header is the decoded ELF file header. It holds no reference to the input.
type Header struct {
	Class      Class
	Endian     Endian
	Version    Version
	OSABI      OSABI
	ABIVersion uint8

	Type          FileType
	Machine       Machine
	ObjectVersion uint32 // e_version

	Entry               Address
	ProgramHeaderOffset Address
	SectionHeaderOffset Address

	Flags                    uint32
	HeaderSize               uint16
	ProgramHeaderEntrySize   uint16
	ProgramHeaderCount       uint16
	SectionHeaderEntrySize   uint16
	SectionHeaderCount       uint16
	SectionHeaderStringIndex uint16
}

// Parse decodes the ELF file header at the start of data.
//
// The error is ErrInvalidFile (possibly wrapped) for truncated input or an
// undecodable class or data encoding, and *InvalidMagicError when the magic
// does not match.
func Parse(data []byte) (Header, error) {
	raw, err := NewRawHeader(data)
	if err != nil {
		return Header{}, err
	}
	return raw.Header(), nil
}

// Header projects the normalized record into a Header.
func (r RawHeader) Header() Header {
	h := r.Normalized()
	return Header{
		Class:      r.class,
		Endian:     r.endian,
		Version:    Version(h.Ident.Version),
		OSABI:      OSABI(h.Ident.OSABI),
		ABIVersion: h.Ident.ABIVersion,

		Type:          FileType(h.Type),
		Machine:       Machine(h.Machine),
		ObjectVersion: h.Version,

		Entry:               Address(h.Entry),
		ProgramHeaderOffset: Address(h.Phoff),
		SectionHeaderOffset: Address(h.Shoff),

		Flags:                    h.Flags,
		HeaderSize:               h.Ehsize,
		ProgramHeaderEntrySize:   h.Phentsize,
		ProgramHeaderCount:       h.Phnum,
		SectionHeaderEntrySize:   h.Shentsize,
		SectionHeaderCount:       h.Shnum,
		SectionHeaderStringIndex: h.Shstrndx,
	}
}
