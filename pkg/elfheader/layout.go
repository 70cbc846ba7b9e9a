package elfheader

import (
	"encoding/binary"
	"math/bits"
)

const (
	// IdentSize is the size of e_ident.
	IdentSize = 16
	// Header32Size is the size of the ELFCLASS32 file header.
	Header32Size = 52
	// Header64Size is the size of the ELFCLASS64 file header.
	Header64Size = 64

	classOffset = 4
	dataOffset  = 5
	minIdentLen = classOffset + 1
)

// Ident mirrors e_ident. All fields are single bytes, so it never needs swapping.
type Ident struct {
	Magic      [4]byte /* 0x7f 'E' 'L' 'F' */
	Class      byte    /* EI_CLASS */
	Data       byte    /* EI_DATA */
	Version    byte    /* EI_VERSION */
	OSABI      byte    /* EI_OSABI */
	ABIVersion byte    /* EI_ABIVERSION */
	Pad        [7]byte
}

// Header32 is the byte-exact ELFCLASS32 file header.
type Header32 struct {
	Ident     Ident  /* File identification. */
	Type      uint16 /* File type. */
	Machine   uint16 /* Machine architecture. */
	Version   uint32 /* ELF format version. */
	Entry     uint32 /* Entry point. */
	Phoff     uint32 /* Program header file offset. */
	Shoff     uint32 /* Section header file offset. */
	Flags     uint32 /* Architecture-specific flags. */
	Ehsize    uint16 /* Size of ELF header in bytes. */
	Phentsize uint16 /* Size of program header entry. */
	Phnum     uint16 /* Number of program header entries. */
	Shentsize uint16 /* Size of section header entry. */
	Shnum     uint16 /* Number of section header entries. */
	Shstrndx  uint16 /* Section name strings section. */
}

// Header64 is the byte-exact ELFCLASS64 file header.
type Header64 struct {
	Ident     Ident  /* File identification. */
	Type      uint16 /* File type. */
	Machine   uint16 /* Machine architecture. */
	Version   uint32 /* ELF format version. */
	Entry     uint64 /* Entry point. */
	Phoff     uint64 /* Program header file offset. */
	Shoff     uint64 /* Section header file offset. */
	Flags     uint32 /* Architecture-specific flags. */
	Ehsize    uint16 /* Size of ELF header in bytes. */
	Phentsize uint16 /* Size of program header entry. */
	Phnum     uint16 /* Number of program header entries. */
	Shentsize uint16 /* Size of section header entry. */
	Shnum     uint16 /* Number of section header entries. */
	Shstrndx  uint16 /* Section name strings section. */
}

// SwapBytes returns a copy of h with every multi-byte field byte-reversed.
func (h Header32) SwapBytes() Header32 {
	return Header32{
		Ident:     h.Ident,
		Type:      bits.ReverseBytes16(h.Type),
		Machine:   bits.ReverseBytes16(h.Machine),
		Version:   bits.ReverseBytes32(h.Version),
		Entry:     bits.ReverseBytes32(h.Entry),
		Phoff:     bits.ReverseBytes32(h.Phoff),
		Shoff:     bits.ReverseBytes32(h.Shoff),
		Flags:     bits.ReverseBytes32(h.Flags),
		Ehsize:    bits.ReverseBytes16(h.Ehsize),
		Phentsize: bits.ReverseBytes16(h.Phentsize),
		Phnum:     bits.ReverseBytes16(h.Phnum),
		Shentsize: bits.ReverseBytes16(h.Shentsize),
		Shnum:     bits.ReverseBytes16(h.Shnum),
		Shstrndx:  bits.ReverseBytes16(h.Shstrndx),
	}
}

// SwapBytes returns a copy of h with every multi-byte field byte-reversed.
func (h Header64) SwapBytes() Header64 {
	return Header64{
		Ident:     h.Ident,
		Type:      bits.ReverseBytes16(h.Type),
		Machine:   bits.ReverseBytes16(h.Machine),
		Version:   bits.ReverseBytes32(h.Version),
		Entry:     bits.ReverseBytes64(h.Entry),
		Phoff:     bits.ReverseBytes64(h.Phoff),
		Shoff:     bits.ReverseBytes64(h.Shoff),
		Flags:     bits.ReverseBytes32(h.Flags),
		Ehsize:    bits.ReverseBytes16(h.Ehsize),
		Phentsize: bits.ReverseBytes16(h.Phentsize),
		Phnum:     bits.ReverseBytes16(h.Phnum),
		Shentsize: bits.ReverseBytes16(h.Shentsize),
		Shnum:     bits.ReverseBytes16(h.Shnum),
		Shstrndx:  bits.ReverseBytes16(h.Shstrndx),
	}
}

// widen zero-extends the address-sized fields so both classes share one projection.
func (h Header32) widen() Header64 {
	return Header64{
		Ident:     h.Ident,
		Type:      h.Type,
		Machine:   h.Machine,
		Version:   h.Version,
		Entry:     uint64(h.Entry),
		Phoff:     uint64(h.Phoff),
		Shoff:     uint64(h.Shoff),
		Flags:     h.Flags,
		Ehsize:    h.Ehsize,
		Phentsize: h.Phentsize,
		Phnum:     h.Phnum,
		Shentsize: h.Shentsize,
		Shnum:     h.Shnum,
		Shstrndx:  h.Shstrndx,
	}
}

func decodeIdent(b []byte) Ident {
	var id Ident
	copy(id.Magic[:], b[0:4])
	id.Class = b[4]
	id.Data = b[5]
	id.Version = b[6]
	id.OSABI = b[7]
	id.ABIVersion = b[8]
	copy(id.Pad[:], b[9:IdentSize])
	return id
}

// decodeHeader32 reads b[:Header32Size] field by field using order.
// The caller guarantees the length.
func decodeHeader32(b []byte, order binary.ByteOrder) Header32 {
	_ = b[Header32Size-1]
	return Header32{
		Ident:     decodeIdent(b),
		Type:      order.Uint16(b[16:]),
		Machine:   order.Uint16(b[18:]),
		Version:   order.Uint32(b[20:]),
		Entry:     order.Uint32(b[24:]),
		Phoff:     order.Uint32(b[28:]),
		Shoff:     order.Uint32(b[32:]),
		Flags:     order.Uint32(b[36:]),
		Ehsize:    order.Uint16(b[40:]),
		Phentsize: order.Uint16(b[42:]),
		Phnum:     order.Uint16(b[44:]),
		Shentsize: order.Uint16(b[46:]),
		Shnum:     order.Uint16(b[48:]),
		Shstrndx:  order.Uint16(b[50:]),
	}
}

// decodeHeader64 reads b[:Header64Size] field by field using order.
// The caller guarantees the length.
func decodeHeader64(b []byte, order binary.ByteOrder) Header64 {
	_ = b[Header64Size-1]
	return Header64{
		Ident:     decodeIdent(b),
		Type:      order.Uint16(b[16:]),
		Machine:   order.Uint16(b[18:]),
		Version:   order.Uint32(b[20:]),
		Entry:     order.Uint64(b[24:]),
		Phoff:     order.Uint64(b[32:]),
		Shoff:     order.Uint64(b[40:]),
		Flags:     order.Uint32(b[48:]),
		Ehsize:    order.Uint16(b[52:]),
		Phentsize: order.Uint16(b[54:]),
		Phnum:     order.Uint16(b[56:]),
		Shentsize: order.Uint16(b[58:]),
		Shnum:     order.Uint16(b[60:]),
		Shstrndx:  order.Uint16(b[62:]),
	}
}
