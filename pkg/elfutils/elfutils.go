package elfutils

import (
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/polarsignals/elf-header/pkg/elfheader"
)

// Open reads the file header of the ELF file at filePath.
func Open(filePath string) (elfheader.Header, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return elfheader.Header{}, fmt.Errorf("error opening %s: %w", filePath, err)
	}
	defer f.Close()

	h, err := Read(f)
	if err != nil {
		return elfheader.Header{}, fmt.Errorf("error reading ELF header from %s: %w", filePath, err)
	}
	return h, nil
}

// Read reads at most one 64-bit header worth of bytes from r and decodes it.
// Short input is handed to the decoder, which reports it as ErrInvalidFile.
func Read(r io.Reader) (elfheader.Header, error) {
	var buf [elfheader.Header64Size]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return elfheader.Header{}, err
	}
	return elfheader.Parse(buf[:n])
}

// FileHeader converts h to the debug/elf representation.
func FileHeader(h elfheader.Header) elf.FileHeader {
	fh := elf.FileHeader{
		Class:      elf.Class(h.Class),
		Data:       elf.Data(h.Endian),
		Version:    elf.Version(h.Version),
		OSABI:      elf.OSABI(h.OSABI),
		ABIVersion: h.ABIVersion,
		Type:       elf.Type(h.Type),
		Machine:    elf.Machine(h.Machine),
		Entry:      uint64(h.Entry),
	}
	fh.ByteOrder = h.Endian.ByteOrder()
	return fh
}
