package elfheader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func buffer64(t testing.TB, endian Endian, mutate func(*Header64)) []byte {
	t.Helper()
	h := testHeader64(endian)
	if mutate != nil {
		mutate(&h)
	}
	return encode(t, h, endian.ByteOrder())
}

func buffer32(t testing.TB, endian Endian, mutate func(*Header32)) []byte {
	t.Helper()
	h := testHeader32(endian)
	if mutate != nil {
		mutate(&h)
	}
	return encode(t, h, endian.ByteOrder())
}

func TestParse_Errors(t *testing.T) {
	valid := buffer64(t, EndianLittle, nil)
	with := func(off int, b byte) []byte {
		c := append([]byte(nil), valid...)
		c[off] = b
		return c
	}

	tests := []struct {
		name  string
		data  []byte
		magic []byte
	}{
		{name: "nil", data: nil},
		{name: "one byte", data: []byte{0x7f}},
		{name: "magic only", data: []byte{0x7f, 'E', 'L', 'F'}},
		{name: "short and not ELF", data: []byte{'M', 'Z'}},
		{name: "bad magic", data: []byte{'M', 'Z', 0x90, 0x00, 0x03}, magic: []byte{'M', 'Z', 0x90, 0x00}},
		{name: "bad magic full header", data: with(3, 'X'), magic: []byte{0x7f, 'E', 'L', 'X'}},
		{name: "class none", data: with(classOffset, 0)},
		{name: "class 3", data: with(classOffset, 3)},
		{name: "class 255", data: with(classOffset, 255)},
		{name: "ident only", data: valid[:IdentSize]},
		{name: "truncated 64-bit", data: valid[:Header64Size-1]},
		{name: "64-bit with 32-bit length", data: valid[:Header32Size]},
		{name: "truncated 32-bit", data: buffer32(t, EndianBig, nil)[:Header32Size-1]},
		{name: "data encoding none", data: with(dataOffset, 0)},
		{name: "data encoding 3", data: with(dataOffset, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			require.Error(t, err)

			if tt.magic == nil {
				require.ErrorIs(t, err, ErrInvalidFile)
				return
			}
			var magicErr *InvalidMagicError
			require.True(t, errors.As(err, &magicErr), "got %v", err)
			require.Equal(t, tt.magic, magicErr.Magic[:])
			require.False(t, errors.Is(err, ErrInvalidFile))
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	want64 := Header{
		Class:                    Class64,
		Version:                  VersionCurrent,
		OSABI:                    OSABILinux,
		Type:                     FileTypeDynamicLibrary,
		Machine:                  MachineAArch64,
		ObjectVersion:            1,
		Entry:                    0x0000_7f00_dead_beef,
		ProgramHeaderOffset:      64,
		SectionHeaderOffset:      0x1_0000_0040,
		Flags:                    0x0102_0304,
		HeaderSize:               64,
		ProgramHeaderEntrySize:   56,
		ProgramHeaderCount:       9,
		SectionHeaderEntrySize:   64,
		SectionHeaderCount:       31,
		SectionHeaderStringIndex: 30,
	}
	want32 := Header{
		Class:                    Class32,
		Version:                  VersionCurrent,
		OSABI:                    OSABILinux,
		Type:                     FileTypeExecutable,
		Machine:                  MachineARM,
		ObjectVersion:            1,
		Entry:                    0x8000_1234,
		ProgramHeaderOffset:      52,
		SectionHeaderOffset:      0x0001_2000,
		Flags:                    0x0500_0400,
		HeaderSize:               52,
		ProgramHeaderEntrySize:   32,
		ProgramHeaderCount:       7,
		SectionHeaderEntrySize:   40,
		SectionHeaderCount:       27,
		SectionHeaderStringIndex: 26,
	}

	for _, endian := range []Endian{EndianLittle, EndianBig} {
		t.Run("64/"+endian.String(), func(t *testing.T) {
			got, err := Parse(buffer64(t, endian, nil))
			require.NoError(t, err)
			want := want64
			want.Endian = endian
			require.Equal(t, want, got)
		})
		t.Run("32/"+endian.String(), func(t *testing.T) {
			got, err := Parse(buffer32(t, endian, nil))
			require.NoError(t, err)
			want := want32
			want.Endian = endian
			require.Equal(t, want, got)
		})
	}
}

func TestParse_EndianIndependent(t *testing.T) {
	little, err := Parse(buffer64(t, EndianLittle, nil))
	require.NoError(t, err)
	big, err := Parse(buffer64(t, EndianBig, nil))
	require.NoError(t, err)

	require.Equal(t, EndianLittle, little.Endian)
	require.Equal(t, EndianBig, big.Endian)
	big.Endian = little.Endian
	require.Equal(t, little, big)
}

func TestParse_ExecutableScenario(t *testing.T) {
	data := make([]byte, Header64Size)
	copy(data, []byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0})
	data[16], data[17] = 0x02, 0x00

	h, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, EndianLittle, h.Endian)
	require.Equal(t, VersionCurrent, h.Version)
	require.Equal(t, OSABISystemV, h.OSABI)
	require.Equal(t, FileTypeExecutable, h.Type)

	data[dataOffset] = 2
	data[16], data[17] = 0x00, 0x02

	h, err = Parse(data)
	require.NoError(t, err)
	require.Equal(t, EndianBig, h.Endian)
	require.Equal(t, FileTypeExecutable, h.Type)
}

func TestParse_UnknownCodes(t *testing.T) {
	data := buffer64(t, EndianBig, func(h *Header64) {
		h.Machine = 0xffff
		h.Type = 0xfe01
		h.Ident.OSABI = 0x42
		h.Ident.Version = 7
	})

	h, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, Machine(0xffff), h.Machine)
	require.False(t, h.Machine.IsKnown())
	require.Equal(t, "Unknown(0xffff)", h.Machine.String())
	require.Equal(t, FileType(0xfe01), h.Type)
	require.False(t, h.Type.IsKnown())
	require.Equal(t, OSABI(0x42), h.OSABI)
	require.False(t, h.OSABI.IsKnown())
	require.Equal(t, Version(7), h.Version)
	require.False(t, h.Version.IsKnown())
}

func TestParse_TrailingBytes(t *testing.T) {
	data := append(buffer32(t, EndianLittle, nil), bytes.Repeat([]byte{0xcc}, 128)...)
	h, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, Class32, h.Class)
	require.Equal(t, Address(0x8000_1234), h.Entry)
}

func TestParse_DoesNotMutateInput(t *testing.T) {
	data := buffer64(t, EndianBig, nil)
	orig := append([]byte(nil), data...)
	_, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, orig, data)
}

func TestParse_NoAllocations(t *testing.T) {
	data := buffer64(t, EndianBig, nil)
	var (
		h   Header
		err error
	)
	allocs := testing.AllocsPerRun(100, func() {
		h, err = Parse(data)
	})
	require.NoError(t, err)
	require.Equal(t, Class64, h.Class)
	require.Zero(t, allocs)
}

func TestParse_Concurrent(t *testing.T) {
	inputs := [][]byte{
		buffer64(t, EndianLittle, nil),
		buffer64(t, EndianBig, nil),
		buffer32(t, EndianLittle, nil),
		buffer32(t, EndianBig, nil),
	}
	want := make([]Header, len(inputs))
	for i, in := range inputs {
		h, err := Parse(in)
		require.NoError(t, err)
		want[i] = h
	}

	var wg sync.WaitGroup
	got := make([][]Header, 8)
	for g := range got {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for _, in := range inputs {
				h, _ := Parse(in)
				got[g] = append(got[g], h)
			}
		}(g)
	}
	wg.Wait()
	for _, hs := range got {
		require.Equal(t, want, hs)
	}
}

func TestRawHeader(t *testing.T) {
	data := buffer32(t, EndianBig, nil)
	input := append(append([]byte(nil), data...), 0, 0, 0)
	raw, err := NewRawHeader(input)
	require.NoError(t, err)
	require.Len(t, raw.Input(), Header32Size+3)
	require.Equal(t, input, raw.Input())
	require.Len(t, raw.Bytes(), Header32Size)

	require.Equal(t, Class32, raw.Class())
	require.Equal(t, EndianBig, raw.Endian())
	require.Equal(t, Magic, raw.Magic())
	require.Equal(t, data, raw.Bytes())
	require.Equal(t, NativeEndian() != EndianBig, raw.NeedsSwap())

	_, ok := raw.Header64()
	require.False(t, ok)
	native, ok := raw.Header32()
	require.True(t, ok)
	require.Equal(t, decodeHeader32(data, binary.BigEndian), func() Header32 {
		if raw.NeedsSwap() {
			return native.SwapBytes()
		}
		return native
	}())
	require.Equal(t, testHeader32(EndianBig).widen(), raw.Normalized())
}

func TestNativeEndian(t *testing.T) {
	x := uint16(0x0102)
	first := *(*byte)(unsafe.Pointer(&x))
	want := EndianLittle
	if first == 0x01 {
		want = EndianBig
	}
	require.Equal(t, want, NativeEndian())

	// A buffer in the native order is read without swapping.
	raw, err := NewRawHeader(buffer64(t, want, nil))
	require.NoError(t, err)
	require.False(t, raw.NeedsSwap())
	native, ok := raw.Header64()
	require.True(t, ok)
	require.Equal(t, testHeader64(want), native)
}

func TestHasMagic(t *testing.T) {
	require.True(t, HasMagic([]byte("\x7fELF\x02")))
	require.False(t, HasMagic([]byte("\x7fEL")))
	require.False(t, HasMagic([]byte("MZ\x90\x00")))
}
