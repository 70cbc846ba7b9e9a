package elfheader

import (
	"encoding/binary"
	"fmt"
)

// Every code type below is open: a value outside the named set is still a
// valid value of the type and reports IsKnown() == false.

// Class is EI_CLASS, the address width of the file.
type Class byte

const (
	ClassNone Class = 0 // ELFCLASSNONE
	Class32   Class = 1 // ELFCLASS32
	Class64   Class = 2 // ELFCLASS64
)

func (c Class) IsKnown() bool { return c == Class32 || c == Class64 }

func (c Class) String() string {
	switch c {
	case ClassNone:
		return "None"
	case Class32:
		return "ELF32"
	case Class64:
		return "ELF64"
	}
	return unknown(uint64(c))
}

// recordSize returns the header size for the class, 0 if undecodable.
func (c Class) recordSize() int {
	switch c {
	case Class32:
		return Header32Size
	case Class64:
		return Header64Size
	}
	return 0
}

// Endian is EI_DATA restricted to the two encodings that can be decoded.
type Endian byte

const (
	EndianLittle Endian = 1 // ELFDATA2LSB
	EndianBig    Endian = 2 // ELFDATA2MSB
)

func (e Endian) IsKnown() bool { return e == EndianLittle || e == EndianBig }

func (e Endian) String() string {
	switch e {
	case EndianLittle:
		return "Little"
	case EndianBig:
		return "Big"
	}
	return unknown(uint64(e))
}

// ByteOrder returns the encoding/binary order for e. Unknown values yield nil.
func (e Endian) ByteOrder() binary.ByteOrder {
	switch e {
	case EndianLittle:
		return binary.LittleEndian
	case EndianBig:
		return binary.BigEndian
	}
	return nil
}

// Version is EI_VERSION.
type Version byte

const (
	VersionNone    Version = 0 // EV_NONE
	VersionCurrent Version = 1 // EV_CURRENT
)

func (v Version) IsKnown() bool { return v == VersionNone || v == VersionCurrent }

func (v Version) String() string {
	switch v {
	case VersionNone:
		return "None"
	case VersionCurrent:
		return "Current"
	}
	return unknown(uint64(v))
}

// OSABI is EI_OSABI.
type OSABI byte

const (
	OSABINone          OSABI = 0   // ELFOSABI_NONE
	OSABISystemV       OSABI = 0   // ELFOSABI_SYSV
	OSABIHPUX          OSABI = 1   // ELFOSABI_HPUX
	OSABINetBSD        OSABI = 2   // ELFOSABI_NETBSD
	OSABILinux         OSABI = 3   // ELFOSABI_GNU, ELFOSABI_LINUX
	OSABISolaris       OSABI = 6   // ELFOSABI_SOLARIS
	OSABIAIX           OSABI = 7   // ELFOSABI_AIX
	OSABIIRIX          OSABI = 8   // ELFOSABI_IRIX
	OSABIFreeBSD       OSABI = 9   // ELFOSABI_FREEBSD
	OSABITRU64         OSABI = 10  // ELFOSABI_TRU64
	OSABINovellModesto OSABI = 11  // ELFOSABI_MODESTO
	OSABIOpenBSD       OSABI = 12  // ELFOSABI_OPENBSD
	OSABIARMEABI       OSABI = 64  // ELFOSABI_ARM_AEABI
	OSABIARM           OSABI = 97  // ELFOSABI_ARM
	OSABIStandalone    OSABI = 255 // ELFOSABI_STANDALONE
)

var osabiNames = map[OSABI]string{
	OSABISystemV:       "SystemV",
	OSABIHPUX:          "HP-UX",
	OSABINetBSD:        "NetBSD",
	OSABILinux:         "GNU/Linux",
	OSABISolaris:       "Solaris",
	OSABIAIX:           "AIX",
	OSABIIRIX:          "SGI Irix",
	OSABIFreeBSD:       "FreeBSD",
	OSABITRU64:         "TRU64",
	OSABINovellModesto: "Novell Modesto",
	OSABIOpenBSD:       "OpenBSD",
	OSABIARMEABI:       "ARM EABI",
	OSABIARM:           "ARM",
	OSABIStandalone:    "Standalone",
}

func (o OSABI) IsKnown() bool {
	_, ok := osabiNames[o]
	return ok
}

func (o OSABI) String() string {
	if s, ok := osabiNames[o]; ok {
		return s
	}
	return unknown(uint64(o))
}

// FileType is e_type.
type FileType uint16

const (
	FileTypeNone           FileType = 0 // ET_NONE
	FileTypeRelocatable    FileType = 1 // ET_REL
	FileTypeExecutable     FileType = 2 // ET_EXEC
	FileTypeDynamicLibrary FileType = 3 // ET_DYN
	FileTypeCore           FileType = 4 // ET_CORE
	FileTypeNumber         FileType = 5 // ET_NUM
)

func (t FileType) IsKnown() bool { return t <= FileTypeNumber }

func (t FileType) String() string {
	switch t {
	case FileTypeNone:
		return "None"
	case FileTypeRelocatable:
		return "Relocatable"
	case FileTypeExecutable:
		return "Executable"
	case FileTypeDynamicLibrary:
		return "DynamicLibrary"
	case FileTypeCore:
		return "Core"
	case FileTypeNumber:
		return "Number"
	}
	return unknown(uint64(t))
}

// Machine is e_machine.
type Machine uint16

const (
	MachineNone      Machine = 0   // EM_NONE
	MachineM32       Machine = 1   // EM_M32
	MachineSPARC     Machine = 2   // EM_SPARC
	Machine386       Machine = 3   // EM_386
	Machine68K       Machine = 4   // EM_68K
	Machine88K       Machine = 5   // EM_88K
	Machine860       Machine = 7   // EM_860
	MachineMIPS      Machine = 8   // EM_MIPS
	MachineS370      Machine = 9   // EM_S370
	MachineMIPSRS3LE Machine = 10  // EM_MIPS_RS3_LE
	MachinePARISC    Machine = 15  // EM_PARISC
	MachinePPC       Machine = 20  // EM_PPC
	MachinePPC64     Machine = 21  // EM_PPC64
	MachineS390      Machine = 22  // EM_S390
	MachineARM       Machine = 40  // EM_ARM
	MachineSH        Machine = 42  // EM_SH
	MachineSPARCV9   Machine = 43  // EM_SPARCV9
	MachineIA64      Machine = 50  // EM_IA_64
	MachineAMD64     Machine = 62  // EM_X86_64
	MachineAVR       Machine = 83  // EM_AVR
	MachineXtensa    Machine = 94  // EM_XTENSA
	MachineMSP430    Machine = 105 // EM_MSP430
	MachineAArch64   Machine = 183 // EM_AARCH64
	MachineCUDA      Machine = 190 // EM_CUDA
	MachineAMDGPU    Machine = 224 // EM_AMDGPU
	MachineRISCV     Machine = 243 // EM_RISCV
	MachineBPF       Machine = 247 // EM_BPF
	MachineLoongArch Machine = 258 // EM_LOONGARCH
)

var machineNames = map[Machine]string{
	MachineNone:      "None",
	MachineM32:       "WE32100",
	MachineSPARC:     "SPARC",
	Machine386:       "Intel 80386",
	Machine68K:       "MC68000",
	Machine88K:       "MC88000",
	Machine860:       "Intel 80860",
	MachineMIPS:      "MIPS R3000",
	MachineS370:      "IBM System/370",
	MachineMIPSRS3LE: "MIPS R3000 little-endian",
	MachinePARISC:    "HPPA",
	MachinePPC:       "PowerPC",
	MachinePPC64:     "PowerPC64",
	MachineS390:      "IBM S/390",
	MachineARM:       "ARM",
	MachineSH:        "Renesas SH",
	MachineSPARCV9:   "SPARC v9",
	MachineIA64:      "Intel IA-64",
	MachineAMD64:     "AMD64",
	MachineAVR:       "Atmel AVR",
	MachineXtensa:    "Xtensa",
	MachineMSP430:    "TI MSP430",
	MachineAArch64:   "AArch64",
	MachineCUDA:      "NVIDIA CUDA",
	MachineAMDGPU:    "AMD GPU",
	MachineRISCV:     "RISC-V",
	MachineBPF:       "Linux BPF",
	MachineLoongArch: "LoongArch",
}

func (m Machine) IsKnown() bool {
	_, ok := machineNames[m]
	return ok
}

func (m Machine) String() string {
	if s, ok := machineNames[m]; ok {
		return s
	}
	return unknown(uint64(m))
}

// Address is an entry point or file offset widened to 64 bits.
type Address uint64

func (a Address) String() string { return fmt.Sprintf("0x%x", uint64(a)) }

func unknown(v uint64) string { return fmt.Sprintf("Unknown(0x%x)", v) }
