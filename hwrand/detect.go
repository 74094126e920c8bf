package hwrand

import "encoding/binary"

const (
	// leaf 1 ECX
	rdrandBit = 1 << 30
	// leaf 7 subleaf 0 EBX
	rdseedBit = 1 << 18

	// amdMinFamily is the first AMD family (Zen) without the RDRAND/RDSEED
	// errata; families 15h and 16h may report success with constant output.
	amdMinFamily = 0x17

	vendorAMD = "AuthenticAMD"
)

// CPUInfo is a snapshot of the identification leaves the detector reads.
type CPUInfo struct {
	Vendor   string
	MaxLeaf  uint32
	Family   uint32
	Leaf1ECX uint32
	Leaf7EBX uint32
}

// HasRDRAND reports the raw leaf 1 feature bit.
func (c CPUInfo) HasRDRAND() bool { return c.Leaf1ECX&rdrandBit != 0 }

// HasRDSEED reports the raw leaf 7 feature bit.
func (c CPUInfo) HasRDSEED() bool { return c.Leaf7EBX&rdseedBit != 0 }

// AMDErratum reports whether c is an AMD part from a family affected by the
// RDRAND/RDSEED errata.
func (c CPUInfo) AMDErratum() bool {
	return c.Vendor == vendorAMD && c.Family < amdMinFamily
}

// Identify queries hw for the leaves the detector uses. Leaves above the
// maximum reported by leaf 0 are left zero.
func Identify(hw Hardware) CPUInfo {
	var info CPUInfo
	maxLeaf, ebx, ecx, edx := hw.CPUID(0, 0)
	info.MaxLeaf = maxLeaf
	info.Vendor = vendorString(ebx, edx, ecx)
	if maxLeaf >= 1 {
		eax, _, ecx, _ := hw.CPUID(1, 0)
		info.Family = family(eax)
		info.Leaf1ECX = ecx
	}
	if maxLeaf >= 7 {
		_, ebx, _, _ := hw.CPUID(7, 0)
		info.Leaf7EBX = ebx
	}
	return info
}

// Detect reports whether ins may be executed on hw. It never fails.
//
// The AMD family check applies even when t declares the instruction
// statically present.
func Detect(hw Hardware, t Target, ins Instruction) bool {
	if !t.CPUIDAllowed {
		return t.static(ins)
	}
	info := Identify(hw)
	if info.AMDErratum() {
		return false
	}
	switch ins {
	case RDRAND:
		return info.HasRDRAND() || t.StaticRDRAND
	case RDSEED:
		return info.HasRDSEED() || t.StaticRDSEED
	}
	return false
}

// family combines the base and extended family fields of leaf 1 EAX.
func family(eax uint32) uint32 {
	return (eax>>8)&0xf + (eax>>20)&0xff
}

func vendorString(ebx, edx, ecx uint32) string {
	var b [12]byte
	binary.LittleEndian.PutUint32(b[0:], ebx)
	binary.LittleEndian.PutUint32(b[4:], edx)
	binary.LittleEndian.PutUint32(b[8:], ecx)
	return string(b[:])
}
