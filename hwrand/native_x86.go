//go:build amd64 || 386

package hwrand

const nativeCPUID = true

type nativeHardware struct{}

func (nativeHardware) CPUID(leaf, subleaf uint32) (eax, ebx, ecx, edx uint32) {
	return cpuid(leaf, subleaf)
}

func (nativeHardware) Step16(ins Instruction) (uint16, bool) {
	if ins == RDSEED {
		return rdseed16()
	}
	return rdrand16()
}

func (nativeHardware) Step32(ins Instruction) (uint32, bool) {
	if ins == RDSEED {
		return rdseed32()
	}
	return rdrand32()
}

func (nativeHardware) Pause() { pause() }

// Implemented in native_$GOARCH.s.

func cpuid(leaf, subleaf uint32) (eax, ebx, ecx, edx uint32)
func rdrand16() (v uint16, ok bool)
func rdrand32() (v uint32, ok bool)
func rdseed16() (v uint16, ok bool)
func rdseed32() (v uint32, ok bool)
func pause()
