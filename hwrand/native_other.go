//go:build !amd64 && !386

package hwrand

const nativeCPUID = false

// nativeHardware has neither instruction. Detect never consults it because
// nativeCPUID is false and no static tag applies off x86.
type nativeHardware struct{}

func (nativeHardware) CPUID(uint32, uint32) (eax, ebx, ecx, edx uint32) { return }
func (nativeHardware) Step16(Instruction) (uint16, bool)                { return 0, false }
func (nativeHardware) Step32(Instruction) (uint32, bool)                { return 0, false }
func (nativeHardware) Step64(Instruction) (uint64, bool)                { return 0, false }
func (nativeHardware) Pause()                                           {}
func (nativeHardware) WordSize() int                                    { return 8 }
