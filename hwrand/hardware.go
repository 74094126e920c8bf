package hwrand

// Instruction identifies one of the two hardware random instructions.
type Instruction uint8

const (
	RDRAND Instruction = iota + 1
	RDSEED
)

func (i Instruction) String() string {
	switch i {
	case RDRAND:
		return "rdrand"
	case RDSEED:
		return "rdseed"
	default:
		return "unknown"
	}
}

// Hardware is the processor surface the generators are built on. Native
// returns the implementation for the running target; tests substitute a
// deterministic one.
type Hardware interface {
	// CPUID runs the identification query for leaf and subleaf.
	CPUID(leaf, subleaf uint32) (eax, ebx, ecx, edx uint32)

	// Step16, Step32 and Step64 execute the instruction once. ok is false
	// when the processor had no value ready; that is not an error by itself.
	Step16(ins Instruction) (v uint16, ok bool)
	Step32(ins Instruction) (v uint32, ok bool)
	// Step64 is only called when WordSize reports 8.
	Step64(ins Instruction) (v uint64, ok bool)

	// Pause hints the processor that the caller is spinning.
	Pause()

	// WordSize is the widest draw in bytes, 4 or 8.
	WordSize() int
}

// Native returns the Hardware of the running target.
func Native() Hardware { return nativeHardware{} }

// Target holds what is known about the build target without asking the
// processor.
type Target struct {
	// CPUIDAllowed reports whether the identification query may be executed.
	CPUIDAllowed bool
	// StaticRDRAND and StaticRDSEED declare the instruction present
	// regardless of what CPUID says.
	StaticRDRAND bool
	StaticRDSEED bool
}

func (t Target) static(ins Instruction) bool {
	switch ins {
	case RDRAND:
		return t.StaticRDRAND
	case RDSEED:
		return t.StaticRDSEED
	}
	return false
}

var buildTarget = Target{CPUIDAllowed: nativeCPUID}

// BuildTarget returns the Target this binary was compiled for.
func BuildTarget() Target { return buildTarget }
