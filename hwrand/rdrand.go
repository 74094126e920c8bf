package hwrand

// RdRand draws from the RDRAND instruction, the output of the on-chip
// DRBG. It is suitable as a fast entropy source; use RdSeed to seed another
// generator.
//
// The zero value is not usable: every draw returns ErrUnsupportedInstruction.
type RdRand struct {
	generator
}

// NewRdRand returns an RdRand if the running processor supports RDRAND.
func NewRdRand() (RdRand, error) {
	return NewRdRandOn(Native(), BuildTarget())
}

// NewRdRandOn is NewRdRand against explicit hardware and target.
func NewRdRandOn(hw Hardware, t Target) (RdRand, error) {
	if !Detect(hw, t, RDRAND) {
		return RdRand{}, &Error{Instruction: RDRAND, Err: ErrUnsupportedInstruction}
	}
	return RdRand{generator{hw: hw, ins: RDRAND}}, nil
}

// UnsafeNewRdRand returns an RdRand without checking the processor. The
// caller must have established by other means that RDRAND is present and
// trustworthy; otherwise the first draw faults or returns non-random data.
func UnsafeNewRdRand() RdRand {
	return UnsafeNewRdRandOn(Native())
}

// UnsafeNewRdRandOn is UnsafeNewRdRand against explicit hardware.
func UnsafeNewRdRandOn(hw Hardware) RdRand {
	return RdRand{generator{hw: hw, ins: RDRAND}}
}
