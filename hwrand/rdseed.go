package hwrand

// RdSeed draws from the RDSEED instruction, the conditioned output of the
// entropy source itself, intended for seeding other generators.
//
// The zero value is not usable: every draw returns ErrUnsupportedInstruction.
type RdSeed struct {
	generator
}

// NewRdSeed returns an RdSeed if the running processor supports RDSEED.
func NewRdSeed() (RdSeed, error) {
	return NewRdSeedOn(Native(), BuildTarget())
}

// NewRdSeedOn is NewRdSeed against explicit hardware and target.
func NewRdSeedOn(hw Hardware, t Target) (RdSeed, error) {
	if !Detect(hw, t, RDSEED) {
		return RdSeed{}, &Error{Instruction: RDSEED, Err: ErrUnsupportedInstruction}
	}
	return RdSeed{generator{hw: hw, ins: RDSEED}}, nil
}

// UnsafeNewRdSeed returns an RdSeed without checking the processor. The
// caller must have established by other means that RDSEED is present and
// trustworthy; otherwise the first draw faults or returns non-random data.
func UnsafeNewRdSeed() RdSeed {
	return UnsafeNewRdSeedOn(Native())
}

// UnsafeNewRdSeedOn is UnsafeNewRdSeed against explicit hardware.
func UnsafeNewRdSeedOn(hw Hardware) RdSeed {
	return RdSeed{generator{hw: hw, ins: RDSEED}}
}
