package hwrand

// Step64 is never reached on 386: WordSize is 4, so 64-bit draws are built
// from two Step32 calls.
func (nativeHardware) Step64(Instruction) (uint64, bool) { return 0, false }

func (nativeHardware) WordSize() int { return 4 }
