package hwrand

func (nativeHardware) Step64(ins Instruction) (uint64, bool) {
	if ins == RDSEED {
		return rdseed64()
	}
	return rdrand64()
}

func (nativeHardware) WordSize() int { return 8 }

func rdrand64() (v uint64, ok bool)
func rdseed64() (v uint64, ok bool)
