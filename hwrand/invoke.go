package hwrand

const (
	// RdRandRetries is the attempt budget of one RDRAND draw. Intel
	// documents 10 consecutive failures as a sign of a broken generator.
	RdRandRetries = 10
	// RdSeedRetries is the attempt budget of one RDSEED draw. RDSEED
	// drains a shared conditioner and legitimately fails more often, so it
	// gets a larger budget and pauses between attempts.
	RdSeedRetries = 127
)

type word interface {
	~uint16 | ~uint32 | ~uint64
}

// generator is the state shared by RdRand and RdSeed.
type generator struct {
	hw  Hardware
	ins Instruction
}

func (g generator) retries() int {
	if g.ins == RDSEED {
		return RdSeedRetries
	}
	return RdRandRetries
}

func (g generator) err(base error) error {
	return &Error{Instruction: g.ins, Err: base}
}

// retry runs step until it yields a value or the budget is spent.
func retry[T word](g generator, step func(Instruction) (T, bool)) (T, error) {
	for i := range g.retries() {
		if i > 0 && g.ins == RDSEED {
			g.hw.Pause()
		}
		if v, ok := step(g.ins); ok {
			return v, nil
		}
	}
	var zero T
	return zero, g.err(ErrHardwareFailure)
}

func (g generator) try16() (uint16, error) {
	if g.hw == nil {
		return 0, g.err(ErrUnsupportedInstruction)
	}
	return retry(g, g.hw.Step16)
}

func (g generator) try32() (uint32, error) {
	if g.hw == nil {
		return 0, g.err(ErrUnsupportedInstruction)
	}
	return retry(g, g.hw.Step32)
}

func (g generator) try64() (uint64, error) {
	if g.hw == nil {
		return 0, g.err(ErrUnsupportedInstruction)
	}
	if g.hw.WordSize() == 8 {
		return retry(g, g.hw.Step64)
	}
	hi, err := retry(g, g.hw.Step32)
	if err != nil {
		return 0, err
	}
	lo, err := retry(g, g.hw.Step32)
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

// nextWord draws one native-width word.
func (g generator) nextWord() (uint64, error) {
	if g.hw.WordSize() == 8 {
		return retry(g, g.hw.Step64)
	}
	v, err := retry(g, g.hw.Step32)
	return uint64(v), err
}

// TryUint16 draws 16 bits.
func (g generator) TryUint16() (uint16, error) { return g.try16() }

// TryUint32 draws 32 bits.
func (g generator) TryUint32() (uint32, error) { return g.try32() }

// TryUint64 draws 64 bits. On 386 the value is two 32-bit draws, high word
// first, and fails if either does.
func (g generator) TryUint64() (uint64, error) { return g.try64() }

// Uint16 is TryUint16 that panics on hardware failure.
func (g generator) Uint16() uint16 {
	v, err := g.try16()
	if err != nil {
		panic(err)
	}
	return v
}

// Uint32 is TryUint32 that panics on hardware failure.
func (g generator) Uint32() uint32 {
	v, err := g.try32()
	if err != nil {
		panic(err)
	}
	return v
}

// Uint64 is TryUint64 that panics on hardware failure. It makes the
// generators usable as a math/rand/v2 Source.
func (g generator) Uint64() uint64 {
	v, err := g.try64()
	if err != nil {
		panic(err)
	}
	return v
}
