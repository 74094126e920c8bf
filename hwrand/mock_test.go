package hwrand

import "encoding/binary"

// fakeHardware is a scripted Hardware. Every Step call counts as one
// attempt; fail decides, by attempt index, whether it comes back empty.
type fakeHardware struct {
	wordSize int
	leaves   map[uint32][4]uint32
	fail     func(attempt int) bool
	seq      []uint64
	state    uint64

	attempts   int
	pauses     int
	cpuidCalls int
}

func newFake(wordSize int) *fakeHardware {
	return &fakeHardware{
		wordSize: wordSize,
		leaves:   map[uint32][4]uint32{},
		state:    0x9e3779b97f4a7c15,
	}
}

// withCPU sets leaf 0 to vendor with max leaf 7, leaf 1 EAX/ECX and leaf 7 EBX.
func (f *fakeHardware) withCPU(vendor string, leaf1EAX, leaf1ECX, leaf7EBX uint32) *fakeHardware {
	var v [12]byte
	copy(v[:], vendor)
	f.leaves[0] = [4]uint32{
		7,
		binary.LittleEndian.Uint32(v[0:]),
		binary.LittleEndian.Uint32(v[8:]),
		binary.LittleEndian.Uint32(v[4:]),
	}
	f.leaves[1] = [4]uint32{leaf1EAX, 0, leaf1ECX, 0}
	f.leaves[7] = [4]uint32{0, leaf7EBX, 0, 0}
	return f
}

func (f *fakeHardware) CPUID(leaf, subleaf uint32) (eax, ebx, ecx, edx uint32) {
	f.cpuidCalls++
	r := f.leaves[leaf]
	return r[0], r[1], r[2], r[3]
}

// next returns the scripted value or a splitmix64 step.
func (f *fakeHardware) next() (uint64, bool) {
	n := f.attempts
	f.attempts++
	if f.fail != nil && f.fail(n) {
		return 0, false
	}
	if len(f.seq) > 0 {
		v := f.seq[0]
		f.seq = f.seq[1:]
		return v, true
	}
	f.state += 0x9e3779b97f4a7c15
	z := f.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31), true
}

func (f *fakeHardware) Step16(Instruction) (uint16, bool) {
	v, ok := f.next()
	return uint16(v), ok
}

func (f *fakeHardware) Step32(Instruction) (uint32, bool) {
	v, ok := f.next()
	return uint32(v), ok
}

func (f *fakeHardware) Step64(Instruction) (uint64, bool) {
	if f.wordSize != 8 {
		panic("Step64 on a 4-byte word fake")
	}
	return f.next()
}

func (f *fakeHardware) Pause()        { f.pauses++ }
func (f *fakeHardware) WordSize() int { return f.wordSize }

func failFirst(n int) func(int) bool {
	return func(attempt int) bool { return attempt < n }
}

func failAfter(n int) func(int) bool {
	return func(attempt int) bool { return attempt >= n }
}

func alwaysFail(int) bool { return true }

const (
	// family 6 (Intel)
	intelLeaf1 = 0x6 << 8
	// family 0xf + 0x07 = 0x16
	amdFamily16h = 0xf<<8 | 0x07<<20
	// family 0xf + 0x08 = 0x17
	amdFamily17h = 0xf<<8 | 0x08<<20
	// family 0xf + 0x0a = 0x19
	amdFamily19h = 0xf<<8 | 0x0a<<20
)

var cpuidOnly = Target{CPUIDAllowed: true}

// supported returns a fake that advertises both instructions on an Intel part.
func supported(wordSize int) *fakeHardware {
	return newFake(wordSize).withCPU("GenuineIntel", intelLeaf1, rdrandBit, rdseedBit)
}
