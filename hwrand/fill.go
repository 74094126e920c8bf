package hwrand

import "unsafe"

// scratch holds the word the unaligned edges of a fill are cut from.
type scratch struct {
	word uint64
	left int
}

// splice writes dst byte by byte from the scratch word, low byte first,
// drawing a new word only when the current one is used up.
func (s *scratch) splice(g generator, dst []byte) (int, error) {
	for i := range dst {
		if s.left == 0 {
			w, err := g.nextWord()
			if err != nil {
				return i, err
			}
			s.word, s.left = w, g.hw.WordSize()
		}
		dst[i] = byte(s.word)
		s.word >>= 8
		s.left--
	}
	return len(dst), nil
}

// alignUp returns how many bytes precede the first size-aligned address of b.
func alignUp(b []byte, size int) int {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return int(-addr & uintptr(size-1))
}

// fillWords stores one drawn word per aligned slot of mid. len(mid) is a
// multiple of size and mid starts on a size boundary.
func (g generator) fillWords(mid []byte, size int) (int, error) {
	if len(mid) == 0 {
		return 0, nil
	}
	p := unsafe.Pointer(unsafe.SliceData(mid))
	if size == 8 {
		words := unsafe.Slice((*uint64)(p), len(mid)/8)
		for i := range words {
			v, err := retry(g, g.hw.Step64)
			if err != nil {
				return i * 8, err
			}
			words[i] = v
		}
		return len(mid), nil
	}
	words := unsafe.Slice((*uint32)(p), len(mid)/4)
	for i := range words {
		v, err := retry(g, g.hw.Step32)
		if err != nil {
			return i * 4, err
		}
		words[i] = v
	}
	return len(mid), nil
}

// fill writes every byte of dest once, in address order. On failure the
// bytes before the returned count are written and the rest are untouched.
func (g generator) fill(dest []byte) (int, error) {
	if g.hw == nil {
		return 0, g.err(ErrUnsupportedInstruction)
	}
	if len(dest) == 0 {
		return 0, nil
	}
	size := g.hw.WordSize()
	var s scratch
	if len(dest) < size {
		return s.splice(g, dest)
	}

	head := alignUp(dest, size)
	mid := (len(dest) - head) &^ (size - 1)

	n, err := s.splice(g, dest[:head])
	if err != nil {
		return n, err
	}
	m, err := g.fillWords(dest[head:head+mid], size)
	n += m
	if err != nil {
		return n, err
	}
	m, err = s.splice(g, dest[head+mid:])
	return n + m, err
}

// TryFill fills dest with random bytes. It returns the number of bytes
// written, which is len(dest) unless err is non-nil.
func (g generator) TryFill(dest []byte) (int, error) { return g.fill(dest) }

// Read implements io.Reader.
func (g generator) Read(p []byte) (int, error) { return g.fill(p) }

// Fill is TryFill that panics on hardware failure.
func (g generator) Fill(dest []byte) {
	if _, err := g.fill(dest); err != nil {
		panic(err)
	}
}
