package hwrand

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"unsafe"
)

// alignedBytes returns n bytes starting on an 8-byte boundary.
func alignedBytes(n int) []byte {
	words := make([]uint64, (n+7)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), n)
}

func TestFillBoundarySweep(t *testing.T) {
	const trials = 64
	for _, size := range []int{4, 8} {
		backing := alignedBytes(64)
		for off := 0; off < size; off++ {
			for length := 0; length <= 3*size+1; length++ {
				hw := supported(size)
				g := generator{hw: hw, ins: RDRAND}
				acc := make([]byte, length)
				for range trials {
					clear(backing)
					dest := backing[off : off+length]
					n, err := g.TryFill(dest)
					if err != nil {
						t.Fatalf("size %d off %d len %d: %v", size, off, length, err)
					}
					if n != length {
						t.Fatalf("size %d off %d len %d: wrote %d", size, off, length, n)
					}
					for i, b := range backing {
						if (i < off || i >= off+length) && b != 0 {
							t.Fatalf("size %d off %d len %d: byte %d outside dest written", size, off, length, i)
						}
					}
					for i, b := range dest {
						acc[i] |= b
					}
				}
				for i, b := range acc {
					if b != 0xff {
						t.Fatalf("size %d off %d len %d: byte %d never fully covered (%#x)", size, off, length, i, b)
					}
				}
			}
		}
	}
}

func TestFillShortDestinationUsesOneWord(t *testing.T) {
	backing := alignedBytes(8)
	hw := supported(8)
	g := generator{hw: hw, ins: RDRAND}
	if _, err := g.TryFill(backing[1:8]); err != nil {
		t.Fatal(err)
	}
	if hw.attempts != 1 {
		t.Errorf("got %d draws want 1", hw.attempts)
	}
}

func TestFillHeadAndTailShareScratch(t *testing.T) {
	backing := alignedBytes(67)
	hw := supported(8)
	g := generator{hw: hw, ins: RDRAND}
	// 5 head bytes, 7 aligned words, 3 tail bytes
	if _, err := g.TryFill(backing[3:67]); err != nil {
		t.Fatal(err)
	}
	if hw.attempts != 8 {
		t.Errorf("got %d draws want 8", hw.attempts)
	}
}

func TestFillAlignedWordsInPlace(t *testing.T) {
	dest := alignedBytes(16)
	hw := supported(8)
	hw.seq = []uint64{0x0102030405060708, 0x1112131415161718}
	g := generator{hw: hw, ins: RDRAND}
	if _, err := g.TryFill(dest); err != nil {
		t.Fatal(err)
	}
	if got := binary.NativeEndian.Uint64(dest[0:]); got != 0x0102030405060708 {
		t.Errorf("word 0: got:%#x", got)
	}
	if got := binary.NativeEndian.Uint64(dest[8:]); got != 0x1112131415161718 {
		t.Errorf("word 1: got:%#x", got)
	}
}

func TestFillSpliceLowByteFirst(t *testing.T) {
	dest := make([]byte, 3)
	hw := supported(8)
	hw.seq = []uint64{0x0000000000332211}
	g := generator{hw: hw, ins: RDRAND}
	if _, err := g.TryFill(dest); err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x11, 0x22, 0x33}; !bytes.Equal(dest, want) {
		t.Errorf("got:%x want:%x", dest, want)
	}
}

func TestFillFailureKeepsPrefix(t *testing.T) {
	dest := alignedBytes(32)
	hw := supported(8)
	hw.fail = func(attempt int) bool { return attempt >= 2 }
	g := generator{hw: hw, ins: RDRAND}
	n, err := g.TryFill(dest)
	if !errors.Is(err, ErrHardwareFailure) {
		t.Fatalf("got %v want ErrHardwareFailure", err)
	}
	if n != 16 {
		t.Errorf("got:%d want:16 bytes written", n)
	}
	if !bytes.Equal(dest[16:], make([]byte, 16)) {
		t.Errorf("bytes after the failure were written: %x", dest[16:])
	}
}

func TestFillFailureInHead(t *testing.T) {
	backing := alignedBytes(24)
	hw := supported(8)
	hw.fail = alwaysFail
	g := generator{hw: hw, ins: RDSEED}
	n, err := g.TryFill(backing[5:24])
	if !errors.Is(err, ErrHardwareFailure) {
		t.Fatalf("got %v", err)
	}
	if n != 0 {
		t.Errorf("got:%d want:0", n)
	}
}

func TestFillEmpty(t *testing.T) {
	hw := supported(8)
	g := generator{hw: hw, ins: RDRAND}
	if n, err := g.TryFill(nil); n != 0 || err != nil {
		t.Errorf("got %d, %v", n, err)
	}
	if hw.attempts != 0 {
		t.Errorf("empty fill drew %d words", hw.attempts)
	}
}

func TestFillIndependentDraws(t *testing.T) {
	hw := supported(8)
	g := generator{hw: hw, ins: RDRAND}
	a := make([]byte, 32)
	b := make([]byte, 32)
	same := 0
	for range 100 {
		g.Fill(a)
		g.Fill(b)
		if bytes.Equal(a, b) {
			same++
		}
	}
	if same != 0 {
		t.Errorf("%d of 100 consecutive fills repeated", same)
	}
}
