//go:build amd64 || 386

package hwrand

import (
	"bytes"
	"testing"

	"golang.org/x/sys/cpu"
)

func TestNativeIdentify(t *testing.T) {
	info := Identify(Native())
	if info.MaxLeaf == 0 {
		t.Fatalf("no identification data: %+v", info)
	}
	if info.HasRDRAND() != cpu.X86.HasRDRAND {
		t.Errorf("rdrand bit: got %v, x/sys/cpu says %v", info.HasRDRAND(), cpu.X86.HasRDRAND)
	}
	if info.HasRDSEED() != cpu.X86.HasRDSEED {
		t.Errorf("rdseed bit: got %v, x/sys/cpu says %v", info.HasRDSEED(), cpu.X86.HasRDSEED)
	}
	t.Logf("%s family %#x rdrand=%v rdseed=%v", info.Vendor, info.Family, info.HasRDRAND(), info.HasRDSEED())
}

func TestNativeRdRand(t *testing.T) {
	g, err := NewRdRand()
	if err != nil {
		if cpu.X86.HasRDRAND && !Identify(Native()).AMDErratum() && BuildTarget().CPUIDAllowed {
			t.Fatalf("rdrand advertised but construction failed: %v", err)
		}
		t.Skip("rdrand not available")
	}
	for i := 0; i < 10; i++ {
		v, err := g.TryUint64()
		if err != nil {
			t.Fatal(err)
		}
		t.Logf("%#016x", v)
	}
	checkNativeFill(t, g.TryFill)
}

func TestNativeRdSeed(t *testing.T) {
	g, err := NewRdSeed()
	if err != nil {
		if cpu.X86.HasRDSEED && !Identify(Native()).AMDErratum() && BuildTarget().CPUIDAllowed {
			t.Fatalf("rdseed advertised but construction failed: %v", err)
		}
		t.Skip("rdseed not available")
	}
	if _, err := g.TryUint16(); err != nil {
		t.Fatal(err)
	}
	checkNativeFill(t, g.TryFill)
}

func checkNativeFill(t *testing.T, fill func([]byte) (int, error)) {
	t.Helper()
	a := make([]byte, 61)
	b := make([]byte, 61)
	if _, err := fill(a[3:]); err != nil {
		t.Fatal(err)
	}
	if _, err := fill(b[3:]); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, b) {
		t.Error("two fills produced the same bytes")
	}
	if !bytes.Equal(a[:3], []byte{0, 0, 0}) {
		t.Error("fill wrote before dest")
	}
}

var global uint64

func BenchmarkRdRandUint64(b *testing.B) {
	g, err := NewRdRand()
	if err != nil {
		b.Skip(err)
	}
	for i := 0; i < b.N; i++ {
		global += g.Uint64()
	}
}

func BenchmarkRdSeedUint64(b *testing.B) {
	g, err := NewRdSeed()
	if err != nil {
		b.Skip(err)
	}
	for i := 0; i < b.N; i++ {
		global += g.Uint64()
	}
}

func BenchmarkRdRandFill(b *testing.B) {
	g, err := NewRdRand()
	if err != nil {
		b.Skip(err)
	}
	buf := make([]byte, 4096+3)
	b.SetBytes(4096)
	for i := 0; i < b.N; i++ {
		g.Fill(buf[3:])
	}
}
