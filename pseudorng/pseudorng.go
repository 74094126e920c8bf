// Package pseudorng is a software generator whose seed comes from the
// processor's hardware entropy source when one is available.
package pseudorng

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/Thiagojm/rdrand_go_cli/hwrand"
)

// SeedSize is the ChaCha8 seed length in bytes.
const SeedSize = 32

// Seed origins reported by NewHardwareSeeded.
const (
	OriginRdSeed = "rdseed"
	OriginRdRand = "rdrand"
	OriginCrypto = "crypto/rand"
)

type seedSource struct {
	origin string
	open   func() (io.Reader, error)
}

// defaultSeedSources is tried in order: the seed instruction is the one
// meant for seeding, RDRAND is a DRBG output, the OS generator comes last.
var defaultSeedSources = []seedSource{
	{OriginRdSeed, func() (io.Reader, error) { return hwrand.NewRdSeed() }},
	{OriginRdRand, func() (io.Reader, error) { return hwrand.NewRdRand() }},
	{OriginCrypto, func() (io.Reader, error) { return crand.Reader, nil }},
}

// drawSeed returns a seed from the first source that can produce a full one.
func drawSeed(sources []seedSource) ([SeedSize]byte, string, error) {
	var (
		seed [SeedSize]byte
		errs []error
	)
	for _, s := range sources {
		r, err := s.open()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.origin, err))
			continue
		}
		if _, err := io.ReadFull(r, seed[:]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.origin, err))
			continue
		}
		return seed, s.origin, nil
	}
	return seed, "", fmt.Errorf("no seed source available: %w", errors.Join(errs...))
}

// Generator is a deterministic ChaCha8 stream. It is not safe for
// concurrent use.
type Generator struct {
	r *rand.ChaCha8
}

// NewGenerator returns a generator with a fixed seed, for reproducible
// streams.
func NewGenerator(seed [SeedSize]byte) *Generator {
	return &Generator{r: rand.NewChaCha8(seed)}
}

// NewHardwareSeeded returns a generator seeded from RDSEED, falling back to
// RDRAND and then crypto/rand. origin names the source that was used.
func NewHardwareSeeded() (g *Generator, origin string, err error) {
	seed, origin, err := drawSeed(defaultSeedSources)
	if err != nil {
		return nil, "", err
	}
	return NewGenerator(seed), origin, nil
}

// Read fills p from the stream. It never fails.
func (g *Generator) Read(p []byte) (int, error) {
	if g == nil || g.r == nil {
		return 0, errors.New("generator is nil")
	}
	return g.r.Read(p)
}

// Uint64 returns the next 64 bits of the stream.
func (g *Generator) Uint64() uint64 { return g.r.Uint64() }
