// Package hwrand exposes the x86 RDRAND and RDSEED instructions as safe,
// retry-bounded random generators.
//
// A generator can only be obtained from a constructor that has checked, on the
// running processor, that the instruction may be used:
//
//	g, err := hwrand.NewRdSeed()
//	if errors.Is(err, hwrand.ErrUnsupportedInstruction) {
//		// fall back to something else; that policy belongs to the caller
//	}
//	seed, err := g.TryUint64()
//
// Detection follows the CPUID feature bits except on AMD processors older than
// family 17h, where both instructions are reported unavailable: affected parts
// can set the carry flag while returning a constant value.
//
// Every draw retries the instruction a bounded number of times (RdRandRetries,
// RdSeedRetries) and then reports ErrHardwareFailure. The Try* methods and Read
// return that error; Uint16, Uint32, Uint64 and Fill panic with it and are meant
// for callers that have no other entropy source and must treat a hardware
// failure as fatal. Uint64 lets both generators be used as a math/rand/v2
// Source.
//
// Generators hold no mutable state and may be copied and shared between
// goroutines freely.
//
// On targets other than amd64 and 386 every constructor reports
// ErrUnsupportedInstruction. The build tags hwrand_rdrand and hwrand_rdseed
// declare the instruction present regardless of CPUID, and hwrand_nocpuid
// forbids executing CPUID at all (availability then comes from the tags only).
package hwrand
