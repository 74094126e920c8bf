//go:build hwrand_rdrand && (amd64 || 386)

package hwrand

func init() { buildTarget.StaticRDRAND = true }
