//go:build hwrand_nocpuid

package hwrand

func init() { buildTarget.CPUIDAllowed = false }
