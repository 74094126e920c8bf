//go:build hwrand_rdseed && (amd64 || 386)

package hwrand

func init() { buildTarget.StaticRDSEED = true }
