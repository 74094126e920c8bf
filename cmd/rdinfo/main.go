// rdinfo reports whether RDRAND and RDSEED can be used on this machine and
// why.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/cpu"

	"github.com/Thiagojm/rdrand_go_cli/hwrand"
	"github.com/Thiagojm/rdrand_go_cli/internal/config"
	"github.com/Thiagojm/rdrand_go_cli/internal/logging"
)

type report struct {
	Vendor     string        `json:"vendor"`
	Family     uint32        `json:"family"`
	MaxLeaf    uint32        `json:"max_leaf"`
	AMDErratum bool          `json:"amd_erratum"`
	Target     hwrand.Target `json:"target"`
	CPUIDBits  features      `json:"cpuid_bits"`
	SysCPU     features      `json:"x_sys_cpu"`
	Usable     features      `json:"usable"`
}

type features struct {
	RDRAND bool `json:"rdrand"`
	RDSEED bool `json:"rdseed"`
}

func main() {
	var common config.Common
	if err := config.ParseEnv(&common); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	jsonOutput := flag.Bool("json", false, "output a JSON report")
	flag.Parse()
	if err := logging.Setup(os.Stderr, common.LogLevel, common.LogJSON); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	r := inspect(hwrand.Native(), hwrand.BuildTarget())
	r.SysCPU = features{RDRAND: cpu.X86.HasRDRAND, RDSEED: cpu.X86.HasRDSEED}
	if r.Target.CPUIDAllowed && r.SysCPU != r.CPUIDBits {
		logging.Log().Warn().
			Interface("cpuid", r.CPUIDBits).
			Interface("x_sys_cpu", r.SysCPU).
			Msg("feature bits disagree with golang.org/x/sys/cpu")
	}

	if *jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			logging.Log().Fatal().Err(err).Msg("encode report")
		}
		return
	}
	printReport(os.Stdout, r)
}

func inspect(hw hwrand.Hardware, t hwrand.Target) report {
	r := report{
		Target: t,
		Usable: features{
			RDRAND: hwrand.Detect(hw, t, hwrand.RDRAND),
			RDSEED: hwrand.Detect(hw, t, hwrand.RDSEED),
		},
	}
	if !t.CPUIDAllowed {
		return r
	}
	info := hwrand.Identify(hw)
	r.Vendor = info.Vendor
	r.Family = info.Family
	r.MaxLeaf = info.MaxLeaf
	r.AMDErratum = info.AMDErratum()
	r.CPUIDBits = features{RDRAND: info.HasRDRAND(), RDSEED: info.HasRDSEED()}
	return r
}

func printReport(w io.Writer, r report) {
	if !r.Target.CPUIDAllowed {
		fmt.Fprintln(w, "CPUID: not allowed on this target")
	} else {
		fmt.Fprintf(w, "Vendor: %s\n", r.Vendor)
		fmt.Fprintf(w, "Family: %#x\n", r.Family)
		fmt.Fprintf(w, "CPUID bits: rdrand=%t rdseed=%t\n", r.CPUIDBits.RDRAND, r.CPUIDBits.RDSEED)
		if r.AMDErratum {
			fmt.Fprintln(w, "AMD family before 17h: instructions disabled (erratum)")
		}
	}
	fmt.Fprintf(w, "x/sys/cpu: rdrand=%t rdseed=%t\n", r.SysCPU.RDRAND, r.SysCPU.RDSEED)
	if r.Target.StaticRDRAND || r.Target.StaticRDSEED {
		fmt.Fprintf(w, "Build declares: rdrand=%t rdseed=%t\n", r.Target.StaticRDRAND, r.Target.StaticRDSEED)
	}
	fmt.Fprintf(w, "Usable: rdrand=%t rdseed=%t\n", r.Usable.RDRAND, r.Usable.RDSEED)
}
