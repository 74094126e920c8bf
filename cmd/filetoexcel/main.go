// filetoexcel computes the cumulative z-score of a .bin or .csv file written
// by collect and saves it, with a chart, as an .xlsx file next to the input.
//
// Usage: filetoexcel <path-to-.bin-or-.csv>...
package main

import (
	"fmt"
	"os"

	"github.com/Thiagojm/rdrand_go_cli/internal/config"
	"github.com/Thiagojm/rdrand_go_cli/internal/logging"
	"github.com/Thiagojm/rdrand_go_cli/zscore"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: filetoexcel <path-to-.bin-or-.csv>...")
		os.Exit(2)
	}
	var common config.Common
	if err := config.ParseEnv(&common); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := logging.Setup(os.Stderr, common.LogLevel, common.LogJSON); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	log := logging.Log()

	failed := false
	for _, path := range os.Args[1:] {
		out, err := zscore.Run(path)
		if err != nil {
			log.Error().Err(err).Str("input", path).Msg("export")
			failed = true
			continue
		}
		log.Info().Str("input", path).Str("output", out).Msg("exported")
	}
	if failed {
		os.Exit(1)
	}
}
