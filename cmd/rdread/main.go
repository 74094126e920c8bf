// rdread reads bits from a random source once and prints them as hex, binary
// and a big-endian integer, or streams hex lines at an interval.
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/Thiagojm/rdrand_go_cli/internal/config"
	"github.com/Thiagojm/rdrand_go_cli/internal/logging"
	"github.com/Thiagojm/rdrand_go_cli/naming"
	"github.com/Thiagojm/rdrand_go_cli/source"
)

func main() {
	var cfg config.Read
	if err := config.ParseEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	flag.StringVar(&cfg.Device, "device", cfg.Device, "device to read from: rdrand|rdseed|pseudo|trng")
	flag.IntVar(&cfg.Bits, "bits", cfg.Bits, "number of bits to read per batch")
	flag.DurationVar(&cfg.Interval, "interval", cfg.Interval, "interval between reads (e.g. 2s). 0 for one-shot")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	flag.Parse()

	if err := logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogJSON); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	log := logging.Log()

	if cfg.Bits <= 0 {
		log.Fatal().Int("bits", cfg.Bits).Msg("invalid bit count")
	}
	dev, err := naming.ParseDevice(cfg.Device)
	if err != nil {
		log.Fatal().Err(err).Msg("device")
	}
	src, err := source.Open(dev)
	if err != nil {
		log.Fatal().Err(err).Str("device", string(dev)).Msg("open")
	}
	defer func() { _ = src.Close() }()
	log.Debug().Str("source", src.Description()).Msg("opened")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Interval == 0 {
		data, err := src.ReadBits(ctx, cfg.Bits)
		if err != nil {
			log.Fatal().Err(err).Msg("read")
		}
		printBits(os.Stdout, data, cfg.Bits)
		return
	}

	log.Info().Int("bits", cfg.Bits).Dur("interval", cfg.Interval).Msg("reading, press Ctrl+C to stop")
	err = source.CollectBitsAtInterval(ctx, src, cfg.Bits, cfg.Interval, func(b []byte) error {
		_, err := fmt.Printf("%s  %d bits  %s\n", time.Now().Format(time.RFC3339), cfg.Bits, hex.EncodeToString(b))
		return err
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("collect")
	}
}

// printBits writes data, holding numBits MSB-first bits, as hex, as a binary
// string of exactly numBits digits, and as a big-endian integer.
func printBits(w io.Writer, data []byte, numBits int) {
	fmt.Fprintf(w, "HEX: %x\n", data)

	var sb strings.Builder
	for _, b := range data {
		fmt.Fprintf(&sb, "%08b", b)
	}
	binStr := sb.String()
	if len(binStr) > numBits {
		binStr = binStr[:numBits]
	}
	fmt.Fprintf(w, "BIN: %s\n", binStr)

	fmt.Fprintf(w, "INT: %s\n", new(big.Int).SetBytes(data).String())
}
