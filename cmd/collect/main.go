// collect samples a random source at a fixed interval and records each batch
// in a .bin file (raw bytes) and a .csv file (timestamp, count of ones).
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Thiagojm/rdrand_go_cli/internal/config"
	"github.com/Thiagojm/rdrand_go_cli/internal/logging"
	"github.com/Thiagojm/rdrand_go_cli/naming"
	"github.com/Thiagojm/rdrand_go_cli/source"
)

func main() {
	var cfg config.Collect
	if err := config.ParseEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	flag.IntVar(&cfg.Bits, "bits", cfg.Bits, "number of bits per batch (required > 0)")
	flag.IntVar(&cfg.IntervalSeconds, "interval", cfg.IntervalSeconds, "interval between batches in seconds (required > 0)")
	flag.StringVar(&cfg.Device, "device", cfg.Device, "device to read from: rdrand|rdseed|pseudo|trng")
	flag.StringVar(&cfg.OutDir, "outdir", cfg.OutDir, "output directory for files")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	flag.Parse()

	if err := logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogJSON); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	log := logging.Log()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("collect")
	}
}

func run(ctx context.Context, cfg config.Collect) error {
	log := logging.Log()
	if cfg.Bits <= 0 {
		return errors.New("-bits must be > 0")
	}
	if cfg.IntervalSeconds <= 0 {
		return errors.New("-interval must be > 0")
	}
	dev, err := naming.ParseDevice(cfg.Device)
	if err != nil {
		return err
	}

	src, err := source.Open(dev)
	if err != nil {
		return fmt.Errorf("open %s: %w", dev, err)
	}
	defer func() { _ = src.Close() }()

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating outdir: %w", err)
	}
	binPath, csvPath, err := naming.BuildBinCSVPaths(cfg.OutDir, time.Now(), dev, cfg.Bits, cfg.IntervalSeconds)
	if err != nil {
		return fmt.Errorf("build filenames: %w", err)
	}
	rec, err := openRecorder(binPath, csvPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := rec.Close(); err != nil {
			log.Error().Err(err).Msg("close output files")
		}
	}()

	interval := time.Duration(cfg.IntervalSeconds) * time.Second
	log.Info().
		Str("device", string(dev)).
		Str("source", src.Description()).
		Int("bits", cfg.Bits).
		Dur("interval", interval).
		Str("bin", binPath).
		Str("csv", csvPath).
		Msg("collecting")

	sample := 0
	return source.CollectBitsAtInterval(ctx, src, cfg.Bits, interval, func(batch []byte) error {
		now := time.Now()
		ones := source.CountOnes(batch, cfg.Bits)
		if err := rec.Record(now, batch, ones); err != nil {
			return err
		}
		sample++
		log.Info().Int("sample", sample).Int("ones", ones).Int("bits", cfg.Bits).Msg("batch")
		return nil
	})
}

// recorder appends batches to the .bin and .csv outputs, flushing after
// every batch so an interrupted run leaves complete records.
type recorder struct {
	binFile, csvFile *os.File
	bin, csv         *bufio.Writer
}

func openRecorder(binPath, csvPath string) (*recorder, error) {
	binFile, err := os.OpenFile(binPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open bin file: %w", err)
	}
	csvFile, err := os.OpenFile(csvPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		_ = binFile.Close()
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	return &recorder{
		binFile: binFile,
		csvFile: csvFile,
		bin:     bufio.NewWriter(binFile),
		csv:     bufio.NewWriter(csvFile),
	}, nil
}

func (r *recorder) Record(ts time.Time, batch []byte, ones int) error {
	if _, err := r.bin.Write(batch); err != nil {
		return fmt.Errorf("write bin: %w", err)
	}
	if err := r.bin.Flush(); err != nil {
		return fmt.Errorf("write bin: %w", err)
	}
	if _, err := fmt.Fprintf(r.csv, "%s,%d\n", ts.Format("20060102T15:04:05"), ones); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if err := r.csv.Flush(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func (r *recorder) Close() error {
	return errors.Join(r.bin.Flush(), r.csv.Flush(), r.binFile.Close(), r.csvFile.Close())
}
