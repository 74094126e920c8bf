// Package source gives every entropy device the collector knows a common
// shape: read a number of bits, packed MSB-first, on demand or at an interval.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"time"

	"github.com/Thiagojm/rdrand_go_cli/hwrand"
	"github.com/Thiagojm/rdrand_go_cli/naming"
	"github.com/Thiagojm/rdrand_go_cli/pseudorng"
	"github.com/Thiagojm/rdrand_go_cli/truerng"
)

// Source produces random bits from one device.
type Source interface {
	Device() naming.Device
	// Description is a human readable account of the device, for logs.
	Description() string
	// ReadBits returns ByteCount(bitCount) bytes whose bits past bitCount
	// are zero.
	ReadBits(ctx context.Context, bitCount int) ([]byte, error)
	Close() error
}

// Open returns the Source for dev. Hardware instruction sources fail with
// hwrand.ErrUnsupportedInstruction on processors that lack them.
func Open(dev naming.Device) (Source, error) {
	switch dev {
	case naming.DeviceRdRand:
		g, err := hwrand.NewRdRand()
		if err != nil {
			return nil, err
		}
		return FromReader(dev, "RDRAND instruction", g), nil
	case naming.DeviceRdSeed:
		g, err := hwrand.NewRdSeed()
		if err != nil {
			return nil, err
		}
		return FromReader(dev, "RDSEED instruction", g), nil
	case naming.DevicePseudo:
		g, origin, err := pseudorng.NewHardwareSeeded()
		if err != nil {
			return nil, err
		}
		return FromReader(dev, "ChaCha8 seeded from "+origin, g), nil
	case naming.DeviceTrueRNG:
		d, err := truerng.Open()
		if err != nil {
			return nil, err
		}
		return &trngSource{d: d}, nil
	}
	return nil, dev.Validate()
}

// FromReader adapts r, which must not block, into a Source.
func FromReader(dev naming.Device, desc string, r io.Reader) Source {
	return &readerSource{dev: dev, desc: desc, r: r}
}

type readerSource struct {
	dev  naming.Device
	desc string
	r    io.Reader
}

func (s *readerSource) Device() naming.Device { return s.dev }
func (s *readerSource) Description() string   { return s.desc }
func (s *readerSource) Close() error          { return nil }

func (s *readerSource) ReadBits(ctx context.Context, bitCount int) ([]byte, error) {
	if bitCount <= 0 {
		return nil, errors.New("bitCount must be positive")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf := make([]byte, ByteCount(bitCount))
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return nil, fmt.Errorf("%s: %w", s.dev, err)
	}
	MaskTrailingBits(buf, bitCount)
	return buf, nil
}

type trngSource struct {
	d *truerng.Device
}

func (s *trngSource) Device() naming.Device { return naming.DeviceTrueRNG }
func (s *trngSource) Description() string   { return "TrueRNG on " + s.d.Name() }
func (s *trngSource) Close() error          { return s.d.Close() }

func (s *trngSource) ReadBits(ctx context.Context, bitCount int) ([]byte, error) {
	if bitCount <= 0 {
		return nil, errors.New("bitCount must be positive")
	}
	buf := make([]byte, ByteCount(bitCount))
	// a stalled device must not hang the collector
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.d.ReadFull(ctx, buf); err != nil {
		return nil, err
	}
	MaskTrailingBits(buf, bitCount)
	return buf, nil
}

// ByteCount is the number of bytes needed to hold bitCount bits.
func ByteCount(bitCount int) int { return (bitCount + 7) / 8 }

// MaskTrailingBits zeroes the bits of the final byte of buf that lie past
// bitCount, keeping the most significant ones.
func MaskTrailingBits(buf []byte, bitCount int) {
	extra := (8 - bitCount%8) % 8
	if extra != 0 && len(buf) > 0 {
		buf[len(buf)-1] &= 0xFF << extra
	}
}

// CountOnes returns the number of set bits among the first bitCount bits of
// buf, MSB-first.
func CountOnes(buf []byte, bitCount int) int {
	if bitCount <= 0 || len(buf) == 0 {
		return 0
	}
	used := min(ByteCount(bitCount), len(buf))
	total := 0
	for _, b := range buf[:used-1] {
		total += bits.OnesCount8(b)
	}
	last := buf[used-1]
	if rem := bitCount - (used-1)*8; rem < 8 {
		last &= 0xFF << (8 - rem)
	}
	return total + bits.OnesCount8(last)
}

// CollectBitsAtInterval reads bitCount bits from src immediately and then
// once per interval, handing each batch to onBatch. It returns when ctx is
// done, a read fails, or onBatch returns an error.
func CollectBitsAtInterval(ctx context.Context, src Source, bitCount int, interval time.Duration, onBatch func([]byte) error) error {
	if bitCount <= 0 {
		return errors.New("bitCount must be positive")
	}
	if interval <= 0 {
		return errors.New("interval must be positive")
	}
	if onBatch == nil {
		return errors.New("onBatch callback must not be nil")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		b, err := src.ReadBits(ctx, bitCount)
		if err != nil {
			return err
		}
		if err := onBatch(b); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
