// Package naming builds and parses the file names used for collected samples.
package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Device identifies the source random bits were collected from.
type Device string

const (
	DeviceRdRand  Device = "rdrand"
	DeviceRdSeed  Device = "rdseed"
	DeviceTrueRNG Device = "trng"
	DevicePseudo  Device = "pseudo"
)

// Devices lists every known device, in the order shown to users.
var Devices = []Device{DeviceRdRand, DeviceRdSeed, DevicePseudo, DeviceTrueRNG}

const stampLayout = "20060102T150405"

// Validate checks whether d is one of the allowed device identifiers.
func (d Device) Validate() error {
	for _, known := range Devices {
		if d == known {
			return nil
		}
	}
	return fmt.Errorf("invalid device: %q (allowed: %s)", string(d), allowed())
}

func allowed() string {
	names := make([]string, len(Devices))
	for i, d := range Devices {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}

// ParseDevice returns the Device named by s.
func ParseDevice(s string) (Device, error) {
	d := Device(strings.ToLower(strings.TrimSpace(s)))
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

// BuildBaseName builds the base filename using the convention:
//
//	YYYYMMDDTHHMMSS_{device}_s{bits}_i{interval}
//
// bits is the sample size in bits per collection and interval the number of
// seconds between collections; both must be positive.
func BuildBaseName(now time.Time, device Device, bits int, intervalSeconds int) (string, error) {
	if err := device.Validate(); err != nil {
		return "", err
	}
	if bits <= 0 {
		return "", errors.New("bits must be > 0")
	}
	if intervalSeconds <= 0 {
		return "", errors.New("intervalSeconds must be > 0")
	}
	return fmt.Sprintf("%s_%s_s%d_i%d", now.Format(stampLayout), string(device), bits, intervalSeconds), nil
}

// BaseName is a parsed base filename.
type BaseName struct {
	Time            time.Time
	Device          Device
	Bits            int
	IntervalSeconds int
}

// Parse reads the convention of BuildBaseName back from a path. Directory and
// extension are ignored.
func Parse(path string) (BaseName, error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(base, "_")
	if len(parts) != 4 {
		return BaseName{}, fmt.Errorf("file name %q does not match {stamp}_{device}_s{bits}_i{interval}", filepath.Base(path))
	}

	var (
		n   BaseName
		err error
	)
	if n.Time, err = time.ParseInLocation(stampLayout, parts[0], time.Local); err != nil {
		return BaseName{}, fmt.Errorf("timestamp in %q: %w", base, err)
	}
	n.Device = Device(parts[1])
	if err := n.Device.Validate(); err != nil {
		return BaseName{}, err
	}
	if n.Bits, err = parseField(parts[2], "s"); err != nil {
		return BaseName{}, fmt.Errorf("bit count not found in file name: %s: %w", base, err)
	}
	if n.IntervalSeconds, err = parseField(parts[3], "i"); err != nil {
		return BaseName{}, fmt.Errorf("interval not found in file name: %s: %w", base, err)
	}
	return n, nil
}

func parseField(s, prefix string) (int, error) {
	digits, ok := strings.CutPrefix(s, prefix)
	if !ok {
		return 0, fmt.Errorf("missing %q prefix", prefix)
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, errors.New("must be > 0")
	}
	return v, nil
}

// WithExt appends an extension to a base name. A leading dot on ext is
// accepted. Empty ext returns base.
func WithExt(base string, ext string) string {
	if ext == "" {
		return base
	}
	return base + "." + strings.TrimPrefix(ext, ".")
}

// JoinDir builds a path joining an optional directory with the filename.
// If dir is empty, it returns name as-is.
func JoinDir(dir string, name string) string {
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// BuildBinCSVPaths builds full paths for the .bin and .csv files of one
// collection run inside dir (dir may be empty).
func BuildBinCSVPaths(dir string, now time.Time, device Device, bits int, intervalSeconds int) (binPath string, csvPath string, err error) {
	base, err := BuildBaseName(now, device, bits, intervalSeconds)
	if err != nil {
		return "", "", err
	}
	return JoinDir(dir, WithExt(base, "bin")), JoinDir(dir, WithExt(base, "csv")), nil
}
