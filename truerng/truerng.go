package truerng

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// DeviceNamePrefix is the prefix of the product name, serial number or port
// name a TrueRNG device reports.
const DeviceNamePrefix = "TrueRNG"

const (
	vendorID    = "16D0"
	readTimeout = time.Second
)

var productIDs = map[string]bool{"0AA0": true, "0AA2": true, "0AA4": true}

// ErrNotFound is returned when no TrueRNG port is present.
var ErrNotFound = errors.New("TrueRNG device not found")

// Detect returns true if a TrueRNG serial device is present on the system.
func Detect() (bool, error) {
	_, err := FindPort()
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// FindPort returns the first port name of a detected TrueRNG device, e.g.
// "COM5" or "/dev/ttyACM0".
func FindPort() (string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return "", fmt.Errorf("enumerating ports: %w", err)
	}
	for _, p := range ports {
		if isTrueRNG(p) && p.Name != "" {
			return p.Name, nil
		}
	}
	return "", ErrNotFound
}

// Device is an open TrueRNG port.
type Device struct {
	name string
	port serial.Port
}

// Open finds the first TrueRNG, raises DTR and discards buffered input so
// the first read returns fresh data.
func Open() (*Device, error) {
	name, err := FindPort()
	if err != nil {
		return nil, err
	}
	port, err := serial.Open(name, &serial.Mode{
		// the OS clamps unsupported rates; TrueRNG ignores the setting
		BaudRate: 3000000,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	_ = port.SetDTR(true)
	if err := port.SetReadTimeout(readTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", name, err)
	}
	_ = port.ResetInputBuffer()
	return &Device{name: name, port: port}, nil
}

// Name returns the port name.
func (d *Device) Name() string { return d.name }

// ReadFull fills buf, returning early with ctx.Err() if ctx is done. Each
// underlying read waits at most one second.
func (d *Device) ReadFull(ctx context.Context, buf []byte) error {
	total := 0
	for total < len(buf) {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := d.port.Read(buf[total:])
		if err != nil {
			return fmt.Errorf("read %s: %w", d.name, err)
		}
		total += n
	}
	return nil
}

// Close releases the port.
func (d *Device) Close() error { return d.port.Close() }

func isTrueRNG(p *enumerator.PortDetails) bool {
	if p == nil {
		return false
	}
	if p.IsUSB && (strings.HasPrefix(p.Product, DeviceNamePrefix) || strings.HasPrefix(p.SerialNumber, DeviceNamePrefix)) {
		return true
	}
	if strings.HasPrefix(p.Name, DeviceNamePrefix) {
		return true
	}
	return strings.EqualFold(p.VID, vendorID) && productIDs[strings.ToUpper(p.PID)]
}
