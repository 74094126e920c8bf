// Package zscore turns collected samples into a cumulative z-score series and
// exports it as a spreadsheet with a line chart.
//
// For samples of n bits with k_i ones, the expected mean of k is n/2 and the
// standard deviation sqrt(n/4). After i samples the cumulative mean m_i is
// compared against that expectation:
//
//	z_i = (m_i - n/2) / (sqrt(n/4) / sqrt(i))
package zscore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/bits"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Thiagojm/rdrand_go_cli/naming"
)

// Row is one sample: its label, its count of ones and the running
// statistics up to and including it.
type Row struct {
	Label          string
	Ones           int
	CumulativeMean float64
	ZScore         float64
}

// ReadBin reads consecutive samples of blockBits bits from r, each stored in
// whole bytes as the collector writes them. A trailing incomplete sample is
// ignored. Rows are labelled with their 1-based sample number.
func ReadBin(r io.Reader, blockBits int) ([]Row, error) {
	if blockBits <= 0 {
		return nil, errors.New("invalid block size")
	}
	buf := make([]byte, (blockBits+7)/8)
	var rows []Row
	for {
		_, err := io.ReadFull(r, buf)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		ones := 0
		for _, b := range buf {
			ones += bits.OnesCount8(b)
		}
		rows = append(rows, Row{Label: strconv.Itoa(len(rows) + 1), Ones: ones})
	}
}

// ReadCSV reads "timestamp,ones" records without a header. Rows are labelled
// with the time of day of the timestamp when it can be parsed.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 2 {
			continue
		}
		onesStr := strings.TrimSpace(rec[1])
		ones, err := strconv.Atoi(onesStr)
		if err != nil {
			return nil, fmt.Errorf("invalid ones value '%s': %w", onesStr, err)
		}
		rows = append(rows, Row{Label: timeLabel(strings.TrimSpace(rec[0])), Ones: ones})
	}
}

var timeLayouts = []string{
	// written by cmd/collect
	"20060102T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"15:04:05",
	"15:04",
}

func timeLabel(s string) string {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04:05")
		}
	}
	return s
}

// Compute fills in the cumulative mean and z-score of rows in place.
func Compute(rows []Row, blockBits int) []Row {
	expectedMean := 0.5 * float64(blockBits)
	expectedStdDev := math.Sqrt(float64(blockBits) * 0.25)
	if expectedStdDev == 0 {
		return rows
	}
	sum := 0
	for i := range rows {
		n := float64(i + 1)
		sum += rows[i].Ones
		rows[i].CumulativeMean = float64(sum) / n
		rows[i].ZScore = (rows[i].CumulativeMean - expectedMean) / (expectedStdDev / math.Sqrt(n))
	}
	return rows
}

// Run reads a .bin or .csv file written by the collector, computes the
// z-score series and writes it next to the input as .xlsx. It returns the
// path written.
func Run(path string) (string, error) {
	name, err := naming.Parse(path)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var (
		rows  []Row
		sheet Sheet
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bin":
		rows, err = ReadBin(f, name.Bits)
		sheet.FirstHeader = SamplesHeader
	case ".csv":
		rows, err = ReadCSV(f)
		sheet.FirstHeader = TimeHeader
	default:
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
	sheet.Title = fmt.Sprintf("%s - %s", filepath.Base(path), name.Device)
	sheet.BlockBits = name.Bits
	sheet.IntervalSeconds = name.IntervalSeconds
	if err := WriteExcel(out, Compute(rows, name.Bits), sheet); err != nil {
		return "", err
	}
	return out, nil
}
