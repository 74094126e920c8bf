package zscore

import (
	"errors"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName = "Zscore"

	SamplesHeader = "samples"
	TimeHeader    = "time"
)

// Sheet describes the exported workbook.
type Sheet struct {
	Title string
	// FirstHeader labels the first column, SamplesHeader or TimeHeader.
	FirstHeader     string
	BlockBits       int
	IntervalSeconds int
}

// WriteExcel writes rows to path as a single "Zscore" sheet with a line
// chart of the z-score next to the data.
func WriteExcel(path string, rows []Row, s Sheet) error {
	if len(rows) == 0 {
		return errors.New("no data to write")
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}
	header := []interface{}{s.FirstHeader, "ones", "cumulative_mean", "z_test"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Label, r.Ones, round6(r.CumulativeMean), round6(r.ZScore)}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	end := len(rows) + 1
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$D$1", sheetName),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetName, end),
			Values:     fmt.Sprintf("%s!$D$2:$D$%d", sheetName, end),
		}},
		Title:  []excelize.RichTextRun{{Text: s.Title}},
		Legend: excelize.ChartLegend{Position: "none"},
		XAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{
			Text: fmt.Sprintf("Number of Samples - one sample every %d second(s)", s.IntervalSeconds),
		}}},
		YAxis: excelize.ChartAxis{
			Title:          []excelize.RichTextRun{{Text: fmt.Sprintf("Z-score - Sample Size = %d bits", s.BlockBits)}},
			MajorGridLines: true,
		},
	}
	if err := f.AddChart(sheetName, "F2", chart); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }
