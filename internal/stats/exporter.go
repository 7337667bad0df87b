package stats

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/sharath018/ewm-backend/utils"
)

// Exporter renders a stats aggregate as a downloadable file
type Exporter interface {
	Export(format string, q StatsQuery, rows []ViewStats) ([]byte, string, string, error)
}

type statsExporter struct {
	now func() time.Time
}

func NewExporter() Exporter {
	return &statsExporter{now: time.Now}
}

var statsHeaders = []string{"App", "URI", "Hits"}

func (e *statsExporter) Export(format string, q StatsQuery, rows []ViewStats) ([]byte, string, string, error) {
	timestamp := e.now().Format("20060102_150405")

	switch format {
	case FormatExcel:
		data, err := e.exportExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("stats_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("stats_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportPDF(q, rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("stats_report_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for stats: %s", format)
	}
}

func (e *statsExporter) exportCSV(rows []ViewStats) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(statsHeaders); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{row.App, row.URI, strconv.FormatInt(row.Hits, 10)}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *statsExporter) exportExcel(rows []ViewStats) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Stats"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, header := range statsHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		line := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", line), row.App)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", line), row.URI)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", line), row.Hits)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *statsExporter) exportPDF(q StatsQuery, rows []ViewStats) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Endpoint Hits Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	period := fmt.Sprintf("%s - %s", q.Start.Format(utils.DateTimeLayout), q.End.Format(utils.DateTimeLayout))
	if q.Unique {
		period += " (unique ip)"
	}
	pdf.Cell(0, 8, period)
	pdf.Ln(12)

	widths := []float64{50, 110, 25}
	pdf.SetFont("Arial", "B", 9)
	for i, h := range statsHeaders {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range rows {
		values := []string{row.App, row.URI, strconv.FormatInt(row.Hits, 10)}
		for i, v := range values {
			pdf.CellFormat(widths[i], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
