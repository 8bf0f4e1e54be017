package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/abhisek/soulsupport/internal/resources"
)

// Title heads the first page of the report.
const Title = "Mental Health Assessment Report"

// Write renders the PDF report to w. chartPath is a PNG produced by Chart;
// an empty chartPath omits the chart.
func Write(w io.Writer, in Input, chartPath string) error {
	if len(in.Entries) == 0 {
		return ErrNoData
	}
	pdf := build(in, chartPath)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// SaveFile renders the chart to a transient PNG in the working directory,
// writes the PDF to path and removes the PNG. Nothing is written when in
// has no entries.
func SaveFile(path string, in Input) error {
	if len(in.Entries) == 0 {
		return ErrNoData
	}

	png, err := Chart(in)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(".", "soulsupport-chart-*.png")
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(png); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write chart file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close chart file: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}

	pdf := build(in, tmp.Name())
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func build(in Input, chartPath string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(190, 10, tr(Title), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	for _, e := range in.Entries {
		pdf.MultiCell(0, 10, tr(fmt.Sprintf("Q%d: %s\nScore: %d\n", e.Number, e.Question, e.Answer)), "", "L", false)
	}

	if chartPath != "" {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.ImageOptions(chartPath, 10, pdf.GetY()+5, 180, 0, false, opts, 0, "")
	}

	pdf.AddPage()
	pdf.CellFormat(190, 10, "Recommendations:", "", 1, "L", false, 0, "")
	for _, rec := range resources.Recommendations() {
		pdf.CellFormat(190, 10, tr(rec), "", 1, "L", false, 0, "")
	}
	return pdf
}
