package infra

// pdf.go — tabular report rendering with go-pdf/fpdf.
// Landscape A4 with a centered title, the date range subtitle, a bordered
// header row and one bordered cell per value.

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// TablaReporte is the render-ready form of any report: a title, column
// headers and stringified rows. Services build it, infra draws it.
type TablaReporte struct {
	Titulo    string
	Subtitulo string
	Columnas  []string
	Filas     [][]string
}

// GenerarReportePDF renders the table to an in-memory PDF document.
func GenerarReportePDF(t *TablaReporte) ([]byte, error) {
	if len(t.Columnas) == 0 {
		return nil, fmt.Errorf("pdf: reporte sin columnas")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, t.Titulo, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 10, t.Subtitulo, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// 277mm of usable width on landscape A4, split evenly
	colW := 277.0 / float64(len(t.Columnas))

	pdf.SetFont("Helvetica", "B", 11)
	for _, col := range t.Columnas {
		pdf.CellFormat(colW, 10, col, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, fila := range t.Filas {
		for i := range t.Columnas {
			val := ""
			if i < len(fila) {
				val = fila[i]
			}
			pdf.CellFormat(colW, 10, val, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}
