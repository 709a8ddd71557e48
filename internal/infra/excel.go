package infra

// excel.go — tabular report rendering with excelize.
// Single "Reporte" sheet, bold shaded header row and an autofilter over the
// full data range.

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const hojaReporte = "Reporte"

// GenerarReporteExcel renders the table to an in-memory .xlsx workbook.
func GenerarReporteExcel(t *TablaReporte) ([]byte, error) {
	if len(t.Columnas) == 0 {
		return nil, fmt.Errorf("excel: reporte sin columnas")
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(hojaReporte)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEEFF"}},
	})
	if err != nil {
		return nil, err
	}

	for i, col := range t.Columnas {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(hojaReporte, cell, col); err != nil {
			return nil, err
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(t.Columnas), 1)
	if err := f.SetCellStyle(hojaReporte, "A1", endHeader, headerStyle); err != nil {
		return nil, err
	}

	for r, fila := range t.Filas {
		for c := range t.Columnas {
			val := ""
			if c < len(fila) {
				val = fila[c]
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(hojaReporte, cell, val); err != nil {
				return nil, err
			}
		}
	}

	endData, _ := excelize.CoordinatesToCellName(len(t.Columnas), len(t.Filas)+1)
	if err := f.AutoFilter(hojaReporte, "A1:"+endData, nil); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: render: %w", err)
	}
	return buf.Bytes(), nil
}
