package measurements

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// BuildGroupsXLSX genera una hoja "groups" y una hoja "measures" (una fila por medida).
func BuildGroupsXLSX(groups []MeasurementGroup) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	groupsSheet := "groups"
	measuresSheet := "measures"
	f.SetSheetName("Sheet1", groupsSheet)
	f.NewSheet(measuresSheet)

	for i, h := range []string{"Group ID", "Measured At (UTC)", "Category", "Attribution", "Device ID", "Model"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(groupsSheet, cell, h)
	}
	for i, h := range []string{"Group ID", "Measured At (UTC)", "Type Code", "Type", "Value"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(measuresSheet, cell, h)
	}

	mrow := 2
	for i, g := range groups {
		row := i + 2
		measuredAt := g.MeasuredAt.UTC().Format(time.RFC3339)

		_ = f.SetCellValue(groupsSheet, fmt.Sprintf("A%d", row), g.ID)
		_ = f.SetCellValue(groupsSheet, fmt.Sprintf("B%d", row), measuredAt)
		_ = f.SetCellValue(groupsSheet, fmt.Sprintf("C%d", row), g.Category.String())
		_ = f.SetCellValue(groupsSheet, fmt.Sprintf("D%d", row), g.Attribution.String())
		if g.DeviceID != nil {
			_ = f.SetCellValue(groupsSheet, fmt.Sprintf("E%d", row), *g.DeviceID)
		}
		if g.Model != nil {
			_ = f.SetCellValue(groupsSheet, fmt.Sprintf("F%d", row), g.Model.String())
		}

		for _, m := range g.Measurements {
			_ = f.SetCellValue(measuresSheet, fmt.Sprintf("A%d", mrow), g.ID)
			_ = f.SetCellValue(measuresSheet, fmt.Sprintf("B%d", mrow), measuredAt)
			_ = f.SetCellValue(measuresSheet, fmt.Sprintf("C%d", mrow), m.Type.Code())
			_ = f.SetCellValue(measuresSheet, fmt.Sprintf("D%d", mrow), m.Type.String())
			_ = f.SetCellValue(measuresSheet, fmt.Sprintf("E%d", mrow), m.Value)
			mrow++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildLatestPDF genera un resumen de una página con el último valor por tipo.
func BuildLatestPDF(latest map[MeasurementType]float64, generatedAt time.Time) ([]byte, error) {
	types := make([]MeasurementType, 0, len(latest))
	for t := range latest {
		types = append(types, t)
	}
	sortTypes(types)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Latest measurements")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Generated at "+generatedAt.UTC().Format(time.RFC3339))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(25, 7, "Code", "1", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, "Type", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, "Value", "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, t := range types {
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", t.Code()), "1", 0, "L", false, 0, "")
		pdf.CellFormat(95, 6, t.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.3f", latest[t]), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
