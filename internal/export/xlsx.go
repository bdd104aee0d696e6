package export

import (
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/xuri/excelize/v2"

	"github.com/sustainlab/materiality/internal/assessment"
	"github.com/sustainlab/materiality/internal/catalog"
)

// SheetName is the worksheet the XLSX export writes to.
const SheetName = "重大性評估"

// XLSX writes the same header and rows as the CSV export into a workbook,
// keeping the scale columns numeric.
type XLSX struct{}

func (XLSX) Format() string { return "xlsx" }

func (XLSX) Write(form *assessment.FormModel, dir, name string) (string, error) {
	if err := assessment.CheckDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, assessment.FileName(name, "xlsx"))

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return "", wrapIO(err, "failed to name sheet", path)
	}

	header := catalog.Header()
	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &headerCells); err != nil {
		return "", wrapIO(err, "failed to write header", path)
	}

	rowIdx := 2
	for row := range form.ExportRows() {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return "", wrapIO(err, "failed to address row", path)
		}
		values := row.Values()
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return "", wrapIO(err, "failed to write row", path)
		}
		rowIdx++
	}

	if err := f.SaveAs(path); err != nil {
		return "", wrapIO(err, "failed to save workbook", path)
	}
	return path, nil
}

func wrapIO(err error, msg, path string) error {
	return goerr.Wrap(assessment.ErrIO, msg, goerr.V(assessment.PathKey, path), goerr.V("cause", err.Error()))
}
