package export

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// XLSX renders the table as a workbook with a bold header row and fixed column widths.
func XLSX(t *Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Name
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, errors.Wrap(err, "rename sheet")
	}

	for i, c := range t.Columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err = f.SetColWidth(sheet, col, col, c.Width); err != nil {
			return nil, errors.Wrapf(err, "set width of column %s", col)
		}
	}

	headers := t.Headers()
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, errors.Wrap(err, "write header")
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "create header style")
	}
	last, err := excelize.CoordinatesToCellName(len(t.Columns), 1)
	if err != nil {
		return nil, err
	}
	if err = f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return nil, errors.Wrap(err, "style header")
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, errors.Wrapf(err, "write row %d", i+2)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}
