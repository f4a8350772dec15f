package render

import (
	"fmt"
	"io"

	"github.com/UnknownOlympus/iris/internal/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single worksheet of the XLSX export.
const SheetName = "Directory"

const (
	leftColumn  = 1 // A
	rightColumn = 4 // D
	firstRow    = 1
)

// XLSX writes the two tables side by side (columns A-B and D-E) and the office
// panel below the longer table.
func XLSX(w io.Writer, view models.View) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	lastRow := firstRow
	placements := []struct {
		column int
		table  models.Table
	}{
		{column: leftColumn, table: view.Left},
		{column: rightColumn, table: view.Right},
	}

	for _, placement := range placements {
		end, writeErr := writeTable(file, placement.table, placement.column, bold)
		if writeErr != nil {
			return writeErr
		}
		lastRow = max(lastRow, end)
	}

	if view.Office != nil {
		if err = writeOffice(file, view.Office, lastRow+2, bold); err != nil {
			return err
		}
	}

	if err = file.SetColWidth(SheetName, "A", "A", 30); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err = file.SetColWidth(SheetName, "D", "D", 30); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err = file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

// writeTable returns the last row it wrote.
func writeTable(file *excelize.File, table models.Table, column int, style int) (int, error) {
	headingCell, err := excelize.CoordinatesToCellName(column, firstRow)
	if err != nil {
		return 0, fmt.Errorf("failed to address heading: %w", err)
	}
	if err = file.SetCellValue(SheetName, headingCell, table.Heading); err != nil {
		return 0, fmt.Errorf("failed to write heading: %w", err)
	}

	captionCell, err := excelize.CoordinatesToCellName(column, firstRow+1)
	if err != nil {
		return 0, fmt.Errorf("failed to address captions: %w", err)
	}
	captions := []any{models.NameCaption, models.ExtensionCaption}
	if err = file.SetSheetRow(SheetName, captionCell, &captions); err != nil {
		return 0, fmt.Errorf("failed to write captions: %w", err)
	}

	lastCaption, err := excelize.CoordinatesToCellName(column+1, firstRow+1)
	if err != nil {
		return 0, fmt.Errorf("failed to address captions: %w", err)
	}
	if err = file.SetCellStyle(SheetName, headingCell, lastCaption, style); err != nil {
		return 0, fmt.Errorf("failed to style header: %w", err)
	}

	rowIndex := firstRow + 1
	for _, row := range table.Rows {
		rowIndex++

		cell, cellErr := excelize.CoordinatesToCellName(column, rowIndex)
		if cellErr != nil {
			return 0, fmt.Errorf("failed to address row: %w", cellErr)
		}

		values := []any{row.Name, int(row.Extension)}
		if err = file.SetSheetRow(SheetName, cell, &values); err != nil {
			return 0, fmt.Errorf("failed to write row %q: %w", row.Name, err)
		}
	}

	return rowIndex, nil
}

func writeOffice(file *excelize.File, office *models.OfficePanel, row int, style int) error {
	lines := [][]any{
		{office.Title},
		{"Address:", office.Address},
		{"Phone Number:", office.PhoneNumber},
	}

	for offset, line := range lines {
		cell, err := excelize.CoordinatesToCellName(leftColumn, row+offset)
		if err != nil {
			return fmt.Errorf("failed to address office info: %w", err)
		}
		if err = file.SetSheetRow(SheetName, cell, &line); err != nil {
			return fmt.Errorf("failed to write office info: %w", err)
		}
	}

	titleCell, err := excelize.CoordinatesToCellName(leftColumn, row)
	if err != nil {
		return fmt.Errorf("failed to address office title: %w", err)
	}
	if err = file.SetCellStyle(SheetName, titleCell, titleCell, style); err != nil {
		return fmt.Errorf("failed to style office title: %w", err)
	}

	return nil
}
