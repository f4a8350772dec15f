package render

import (
	"fmt"
	"io"

	"github.com/UnknownOlympus/iris/internal/models"
	"github.com/olekukonko/tablewriter"
)

// Text writes both tables and the office panel as console tables.
func Text(w io.Writer, view models.View) error {
	for _, table := range []models.Table{view.Left, view.Right} {
		if _, err := fmt.Fprintf(w, "%s\n", table.Heading); err != nil {
			return fmt.Errorf("failed to write heading: %w", err)
		}

		consoleTable := tablewriter.NewWriter(w)
		consoleTable.SetHeader([]string{models.NameCaption, models.ExtensionCaption, "Email"})
		consoleTable.SetAutoFormatHeaders(false)

		for _, row := range table.Rows {
			consoleTable.Append([]string{row.Name, row.Extension.String(), row.Email})
		}

		consoleTable.Render()
	}

	if view.Office == nil {
		return nil
	}

	_, err := fmt.Fprintf(w, "%s\nAddress: %s\nPhone Number: %s\n",
		view.Office.Title, view.Office.Address, view.Office.PhoneNumber)
	if err != nil {
		return fmt.Errorf("failed to write office info: %w", err)
	}

	return nil
}
