package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/UnknownOlympus/iris/internal/models"
)

//go:embed templates/directory.html
var templateFS embed.FS

var directoryTemplate = template.Must(
	template.New("directory.html").
		Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
		ParseFS(templateFS, "templates/directory.html"),
)

type htmlRow struct {
	Name        string
	Extension   models.Extension
	CallTarget  template.URL
	EmailTarget string
}

type htmlTable struct {
	Heading string
	Rows    []htmlRow
}

type htmlOffice struct {
	Title       string
	Address     string
	PhoneNumber string
	CallTarget  template.URL
}

type htmlPage struct {
	Location         string
	Search           string
	Locations        []string
	Tables           []htmlTable
	Office           *htmlOffice
	NameCaption      string
	ExtensionCaption string
}

// HTML writes the directory page. locations fills the location selector.
func HTML(w io.Writer, view models.View, locations []string) error {
	page := htmlPage{
		Location:         view.Location,
		Search:           view.Search,
		Locations:        locations,
		Tables:           []htmlTable{toHTMLTable(view.Left), toHTMLTable(view.Right)},
		NameCaption:      models.NameCaption,
		ExtensionCaption: models.ExtensionCaption,
	}

	if view.Office != nil {
		page.Office = &htmlOffice{
			Title:       view.Office.Title,
			Address:     view.Office.Address,
			PhoneNumber: view.Office.PhoneNumber,
			CallTarget:  telURL(view.Office.CallTarget),
		}
	}

	if err := directoryTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render directory page: %w", err)
	}

	return nil
}

func toHTMLTable(table models.Table) htmlTable {
	rows := make([]htmlRow, 0, len(table.Rows))
	for _, row := range table.Rows {
		rows = append(rows, htmlRow{
			Name:        row.Name,
			Extension:   row.Extension,
			CallTarget:  telURL(row.CallTarget),
			EmailTarget: row.EmailTarget,
		})
	}

	return htmlTable{Heading: table.Heading, Rows: rows}
}

// telURL marks a tel: link as safe; html/template only trusts http, https and mailto.
func telURL(target string) template.URL {
	return template.URL(target) //nolint:gosec // targets are built from numbers and configured phone numbers
}
